/*
 * shardkeeper: hierarchical Shamir secret sharing over GF(2^8)
 * Copyright (C) 2024 The shardkeeper Authors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package container

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// mnemonicChunkSize is the entropy size, in bytes, fed to bip39 for each
// word-list phrase: 32 bytes of entropy produces a 24-word phrase, the
// largest BIP39 supports and so the fewest phrases for a given record.
const mnemonicChunkSize = 32

// EncodeMnemonic renders a serialized share record (the output of
// EncodeV1 or EncodeV2) as a sequence of BIP39 word-list phrases, for
// transcription onto paper. Records are padded to a multiple of
// mnemonicChunkSize with a 4-byte little-endian length prefix so the
// padding can be stripped losslessly on decode.
func EncodeMnemonic(data []byte) ([]string, error) {
	prefixed := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(prefixed[0:4], uint32(len(data)))
	copy(prefixed[4:], data)

	if rem := len(prefixed) % mnemonicChunkSize; rem != 0 {
		prefixed = append(prefixed, make([]byte, mnemonicChunkSize-rem)...)
	}

	phrases := make([]string, 0, len(prefixed)/mnemonicChunkSize)
	for off := 0; off < len(prefixed); off += mnemonicChunkSize {
		chunk := prefixed[off : off+mnemonicChunkSize]
		phrase, err := bip39.NewMnemonic(chunk)
		if err != nil {
			return nil, errors.Wrap(err, "encode entropy chunk as mnemonic")
		}
		phrases = append(phrases, phrase)
	}
	return phrases, nil
}

// DecodeMnemonic reverses EncodeMnemonic, validating every phrase's
// BIP39 checksum before reassembling the original record bytes.
func DecodeMnemonic(phrases []string) ([]byte, error) {
	if len(phrases) == 0 {
		return nil, errors.Wrap(ErrInvalidMnemonic, "no phrases given")
	}

	var prefixed []byte
	for i, phrase := range phrases {
		if !bip39.IsMnemonicValid(strings.TrimSpace(phrase)) {
			return nil, errors.Wrapf(ErrInvalidMnemonic, "phrase %d fails checksum", i)
		}
		entropy, err := bip39.EntropyFromMnemonic(strings.TrimSpace(phrase))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidMnemonic, "phrase %d: %v", i, err)
		}
		if len(entropy) != mnemonicChunkSize {
			return nil, errors.Wrapf(ErrInvalidMnemonic, "phrase %d has unexpected entropy size %d", i, len(entropy))
		}
		prefixed = append(prefixed, entropy...)
	}

	if len(prefixed) < 4 {
		return nil, errors.Wrap(ErrInvalidMnemonic, "reassembled record shorter than length prefix")
	}
	length := binary.LittleEndian.Uint32(prefixed[0:4])
	if uint32(len(prefixed)-4) < length {
		return nil, errors.Wrap(ErrInvalidMnemonic, "declared length exceeds reassembled data")
	}
	return prefixed[4 : 4+length], nil
}

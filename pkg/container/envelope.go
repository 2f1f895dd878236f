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

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/cyphar/shardkeeper/pkg/crypto"
	"github.com/cyphar/shardkeeper/pkg/shamir"
)

// versionV2 is the passphrase-encrypted envelope around a version 1
// record. It is purely additive: the bytes it decrypts to are exactly
// what EncodeV1 would have produced, byte for byte.
const versionV2 = 2

// envelopeHeaderSize is everything in a version 2 record before the
// ciphertext: magic(4) + version(2) + salt(crypto.SaltSize) +
// nonce(chacha20poly1305.NonceSize) + ciphertext_length(4).
const envelopeHeaderSize = 4 + 2 + crypto.SaltSize + chacha20poly1305.NonceSize + 4

// EncodeV2 encrypts sh's version 1 encoding under a key derived from
// passphrase, and returns the version 2 envelope record. The magic and
// version bytes are bound in as AEAD additional data, so truncating or
// swapping the header of one envelope record into another is detected
// on decrypt.
func EncodeV2(sh shamir.Share, passphrase []byte) ([]byte, error) {
	inner := EncodeV1(sh)

	header := make([]byte, 6)
	copy(header[0:4], magic[:])
	binary.LittleEndian.PutUint16(header[4:6], versionV2)

	env, err := crypto.Seal(inner, passphrase, header)
	if err != nil {
		return nil, errors.Wrap(err, "seal version 1 record")
	}

	buf := make([]byte, envelopeHeaderSize+len(env.Ciphertext))
	copy(buf[0:6], header)
	copy(buf[6:6+crypto.SaltSize], env.Salt)
	copy(buf[6+crypto.SaltSize:6+crypto.SaltSize+chacha20poly1305.NonceSize], env.Nonce)
	binary.LittleEndian.PutUint32(buf[6+crypto.SaltSize+chacha20poly1305.NonceSize:envelopeHeaderSize], uint32(len(env.Ciphertext)))
	copy(buf[envelopeHeaderSize:], env.Ciphertext)
	return buf, nil
}

// DecodeV2 reverses EncodeV2: it parses the envelope framing, decrypts
// the ciphertext under a key derived from passphrase, and decodes the
// resulting version 1 record. A wrong passphrase, or any tampering with
// the salt, nonce or ciphertext, surfaces as crypto.ErrBadPassphrase; a
// damaged magic or length field gives ErrInvalidFormat, and a version
// field other than 2 gives ErrEnvelopeUnsupportedVersion.
func DecodeV2(data []byte, passphrase []byte) (shamir.Share, error) {
	if len(data) < envelopeHeaderSize {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "envelope shorter than header")
	}
	if string(data[0:4]) != string(magic[:]) {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "bad magic")
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	if version != versionV2 {
		return shamir.Share{}, errors.WithStack(ErrEnvelopeUnsupportedVersion)
	}

	salt := data[6 : 6+crypto.SaltSize]
	nonce := data[6+crypto.SaltSize : 6+crypto.SaltSize+chacha20poly1305.NonceSize]
	ciphertextLen := binary.LittleEndian.Uint32(data[6+crypto.SaltSize+chacha20poly1305.NonceSize : envelopeHeaderSize])
	if uint32(len(data)-envelopeHeaderSize) != ciphertextLen {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "ciphertext length mismatch")
	}

	env := crypto.Envelope{
		Salt:       append([]byte(nil), salt...),
		Nonce:      append([]byte(nil), nonce...),
		Ciphertext: append([]byte(nil), data[envelopeHeaderSize:]...),
	}
	inner, err := crypto.Open(env, passphrase, data[0:6])
	if err != nil {
		return shamir.Share{}, err
	}
	return DecodeV1(inner)
}

// Decode inspects the version field of data and dispatches to DecodeV1
// or DecodeV2. passphrase is ignored for version 1 records and required
// (non-empty) for version 2 records.
func Decode(data []byte, passphrase []byte) (shamir.Share, error) {
	if len(data) < 6 {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "record shorter than magic+version")
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	switch version {
	case versionV1:
		return DecodeV1(data)
	case versionV2:
		if len(passphrase) == 0 {
			return shamir.Share{}, errors.WithStack(ErrNoPassphrase)
		}
		return DecodeV2(data, passphrase)
	default:
		return shamir.Share{}, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}
}

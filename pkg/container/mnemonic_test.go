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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyphar/shardkeeper/pkg/shamir"
)

func TestMnemonicRoundTripShortRecord(t *testing.T) {
	encoded := EncodeV1(sampleShare())

	phrases, err := EncodeMnemonic(encoded)
	require.NoError(t, err)
	require.NotEmpty(t, phrases)

	recovered, err := DecodeMnemonic(phrases)
	require.NoError(t, err)
	assert.Equal(t, encoded, recovered)

	decoded, err := DecodeV1(recovered)
	require.NoError(t, err)
	assert.Equal(t, sampleShare(), decoded)
}

func TestMnemonicRoundTripMultiChunk(t *testing.T) {
	sh := shamir.Share{
		Index:          1,
		Threshold:      3,
		TotalShares:    5,
		IntegrityCheck: false,
		Data:           make([]byte, 200),
	}
	encoded := EncodeV1(sh)

	phrases, err := EncodeMnemonic(encoded)
	require.NoError(t, err)
	require.Greater(t, len(phrases), 1)

	recovered, err := DecodeMnemonic(phrases)
	require.NoError(t, err)
	assert.Equal(t, encoded, recovered)
}

func TestDecodeMnemonicRejectsBadChecksum(t *testing.T) {
	phrases, err := EncodeMnemonic(EncodeV1(sampleShare()))
	require.NoError(t, err)

	// Swap the first word for another valid BIP39 word to break the
	// checksum without producing an invalid word.
	words := strings.Fields(phrases[0])
	if words[0] == "abandon" {
		words[0] = "ability"
	} else {
		words[0] = "abandon"
	}
	phrases[0] = strings.Join(words, " ")

	_, err = DecodeMnemonic(phrases)
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestDecodeMnemonicRejectsEmpty(t *testing.T) {
	_, err := DecodeMnemonic(nil)
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

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

import "github.com/pkg/errors"

var (
	// ErrInvalidFormat is returned for any structurally malformed share
	// record: bad magic, out-of-range flag bytes, a declared data length
	// that doesn't fit the available bytes, or trailing garbage after the
	// data region.
	ErrInvalidFormat = errors.New("malformed share record")

	// ErrUnsupportedVersion is returned when a record's version field is
	// higher than any version this codec understands.
	ErrUnsupportedVersion = errors.New("unsupported share record version")

	// ErrEnvelopeUnsupportedVersion is returned when DecodeV2 is asked to
	// open a record that does not carry version 2's envelope framing.
	ErrEnvelopeUnsupportedVersion = errors.New("record is not a version 2 encrypted envelope")

	// ErrInvalidMnemonic is returned when decoding a mnemonic phrase that
	// is not valid BIP39 (bad word, bad checksum, wrong word count).
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

	// ErrNoPassphrase is returned by Decode when a version 2 record is
	// encountered but the caller supplied no passphrase.
	ErrNoPassphrase = errors.New("encrypted share record requires a passphrase")
)

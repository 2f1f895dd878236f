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

// Package integrity implements the optional SHA-256 "integrity wrap" that
// Splitter and StreamSplit prepend to plaintext before it is fed to the
// polynomial engine, and that Reconstructor and StreamReconstruct verify
// on the way back out.
package integrity

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/pkg/errors"
)

// HashSize is the size, in bytes, of the SHA-256 digest prepended to
// plaintext when integrity checking is enabled.
const HashSize = sha256.Size

// ErrCheckFailed is returned by Unwrap when the embedded hash does not
// match the recomputed hash of the suffix, or when the input is shorter
// than HashSize while a check was requested.
var ErrCheckFailed = errors.New("integrity check failed")

// Wrap returns plaintext unchanged if enabled is false. If enabled is
// true, it returns SHA-256(plaintext) prepended to plaintext, so the
// result is always HashSize bytes longer than plaintext.
func Wrap(plaintext []byte, enabled bool) []byte {
	if !enabled {
		return append([]byte(nil), plaintext...)
	}
	sum := sha256.Sum256(plaintext)
	out := make([]byte, 0, HashSize+len(plaintext))
	out = append(out, sum[:]...)
	out = append(out, plaintext...)
	return out
}

// Unwrap reverses Wrap. If enabled is false, data is returned unchanged.
// If enabled is true, data must be at least HashSize bytes; the leading
// HashSize bytes are compared, in constant time, against the SHA-256 hash
// of the remaining suffix, and the suffix is returned on success.
// ErrCheckFailed is returned on any mismatch or a too-short input.
func Unwrap(data []byte, enabled bool) ([]byte, error) {
	if !enabled {
		return append([]byte(nil), data...), nil
	}
	if len(data) < HashSize {
		return nil, errors.WithStack(ErrCheckFailed)
	}
	wantHash, plaintext := data[:HashSize], data[HashSize:]
	gotHash := sha256.Sum256(plaintext)
	if subtle.ConstantTimeCompare(wantHash, gotHash[:]) != 1 {
		return nil, errors.WithStack(ErrCheckFailed)
	}
	return append([]byte(nil), plaintext...), nil
}

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

// Package rngsource provides the single cryptographically secure
// randomness source used to draw polynomial coefficients. A Source is
// owned by exactly one scheme; it is never shared between goroutines, but
// a parent scheme may hand each parallel worker its own independent
// sub-stream (see Sub).
package rngsource

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// Source is a cryptographically secure byte source. The zero value is
// ready to use and reads from the operating system's entropy pool; it
// never falls back to a non-cryptographic generator.
type Source struct {
	reader io.Reader
}

// New returns a Source backed by the operating system's CSPRNG.
func New() *Source {
	return &Source{reader: rand.Reader}
}

// Fill fills buf with cryptographically secure random bytes.
func (s *Source) Fill(buf []byte) error {
	if s.reader == nil {
		s.reader = rand.Reader
	}
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return errors.Wrap(err, "read from entropy source")
	}
	return nil
}

// Byte returns a single cryptographically secure random byte.
func (s *Source) Byte() (byte, error) {
	var buf [1]byte
	if err := s.Fill(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Sub returns a new, independent Source suitable for handing to a
// parallel worker. Since the underlying reader is the OS entropy source
// itself (not a deterministic stream cipher the parent has to fork), Sub
// just returns a fresh Source reading from the same entropy pool -- two
// Sources never produce correlated output.
func (s *Source) Sub() *Source {
	return New()
}

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

package shamir

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/cyphar/shardkeeper/internal/wipe"
	"github.com/cyphar/shardkeeper/pkg/integrity"
	"github.com/cyphar/shardkeeper/pkg/polynomial"
)

// Iterator produces shares one at a time. A false ok return means the
// sequence is exhausted, not that an error occurred; check err
// separately.
type Iterator interface {
	Next() (sh Share, ok bool, err error)
}

// Dealer is a lazy share generator: it fixes the secret's polynomial
// coefficients once, then evaluates a fresh share at each call to Next,
// up to the scheme's N shares. Close wipes the dealer's retained
// plaintext and coefficients; it is safe to call more than once.
type Dealer struct {
	scheme    *Scheme
	plaintext []byte
	coeffs    [][]byte
	nextIndex int
	closed    bool
}

// Dealer constructs a lazy share generator for secret. Unlike Split, the
// dealer does not require precomputing every share up front: Next
// evaluates and returns one share at a time, stopping once the scheme's
// N shares have all been issued.
func (s *Scheme) Dealer(secret []byte) (*Dealer, error) {
	plaintext := integrity.Wrap(secret, s.integrity)
	coeffs, err := s.coefficientMatrix(len(plaintext))
	if err != nil {
		wipe.Bytes(plaintext)
		return nil, err
	}
	return &Dealer{
		scheme:    s,
		plaintext: plaintext,
		coeffs:    coeffs,
		nextIndex: 1,
	}, nil
}

// Next evaluates and returns the share at the next index, advancing the
// dealer's internal cursor. ok is false once the scheme's N shares have
// all been issued (the sequence's defining bound) or the dealer has
// been closed. The GF(2^8) index space (254 non-zero points) is
// enforced as a secondary bound, but since NewScheme already requires
// n <= 254, N is always reached first.
func (d *Dealer) Next() (Share, bool, error) {
	if d.closed {
		return Share{}, false, errors.WithStack(ErrDealerClosed)
	}
	if d.nextIndex > int(d.scheme.n) || d.nextIndex > maxShares {
		return Share{}, false, nil
	}

	index := byte(d.nextIndex)
	d.nextIndex++

	data := make([]byte, len(d.plaintext))
	poly := make([]byte, d.scheme.k)
	for col := range d.plaintext {
		poly[0] = d.plaintext[col]
		copy(poly[1:], d.coeffs[col])
		data[col] = polynomial.Evaluate(poly, index)
	}
	wipe.Bytes(poly)

	sh := Share{
		Index:          index,
		Threshold:      d.scheme.k,
		TotalShares:    d.scheme.n,
		IntegrityCheck: d.scheme.integrity,
		Data:           data,
	}
	if d.scheme.signingKey != nil {
		sh.Signature = ed25519.Sign(d.scheme.signingKey, canonicalBytes(sh))
	}
	return sh, true, nil
}

// Take draws up to n shares from the dealer, stopping early if the
// dealer is exhausted first.
func (d *Dealer) Take(n int) ([]Share, error) {
	out := make([]Share, 0, n)
	for i := 0; i < n; i++ {
		sh, ok, err := d.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, sh)
	}
	return out, nil
}

// Close wipes the dealer's retained plaintext and polynomial
// coefficients. Safe to call multiple times.
func (d *Dealer) Close() {
	if d.closed {
		return
	}
	wipe.Bytes(d.plaintext)
	wipe.Matrix(d.coeffs)
	d.closed = true
}

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

// Package shamir implements (n, k)-threshold Shamir secret sharing over
// GF(2^8): a degree-(k-1) polynomial is generated per byte of the
// (optionally integrity-wrapped) secret, with the secret byte as the
// constant term, and each of the n shares is that polynomial evaluated at
// a distinct, non-zero point. An empty secret is accepted; with the
// integrity wrap enabled its shares are 32 bytes long (the hash alone).
package shamir

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/cyphar/shardkeeper/internal/rngsource"
	"github.com/cyphar/shardkeeper/internal/wipe"
	"github.com/cyphar/shardkeeper/pkg/integrity"
	"github.com/cyphar/shardkeeper/pkg/polynomial"
)

// maxShares is the largest share count this scheme supports: GF(2^8) has
// 255 non-zero elements, and index 0 is reserved (it would leak the
// secret's constant term directly).
const maxShares = 254

// Share is one (n, k)-threshold share of a secret. Index identifies the
// polynomial evaluation point (1..254, never 0). Threshold and
// TotalShares record the scheme the share was cut from, so Reconstruct
// can validate a set of shares for mutual consistency before trusting
// them. Signature is nil unless the scheme was constructed with a signing
// key.
type Share struct {
	Index          byte
	Threshold      uint
	TotalShares    uint
	IntegrityCheck bool
	Data           []byte
	Signature      []byte
}

// SplitMode selects how Split evaluates the per-byte polynomials across
// shares: sequentially, or fanned out across a worker pool.
type SplitMode int

const (
	// SplitSequential evaluates every column on the calling goroutine.
	// Appropriate for small secrets, where worker handoff would dominate.
	SplitSequential SplitMode = iota
	// SplitParallel fans column evaluation out across a worker pool sized
	// to runtime.GOMAXPROCS. Appropriate for large secrets.
	SplitParallel
)

// Scheme is an (n, k)-threshold Shamir secret sharing configuration:
// Split cuts a secret into n shares, any k of which Reconstruct can
// combine to recover it.
type Scheme struct {
	n, k       uint
	integrity  bool
	splitMode  SplitMode
	signingKey ed25519.PrivateKey
	rng        *rngsource.Source
}

// Option configures a Scheme at construction time.
type Option func(*Scheme)

// WithIntegrity enables or disables the SHA-256 integrity wrap described
// in package integrity. Enabled by default; pass WithIntegrity(false) to
// opt out.
func WithIntegrity(enabled bool) Option {
	return func(s *Scheme) { s.integrity = enabled }
}

// WithSplitMode selects sequential or parallel column evaluation.
func WithSplitMode(mode SplitMode) Option {
	return func(s *Scheme) { s.splitMode = mode }
}

// WithSigningKey attaches an ed25519 private key that Split and
// Dealer.Next use to produce a detached signature over each share's
// canonical encoding, letting VerifyShares detect shares that were not
// cut together or were tampered with in transit. Reconstruct does not
// check signatures.
func WithSigningKey(key ed25519.PrivateKey) Option {
	return func(s *Scheme) { s.signingKey = key }
}

// NewScheme constructs a Scheme requiring k of n shares to reconstruct.
// n and k must satisfy 1 <= k <= n <= 254.
func NewScheme(n, k uint, opts ...Option) (*Scheme, error) {
	if k < 1 || n < k || n > maxShares {
		return nil, errors.WithStack(ErrInvalidParameters)
	}
	s := &Scheme{
		n:         n,
		k:         k,
		integrity: true,
		rng:       rngsource.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// N returns the scheme's total share count.
func (s *Scheme) N() uint { return s.n }

// K returns the scheme's reconstruction threshold.
func (s *Scheme) K() uint { return s.k }

// coefficientMatrix draws, for each of the L bytes of plaintext, k-1
// random non-constant coefficients of the degree-(k-1) polynomial whose
// constant term is that plaintext byte. Row i of the returned matrix
// holds the coefficients (excluding the constant term) for byte i.
func (s *Scheme) coefficientMatrix(l int) ([][]byte, error) {
	matrix := make([][]byte, l)
	for i := range matrix {
		row := make([]byte, s.k-1)
		if err := s.rng.Fill(row); err != nil {
			wipe.Matrix(matrix)
			return nil, errors.Wrap(err, "generating polynomial coefficients")
		}
		matrix[i] = row
	}
	return matrix, nil
}

// Split cuts secret into Scheme.N() shares, Scheme.K() of which are
// required to reconstruct it. The returned shares are in ascending index
// order, 1..N.
func (s *Scheme) Split(secret []byte) ([]Share, error) {
	plaintext := integrity.Wrap(secret, s.integrity)
	defer wipe.Bytes(plaintext)

	coeffs, err := s.coefficientMatrix(len(plaintext))
	if err != nil {
		return nil, err
	}
	defer wipe.Matrix(coeffs)

	shares := make([]Share, s.n)
	for i := range shares {
		shares[i] = Share{
			Index:          byte(i + 1),
			Threshold:      s.k,
			TotalShares:    s.n,
			IntegrityCheck: s.integrity,
			Data:           make([]byte, len(plaintext)),
		}
	}

	evalColumn := func(col int) {
		poly := make([]byte, s.k)
		poly[0] = plaintext[col]
		copy(poly[1:], coeffs[col])
		for i := range shares {
			shares[i].Data[col] = polynomial.Evaluate(poly, shares[i].Index)
		}
		wipe.Bytes(poly)
	}

	if s.splitMode == SplitParallel && len(plaintext) > 1 {
		runParallel(len(plaintext), evalColumn)
	} else {
		for col := range plaintext {
			evalColumn(col)
		}
	}

	if s.signingKey != nil {
		for i := range shares {
			shares[i].Signature = ed25519.Sign(s.signingKey, canonicalBytes(shares[i]))
		}
	}

	return shares, nil
}

// canonicalBytes returns a deterministic encoding of a share's fields,
// used only as the input to detached ed25519 signatures. It is not the
// on-disk share format.
func canonicalBytes(sh Share) []byte {
	buf := make([]byte, 0, 1+8+8+1+len(sh.Data))
	buf = append(buf, sh.Index)
	buf = appendUint64(buf, uint64(sh.Threshold))
	buf = appendUint64(buf, uint64(sh.TotalShares))
	if sh.IntegrityCheck {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = append(buf, sh.Data...)
	return buf
}

func appendUint64(buf []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(v>>(56-8*i)))
	}
	return buf
}

// VerifyShares checks every share's detached signature against pub.
// Shares with a nil Signature are rejected: once a scheme signs, every
// share it produces carries a signature, so a missing one indicates the
// share was stripped or substituted.
func VerifyShares(shares []Share, pub ed25519.PublicKey) error {
	for _, sh := range shares {
		if len(sh.Signature) == 0 || !ed25519.Verify(pub, canonicalBytes(sh), sh.Signature) {
			return errors.WithStack(ErrSignatureMismatch)
		}
	}
	return nil
}

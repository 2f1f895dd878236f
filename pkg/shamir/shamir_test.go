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
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/pkg/errors"
)

// secretsEqual treats nil and empty slices as equivalent, since Split and
// Reconstruct are not expected to preserve nil-ness, only content.
func secretsEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}

func splitCombine(t *testing.T, k, n uint, secret []byte, opts ...Option) []Share {
	t.Helper()
	scheme, err := NewScheme(n, k, opts...)
	if err != nil {
		t.Fatalf("NewScheme(%d, %d): %v", n, k, err)
	}
	shares, err := scheme.Split(secret)
	if err != nil {
		t.Fatalf("Split(k=%d,n=%d): %v", k, n, err)
	}
	if uint(len(shares)) != n {
		t.Fatalf("Split produced %d shares, want %d", len(shares), n)
	}
	return shares
}

func TestCombineAllShares(t *testing.T) {
	testSchemeHelper(t, func(t *testing.T, k, n uint, secret []byte) {
		shares := splitCombine(t, k, n, secret)
		recovered, err := Reconstruct(shares)
		if err != nil {
			t.Fatalf("Reconstruct: %v", err)
		}
		if !secretsEqual(recovered, secret) {
			t.Fatalf("Reconstruct = %v, want %v", recovered, secret)
		}
	})
}

func TestCombinePartialShares(t *testing.T) {
	testSchemeHelper(t, func(t *testing.T, k, n uint, secret []byte) {
		shares := splitCombine(t, k, n, secret)
		shuffleShares(shares)

		for taken := 0; taken <= len(shares); taken++ {
			sub := shares[:taken]
			recovered, err := Reconstruct(sub)
			if uint(taken) < k {
				if errors.Cause(err) != ErrNotEnoughShares {
					t.Errorf("taken=%d: want ErrNotEnoughShares, got %v", taken, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("taken=%d: Reconstruct failed: %v", taken, err)
				continue
			}
			if !secretsEqual(recovered, secret) {
				t.Errorf("taken=%d: Reconstruct = %v, want %v", taken, recovered, secret)
			}
		}
	})
}

func TestReconstructDuplicateIndex(t *testing.T) {
	shares := splitCombine(t, 2, 3, []byte("duplicate me"))
	bad := []Share{shares[0], shares[0]}
	if _, err := Reconstruct(bad); errors.Cause(err) != ErrDuplicateIndex {
		t.Fatalf("Reconstruct with duplicate indices = %v, want ErrDuplicateIndex", err)
	}
}

func TestReconstructInconsistentShares(t *testing.T) {
	shares := splitCombine(t, 2, 3, []byte("inconsistent"))
	bad := copyShares(shares[:2])
	bad[1].Threshold++
	if _, err := Reconstruct(bad); errors.Cause(err) != ErrInconsistentShares {
		t.Fatalf("Reconstruct with mismatched threshold = %v, want ErrInconsistentShares", err)
	}
}

func TestReconstructNoShares(t *testing.T) {
	if _, err := Reconstruct(nil); errors.Cause(err) != ErrNotEnoughShares {
		t.Fatalf("Reconstruct(nil) = %v, want ErrNotEnoughShares", err)
	}
}

func TestNewSchemeInvalidParameters(t *testing.T) {
	cases := []struct{ n, k uint }{
		{0, 0},
		{3, 0},
		{2, 3},
		{255, 2},
	}
	for _, c := range cases {
		if _, err := NewScheme(c.n, c.k); errors.Cause(err) != ErrInvalidParameters {
			t.Errorf("NewScheme(%d, %d) = %v, want ErrInvalidParameters", c.n, c.k, err)
		}
	}
}

func TestIntegrityCheckDetectsTampering(t *testing.T) {
	scheme, err := NewScheme(5, 3, WithIntegrity(true))
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}
	shares, err := scheme.Split([]byte("tamper-evident secret"))
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	shares[0].Data[0] ^= 0xFF
	if _, err := Reconstruct(shares); errors.Cause(err) != ErrIntegrityCheckFailed {
		t.Fatalf("Reconstruct after tampering = %v, want ErrIntegrityCheckFailed", err)
	}
}

func TestSigningDetectsForgery(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519.GenerateKey: %v", err)
	}
	scheme, err := NewScheme(4, 2, WithSigningKey(priv))
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}
	shares, err := scheme.Split([]byte("signed secret"))
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if err := VerifyShares(shares, pub); err != nil {
		t.Fatalf("VerifyShares on untampered shares: %v", err)
	}

	tampered := copyShares(shares)
	tampered[0].Data[0] ^= 0x01
	if err := VerifyShares(tampered, pub); errors.Cause(err) != ErrSignatureMismatch {
		t.Fatalf("VerifyShares after tampering = %v, want ErrSignatureMismatch", err)
	}
}

func TestSplitParallelMatchesSequential(t *testing.T) {
	secret := mustRandomBytes(512)
	seqScheme, err := NewScheme(5, 3, WithSplitMode(SplitSequential))
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}
	parScheme, err := NewScheme(5, 3, WithSplitMode(SplitParallel))
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}

	seqShares, err := seqScheme.Split(secret)
	if err != nil {
		t.Fatalf("sequential Split: %v", err)
	}
	parShares, err := parScheme.Split(secret)
	if err != nil {
		t.Fatalf("parallel Split: %v", err)
	}

	seqRecovered, err := Reconstruct(seqShares)
	if err != nil {
		t.Fatalf("Reconstruct(sequential): %v", err)
	}
	parRecovered, err := Reconstruct(parShares)
	if err != nil {
		t.Fatalf("Reconstruct(parallel): %v", err)
	}
	if !secretsEqual(seqRecovered, secret) || !secretsEqual(parRecovered, secret) {
		t.Fatalf("split mode changed recovered secret")
	}
}

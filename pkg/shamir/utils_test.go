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
	"fmt"
	"io"
	"math/rand"
	"testing"
	"time"
)

// rng is the global random number generator used for all non-cryptographic
// randomness in these tests (shuffling, vector generation).
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// mustRandomBytes returns a slice of random bytes of the given size.
func mustRandomBytes(size uint) []byte {
	b := make([]byte, size)
	if _, err := io.ReadFull(rng, b); err != nil {
		panic(err)
	}
	return b
}

// shuffleShares scrambles shares in place.
func shuffleShares(shares []Share) {
	for i := 0; i < len(shares); i++ {
		j := rng.Intn(i + 1)
		shares[i], shares[j] = shares[j], shares[i]
	}
}

// copyShares returns a deep copy of shares, so a caller can mutate the
// copy without disturbing the original set.
func copyShares(shares []Share) []Share {
	out := make([]Share, len(shares))
	for i, sh := range shares {
		out[i] = sh
		out[i].Data = append([]byte(nil), sh.Data...)
		out[i].Signature = append([]byte(nil), sh.Signature...)
	}
	return out
}

// secretVectors exercises a variety of secret shapes: empty, short,
// exactly-one-byte, and longer than a single polynomial column pass
// would naively expect.
var secretVectors = [][]byte{
	nil,
	{},
	[]byte("Hello, world!"),
	[]byte("A slightly longer test string, which spans multiple bytes."),
	[]byte{0x00},
	append([]byte{0x00}, mustRandomBytes(16)...),
	append(mustRandomBytes(16), 0x00),
	mustRandomBytes(1),
	mustRandomBytes(31),
	mustRandomBytes(32),
	mustRandomBytes(33),
	mustRandomBytes(256),
}

// testSchemeHelper runs fn against a range of (k, n) scheme parameters and
// every vector in secretVectors.
func testSchemeHelper(t *testing.T, fn func(t *testing.T, k, n uint, secret []byte)) {
	const maxK = 6
	for k := uint(1); k < maxK; k++ {
		for n := k; n < 3*k; n++ {
			tn := fmt.Sprintf("k=%d_n=%d", k, n)
			t.Run(tn, func(t *testing.T) {
				for _, secret := range secretVectors {
					fn(t, k, n, secret)
				}
			})
		}
	}
}

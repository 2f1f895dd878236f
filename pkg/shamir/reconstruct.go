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
	"github.com/pkg/errors"

	"github.com/cyphar/shardkeeper/internal/wipe"
	"github.com/cyphar/shardkeeper/pkg/integrity"
	"github.com/cyphar/shardkeeper/pkg/polynomial"
)

// Reconstruct recovers the original secret from a set of shares. Shares
// need not be presented in index order, and more than the threshold may
// be supplied (only the threshold's worth are used). Validation runs in
// this order: at least one share; at least as many shares as the
// claimed threshold; all shares agree on threshold, total share count,
// integrity flag and data length; indices are pairwise distinct and in
// range. Only after every share passes do the bytes get interpolated.
func Reconstruct(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, errors.WithStack(ErrNotEnoughShares)
	}

	threshold := shares[0].Threshold
	if uint(len(shares)) < threshold {
		return nil, errors.WithStack(ErrNotEnoughShares)
	}

	total := shares[0].TotalShares
	integrityCheck := shares[0].IntegrityCheck
	dataLen := len(shares[0].Data)
	seen := make(map[byte]struct{}, len(shares))
	for _, sh := range shares {
		if sh.Threshold != threshold || sh.TotalShares != total ||
			sh.IntegrityCheck != integrityCheck || len(sh.Data) != dataLen {
			return nil, errors.WithStack(ErrInconsistentShares)
		}
		if sh.Index == 0 || sh.Index > maxShares {
			return nil, errors.WithStack(ErrInvalidShareIndex)
		}
		if _, dup := seen[sh.Index]; dup {
			return nil, errors.WithStack(ErrDuplicateIndex)
		}
		seen[sh.Index] = struct{}{}
	}

	used := shares[:threshold]
	plaintext := make([]byte, dataLen)
	points := make([]polynomial.Point, len(used))
	for col := 0; col < dataLen; col++ {
		for i, sh := range used {
			points[i] = polynomial.Point{X: sh.Index, Y: sh.Data[col]}
		}
		y, err := polynomial.InterpolateAtZero(points)
		if err != nil {
			wipe.Bytes(plaintext)
			return nil, errors.Wrap(err, "interpolating secret byte")
		}
		plaintext[col] = y
	}
	defer wipe.Bytes(plaintext)

	secret, err := integrity.Unwrap(plaintext, integrityCheck)
	if err != nil {
		return nil, errors.WithStack(ErrIntegrityCheckFailed)
	}
	return secret, nil
}

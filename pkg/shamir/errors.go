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

import "github.com/pkg/errors"

// Set of errors returned by this package. Every error here is returned
// wrapped (via github.com/pkg/errors), so callers should compare using
// errors.Cause or errors.Is against these sentinels rather than direct
// equality.
var (
	// ErrInvalidParameters is returned when constructing a Scheme with
	// (n, k) outside the bounds 1<=k<=n<=254.
	ErrInvalidParameters = errors.New("invalid (n, k) scheme parameters")

	// ErrNotEnoughShares is returned when fewer shares than the threshold
	// are supplied to Reconstruct.
	ErrNotEnoughShares = errors.New("not enough shares to reconstruct secret")

	// ErrDuplicateIndex is returned when two shares passed to Reconstruct
	// share the same index.
	ErrDuplicateIndex = errors.New("duplicate share index")

	// ErrInvalidShareIndex is returned when a share's index is outside
	// 1..254.
	ErrInvalidShareIndex = errors.New("share index out of range")

	// ErrInconsistentShares is returned when the shares passed to
	// Reconstruct disagree on threshold, total share count, integrity
	// flag, or data length.
	ErrInconsistentShares = errors.New("shares are inconsistent with one another")

	// ErrIntegrityCheckFailed is returned when the reconstructed
	// plaintext's embedded SHA-256 hash does not match.
	ErrIntegrityCheckFailed = errors.New("integrity check failed on reconstructed secret")

	// ErrSignatureMismatch is returned when a share carries a signature
	// that does not verify against the scheme's signing public key.
	ErrSignatureMismatch = errors.New("share signature verification failed")

	// ErrDealerClosed is returned by Dealer.Next once the dealer has been
	// closed (its buffers wiped).
	ErrDealerClosed = errors.New("dealer has been closed")
)

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

package streaming

import "github.com/pkg/errors"

// ErrIO wraps any reader/writer failure encountered mid-stream. The
// underlying error is always attached via errors.Wrap, so the original
// message survives.
var ErrIO = errors.New("i/o error during streaming split/reconstruct")

// ErrChunkMismatch is returned by StreamReconstruct when the K share
// readers disagree about a chunk's framing: one hit EOF while others
// didn't, or their declared lengths don't match.
var ErrChunkMismatch = errors.New("share readers disagree on chunk framing")

// ErrInvalidChunkSize is returned when StreamSplit's writer count does
// not match the scheme's share count, or when StreamReconstruct gets no
// readers or a reader count different from len(indices). A chunkSize < 1
// is not an error: StreamSplit uses DefaultChunkSize instead.
var ErrInvalidChunkSize = errors.New("invalid stream chunk configuration")

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

// Package streaming implements chunked split/reconstruct over
// io.Reader/io.Writer, for secrets too large to hold in memory at once.
// Each chunk is treated as an independent secret: it gets its own
// integrity wrap and its own polynomial, via the same Scheme used for
// in-memory Split. Share payloads are written to their writers as
// self-delimiting length-prefixed frames, so a stream never needs a
// global header and terminates naturally at EOF on a frame boundary.
package streaming

import (
	"io"

	"github.com/pkg/errors"

	"github.com/cyphar/shardkeeper/internal/wipe"
	"github.com/cyphar/shardkeeper/pkg/shamir"
)

// DefaultChunkSize is used when a caller passes a non-positive chunk
// size to StreamSplit.
const DefaultChunkSize = 64 * 1024

// StreamSplit reads r in chunkSize-sized pieces (the final piece may be
// shorter) and, for each chunk, calls scheme.Split and emits one frame
// per share to the corresponding writer in writers. len(writers) must
// equal scheme.N(). Chunks are processed and flushed to every writer
// before the next chunk is read.
func StreamSplit(scheme *shamir.Scheme, r io.Reader, writers []io.Writer, chunkSize int) error {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	if uint(len(writers)) != scheme.N() {
		return errors.WithStack(ErrInvalidChunkSize)
	}

	buf := make([]byte, chunkSize)
	for {
		n, readErr := io.ReadFull(r, buf)
		switch {
		case readErr == io.EOF && n == 0:
			return nil
		case readErr != nil && readErr != io.ErrUnexpectedEOF && readErr != io.EOF:
			return errors.Wrap(ErrIO, readErr.Error())
		}
		chunk := buf[:n]
		lastChunk := readErr == io.ErrUnexpectedEOF || readErr == io.EOF

		shares, err := scheme.Split(chunk)
		wipe.Bytes(chunk)
		if err != nil {
			return errors.Wrap(err, "split chunk")
		}

		for i, sh := range shares {
			if err := writeFrame(writers[i], sh.Data); err != nil {
				wipe.Bytes(sh.Data)
				return errors.Wrapf(err, "write frame to share %d", sh.Index)
			}
			wipe.Bytes(sh.Data)
		}

		if lastChunk {
			return nil
		}
	}
}

// StreamReconstruct reads exactly len(readers) share streams (one frame
// per chunk from each) and writes the reconstructed plaintext chunks to
// sink in order. indices supplies each reader's share index out of
// band -- the streaming frame format carries no per-share metadata, so
// callers must already know it (typically from having parsed each
// share's file header before opening the stream). threshold is the
// number of readers, which doubles as the Share.Threshold used to
// validate each chunk's consistency.
func StreamReconstruct(indices []byte, integrityCheck bool, readers []io.Reader, sink io.Writer) error {
	if len(readers) != len(indices) || len(readers) == 0 {
		return errors.WithStack(ErrInvalidChunkSize)
	}
	threshold := uint(len(readers))

	for {
		lengths := make([]uint32, len(readers))
		eofCount := 0
		for i, r := range readers {
			length, eof, err := readFrameLength(r)
			if err != nil {
				return errors.Wrapf(err, "read frame length from reader %d", i)
			}
			if eof {
				eofCount++
				continue
			}
			lengths[i] = length
		}

		if eofCount == len(readers) {
			return nil
		}
		if eofCount != 0 {
			return errors.WithStack(ErrChunkMismatch)
		}
		for i := 1; i < len(lengths); i++ {
			if lengths[i] != lengths[0] {
				return errors.WithStack(ErrChunkMismatch)
			}
		}

		shares := make([]shamir.Share, len(readers))
		for i, r := range readers {
			payload, err := readFramePayload(r, lengths[i])
			if err != nil {
				return errors.Wrapf(err, "read frame payload from reader %d", i)
			}
			shares[i] = shamir.Share{
				Index:          indices[i],
				Threshold:      threshold,
				TotalShares:    threshold,
				IntegrityCheck: integrityCheck,
				Data:           payload,
			}
		}

		plaintext, err := shamir.Reconstruct(shares)
		for _, sh := range shares {
			wipe.Bytes(sh.Data)
		}
		if err != nil {
			return errors.Wrap(err, "reconstruct chunk")
		}

		_, writeErr := sink.Write(plaintext)
		wipe.Bytes(plaintext)
		if writeErr != nil {
			return errors.Wrap(ErrIO, writeErr.Error())
		}
	}
}

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

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// writeFrame writes a little-endian u32 length prefix followed by
// payload to w.
func writeFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// readFrameLength reads a single little-endian u32 length prefix from r.
// eof is true only when zero bytes could be read before the stream
// ended, which is the normal terminator for a share stream.
func readFrameLength(r io.Reader) (length uint32, eof bool, err error) {
	var lenBuf [4]byte
	n, readErr := io.ReadFull(r, lenBuf[:])
	switch {
	case readErr == io.EOF && n == 0:
		return 0, true, nil
	case readErr != nil:
		return 0, false, errors.Wrap(ErrIO, readErr.Error())
	}
	return binary.LittleEndian.Uint32(lenBuf[:]), false, nil
}

// readFramePayload reads exactly length bytes from r.
func readFramePayload(r io.Reader, length uint32) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(ErrIO, err.Error())
	}
	return buf, nil
}

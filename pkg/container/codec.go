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

// Package container implements the on-disk share record format: a
// fixed-layout version 1 record, an optional version 2 passphrase
// encrypted envelope around it, and a directory-backed Store that names
// files by share index.
package container

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/cyphar/shardkeeper/pkg/shamir"
)

// magic identifies a shardkeeper share record.
var magic = [4]byte{'S', 'S', 'S', 'S'}

// versionV1 is the fixed-layout, unencrypted share record.
const versionV1 = 1

// headerSize is the byte length of everything in a version 1 record
// before the data payload.
const headerSize = 14

// maxShareIndex is the largest valid share index: GF(2^8) has 255
// non-zero elements, and index 0 is reserved, leaving 1..254.
const maxShareIndex = 254

// EncodeV1 serializes share into the fixed-layout version 1 record:
//
//	offset  size  field
//	0       4     magic "SSSS"
//	4       2     version (1)
//	6       1     index
//	7       1     threshold
//	8       1     total_shares
//	9       1     integrity_flag
//	10      4     data_length (u32 LE)
//	14      N     data
func EncodeV1(sh shamir.Share) []byte {
	buf := make([]byte, headerSize+len(sh.Data))
	copy(buf[0:4], magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], versionV1)
	buf[6] = sh.Index
	buf[7] = byte(sh.Threshold)
	buf[8] = byte(sh.TotalShares)
	if sh.IntegrityCheck {
		buf[9] = 1
	}
	binary.LittleEndian.PutUint32(buf[10:14], uint32(len(sh.Data)))
	copy(buf[14:], sh.Data)
	return buf
}

// DecodeV1 parses a version 1 share record. It never panics: every byte
// sequence, however malformed or adversarially crafted, produces either
// a valid Share or an error wrapping one of this package's sentinels or
// pkg/shamir's ErrInvalidShareIndex / ErrInvalidParameters.
func DecodeV1(data []byte) (shamir.Share, error) {
	if len(data) < headerSize {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "record shorter than header")
	}
	if string(data[0:4]) != string(magic[:]) {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "bad magic")
	}

	version := binary.LittleEndian.Uint16(data[4:6])
	if version > versionV1 {
		return shamir.Share{}, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}
	if version != versionV1 {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "not a version 1 record")
	}

	index := data[6]
	if index == 0 || index > maxShareIndex {
		return shamir.Share{}, errors.WithStack(shamir.ErrInvalidShareIndex)
	}
	threshold := uint(data[7])
	totalShares := uint(data[8])
	if threshold == 0 || threshold > totalShares {
		return shamir.Share{}, errors.WithStack(shamir.ErrInvalidParameters)
	}

	integrityFlag := data[9]
	if integrityFlag > 1 {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "integrity flag not 0 or 1")
	}

	dataLength := binary.LittleEndian.Uint32(data[10:14])
	available := uint32(len(data) - headerSize)
	if dataLength > available {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "declared data length exceeds available bytes")
	}
	if uint32(len(data)-headerSize) != dataLength {
		return shamir.Share{}, errors.Wrap(ErrInvalidFormat, "trailing bytes after data region")
	}

	payload := append([]byte(nil), data[headerSize:headerSize+dataLength]...)
	return shamir.Share{
		Index:          index,
		Threshold:      threshold,
		TotalShares:    totalShares,
		IntegrityCheck: integrityFlag == 1,
		Data:           payload,
	}, nil
}

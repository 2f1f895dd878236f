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

package container

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cyphar/shardkeeper/pkg/shamir"
)

// filePrefix and fileSuffix make up the share file naming scheme:
// share_<index>.shard.
const (
	filePrefix = "share_"
	fileSuffix = ".shard"
)

// Store is a directory-backed collection of version 1 (or version 2
// encrypted) share records, one file per index.
type Store struct {
	dir string
}

// NewStore opens (creating if necessary) a directory-backed store at
// dir. Opening an existing directory populated by a prior Store is
// permitted.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create store directory %q", dir)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(index byte) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d%s", filePrefix, index, fileSuffix))
}

// StoreShare writes sh's version 1 encoding to share_<index>.shard,
// overwriting any existing file for that index.
func (s *Store) StoreShare(sh shamir.Share) error {
	return os.WriteFile(s.path(sh.Index), EncodeV1(sh), 0o600)
}

// StoreEncrypted writes sh's version 2 encrypted encoding, protected by
// passphrase, to share_<index>.shard.
func (s *Store) StoreEncrypted(sh shamir.Share, passphrase []byte) error {
	data, err := EncodeV2(sh, passphrase)
	if err != nil {
		return errors.Wrap(err, "encode version 2 envelope")
	}
	return os.WriteFile(s.path(sh.Index), data, 0o600)
}

// Load reads and parses the share file for index. passphrase is only
// consulted if the file on disk turns out to be a version 2 encrypted
// record; pass nil when loading unencrypted stores.
func (s *Store) Load(index byte, passphrase []byte) (shamir.Share, error) {
	data, err := os.ReadFile(s.path(index))
	if err != nil {
		return shamir.Share{}, errors.Wrapf(err, "read share file for index %d", index)
	}
	return Decode(data, passphrase)
}

// List returns the indices of every share file currently in the store,
// in ascending order. Files that don't match the share_<index>.shard
// naming scheme are silently ignored.
func (s *Store) List() ([]byte, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read store directory %q", s.dir)
	}

	var indices []byte
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		middle := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		n, err := strconv.Atoi(middle)
		if err != nil || n < 1 || n > 254 {
			continue
		}
		indices = append(indices, byte(n))
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices, nil
}

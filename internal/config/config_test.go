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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.True(t, cfg.Splitter.IntegrityCheck)
	assert.Equal(t, "sequential", cfg.Splitter.SplitMode)
	assert.False(t, cfg.Splitter.ParallelSplit())
	assert.Equal(t, 64*1024, cfg.Stream.ChunkSize)
	assert.False(t, cfg.Store.Encryption.Enabled)
	assert.False(t, cfg.Store.Mnemonic.Enabled)
	assert.Equal(t, "off", cfg.Logging.Level)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Splitter.SplitMode = "parallel"
	cfg.Stream.ChunkSize = 4096
	cfg.Store.Encryption.Enabled = true
	cfg.Store.Encryption.PassphraseEnv = "SHARDKEEPER_PASSPHRASE"
	cfg.Logging.Level = "debug"
	cfg.Logging.File = "log.txt"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.Splitter.ParallelSplit())
}

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	// Only logging.level was present in the file; every other field
	// must retain its value from Defaults().
	assert.Equal(t, "debug", loaded.Logging.Level)
	assert.Equal(t, 64*1024, loaded.Stream.ChunkSize)
	assert.True(t, loaded.Splitter.IntegrityCheck)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

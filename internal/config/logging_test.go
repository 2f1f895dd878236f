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

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelOff, ParseLogLevel(""))
	assert.Equal(t, LogLevelOff, ParseLogLevel("off"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelError, ParseLogLevel("gibberish"))
}

func TestNullLoggerDiscardsEverything(t *testing.T) {
	logger := NullLogger()
	logger.Debug("should not panic")
	logger.Error("should not panic either")
	require.NoError(t, logger.Close())
}

func TestNewLoggerOffReturnsNoOpLogger(t *testing.T) {
	logger, err := NewLogger(LogLevelOff, filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	logger.Debug("dropped")
	require.NoError(t, logger.Close())
}

func TestLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "log.txt")
	logger, err := NewLogger(LogLevelDebug, path)
	require.NoError(t, err)

	logger.Debug("hello from debug", "key", "value")
	logger.Error("hello from error")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from debug")
	assert.Contains(t, string(data), "hello from error")
}

func TestLoggerErrorLevelSuppressesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	logger, err := NewLogger(LogLevelError, path)
	require.NoError(t, err)

	logger.Debug("should be suppressed")
	logger.Error("should appear")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should be suppressed")
	assert.Contains(t, string(data), "should appear")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Debug("no panic")
	logger.Error("no panic")
	require.NoError(t, logger.Close())
}

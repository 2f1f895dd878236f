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
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// LogLevel represents logging verbosity.
type LogLevel int

// Log level constants.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// ParseLogLevel parses a log level string, defaulting to LogLevelError
// for anything unrecognized.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "":
		return LogLevelOff
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelError
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelError
	}
}

// Logger is a thin wrapper around log/slog that is a no-op unless a
// sink is configured. A nil or disabled *Logger is safe to call, so
// callers need not special-case it. No other package in this module
// currently takes a *Logger.
type Logger struct {
	mu      sync.Mutex
	level   LogLevel
	file    *os.File
	slogger *slog.Logger
}

// NewLogger builds a Logger writing to filePath at level. If level is
// LogLevelOff or filePath is empty, the returned Logger discards every
// call.
func NewLogger(level LogLevel, filePath string) (*Logger, error) {
	logger := &Logger{level: level}
	if level == LogLevelOff || filePath == "" {
		return logger, nil
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "create log directory %q", dir)
	}

	// #nosec G304 -- log file path comes from validated configuration
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %q", filePath)
	}

	logger.file = f
	logger.slogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level.slogLevel()}))
	return logger, nil
}

// NullLogger returns a Logger that discards everything, for callers
// that don't configure logging at all.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff}
}

// Debug logs a debug-level message with key/value attributes, a no-op
// unless the logger is enabled at LogLevelDebug.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// Error logs an error-level message with key/value attributes, a no-op
// if the logger is disabled.
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level == LogLevelOff || l.slogger == nil {
		return
	}
	if level == slog.LevelDebug && l.level < LogLevelDebug {
		return
	}
	l.slogger.Log(context.Background(), level, msg, args...)
}

// Close releases the underlying log file, if one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

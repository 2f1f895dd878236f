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

// Package hsss implements hierarchical Shamir secret sharing: a named
// partition of one master (N, K)-threshold share set into weighted
// levels (e.g. "executives" get 2 shares each needing only 1 to act,
// "board" gets the rest). The master Splitter is still invoked exactly
// once -- HSSS is a bookkeeping layer over pkg/shamir, not a second
// sharing scheme.
package hsss

import (
	"github.com/pkg/errors"

	"github.com/cyphar/shardkeeper/pkg/shamir"
)

// Level describes one named partition of a Builder: it will receive
// SharesCount of the master scheme's N shares, and Threshold of that
// level's own shares are recorded as the number meant to be needed
// within the level (not separately enforced at reconstruction time --
// see HierarchicalShare doc comment).
type Level struct {
	Name        string
	SharesCount uint
	Threshold   uint
}

// HierarchicalShare is a master Share tagged with the name of the level
// it was assigned to. Reconstruction only ever needs the underlying
// Share; the Level field is bookkeeping for distribution and display.
type HierarchicalShare struct {
	Level string
	Share shamir.Share
}

// Builder accumulates Levels for a master (N, K) scheme before Build
// validates and finalizes them into an HSSS.
type Builder struct {
	scheme *shamir.Scheme
	levels []Level
	names  map[string]struct{}
}

// NewBuilder starts a Builder over the given master scheme.
func NewBuilder(scheme *shamir.Scheme) *Builder {
	return &Builder{
		scheme: scheme,
		names:  make(map[string]struct{}),
	}
}

// AddLevel appends a level to the builder. Validation of the
// accumulated levels (non-empty/unique names, in-range thresholds, and
// the total covering exactly N shares) happens in Build, not here, so
// levels may be added in any order and amended by re-building.
func (b *Builder) AddLevel(name string, sharesCount, threshold uint) *Builder {
	b.levels = append(b.levels, Level{Name: name, SharesCount: sharesCount, Threshold: threshold})
	return b
}

// Build validates the accumulated levels and returns an HSSS. A
// configuration is invalid if: there are no levels; any name is empty
// or repeated; any SharesCount is zero; any Threshold is zero or
// exceeds the master scheme's K; or the levels' SharesCount values
// don't sum to exactly the master scheme's N.
func (b *Builder) Build() (*HSSS, error) {
	if len(b.levels) == 0 {
		return nil, errors.Wrap(ErrInvalidConfiguration, "no levels declared")
	}

	seen := make(map[string]struct{}, len(b.levels))
	var total uint
	for _, lvl := range b.levels {
		if lvl.Name == "" {
			return nil, errors.Wrap(ErrInvalidConfiguration, "level name must not be empty")
		}
		if _, dup := seen[lvl.Name]; dup {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "duplicate level name %q", lvl.Name)
		}
		seen[lvl.Name] = struct{}{}

		if lvl.SharesCount == 0 {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "level %q has zero shares", lvl.Name)
		}
		if lvl.Threshold == 0 || lvl.Threshold > b.scheme.K() {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "level %q threshold %d out of range [1,%d]", lvl.Name, lvl.Threshold, b.scheme.K())
		}
		total += lvl.SharesCount
	}
	if total != b.scheme.N() {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "levels cover %d shares, want %d", total, b.scheme.N())
	}

	levels := make([]Level, len(b.levels))
	copy(levels, b.levels)
	return &HSSS{scheme: b.scheme, levels: levels}, nil
}

// HSSS is a validated hierarchical sharing configuration over a master
// (N, K)-threshold scheme.
type HSSS struct {
	scheme *shamir.Scheme
	levels []Level
}

// Levels returns the HSSS's validated level declarations, in the order
// they will be used to slice Split's output.
func (h *HSSS) Levels() []Level {
	out := make([]Level, len(h.levels))
	copy(out, h.levels)
	return out
}

// Split invokes the master Splitter exactly once over secret, then
// partitions the resulting N shares across levels in declaration order
// by slicing the share vector at each level's cumulative SharesCount.
// This is the key optimization over naively splitting once per level:
// one polynomial evaluation pass over the whole secret, not one per
// level.
func (h *HSSS) Split(secret []byte) ([]HierarchicalShare, error) {
	shares, err := h.scheme.Split(secret)
	if err != nil {
		return nil, errors.Wrap(err, "split master scheme")
	}

	out := make([]HierarchicalShare, 0, len(shares))
	var offset uint
	for _, lvl := range h.levels {
		for _, sh := range shares[offset : offset+lvl.SharesCount] {
			out = append(out, HierarchicalShare{Level: lvl.Name, Share: sh})
		}
		offset += lvl.SharesCount
	}
	return out, nil
}

// Reconstruct strips level metadata from hshares and defers entirely to
// shamir.Reconstruct: any mix of at least K master shares, drawn from
// any combination of levels, reconstructs the secret. Levels impose no
// additional restriction at this layer -- they are a distribution
// convention, not a second threshold gate.
func Reconstruct(hshares []HierarchicalShare) ([]byte, error) {
	shares := make([]shamir.Share, len(hshares))
	for i, hs := range hshares {
		shares[i] = hs.Share
	}
	return shamir.Reconstruct(shares)
}

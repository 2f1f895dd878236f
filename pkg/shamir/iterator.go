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

// This file adapts Dealer into an opaque Iterator that can be composed
// with the three combinators below, rather than consumed only through
// Dealer.Next/Take directly. Each combinator wraps an Iterator and
// returns another one, so they chain: Filter(Take(dealer, 10), pred).

// takeIterator limits an underlying Iterator to at most n results.
type takeIterator struct {
	inner     Iterator
	remaining int
}

// Take wraps it so that it yields at most n more shares.
func Take(it Iterator, n int) Iterator {
	return &takeIterator{inner: it, remaining: n}
}

func (t *takeIterator) Next() (Share, bool, error) {
	if t.remaining <= 0 {
		return Share{}, false, nil
	}
	sh, ok, err := t.inner.Next()
	if err != nil || !ok {
		return sh, ok, err
	}
	t.remaining--
	return sh, true, nil
}

// filterIterator skips shares that do not satisfy pred.
type filterIterator struct {
	inner Iterator
	pred  func(Share) bool
}

// Filter wraps it so that Next only returns shares for which pred
// returns true, silently skipping the rest.
func Filter(it Iterator, pred func(Share) bool) Iterator {
	return &filterIterator{inner: it, pred: pred}
}

func (f *filterIterator) Next() (Share, bool, error) {
	for {
		sh, ok, err := f.inner.Next()
		if err != nil || !ok {
			return sh, ok, err
		}
		if f.pred(sh) {
			return sh, true, nil
		}
	}
}

// mapIterator transforms each share through fn before yielding it.
type mapIterator struct {
	inner Iterator
	fn    func(Share) Share
}

// Map wraps it so that each yielded share has been passed through fn.
func Map(it Iterator, fn func(Share) Share) Iterator {
	return &mapIterator{inner: it, fn: fn}
}

func (m *mapIterator) Next() (Share, bool, error) {
	sh, ok, err := m.inner.Next()
	if err != nil || !ok {
		return sh, ok, err
	}
	return m.fn(sh), true, nil
}

// Collect drains it to completion and returns every share it yields.
func Collect(it Iterator) ([]Share, error) {
	var out []Share
	for {
		sh, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, sh)
	}
}

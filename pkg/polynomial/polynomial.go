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

// Package polynomial implements the two operations Shamir secret sharing
// needs over GF(2^8): evaluating a polynomial at a point, and Lagrange
// interpolation of the constant term (the secret) from a set of points.
package polynomial

import (
	"github.com/pkg/errors"

	"github.com/cyphar/shardkeeper/pkg/field"
)

// ErrDuplicateIndex is returned by InterpolateAtZero when two of the given
// points share the same x-coordinate but disagree on y -- or, even if they
// agree, sharing an x-coordinate means the points cannot come from a
// legitimate set of distinct shares.
var ErrDuplicateIndex = errors.New("duplicate x-coordinate among interpolation points")

// ErrTooFewPoints is returned by InterpolateAtZero when fewer than one
// point is given.
var ErrTooFewPoints = errors.New("at least one point is required for interpolation")

// Point is a single (x, y) sample of a polynomial over GF(2^8).
type Point struct {
	X, Y byte
}

// Evaluate computes the value at x of the polynomial whose coefficients
// are given in increasing order of power (coefficients[0] is the constant
// term), using Horner's method. An empty coefficient list evaluates to 0
// everywhere.
func Evaluate(coefficients []byte, x byte) byte {
	var result byte
	for i := len(coefficients) - 1; i >= 0; i-- {
		result = field.Add(field.Mul(result, x), coefficients[i])
	}
	return result
}

// InterpolateAtZero recovers f(0) for the unique lowest-degree polynomial
// passing through the given points, using Lagrange interpolation:
//
//	f(0) = sum_j y_j * prod_{m != j} x_m / (x_m XOR x_j)
//
// Points are consumed in the order given; since GF(2^8) addition and
// multiplication both commute, the result does not depend on that order.
// If any two points share an x-coordinate, ErrDuplicateIndex is returned
// (such a pair would make a denominator x_m XOR x_j zero). A point with
// x=0 is not rejected here.
func InterpolateAtZero(points []Point) (byte, error) {
	if len(points) < 1 {
		return 0, errors.WithStack(ErrTooFewPoints)
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].X == points[j].X {
				return 0, errors.WithStack(ErrDuplicateIndex)
			}
		}
	}

	var result byte
	for j, pj := range points {
		term := pj.Y
		for m, pm := range points {
			if m == j {
				continue
			}
			denom := field.Add(pm.X, pj.X)
			term = field.Mul(term, field.Mul(pm.X, field.Inv(denom)))
		}
		result = field.Add(result, term)
	}
	return result, nil
}

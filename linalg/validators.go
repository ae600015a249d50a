// SPDX-License-Identifier: MIT
// Package linalg: validators.
//
// Purpose:
//   - Keep shape/nil/symmetry/finiteness checks in one place so kernels stay small.
//   - Return plain sentinels wrapped with the validator tag; kernels add their own op tag.
//
// All checks are pure and allocation-free.

package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultSymmetryTol is the absolute tolerance used by ValidateSymmetric
// when callers do not have a better scale at hand.
const DefaultSymmetryTol = 1e-10

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSquare ensures m is non-nil and has as many rows as columns.
func ValidateSquare(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	r, c := m.Dims()
	if r != c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSymmetric ensures m is square and |m[i,j]-m[j,i]| <= tol for
// every pair in the upper triangle.
// Complexity: O(n²).
func ValidateSymmetric(m mat.Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	// SymDense and friends are symmetric by construction.
	if _, ok := m.(mat.Symmetric); ok {
		return nil
	}
	n, _ := m.Dims()
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateVecLen ensures x is non-nil and has length n.
func ValidateVecLen(x mat.Vector, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if x.Len() != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite ensures every entry of m is finite.
// Complexity: O(r*c).
func ValidateFinite(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	r, c := m.Dims()
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", ErrNaNInf)
			}
		}
	}

	return nil
}

// SPDX-License-Identifier: MIT
// Package linalg: Cholesky factor-and-solve.
//
// Every inverse in the engine goes through these helpers; nothing forms an
// explicit matrix inverse by elimination.

package linalg

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Cholesky factors the symmetric matrix a as L·Lᵗ.
//
// Implementation:
//   - Stage 1: validate a (non-nil, finite).
//   - Stage 2: gonum Cholesky.Factorize; a false return means a is not
//     positive definite to working precision.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (validation).
//   - ErrNotPositiveDefinite when the factorization fails.
//
// Complexity: O(n³) time, O(n²) space.
func Cholesky(a mat.Symmetric) (*mat.Cholesky, error) {
	if a == nil {
		return nil, linalgErrorf(opCholesky, ErrNilMatrix)
	}
	if err := ValidateFinite(a); err != nil {
		return nil, linalgErrorf(opCholesky, err)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return nil, linalgErrorf(opCholesky, ErrNotPositiveDefinite)
	}

	return &chol, nil
}

// LowerFactor returns the lower-triangular factor L of a factorization as a
// fresh TriDense.
func LowerFactor(chol *mat.Cholesky) *mat.TriDense {
	var l mat.TriDense
	chol.LTo(&l)

	return &l
}

// SolveVec returns x with A·x = b for the factored A.
func SolveVec(chol *mat.Cholesky, b mat.Vector) (*mat.VecDense, error) {
	if err := ValidateVecLen(b, chol.SymmetricDim()); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	var x mat.VecDense
	if err := fatal(chol.SolveVecTo(&x, b)); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}

	return &x, nil
}

// Solve returns X with A·X = B for the factored A.
func Solve(chol *mat.Cholesky, b mat.Matrix) (*mat.Dense, error) {
	if b == nil {
		return nil, linalgErrorf(opSolve, ErrNilMatrix)
	}
	if r, _ := b.Dims(); r != chol.SymmetricDim() {
		return nil, linalgErrorf(opSolve, ErrDimensionMismatch)
	}
	var x mat.Dense
	if err := fatal(chol.SolveTo(&x, b)); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}

	return &x, nil
}

// Inverse returns A⁻¹ for the factored A, computed from the factor (no
// elimination on A itself). The result is symmetric by construction.
func Inverse(chol *mat.Cholesky) (*mat.SymDense, error) {
	var inv mat.SymDense
	if err := fatal(chol.InverseTo(&inv)); err != nil {
		return nil, linalgErrorf(opInverse, err)
	}

	return &inv, nil
}

// HalfLogDet returns Σ log L[i,i], i.e. ½·log det(A), read straight off the
// factor diagonal.
func HalfLogDet(chol *mat.Cholesky) float64 {
	return 0.5 * chol.LogDet()
}

// fatal drops mat.Condition, which gonum reports alongside a usable
// result for badly conditioned factors.
func fatal(err error) error {
	var cond mat.Condition
	if errors.As(err, &cond) {
		return nil
	}

	return err
}

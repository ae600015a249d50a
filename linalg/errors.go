// SPDX-License-Identifier: MIT
// Package linalg: sentinel error set.
// Every kernel returns one of these (possibly wrapped with an operation
// tag via linalgErrorf) so call sites can match with errors.Is.

package linalg

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMatrix indicates that a nil matrix or vector argument was used.
	ErrNilMatrix = errors.New("linalg: nil matrix")

	// ErrDimensionMismatch indicates incompatible operand shapes or an
	// out-of-range rank request.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("linalg: matrix is not square")

	// ErrAsymmetry signals a matrix expected to be symmetric violated symmetry
	// beyond the allowed tolerance.
	ErrAsymmetry = errors.New("linalg: matrix is not symmetric within tolerance")

	// ErrNotPositiveDefinite is returned when a Cholesky factorization fails.
	ErrNotPositiveDefinite = errors.New("linalg: matrix is not positive definite")

	// ErrEigenFailed indicates the symmetric eigendecomposition did not converge.
	ErrEigenFailed = errors.New("linalg: eigen decomposition failed")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("linalg: NaN or Inf encountered")

	// ErrNegativeVariance is returned when a variance argument is negative.
	ErrNegativeVariance = errors.New("linalg: negative variance")
)

// Operation tags used when wrapping sentinels.
const (
	opCholesky  = "Cholesky"
	opSolve     = "Solve"
	opInverse   = "Inverse"
	opLowRank   = "LowRank"
	opDataCov   = "DataCov"
	opHadamard  = "Hadamard"
	opSymmetric = "Symmetrize"
)

// linalgErrorf wraps err with an operation tag, preserving the cause for
// errors.Is / errors.As. Only call it with a non-nil err.
func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

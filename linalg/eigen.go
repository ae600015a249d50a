// SPDX-License-Identifier: MIT
// Package linalg: truncated eigen square root.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LowRank returns an N×n matrix U with U·Uᵗ ≈ Q built from the n dominant
// eigenpairs of the symmetric positive-semidefinite Q.
//
// Implementation:
//   - Stage 1: validate Q and the requested rank (n == 0 means full rank N).
//   - Stage 2: EigenSym with vectors; gonum returns eigenvalues ascending.
//   - Stage 3: walk the spectrum from the top, column j of U is
//     v_(N-1-j) · sqrt(max(0, λ_(N-1-j))).
//
// Behavior highlights:
//   - Columns are ordered from dominant to least dominant eigenvalue.
//   - Negative eigenvalues are clamped to zero, never rejected, so that
//     round-off noise in a covariance does not abort a sampler.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (validation).
//   - ErrDimensionMismatch when n < 0 or n > N.
//   - ErrEigenFailed when the decomposition does not converge.
//
// Complexity: O(N³) time, O(N²) space.
func LowRank(q mat.Symmetric, n int) (*mat.Dense, error) {
	if q == nil {
		return nil, linalgErrorf(opLowRank, ErrNilMatrix)
	}
	if err := ValidateFinite(q); err != nil {
		return nil, linalgErrorf(opLowRank, err)
	}
	size := q.SymmetricDim()
	if n == 0 {
		n = size
	}
	if n < 0 || n > size {
		return nil, linalgErrorf(opLowRank, ErrDimensionMismatch)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(q, true); !ok {
		return nil, linalgErrorf(opLowRank, ErrEigenFailed)
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	u := mat.NewDense(size, n, nil)
	var i, j, src int
	var scale float64
	for j = 0; j < n; j++ {
		src = size - 1 - j
		scale = math.Sqrt(math.Max(0, values[src]))
		for i = 0; i < size; i++ {
			u.Set(i, j, vectors.At(i, src)*scale)
		}
	}

	return u, nil
}

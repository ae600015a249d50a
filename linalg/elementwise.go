// SPDX-License-Identifier: MIT
// Package linalg: elementwise helpers on symmetric matrices.
//
// gonum covers products and factorizations; these cover the entrywise
// operations the engine needs (constant offsets, Hadamard products with a
// temporal kernel, averages over all entries). All helpers allocate a
// fresh result and leave their operands untouched.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// AddConstant returns a + c on every entry (not only the diagonal).
// Adding a constant to all entries is the closed-form marginalization of an
// unknown constant offset with prior variance c.
func AddConstant(a mat.Symmetric, c float64) *mat.SymDense {
	n := a.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.SetSym(i, j, a.At(i, j)+c)
		}
	}

	return out
}

// AddDiagonal returns a + v·I.
func AddDiagonal(a mat.Symmetric, v float64) *mat.SymDense {
	n := a.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	out.CopySym(a)
	for i := 0; i < n; i++ {
		out.SetSym(i, i, out.At(i, i)+v)
	}

	return out
}

// Hadamard returns the entrywise product a∘b of two symmetric matrices of
// the same dimension. The Schur product of PSD matrices is PSD.
func Hadamard(a, b mat.Symmetric) (*mat.SymDense, error) {
	if a == nil || b == nil {
		return nil, linalgErrorf(opHadamard, ErrNilMatrix)
	}
	n := a.SymmetricDim()
	if b.SymmetricDim() != n {
		return nil, linalgErrorf(opHadamard, ErrDimensionMismatch)
	}
	out := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.SetSym(i, j, a.At(i, j)*b.At(i, j))
		}
	}

	return out, nil
}

// Mean returns the average of all r·c entries of a.
func Mean(a mat.Matrix) float64 {
	r, c := a.Dims()

	return mat.Sum(a) / float64(r*c)
}

// RowSums returns a·1.
func RowSums(a mat.Matrix) *mat.VecDense {
	r, c := a.Dims()
	out := mat.NewVecDense(r, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, a)
		out.SetVec(i, floats.Sum(row))
	}

	return out
}

// Filled returns an n×n symmetric matrix with every entry equal to v.
func Filled(n int, v float64) *mat.SymDense {
	data := make([]float64, n*n)
	floats.AddConst(v, data)

	return mat.NewSymDense(n, data)
}

// PositiveInf returns an n×n matrix of +Inf, the engine's "invalid regime"
// covariance.
func PositiveInf(n int) *mat.SymDense {
	return Filled(n, math.Inf(1))
}

// Symmetrize returns (m + mᵗ)/2 as a SymDense. It is used after products
// such as A·Σ·Aᵗ that are symmetric in exact arithmetic only.
func Symmetrize(m mat.Matrix) (*mat.SymDense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, linalgErrorf(opSymmetric, err)
	}
	n, _ := m.Dims()
	out := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}

	return out, nil
}

// Congruence returns A·S·Aᵗ as a SymDense.
func Congruence(a mat.Matrix, s mat.Symmetric) (*mat.SymDense, error) {
	if a == nil || s == nil {
		return nil, linalgErrorf(opSymmetric, ErrNilMatrix)
	}
	if _, c := a.Dims(); c != s.SymmetricDim() {
		return nil, linalgErrorf(opSymmetric, ErrDimensionMismatch)
	}
	var as, out mat.Dense
	as.Mul(a, s)
	out.Mul(&as, a.T())

	return Symmetrize(&out)
}

// SPDX-License-Identifier: MIT
// Package linalg: observation-noise covariance.
//
// A light-curve data covariance is given in one of three shapes: a single
// homoscedastic variance, one variance per observation, or a full matrix.
// DataCov is a closed sum type over those shapes; Dense materializes it at
// the number of observations of the current call.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DataCov is a data covariance in one of the supported shapes.
// Implementations: Scalar, Diagonal, Full.
type DataCov interface {
	// Dense returns the k×k covariance matrix.
	Dense(k int) (*mat.SymDense, error)

	isDataCov()
}

// Scalar is a homoscedastic variance σ²; it broadcasts to σ²·I.
type Scalar float64

// Diagonal holds one variance per observation; it becomes diag(v).
type Diagonal []float64

// Full wraps an explicit covariance matrix used as-is.
type Full struct {
	M mat.Symmetric
}

func (Scalar) isDataCov()   {}
func (Diagonal) isDataCov() {}
func (Full) isDataCov()     {}

// Dense returns σ²·I of size k.
func (s Scalar) Dense(k int) (*mat.SymDense, error) {
	v := float64(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, linalgErrorf(opDataCov, ErrNaNInf)
	}
	if v < 0 {
		return nil, linalgErrorf(opDataCov, ErrNegativeVariance)
	}
	if k <= 0 {
		return nil, linalgErrorf(opDataCov, ErrDimensionMismatch)
	}
	out := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		out.SetSym(i, i, v)
	}

	return out, nil
}

// Dense returns diag(d); len(d) must equal k.
func (d Diagonal) Dense(k int) (*mat.SymDense, error) {
	if len(d) != k || k == 0 {
		return nil, linalgErrorf(opDataCov, ErrDimensionMismatch)
	}
	out := mat.NewSymDense(k, nil)
	for i, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, linalgErrorf(opDataCov, ErrNaNInf)
		}
		if v < 0 {
			return nil, linalgErrorf(opDataCov, ErrNegativeVariance)
		}
		out.SetSym(i, i, v)
	}

	return out, nil
}

// Dense returns a copy of the wrapped matrix; its dimension must equal k.
func (f Full) Dense(k int) (*mat.SymDense, error) {
	if f.M == nil {
		return nil, linalgErrorf(opDataCov, ErrNilMatrix)
	}
	if f.M.SymmetricDim() != k {
		return nil, linalgErrorf(opDataCov, ErrDimensionMismatch)
	}
	out := mat.NewSymDense(k, nil)
	out.CopySym(f.M)

	return out, nil
}

// SPDX-License-Identifier: MIT

package moments

import "gonum.org/v1/gonum/mat"

// Stage yields coefficient-space moments.
type Stage interface {
	Mean() (*mat.VecDense, error)
	Cov() (*mat.SymDense, error)
}

// Fixed is a Stage over precomputed moments.
type Fixed struct {
	m Moments
}

// NewFixed validates and copies mean and cov.
func NewFixed(mean *mat.VecDense, cov *mat.SymDense) (*Fixed, error) {
	m := Moments{Mean: mean, Cov: cov}
	if err := m.Validate(0); err != nil {
		return nil, err
	}

	return &Fixed{m: m.Clone()}, nil
}

// Mean returns a copy of the mean.
func (f *Fixed) Mean() (*mat.VecDense, error) {
	return mat.VecDenseCopyOf(f.m.Mean), nil
}

// Cov returns a copy of the covariance.
func (f *Fixed) Cov() (*mat.SymDense, error) {
	return f.m.Clone().Cov, nil
}

// Resolve runs s and packages its output, validated against n when n > 0.
func Resolve(s Stage, n int) (Moments, error) {
	if s == nil {
		return Moments{}, ErrNilMoments
	}
	mean, err := s.Mean()
	if err != nil {
		return Moments{}, err
	}
	cov, err := s.Cov()
	if err != nil {
		return Moments{}, err
	}
	m := Moments{Mean: mean, Cov: cov}
	if err = m.Validate(n); err != nil {
		return Moments{}, err
	}

	return m, nil
}

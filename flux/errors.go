// SPDX-License-Identifier: MIT

package flux

import "errors"

var (
	// ErrMarginalized is returned by DesignMatrix when the projector
	// integrates over inclination and has no single design matrix.
	ErrMarginalized = errors.New("flux: design matrix undefined under inclination marginalization")

	// ErrGeometry is returned for an invalid viewing geometry.
	ErrGeometry = errors.New("flux: invalid geometry")

	// ErrShape is returned when a design matrix does not fit the time grid
	// or the coefficient count.
	ErrShape = errors.New("flux: shape mismatch")

	// ErrNoTimes is returned for an empty time grid.
	ErrNoTimes = errors.New("flux: empty time grid")

	// ErrNilDesign is returned when no DesignFunc was supplied.
	ErrNilDesign = errors.New("flux: nil design function")
)

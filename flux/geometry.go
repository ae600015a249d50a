// SPDX-License-Identifier: MIT

package flux

import (
	"fmt"
	"math"
)

// Defaults for the viewing geometry.
const (
	DefaultInclination = 60.0 // degrees
	DefaultPeriod      = 1.0
)

// Geometry is the viewing geometry of a light curve.
type Geometry struct {
	Inclination   float64   // degrees from the line of sight, in [0, 90]
	Period        float64   // rotation period, same unit as the time grid
	LimbDarkening []float64 // coefficients u1, u2, ...
}

// DefaultGeometry returns the default geometry without limb darkening.
func DefaultGeometry() Geometry {
	return Geometry{Inclination: DefaultInclination, Period: DefaultPeriod}
}

// Validate checks the ranges of g. At most udeg limb-darkening
// coefficients are accepted.
func (g Geometry) Validate(udeg int) error {
	if !(g.Inclination >= 0 && g.Inclination <= 90) {
		return fmt.Errorf("%w: inclination %g° not in [0, 90]", ErrGeometry, g.Inclination)
	}
	if !(g.Period > 0) || math.IsInf(g.Period, 0) {
		return fmt.Errorf("%w: period %g must be finite and > 0", ErrGeometry, g.Period)
	}
	if len(g.LimbDarkening) > udeg {
		return fmt.Errorf("%w: %d limb-darkening coefficients for degree %d",
			ErrGeometry, len(g.LimbDarkening), udeg)
	}
	for i, u := range g.LimbDarkening {
		if math.IsNaN(u) || math.IsInf(u, 0) {
			return fmt.Errorf("%w: u[%d] = %g", ErrGeometry, i+1, u)
		}
	}

	return nil
}

// withInclination returns a copy of g viewed at inc degrees.
func (g Geometry) withInclination(inc float64) Geometry {
	g.Inclination = inc
	return g
}

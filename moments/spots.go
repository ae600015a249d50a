// SPDX-License-Identifier: MIT

package moments

import (
	"fmt"
	"math"
)

// Defaults for the spot hyperparameters.
const (
	DefaultRadius    = 20.0 // degrees
	DefaultHalfWidth = 0.0  // degrees; 0 means every spot has the mean radius
	DefaultA         = 0.40
	DefaultB         = 0.27
	DefaultContrast  = 0.1
	DefaultCount     = 10.0
)

// Spots holds the hyperparameters of the spot population.
type Spots struct {
	Radius    float64 // mean spot radius, degrees
	HalfWidth float64 // half-width of the radius distribution, degrees
	A, B      float64 // unit-scaled log shape pair of the latitude distribution
	Contrast  float64 // fractional intensity deficit of a spot
	Count     float64 // expected number of spots
}

// DefaultSpots returns the default population.
func DefaultSpots() Spots {
	return Spots{
		Radius:    DefaultRadius,
		HalfWidth: DefaultHalfWidth,
		A:         DefaultA,
		B:         DefaultB,
		Contrast:  DefaultContrast,
		Count:     DefaultCount,
	}
}

// Validate reports the first hyperparameter outside its range.
func (s Spots) Validate() error {
	switch {
	case !(s.Radius > 0 && s.Radius <= 90):
		return fmt.Errorf("%w: radius %g° not in (0, 90]", ErrSpots, s.Radius)
	case !(s.HalfWidth >= 0) || math.IsInf(s.HalfWidth, 0):
		return fmt.Errorf("%w: half-width %g° must be finite and >= 0", ErrSpots, s.HalfWidth)
	case !(s.A >= 0 && s.A <= 1):
		return fmt.Errorf("%w: a = %g not in [0, 1]", ErrSpots, s.A)
	case !(s.B >= 0 && s.B <= 1):
		return fmt.Errorf("%w: b = %g not in [0, 1]", ErrSpots, s.B)
	case !finite(s.Contrast):
		return fmt.Errorf("%w: contrast %g is not finite", ErrSpots, s.Contrast)
	case !(s.Count > 0) || math.IsInf(s.Count, 0):
		return fmt.Errorf("%w: count %g must be finite and > 0", ErrSpots, s.Count)
	}

	return nil
}

// ChainFactory builds the moment stage of a degree-l process with spots s.
type ChainFactory func(degree int, s Spots) (Stage, error)

// SingleSpotFactory returns a ChainFactory whose chain starts from the
// moments of one unit-contrast spot, already integrated over size,
// latitude and longitude, and finishes with Contrast(s.Contrast, s.Count).
func SingleSpotFactory(single Moments) ChainFactory {
	return func(degree int, s Spots) (Stage, error) {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		n := (degree + 1) * (degree + 1)
		if err := single.Validate(n); err != nil {
			return nil, fmt.Errorf("single-spot moments at degree %d: %w", degree, err)
		}

		return NewChain(single, Contrast(s.Contrast, s.Count)), nil
	}
}

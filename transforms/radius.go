// SPDX-License-Identifier: MIT

package transforms

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Defaults for the radius bounds.
const (
	// DefaultPeakTol is the largest tolerated error of the intensity at the
	// center of a spot expanded to finite degree.
	DefaultPeakTol = 1e-2

	// DefaultHWHMMax is the largest spot half-width at half-minimum, degrees.
	DefaultHWHMMax = 75.0
)

const (
	minRPrimeStart = 0.25
	maxRPrimeStart = 10.0
)

// HWHM returns the half-width at half-minimum, in degrees, of a spot with
// expansion parameter r'.
func HWHM(rprime float64) float64 {
	r3 := (1 + rprime) * (1 + rprime) * (1 + rprime)
	return math.Acos((2+3*rprime*(2+rprime))/(2*r3)) * degPerRad
}

// PeakError returns the absolute error of the intensity at the spot center
// when the spot profile is truncated at spherical-harmonic degree ydeg.
func PeakError(ydeg int, rprime float64) float64 {
	i := 1 - 0.5*rprime/(1+rprime)
	for l := 1; l <= ydeg; l++ {
		i -= 0.5 * rprime * (2 + rprime) / math.Pow(1+rprime, float64(l+1))
	}

	return math.Abs(i)
}

// MinRPrime returns the smallest r' whose peak error at degree ydeg is tol.
func MinRPrime(ydeg int, tol float64) (float64, error) {
	if ydeg < 1 {
		return 0, domainErrorf("degree %d < 1", ydeg)
	}
	if !(tol > 0 && tol < 1) {
		return 0, domainErrorf("peak tolerance %g not in (0, 1)", tol)
	}

	return solve1D("MinRPrime", func(r float64) float64 {
		d := PeakError(ydeg, r) - tol
		return d * d
	}, minRPrimeStart)
}

// MaxRPrime returns the r' whose half-width at half-minimum is hwhmMax degrees.
func MaxRPrime(hwhmMax float64) (float64, error) {
	if !(hwhmMax > 0 && hwhmMax < 90) {
		return 0, domainErrorf("hwhm %g° not in (0, 90)", hwhmMax)
	}

	return solve1D("MaxRPrime", func(r float64) float64 {
		d := HWHM(r) - hwhmMax
		return d * d
	}, maxRPrimeStart)
}

// RadiusCoefficients returns (c0, c1) such that r' = c0 + c1·u maps u ∈ [0, 1]
// onto [MinRPrime(ydeg, tol), MaxRPrime(hwhmMax)].
func RadiusCoefficients(ydeg int, tol, hwhmMax float64) (c0, c1 float64, err error) {
	rmin, err := MinRPrime(ydeg, tol)
	if err != nil {
		return 0, 0, err
	}
	rmax, err := MaxRPrime(hwhmMax)
	if err != nil {
		return 0, 0, err
	}

	return rmin, rmax - rmin, nil
}

// solve1D minimizes a non-negative squared residual with Nelder-Mead.
// Points where f is NaN are treated as +Inf so the simplex backs away.
func solve1D(tag string, f func(float64) float64, x0 float64) (float64, error) {
	p := optimize.Problem{
		Func: func(x []float64) float64 {
			v := f(x[0])
			if math.IsNaN(v) {
				return math.Inf(1)
			}
			return v
		},
	}
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-20,
			Iterations: 50,
		},
		MajorIterations: 2000,
	}
	res, err := optimize.Minimize(p, []float64{x0}, settings, &optimize.NelderMead{})
	if res == nil || math.IsNaN(res.X[0]) || math.IsInf(res.F, 0) {
		return 0, fmt.Errorf("%s: %w: %v", tag, ErrNoConvergence, err)
	}

	return res.X[0], nil
}

// SPDX-License-Identifier: MIT

package transforms

import "math"

// Defaults for the latitude reparameterization.
const (
	// DefaultLogAlphaMax scales a ∈ [0, 1] to log α ∈ [0, DefaultLogAlphaMax].
	DefaultLogAlphaMax = 10.0

	// DefaultLogBetaMax scales b ∈ [0, 1] to log β ∈ [0, DefaultLogBetaMax].
	DefaultLogBetaMax = 10.0

	// DefaultSigmaMax is the widest latitude σ (degrees) given finite
	// Jacobian weight. Beyond it the distribution is far from Gaussian.
	DefaultSigmaMax = 45.0
)

const (
	panicLogAlphaMax = "transforms: LogAlphaMax must be finite and > 0"
	panicLogBetaMax  = "transforms: LogBetaMax must be finite and > 0"
	panicSigmaMax    = "transforms: SigmaMax must be in (0, 90]"
)

// Option configures a Latitude.
type Option func(*Latitude)

// WithLogAlphaMax sets the upper bound of log α. Panics if v <= 0 or not finite.
func WithLogAlphaMax(v float64) Option {
	if !positiveFinite(v) {
		panic(panicLogAlphaMax)
	}

	return func(l *Latitude) { l.logAlphaMax = v }
}

// WithLogBetaMax sets the upper bound of log β. Panics if v <= 0 or not finite.
func WithLogBetaMax(v float64) Option {
	if !positiveFinite(v) {
		panic(panicLogBetaMax)
	}

	return func(l *Latitude) { l.logBetaMax = v }
}

// WithSigmaMax sets the σ cutoff (degrees) of LogJacobian.
func WithSigmaMax(deg float64) Option {
	if !(deg > 0 && deg <= 90) {
		panic(panicSigmaMax)
	}

	return func(l *Latitude) { l.sigmaMax = deg }
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

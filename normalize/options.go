package normalize

import "math"

// Defaults (single source of truth).
const (
	// DefaultOrder is the truncation order of the series in z.
	DefaultOrder = 20

	// DefaultZMax is the largest z for which the truncated series is trusted.
	DefaultZMax = 0.023
)

const (
	panicOrderInvalid = "normalize: order must be >= 1"
	panicZMaxInvalid  = "normalize: zmax must be finite and > 0"
)

// Option mutates Options.
type Option func(*Options)

// Options holds the effective normalization settings.
type Options struct {
	order int
	zmax  float64
}

// WithOrder sets the series truncation order. Panics if order < 1.
func WithOrder(order int) Option {
	if order < 1 {
		panic(panicOrderInvalid)
	}

	return func(o *Options) { o.order = order }
}

// WithZMax sets the validity threshold on z. Panics on non-positive or
// non-finite values.
func WithZMax(zmax float64) Option {
	if math.IsNaN(zmax) || math.IsInf(zmax, 0) || zmax <= 0 {
		panic(panicZMaxInvalid)
	}

	return func(o *Options) { o.zmax = zmax }
}

func gatherOptions(opts ...Option) Options {
	o := Options{order: DefaultOrder, zmax: DefaultZMax}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

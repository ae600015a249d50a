// SPDX-License-Identifier: MIT

package flux

// DefaultCovPoints is the number of quadrature nodes in cos i used under
// inclination marginalization.
const DefaultCovPoints = 300

const panicCovPoints = "flux: covariance points must be >= 2"

// Option configures a Linear projector.
type Option func(*options)

type options struct {
	marginalize bool
	points      int
}

// WithMarginalization integrates the flux moments over an isotropic
// inclination prior using points Gauss–Legendre nodes. Panics if points < 2.
func WithMarginalization(points int) Option {
	if points < 2 {
		panic(panicCovPoints)
	}

	return func(o *options) {
		o.marginalize = true
		o.points = points
	}
}

func gatherOptions(opts ...Option) options {
	o := options{points: DefaultCovPoints}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// SPDX-License-Identifier: MIT

package moments

import "gonum.org/v1/gonum/mat"

// Contrast returns the integral that superposes a Poisson number, with
// mean n, of independent features each darkening the surface by c times a
// draw from the input distribution.
//
// For input moments (e, Σ) of one feature:
//
//	mean = −c·n·e
//	cov  = c²·n·(Σ + e·eᵗ)
//
// the covariance being the compound-Poisson second moment n·E[yyᵗ].
func Contrast(c, n float64) Integral {
	return NewFunc("contrast", func(in Moments) (Moments, error) {
		if err := in.Validate(0); err != nil {
			return Moments{}, err
		}
		k := in.Size()
		out := Moments{
			Mean: mat.NewVecDense(k, nil),
			Cov:  mat.NewSymDense(k, nil),
		}
		out.Mean.ScaleVec(-c*n, in.Mean)
		out.Cov.CopySym(in.Cov)
		out.Cov.SymRankOne(out.Cov, 1, in.Mean)
		out.Cov.ScaleSym(c*c*n, out.Cov)

		return out, nil
	})
}

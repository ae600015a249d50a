// SPDX-License-Identifier: MIT

package transforms

// AlphaBeta returns the shape pair of the Beta distribution with mean mu
// and normalized variance nu = Var / (mu·(1−mu)):
//
//	α = mu·(1/nu − 1),  β = (1−mu)·(1/nu − 1).
//
// Both arguments must lie strictly inside (0, 1); anything else, NaN
// included, yields ErrDomain.
func AlphaBeta(mu, nu float64) (alpha, beta float64, err error) {
	if !(mu > 0 && mu < 1) {
		return 0, 0, domainErrorf("mean %g not in (0, 1)", mu)
	}
	if !(nu > 0 && nu < 1) {
		return 0, 0, domainErrorf("normalized variance %g not in (0, 1)", nu)
	}
	k := 1/nu - 1

	return mu * k, (1 - mu) * k, nil
}

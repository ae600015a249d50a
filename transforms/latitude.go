// SPDX-License-Identifier: MIT

package transforms

import "math"

const (
	degPerRad = 180 / math.Pi
	radPerDeg = math.Pi / 180
)

// Latitude is the (a, b) ↔ (mode, σ) reparameterization of the spot
// latitude distribution. The zero value is not usable; build one with
// NewLatitude.
type Latitude struct {
	logAlphaMax float64
	logBetaMax  float64
	sigmaMax    float64
}

// NewLatitude returns a Latitude with the defaults overridden by opts.
func NewLatitude(opts ...Option) Latitude {
	l := Latitude{
		logAlphaMax: DefaultLogAlphaMax,
		logBetaMax:  DefaultLogBetaMax,
		sigmaMax:    DefaultSigmaMax,
	}
	for _, fn := range opts {
		fn(&l)
	}

	return l
}

// LogAlphaMax returns the scale of a.
func (l Latitude) LogAlphaMax() float64 { return l.logAlphaMax }

// LogBetaMax returns the scale of b.
func (l Latitude) LogBetaMax() float64 { return l.logBetaMax }

// SigmaMax returns the σ cutoff in degrees.
func (l Latitude) SigmaMax() float64 { return l.sigmaMax }

// Shape returns α = exp(a·LogAlphaMax) and β = exp(b·LogBetaMax).
// Both a and b must lie in [0, 1].
func (l Latitude) Shape(a, b float64) (alpha, beta float64, err error) {
	if !(a >= 0 && a <= 1) {
		return 0, 0, domainErrorf("a = %g not in [0, 1]", a)
	}
	if !(b >= 0 && b <= 1) {
		return 0, 0, domainErrorf("b = %g not in [0, 1]", b)
	}

	return math.Exp(a * l.logAlphaMax), math.Exp(b * l.logBetaMax), nil
}

// modeCos returns c = cos(mode), the root in [0, 1) of
//
//	(α+β−1)c² + (β−1)c − (α−1) = 0,
//
// the stationary point of log p(φ) = (α−1)log cos φ + (β−1)log(1−cos φ) + log sin φ.
// The rationalized form avoids cancellation when α is close to 1.
func modeCos(alpha, beta float64) float64 {
	qa := alpha + beta - 1
	qb := beta - 1
	qc := alpha - 1
	if qc == 0 {
		return 0
	}

	return 2 * qc / (qb + math.Sqrt(qb*qb+4*qa*qc))
}

// curvature is −d²/dφ² log p(φ) at cos φ = c.
func curvature(alpha, beta, c float64) float64 {
	return (alpha-1)/(c*c) + (beta-1)/(1-c) + 1/(1-c*c)
}

// BetaToGauss returns the mode and standard deviation, both in degrees, of
// the Laplace approximation to the latitude distribution at (a, b).
//
// At a = 0 (α = 1) the density has no interior mode: the result is
// mode = 90 and σ = +Inf.
func (l Latitude) BetaToGauss(a, b float64) (mode, sigma float64, err error) {
	alpha, beta, err := l.Shape(a, b)
	if err != nil {
		return 0, 0, err
	}
	c := modeCos(alpha, beta)
	if c <= 0 {
		return 90, math.Inf(1), nil
	}
	h := curvature(alpha, beta, c)

	return math.Acos(c) * degPerRad, degPerRad / math.Sqrt(h), nil
}

// GaussToBeta inverts BetaToGauss. The mode must lie in (0, 90) and σ must
// be positive, both in degrees.
//
// Implementation:
//   - With c = cos(mode) and s = σ in radians, the mode condition and the
//     curvature condition H = 1/s² are both linear in (α, β):
//     α(c²−1) + β(c²+c) = c²+c−1
//     α/c²   + β/(1−c) = 1/s² + 1/c² + 1/(1−c) − 1/(1−c²)
//   - Solve the 2×2 system by Cramer's rule, then a = log α / LogAlphaMax
//     and b = log β / LogBetaMax.
//
// Errors: ErrDomain for out-of-range inputs or when the solution has a
// non-positive shape parameter. The returned (a, b) may fall outside
// [0, 1] if the requested distribution is outside the representable box.
func (l Latitude) GaussToBeta(mode, sigma float64) (a, b float64, err error) {
	if !(mode > 0 && mode < 90) {
		return 0, 0, domainErrorf("mode %g° not in (0, 90)", mode)
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return 0, 0, domainErrorf("sigma %g° must be positive and finite", sigma)
	}
	c := math.Cos(mode * radPerDeg)
	s := sigma * radPerDeg
	c2 := c * c

	m11, m12, r1 := c2-1, c2+c, c2+c-1
	m21, m22 := 1/c2, 1/(1-c)
	r2 := 1/(s*s) + 1/c2 + 1/(1-c) - 1/(1-c2)

	det := m11*m22 - m12*m21
	alpha := (r1*m22 - m12*r2) / det
	beta := (m11*r2 - r1*m21) / det
	if !(alpha > 0 && beta > 0) {
		return 0, 0, domainErrorf("(mode %g°, sigma %g°) gives alpha=%g beta=%g", mode, sigma, alpha, beta)
	}

	return math.Log(alpha) / l.logAlphaMax, math.Log(beta) / l.logBetaMax, nil
}

// LogJacobian returns log|det ∂(mode, σ)/∂(a, b)| with mode and σ in degrees.
//
// Implementation:
//   - Differentiate the mode condition F(c, α, β) = 0 implicitly:
//     ∂c/∂α = −(c²−1)/F_c, ∂c/∂β = −(c²+c)/F_c, F_c = 2(α+β−1)c + (β−1).
//   - The curvature H(c, α, β) enters σ = H^(−1/2); the H_c terms cancel in
//     the determinant, leaving det ∂(c,H)/∂(α,β) = (1+c)²/(c·F_c).
//   - Chain with dmode/dc = −1/√(1−c²), dσ/dH = −H^(−3/2)/2,
//     dα/da = α·LogAlphaMax, dβ/db = β·LogBetaMax and (180/π)².
//
// Behavior highlights:
//   - Returns −Inf when σ exceeds SigmaMax or when a = 0 (no interior mode);
//     an external sampler treats both as zero prior mass.
//
// Errors: ErrDomain when a or b falls outside [0, 1].
func (l Latitude) LogJacobian(a, b float64) (float64, error) {
	alpha, beta, err := l.Shape(a, b)
	if err != nil {
		return 0, err
	}
	c := modeCos(alpha, beta)
	if c <= 0 {
		return math.Inf(-1), nil
	}
	h := curvature(alpha, beta, c)
	if degPerRad/math.Sqrt(h) > l.sigmaMax {
		return math.Inf(-1), nil
	}
	fc := 2*(alpha+beta-1)*c + (beta - 1)

	logJ := -0.5*math.Log1p(-c*c) - math.Ln2 - 1.5*math.Log(h) +
		2*math.Log1p(c) - math.Log(c) - math.Log(math.Abs(fc)) +
		math.Log(alpha*l.logAlphaMax) + math.Log(beta*l.logBetaMax) +
		2*math.Log(degPerRad)

	return logJ, nil
}

// BetaToGauss applies the default Latitude.
func BetaToGauss(a, b float64) (mode, sigma float64, err error) {
	return NewLatitude().BetaToGauss(a, b)
}

// GaussToBeta applies the default Latitude.
func GaussToBeta(mode, sigma float64) (a, b float64, err error) {
	return NewLatitude().GaussToBeta(mode, sigma)
}

// LogJacobian applies the default Latitude.
func LogJacobian(a, b float64) (float64, error) {
	return NewLatitude().LogJacobian(a, b)
}

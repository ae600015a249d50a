package normalize

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/linalg"
)

var (
	// ErrMeanLevel is returned when the mean level μ is zero or not finite.
	ErrMeanLevel = errors.New("normalize: mean level must be finite and non-zero")

	// ErrEmptyCovariance is returned for a nil or empty covariance.
	ErrEmptyCovariance = errors.New("normalize: empty covariance")
)

// State reports the per-call quantities of a normalization.
type State struct {
	M       float64 // mean of all entries of Σ
	Z       float64 // M / μ²
	Coeffs  Coeffs
	Clamped bool // z exceeded zmax; the covariance was replaced by +Inf
}

// Covariance returns the normalized version of sig at mean level mu.
//
// Implementation:
//   - Stage 1: m = mean(Σ); if m <= 0 there is no baseline variance to
//     redistribute and Σ is returned unchanged (copied).
//   - Stage 2: z = m/μ²; z > zmax ⇒ +Inf entrywise (Clamped = true).
//   - Stage 3: q = Σ·1/(K·m), p = 1 − q, (α, β) = Coefficients(z, order),
//     out = α/μ²·Σ + z·((α+β)·ppᵗ − α·qqᵗ).
//
// Complexity: O(K²) time and space.
func Covariance(sig mat.Symmetric, mu float64, opts ...Option) (*mat.SymDense, State, error) {
	if sig == nil || sig.SymmetricDim() == 0 {
		return nil, State{}, ErrEmptyCovariance
	}
	if mu == 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, State{}, fmt.Errorf("%w: got %g", ErrMeanLevel, mu)
	}
	o := gatherOptions(opts...)
	k := sig.SymmetricDim()

	var st State
	st.M = linalg.Mean(sig)
	out := mat.NewSymDense(k, nil)
	if !(st.M > 0) {
		out.CopySym(sig)
		return out, st, nil
	}

	st.Z = st.M / (mu * mu)
	if st.Z > o.zmax {
		st.Clamped = true
		return linalg.PositiveInf(k), st, nil
	}
	st.Coeffs = Coefficients(st.Z, o.order)

	q := linalg.RowSums(sig)
	q.ScaleVec(1/(float64(k)*st.M), q)
	p := mat.NewVecDense(k, nil)
	for i := 0; i < k; i++ {
		p.SetVec(i, 1-q.AtVec(i))
	}

	alpha, beta := st.Coeffs.Alpha, st.Coeffs.Beta
	out.ScaleSym(alpha/(mu*mu), sig)
	out.SymRankOne(out, st.Z*(alpha+beta), p)
	out.SymRankOne(out, -st.Z*alpha, q)

	return out, st, nil
}

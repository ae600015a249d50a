// SPDX-License-Identifier: MIT

package process_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/linalg"
	"github.com/katalvlaran/spotgp/process"
)

// directLogLike evaluates the multivariate normal log density with an LU
// inverse and determinant, independent of the Cholesky path.
func directLogLike(t *testing.T, r *mat.VecDense, sigma mat.Matrix) float64 {
	t.Helper()
	var inv mat.Dense
	require.NoError(t, inv.Inverse(sigma))
	var x mat.VecDense
	x.MulVec(&inv, r)
	k := float64(r.Len())

	return -0.5*mat.Dot(r, &x) - 0.5*math.Log(mat.Det(sigma)) - 0.5*k*math.Log(2*math.Pi)
}

func observed() []float64 {
	f := make([]float64, nobs)
	for i := range f {
		f[i] = 0.3*math.Sin(float64(i)) - 0.1
	}

	return f
}

func TestLogLikelihood_IdentityCovMatchesDirect(t *testing.T) {
	p := newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts()...)
	obs := process.Observations{T: times(), Flux: observed()}

	got, err := p.LogLikelihood(obs, geometry())
	require.NoError(t, err)

	a := design()
	var sigma mat.Dense
	sigma.Mul(a, a.T())
	want := directLogLike(t, mat.NewVecDense(nobs, observed()), &sigma)
	assert.InDelta(t, want, got, 1e-8*math.Abs(want))
}

func TestLogLikelihood_NoiseAndBaseline(t *testing.T) {
	mu := rampMean(0.01)
	cov := structuredCov(0.02)
	p := newLeaf(t, mu, cov, plainOpts()...)
	obs := process.Observations{
		T:            times(),
		Flux:         observed(),
		Noise:        linalg.Scalar(0.01),
		BaselineMean: 0.2,
		BaselineVar:  0.05,
	}
	got, err := p.LogLikelihood(obs, geometry())
	require.NoError(t, err)

	a := design()
	var as, sigma mat.Dense
	as.Mul(a, cov)
	sigma.Mul(&as, a.T())
	for i := 0; i < nobs; i++ {
		for j := 0; j < nobs; j++ {
			v := sigma.At(i, j) + 0.05
			if i == j {
				v += 0.01
			}
			sigma.Set(i, j, v)
		}
	}
	var am mat.VecDense
	am.MulVec(a, mu)
	r := mat.NewVecDense(nobs, nil)
	for i, f := range observed() {
		r.SetVec(i, f-am.AtVec(i)-0.2)
	}
	want := directLogLike(t, r, &sigma)
	assert.InDelta(t, want, got, 1e-8*math.Abs(want))

	// Diagonal and full noise of the same matrix agree with the scalar form.
	diag := make(linalg.Diagonal, nobs)
	for i := range diag {
		diag[i] = 0.01
	}
	obs.Noise = diag
	gotDiag, err := p.LogLikelihood(obs, geometry())
	require.NoError(t, err)
	assert.InDelta(t, got, gotDiag, 1e-10)

	obs.Noise = linalg.Full{M: scaledIdentity(nobs, 0.01)}
	gotFull, err := p.LogLikelihood(obs, geometry())
	require.NoError(t, err)
	assert.InDelta(t, got, gotFull, 1e-10)
}

func TestLogLikelihood_NormalizationPastThresholdIsNegInf(t *testing.T) {
	// mean(A·Aᵗ) ≈ 0.113 > 0.023.
	p := newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1),
		plainOpts(process.WithNormalized(true))...)
	obs := process.Observations{T: times(), Flux: observed(), Noise: linalg.Scalar(1e-4)}

	ll, err := p.LogLikelihood(obs, geometry())
	require.NoError(t, err)
	assert.True(t, math.IsInf(ll, -1))

	cov, err := p.Cov(times(), geometry())
	require.NoError(t, err)
	assert.True(t, math.IsInf(cov.At(0, 0), 1))

	// Raising the threshold makes the covariance finite again.
	q := newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1),
		plainOpts(process.WithNormalized(true), process.WithNormalizationZMax(0.5),
			process.WithNormalizationOrder(3))...)
	cov, err = q.Cov(times(), geometry())
	require.NoError(t, err)
	assert.NoError(t, linalg.ValidateFinite(cov))
}

func TestLogLikelihood_NormalizedSmallVariance(t *testing.T) {
	p := newLeaf(t, rampMean(1e-3), scaledIdentity(nylm, 1e-3),
		plainOpts(process.WithNormalized(true))...)

	mean, err := p.Mean(times(), geometry())
	require.NoError(t, err)
	assert.Equal(t, 0.0, mat.Norm(mean, 2), "normalized mean is identically zero")

	cov, err := p.Cov(times(), geometry())
	require.NoError(t, err)
	sums := linalg.RowSums(cov)
	for i := 0; i < nobs; i++ {
		assert.InDelta(t, 0, sums.AtVec(i), 1e-12)
	}

	ll, err := p.LogLikelihood(process.Observations{T: times(), Flux: observed(), Noise: linalg.Scalar(1e-2)}, geometry())
	require.NoError(t, err)
	assert.False(t, math.IsInf(ll, 0) || math.IsNaN(ll))
}

func TestLogLikelihood_NotFactorableIsNegInf(t *testing.T) {
	// A negative-definite noise term makes the total covariance indefinite.
	p := newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts()...)
	obs := process.Observations{T: times(), Flux: observed(), Noise: linalg.Full{M: scaledIdentity(nobs, -100)}}

	ll, err := p.LogLikelihood(obs, geometry())
	require.NoError(t, err)
	assert.True(t, math.IsInf(ll, -1))
}

func TestLogLikelihood_NaNFluxIsNegInf(t *testing.T) {
	p := newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts()...)
	f := observed()
	f[3] = math.NaN()

	ll, err := p.LogLikelihood(process.Observations{T: times(), Flux: f, Noise: linalg.Scalar(1e-4)}, geometry())
	require.NoError(t, err)
	assert.True(t, math.IsInf(ll, -1))
}

func TestLogLikelihood_Errors(t *testing.T) {
	p := newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts()...)

	_, err := p.LogLikelihood(process.Observations{T: times(), Flux: observed()[:3]}, geometry())
	assert.ErrorIs(t, err, process.ErrObservations)

	_, err = p.LogLikelihood(process.Observations{T: times(), Flux: observed(), BaselineVar: -1}, geometry())
	assert.ErrorIs(t, err, process.ErrObservations)

	_, err = p.LogLikelihood(process.Observations{T: times(), Flux: observed(), Noise: linalg.Diagonal{1, 2}}, geometry())
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)

	bad := geometry()
	bad.Inclination = 120
	_, err = p.LogLikelihood(process.Observations{T: times(), Flux: observed()}, bad)
	assert.Error(t, err)
}

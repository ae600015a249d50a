// SPDX-License-Identifier: MIT

package process_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/linalg"
	"github.com/katalvlaran/spotgp/moments"
	"github.com/katalvlaran/spotgp/process"
	"github.com/katalvlaran/spotgp/temporal"
)

func TestCompose_SumsMoments(t *testing.T) {
	a := newLeaf(t, rampMean(0.01), structuredCov(0.02), plainOpts()...)
	b := newLeaf(t, rampMean(-0.03), scaledIdentity(nylm, 0.05), plainOpts()...)

	sum, err := a.Add(b)
	require.NoError(t, err)

	var wantMean mat.VecDense
	wantMean.AddVec(a.MeanYlm(), b.MeanYlm())
	var wantCov mat.SymDense
	wantCov.AddSym(a.CovYlm(), b.CovYlm())
	assert.True(t, mat.EqualApprox(&wantMean, sum.MeanYlm(), 1e-15))
	assert.True(t, mat.EqualApprox(&wantCov, sum.CovYlm(), 1e-15))
	assert.Len(t, sum.Children(), 2)
	assert.Same(t, a.Stream(), sum.Stream())

	var l mat.Dense
	l.Mul(sum.CholYlm(), sum.CholYlm().T())
	assert.True(t, mat.EqualApprox(&l, &wantCov, 1e-12), "factor refreshed")
}

func TestCompose_SelfEqualsDoubled(t *testing.T) {
	mu, cov := rampMean(0.01), structuredCov(0.02)
	a := newLeaf(t, mu, cov, plainOpts()...)
	aa, err := process.Compose(a, a)
	require.NoError(t, err)

	var mu2 mat.VecDense
	mu2.ScaleVec(2, mu)
	var cov2 mat.SymDense
	cov2.ScaleSym(2, cov)
	doubled := newLeaf(t, &mu2, &cov2, plainOpts()...)

	assert.True(t, mat.EqualApprox(doubled.MeanYlm(), aa.MeanYlm(), 1e-15))
	assert.True(t, mat.EqualApprox(doubled.CovYlm(), aa.CovYlm(), 1e-15))

	obs := process.Observations{T: times(), Flux: observed(), Noise: linalg.Scalar(0.01)}
	want, err := doubled.LogLikelihood(obs, geometry())
	require.NoError(t, err)
	got, err := aa.LogLikelihood(obs, geometry())
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-10)
}

func TestCompose_Associative(t *testing.T) {
	a := newLeaf(t, rampMean(0.01), structuredCov(0.02), plainOpts()...)
	b := newLeaf(t, rampMean(0.02), scaledIdentity(nylm, 0.05), plainOpts()...)
	c := newLeaf(t, rampMean(-0.01), structuredCov(0.01), plainOpts()...)

	ab, err := process.Compose(a, b)
	require.NoError(t, err)
	left, err := ab.Add(c)
	require.NoError(t, err)

	bc, err := process.Compose(b, c)
	require.NoError(t, err)
	right, err := a.Add(bc)
	require.NoError(t, err)

	all, err := process.Sum(a, b, c)
	require.NoError(t, err)

	for _, p := range []*process.Composed{right, all} {
		assert.True(t, mat.EqualApprox(left.MeanYlm(), p.MeanYlm(), 1e-14))
		assert.True(t, mat.EqualApprox(left.CovYlm(), p.CovYlm(), 1e-14))
		assert.Len(t, p.Children(), 3, "children are flattened")
	}
	assert.Same(t, a, right.Children()[0])
	assert.Same(t, c, right.Children()[2])
}

func TestCompose_ProjectorRebuiltFromSum(t *testing.T) {
	// Normalization is nonlinear, so the composed covariance is not the sum
	// of the children's normalized covariances.
	opts := plainOpts(process.WithNormalized(true))
	a := newLeaf(t, rampMean(1e-3), scaledIdentity(nylm, 1e-3), opts...)
	b := newLeaf(t, rampMean(2e-3), structuredCov(1e-3), opts...)
	sum, err := process.Compose(a, b)
	require.NoError(t, err)

	// The reference: a single leaf with the summed moments.
	var mu mat.VecDense
	mu.AddVec(a.MeanYlm(), b.MeanYlm())
	var cov mat.SymDense
	cov.AddSym(a.CovYlm(), b.CovYlm())
	ref := newLeaf(t, &mu, &cov, opts...)

	want, err := ref.Cov(times(), geometry())
	require.NoError(t, err)
	got, err := sum.Cov(times(), geometry())
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want, got, 1e-14))

	ca, err := a.Cov(times(), geometry())
	require.NoError(t, err)
	cb, err := b.Cov(times(), geometry())
	require.NoError(t, err)
	var naive mat.SymDense
	naive.AddSym(ca, cb)
	assert.False(t, mat.EqualApprox(&naive, got, 1e-12))
}

func TestCompose_Incompatible(t *testing.T) {
	base := newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts()...)

	deg6 := (6 + 1) * (6 + 1)
	stage6, err := moments.NewFixed(mat.NewVecDense(deg6, nil), scaledIdentity(deg6, 1))
	require.NoError(t, err)
	other, err := process.New(stage6, flux.LinearFactory(flux.FixedDesign(mat.NewDense(nobs, deg6, nil))),
		plainOpts(process.WithDegree(6))...)
	require.NoError(t, err)

	cases := []struct {
		field string
		p     process.Process
	}{
		{"degree", other},
		{"normalized", newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts(process.WithNormalized(true))...)},
		{"limb-darkening degree", newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts(process.WithLimbDarkeningDegree(1))...)},
		{"marginalize over inclination", newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts(process.WithMarginalizeOverInclination(true))...)},
		{"covariance points", newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts(process.WithCovPoints(50))...)},
		{"time variability", newLeaf(t, mat.NewVecDense(nylm, nil), scaledIdentity(nylm, 1), plainOpts(process.WithTimescale(2, temporal.Matern52))...)},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			_, err := process.Compose(base, tc.p)
			require.ErrorIs(t, err, process.ErrIncompatible)
			assert.Contains(t, err.Error(), tc.field)

			_, err = process.Compose(tc.p, base)
			assert.ErrorIs(t, err, process.ErrIncompatible)
		})
	}

	_, err = process.Sum(base)
	assert.ErrorIs(t, err, process.ErrDomain)
}

func TestComposed_PerChildAccessors(t *testing.T) {
	s1 := moments.DefaultSpots()
	s2 := moments.DefaultSpots()
	s2.A, s2.B = 0.2, 0.5
	a := newLeaf(t, rampMean(0.01), structuredCov(0.02), plainOpts(process.WithSpots(s1))...)
	b := newLeaf(t, rampMean(0.01), structuredCov(0.02), plainOpts(process.WithSpots(s2))...)
	sum, err := process.Compose(a, b)
	require.NoError(t, err)

	assert.Equal(t, []moments.Spots{s1, s2}, sum.Spots())
	jac, err := sum.LogJacobian()
	require.NoError(t, err)
	require.Len(t, jac, 2)
	ja, err := a.LogJacobian()
	require.NoError(t, err)
	assert.Equal(t, ja, jac[0])
	assert.NotEqual(t, jac[0], jac[1])
}

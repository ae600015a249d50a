// SPDX-License-Identifier: MIT

package flux_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/moments"
)

var base = mat.NewDense(3, 2, []float64{
	1, 0.5,
	0.2, 1,
	-0.3, 0.7,
})

func coeffMoments() moments.Moments {
	return moments.Moments{
		Mean: mat.NewVecDense(2, []float64{0.4, -0.1}),
		Cov:  mat.NewSymDense(2, []float64{1, 0.3, 0.3, 2}),
	}
}

// cosDesign scales base by cos(inclination).
func cosDesign(t []float64, g flux.Geometry) (*mat.Dense, error) {
	var a mat.Dense
	a.Scale(math.Cos(g.Inclination*math.Pi/180), base.Slice(0, len(t), 0, 2))
	return &a, nil
}

func TestLinear_FixedInclination(t *testing.T) {
	m := coeffMoments()
	p, err := flux.NewLinear(m, cosDesign)
	require.NoError(t, err)
	times := []float64{0, 0.1, 0.2}
	g := flux.Geometry{Inclination: 60, Period: 1}

	a, err := p.DesignMatrix(times, g)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, a.At(0, 0), 1e-12)

	var wantMean mat.VecDense
	wantMean.MulVec(a, m.Mean)
	mean, err := p.Mean(times, g)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(&wantMean, mean, 1e-12))

	var as, want mat.Dense
	as.Mul(a, m.Cov)
	want.Mul(&as, a.T())
	cov, err := p.Cov(times, g)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(&want, cov, 1e-12))
}

func TestLinear_MarginalizedMatchesClosedForm(t *testing.T) {
	m := coeffMoments()
	p, err := flux.NewLinear(m, cosDesign, flux.WithMarginalization(4))
	require.NoError(t, err)
	assert.True(t, p.Marginalized())
	times := []float64{0, 1, 2}
	g := flux.DefaultGeometry()

	_, err = p.DesignMatrix(times, g)
	assert.ErrorIs(t, err, flux.ErrMarginalized)

	// E[cos i] = 1/2 and E[cos² i] = 1/3 under cos i ~ U(0, 1).
	var bm mat.VecDense
	bm.MulVec(base, m.Mean)
	mean, err := p.Mean(times, g)
	require.NoError(t, err)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, 0.5*bm.AtVec(k), mean.AtVec(k), 1e-12)
	}

	second := mat.NewSymDense(2, nil)
	second.SymRankOne(m.Cov, 1, m.Mean)
	var bs, bsb mat.Dense
	bs.Mul(base, second)
	bsb.Mul(&bs, base.T())
	cov, err := p.Cov(times, g)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := bsb.At(i, j)/3 - 0.25*bm.AtVec(i)*bm.AtVec(j)
			assert.InDelta(t, want, cov.At(i, j), 1e-12, "(%d,%d)", i, j)
		}
	}
}

func TestLinearFactory(t *testing.T) {
	f := flux.LinearFactory(flux.FixedDesign(base))
	p, err := f(coeffMoments())
	require.NoError(t, err)
	mean, err := p.Mean([]float64{0, 1, 2}, flux.DefaultGeometry())
	require.NoError(t, err)
	assert.InDelta(t, 0.35, mean.AtVec(0), 1e-12)

	_, err = p.Mean([]float64{0, 1}, flux.DefaultGeometry())
	assert.ErrorIs(t, err, flux.ErrShape)
	_, err = p.Cov(nil, flux.DefaultGeometry())
	assert.ErrorIs(t, err, flux.ErrNoTimes)

	pm, err := f(coeffMoments(), flux.WithMarginalization(3))
	require.NoError(t, err)
	_, err = pm.DesignMatrix([]float64{0, 1, 2}, flux.DefaultGeometry())
	assert.ErrorIs(t, err, flux.ErrMarginalized)
}

func TestLinear_Errors(t *testing.T) {
	_, err := flux.NewLinear(coeffMoments(), nil)
	assert.ErrorIs(t, err, flux.ErrNilDesign)

	_, err = flux.NewLinear(moments.Moments{}, cosDesign)
	assert.ErrorIs(t, err, moments.ErrNilMoments)

	wide := flux.FixedDesign(mat.NewDense(1, 3, nil))
	p, err := flux.NewLinear(coeffMoments(), wide)
	require.NoError(t, err)
	_, err = p.DesignMatrix([]float64{0}, flux.DefaultGeometry())
	assert.ErrorIs(t, err, flux.ErrShape)

	assert.Panics(t, func() { flux.WithMarginalization(1) })
}

func TestGeometry_Validate(t *testing.T) {
	require.NoError(t, flux.DefaultGeometry().Validate(2))

	cases := []flux.Geometry{
		{Inclination: -1, Period: 1},
		{Inclination: 91, Period: 1},
		{Inclination: 60, Period: 0},
		{Inclination: 60, Period: 1, LimbDarkening: []float64{0.1, 0.2, 0.3}},
		{Inclination: 60, Period: 1, LimbDarkening: []float64{math.NaN()}},
	}
	for i, g := range cases {
		assert.ErrorIs(t, g.Validate(2), flux.ErrGeometry, "case %d", i)
	}
}

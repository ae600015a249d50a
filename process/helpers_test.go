// SPDX-License-Identifier: MIT

package process_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/moments"
	"github.com/katalvlaran/spotgp/process"
)

const (
	testDegree = 5
	nylm       = (testDegree + 1) * (testDegree + 1)
	nobs       = 10
)

// design is a full-rank nobs×nylm matrix: identity on the leading block
// plus a smooth perturbation.
func design() *mat.Dense {
	a := mat.NewDense(nobs, nylm, nil)
	for k := 0; k < nobs; k++ {
		for j := 0; j < nylm; j++ {
			v := 0.1 * math.Cos(0.37*float64((k+1)*(j+1)))
			if j == k {
				v++
			}
			a.Set(k, j, v)
		}
	}

	return a
}

func times() []float64 {
	t := make([]float64, nobs)
	for i := range t {
		t[i] = 0.1 * float64(i)
	}

	return t
}

func scaledIdentity(n int, v float64) *mat.SymDense {
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		s.SetSym(i, i, v)
	}

	return s
}

// structuredCov is v·(I + ½·wwᵗ) with a smooth w.
func structuredCov(v float64) *mat.SymDense {
	w := mat.NewVecDense(nylm, nil)
	for j := 0; j < nylm; j++ {
		w.SetVec(j, math.Sin(0.3*float64(j+1)))
	}
	s := scaledIdentity(nylm, 1)
	s.SymRankOne(s, 0.5, w)
	s.ScaleSym(v, s)

	return s
}

func rampMean(scale float64) *mat.VecDense {
	m := mat.NewVecDense(nylm, nil)
	for j := 0; j < nylm; j++ {
		m.SetVec(j, scale*float64(j%7-3))
	}

	return m
}

// plainOpts is a degree-5, unnormalized, fixed-inclination, jitter-free
// configuration whose moments are exactly the supplied ones.
func plainOpts(extra ...process.Option) []process.Option {
	return append([]process.Option{
		process.WithDegree(testDegree),
		process.WithNormalized(false),
		process.WithMarginalizeOverInclination(false),
		process.WithJitter(0, 0),
		process.WithSeed(7),
	}, extra...)
}

func newLeaf(t *testing.T, mean *mat.VecDense, cov *mat.SymDense, opts ...process.Option) *process.Leaf {
	t.Helper()
	stage, err := moments.NewFixed(mean, cov)
	require.NoError(t, err)
	p, err := process.New(stage, flux.LinearFactory(flux.FixedDesign(design())), opts...)
	require.NoError(t, err)

	return p
}

func geometry() flux.Geometry {
	return flux.Geometry{Inclination: 60, Period: 1}
}

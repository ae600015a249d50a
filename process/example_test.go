// SPDX-License-Identifier: MIT

package process_test

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/linalg"
	"github.com/katalvlaran/spotgp/moments"
	"github.com/katalvlaran/spotgp/process"
)

func Example() {
	const degree = 5
	n := (degree + 1) * (degree + 1)

	// Moments of one unit spot, integrated elsewhere.
	single := moments.Moments{Mean: mat.NewVecDense(n, nil), Cov: mat.NewSymDense(n, nil)}
	for i := 0; i < n; i++ {
		single.Mean.SetVec(i, 0.01)
		single.Cov.SetSym(i, i, 0.02)
	}
	t := []float64{0, 0.25, 0.5, 0.75}
	a := mat.NewDense(len(t), n, nil)
	for k := range t {
		a.Set(k, k, 1)
	}

	p, err := process.NewFromSpots(
		moments.SingleSpotFactory(single),
		flux.LinearFactory(flux.FixedDesign(a)),
		process.WithDegree(degree),
		process.WithNormalized(false),
		process.WithMarginalizeOverInclination(false),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	twin, _ := p.Add(p)

	obs := process.Observations{T: t, Flux: []float64{0, -0.01, 0.01, 0}, Noise: linalg.Scalar(1e-4)}
	ll, err := twin.LogLikelihood(obs, flux.DefaultGeometry())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.CoefficientCount(), len(twin.Children()), !math.IsInf(ll, 0))
	// Output: 36 2 true
}

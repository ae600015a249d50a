// SPDX-License-Identifier: MIT

package process

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/linalg"
)

// Observations is an observed light curve with its noise model.
type Observations struct {
	T    []float64
	Flux []float64

	// Noise is the data covariance; nil means noiseless.
	Noise linalg.DataCov

	// BaselineMean is subtracted from the flux.
	BaselineMean float64

	// BaselineVar is the variance of an unknown constant offset. It is
	// added to every entry of the covariance, which marginalizes the
	// offset in closed form.
	BaselineVar float64
}

// Len returns the number of observations.
func (o Observations) Len() int { return len(o.T) }

func (o Observations) validate() error {
	switch {
	case len(o.T) == 0:
		return fmt.Errorf("%w: no observations", ErrObservations)
	case len(o.Flux) != len(o.T):
		return fmt.Errorf("%w: %d flux values for %d times", ErrObservations, len(o.Flux), len(o.T))
	case math.IsNaN(o.BaselineMean) || math.IsInf(o.BaselineMean, 0):
		return fmt.Errorf("%w: baseline mean %g", ErrObservations, o.BaselineMean)
	case !(o.BaselineVar >= 0) || math.IsInf(o.BaselineVar, 0):
		return fmt.Errorf("%w: baseline variance %g", ErrObservations, o.BaselineVar)
	}

	return nil
}

// noise returns the data covariance plus the baseline variance in every
// entry.
func (o Observations) noise() (*mat.SymDense, error) {
	k := o.Len()
	var c *mat.SymDense
	if o.Noise == nil {
		c = mat.NewSymDense(k, nil)
	} else {
		var err error
		if c, err = o.Noise.Dense(k); err != nil {
			return nil, err
		}
	}
	if o.BaselineVar != 0 {
		c = linalg.AddConstant(c, o.BaselineVar)
	}

	return c, nil
}

// residual returns flux − mean − baseline.
func (o Observations) residual(mean mat.Vector) *mat.VecDense {
	r := mat.NewVecDense(o.Len(), nil)
	for i, f := range o.Flux {
		r.SetVec(i, f-mean.AtVec(i)-o.BaselineMean)
	}

	return r
}

// LogLikelihood returns the log marginal likelihood of obs,
//
//	−½·rᵗΣ⁻¹r − Σ log diag(L) − ½K·log 2π,
//
// with Σ = Cov + noise + baseline variance, L its Cholesky factor and
// r = flux − Mean − baseline mean.
//
// Behavior highlights:
//   - A covariance that cannot be factored (including the +Inf covariance
//     past the normalization threshold) and a NaN result both yield −Inf
//     with a nil error, so samplers reject the region instead of failing.
//
// Errors: malformed observations, geometry or noise shape.
func (c *core) LogLikelihood(obs Observations, g flux.Geometry) (float64, error) {
	if err := obs.validate(); err != nil {
		return 0, processErrorf(opLogLike, err)
	}
	mean, err := c.Mean(obs.T, g)
	if err != nil {
		return 0, processErrorf(opLogLike, err)
	}
	cov, err := c.Cov(obs.T, g)
	if err != nil {
		return 0, processErrorf(opLogLike, err)
	}
	noise, err := obs.noise()
	if err != nil {
		return 0, processErrorf(opLogLike, err)
	}
	cov.AddSym(cov, noise)

	chol, err := linalg.Cholesky(cov)
	if err != nil {
		c.cfg.log.Debug("light-curve covariance not factorable", zap.Error(err))
		return math.Inf(-1), nil
	}
	r := obs.residual(mean)
	x, err := linalg.SolveVec(chol, r)
	if err != nil {
		return 0, processErrorf(opLogLike, err)
	}
	k := float64(obs.Len())
	ll := -0.5*mat.Dot(r, x) - linalg.HalfLogDet(chol) - 0.5*k*math.Log(2*math.Pi)
	if math.IsNaN(ll) {
		return math.Inf(-1), nil
	}

	return ll, nil
}

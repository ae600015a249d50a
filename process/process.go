// SPDX-License-Identifier: MIT

package process

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/linalg"
	"github.com/katalvlaran/spotgp/moments"
	"github.com/katalvlaran/spotgp/normalize"
	"github.com/katalvlaran/spotgp/rng"
	"github.com/katalvlaran/spotgp/temporal"
)

// Process is a Gaussian process over stellar surfaces and their light
// curves. It is implemented by *Leaf and *Composed only.
type Process interface {
	Degree() int
	LimbDarkeningDegree() int
	CoefficientCount() int
	Normalized() bool
	MarginalizeOverInclination() bool
	CovPoints() int
	TimeVariable() bool
	Stream() *rng.Stream

	MeanYlm() *mat.VecDense
	CovYlm() *mat.SymDense
	CholYlm() *mat.TriDense

	Mean(t []float64, g flux.Geometry) (*mat.VecDense, error)
	Cov(t []float64, g flux.Geometry) (*mat.SymDense, error)
	LogLikelihood(obs Observations, g flux.Geometry) (float64, error)
	Conditional(obs Observations, g flux.Geometry) (*Posterior, error)

	SamplePrior(n int) (*mat.Dense, error)
	SamplePriorLowRank(n, rank int) (*mat.Dense, error)
	SamplePosterior(post *Posterior, n int) (*mat.Dense, error)
	SampleFlux(t []float64, g flux.Geometry, n int) (*mat.Dense, error)
	Flux(y *mat.Dense, t []float64, g flux.Geometry) (*mat.Dense, error)

	engine() *core
}

// core is the state shared by leaves and composed processes: the
// coefficient moments, their cached factorization and the flux projector
// built from them.
type core struct {
	cfg     settings
	factory flux.Factory

	mom    moments.Moments
	chol   *mat.Cholesky
	lInv   *mat.SymDense  // cov_ylm⁻¹
	lInvMu *mat.VecDense  // cov_ylm⁻¹ · mean_ylm
	proj   flux.Projector // built from mom
}

// newCore factors m and builds the projector.
func newCore(cfg settings, factory flux.Factory, m moments.Moments) (*core, error) {
	if factory == nil {
		return nil, domainErrorf("nil flux projector factory")
	}
	c := &core{cfg: cfg, factory: factory, mom: m}
	if err := c.refresh(); err != nil {
		return nil, err
	}

	return c, nil
}

// refresh recomputes every quantity derived from the coefficient moments.
func (c *core) refresh() error {
	n := c.CoefficientCount()
	if err := c.mom.Validate(n); err != nil {
		return err
	}
	chol, err := linalg.Cholesky(c.mom.Cov)
	if err != nil {
		return err
	}
	lInv, err := linalg.Inverse(chol)
	if err != nil {
		return err
	}
	lInvMu, err := linalg.SolveVec(chol, c.mom.Mean)
	if err != nil {
		return err
	}
	var popts []flux.Option
	if c.cfg.marginalize {
		popts = append(popts, flux.WithMarginalization(c.cfg.covPoints))
	}
	proj, err := c.factory(c.mom, popts...)
	if err != nil {
		return err
	}
	c.chol, c.lInv, c.lInvMu, c.proj = chol, lInv, lInvMu, proj

	return nil
}

func (c *core) engine() *core { return c }

// Degree returns the spherical-harmonic degree.
func (c *core) Degree() int { return c.cfg.degree }

// LimbDarkeningDegree returns the limb-darkening degree.
func (c *core) LimbDarkeningDegree() int { return c.cfg.udeg }

// CoefficientCount returns (degree+1)².
func (c *core) CoefficientCount() int { return (c.cfg.degree + 1) * (c.cfg.degree + 1) }

// Normalized reports whether light curves are modeled mean-normalized.
func (c *core) Normalized() bool { return c.cfg.normalized }

// MarginalizeOverInclination reports whether inclination is integrated out.
func (c *core) MarginalizeOverInclination() bool { return c.cfg.marginalize }

// CovPoints returns the inclination quadrature resolution.
func (c *core) CovPoints() int { return c.cfg.covPoints }

// TimeVariable reports whether the surface evolves with a temporal kernel.
func (c *core) TimeVariable() bool { return c.cfg.kernel != nil }

// Stream returns the random stream, shared with composed processes.
func (c *core) Stream() *rng.Stream { return c.cfg.stream }

// MeanYlm returns a copy of the coefficient mean.
func (c *core) MeanYlm() *mat.VecDense { return mat.VecDenseCopyOf(c.mom.Mean) }

// CovYlm returns a copy of the coefficient covariance.
func (c *core) CovYlm() *mat.SymDense { return c.mom.Clone().Cov }

// CholYlm returns the lower Cholesky factor of the coefficient covariance.
func (c *core) CholYlm() *mat.TriDense { return linalg.LowerFactor(c.chol) }

// Mean returns the light-curve mean at times t. It is identically zero for
// normalized processes, whose flux is measured relative to its own mean.
func (c *core) Mean(t []float64, g flux.Geometry) (*mat.VecDense, error) {
	if err := c.checkGrid(t, g); err != nil {
		return nil, processErrorf(opMean, err)
	}
	if c.cfg.normalized {
		return mat.NewVecDense(len(t), nil), nil
	}
	m, err := c.proj.Mean(t, g)
	if err != nil {
		return nil, processErrorf(opMean, err)
	}

	return m, nil
}

// Cov returns the light-curve covariance at times t.
//
// Implementation:
//   - Stage 1: project the coefficient covariance through the flux projector.
//   - Stage 2: for time-variable processes, take the Hadamard product with
//     the temporal kernel Gram matrix.
//   - Stage 3: for normalized processes, apply the normalization series at
//     mean level 1 + f̄₀, where f̄ is the projected (unnormalized) mean.
//
// Behavior highlights:
//   - Past the normalization threshold the result is +Inf entrywise; this
//     is a value, not an error.
func (c *core) Cov(t []float64, g flux.Geometry) (*mat.SymDense, error) {
	if err := c.checkGrid(t, g); err != nil {
		return nil, processErrorf(opCov, err)
	}
	cov, err := c.proj.Cov(t, g)
	if err != nil {
		return nil, processErrorf(opCov, err)
	}
	if c.TimeVariable() {
		kt, err := temporal.Gram(c.cfg.kernel, t, c.cfg.tau)
		if err != nil {
			return nil, processErrorf(opCov, err)
		}
		if cov, err = linalg.Hadamard(cov, kt); err != nil {
			return nil, processErrorf(opCov, err)
		}
	}
	if !c.cfg.normalized {
		return cov, nil
	}

	fm, err := c.proj.Mean(t, g)
	if err != nil {
		return nil, processErrorf(opCov, err)
	}
	out, st, err := normalize.Covariance(cov, 1+fm.AtVec(0),
		normalize.WithOrder(c.cfg.normOrder), normalize.WithZMax(c.cfg.normZMax))
	if err != nil {
		return nil, processErrorf(opCov, err)
	}
	if st.Clamped {
		c.cfg.log.Debug("normalization past validity threshold",
			zap.Float64("z", st.Z), zap.Float64("zmax", c.cfg.normZMax))
	}

	return out, nil
}

func (c *core) checkGrid(t []float64, g flux.Geometry) error {
	if len(t) == 0 {
		return flux.ErrNoTimes
	}
	for i, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domainErrorf("time[%d] = %g", i, v)
		}
	}

	return g.Validate(c.cfg.udeg)
}

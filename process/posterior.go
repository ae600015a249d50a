// SPDX-License-Identifier: MIT

package process

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/linalg"
)

// Posterior is the Gaussian distribution of the surface coefficients
// conditioned on a light curve.
type Posterior struct {
	Mean *mat.VecDense
	Cov  *mat.SymDense

	chol *mat.Cholesky // of Cov, for sampling
}

// Conditional returns the coefficient posterior given obs.
//
// Implementation:
//   - Stage 1: C = noise + baseline variance in every entry; A = design matrix.
//   - Stage 2: W = Aᵗ·C⁻¹·A + cov_ylm⁻¹ (precision of the posterior).
//   - Stage 3: mean = W⁻¹·(Aᵗ·C⁻¹·(flux − baseline) + cov_ylm⁻¹·mean_ylm),
//     cov = W⁻¹.
//
// Every inverse is a Cholesky solve.
//
// Errors:
//   - ErrNotSupported under inclination marginalization, normalization or
//     time variability.
//   - linalg.ErrNotPositiveDefinite when C or W cannot be factored.
func (c *core) Conditional(obs Observations, g flux.Geometry) (*Posterior, error) {
	switch {
	case c.cfg.marginalize:
		return nil, processErrorf(opConditional, unsupportedErrorf("conditioning under inclination marginalization"))
	case c.cfg.normalized:
		return nil, processErrorf(opConditional, unsupportedErrorf("conditioning a normalized process"))
	case c.TimeVariable():
		return nil, processErrorf(opConditional, unsupportedErrorf("conditioning a time-variable process"))
	}
	if err := obs.validate(); err != nil {
		return nil, processErrorf(opConditional, err)
	}
	if err := c.checkGrid(obs.T, g); err != nil {
		return nil, processErrorf(opConditional, err)
	}

	post, err := c.conditional(obs, g)
	if err != nil {
		return nil, processErrorf(opConditional, err)
	}

	return post, nil
}

func (c *core) conditional(obs Observations, g flux.Geometry) (*Posterior, error) {
	noise, err := obs.noise()
	if err != nil {
		return nil, err
	}
	a, err := c.proj.DesignMatrix(obs.T, g)
	if err != nil {
		return nil, err
	}
	cholC, err := linalg.Cholesky(noise)
	if err != nil {
		return nil, err
	}
	cInvA, err := linalg.Solve(cholC, a)
	if err != nil {
		return nil, err
	}

	var w mat.Dense
	w.Mul(a.T(), cInvA)
	w.Add(&w, c.lInv)
	ws, err := linalg.Symmetrize(&w)
	if err != nil {
		return nil, err
	}
	cholW, err := linalg.Cholesky(ws)
	if err != nil {
		return nil, err
	}

	rhs := mat.NewVecDense(c.CoefficientCount(), nil)
	rhs.MulVec(cInvA.T(), obs.residual(mat.NewVecDense(obs.Len(), nil)))
	rhs.AddVec(rhs, c.lInvMu)
	mean, err := linalg.SolveVec(cholW, rhs)
	if err != nil {
		return nil, err
	}
	cov, err := linalg.Inverse(cholW)
	if err != nil {
		return nil, err
	}
	cholCov, err := linalg.Cholesky(cov)
	if err != nil {
		return nil, err
	}

	return &Posterior{Mean: mean, Cov: cov, chol: cholCov}, nil
}

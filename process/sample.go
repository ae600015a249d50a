// SPDX-License-Identifier: MIT

package process

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/linalg"
	"github.com/katalvlaran/spotgp/temporal"
)

func checkCount(n int) error {
	if n < 1 {
		return domainErrorf("sample count %d < 1", n)
	}

	return nil
}

// affineSamples returns the n×N matrix whose rows are mean + f·zᵢ, with the
// zᵢ standard-normal columns of a draw of shape (cols(f), n).
func (c *core) affineSamples(mean *mat.VecDense, f mat.Matrix, n int) *mat.Dense {
	r, k := f.Dims()
	z := c.cfg.stream.NormalMatrix(k, n)
	var fz mat.Dense
	fz.Mul(f, z)
	out := mat.NewDense(n, r, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < r; j++ {
			out.Set(i, j, mean.AtVec(j)+fz.At(j, i))
		}
	}

	return out
}

// SamplePrior draws n coefficient vectors from the prior, one per row.
func (c *core) SamplePrior(n int) (*mat.Dense, error) {
	if err := checkCount(n); err != nil {
		return nil, processErrorf(opSample, err)
	}

	return c.affineSamples(c.mom.Mean, linalg.LowerFactor(c.chol), n), nil
}

// SamplePriorLowRank draws n coefficient vectors using only the rank
// dominant eigenmodes of the covariance; rank 0 keeps all of them.
func (c *core) SamplePriorLowRank(n, rank int) (*mat.Dense, error) {
	if err := checkCount(n); err != nil {
		return nil, processErrorf(opSample, err)
	}
	u, err := linalg.LowRank(c.mom.Cov, rank)
	if err != nil {
		return nil, processErrorf(opSample, err)
	}

	return c.affineSamples(c.mom.Mean, u, n), nil
}

// SamplePosterior draws n coefficient vectors from post.
func (c *core) SamplePosterior(post *Posterior, n int) (*mat.Dense, error) {
	if err := checkCount(n); err != nil {
		return nil, processErrorf(opSample, err)
	}
	if post == nil || post.chol == nil {
		return nil, processErrorf(opSample, fmt.Errorf("%w: nil posterior", ErrObservations))
	}
	if post.Mean.Len() != c.CoefficientCount() {
		return nil, processErrorf(opSample, linalg.ErrDimensionMismatch)
	}

	return c.affineSamples(post.Mean, linalg.LowerFactor(post.chol), n), nil
}

// SampleFlux draws n light curves at times t, one per row.
//
// Under inclination marginalization or time variability the draws come
// from the Gaussian light-curve moments (Mean, Cov plus the flux epsilon on
// the diagonal). Otherwise surfaces are drawn from the prior and projected
// with Flux, which applies the normalization exactly when enabled.
func (c *core) SampleFlux(t []float64, g flux.Geometry, n int) (*mat.Dense, error) {
	if err := checkCount(n); err != nil {
		return nil, processErrorf(opSample, err)
	}
	if !c.cfg.marginalize && !c.TimeVariable() {
		y, err := c.SamplePrior(n)
		if err != nil {
			return nil, err
		}

		return c.Flux(y, t, g)
	}

	mean, err := c.Mean(t, g)
	if err != nil {
		return nil, processErrorf(opSample, err)
	}
	cov, err := c.Cov(t, g)
	if err != nil {
		return nil, processErrorf(opSample, err)
	}
	chol, err := linalg.Cholesky(linalg.AddDiagonal(cov, c.cfg.fluxEps))
	if err != nil {
		return nil, processErrorf(opSample, err)
	}

	return c.affineSamples(mean, linalg.LowerFactor(chol), n), nil
}

// Flux maps coefficient samples y (one per row) to light curves at times t.
// Normalized processes divide each light curve by its own mean level:
// f ↦ (1+f)/mean(1+f) − 1.
//
// Errors: ErrNotSupported under inclination marginalization, which has no
// single design matrix.
func (c *core) Flux(y *mat.Dense, t []float64, g flux.Geometry) (*mat.Dense, error) {
	if c.cfg.marginalize {
		return nil, processErrorf(opFlux, unsupportedErrorf("flux of a fixed surface under inclination marginalization"))
	}
	if y == nil {
		return nil, processErrorf(opFlux, linalg.ErrNilMatrix)
	}
	if _, cols := y.Dims(); cols != c.CoefficientCount() {
		return nil, processErrorf(opFlux, linalg.ErrDimensionMismatch)
	}
	if err := c.checkGrid(t, g); err != nil {
		return nil, processErrorf(opFlux, err)
	}
	a, err := c.proj.DesignMatrix(t, g)
	if err != nil {
		return nil, processErrorf(opFlux, err)
	}
	var f mat.Dense
	f.Mul(y, a.T())
	if c.cfg.normalized {
		normalizeRows(&f)
	}

	return &f, nil
}

func normalizeRows(f *mat.Dense) {
	r, k := f.Dims()
	var i, j int
	var level float64
	for i = 0; i < r; i++ {
		level = 0
		for j = 0; j < k; j++ {
			level += 1 + f.At(i, j)
		}
		level /= float64(k)
		for j = 0; j < k; j++ {
			f.Set(i, j, (1+f.At(i, j))/level-1)
		}
	}
}

// SamplePriorAt draws n time series of coefficient vectors for a
// time-variable process. Sample s is a len(t)×N matrix with
//
//	X = L_t·U·L_yᵗ + 1·mean_ylmᵗ,
//
// U standard normal, L_t the Cholesky factor of the temporal Gram matrix
// (flux epsilon on its diagonal) and L_y that of cov_ylm. This is the
// Kronecker draw vec(X) = (L_y ⊗ L_t)·vec(U) without forming the product.
//
// Unlike the bare Kronecker draw, which is zero-mean and factors the Gram
// matrix as given, every row carries mean_ylm so the samples share the
// prior mean of SamplePrior, and the epsilon keeps L_t defined for
// closely spaced or repeated times. Subtract MeanYlm from each row for
// the zero-mean draw.
//
// Errors: ErrNotSupported for a static surface.
func (l *Leaf) SamplePriorAt(t []float64, n int) ([]*mat.Dense, error) {
	if !l.TimeVariable() {
		return nil, processErrorf(opSample, unsupportedErrorf("time-indexed samples of a static surface"))
	}
	if err := checkCount(n); err != nil {
		return nil, processErrorf(opSample, err)
	}
	kt, err := temporal.Gram(l.cfg.kernel, t, l.cfg.tau)
	if err != nil {
		return nil, processErrorf(opSample, err)
	}
	cholT, err := linalg.Cholesky(linalg.AddDiagonal(kt, l.cfg.fluxEps))
	if err != nil {
		return nil, processErrorf(opSample, err)
	}
	lt := linalg.LowerFactor(cholT)
	ly := linalg.LowerFactor(l.chol)

	k, nylm := len(t), l.CoefficientCount()
	out := make([]*mat.Dense, n)
	var lu mat.Dense
	for s := range out {
		u := l.cfg.stream.NormalMatrix(k, nylm)
		lu.Mul(lt, u)
		x := mat.NewDense(k, nylm, nil)
		x.Mul(&lu, ly.T())
		for i := 0; i < k; i++ {
			row := x.RawRowView(i)
			for j := range row {
				row[j] += l.mom.Mean.AtVec(j)
			}
		}
		out[s] = x
	}

	return out, nil
}

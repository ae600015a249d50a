// SPDX-License-Identifier: MIT

package moments

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Moments is a coefficient-space mean and covariance.
type Moments struct {
	Mean *mat.VecDense
	Cov  *mat.SymDense
}

// Size returns the number of coefficients, or 0 when Mean is nil.
func (m Moments) Size() int {
	if m.Mean == nil {
		return 0
	}

	return m.Mean.Len()
}

// Validate checks that both moments are present, agree on their size and
// are finite. A positive n additionally pins the size.
func (m Moments) Validate(n int) error {
	if m.Mean == nil || m.Cov == nil {
		return ErrNilMoments
	}
	k := m.Mean.Len()
	if m.Cov.SymmetricDim() != k {
		return fmt.Errorf("%w: mean has %d entries, covariance is %d×%d",
			ErrShape, k, m.Cov.SymmetricDim(), m.Cov.SymmetricDim())
	}
	if n > 0 && k != n {
		return fmt.Errorf("%w: have %d coefficients, want %d", ErrShape, k, n)
	}
	var i, j int
	for i = 0; i < k; i++ {
		if !finite(m.Mean.AtVec(i)) {
			return fmt.Errorf("%w: mean[%d]", ErrNonFinite, i)
		}
		for j = i; j < k; j++ {
			if !finite(m.Cov.At(i, j)) {
				return fmt.Errorf("%w: cov[%d,%d]", ErrNonFinite, i, j)
			}
		}
	}

	return nil
}

// Clone returns a deep copy.
func (m Moments) Clone() Moments {
	var out Moments
	if m.Mean != nil {
		out.Mean = mat.VecDenseCopyOf(m.Mean)
	}
	if m.Cov != nil {
		out.Cov = mat.NewSymDense(m.Cov.SymmetricDim(), nil)
		out.Cov.CopySym(m.Cov)
	}

	return out
}

// Sum returns the entrywise sum of the means and of the covariances, the
// moments of the sum of independent processes.
func Sum(ms ...Moments) (Moments, error) {
	if len(ms) == 0 {
		return Moments{}, ErrNilMoments
	}
	if err := ms[0].Validate(0); err != nil {
		return Moments{}, err
	}
	out := ms[0].Clone()
	for idx := 1; idx < len(ms); idx++ {
		if err := ms[idx].Validate(out.Size()); err != nil {
			return Moments{}, fmt.Errorf("operand %d: %w", idx, err)
		}
		out.Mean.AddVec(out.Mean, ms[idx].Mean)
		out.Cov.AddSym(out.Cov, ms[idx].Cov)
	}

	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SPDX-License-Identifier: MIT

package flux

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/linalg"
	"github.com/katalvlaran/spotgp/moments"
)

// Projector maps coefficient-space moments to light-curve moments.
type Projector interface {
	DesignMatrix(t []float64, g Geometry) (*mat.Dense, error)
	Mean(t []float64, g Geometry) (*mat.VecDense, error)
	Cov(t []float64, g Geometry) (*mat.SymDense, error)
}

// Factory builds a Projector for the given coefficient moments. Composed
// processes call it again with their summed moments.
type Factory func(m moments.Moments, opts ...Option) (Projector, error)

// DesignFunc returns the len(t)×N matrix mapping coefficients to flux.
type DesignFunc func(t []float64, g Geometry) (*mat.Dense, error)

// FixedDesign returns a DesignFunc that ignores the geometry and always
// yields a copy of a, for design matrices computed elsewhere.
func FixedDesign(a *mat.Dense) DesignFunc {
	return func(t []float64, _ Geometry) (*mat.Dense, error) {
		if r, _ := a.Dims(); r != len(t) {
			return nil, fmt.Errorf("%w: design has %d rows for %d times", ErrShape, r, len(t))
		}

		return mat.DenseCopyOf(a), nil
	}
}

// Linear is a Projector over a DesignFunc.
type Linear struct {
	m      moments.Moments
	design DesignFunc
	opt    options

	// quadrature in cos i on (0, 1); weights sum to 1
	incs    []float64
	weights []float64
}

// NewLinear returns a Linear projector for moments m.
func NewLinear(m moments.Moments, design DesignFunc, opts ...Option) (*Linear, error) {
	if design == nil {
		return nil, ErrNilDesign
	}
	if err := m.Validate(0); err != nil {
		return nil, err
	}
	l := &Linear{m: m.Clone(), design: design, opt: gatherOptions(opts...)}
	if l.opt.marginalize {
		x := make([]float64, l.opt.points)
		l.weights = make([]float64, l.opt.points)
		quad.Legendre{}.FixedLocations(x, l.weights, 0, 1)
		l.incs = make([]float64, len(x))
		for k, cosi := range x {
			l.incs[k] = math.Acos(cosi) * 180 / math.Pi
		}
	}

	return l, nil
}

// LinearFactory returns a Factory producing Linear projectors over design.
func LinearFactory(design DesignFunc) Factory {
	return func(m moments.Moments, opts ...Option) (Projector, error) {
		return NewLinear(m, design, opts...)
	}
}

// Marginalized reports whether the projector integrates over inclination.
func (l *Linear) Marginalized() bool { return l.opt.marginalize }

// DesignMatrix implements Projector.
func (l *Linear) DesignMatrix(t []float64, g Geometry) (*mat.Dense, error) {
	if l.opt.marginalize {
		return nil, ErrMarginalized
	}

	return l.at(t, g)
}

// Mean implements Projector.
func (l *Linear) Mean(t []float64, g Geometry) (*mat.VecDense, error) {
	if !l.opt.marginalize {
		a, err := l.at(t, g)
		if err != nil {
			return nil, err
		}
		out := mat.NewVecDense(len(t), nil)
		out.MulVec(a, l.m.Mean)

		return out, nil
	}

	out := mat.NewVecDense(len(t), nil)
	var f mat.VecDense
	for k, inc := range l.incs {
		a, err := l.at(t, g.withInclination(inc))
		if err != nil {
			return nil, err
		}
		f.MulVec(a, l.m.Mean)
		out.AddScaledVec(out, l.weights[k], &f)
	}

	return out, nil
}

// Cov implements Projector.
func (l *Linear) Cov(t []float64, g Geometry) (*mat.SymDense, error) {
	if !l.opt.marginalize {
		a, err := l.at(t, g)
		if err != nil {
			return nil, err
		}

		return linalg.Congruence(a, l.m.Cov)
	}

	// Σ + μμᵗ is the raw second moment of the coefficients.
	second := mat.NewSymDense(l.m.Size(), nil)
	second.SymRankOne(l.m.Cov, 1, l.m.Mean)

	k := len(t)
	out := mat.NewSymDense(k, nil)
	mean := mat.NewVecDense(k, nil)
	var f mat.VecDense
	for n, inc := range l.incs {
		a, err := l.at(t, g.withInclination(inc))
		if err != nil {
			return nil, err
		}
		s, err := linalg.Congruence(a, second)
		if err != nil {
			return nil, err
		}
		out.AddSym(out, scaled(s, l.weights[n]))
		f.MulVec(a, l.m.Mean)
		mean.AddScaledVec(mean, l.weights[n], &f)
	}
	out.SymRankOne(out, -1, mean)

	return out, nil
}

// at evaluates and checks the design matrix.
func (l *Linear) at(t []float64, g Geometry) (*mat.Dense, error) {
	if len(t) == 0 {
		return nil, ErrNoTimes
	}
	a, err := l.design(t, g)
	if err != nil {
		return nil, err
	}
	r, c := a.Dims()
	if r != len(t) || c != l.m.Size() {
		return nil, fmt.Errorf("%w: design is %d×%d, want %d×%d", ErrShape, r, c, len(t), l.m.Size())
	}

	return a, nil
}

func scaled(s *mat.SymDense, w float64) *mat.SymDense {
	s.ScaleSym(w, s)
	return s
}

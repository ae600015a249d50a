// SPDX-License-Identifier: MIT

package moments

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Integral is one step of a moment chain: it maps the moments of the
// previous step to the moments after marginalizing one more spot property.
type Integral interface {
	Name() string
	Integrate(in Moments) (Moments, error)
}

// Func adapts a plain function to Integral.
type Func struct {
	name string
	fn   func(Moments) (Moments, error)
}

// NewFunc returns an Integral named name that calls fn.
func NewFunc(name string, fn func(Moments) (Moments, error)) Func {
	return Func{name: name, fn: fn}
}

// Name implements Integral.
func (f Func) Name() string { return f.name }

// Integrate implements Integral.
func (f Func) Integrate(in Moments) (Moments, error) { return f.fn(in) }

// Chain runs its integrals in order over a seed the first time either
// moment is requested and caches the result, error included.
//
// Every intermediate result must be valid and keep the seed's size, so a
// misbehaving integral is reported by name instead of surfacing later as a
// factorization failure.
type Chain struct {
	seed      Moments
	integrals []Integral

	once sync.Once
	out  Moments
	err  error
}

// NewChain returns a Chain that applies integrals to seed.
func NewChain(seed Moments, integrals ...Integral) *Chain {
	return &Chain{seed: seed, integrals: integrals}
}

// Names lists the integrals in evaluation order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.integrals))
	for i, in := range c.integrals {
		names[i] = in.Name()
	}

	return names
}

// Moments runs the chain once and returns the final moments.
func (c *Chain) Moments() (Moments, error) {
	c.once.Do(c.run)
	if c.err != nil {
		return Moments{}, c.err
	}

	return c.out.Clone(), nil
}

// Mean implements Stage.
func (c *Chain) Mean() (*mat.VecDense, error) {
	m, err := c.Moments()
	return m.Mean, err
}

// Cov implements Stage.
func (c *Chain) Cov() (*mat.SymDense, error) {
	m, err := c.Moments()
	return m.Cov, err
}

func (c *Chain) run() {
	if c.seed.Mean == nil && len(c.integrals) == 0 {
		c.err = ErrEmptyChain
		return
	}
	if err := c.seed.Validate(0); err != nil {
		c.err = stageErrorf("seed", err)
		return
	}
	n := c.seed.Size()
	cur := c.seed.Clone()
	for _, step := range c.integrals {
		next, err := step.Integrate(cur)
		if err != nil {
			c.err = stageErrorf(step.Name(), err)
			return
		}
		if err = next.Validate(n); err != nil {
			c.err = stageErrorf(step.Name(), err)
			return
		}
		cur = next
	}
	c.out = cur
}

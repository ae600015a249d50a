// SPDX-License-Identifier: MIT

package process

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/spotgp/moments"
)

// Composed is the sum of independent leaf processes. Its moments are the
// sums of the children's moments; its projector is rebuilt from them.
type Composed struct {
	*core
	children []*Leaf
}

// Compose returns first + second.
//
// Implementation:
//   - Stage 1: both operands must agree on degree, limb-darkening degree,
//     normalization, inclination marginalization and covariance points,
//     and neither may be time-variable (ErrIncompatible naming the field).
//   - Stage 2: flatten children, so composing composed processes never nests.
//   - Stage 3: sum means and covariances, refactor, rebuild the projector
//     through the first operand's factory.
//
// The result shares the first operand's settings, logger and random stream.
func Compose(first, second Process) (*Composed, error) {
	if first == nil || second == nil {
		return nil, processErrorf(opCompose, domainErrorf("nil operand"))
	}
	a, b := first.engine(), second.engine()
	if err := compatible(a, b); err != nil {
		return nil, processErrorf(opCompose, err)
	}
	sum, err := moments.Sum(a.mom, b.mom)
	if err != nil {
		return nil, processErrorf(opCompose, err)
	}
	c, err := newCore(a.cfg, a.factory, sum)
	if err != nil {
		return nil, processErrorf(opCompose, err)
	}
	children := append(leaves(first), leaves(second)...)
	a.cfg.log.Debug("processes composed", zap.Int("children", len(children)))

	return &Composed{core: c, children: children}, nil
}

// Sum composes ps left to right. It needs at least two processes.
func Sum(ps ...Process) (*Composed, error) {
	if len(ps) < 2 {
		return nil, processErrorf(opCompose, domainErrorf("need at least two processes, got %d", len(ps)))
	}
	out, err := Compose(ps[0], ps[1])
	if err != nil {
		return nil, err
	}
	for _, p := range ps[2:] {
		if out, err = Compose(out, p); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func compatible(a, b *core) error {
	switch {
	case a.cfg.degree != b.cfg.degree:
		return mismatch("degree", a.cfg.degree, b.cfg.degree)
	case a.cfg.udeg != b.cfg.udeg:
		return mismatch("limb-darkening degree", a.cfg.udeg, b.cfg.udeg)
	case a.cfg.normalized != b.cfg.normalized:
		return mismatch("normalized", a.cfg.normalized, b.cfg.normalized)
	case a.cfg.marginalize != b.cfg.marginalize:
		return mismatch("marginalize over inclination", a.cfg.marginalize, b.cfg.marginalize)
	case a.cfg.covPoints != b.cfg.covPoints:
		return mismatch("covariance points", a.cfg.covPoints, b.cfg.covPoints)
	case a.TimeVariable() || b.TimeVariable():
		return fmt.Errorf("%w: time variability (time-variable processes cannot be composed)", ErrIncompatible)
	}

	return nil
}

func leaves(p Process) []*Leaf {
	switch v := p.(type) {
	case *Leaf:
		return []*Leaf{v}
	case *Composed:
		return append([]*Leaf(nil), v.children...)
	}

	return nil
}

// Add composes c with other.
func (c *Composed) Add(other Process) (*Composed, error) { return Compose(c, other) }

// Children returns the flattened leaves in composition order.
func (c *Composed) Children() []*Leaf { return append([]*Leaf(nil), c.children...) }

// Spots returns each child's spot hyperparameters.
func (c *Composed) Spots() []moments.Spots {
	out := make([]moments.Spots, len(c.children))
	for i, l := range c.children {
		out[i] = l.Spots()
	}

	return out
}

// LogJacobian returns each child's latitude log-Jacobian, in order.
func (c *Composed) LogJacobian() ([]float64, error) {
	out := make([]float64, len(c.children))
	for i, l := range c.children {
		lj, err := l.LogJacobian()
		if err != nil {
			return nil, err
		}
		out[i] = lj
	}

	return out, nil
}

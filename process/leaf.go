// SPDX-License-Identifier: MIT

package process

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/moments"
	"github.com/katalvlaran/spotgp/temporal"
)

// Leaf is a process built from one spot population.
type Leaf struct {
	*core
	spots moments.Spots
}

// New builds a leaf process from a moment stage.
//
// Implementation:
//   - Stage 1: apply options and validate them (ErrDomain).
//   - Stage 2: resolve the stage and check it has (degree+1)² coefficients.
//   - Stage 3: add the stability jitter to the covariance diagonal, epsy
//     everywhere plus epsy15 above degree 15.
//   - Stage 4: factor the covariance once, cache cov⁻¹ and cov⁻¹·mean, and
//     build the flux projector.
//
// The spot hyperparameters (WithSpots, WithLatitude) are carried for the
// accessors and LogJacobian; the stage is assumed to have been computed
// from them.
func New(stage moments.Stage, projector flux.Factory, opts ...Option) (*Leaf, error) {
	cfg := defaultSettings()
	for _, fn := range opts {
		fn(&cfg)
	}
	if err := cfg.resolve(); err != nil {
		return nil, processErrorf(opNew, err)
	}

	return newLeaf(cfg, stage, projector)
}

// NewFromSpots builds the moment chain for the configured spots with
// factory and then proceeds as New.
func NewFromSpots(factory moments.ChainFactory, projector flux.Factory, opts ...Option) (*Leaf, error) {
	if factory == nil {
		return nil, processErrorf(opNew, domainErrorf("nil chain factory"))
	}
	cfg := defaultSettings()
	for _, fn := range opts {
		fn(&cfg)
	}
	if err := cfg.resolve(); err != nil {
		return nil, processErrorf(opNew, err)
	}
	stage, err := factory(cfg.degree, cfg.spots)
	if err != nil {
		return nil, processErrorf(opNew, err)
	}

	return newLeaf(cfg, stage, projector)
}

func newLeaf(cfg settings, stage moments.Stage, projector flux.Factory) (*Leaf, error) {
	n := (cfg.degree + 1) * (cfg.degree + 1)
	m, err := moments.Resolve(stage, n)
	if err != nil {
		return nil, processErrorf(opNew, err)
	}
	addJitter(m, cfg.epsY, cfg.epsY15)

	c, err := newCore(cfg, projector, m)
	if err != nil {
		return nil, processErrorf(opNew, err)
	}
	cfg.log.Debug("process constructed",
		zap.Int("degree", cfg.degree),
		zap.Int("coefficients", n),
		zap.Bool("normalized", cfg.normalized),
		zap.Bool("marginalize_over_inclination", cfg.marginalize),
		zap.Bool("time_variable", cfg.kernel != nil),
	)

	return &Leaf{core: c, spots: cfg.spots}, nil
}

// addJitter stabilizes the covariance diagonal in place.
func addJitter(m moments.Moments, epsY, epsY15 float64) {
	n := m.Size()
	for i := 0; i < n; i++ {
		eps := epsY
		if l := int(math.Sqrt(float64(i))); l > unstableDegree {
			eps += epsY15
		}
		m.Cov.SetSym(i, i, m.Cov.At(i, i)+eps)
	}
}

// Spots returns the spot hyperparameters.
func (l *Leaf) Spots() moments.Spots { return l.spots }

// Timescale returns the temporal timescale and kernel; the kernel is nil
// for a static surface.
func (l *Leaf) Timescale() (float64, temporal.Kernel) { return l.cfg.tau, l.cfg.kernel }

// Latitude returns the mode and standard deviation, in degrees, of the spot
// latitude distribution.
func (l *Leaf) Latitude() (mode, sigma float64, err error) {
	return l.cfg.latitude.BetaToGauss(l.spots.A, l.spots.B)
}

// LogJacobian returns log|J| of the (a, b) → (mode, σ) latitude map at the
// leaf's hyperparameters.
func (l *Leaf) LogJacobian() (float64, error) {
	return l.cfg.latitude.LogJacobian(l.spots.A, l.spots.B)
}

// Add composes l with other.
func (l *Leaf) Add(other Process) (*Composed, error) { return Compose(l, other) }

// SPDX-License-Identifier: MIT

package process

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/moments"
	"github.com/katalvlaran/spotgp/normalize"
	"github.com/katalvlaran/spotgp/rng"
	"github.com/katalvlaran/spotgp/temporal"
	"github.com/katalvlaran/spotgp/transforms"
)

// Defaults (single source of truth).
const (
	// MinDegree is the smallest supported spherical-harmonic degree.
	MinDegree = 5

	DefaultDegree              = 15
	DefaultLimbDarkeningDegree = 2
	DefaultNormalized          = true
	DefaultMarginalize         = true
	DefaultCovPoints           = flux.DefaultCovPoints

	// DefaultEpsY is added to the diagonal of the coefficient covariance.
	DefaultEpsY = 1e-12

	// DefaultEpsY15 is added on top for coefficients of degree above 15,
	// which are the least stable.
	DefaultEpsY15 = 1e-9

	// DefaultFluxEps is added to the diagonal of flux-space covariances
	// before they are factored for sampling.
	DefaultFluxEps = 1e-8

	// DefaultSeed selects the stream when none is supplied; 0 maps to
	// rng.DefaultSeed.
	DefaultSeed uint64 = 0
)

// unstableDegree is the degree above which DefaultEpsY15 applies.
const unstableDegree = 15

// Option configures a process at construction.
type Option func(*settings)

type settings struct {
	degree      int
	udeg        int
	normalized  bool
	marginalize bool
	covPoints   int

	normOrder int
	normZMax  float64

	tau    float64
	kernel temporal.Kernel

	epsY    float64
	epsY15  float64
	fluxEps float64

	stream *rng.Stream
	seed   uint64
	log    *zap.Logger

	spots    moments.Spots
	shapeSet bool // (a, b) given explicitly
	latitude transforms.Latitude
	gauss    *[2]float64 // requested (mode, σ) in degrees
}

func defaultSettings() settings {
	return settings{
		degree:      DefaultDegree,
		udeg:        DefaultLimbDarkeningDegree,
		normalized:  DefaultNormalized,
		marginalize: DefaultMarginalize,
		covPoints:   DefaultCovPoints,
		normOrder:   normalize.DefaultOrder,
		normZMax:    normalize.DefaultZMax,
		epsY:        DefaultEpsY,
		epsY15:      DefaultEpsY15,
		fluxEps:     DefaultFluxEps,
		seed:        DefaultSeed,
		spots:       moments.DefaultSpots(),
		latitude:    transforms.NewLatitude(),
	}
}

// WithDegree sets the spherical-harmonic degree (>= MinDegree).
func WithDegree(l int) Option { return func(s *settings) { s.degree = l } }

// WithLimbDarkeningDegree sets the limb-darkening degree (>= 0).
func WithLimbDarkeningDegree(u int) Option { return func(s *settings) { s.udeg = u } }

// WithNormalized toggles modeling of mean-normalized light curves.
func WithNormalized(on bool) Option { return func(s *settings) { s.normalized = on } }

// WithMarginalizeOverInclination toggles integration over an isotropic
// inclination prior.
func WithMarginalizeOverInclination(on bool) Option {
	return func(s *settings) { s.marginalize = on }
}

// WithCovPoints sets the quadrature resolution used under inclination
// marginalization.
func WithCovPoints(n int) Option { return func(s *settings) { s.covPoints = n } }

// WithNormalizationOrder sets the series order of the normalization.
func WithNormalizationOrder(n int) Option { return func(s *settings) { s.normOrder = n } }

// WithNormalizationZMax sets the validity threshold of the normalization.
func WithNormalizationZMax(z float64) Option { return func(s *settings) { s.normZMax = z } }

// WithTimescale makes the surface evolve in time with correlation
// timescale tau under kernel k; a nil k selects temporal.Default.
func WithTimescale(tau float64, k temporal.Kernel) Option {
	return func(s *settings) {
		if k == nil {
			k = temporal.Default
		}
		s.tau, s.kernel = tau, k
	}
}

// WithJitter sets the diagonal stabilizers of the coefficient covariance.
func WithJitter(epsY, epsY15 float64) Option {
	return func(s *settings) { s.epsY, s.epsY15 = epsY, epsY15 }
}

// WithFluxEps sets the diagonal stabilizer of flux-space sampling.
func WithFluxEps(eps float64) Option { return func(s *settings) { s.fluxEps = eps } }

// WithStream shares an existing random stream. It takes precedence over
// WithSeed.
func WithStream(st *rng.Stream) Option { return func(s *settings) { s.stream = st } }

// WithSeed seeds a private random stream.
func WithSeed(seed uint64) Option { return func(s *settings) { s.seed = seed } }

// WithLogger sets the structured logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option { return func(s *settings) { s.log = l } }

// WithSpots sets every spot hyperparameter, the latitude pair (a, b)
// included. It cannot be combined with WithLatitude.
func WithSpots(sp moments.Spots) Option {
	return func(s *settings) { s.spots, s.shapeSet = sp, true }
}

// WithPopulation sets the spot hyperparameters other than the latitude
// distribution, leaving that to WithLatitude or WithLatitudeShape.
func WithPopulation(radius, halfWidth, contrast, count float64) Option {
	return func(s *settings) {
		s.spots.Radius, s.spots.HalfWidth = radius, halfWidth
		s.spots.Contrast, s.spots.Count = contrast, count
	}
}

// WithLatitudeShape sets the unit-scaled latitude pair (a, b).
func WithLatitudeShape(a, b float64) Option {
	return func(s *settings) { s.spots.A, s.spots.B, s.shapeSet = a, b, true }
}

// WithLatitude sets the latitude distribution by its mode and standard
// deviation in degrees. Combining it with an explicit (a, b) from WithSpots
// or WithLatitudeShape is ErrDomain.
func WithLatitude(mode, sigma float64) Option {
	return func(s *settings) { s.gauss = &[2]float64{mode, sigma} }
}

// WithLatitudeTransform replaces the (a, b) ↔ (mode, σ) reparameterization.
func WithLatitudeTransform(l transforms.Latitude) Option {
	return func(s *settings) { s.latitude = l }
}

// resolve validates s and fills the derived fields.
func (s *settings) resolve() error {
	switch {
	case s.degree < MinDegree:
		return domainErrorf("degree %d < %d", s.degree, MinDegree)
	case s.udeg < 0:
		return domainErrorf("limb-darkening degree %d < 0", s.udeg)
	case s.covPoints < 2:
		return domainErrorf("covariance points %d < 2", s.covPoints)
	case s.normOrder < 1:
		return domainErrorf("normalization order %d < 1", s.normOrder)
	case !positive(s.normZMax):
		return domainErrorf("normalization zmax %g must be finite and > 0", s.normZMax)
	case !nonNegative(s.epsY) || !nonNegative(s.epsY15) || !nonNegative(s.fluxEps):
		return domainErrorf("stabilizers must be finite and >= 0 (epsy=%g epsy15=%g eps=%g)",
			s.epsY, s.epsY15, s.fluxEps)
	case s.kernel != nil && !positive(s.tau):
		return domainErrorf("timescale %g must be finite and > 0", s.tau)
	}
	if s.gauss != nil {
		if s.shapeSet {
			return domainErrorf("latitude given both as (a, b) and as (mode, sigma)")
		}
		a, b, err := s.latitude.GaussToBeta(s.gauss[0], s.gauss[1])
		if err != nil {
			return domainErrorf("latitude: %v", err)
		}
		s.spots.A, s.spots.B = a, b
	}
	if err := s.spots.Validate(); err != nil {
		return domainErrorf("%v", err)
	}
	if s.stream == nil {
		s.stream = rng.New(s.seed)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	return nil
}

func positive(v float64) bool    { return v > 0 && !math.IsInf(v, 0) }
func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }

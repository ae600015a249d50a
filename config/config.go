// SPDX-License-Identifier: MIT

// Package config loads the YAML description of a spotgp run: process
// flags, spot hyperparameters, viewing geometry, noise model and the paths
// of externally computed inputs.
//
// Missing keys keep their defaults, which equal the Default constants of
// the process, moments, flux and transforms packages. Relative input paths
// are resolved against the directory of the loaded file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/linalg"
	"github.com/katalvlaran/spotgp/moments"
	"github.com/katalvlaran/spotgp/normalize"
	"github.com/katalvlaran/spotgp/process"
	"github.com/katalvlaran/spotgp/temporal"
	"github.com/katalvlaran/spotgp/transforms"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// File is a spotgp run configuration.
type File struct {
	Process  ProcessConfig  `yaml:"process"`
	Spots    SpotsConfig    `yaml:"spots"`
	Latitude LatitudeConfig `yaml:"latitude"`
	View     GeometryConfig `yaml:"geometry"`
	Noise    NoiseConfig    `yaml:"noise"`
	Inputs   InputsConfig   `yaml:"inputs"`

	dir string // directory of the loaded file
}

// ProcessConfig mirrors the process options.
type ProcessConfig struct {
	Degree                     int     `yaml:"degree"`
	LimbDarkeningDegree        int     `yaml:"limb_darkening_degree"`
	Normalized                 bool    `yaml:"normalized"`
	MarginalizeOverInclination bool    `yaml:"marginalize_over_inclination"`
	CovPoints                  int     `yaml:"cov_points"`
	NormalizationOrder         int     `yaml:"normalization_order"`
	NormalizationZMax          float64 `yaml:"normalization_zmax"`
	Timescale                  float64 `yaml:"timescale"` // 0 means a static surface
	Kernel                     string  `yaml:"kernel"`
	EpsY                       float64 `yaml:"epsy"`
	EpsY15                     float64 `yaml:"epsy15"`
	FluxEps                    float64 `yaml:"eps"`
	Seed                       uint64  `yaml:"seed"`
}

// SpotsConfig holds the spot hyperparameters.
type SpotsConfig struct {
	Radius    float64 `yaml:"radius"`
	HalfWidth float64 `yaml:"half_width"`
	A         float64 `yaml:"a"`
	B         float64 `yaml:"b"`
	Contrast  float64 `yaml:"contrast"`
	Count     float64 `yaml:"count"`
}

// LatitudeConfig bounds the latitude reparameterization. When Mode and
// Sigma are both set they replace spots.a and spots.b.
type LatitudeConfig struct {
	LogAlphaMax float64  `yaml:"log_alpha_max"`
	LogBetaMax  float64  `yaml:"log_beta_max"`
	SigmaMax    float64  `yaml:"sigma_max"`
	Mode        *float64 `yaml:"mode,omitempty"`
	Sigma       *float64 `yaml:"sigma,omitempty"`
}

// GeometryConfig is the viewing geometry.
type GeometryConfig struct {
	Inclination   float64   `yaml:"inclination"`
	Period        float64   `yaml:"period"`
	LimbDarkening []float64 `yaml:"limb_darkening,omitempty"`
}

// NoiseConfig is the observation-noise model. With PerPoint the σ column
// of the light curve is used; otherwise Variance applies to every point.
type NoiseConfig struct {
	Variance     float64 `yaml:"variance"`
	PerPoint     bool    `yaml:"per_point"`
	BaselineMean float64 `yaml:"baseline_mean"`
	BaselineVar  float64 `yaml:"baseline_var"`
}

// InputsConfig names the CSV files produced by the external integrators.
// With SingleSpot the mean and covariance are the moments of one
// unit-contrast spot and the contrast stage is applied here.
type InputsConfig struct {
	Mean       string `yaml:"mean"`
	Cov        string `yaml:"cov"`
	Design     string `yaml:"design"`
	LightCurve string `yaml:"light_curve"`
	SingleSpot bool   `yaml:"single_spot"`
}

// Default returns the configuration with every default applied.
func Default() *File {
	return &File{
		Process: ProcessConfig{
			Degree:                     process.DefaultDegree,
			LimbDarkeningDegree:        process.DefaultLimbDarkeningDegree,
			Normalized:                 process.DefaultNormalized,
			MarginalizeOverInclination: process.DefaultMarginalize,
			CovPoints:                  process.DefaultCovPoints,
			NormalizationOrder:         normalize.DefaultOrder,
			NormalizationZMax:          normalize.DefaultZMax,
			Kernel:                     temporal.Default.Name(),
			EpsY:                       process.DefaultEpsY,
			EpsY15:                     process.DefaultEpsY15,
			FluxEps:                    process.DefaultFluxEps,
			Seed:                       process.DefaultSeed,
		},
		Spots: SpotsConfig{
			Radius:    moments.DefaultRadius,
			HalfWidth: moments.DefaultHalfWidth,
			A:         moments.DefaultA,
			B:         moments.DefaultB,
			Contrast:  moments.DefaultContrast,
			Count:     moments.DefaultCount,
		},
		Latitude: LatitudeConfig{
			LogAlphaMax: transforms.DefaultLogAlphaMax,
			LogBetaMax:  transforms.DefaultLogBetaMax,
			SigmaMax:    transforms.DefaultSigmaMax,
		},
		View: GeometryConfig{
			Inclination: flux.DefaultInclination,
			Period:      flux.DefaultPeriod,
		},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(path)

	return cfg, nil
}

// Parse decodes and validates a YAML document over the defaults.
func Parse(data []byte) (*File, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes c to path as YAML.
func (c *File) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate reports the first invalid field.
func (c *File) Validate() error {
	p := c.Process
	switch {
	case p.Degree < process.MinDegree:
		return invalidf("process.degree %d < %d", p.Degree, process.MinDegree)
	case p.LimbDarkeningDegree < 0:
		return invalidf("process.limb_darkening_degree %d < 0", p.LimbDarkeningDegree)
	case p.CovPoints < 2:
		return invalidf("process.cov_points %d < 2", p.CovPoints)
	case p.NormalizationOrder < 1:
		return invalidf("process.normalization_order %d < 1", p.NormalizationOrder)
	case !positive(p.NormalizationZMax):
		return invalidf("process.normalization_zmax %g must be > 0", p.NormalizationZMax)
	case p.Timescale < 0 || math.IsInf(p.Timescale, 0) || math.IsNaN(p.Timescale):
		return invalidf("process.timescale %g must be finite and >= 0", p.Timescale)
	case !nonNegative(p.EpsY) || !nonNegative(p.EpsY15) || !nonNegative(p.FluxEps):
		return invalidf("process stabilizers must be finite and >= 0")
	}
	if _, err := temporal.ByName(p.Kernel); err != nil {
		return invalidf("process.kernel: %v", err)
	}

	l := c.Latitude
	switch {
	case !positive(l.LogAlphaMax), !positive(l.LogBetaMax):
		return invalidf("latitude: log bounds must be finite and > 0")
	case !(l.SigmaMax > 0 && l.SigmaMax <= 90):
		return invalidf("latitude.sigma_max %g not in (0, 90]", l.SigmaMax)
	case (l.Mode == nil) != (l.Sigma == nil):
		return invalidf("latitude.mode and latitude.sigma must be set together")
	}
	sp := c.spots()
	if l.Mode != nil {
		a, b, err := c.latitude().GaussToBeta(*l.Mode, *l.Sigma)
		if err != nil {
			return invalidf("latitude: %v", err)
		}
		sp.A, sp.B = a, b
	}
	if err := sp.Validate(); err != nil {
		return invalidf("%v", err)
	}
	if err := c.Geometry().Validate(p.LimbDarkeningDegree); err != nil {
		return invalidf("%v", err)
	}

	n := c.Noise
	if !nonNegative(n.Variance) || !nonNegative(n.BaselineVar) || math.IsNaN(n.BaselineMean) {
		return invalidf("noise: variance %g and baseline_var %g must be finite and >= 0",
			n.Variance, n.BaselineVar)
	}

	return nil
}

// ProcessOptions converts c into process options. The logger and stream
// are left to the caller.
func (c *File) ProcessOptions() ([]process.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p := c.Process
	opts := []process.Option{
		process.WithDegree(p.Degree),
		process.WithLimbDarkeningDegree(p.LimbDarkeningDegree),
		process.WithNormalized(p.Normalized),
		process.WithMarginalizeOverInclination(p.MarginalizeOverInclination),
		process.WithCovPoints(p.CovPoints),
		process.WithNormalizationOrder(p.NormalizationOrder),
		process.WithNormalizationZMax(p.NormalizationZMax),
		process.WithJitter(p.EpsY, p.EpsY15),
		process.WithFluxEps(p.FluxEps),
		process.WithSeed(p.Seed),
		process.WithLatitudeTransform(c.latitude()),
	}
	if p.Timescale > 0 {
		k, _ := temporal.ByName(p.Kernel)
		opts = append(opts, process.WithTimescale(p.Timescale, k))
	}
	if c.Latitude.Mode != nil {
		s := c.Spots
		opts = append(opts,
			process.WithPopulation(s.Radius, s.HalfWidth, s.Contrast, s.Count),
			process.WithLatitude(*c.Latitude.Mode, *c.Latitude.Sigma))
	} else {
		opts = append(opts, process.WithSpots(c.spots()))
	}

	return opts, nil
}

// Geometry returns the viewing geometry.
func (c *File) Geometry() flux.Geometry {
	return flux.Geometry{
		Inclination:   c.View.Inclination,
		Period:        c.View.Period,
		LimbDarkening: append([]float64(nil), c.View.LimbDarkening...),
	}
}

// DataCov returns the noise covariance. variances holds σ² per point and
// is required when Noise.PerPoint is set.
func (c *File) DataCov(variances []float64) (linalg.DataCov, error) {
	if !c.Noise.PerPoint {
		return linalg.Scalar(c.Noise.Variance), nil
	}
	if len(variances) == 0 {
		return nil, invalidf("noise.per_point needs a light curve with a σ column")
	}

	return linalg.Diagonal(append([]float64(nil), variances...)), nil
}

// Observations assembles a light curve with the configured noise model.
func (c *File) Observations(t, f, variances []float64) (process.Observations, error) {
	noise, err := c.DataCov(variances)
	if err != nil {
		return process.Observations{}, err
	}

	return process.Observations{
		T:            t,
		Flux:         f,
		Noise:        noise,
		BaselineMean: c.Noise.BaselineMean,
		BaselineVar:  c.Noise.BaselineVar,
	}, nil
}

// Path resolves an input path against the directory of the loaded file.
// Empty and absolute paths are returned unchanged.
func (c *File) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}

	return filepath.Join(c.dir, p)
}

// LatitudeTransform returns the configured latitude reparameterization.
func (c *File) LatitudeTransform() transforms.Latitude { return c.latitude() }

func (c *File) latitude() transforms.Latitude {
	return transforms.NewLatitude(
		transforms.WithLogAlphaMax(c.Latitude.LogAlphaMax),
		transforms.WithLogBetaMax(c.Latitude.LogBetaMax),
		transforms.WithSigmaMax(c.Latitude.SigmaMax),
	)
}

// spots returns the spot hyperparameters before any latitude override.
func (c *File) spots() moments.Spots {
	s := c.Spots
	return moments.Spots{
		Radius:    s.Radius,
		HalfWidth: s.HalfWidth,
		A:         s.A,
		B:         s.B,
		Contrast:  s.Contrast,
		Count:     s.Count,
	}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func positive(v float64) bool    { return v > 0 && !math.IsInf(v, 0) }
func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }

package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/dataio"
	"github.com/katalvlaran/spotgp/flux"
	"github.com/katalvlaran/spotgp/moments"
	"github.com/katalvlaran/spotgp/process"
)

// symmetryTol is the relative asymmetry accepted in covariance inputs.
const symmetryTol = 1e-8

var errMissingInput = errors.New("missing input")

// requireInput returns the resolved path of a configured input.
func requireInput(key, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: inputs.%s is not set", errMissingInput, key)
	}
	return cfg.Path(path), nil
}

// buildProcess reads the coefficient moments and design matrix named in
// the configuration and constructs a leaf process.
func buildProcess() (*process.Leaf, error) {
	meanPath, err := requireInput("mean", cfg.Inputs.Mean)
	if err != nil {
		return nil, err
	}
	covPath, err := requireInput("cov", cfg.Inputs.Cov)
	if err != nil {
		return nil, err
	}
	designPath, err := requireInput("design", cfg.Inputs.Design)
	if err != nil {
		return nil, err
	}

	mean, err := dataio.ReadVectorFile(meanPath)
	if err != nil {
		return nil, err
	}
	cov, err := dataio.ReadSymmetricFile(covPath, symmetryTol)
	if err != nil {
		return nil, err
	}
	design, err := dataio.ReadMatrixFile(designPath)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ProcessOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, process.WithLogger(logger))
	projector := flux.LinearFactory(flux.FixedDesign(design))

	m := moments.Moments{Mean: vec(mean), Cov: cov}
	if cfg.Inputs.SingleSpot {
		logger.Debug("applying contrast stage to single-spot moments",
			zap.Float64("contrast", cfg.Spots.Contrast),
			zap.Float64("count", cfg.Spots.Count))
		return process.NewFromSpots(moments.SingleSpotFactory(m), projector, opts...)
	}
	stage, err := moments.NewFixed(m.Mean, m.Cov)
	if err != nil {
		return nil, err
	}

	return process.New(stage, projector, opts...)
}

// readLightCurve loads the configured light curve.
func readLightCurve() (dataio.LightCurve, error) {
	path, err := requireInput("light_curve", cfg.Inputs.LightCurve)
	if err != nil {
		return dataio.LightCurve{}, err
	}
	return dataio.ReadLightCurveFile(path)
}

// readObservations loads the light curve with the configured noise model.
func readObservations() (process.Observations, error) {
	lc, err := readLightCurve()
	if err != nil {
		return process.Observations{}, err
	}
	return cfg.Observations(lc.T, lc.Flux, lc.Variances())
}

func vec(v []float64) *mat.VecDense { return mat.NewVecDense(len(v), v) }

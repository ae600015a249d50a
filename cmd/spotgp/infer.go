package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/dataio"
)

var (
	posteriorCovOut string
	sampleCount     int
	sampleKind      string
)

// loglikeCmd evaluates the marginal likelihood of the configured light curve
var loglikeCmd = &cobra.Command{
	Use:   "loglike",
	Short: "Log marginal likelihood of the light curve",
	Long: `Builds the process from inputs.mean, inputs.cov and inputs.design and
prints the log marginal likelihood of inputs.light_curve. When a latitude
prior is sampled in (mode, sigma), the log Jacobian of the (a, b) map is
printed as well.`,
	Args: cobra.NoArgs,
	RunE: runLoglike,
}

// posteriorCmd conditions the surface on the light curve
var posteriorCmd = &cobra.Command{
	Use:   "posterior",
	Short: "Posterior mean (and covariance) of the surface coefficients",
	Long: `Writes the posterior mean of the spherical-harmonic coefficients as a CSV
column to stdout. With --cov the posterior covariance is written to that
file. Only unnormalized, fixed-inclination, static processes are supported.`,
	Args: cobra.NoArgs,
	RunE: runPosterior,
}

// sampleCmd draws from the prior
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw prior samples of the coefficients or the light curve",
	Long: `Writes one sample per CSV row to stdout.

Kinds:
  - ylm:  coefficient-space prior samples
  - flux: light curves on the time grid of inputs.light_curve`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	posteriorCmd.Flags().StringVar(&posteriorCovOut, "cov", "", "Write the posterior covariance to this file")
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 1, "Number of samples")
	sampleCmd.Flags().StringVar(&sampleKind, "kind", "flux", "Sample kind: ylm or flux")
}

func runLoglike(cmd *cobra.Command, args []string) error {
	p, err := buildProcess()
	if err != nil {
		return err
	}
	obs, err := readObservations()
	if err != nil {
		return err
	}
	ll, err := p.LogLikelihood(obs, cfg.Geometry())
	if err != nil {
		return err
	}
	logger.Info("log likelihood evaluated", zap.Int("points", obs.Len()), zap.Float64("loglike", ll))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "loglike %.10g\n", ll)
	if cfg.Latitude.Mode != nil {
		lj, err := p.LogJacobian()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "logjac %.10g\n", lj)
	}
	return nil
}

func runPosterior(cmd *cobra.Command, args []string) error {
	p, err := buildProcess()
	if err != nil {
		return err
	}
	obs, err := readObservations()
	if err != nil {
		return err
	}
	post, err := p.Conditional(obs, cfg.Geometry())
	if err != nil {
		return err
	}
	if err := dataio.WriteVector(cmd.OutOrStdout(), post.Mean); err != nil {
		return err
	}
	if posteriorCovOut == "" {
		return nil
	}

	f, err := os.Create(posteriorCovOut)
	if err != nil {
		return err
	}
	if err := dataio.WriteMatrix(f, post.Cov); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runSample(cmd *cobra.Command, args []string) error {
	p, err := buildProcess()
	if err != nil {
		return err
	}

	var samples *mat.Dense
	switch sampleKind {
	case "ylm":
		samples, err = p.SamplePrior(sampleCount)
	case "flux":
		lc, lerr := readLightCurve()
		if lerr != nil {
			return lerr
		}
		samples, err = p.SampleFlux(lc.T, cfg.Geometry(), sampleCount)
	default:
		return fmt.Errorf("unknown sample kind %q (valid: ylm, flux)", sampleKind)
	}
	if err != nil {
		return err
	}
	logger.Debug("samples drawn",
		zap.String("kind", sampleKind),
		zap.Int("n", sampleCount),
		zap.Uint64("draws", p.Stream().Draws()))

	return dataio.WriteMatrix(cmd.OutOrStdout(), samples)
}

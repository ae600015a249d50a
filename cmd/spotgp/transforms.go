package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spotgp/normalize"
	"github.com/katalvlaran/spotgp/transforms"
)

var (
	latitudeInverse bool
	radiusTol       float64
	radiusHWHMMax   float64
	normOrder       int
)

// latitudeCmd converts between the (a, b) and (mode, sigma) parameterizations
var latitudeCmd = &cobra.Command{
	Use:   "latitude a b",
	Short: "Convert the latitude hyperparameters",
	Long: `Prints the mode and standard deviation (degrees) of the spot latitude
distribution for the unit-scaled pair (a, b), with the log Jacobian of the
map. With --inverse the arguments are (mode, sigma) and (a, b) is printed.
The bounds come from the latitude section of the configuration.`,
	Args: cobra.ExactArgs(2),
	RunE: runLatitude,
}

// radiusCmd prints the spot-radius reparameterization bounds
var radiusCmd = &cobra.Command{
	Use:   "radius",
	Short: "Bounds of the effective spot radius at the configured degree",
	Args:  cobra.NoArgs,
	RunE:  runRadius,
}

// normcoeffsCmd prints the normalization series coefficients
var normcoeffsCmd = &cobra.Command{
	Use:   "normcoeffs z",
	Short: "Normalization coefficients alpha(z), beta(z) and their derivatives",
	Args:  cobra.ExactArgs(1),
	RunE:  runNormCoeffs,
}

// defaultsCmd prints a configuration with every default
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	latitudeCmd.Flags().BoolVar(&latitudeInverse, "inverse", false, "Convert (mode, sigma) to (a, b)")
	radiusCmd.Flags().Float64Var(&radiusTol, "tol", transforms.DefaultPeakTol, "Peak error tolerance")
	radiusCmd.Flags().Float64Var(&radiusHWHMMax, "hwhm-max", transforms.DefaultHWHMMax, "Largest half-width at half-minimum (degrees)")
	normcoeffsCmd.Flags().IntVar(&normOrder, "order", normalize.DefaultOrder, "Series order")
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func runLatitude(cmd *cobra.Command, args []string) error {
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	lat := cfg.LatitudeTransform()
	out := cmd.OutOrStdout()

	if latitudeInverse {
		a, b, err := lat.GaussToBeta(v[0], v[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "a %.6f\nb %.6f\n", a, b)
		return nil
	}

	mode, sigma, err := lat.BetaToGauss(v[0], v[1])
	if err != nil {
		return err
	}
	lj, err := lat.LogJacobian(v[0], v[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "mode %.6f\nsigma %.6f\nlogjac %.6f\n", mode, sigma, lj)
	return nil
}

func runRadius(cmd *cobra.Command, args []string) error {
	ydeg := cfg.Process.Degree
	c0, c1, err := transforms.RadiusCoefficients(ydeg, radiusTol, radiusHWHMMax)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rprime_min %.6f\nrprime_max %.6f\nhwhm_min %.6f\nhwhm_max %.6f\n",
		c0, c0+c1, transforms.HWHM(c0), transforms.HWHM(c0+c1))
	return nil
}

func runNormCoeffs(cmd *cobra.Command, args []string) error {
	if normOrder < 1 {
		return fmt.Errorf("order %d < 1", normOrder)
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	c := normalize.Coefficients(v[0], normOrder)
	fmt.Fprintf(cmd.OutOrStdout(), "alpha %.10g\nbeta %.10g\ndalpha %.10g\ndbeta %.10g\n",
		c.Alpha, c.Beta, c.DAlphaDz, c.DBetaDz)
	return nil
}

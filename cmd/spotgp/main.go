// Command spotgp evaluates starspot Gaussian-process light-curve models.
//
// Coefficient moments and design matrices are computed by external
// integrators and passed as CSV files named in a YAML run configuration;
// spotgp evaluates likelihoods, posteriors and samples from them and
// exposes the hyperparameter transforms.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/spotgp/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
	cfg    *config.File
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "spotgp",
	Short: "Gaussian-process models of starspot light curves",
	Long: `spotgp evaluates the Gaussian process over stellar surfaces induced by a
population of dark spots, and the light curves it projects to.

Coefficient moments and design matrices are read from CSV files listed in
the run configuration (--config); without one, every default applies.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if configPath == "" {
			cfg = config.Default()
			return nil
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Run configuration (YAML)")

	rootCmd.AddCommand(loglikeCmd)
	rootCmd.AddCommand(posteriorCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(latitudeCmd)
	rootCmd.AddCommand(radiusCmd)
	rootCmd.AddCommand(normcoeffsCmd)
	rootCmd.AddCommand(defaultsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

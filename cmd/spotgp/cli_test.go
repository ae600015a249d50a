package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// writeFixture writes a degree-5 problem and returns the config path.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	const n, k = 36, 6

	var mean, cov, design, lc strings.Builder
	for i := 0; i < n; i++ {
		mean.WriteString("0\n")
		row := make([]string, n)
		for j := range row {
			row[j] = "0"
		}
		row[i] = "0.01"
		cov.WriteString(strings.Join(row, ",") + "\n")
	}
	for i := 0; i < k; i++ {
		row := make([]string, n)
		for j := range row {
			row[j] = strconv.FormatFloat(0.1*math.Cos(0.37*float64((i+1)*(j+1))), 'g', -1, 64)
		}
		design.WriteString(strings.Join(row, ",") + "\n")
		fmt.Fprintf(&lc, "%g, %g\n", 0.1*float64(i), 0.001*float64(i%3))
	}
	files := map[string]string{
		"mean.csv":   mean.String(),
		"cov.csv":    cov.String(),
		"design.csv": design.String(),
		"lc.csv":     "# t, flux\n" + lc.String(),
		"run.yaml": `
process:
  degree: 5
  normalized: false
  marginalize_over_inclination: false
  seed: 3
noise:
  variance: 1.0e-4
inputs:
  mean: mean.csv
  cov: cov.csv
  design: design.csv
  light_curve: lc.csv
`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return filepath.Join(dir, "run.yaml")
}

func TestLoglike(t *testing.T) {
	out, err := runCLI(t, "loglike", "--config", writeFixture(t))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "loglike "), out)

	ll, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(out, "loglike ")), 64)
	require.NoError(t, err)
	assert.False(t, math.IsInf(ll, 0) || math.IsNaN(ll))
}

func TestPosterior(t *testing.T) {
	covOut := filepath.Join(t.TempDir(), "post_cov.csv")
	out, err := runCLI(t, "posterior", "--config", writeFixture(t), "--cov", covOut)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 36)

	data, err := os.ReadFile(covOut)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 36)
}

func TestSample(t *testing.T) {
	cfgPath := writeFixture(t)

	out, err := runCLI(t, "sample", "--config", cfgPath, "--kind", "ylm", "-n", "3")
	require.NoError(t, err)
	rows := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, rows, 3)
	assert.Len(t, strings.Split(rows[0], ","), 36)

	out, err = runCLI(t, "sample", "--config", cfgPath, "--kind", "flux", "-n", "2")
	require.NoError(t, err)
	rows = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, rows, 2)
	assert.Len(t, strings.Split(rows[0], ","), 6)

	_, err = runCLI(t, "sample", "--config", cfgPath, "--kind", "maps", "-n", "1")
	assert.Error(t, err)
}

func TestMissingInput(t *testing.T) {
	_, err := runCLI(t, "loglike", "--config", "")
	assert.ErrorIs(t, err, errMissingInput)
}

func TestLatitude(t *testing.T) {
	out, err := runCLI(t, "latitude", "--config", "", "--inverse=false", "0.4", "0.27")
	require.NoError(t, err)
	assert.Contains(t, out, "mode 37.89")
	assert.Contains(t, out, "sigma 4.60")

	out, err = runCLI(t, "latitude", "--config", "", "--inverse", "30", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "a 0.398084")
	assert.Contains(t, out, "b 0.215956")
}

func TestNormCoeffs(t *testing.T) {
	out, err := runCLI(t, "normcoeffs", "--config", "", "--order", "20", "0")
	require.NoError(t, err)
	assert.Equal(t, "alpha 1\nbeta 0\ndalpha 3\ndbeta 5\n", out)
}

func TestRadius(t *testing.T) {
	out, err := runCLI(t, "radius", "--config", "", "--tol", "0.01", "--hwhm-max", "75")
	require.NoError(t, err)
	assert.Contains(t, out, "rprime_min 0.3469")
	assert.Contains(t, out, "rprime_max 4.7368")
}

func TestDefaults(t *testing.T) {
	out, err := runCLI(t, "defaults", "--config", "")
	require.NoError(t, err)
	assert.Contains(t, out, "degree: 15")
	assert.Contains(t, out, "kernel: matern32")
}

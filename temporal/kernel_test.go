package temporal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spotgp/temporal"
)

var kernels = []temporal.Stationary{
	temporal.Exponential,
	temporal.Matern32,
	temporal.Matern52,
	temporal.ExpSquared,
}

func TestKernels_UnitAtZeroAndDecay(t *testing.T) {
	for _, k := range kernels {
		t.Run(k.Name(), func(t *testing.T) {
			c, err := k.Cov([]float64{0, 0.5, 3}, []float64{0}, 1.0)
			require.NoError(t, err)
			assert.InDelta(t, 1, c.At(0, 0), 1e-15)
			assert.Less(t, c.At(1, 0), 1.0)
			assert.Less(t, c.At(2, 0), c.At(1, 0))
			assert.Greater(t, c.At(2, 0), 0.0)
		})
	}
}

func TestMatern32_KnownValue(t *testing.T) {
	c, err := temporal.Matern32.Cov([]float64{0}, []float64{2}, 2)
	require.NoError(t, err)
	x := math.Sqrt(3)
	assert.InDelta(t, (1+x)*math.Exp(-x), c.At(0, 0), 1e-15)
}

func TestGram_MatchesCov(t *testing.T) {
	ts := []float64{0, 0.3, 1.1, 2.5}
	for _, k := range kernels {
		g, err := temporal.Gram(k, ts, 0.7)
		require.NoError(t, err)
		full, err := k.Cov(ts, ts, 0.7)
		require.NoError(t, err)
		for i := range ts {
			for j := range ts {
				assert.InDelta(t, full.At(i, j), g.At(i, j), 1e-15)
			}
		}
	}
}

func TestKernel_Errors(t *testing.T) {
	_, err := temporal.Matern32.Cov([]float64{0}, []float64{1}, 0)
	assert.ErrorIs(t, err, temporal.ErrTimescale)

	_, err = temporal.Gram(temporal.Matern52, nil, 1)
	assert.ErrorIs(t, err, temporal.ErrEmptyTimes)

	_, err = temporal.ByName("nope")
	assert.ErrorIs(t, err, temporal.ErrUnknownKernel)

	k, err := temporal.ByName("matern32")
	require.NoError(t, err)
	assert.Equal(t, "matern32", k.Name())
}

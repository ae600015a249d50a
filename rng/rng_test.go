package rng_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/spotgp/rng"
)

// TestStream_SeedDeterminism checks that equal seeds give equal draws.
func TestStream_SeedDeterminism(t *testing.T) {
	a := rng.New(42).Normal(16)
	b := rng.New(42).Normal(16)
	assert.Equal(t, a, b)

	c := rng.New(43).Normal(16)
	assert.NotEqual(t, a, c)
}

// TestStream_ZeroSeedPolicy pins seed==0 to DefaultSeed.
func TestStream_ZeroSeedPolicy(t *testing.T) {
	s := rng.New(0)
	assert.Equal(t, rng.DefaultSeed, s.Seed())
	assert.Equal(t, rng.New(rng.DefaultSeed).Normal(4), s.Normal(4))
}

// TestStream_SharedHandleAdvances verifies two users of one handle see one
// sequence rather than duplicated draws.
func TestStream_SharedHandleAdvances(t *testing.T) {
	shared := rng.New(7)
	first := shared.Normal(3)
	second := shared.Normal(3)
	assert.NotEqual(t, first, second)
	assert.Equal(t, uint64(6), shared.Draws())

	replay := rng.New(7).Normal(6)
	assert.Equal(t, append(first, second...), replay)
}

// TestStream_Moments is a loose statistical check of N(0,1).
func TestStream_Moments(t *testing.T) {
	x := rng.New(3).Normal(20000)
	mean, std := stat.MeanStdDev(x, nil)
	require.False(t, math.IsNaN(mean))
	assert.InDelta(t, 0, mean, 0.03)
	assert.InDelta(t, 1, std, 0.03)

	m := rng.New(3).NormalMatrix(2, 3)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, x[4], m.At(1, 1))
}

package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spotgp/linalg"
)

func TestDataCov_Shapes(t *testing.T) {
	tests := []struct {
		name string
		cov  linalg.DataCov
		want []float64
	}{
		{"scalar", linalg.Scalar(0.5), []float64{0.5, 0, 0, 0.5}},
		{"diagonal", linalg.Diagonal{1, 2}, []float64{1, 0, 0, 2}},
		{"full", linalg.Full{M: mat.NewSymDense(2, []float64{1, 0.3, 0.3, 2})}, []float64{1, 0.3, 0.3, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.cov.Dense(2)
			require.NoError(t, err)
			assert.True(t, mat.Equal(got, mat.NewDense(2, 2, tc.want)))
		})
	}
}

func TestDataCov_Errors(t *testing.T) {
	_, err := linalg.Diagonal{1, 2}.Dense(3)
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)

	_, err = linalg.Scalar(-1).Dense(3)
	assert.ErrorIs(t, err, linalg.ErrNegativeVariance)

	_, err = linalg.Full{}.Dense(3)
	assert.ErrorIs(t, err, linalg.ErrNilMatrix)

	_, err = linalg.Full{M: mat.NewSymDense(2, nil)}.Dense(3)
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

// SPDX-License-Identifier: MIT

package moments

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMoments is returned when a mean or covariance is missing.
	ErrNilMoments = errors.New("moments: nil mean or covariance")

	// ErrShape is returned when a mean or covariance has the wrong size.
	ErrShape = errors.New("moments: shape mismatch")

	// ErrNonFinite is returned when a moment contains NaN or ±Inf.
	ErrNonFinite = errors.New("moments: non-finite entry")

	// ErrSpots is returned by Spots.Validate for out-of-range hyperparameters.
	ErrSpots = errors.New("moments: invalid spot hyperparameters")

	// ErrEmptyChain is returned when a Chain has no integrals and no seed.
	ErrEmptyChain = errors.New("moments: empty chain")
)

func stageErrorf(stage string, err error) error {
	return fmt.Errorf("stage %q: %w", stage, err)
}

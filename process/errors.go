// SPDX-License-Identifier: MIT

package process

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain is returned at construction for hyperparameters or settings
	// outside their valid range.
	ErrDomain = errors.New("process: argument outside domain")

	// ErrNotSupported is returned by operations that are not defined for the
	// process configuration (for example conditioning a normalized process).
	ErrNotSupported = errors.New("process: operation not supported")

	// ErrIncompatible is returned when composing processes that disagree on
	// a structural setting.
	ErrIncompatible = errors.New("process: incompatible processes")

	// ErrObservations is returned for malformed observation records.
	ErrObservations = errors.New("process: invalid observations")
)

// Operation tags used when wrapping errors.
const (
	opNew         = "New"
	opCompose     = "Compose"
	opMean        = "Mean"
	opCov         = "Cov"
	opLogLike     = "LogLikelihood"
	opConditional = "Conditional"
	opSample      = "Sample"
	opFlux        = "Flux"
)

func processErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func domainErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDomain}, args...)...)
}

func unsupportedErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotSupported}, args...)...)
}

func mismatch(field string, a, b any) error {
	return fmt.Errorf("%w: mismatch in %s (%v vs %v)", ErrIncompatible, field, a, b)
}

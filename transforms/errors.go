// SPDX-License-Identifier: MIT

package transforms

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain is returned when an argument lies outside the domain of a
	// transform.
	ErrDomain = errors.New("transforms: argument outside domain")

	// ErrNoConvergence is returned when a radius-bound search fails to
	// produce a finite answer.
	ErrNoConvergence = errors.New("transforms: search did not converge")
)

func domainErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDomain}, args...)...)
}

// SPDX-License-Identifier: MIT
// Package hyper: error values of the summation engine.

package hyper

import (
	"errors"
	"fmt"
)

// ErrPole is returned when a lower series parameter sits at a
// nonpositive integer that the series reaches before terminating: the
// sum has a genuine pole there and no amount of precision helps, so
// the engine fails fast instead of escalating.
var ErrPole = errors.New("hyper: pole in hypergeometric series")

// NoConvergenceError reports that the escalation loop hit its precision
// or term ceiling without producing an accurate sum.
type NoConvergenceError struct {
	// Requested is the precision the caller asked for, in bits.
	Requested uint

	// Attempted is the working precision the escalation demanded when
	// it crossed the ceiling and gave up.
	Attempted uint

	// Terms is the number of terms summed in the last attempt.
	Terms int
}

// Error implements the error interface.
func (e *NoConvergenceError) Error() string {
	return fmt.Sprintf("hyper: no convergence at %d bits (requested %d, %d terms summed)",
		e.Attempted, e.Requested, e.Terms)
}

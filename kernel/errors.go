// SPDX-License-Identifier: MIT
// Package kernel: sentinel error set.
// All kernel functions return these sentinels (possibly wrapped with
// fmt.Errorf("...: %w", Err) for context); callers match with errors.Is.

package kernel

import "errors"

var (
	// ErrDivisionByZero is returned when the divisor is an exact zero.
	ErrDivisionByZero = errors.New("kernel: division by zero")

	// ErrComplexResult signals that the analytic result of a real operation
	// is not real-representable (sqrt/log of a negative real, fractional
	// power of a negative base). The caller decides whether to retry the
	// operation in the complex plane or to propagate a domain error.
	ErrComplexResult = errors.New("kernel: result is complex")

	// ErrNaN is returned when an operation has no meaningful numeric result
	// (inf−inf, 0·inf, inf/inf). big.Float cannot represent NaN, so the
	// condition surfaces as an error rather than a value.
	ErrNaN = errors.New("kernel: result is not a number")

	// ErrNonFinite indicates that a finite operand was required but an
	// infinity was supplied (magnitude probes, nearest-integer distance).
	ErrNonFinite = errors.New("kernel: operand must be finite")

	// ErrBadLiteral indicates a string that could not be parsed as a
	// floating-point literal.
	ErrBadLiteral = errors.New("kernel: malformed numeric literal")
)

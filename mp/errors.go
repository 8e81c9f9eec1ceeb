// SPDX-License-Identifier: MIT
// Package mp: sentinel errors of the context layer.

package mp

import "errors"

var (
	// ErrConversion is returned when a Go value cannot be converted into
	// any member of the number tower.
	ErrConversion = errors.New("mp: cannot convert value to a number")

	// ErrBadLiteral is returned for a string literal that parses as no
	// supported numeric form.
	ErrBadLiteral = errors.New("mp: malformed numeric literal")

	// ErrBadEndpoints is returned when interval endpoints are invalid:
	// given out of order, or off the real line such as a complex value
	// with a nonzero imaginary part.
	ErrBadEndpoints = errors.New("mp: invalid interval endpoints")

	// ErrDomain is returned when an operation leaves the real line while
	// complex results are trapped on the context.
	ErrDomain = errors.New("mp: result is not a real number")

	// ErrUnordered is returned by comparisons on values that admit no
	// total order, such as complex numbers, overlapping intervals or NaN.
	ErrUnordered = errors.New("mp: values are not ordered")

	// ErrUnsupportedOperand is returned when no rule combines the two
	// operand types, after conversion has been attempted on both sides.
	ErrUnsupportedOperand = errors.New("mp: unsupported operand types")

	// ErrDimensionMismatch is returned by Dot when the two vectors have
	// different lengths.
	ErrDimensionMismatch = errors.New("mp: vectors have different lengths")
)

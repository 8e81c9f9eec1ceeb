// SPDX-License-Identifier: MIT

package kernel

import "math/big"

// Rounding selects the direction in which results are rounded to the target
// precision. The five modes mirror the directed-rounding set of the IEEE
// model: nearest (ties to even), floor, ceiling, toward zero, away from zero.
type Rounding int

const (
	// Nearest rounds to the nearest representable value, ties to even.
	Nearest Rounding = iota

	// Floor rounds toward negative infinity.
	Floor

	// Ceiling rounds toward positive infinity.
	Ceiling

	// TowardZero truncates toward zero.
	TowardZero

	// AwayFromZero rounds away from zero.
	AwayFromZero
)

// Mode maps the Rounding direction onto the corresponding big.Float mode.
func (r Rounding) Mode() big.RoundingMode {
	switch r {
	case Floor:
		return big.ToNegativeInf
	case Ceiling:
		return big.ToPositiveInf
	case TowardZero:
		return big.ToZero
	case AwayFromZero:
		return big.AwayFromZero
	default:
		return big.ToNearestEven
	}
}

// String returns the single-letter name of the mode, matching the
// conventional n/f/c/d/u spelling.
func (r Rounding) String() string {
	switch r {
	case Floor:
		return "f"
	case Ceiling:
		return "c"
	case TowardZero:
		return "d"
	case AwayFromZero:
		return "u"
	default:
		return "n"
	}
}

// newFloat allocates a zero big.Float configured to round at prec bits in
// direction rnd. Every kernel result starts here so that the single final
// rounding happens at the caller's requested precision.
func newFloat(prec uint, rnd Rounding) *big.Float {
	f := new(big.Float)
	f.SetMode(rnd.Mode())
	f.SetPrec(prec)

	return f
}

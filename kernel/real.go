// SPDX-License-Identifier: MIT
// Package kernel: real-valued primitives over *big.Float.
// Constructors are lossless; arithmetic rounds exactly once at the caller's
// (prec, rounding) pair. Conditions big.Float reports by panicking (ErrNaN)
// are converted into ordinary error returns here.

package kernel

import (
	"fmt"
	"hash/fnv"
	"math/big"
)

// guardNaN runs op and converts a big.ErrNaN panic into ErrNaN.
// Any other panic is a programmer error and is re-raised.
func guardNaN(op func() *big.Float) (res *big.Float, err error) {
	defer func() {
		if p := recover(); p != nil {
			if _, ok := p.(big.ErrNaN); ok {
				res, err = nil, ErrNaN

				return
			}
			panic(p)
		}
	}()

	return op(), nil
}

// FromInt64 returns the exact big.Float representation of n.
func FromInt64(n int64) *big.Float {
	return new(big.Float).SetInt64(n)
}

// FromBigInt returns the exact big.Float representation of n.
// The result carries exactly as many bits as n needs.
func FromBigInt(n *big.Int) *big.Float {
	return new(big.Float).SetInt(n)
}

// FromFloat64 converts a native float64 losslessly (53 bits suffice).
// NaN has no kernel representation and yields ErrNaN; infinities pass
// through.
func FromFloat64(x float64) (*big.Float, error) {
	if x != x {
		return nil, ErrNaN
	}

	return new(big.Float).SetFloat64(x), nil
}

// FromRat rounds the exact rational r to prec bits in direction rnd.
// Rationals with non-terminating binary expansions (1/3, ...) necessarily
// round; terminating ones convert exactly.
func FromRat(r *big.Rat, prec uint, rnd Rounding) *big.Float {
	return newFloat(prec, rnd).SetRat(r)
}

// FromString parses a decimal or hexadecimal floating-point literal and
// rounds it to prec bits in direction rnd. "inf" and "-inf" are accepted;
// malformed input yields ErrBadLiteral.
func FromString(s string, prec uint, rnd Rounding) (*big.Float, error) {
	f, _, err := big.ParseFloat(s, 0, prec, rnd.Mode())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadLiteral, s)
	}

	return f, nil
}

// Inf returns +Inf for sign ≥ 0 and −Inf otherwise.
func Inf(sign int) *big.Float {
	return new(big.Float).SetInf(sign < 0)
}

// Pos rounds x to prec bits in direction rnd (the unary-plus operation:
// renormalization with no arithmetic).
func Pos(x *big.Float, prec uint, rnd Rounding) *big.Float {
	return newFloat(prec, rnd).Set(x)
}

// Neg returns −x rounded to prec bits.
func Neg(x *big.Float, prec uint, rnd Rounding) *big.Float {
	return newFloat(prec, rnd).Neg(x)
}

// Abs returns |x| rounded to prec bits.
func Abs(x *big.Float, prec uint, rnd Rounding) *big.Float {
	return newFloat(prec, rnd).Abs(x)
}

// Add returns x+y rounded to prec bits. Inf−Inf yields ErrNaN.
func Add(x, y *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	return guardNaN(func() *big.Float { return newFloat(prec, rnd).Add(x, y) })
}

// Sub returns x−y rounded to prec bits. Inf−Inf yields ErrNaN.
func Sub(x, y *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	return guardNaN(func() *big.Float { return newFloat(prec, rnd).Sub(x, y) })
}

// Mul returns x·y rounded to prec bits. 0·Inf yields ErrNaN.
func Mul(x, y *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	return guardNaN(func() *big.Float { return newFloat(prec, rnd).Mul(x, y) })
}

// MulInt returns x·n rounded to prec bits. The integer fast path: n enters
// the multiplication exactly, without first being rounded to prec.
func MulInt(x *big.Float, n int64, prec uint, rnd Rounding) (*big.Float, error) {
	return guardNaN(func() *big.Float { return newFloat(prec, rnd).Mul(x, FromInt64(n)) })
}

// Div returns x/y rounded to prec bits. An exact-zero divisor yields
// ErrDivisionByZero; Inf/Inf yields ErrNaN.
func Div(x, y *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if y.Sign() == 0 && !y.IsInf() {
		return nil, ErrDivisionByZero
	}

	return guardNaN(func() *big.Float { return newFloat(prec, rnd).Quo(x, y) })
}

// Trunc returns x rounded toward zero to an integer, then rounded to prec.
func Trunc(x *big.Float, prec uint, rnd Rounding) *big.Float {
	if x.IsInf() {
		return Pos(x, prec, rnd)
	}
	n, _ := x.Int(nil)

	return newFloat(prec, rnd).SetInt(n)
}

// FloorInt returns ⌊x⌋ as an exact big.Int. x must be finite.
func FloorInt(x *big.Float) *big.Int {
	n, acc := x.Int(nil)
	// Int truncates toward zero; shift down for negative non-integers.
	if x.Sign() < 0 && acc == big.Above {
		n.Sub(n, big.NewInt(1))
	}

	return n
}

// CeilInt returns ⌈x⌉ as an exact big.Int. x must be finite.
func CeilInt(x *big.Float) *big.Int {
	n, acc := x.Int(nil)
	if x.Sign() > 0 && acc == big.Below {
		n.Add(n, big.NewInt(1))
	}

	return n
}

// FloorF returns ⌊x⌋ rounded to prec bits.
func FloorF(x *big.Float, prec uint, rnd Rounding) *big.Float {
	if x.IsInf() {
		return Pos(x, prec, rnd)
	}

	return newFloat(prec, rnd).SetInt(FloorInt(x))
}

// CeilF returns ⌈x⌉ rounded to prec bits.
func CeilF(x *big.Float, prec uint, rnd Rounding) *big.Float {
	if x.IsInf() {
		return Pos(x, prec, rnd)
	}

	return newFloat(prec, rnd).SetInt(CeilInt(x))
}

// Mod returns the floor-modulus x − ⌊x/y⌋·y rounded to prec bits.
// The result takes the sign of y, matching the convention of the original
// arithmetic layer. y = 0 yields ErrDivisionByZero; an infinite x yields
// ErrNaN; a finite x with infinite y is returned unchanged when the signs
// agree and collapses to y's sign of infinity otherwise.
func Mod(x, y *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if y.Sign() == 0 && !y.IsInf() {
		return nil, ErrDivisionByZero
	}
	if x.IsInf() {
		return nil, ErrNaN
	}
	if y.IsInf() {
		if x.Sign() == 0 || (x.Sign() < 0) == y.Signbit() {
			return Pos(x, prec, rnd), nil
		}

		return Pos(y, prec, rnd), nil
	}

	// Work with enough bits that the quotient floor is exact.
	wp := workPrec(x, y, prec) + guardBits
	q := new(big.Float).SetPrec(wp).Quo(x, y)
	qi := new(big.Float).SetPrec(wp).SetInt(FloorInt(q))
	r := new(big.Float).SetPrec(wp).Mul(qi, y)
	r.Neg(r)

	return guardNaN(func() *big.Float { return newFloat(prec, rnd).Add(x, r) })
}

// PowInt returns x**n for an integer exponent, rounded to prec bits.
// 0**0 = 1 by convention; 0**n for negative n yields ErrDivisionByZero.
func PowInt(x *big.Float, n int64, prec uint, rnd Rounding) (*big.Float, error) {
	if n == 0 {
		return FromInt64(1), nil
	}
	if x.Sign() == 0 && !x.IsInf() {
		if n < 0 {
			return nil, ErrDivisionByZero
		}

		return newFloat(prec, rnd), nil
	}
	if x.IsInf() {
		if n < 0 {
			return newFloat(prec, rnd), nil // 1/inf**m underflows to zero
		}
		if x.Signbit() && n%2 != 0 {
			return Inf(-1), nil
		}

		return Inf(1), nil
	}

	// Binary exponentiation with guard bits; a single rounding at the end.
	m := n
	if m < 0 {
		m = -m
	}
	wp := workPrec(x, nil, prec) + guardBits + 2*uint(big.NewInt(m).BitLen())
	acc := new(big.Float).SetPrec(wp).SetInt64(1)
	base := new(big.Float).SetPrec(wp).Set(x)
	for m > 0 {
		if m&1 == 1 {
			acc.Mul(acc, base)
		}
		base.Mul(base, base)
		m >>= 1
	}
	if n < 0 {
		return Div(FromInt64(1), acc, prec, rnd)
	}

	return Pos(acc, prec, rnd), nil
}

// Pow returns x**y rounded to prec bits. Integer exponents reduce to
// PowInt. A negative base with a non-integer exponent has no real result
// and yields ErrComplexResult.
func Pow(x, y *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if y.IsInt() && !y.IsInf() {
		if n, acc := y.Int64(); acc == big.Exact {
			return PowInt(x, n, prec, rnd)
		}
	}
	if x.Sign() == 0 && !x.IsInf() {
		if y.Sign() < 0 {
			return nil, ErrDivisionByZero
		}

		return newFloat(prec, rnd), nil
	}
	if x.Sign() < 0 {
		return nil, ErrComplexResult
	}
	if x.Cmp(oneFloat) == 0 {
		return FromInt64(1), nil
	}
	if y.IsInf() {
		grows := (x.Cmp(oneFloat) > 0) == !y.Signbit()
		if grows {
			return Inf(1), nil
		}

		return newFloat(prec, rnd), nil
	}

	wp := prec + guardBits + magPad(y)
	lx, err := Log(x, wp, Nearest)
	if err != nil {
		return nil, err
	}
	e := new(big.Float).SetPrec(wp).Mul(y, lx)

	return Exp(e, prec, rnd)
}

// Sqrt returns the square root of x rounded to prec bits.
// Negative input yields ErrComplexResult.
func Sqrt(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, ErrComplexResult
	}

	return newFloat(prec, rnd).Sqrt(x), nil
}

// Cbrt returns the principal cube root of x rounded to prec bits.
// The principal root of a negative real is complex, so negative input
// yields ErrComplexResult.
func Cbrt(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, ErrComplexResult
	}
	if x.Sign() == 0 || x.IsInf() {
		return Pos(x, prec, rnd), nil
	}

	wp := prec + guardBits
	lx, err := Log(x, wp, Nearest)
	if err != nil {
		return nil, err
	}
	lx.Quo(lx, new(big.Float).SetInt64(3))

	return Exp(lx, prec, rnd)
}

// Cmp compares x and y: −1 if x < y, 0 if equal, +1 if x > y.
func Cmp(x, y *big.Float) int { return x.Cmp(y) }

// IsInt reports whether x is an exact integer.
func IsInt(x *big.Float) bool { return !x.IsInf() && x.IsInt() }

// Hash returns a stable 64-bit hash of the value of x. Equal values hash
// equally regardless of the precision they were produced at, because the
// canonical mantissa×2^exp text is hashed, not the storage.
func Hash(x *big.Float) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(x.Text('p', 0)))

	return h.Sum64()
}

// workPrec picks an internal working precision covering both operands and
// the requested output precision.
func workPrec(x, y *big.Float, prec uint) uint {
	wp := prec
	if x != nil && x.Prec() > wp {
		wp = x.Prec()
	}
	if y != nil && y.Prec() > wp {
		wp = y.Prec()
	}

	return wp
}

// magBits returns the number of bits in the binary exponent of x,
// used to pad working precision before exponent-sensitive operations.
func magBits(x *big.Float) uint {
	if x.Sign() == 0 || x.IsInf() {
		return 0
	}
	e := x.MantExp(nil)
	if e < 0 {
		e = -e
	}

	return uint(big.NewInt(int64(e)).BitLen())
}

// magPad returns the positive binary exponent of x, or zero. Argument
// reductions of the form x − k·c lose about this many leading bits to
// cancellation, so series code adds it to the working precision.
func magPad(x *big.Float) uint {
	if x.Sign() == 0 || x.IsInf() {
		return 0
	}
	e := x.MantExp(nil)
	if e <= 0 {
		return 0
	}

	return uint(e)
}

// oneFloat is a shared exact 1 used for comparisons only. Never mutated.
var oneFloat = new(big.Float).SetInt64(1)

// guardBits is the fixed internal padding carried beyond the requested
// precision to absorb intermediate rounding error.
const guardBits = 32

// SPDX-License-Identifier: MIT
// Package kernel: outward-rounded interval primitives.

package kernel

import (
	"hash/fnv"
	"math/big"
)

// Interval is a closed real interval [A, B] with A ≤ B. Endpoints may be
// infinite. Every operation rounds the lower endpoint down and the upper
// endpoint up, so the true result set is always contained in the output.
type Interval struct {
	// A is the lower endpoint.
	A *big.Float

	// B is the upper endpoint.
	B *big.Float
}

// NewInterval builds an interval from two endpoints; nil endpoints read
// as zero. Callers must supply a ≤ b: the tower layer rejects inverted
// user input before it reaches here.
func NewInterval(a, b *big.Float) Interval {
	if a == nil {
		a = new(big.Float)
	}
	if b == nil {
		b = new(big.Float)
	}

	return Interval{A: a, B: b}
}

// PointInterval builds the degenerate interval [x, x].
func PointInterval(x *big.Float) Interval {
	return Interval{A: new(big.Float).Set(x), B: new(big.Float).Set(x)}
}

// EntireLine returns the interval (−inf, +inf).
func EntireLine() Interval {
	return Interval{A: Inf(-1), B: Inf(1)}
}

// IsPoint reports whether the two endpoints coincide exactly.
func (x Interval) IsPoint() bool { return x.A.Cmp(x.B) == 0 }

// Contains reports whether v lies in [A, B].
func (x Interval) Contains(v *big.Float) bool {
	return x.A.Cmp(v) <= 0 && x.B.Cmp(v) >= 0
}

// ContainsInterval reports whether y ⊆ x.
func (x Interval) ContainsInterval(y Interval) bool {
	return x.A.Cmp(y.A) <= 0 && x.B.Cmp(y.B) >= 0
}

// SpansZero reports whether 0 ∈ [A, B].
func (x Interval) SpansZero() bool { return x.A.Sign() <= 0 && x.B.Sign() >= 0 }

// IHash folds the endpoint hashes into a stable 64-bit hash.
func IHash(x Interval) uint64 {
	h := fnv.New64a()
	var buf [16]byte
	a, b := Hash(x.A), Hash(x.B)
	for i := 0; i < 8; i++ {
		buf[i] = byte(a >> (8 * i))
		buf[8+i] = byte(b >> (8 * i))
	}
	_, _ = h.Write(buf[:])

	return h.Sum64()
}

// IMid returns the midpoint (A+B)/2 rounded to nearest at prec bits.
func IMid(x Interval, prec uint) (*big.Float, error) {
	s, err := Add(x.A, x.B, prec+guardBits, Nearest)
	if err != nil {
		return nil, err
	}
	if !s.IsInf() {
		s.SetMantExp(s, s.MantExp(nil)-1)
	}

	return Pos(s, prec, Nearest), nil
}

// IDelta returns the width B−A rounded up at prec bits.
func IDelta(x Interval, prec uint) (*big.Float, error) {
	return Sub(x.B, x.A, prec, Ceiling)
}

// IPos rounds x outward to prec bits.
func IPos(x Interval, prec uint) Interval {
	return Interval{A: Pos(x.A, prec, Floor), B: Pos(x.B, prec, Ceiling)}
}

// INeg returns −x = [−B, −A] rounded outward to prec bits.
func INeg(x Interval, prec uint) Interval {
	return Interval{A: Neg(x.B, prec, Floor), B: Neg(x.A, prec, Ceiling)}
}

// IAdd returns x+y rounded outward to prec bits.
func IAdd(x, y Interval, prec uint) (Interval, error) {
	a, err := Add(x.A, y.A, prec, Floor)
	if err != nil {
		return Interval{}, err
	}
	b, err := Add(x.B, y.B, prec, Ceiling)
	if err != nil {
		return Interval{}, err
	}

	return Interval{A: a, B: b}, nil
}

// ISub returns x−y = [A−y.B, B−y.A] rounded outward to prec bits.
func ISub(x, y Interval, prec uint) (Interval, error) {
	a, err := Sub(x.A, y.B, prec, Floor)
	if err != nil {
		return Interval{}, err
	}
	b, err := Sub(x.B, y.A, prec, Ceiling)
	if err != nil {
		return Interval{}, err
	}

	return Interval{A: a, B: b}, nil
}

// IMul returns x·y rounded outward to prec bits: the minimum of the four
// endpoint products rounded down and their maximum rounded up.
func IMul(x, y Interval, prec uint) (Interval, error) {
	var lo, hi *big.Float
	for _, p := range [4][2]*big.Float{
		{x.A, y.A}, {x.A, y.B}, {x.B, y.A}, {x.B, y.B},
	} {
		d, err := Mul(p[0], p[1], prec, Floor)
		if err != nil {
			return Interval{}, err
		}
		u, err := Mul(p[0], p[1], prec, Ceiling)
		if err != nil {
			return Interval{}, err
		}
		if lo == nil || d.Cmp(lo) < 0 {
			lo = d
		}
		if hi == nil || u.Cmp(hi) > 0 {
			hi = u
		}
	}

	return Interval{A: lo, B: hi}, nil
}

// IDiv returns x/y rounded outward to prec bits. A point-zero divisor
// yields ErrDivisionByZero; a divisor interval that straddles zero has no
// bounded quotient and returns the entire line.
func IDiv(x, y Interval, prec uint) (Interval, error) {
	if y.IsPoint() && y.A.Sign() == 0 {
		return Interval{}, ErrDivisionByZero
	}
	if y.SpansZero() {
		return EntireLine(), nil
	}

	var lo, hi *big.Float
	for _, p := range [4][2]*big.Float{
		{x.A, y.A}, {x.A, y.B}, {x.B, y.A}, {x.B, y.B},
	} {
		d, err := Div(p[0], p[1], prec, Floor)
		if err != nil {
			return Interval{}, err
		}
		u, err := Div(p[0], p[1], prec, Ceiling)
		if err != nil {
			return Interval{}, err
		}
		if lo == nil || d.Cmp(lo) < 0 {
			lo = d
		}
		if hi == nil || u.Cmp(hi) > 0 {
			hi = u
		}
	}

	return Interval{A: lo, B: hi}, nil
}

// IAbs returns |x| rounded outward to prec bits.
func IAbs(x Interval, prec uint) Interval {
	if x.SpansZero() {
		hi := Abs(x.A, prec, Ceiling)
		if hb := Abs(x.B, prec, Ceiling); hb.Cmp(hi) > 0 {
			hi = hb
		}

		return Interval{A: newFloat(prec, Floor), B: hi}
	}
	if x.A.Sign() > 0 {
		return IPos(x, prec)
	}

	return INeg(x, prec)
}

// IPowInt returns x**n for an integer exponent, rounded outward to prec
// bits. For even n the result never dips below zero; negative exponents
// go through the interval reciprocal.
func IPowInt(x Interval, n int64, prec uint) (Interval, error) {
	if n == 0 {
		return PointInterval(FromInt64(1)), nil
	}
	if n < 0 {
		p, err := IPowInt(x, -n, prec+guardBits)
		if err != nil {
			return Interval{}, err
		}

		return IDiv(PointInterval(FromInt64(1)), p, prec)
	}

	la, err := PowInt(x.A, n, prec, Floor)
	if err != nil {
		return Interval{}, err
	}
	lb, err := PowInt(x.B, n, prec, Floor)
	if err != nil {
		return Interval{}, err
	}
	ua, err := PowInt(x.A, n, prec, Ceiling)
	if err != nil {
		return Interval{}, err
	}
	ub, err := PowInt(x.B, n, prec, Ceiling)
	if err != nil {
		return Interval{}, err
	}

	lo, hi := la, ua
	if lb.Cmp(lo) < 0 {
		lo = lb
	}
	if ub.Cmp(hi) > 0 {
		hi = ub
	}
	if n%2 == 0 && x.SpansZero() {
		lo = newFloat(prec, Floor)
	}

	return Interval{A: lo, B: hi}, nil
}

// ISqrt returns √x rounded outward to prec bits. A negative lower
// endpoint yields ErrComplexResult.
func ISqrt(x Interval, prec uint) (Interval, error) {
	if x.A.Sign() < 0 {
		return Interval{}, ErrComplexResult
	}
	a, err := Sqrt(x.A, prec, Floor)
	if err != nil {
		return Interval{}, err
	}
	b, err := Sqrt(x.B, prec, Ceiling)
	if err != nil {
		return Interval{}, err
	}

	return Interval{A: a, B: b}, nil
}

// IExp returns e**x rounded outward to prec bits; exp is monotone so the
// endpoints map directly, with a one-ulp outward widening covering the
// residual error of the guarded endpoint evaluations.
func IExp(x Interval, prec uint) (Interval, error) {
	a, err := Exp(x.A, prec, Floor)
	if err != nil {
		return Interval{}, err
	}
	b, err := Exp(x.B, prec, Ceiling)
	if err != nil {
		return Interval{}, err
	}

	return Interval{A: ulpDown(a, prec), B: ulpUp(b, prec)}, nil
}

// ILog returns log x rounded outward to prec bits. A negative lower
// endpoint yields ErrComplexResult; a zero lower endpoint maps to −inf.
func ILog(x Interval, prec uint) (Interval, error) {
	if x.A.Sign() < 0 {
		return Interval{}, ErrComplexResult
	}
	a, err := Log(x.A, prec, Floor)
	if err != nil {
		return Interval{}, err
	}
	b, err := Log(x.B, prec, Ceiling)
	if err != nil {
		return Interval{}, err
	}

	return Interval{A: ulpDown(a, prec), B: ulpUp(b, prec)}, nil
}

// IPow returns x**y for a strictly positive base interval, composed as
// exp(y·log x) so outward rounding propagates through every step.
func IPow(x, y Interval, prec uint) (Interval, error) {
	if yi, exact := intervalInt(y); exact {
		return IPowInt(x, yi, prec)
	}
	wp := prec + guardBits
	lx, err := ILog(x, wp)
	if err != nil {
		return Interval{}, err
	}
	e, err := IMul(y, lx, wp)
	if err != nil {
		return Interval{}, err
	}

	return IExp(e, prec)
}

// intervalInt reports whether y is a point interval at an exact int64.
func intervalInt(y Interval) (int64, bool) {
	if !y.IsPoint() || y.A.IsInf() || !y.A.IsInt() {
		return 0, false
	}
	n, acc := y.A.Int64()

	return n, acc == big.Exact
}

// ulpDown nudges a finite value one ulp toward −inf.
func ulpDown(x *big.Float, prec uint) *big.Float {
	if x.IsInf() || x.Sign() == 0 {
		return x
	}
	u := ulpOf(x, prec)

	return newFloat(prec, Floor).Sub(x, u)
}

// ulpUp nudges a finite value one ulp toward +inf.
func ulpUp(x *big.Float, prec uint) *big.Float {
	if x.IsInf() || x.Sign() == 0 {
		return x
	}
	u := ulpOf(x, prec)

	return newFloat(prec, Ceiling).Add(x, u)
}

// ulpOf returns 2^(exp−prec), one unit in the last place of x at prec.
func ulpOf(x *big.Float, prec uint) *big.Float {
	u := big.NewFloat(1)
	u.SetMantExp(u, x.MantExp(nil)-int(prec))

	return u
}

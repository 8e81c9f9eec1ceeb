// Package kernel: transcendental primitives.
//
// Each function follows the same shape: widen to an internal working
// precision (requested bits + fixed guard bits + argument-dependent
// padding), reduce the argument into a small range where the defining
// series converges at a fixed number of bits per term, sum the series, and
// round once to the caller's (prec, rounding) pair.
//
// Range reductions used:
//
//   - exp:  x = k·ln2 + r, |r| ≤ ln2/2, exp(x) = 2^k · exp(r)
//   - log:  x = m·2^e with m ∈ [0.75, 1.5), log(x) = e·ln2 + 2·atanh((m−1)/(m+1))
//     (the [0.75, 1.5) window keeps x ≈ 1 in one piece, avoiding
//     catastrophic cancellation between e·ln2 and log(m))
//   - sin/cos: x reduced mod 2π, then Taylor series
//   - atan: argument halving t ← t/(1+√(1+t²)) until |t| ≤ 1/4
//   - pi:   Machin's formula 16·atan(1/5) − 4·atan(1/239)

package kernel

import "math/big"

// ConstFn computes a named constant at the requested precision and
// rounding. Constants are pure functions of (prec, rnd); nothing here
// caches across precision changes.
type ConstFn func(prec uint, rnd Rounding) *big.Float

// maxShift bounds the binary exponent reachable through range
// reconstruction; beyond it exp overflows to ±inf / underflows to zero.
const maxShift = 1 << 30

// ln2 computes log(2) at prec bits via 2·atanh(1/3).
func ln2(prec uint) *big.Float {
	t := new(big.Float).SetPrec(prec + guardBits).Quo(
		new(big.Float).SetInt64(1), new(big.Float).SetInt64(3))
	v := atanhSeries(t, prec+guardBits)
	v.Add(v, v)

	return Pos(v, prec, Nearest)
}

// atanhSeries sums t + t³/3 + t⁵/5 + ... at wp bits. |t| must be well
// below 1 (callers pass |t| ≤ 1/3) so the series gains bits linearly.
func atanhSeries(t *big.Float, wp uint) *big.Float {
	sum := new(big.Float).SetPrec(wp).Set(t)
	t2 := new(big.Float).SetPrec(wp).Mul(t, t)
	pow := new(big.Float).SetPrec(wp).Set(t)
	term := new(big.Float).SetPrec(wp)
	for k := int64(3); ; k += 2 {
		pow.Mul(pow, t2)
		term.Quo(pow, new(big.Float).SetInt64(k))
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp) {
			break
		}
		sum.Add(sum, term)
	}

	return sum
}

// atanSeries sums t − t³/3 + t⁵/5 − ... at wp bits, for |t| ≤ 1/4.
func atanSeries(t *big.Float, wp uint) *big.Float {
	sum := new(big.Float).SetPrec(wp).Set(t)
	t2 := new(big.Float).SetPrec(wp).Mul(t, t)
	t2.Neg(t2)
	pow := new(big.Float).SetPrec(wp).Set(t)
	term := new(big.Float).SetPrec(wp)
	for k := int64(3); ; k += 2 {
		pow.Mul(pow, t2)
		term.Quo(pow, new(big.Float).SetInt64(k))
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp) {
			break
		}
		sum.Add(sum, term)
	}

	return sum
}

// Exp returns e**x rounded to prec bits.
func Exp(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.IsInf() {
		if x.Signbit() {
			return newFloat(prec, rnd), nil
		}

		return Inf(1), nil
	}
	if x.Sign() == 0 {
		return FromInt64(1), nil
	}
	if x.MantExp(nil) > 32 {
		// |x| ≥ 2^31: the result exponent would exceed the representable
		// range in either direction.
		if x.Sign() < 0 {
			return newFloat(prec, rnd), nil
		}

		return Inf(1), nil
	}

	wp := prec + guardBits + magPad(x)
	l2 := ln2(wp)

	// 1) Split x = k·ln2 + r with |r| ≤ ln2/2.
	q := new(big.Float).SetPrec(wp).Quo(x, l2)
	q.Add(q, new(big.Float).SetFloat64(0.5))
	ki := FloorInt(q)
	if ki.CmpAbs(big.NewInt(maxShift)) > 0 {
		if ki.Sign() < 0 {
			return newFloat(prec, rnd), nil
		}

		return Inf(1), nil
	}
	k := int(ki.Int64())
	r := new(big.Float).SetPrec(wp).SetInt(ki)
	r.Mul(r, l2)
	r.Sub(x, r) // r = x − k·ln2

	// 2) Taylor series for exp(r), |r| ≤ 0.35.
	sum := new(big.Float).SetPrec(wp).SetInt64(1)
	term := new(big.Float).SetPrec(wp).SetInt64(1)
	for i := int64(1); ; i++ {
		term.Mul(term, r)
		term.Quo(term, new(big.Float).SetInt64(i))
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp) {
			break
		}
		sum.Add(sum, term)
	}

	// 3) Reconstruct: exp(x) = exp(r)·2^k.
	e := sum.MantExp(sum)
	sum.SetMantExp(sum, e+k)

	return Pos(sum, prec, rnd), nil
}

// Log returns the natural logarithm of x rounded to prec bits.
// log(0) = −inf; negative input yields ErrComplexResult.
func Log(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, ErrComplexResult
	}
	if x.Sign() == 0 {
		return Inf(-1), nil
	}
	if x.IsInf() {
		return Inf(1), nil
	}
	if x.Cmp(oneFloat) == 0 {
		return new(big.Float), nil
	}

	wp := prec + guardBits + magBits(x)
	m := new(big.Float).SetPrec(wp)
	e := x.MantExp(m) // m ∈ [0.5, 1)
	if m.Cmp(new(big.Float).SetFloat64(0.75)) < 0 {
		m.SetMantExp(m, m.MantExp(nil)+1) // m ∈ [0.75, 1.5)
		e--
	}

	// t = (m−1)/(m+1) ∈ (−1/7, 1/5); log(m) = 2·atanh(t).
	num := new(big.Float).SetPrec(wp).Sub(m, oneFloat)
	den := new(big.Float).SetPrec(wp).Add(m, oneFloat)
	t := new(big.Float).SetPrec(wp).Quo(num, den)
	v := atanhSeries(t, wp)
	v.Add(v, v)

	if e != 0 {
		el2 := new(big.Float).SetPrec(wp).Mul(new(big.Float).SetInt64(int64(e)), ln2(wp))
		v.Add(v, el2)
	}

	return Pos(v, prec, rnd), nil
}

// Pi computes π at prec bits via Machin's formula.
func Pi(prec uint, rnd Rounding) *big.Float {
	wp := prec + guardBits
	inv := func(d int64) *big.Float {
		return new(big.Float).SetPrec(wp).Quo(
			new(big.Float).SetInt64(1), new(big.Float).SetInt64(d))
	}
	a := atanSeries(inv(5), wp)
	b := atanSeries(inv(239), wp)
	a.SetMantExp(a, a.MantExp(nil)+4)  // 16·atan(1/5)
	b.SetMantExp(b, b.MantExp(nil)+2)  // 4·atan(1/239)
	a.Sub(a, b)

	return Pos(a, prec, rnd)
}

// reduceTrig maps x into (−π, π] modulo 2π at wp bits.
func reduceTrig(x *big.Float, wp uint) *big.Float {
	pi := Pi(wp+magPad(x), Nearest)
	twoPi := new(big.Float).Copy(pi)
	twoPi.SetMantExp(twoPi, twoPi.MantExp(nil)+1)
	q := new(big.Float).SetPrec(wp+magPad(x)).Quo(x, twoPi)
	q.Add(q, new(big.Float).SetFloat64(0.5))
	k := FloorInt(q)
	r := new(big.Float).SetPrec(wp + magPad(x)).SetInt(k)
	r.Mul(r, twoPi)
	r.Sub(x, r)

	return r
}

// Sin returns sin(x) rounded to prec bits. Infinite input yields ErrNaN.
func Sin(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.IsInf() {
		return nil, ErrNaN
	}
	if x.Sign() == 0 {
		return newFloat(prec, rnd), nil
	}

	wp := prec + guardBits + magPad(x)
	r := reduceTrig(x, wp)
	sum := new(big.Float).SetPrec(wp).Set(r)
	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	r2.Neg(r2)
	term := new(big.Float).SetPrec(wp).Set(r)
	for k := int64(1); ; k++ {
		term.Mul(term, r2)
		term.Quo(term, new(big.Float).SetInt64(2*k*(2*k+1)))
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp) {
			break
		}
		sum.Add(sum, term)
	}

	return Pos(sum, prec, rnd), nil
}

// Cos returns cos(x) rounded to prec bits. Infinite input yields ErrNaN.
func Cos(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.IsInf() {
		return nil, ErrNaN
	}

	wp := prec + guardBits + magPad(x)
	r := reduceTrig(x, wp)
	sum := new(big.Float).SetPrec(wp).SetInt64(1)
	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	r2.Neg(r2)
	term := new(big.Float).SetPrec(wp).SetInt64(1)
	for k := int64(1); ; k++ {
		term.Mul(term, r2)
		term.Quo(term, new(big.Float).SetInt64(2*k*(2*k-1)))
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp) {
			break
		}
		sum.Add(sum, term)
	}

	return Pos(sum, prec, rnd), nil
}

// Tan returns tan(x) = sin(x)/cos(x) rounded to prec bits.
func Tan(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	wp := prec + guardBits
	s, err := Sin(x, wp, Nearest)
	if err != nil {
		return nil, err
	}
	c, err := Cos(x, wp, Nearest)
	if err != nil {
		return nil, err
	}

	return Div(s, c, prec, rnd)
}

// Atan returns arctan(x) rounded to prec bits.
func Atan(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.IsInf() {
		half := Pi(prec+2, Nearest)
		half.SetMantExp(half, half.MantExp(nil)-1)
		if x.Signbit() {
			half.Neg(half)
		}

		return Pos(half, prec, rnd), nil
	}
	if x.Sign() == 0 {
		return newFloat(prec, rnd), nil
	}

	wp := prec + guardBits

	// 1) |x| > 1: atan(x) = sign(x)·π/2 − atan(1/x).
	if new(big.Float).Abs(x).Cmp(oneFloat) > 0 {
		invX := new(big.Float).SetPrec(wp + guardBits).Quo(oneFloat, x)
		inner, err := Atan(invX, wp, Nearest)
		if err != nil {
			return nil, err
		}
		half := Pi(wp, Nearest)
		half.SetMantExp(half, half.MantExp(nil)-1)
		if x.Sign() < 0 {
			half.Neg(half)
		}
		half.Sub(half, inner)

		return Pos(half, prec, rnd), nil
	}

	// 2) Halve until |t| ≤ 1/4: atan(t) = 2·atan(t/(1+√(1+t²))).
	t := new(big.Float).SetPrec(wp + guardBits).Set(x)
	quarter := new(big.Float).SetFloat64(0.25)
	doublings := 0
	for new(big.Float).Abs(t).Cmp(quarter) > 0 {
		t2 := new(big.Float).SetPrec(wp + guardBits).Mul(t, t)
		t2.Add(t2, oneFloat)
		t2.Sqrt(t2)
		t2.Add(t2, oneFloat)
		t.Quo(t, t2)
		doublings++
	}

	// 3) Series and reconstruction.
	v := atanSeries(t, wp+guardBits)
	v.SetMantExp(v, v.MantExp(nil)+doublings)

	return Pos(v, prec, rnd), nil
}

// Atan2 returns the quadrant-aware arctangent of y/x rounded to prec bits.
func Atan2(y, x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	wp := prec + guardBits
	switch {
	case x.Sign() == 0 && y.Sign() == 0:
		return newFloat(prec, rnd), nil
	case x.Sign() == 0:
		half := Pi(wp, Nearest)
		half.SetMantExp(half, half.MantExp(nil)-1)
		if y.Sign() < 0 {
			half.Neg(half)
		}

		return Pos(half, prec, rnd), nil
	}
	q := new(big.Float).SetPrec(wp).Quo(y, x)
	a, err := Atan(q, wp, Nearest)
	if err != nil {
		return nil, err
	}
	if x.Sign() < 0 {
		pi := Pi(wp, Nearest)
		if y.Sign() < 0 {
			a.Sub(a, pi)
		} else {
			a.Add(a, pi)
		}
	}

	return Pos(a, prec, rnd), nil
}

// Hypot returns √(x²+y²) rounded to prec bits.
func Hypot(x, y *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	wp := workPrec(x, y, prec) + guardBits
	s := new(big.Float).SetPrec(wp).Mul(x, x)
	t := new(big.Float).SetPrec(wp).Mul(y, y)
	s.Add(s, t)

	return Sqrt(s, prec, rnd)
}

// EConst computes e = exp(1).
func EConst(prec uint, rnd Rounding) *big.Float {
	v, _ := Exp(oneFloat, prec, rnd)

	return v
}

// Ln2Const computes log(2).
func Ln2Const(prec uint, rnd Rounding) *big.Float {
	return Pos(ln2(prec), prec, rnd)
}

// Ln10Const computes log(10).
func Ln10Const(prec uint, rnd Rounding) *big.Float {
	v, _ := Log(new(big.Float).SetInt64(10), prec, rnd)

	return v
}

// PhiConst computes the golden ratio (1+√5)/2.
func PhiConst(prec uint, rnd Rounding) *big.Float {
	wp := prec + guardBits
	v := new(big.Float).SetPrec(wp).SetInt64(5)
	v.Sqrt(v)
	v.Add(v, oneFloat)
	v.SetMantExp(v, v.MantExp(nil)-1)

	return Pos(v, prec, rnd)
}

// DegreeConst computes one degree in radians, π/180.
func DegreeConst(prec uint, rnd Rounding) *big.Float {
	wp := prec + guardBits
	v := new(big.Float).SetPrec(wp).Quo(Pi(wp, Nearest), new(big.Float).SetInt64(180))

	return Pos(v, prec, rnd)
}

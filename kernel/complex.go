// SPDX-License-Identifier: MIT
// Package kernel: complex primitives as pairs of real kernel values.

package kernel

import (
	"hash/fnv"
	"math/big"
)

// Complex is a complex kernel value: a pair of real kernel values.
// The zero Complex is 0+0i. Parts are never mutated after construction.
type Complex struct {
	// Re is the real part.
	Re *big.Float

	// Im is the imaginary part.
	Im *big.Float
}

// NewComplex builds a Complex from its parts; nil parts read as zero.
func NewComplex(re, im *big.Float) Complex {
	if re == nil {
		re = new(big.Float)
	}
	if im == nil {
		im = new(big.Float)
	}

	return Complex{Re: re, Im: im}
}

// FromReal promotes a real kernel value to a Complex with zero imaginary
// part.
func FromReal(re *big.Float) Complex { return NewComplex(re, nil) }

// CIsZero reports whether z is exactly zero.
func (z Complex) CIsZero() bool {
	return z.Re.Sign() == 0 && !z.Re.IsInf() && z.Im.Sign() == 0 && !z.Im.IsInf()
}

// CIsReal reports whether z has an exactly zero imaginary part.
func (z Complex) CIsReal() bool { return z.Im.Sign() == 0 && !z.Im.IsInf() }

// CEq reports exact equality of both parts.
func CEq(x, y Complex) bool {
	return x.Re.Cmp(y.Re) == 0 && x.Im.Cmp(y.Im) == 0
}

// CHash folds the part hashes into a stable 64-bit hash. A Complex with a
// zero imaginary part hashes like the corresponding real value.
func CHash(z Complex) uint64 {
	if z.CIsReal() {
		return Hash(z.Re)
	}
	h := fnv.New64a()
	var buf [16]byte
	re, im := Hash(z.Re), Hash(z.Im)
	for i := 0; i < 8; i++ {
		buf[i] = byte(re >> (8 * i))
		buf[8+i] = byte(im >> (8 * i))
	}
	_, _ = h.Write(buf[:])

	return h.Sum64()
}

// CPos rounds both parts of z to prec bits.
func CPos(z Complex, prec uint, rnd Rounding) Complex {
	return Complex{Re: Pos(z.Re, prec, rnd), Im: Pos(z.Im, prec, rnd)}
}

// CNeg returns −z rounded to prec bits.
func CNeg(z Complex, prec uint, rnd Rounding) Complex {
	return Complex{Re: Neg(z.Re, prec, rnd), Im: Neg(z.Im, prec, rnd)}
}

// CConj returns the conjugate of z rounded to prec bits.
func CConj(z Complex, prec uint, rnd Rounding) Complex {
	return Complex{Re: Pos(z.Re, prec, rnd), Im: Neg(z.Im, prec, rnd)}
}

// CAdd returns x+y with both parts rounded to prec bits.
func CAdd(x, y Complex, prec uint, rnd Rounding) (Complex, error) {
	re, err := Add(x.Re, y.Re, prec, rnd)
	if err != nil {
		return Complex{}, err
	}
	im, err := Add(x.Im, y.Im, prec, rnd)
	if err != nil {
		return Complex{}, err
	}

	return Complex{Re: re, Im: im}, nil
}

// CSub returns x−y with both parts rounded to prec bits.
func CSub(x, y Complex, prec uint, rnd Rounding) (Complex, error) {
	re, err := Sub(x.Re, y.Re, prec, rnd)
	if err != nil {
		return Complex{}, err
	}
	im, err := Sub(x.Im, y.Im, prec, rnd)
	if err != nil {
		return Complex{}, err
	}

	return Complex{Re: re, Im: im}, nil
}

// CMul returns x·y = (ac−bd) + (ad+bc)i rounded to prec bits. The four
// partial products are formed at a widened precision so each output part
// rounds only once.
func CMul(x, y Complex, prec uint, rnd Rounding) (Complex, error) {
	wp := workPrec(x.Re, y.Re, prec) + guardBits

	return guardNaNComplex(func() Complex {
		ac := new(big.Float).SetPrec(wp).Mul(x.Re, y.Re)
		bd := new(big.Float).SetPrec(wp).Mul(x.Im, y.Im)
		ad := new(big.Float).SetPrec(wp).Mul(x.Re, y.Im)
		bc := new(big.Float).SetPrec(wp).Mul(x.Im, y.Re)
		re := newFloat(prec, rnd).Sub(ac, bd)
		im := newFloat(prec, rnd).Add(ad, bc)

		return Complex{Re: re, Im: im}
	})
}

// CMulInt returns z·n rounded to prec bits (integer fast path).
func CMulInt(z Complex, n int64, prec uint, rnd Rounding) (Complex, error) {
	re, err := MulInt(z.Re, n, prec, rnd)
	if err != nil {
		return Complex{}, err
	}
	im, err := MulInt(z.Im, n, prec, rnd)
	if err != nil {
		return Complex{}, err
	}

	return Complex{Re: re, Im: im}, nil
}

// CDiv returns x/y rounded to prec bits via multiplication by the
// conjugate. An exact-zero divisor yields ErrDivisionByZero.
func CDiv(x, y Complex, prec uint, rnd Rounding) (Complex, error) {
	if y.CIsZero() {
		return Complex{}, ErrDivisionByZero
	}
	wp := workPrec(x.Re, y.Re, prec) + guardBits

	return guardNaNComplex(func() Complex {
		den := new(big.Float).SetPrec(wp).Mul(y.Re, y.Re)
		t := new(big.Float).SetPrec(wp).Mul(y.Im, y.Im)
		den.Add(den, t)

		ac := new(big.Float).SetPrec(wp).Mul(x.Re, y.Re)
		bd := new(big.Float).SetPrec(wp).Mul(x.Im, y.Im)
		bc := new(big.Float).SetPrec(wp).Mul(x.Im, y.Re)
		ad := new(big.Float).SetPrec(wp).Mul(x.Re, y.Im)

		reNum := new(big.Float).SetPrec(wp).Add(ac, bd)
		imNum := new(big.Float).SetPrec(wp).Sub(bc, ad)

		re := newFloat(prec, rnd).Quo(reNum, den)
		im := newFloat(prec, rnd).Quo(imNum, den)

		return Complex{Re: re, Im: im}
	})
}

// CAbs returns |z| = √(a²+b²) rounded to prec bits.
func CAbs(z Complex, prec uint, rnd Rounding) (*big.Float, error) {
	return Hypot(z.Re, z.Im, prec, rnd)
}

// CSqrt returns the principal square root of z rounded to prec bits,
// computed algebraically from |z| (no trigonometry needed).
func CSqrt(z Complex, prec uint, rnd Rounding) (Complex, error) {
	if z.CIsZero() {
		return CPos(Complex{Re: new(big.Float), Im: new(big.Float)}, prec, rnd), nil
	}
	wp := workPrec(z.Re, z.Im, prec) + guardBits

	// Pure negative real: √(−a) = i√a, the case the tower promotes into.
	if z.CIsReal() && z.Re.Sign() < 0 {
		im, err := Sqrt(new(big.Float).SetPrec(wp).Neg(z.Re), prec, rnd)
		if err != nil {
			return Complex{}, err
		}

		return Complex{Re: newFloat(prec, rnd), Im: im}, nil
	}

	r, err := CAbs(z, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}

	// t = √((r+|a|)/2); the larger output part, computed without
	// cancellation.
	t := new(big.Float).SetPrec(wp).Abs(z.Re)
	t.Add(t, r)
	t.SetMantExp(t, t.MantExp(nil)-1)
	t.Sqrt(t)

	// Other part = |b| / (2t).
	u := new(big.Float).SetPrec(wp).Abs(z.Im)
	two := new(big.Float).SetPrec(wp).Set(t)
	two.SetMantExp(two, two.MantExp(nil)+1)
	u.Quo(u, two)

	if z.Re.Sign() >= 0 {
		im := Pos(u, prec, rnd)
		if z.Im.Sign() < 0 {
			im.Neg(im)
		}

		return Complex{Re: Pos(t, prec, rnd), Im: im}, nil
	}
	im := Pos(t, prec, rnd)
	if z.Im.Sign() < 0 {
		im.Neg(im)
	}

	return Complex{Re: Pos(u, prec, rnd), Im: im}, nil
}

// CExp returns e**z = e^a·(cos b + i·sin b) rounded to prec bits.
func CExp(z Complex, prec uint, rnd Rounding) (Complex, error) {
	wp := prec + guardBits
	ea, err := Exp(z.Re, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	cb, err := Cos(z.Im, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	sb, err := Sin(z.Im, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}

	return guardNaNComplex(func() Complex {
		return Complex{
			Re: newFloat(prec, rnd).Mul(ea, cb),
			Im: newFloat(prec, rnd).Mul(ea, sb),
		}
	})
}

// CLog returns the principal logarithm log|z| + i·atan2(b, a) rounded to
// prec bits. log(0) has no value and yields ErrDivisionByZero.
func CLog(z Complex, prec uint, rnd Rounding) (Complex, error) {
	if z.CIsZero() {
		return Complex{}, ErrDivisionByZero
	}
	wp := prec + guardBits
	r, err := CAbs(z, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	re, err := Log(r, prec, rnd)
	if err != nil {
		return Complex{}, err
	}
	im, err := Atan2(z.Im, z.Re, prec, rnd)
	if err != nil {
		return Complex{}, err
	}

	return Complex{Re: re, Im: im}, nil
}

// CPowInt returns z**n for an integer exponent, rounded to prec bits.
// 0**0 = 1; 0**n for negative n yields ErrDivisionByZero.
func CPowInt(z Complex, n int64, prec uint, rnd Rounding) (Complex, error) {
	if n == 0 {
		return FromReal(FromInt64(1)), nil
	}
	if z.CIsZero() {
		if n < 0 {
			return Complex{}, ErrDivisionByZero
		}

		return CPos(Complex{Re: new(big.Float), Im: new(big.Float)}, prec, rnd), nil
	}

	m := n
	if m < 0 {
		m = -m
	}
	wp := workPrec(z.Re, z.Im, prec) + guardBits + 2*uint(big.NewInt(m).BitLen())
	acc := FromReal(FromInt64(1))
	base := CPos(z, wp, Nearest)
	var err error
	for m > 0 {
		if m&1 == 1 {
			if acc, err = CMul(acc, base, wp, Nearest); err != nil {
				return Complex{}, err
			}
		}
		if base, err = CMul(base, base, wp, Nearest); err != nil {
			return Complex{}, err
		}
		m >>= 1
	}
	if n < 0 {
		return CDiv(FromReal(FromInt64(1)), acc, prec, rnd)
	}

	return CPos(acc, prec, rnd), nil
}

// CPow returns z**w = exp(w·log z) rounded to prec bits. Integer
// exponents reduce to CPowInt.
func CPow(z, w Complex, prec uint, rnd Rounding) (Complex, error) {
	if w.CIsReal() && w.Re.IsInt() && !w.Re.IsInf() {
		if n, acc := w.Re.Int64(); acc == big.Exact {
			return CPowInt(z, n, prec, rnd)
		}
	}
	if z.CIsZero() {
		if w.CIsReal() && w.Re.Sign() > 0 {
			return CPos(Complex{Re: new(big.Float), Im: new(big.Float)}, prec, rnd), nil
		}

		return Complex{}, ErrDivisionByZero
	}

	wp := prec + guardBits + magPad(w.Re) + magPad(w.Im)
	lz, err := CLog(z, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	e, err := CMul(w, lz, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}

	return CExp(e, prec, rnd)
}

// guardNaNComplex mirrors guardNaN for complex-valued operations.
func guardNaNComplex(op func() Complex) (res Complex, err error) {
	defer func() {
		if p := recover(); p != nil {
			if _, ok := p.(big.ErrNaN); ok {
				res, err = Complex{}, ErrNaN

				return
			}
			panic(p)
		}
	}()

	return op(), nil
}

package kernel

import "math/big"

// Sinh returns sinh x = (e^x − e^−x)/2 rounded to prec bits. Arguments
// tiny against the precision short-circuit to x itself, avoiding the
// cancellation of the two exponentials.
func Sinh(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.Sign() == 0 {
		return newFloat(prec, rnd), nil
	}
	if x.IsInf() {
		return Pos(x, prec, rnd), nil
	}
	if Mag(x) < -int(prec)-2 {
		return Pos(x, prec, rnd), nil
	}

	// The subtraction cancels about −Mag(x) leading bits for small x.
	wp := prec + guardBits
	if m := Mag(x); m < 0 {
		wp += uint(-m)
	}
	ex, err := Exp(x, wp, Nearest)
	if err != nil {
		return nil, err
	}
	enx, err := Exp(new(big.Float).Neg(x), wp, Nearest)
	if err != nil {
		return nil, err
	}

	return guardNaN(func() *big.Float {
		d := newFloat(prec, rnd).Sub(ex, enx)
		if !d.IsInf() {
			d.SetMantExp(d, d.MantExp(nil)-1)
		}

		return d
	})
}

// Cosh returns cosh x = (e^x + e^−x)/2 rounded to prec bits.
func Cosh(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.IsInf() {
		return Inf(1), nil
	}
	wp := prec + guardBits
	ex, err := Exp(x, wp, Nearest)
	if err != nil {
		return nil, err
	}
	enx, err := Exp(new(big.Float).Neg(x), wp, Nearest)
	if err != nil {
		return nil, err
	}

	s := newFloat(prec, rnd).Add(ex, enx)
	if !s.IsInf() {
		s.SetMantExp(s, s.MantExp(nil)-1)
	}

	return s, nil
}

// Tanh returns tanh x rounded to prec bits, saturating to ±1 once the
// exponentials overflow.
func Tanh(x *big.Float, prec uint, rnd Rounding) (*big.Float, error) {
	if x.IsInf() {
		one := FromInt64(1)
		if x.Signbit() {
			one.Neg(one)
		}

		return Pos(one, prec, rnd), nil
	}
	wp := prec + guardBits
	s, err := Sinh(x, wp, Nearest)
	if err != nil {
		return nil, err
	}
	c, err := Cosh(x, wp, Nearest)
	if err != nil {
		return nil, err
	}
	if c.IsInf() {
		one := FromInt64(1)
		if x.Sign() < 0 {
			one.Neg(one)
		}

		return Pos(one, prec, rnd), nil
	}

	return Div(s, c, prec, rnd)
}

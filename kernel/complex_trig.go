package kernel

import "math/big"

// CSin returns sin z = sin a·cosh b + i·cos a·sinh b for z = a+bi.
func CSin(z Complex, prec uint, rnd Rounding) (Complex, error) {
	wp := prec + guardBits
	sa, err := Sin(z.Re, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	ca, err := Cos(z.Re, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	chb, err := Cosh(z.Im, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	shb, err := Sinh(z.Im, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}

	return guardNaNComplex(func() Complex {
		return Complex{
			Re: newFloat(prec, rnd).Mul(sa, chb),
			Im: newFloat(prec, rnd).Mul(ca, shb),
		}
	})
}

// CCos returns cos z = cos a·cosh b − i·sin a·sinh b for z = a+bi.
func CCos(z Complex, prec uint, rnd Rounding) (Complex, error) {
	wp := prec + guardBits
	sa, err := Sin(z.Re, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	ca, err := Cos(z.Re, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	chb, err := Cosh(z.Im, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	shb, err := Sinh(z.Im, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}

	return guardNaNComplex(func() Complex {
		im := newFloat(prec, rnd).Mul(sa, shb)

		return Complex{
			Re: newFloat(prec, rnd).Mul(ca, chb),
			Im: im.Neg(im),
		}
	})
}

// CTan returns tan z = sin z / cos z.
func CTan(z Complex, prec uint, rnd Rounding) (Complex, error) {
	wp := prec + guardBits
	s, err := CSin(z, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	c, err := CCos(z, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}

	return CDiv(s, c, prec, rnd)
}

// CAtan returns atan z = (i/2)·(log(1−iz) − log(1+iz)). The branch
// points z = ±i surface as ErrDivisionByZero from the logarithm.
func CAtan(z Complex, prec uint, rnd Rounding) (Complex, error) {
	wp := prec + guardBits
	one := FromReal(FromInt64(1))
	iz := Complex{Re: new(big.Float).Neg(z.Im), Im: new(big.Float).Copy(z.Re)}

	lo, err := CSub(one, iz, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	if lo, err = CLog(lo, wp, Nearest); err != nil {
		return Complex{}, err
	}
	hi, err := CAdd(one, iz, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}
	if hi, err = CLog(hi, wp, Nearest); err != nil {
		return Complex{}, err
	}
	d, err := CSub(lo, hi, wp, Nearest)
	if err != nil {
		return Complex{}, err
	}

	// Multiply by i/2: (a+bi)·i/2 = −b/2 + (a/2)i.
	re := Neg(d.Im, prec, rnd)
	im := Pos(d.Re, prec, rnd)
	if !re.IsInf() && re.Sign() != 0 {
		re.SetMantExp(re, re.MantExp(nil)-1)
	}
	if !im.IsInf() && im.Sign() != 0 {
		im.SetMantExp(im, im.MantExp(nil)-1)
	}

	return Complex{Re: re, Im: im}, nil
}

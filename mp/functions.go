// SPDX-License-Identifier: MIT
// Package mp: elementary functions and named constants on the context.

package mp

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fangchenli/mpmath/kernel"
)

type realKernelFn func(*big.Float, uint, kernel.Rounding) (*big.Float, error)
type complexKernelFn func(kernel.Complex, uint, kernel.Rounding) (kernel.Complex, error)
type intervalKernelFn func(kernel.Interval, uint) (kernel.Interval, error)

// applyFn runs one elementary function across the tower. When the real
// kernel reports ErrComplexResult, the argument is re-evaluated through
// the complex kernel, or the call fails with ErrDomain if the context
// traps complex promotion (or no complex form exists). Indeterminate
// kernel results collapse to NaN.
func (c *Context) applyFn(name string, x any, rf realKernelFn, cf complexKernelFn, ivf intervalKernelFn, opts []OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	v, err := c.operand(x)
	if err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case *Real:
		if t.nan {
			return c.NaN(), nil
		}
		r, rerr := rf(t.v, cfg.prec, cfg.rnd)
		if rerr == nil {
			return &Real{ctx: c, v: r}, nil
		}
		if errors.Is(rerr, kernel.ErrComplexResult) {
			if c.trapComplex || cf == nil {
				return nil, fmt.Errorf("mp: %s of %s: %w", name, t, ErrDomain)
			}

			return c.complexResult(cf(kernel.FromReal(t.v), cfg.prec, cfg.rnd))
		}

		return c.realResult(nil, rerr)
	case *Complex:
		if cf == nil {
			return nil, fmt.Errorf("mp: %s of a complex: %w", name, ErrUnsupportedOperand)
		}

		return c.complexResult(cf(t.v, cfg.prec, cfg.rnd))
	case *Interval:
		if ivf == nil {
			return nil, fmt.Errorf("mp: %s of an interval: %w", name, ErrUnsupportedOperand)
		}
		r, iverr := ivf(t.v, cfg.prec)
		if iverr == nil {
			return &Interval{ctx: c, v: r}, nil
		}
		if errors.Is(iverr, kernel.ErrComplexResult) {
			return nil, fmt.Errorf("mp: %s of %s: %w", name, t, ErrDomain)
		}

		return nil, iverr
	default:
		return nil, fmt.Errorf("mp: %s of %s: %w", name, v.Kind(), ErrUnsupportedOperand)
	}
}

// Sqrt returns the square root. A negative real argument promotes to a
// purely imaginary complex, or fails with ErrDomain under trapping.
func (c *Context) Sqrt(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("sqrt", x, kernel.Sqrt, kernel.CSqrt, kernel.ISqrt, opts)
}

// Cbrt returns the principal cube root. A negative real argument
// promotes to the complex branch, or fails with ErrDomain under
// trapping.
func (c *Context) Cbrt(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("cbrt", x, kernel.Cbrt, cbrtComplex, nil, opts)
}

// cbrtComplex takes the principal branch z^(1/3).
func cbrtComplex(z kernel.Complex, prec uint, rnd kernel.Rounding) (kernel.Complex, error) {
	third := new(big.Float).SetPrec(prec + 8).Quo(kernel.FromInt64(1), kernel.FromInt64(3))

	return kernel.CPow(z, kernel.FromReal(third), prec, rnd)
}

// Exp returns e**x across the tower.
func (c *Context) Exp(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("exp", x, kernel.Exp, kernel.CExp, kernel.IExp, opts)
}

// Log returns the natural logarithm. log of a negative real promotes to
// the principal complex branch; log(0) is −inf.
func (c *Context) Log(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("log", x, kernel.Log, kernel.CLog, kernel.ILog, opts)
}

// Sin returns the sine. Interval arguments are not supported.
func (c *Context) Sin(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("sin", x, kernel.Sin, kernel.CSin, nil, opts)
}

// Cos returns the cosine. Interval arguments are not supported.
func (c *Context) Cos(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("cos", x, kernel.Cos, kernel.CCos, nil, opts)
}

// Tan returns the tangent.
func (c *Context) Tan(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("tan", x, kernel.Tan, kernel.CTan, nil, opts)
}

// Atan returns the inverse tangent.
func (c *Context) Atan(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("atan", x, kernel.Atan, kernel.CAtan, nil, opts)
}

// Sinh returns the hyperbolic sine.
func (c *Context) Sinh(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("sinh", x, kernel.Sinh, nil, nil, opts)
}

// Cosh returns the hyperbolic cosine.
func (c *Context) Cosh(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("cosh", x, kernel.Cosh, nil, nil, opts)
}

// Tanh returns the hyperbolic tangent.
func (c *Context) Tanh(x any, opts ...OpOption) (Value, error) {
	return c.applyFn("tanh", x, kernel.Tanh, nil, nil, opts)
}

// Atan2 returns atan2(y, x), the angle of the point (x, y), for real
// arguments only.
func (c *Context) Atan2(y, x any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	ry, rx, err := c.realPair("atan2", y, x)
	if err != nil {
		return nil, err
	}
	if ry == nil {
		return c.NaN(), nil
	}

	return c.realResult(kernel.Atan2(ry.v, rx.v, cfg.prec, cfg.rnd))
}

// Hypot returns √(x²+y²) without intermediate overflow, for real
// arguments only.
func (c *Context) Hypot(x, y any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	rx, ry, err := c.realPair("hypot", x, y)
	if err != nil {
		return nil, err
	}
	if rx == nil {
		return c.NaN(), nil
	}

	return c.realResult(kernel.Hypot(rx.v, ry.v, cfg.prec, cfg.rnd))
}

// realPair converts two arguments that must both land on the real line.
// A nil first return signals a NaN operand.
func (c *Context) realPair(name string, x, y any) (*Real, *Real, error) {
	xv, err := c.operand(x)
	if err != nil {
		return nil, nil, err
	}
	yv, err := c.operand(y)
	if err != nil {
		return nil, nil, err
	}
	rx, okX := xv.(*Real)
	ry, okY := yv.(*Real)
	if !okX || !okY {
		return nil, nil, fmt.Errorf("mp: %s of %s and %s: %w", name, xv.Kind(), yv.Kind(), ErrUnsupportedOperand)
	}
	if rx.nan || ry.nan {
		return nil, nil, nil
	}

	return rx, ry, nil
}

// Ldexp returns x·2^n exactly (up to the context rounding).
func (c *Context) Ldexp(x any, n int, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	v, err := c.operand(x)
	if err != nil {
		return nil, err
	}
	r, ok := v.(*Real)
	if !ok {
		return nil, fmt.Errorf("mp: ldexp of %s: %w", v.Kind(), ErrUnsupportedOperand)
	}
	if r.nan {
		return c.NaN(), nil
	}
	if r.v.IsInf() || r.v.Sign() == 0 {
		return &Real{ctx: c, v: kernel.Pos(r.v, cfg.prec, cfg.rnd)}, nil
	}
	s := new(big.Float).Copy(r.v)
	s.SetMantExp(s, s.MantExp(nil)+n)

	return &Real{ctx: c, v: kernel.Pos(s, cfg.prec, cfg.rnd)}, nil
}

// Frexp splits a finite nonzero real into a mantissa in [0.5, 1) and an
// exponent with x = m·2^e.
func (c *Context) Frexp(x any) (*Real, int, error) {
	v, err := c.operand(x)
	if err != nil {
		return nil, 0, err
	}
	r, ok := v.(*Real)
	if !ok {
		return nil, 0, fmt.Errorf("mp: frexp of %s: %w", v.Kind(), ErrUnsupportedOperand)
	}
	if r.nan {
		return c.NaN(), 0, nil
	}
	if r.v.Sign() == 0 {
		return c.Int(0), 0, nil
	}
	if r.v.IsInf() {
		return nil, 0, fmt.Errorf("mp: frexp of %s: %w", r, kernel.ErrNonFinite)
	}
	m := new(big.Float)
	e := r.v.MantExp(m)
	if m.Signbit() {
		m.Abs(m)
	}

	return &Real{ctx: c, v: m}, e, nil
}

// Floor returns ⌊x⌋ for a real argument.
func (c *Context) Floor(x any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	r, err := c.realArg("floor", x)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return c.NaN(), nil
	}

	return &Real{ctx: c, v: kernel.FloorF(r.v, cfg.prec, cfg.rnd)}, nil
}

// Ceil returns ⌈x⌉ for a real argument.
func (c *Context) Ceil(x any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	r, err := c.realArg("ceil", x)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return c.NaN(), nil
	}

	return &Real{ctx: c, v: kernel.CeilF(r.v, cfg.prec, cfg.rnd)}, nil
}

func (c *Context) realArg(name string, x any) (*Real, error) {
	v, err := c.operand(x)
	if err != nil {
		return nil, err
	}
	r, ok := v.(*Real)
	if !ok {
		return nil, fmt.Errorf("mp: %s of %s: %w", name, v.Kind(), ErrUnsupportedOperand)
	}
	if r.nan {
		return nil, nil
	}

	return r, nil
}

// Pi returns π as a lazy constant: it materializes at whatever
// precision the context holds when used.
func (c *Context) Pi() *Constant { return c.NewConstant("pi", kernel.Pi) }

// E returns Euler's number e as a lazy constant.
func (c *Context) E() *Constant { return c.NewConstant("e", kernel.EConst) }

// Ln2 returns log 2 as a lazy constant.
func (c *Context) Ln2() *Constant { return c.NewConstant("ln2", kernel.Ln2Const) }

// Ln10 returns log 10 as a lazy constant.
func (c *Context) Ln10() *Constant { return c.NewConstant("ln10", kernel.Ln10Const) }

// Phi returns the golden ratio as a lazy constant.
func (c *Context) Phi() *Constant { return c.NewConstant("phi", kernel.PhiConst) }

// Degree returns π/180 as a lazy constant.
func (c *Context) Degree() *Constant { return c.NewConstant("degree", kernel.DegreeConst) }

// Eps returns the unit roundoff 2^(1−prec) of the precision in force
// when the constant is used, not when it was created.
func (c *Context) Eps() *Constant {
	return c.NewConstant("eps", func(prec uint, rnd kernel.Rounding) *big.Float {
		e := kernel.FromInt64(1)
		e.SetMantExp(e, 1-int(prec))

		return e
	})
}

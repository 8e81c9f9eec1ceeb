// SPDX-License-Identifier: MIT
// Package mp: binary operator dispatch across the number tower.

package mp

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fangchenli/mpmath/kernel"
)

// opConfig carries per-call overrides of the context's precision and
// rounding.
type opConfig struct {
	prec  uint
	rnd   kernel.Rounding
	exact bool
}

// OpOption overrides precision or rounding for a single operation.
type OpOption func(*opConfig)

// OpPrec computes this one operation at prec bits.
func OpPrec(prec uint) OpOption {
	return func(cfg *opConfig) { cfg.prec = prec }
}

// OpDps computes this one operation at dps decimal digits.
func OpDps(dps int) OpOption {
	return func(cfg *opConfig) { cfg.prec = DpsToPrec(dps) }
}

// OpRounding rounds this one operation in the given direction.
func OpRounding(r kernel.Rounding) OpOption {
	return func(cfg *opConfig) { cfg.rnd = r }
}

// OpExact computes addition, subtraction and multiplication without any
// rounding error, growing the result precision as needed. Division
// falls back to the summed operand precision.
func OpExact() OpOption {
	return func(cfg *opConfig) { cfg.exact = true }
}

// resolveOp folds the context defaults and per-call options.
func (c *Context) resolveOp(opts []OpOption) opConfig {
	cfg := opConfig{prec: c.prec, rnd: c.rounding}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.prec < 1 {
		cfg.prec = 1
	}

	return cfg
}

// pair converts and promotes two operands to a common kind. The
// resolution order is: convert non-Value operands, materialize
// constants, then promote real→complex or real→interval as the other
// side requires. Complex and Interval do not mix. The nan flag is set
// when a NaN real reaches a real or complex target, in which case the
// operation short-circuits to NaN.
func (c *Context) pair(x, y any) (xv, yv Value, nan bool, err error) {
	xv, err = c.operand(x)
	if err != nil {
		return nil, nil, false, err
	}
	yv, err = c.operand(y)
	if err != nil {
		return nil, nil, false, err
	}

	xk, yk := xv.Kind(), yv.Kind()
	if xk == yk {
		if xk == KindReal {
			nan = xv.(*Real).nan || yv.(*Real).nan
		}

		return xv, yv, nan, nil
	}

	switch {
	case xk == KindReal && yk == KindComplex:
		r := xv.(*Real)
		if r.nan {
			return nil, nil, true, nil
		}

		return &Complex{ctx: c, v: kernel.FromReal(r.v)}, yv, false, nil
	case xk == KindComplex && yk == KindReal:
		r := yv.(*Real)
		if r.nan {
			return nil, nil, true, nil
		}

		return xv, &Complex{ctx: c, v: kernel.FromReal(r.v)}, false, nil
	case xk == KindReal && yk == KindInterval:
		return c.toInterval(xv.(*Real)), yv, false, nil
	case xk == KindInterval && yk == KindReal:
		return xv, c.toInterval(yv.(*Real)), false, nil
	default:
		return nil, nil, false, fmt.Errorf("mp: %s with %s: %w", xk, yk, ErrUnsupportedOperand)
	}
}

// operand converts one operand and materializes constants. Literal
// parsing stays off here: a raw string reaching an operation is not
// applicable and must go through Convert explicitly.
func (c *Context) operand(x any) (Value, error) {
	v, err := c.Convert(x, WithoutStrings())
	if err != nil {
		return nil, fmt.Errorf("mp: operand %T: %w", x, ErrUnsupportedOperand)
	}
	if k, ok := v.(*Constant); ok {
		return k.materialize(), nil
	}

	return v, nil
}

// toInterval promotes a real to a point interval; NaN widens to the
// entire line, the only interval that contains every candidate value.
func (c *Context) toInterval(r *Real) *Interval {
	if r.nan {
		return &Interval{ctx: c, v: kernel.EntireLine()}
	}

	return &Interval{ctx: c, v: kernel.PointInterval(r.v)}
}

// realResult wraps a kernel real result: indeterminate forms (inf−inf,
// 0·inf) collapse to NaN rather than failing.
func (c *Context) realResult(v *big.Float, err error) (Value, error) {
	if err != nil {
		if errors.Is(err, kernel.ErrNaN) {
			return c.NaN(), nil
		}

		return nil, err
	}

	return &Real{ctx: c, v: v}, nil
}

func (c *Context) complexResult(v kernel.Complex, err error) (Value, error) {
	if err != nil {
		if errors.Is(err, kernel.ErrNaN) {
			return c.NaN(), nil
		}

		return nil, err
	}

	return &Complex{ctx: c, v: v}, nil
}

func (c *Context) intervalResult(v kernel.Interval, err error) (Value, error) {
	if err != nil {
		if errors.Is(err, kernel.ErrNaN) {
			return &Interval{ctx: c, v: kernel.EntireLine()}, nil
		}

		return nil, err
	}

	return &Interval{ctx: c, v: v}, nil
}

// exactAddPrec returns a precision at which x±y is exact: wide enough
// to span from the higher leading bit to the lower trailing bit.
func exactAddPrec(x, y *big.Float, fallback uint) uint {
	if x.IsInf() || y.IsInf() || x.Sign() == 0 || y.Sign() == 0 {
		return fallback
	}
	top := x.MantExp(nil)
	if e := y.MantExp(nil); e > top {
		top = e
	}
	bot := x.MantExp(nil) - int(x.Prec())
	if b := y.MantExp(nil) - int(y.Prec()); b < bot {
		bot = b
	}

	return uint(top-bot) + 4
}

// Add returns x+y with standard tower promotion.
func (c *Context) Add(x, y any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	xv, yv, nan, err := c.pair(x, y)
	if err != nil {
		return nil, err
	}
	if nan {
		return c.NaN(), nil
	}

	switch a := xv.(type) {
	case *Real:
		b := yv.(*Real)
		prec := cfg.prec
		if cfg.exact {
			prec = exactAddPrec(a.v, b.v, prec)
		}

		return c.realResult(kernel.Add(a.v, b.v, prec, cfg.rnd))
	case *Complex:
		return c.complexResult(kernel.CAdd(a.v, yv.(*Complex).v, cfg.prec, cfg.rnd))
	case *Interval:
		return c.intervalResult(kernel.IAdd(a.v, yv.(*Interval).v, cfg.prec))
	default:
		return nil, fmt.Errorf("mp: add %s: %w", xv.Kind(), ErrUnsupportedOperand)
	}
}

// Sub returns x−y with standard tower promotion.
func (c *Context) Sub(x, y any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	xv, yv, nan, err := c.pair(x, y)
	if err != nil {
		return nil, err
	}
	if nan {
		return c.NaN(), nil
	}

	switch a := xv.(type) {
	case *Real:
		b := yv.(*Real)
		prec := cfg.prec
		if cfg.exact {
			prec = exactAddPrec(a.v, b.v, prec)
		}

		return c.realResult(kernel.Sub(a.v, b.v, prec, cfg.rnd))
	case *Complex:
		return c.complexResult(kernel.CSub(a.v, yv.(*Complex).v, cfg.prec, cfg.rnd))
	case *Interval:
		return c.intervalResult(kernel.ISub(a.v, yv.(*Interval).v, cfg.prec))
	default:
		return nil, fmt.Errorf("mp: sub %s: %w", xv.Kind(), ErrUnsupportedOperand)
	}
}

// Mul returns x·y with standard tower promotion. Small Go integer
// multiplicands take an exact fast path that skips conversion.
func (c *Context) Mul(x, y any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)

	// Integer fast path: one conversion and one exact scaling.
	if n, ok := asInt64(y); ok {
		if r, ok2 := x.(*Real); ok2 && r.ctx == c && !r.nan {
			return c.realResult(kernel.MulInt(r.v, n, cfg.prec, cfg.rnd))
		}
		if z, ok2 := x.(*Complex); ok2 && z.ctx == c {
			return c.complexResult(kernel.CMulInt(z.v, n, cfg.prec, cfg.rnd))
		}
	}

	xv, yv, nan, err := c.pair(x, y)
	if err != nil {
		return nil, err
	}
	if nan {
		return c.NaN(), nil
	}

	switch a := xv.(type) {
	case *Real:
		b := yv.(*Real)
		prec := cfg.prec
		if cfg.exact {
			prec = a.v.Prec() + b.v.Prec() + 4
		}

		return c.realResult(kernel.Mul(a.v, b.v, prec, cfg.rnd))
	case *Complex:
		return c.complexResult(kernel.CMul(a.v, yv.(*Complex).v, cfg.prec, cfg.rnd))
	case *Interval:
		return c.intervalResult(kernel.IMul(a.v, yv.(*Interval).v, cfg.prec))
	default:
		return nil, fmt.Errorf("mp: mul %s: %w", xv.Kind(), ErrUnsupportedOperand)
	}
}

// Div returns x/y with standard tower promotion. Division by exact zero
// fails with kernel.ErrDivisionByZero.
func (c *Context) Div(x, y any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	xv, yv, nan, err := c.pair(x, y)
	if err != nil {
		return nil, err
	}
	if nan {
		return c.NaN(), nil
	}

	switch a := xv.(type) {
	case *Real:
		b := yv.(*Real)
		prec := cfg.prec
		if cfg.exact {
			prec = a.v.Prec() + b.v.Prec() + 4
		}

		return c.realResult(kernel.Div(a.v, b.v, prec, cfg.rnd))
	case *Complex:
		return c.complexResult(kernel.CDiv(a.v, yv.(*Complex).v, cfg.prec, cfg.rnd))
	case *Interval:
		return c.intervalResult(kernel.IDiv(a.v, yv.(*Interval).v, cfg.prec))
	default:
		return nil, fmt.Errorf("mp: div %s: %w", xv.Kind(), ErrUnsupportedOperand)
	}
}

// Mod returns the floor-modulus x mod y, defined for reals only.
func (c *Context) Mod(x, y any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)
	xv, yv, nan, err := c.pair(x, y)
	if err != nil {
		return nil, err
	}
	if nan {
		return c.NaN(), nil
	}

	a, okA := xv.(*Real)
	b, okB := yv.(*Real)
	if !okA || !okB {
		return nil, fmt.Errorf("mp: mod of %s and %s: %w", xv.Kind(), yv.Kind(), ErrUnsupportedOperand)
	}

	return c.realResult(kernel.Mod(a.v, b.v, cfg.prec, cfg.rnd))
}

// Pow returns x**y. Integer exponents use exact binary exponentiation;
// a negative real base with fractional exponent promotes to complex, or
// fails with ErrDomain when the context traps complex results.
func (c *Context) Pow(x, y any, opts ...OpOption) (Value, error) {
	cfg := c.resolveOp(opts)

	if n, ok := asInt64(y); ok {
		if r, ok2 := x.(*Real); ok2 && r.ctx == c && !r.nan {
			return c.realResult(kernel.PowInt(r.v, n, cfg.prec, cfg.rnd))
		}
	}

	xv, yv, nan, err := c.pair(x, y)
	if err != nil {
		return nil, err
	}
	if nan {
		return c.NaN(), nil
	}

	switch a := xv.(type) {
	case *Real:
		b := yv.(*Real)
		r, perr := kernel.Pow(a.v, b.v, cfg.prec, cfg.rnd)
		if perr == nil {
			return &Real{ctx: c, v: r}, nil
		}
		if errors.Is(perr, kernel.ErrComplexResult) {
			if c.trapComplex {
				return nil, fmt.Errorf("mp: pow of negative base: %w", ErrDomain)
			}

			return c.complexResult(kernel.CPow(kernel.FromReal(a.v), kernel.FromReal(b.v), cfg.prec, cfg.rnd))
		}

		return c.realResult(nil, perr)
	case *Complex:
		return c.complexResult(kernel.CPow(a.v, yv.(*Complex).v, cfg.prec, cfg.rnd))
	case *Interval:
		return c.intervalResult(kernel.IPow(a.v, yv.(*Interval).v, cfg.prec))
	default:
		return nil, fmt.Errorf("mp: pow %s: %w", xv.Kind(), ErrUnsupportedOperand)
	}
}

// Neg returns −x.
func (c *Context) Neg(x any, opts ...OpOption) (Value, error) {
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

		return &Real{ctx: c, v: kernel.Neg(t.v, cfg.prec, cfg.rnd)}, nil
	case *Complex:
		return &Complex{ctx: c, v: kernel.CNeg(t.v, cfg.prec, cfg.rnd)}, nil
	case *Interval:
		return &Interval{ctx: c, v: kernel.INeg(t.v, cfg.prec)}, nil
	default:
		return nil, fmt.Errorf("mp: neg %s: %w", v.Kind(), ErrUnsupportedOperand)
	}
}

// Conj returns the complex conjugate. Reals and intervals lie on the
// real line and conjugate to themselves.
func (c *Context) Conj(x any, opts ...OpOption) (Value, error) {
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

		return &Real{ctx: c, v: kernel.Pos(t.v, cfg.prec, cfg.rnd)}, nil
	case *Complex:
		return &Complex{ctx: c, v: kernel.CConj(t.v, cfg.prec, cfg.rnd)}, nil
	case *Interval:
		return &Interval{ctx: c, v: kernel.IPos(t.v, cfg.prec)}, nil
	default:
		return nil, fmt.Errorf("mp: conj %s: %w", v.Kind(), ErrUnsupportedOperand)
	}
}

// Abs returns |x|. The absolute value of a complex is real.
func (c *Context) Abs(x any, opts ...OpOption) (Value, error) {
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

		return &Real{ctx: c, v: kernel.Abs(t.v, cfg.prec, cfg.rnd)}, nil
	case *Complex:
		return c.realResult(kernel.CAbs(t.v, cfg.prec, cfg.rnd))
	case *Interval:
		return &Interval{ctx: c, v: kernel.IAbs(t.v, cfg.prec)}, nil
	default:
		return nil, fmt.Errorf("mp: abs %s: %w", v.Kind(), ErrUnsupportedOperand)
	}
}

// Cmp compares two values, returning −1, 0 or +1. Comparisons involving
// NaN, complexes or intervals admit no order and fail with ErrUnordered.
// An interval is a set, not a number; use Equal or Contains instead.
func (c *Context) Cmp(x, y any) (int, error) {
	xv, yv, nan, err := c.pair(x, y)
	if err != nil {
		return 0, err
	}
	if nan {
		return 0, fmt.Errorf("mp: comparison with nan: %w", ErrUnordered)
	}

	switch a := xv.(type) {
	case *Real:
		return kernel.Cmp(a.v, yv.(*Real).v), nil
	case *Complex:
		return 0, fmt.Errorf("mp: comparison of complex values: %w", ErrUnordered)
	case *Interval:
		return 0, fmt.Errorf("mp: comparison of intervals: %w", ErrUnordered)
	default:
		return 0, fmt.Errorf("mp: cmp %s: %w", xv.Kind(), ErrUnsupportedOperand)
	}
}

// Equal reports numeric equality across the tower. NaN equals nothing;
// a real, a complex with zero imaginary part and a point interval
// holding the same number are all equal.
func (c *Context) Equal(x, y any) (bool, error) {
	xv, yv, nan, err := c.pair(x, y)
	if err != nil {
		if errors.Is(err, ErrUnsupportedOperand) {
			return false, nil
		}

		return false, err
	}
	if nan {
		return false, nil
	}

	switch a := xv.(type) {
	case *Real:
		return kernel.Cmp(a.v, yv.(*Real).v) == 0, nil
	case *Complex:
		return kernel.CEq(a.v, yv.(*Complex).v), nil
	case *Interval:
		b := yv.(*Interval)

		return a.v.A.Cmp(b.v.A) == 0 && a.v.B.Cmp(b.v.B) == 0, nil
	default:
		return false, nil
	}
}

// asInt64 recognizes Go integers small enough for the exact fast paths.
func asInt64(x any) (int64, bool) {
	switch t := x.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case *big.Int:
		if t.IsInt64() {
			return t.Int64(), true
		}
	}

	return 0, false
}

// SPDX-License-Identifier: MIT
// Package mp: accurate summation helpers.

package mp

import (
	"fmt"
	"math/bits"

	"github.com/fangchenli/mpmath/kernel"
)

// sumGuard returns the working precision for accumulating n terms at
// target precision prec: enough headroom that intermediate rounding
// cannot touch the final result's bits.
func sumGuard(prec uint, n int) uint {
	extra := uint(16)
	if n > 0 {
		extra += uint(bits.Len(uint(n)))
	}

	return prec + extra
}

// Sum adds the terms with one final rounding: the accumulation happens
// at a widened precision, so the result does not depend on term order
// the way naive sequential rounding does. Mixed real and complex terms
// promote; interval terms absorb reals; complex and interval terms do
// not mix. A NaN term makes the whole sum NaN.
func (c *Context) Sum(terms ...any) (Value, error) {
	cfg := c.resolveOp(nil)
	wp := sumGuard(cfg.prec, len(terms))

	vals := make([]Value, 0, len(terms))
	kind := KindReal
	for _, t := range terms {
		v, err := c.operand(t)
		if err != nil {
			return nil, err
		}
		switch v.Kind() {
		case KindComplex:
			if kind == KindInterval {
				return nil, fmt.Errorf("mp: sum of complex and interval terms: %w", ErrUnsupportedOperand)
			}
			kind = KindComplex
		case KindInterval:
			if kind == KindComplex {
				return nil, fmt.Errorf("mp: sum of complex and interval terms: %w", ErrUnsupportedOperand)
			}
			kind = KindInterval
		}
		vals = append(vals, v)
	}

	switch kind {
	case KindComplex:
		return c.sumComplex(vals, wp, cfg)
	case KindInterval:
		return c.sumInterval(vals, wp, cfg)
	default:
		return c.sumReal(vals, wp, cfg)
	}
}

func (c *Context) sumReal(vals []Value, wp uint, cfg opConfig) (Value, error) {
	acc := kernel.FromInt64(0)
	for _, v := range vals {
		r := v.(*Real)
		if r.nan {
			return c.NaN(), nil
		}
		next, err := kernel.Add(acc, r.v, wp, kernel.Nearest)
		if err != nil {
			return c.realResult(nil, err)
		}
		acc = next
	}

	return &Real{ctx: c, v: kernel.Pos(acc, cfg.prec, cfg.rnd)}, nil
}

func (c *Context) sumComplex(vals []Value, wp uint, cfg opConfig) (Value, error) {
	acc := kernel.FromReal(kernel.FromInt64(0))
	for _, v := range vals {
		var z kernel.Complex
		switch t := v.(type) {
		case *Real:
			if t.nan {
				return c.NaN(), nil
			}
			z = kernel.FromReal(t.v)
		case *Complex:
			z = t.v
		}
		next, err := kernel.CAdd(acc, z, wp, kernel.Nearest)
		if err != nil {
			return c.complexResult(kernel.Complex{}, err)
		}
		acc = next
	}

	return &Complex{ctx: c, v: kernel.CPos(acc, cfg.prec, cfg.rnd)}, nil
}

func (c *Context) sumInterval(vals []Value, wp uint, cfg opConfig) (Value, error) {
	acc := kernel.PointInterval(kernel.FromInt64(0))
	for _, v := range vals {
		var iv kernel.Interval
		switch t := v.(type) {
		case *Real:
			iv = c.toInterval(t).v
		case *Interval:
			iv = t.v
		}
		next, err := kernel.IAdd(acc, iv, wp)
		if err != nil {
			return c.intervalResult(kernel.Interval{}, err)
		}
		acc = next
	}

	return &Interval{ctx: c, v: kernel.IPos(acc, cfg.prec)}, nil
}

// Dot returns Σ xs[i]·ys[i] with the products and the accumulation both
// carried at a widened precision and a single final rounding. Real and
// complex elements mix; intervals are not supported here.
func (c *Context) Dot(xs, ys []any) (Value, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("mp: dot of %d and %d elements: %w", len(xs), len(ys), ErrDimensionMismatch)
	}
	cfg := c.resolveOp(nil)
	wp := sumGuard(cfg.prec, len(xs)) + 16

	accR := kernel.FromInt64(0)
	accC := kernel.FromReal(kernel.FromInt64(0))
	anyComplex := false

	for i := range xs {
		xv, err := c.operand(xs[i])
		if err != nil {
			return nil, err
		}
		yv, err := c.operand(ys[i])
		if err != nil {
			return nil, err
		}
		xr, xOK := xv.(*Real)
		yr, yOK := yv.(*Real)

		switch {
		case xOK && yOK:
			if xr.nan || yr.nan {
				return c.NaN(), nil
			}
			p, err := kernel.Mul(xr.v, yr.v, wp, kernel.Nearest)
			if err != nil {
				return c.realResult(nil, err)
			}
			if accR, err = kernel.Add(accR, p, wp, kernel.Nearest); err != nil {
				return c.realResult(nil, err)
			}
		default:
			zx, nan, err := c.dotComplex(xv)
			if err != nil {
				return nil, err
			}
			zy, nan2, err := c.dotComplex(yv)
			if err != nil {
				return nil, err
			}
			if nan || nan2 {
				return c.NaN(), nil
			}
			p, err := kernel.CMul(zx, zy, wp, kernel.Nearest)
			if err != nil {
				return c.complexResult(kernel.Complex{}, err)
			}
			if accC, err = kernel.CAdd(accC, p, wp, kernel.Nearest); err != nil {
				return c.complexResult(kernel.Complex{}, err)
			}
			anyComplex = true
		}
	}

	if anyComplex {
		z, err := kernel.CAdd(accC, kernel.FromReal(accR), cfg.prec, cfg.rnd)
		if err != nil {
			return c.complexResult(kernel.Complex{}, err)
		}

		return &Complex{ctx: c, v: z}, nil
	}

	return &Real{ctx: c, v: kernel.Pos(accR, cfg.prec, cfg.rnd)}, nil
}

// dotComplex views a dot-product element as a complex kernel value.
// The second return flags a NaN element, which absorbs the whole dot.
func (c *Context) dotComplex(v Value) (kernel.Complex, bool, error) {
	switch t := v.(type) {
	case *Real:
		if t.nan {
			return kernel.Complex{}, true, nil
		}

		return kernel.FromReal(t.v), false, nil
	case *Complex:
		return t.v, false, nil
	default:
		return kernel.Complex{}, false, fmt.Errorf("mp: dot element of %s: %w", v.Kind(), ErrUnsupportedOperand)
	}
}

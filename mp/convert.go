// SPDX-License-Identifier: MIT
// Package mp: conversion of Go values into the number tower.

package mp

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/fangchenli/mpmath/kernel"
)

// convertConfig collects Convert options.
type convertConfig struct {
	noStrings bool
}

// ConvertOption tweaks a single Convert call.
type ConvertOption func(*convertConfig)

// WithoutStrings disables string parsing for this call, so data that
// should already be numeric cannot smuggle literals through.
func WithoutStrings() ConvertOption {
	return func(cfg *convertConfig) { cfg.noStrings = true }
}

// Convert turns a Go value into a member of the number tower bound to
// this context. Accepted inputs: any Value (rebound to this context if
// foreign), all int/uint sizes, float32/64, complex64/128, *big.Int,
// *big.Rat, *big.Float, and strings (decimal, "p/q", "a+bj", interval
// literals) unless WithoutStrings is set.
//
// Native integers, floats, *big.Int and *big.Float convert losslessly
// at their natural precision; operations round their results to the
// context precision. Rationals and decimal strings, which need not
// terminate in binary, round at conversion.
func (c *Context) Convert(x any, opts ...ConvertOption) (Value, error) {
	var cfg convertConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	switch t := x.(type) {
	case *Real:
		if t.ctx == c {
			return t, nil
		}
		if t.nan {
			return c.NaN(), nil
		}

		return c.NewReal(t.v), nil
	case *Complex:
		if t.ctx == c {
			return t, nil
		}

		return &Complex{ctx: c, v: kernel.CPos(t.v, c.prec, c.rounding)}, nil
	case *Interval:
		if t.ctx == c {
			return t, nil
		}

		return &Interval{ctx: c, v: kernel.IPos(t.v, c.prec)}, nil
	case *Constant:
		if t.ctx == c {
			return t, nil
		}

		return c.NewConstant(t.name, t.fn), nil
	case int:
		return c.Int(int64(t)), nil
	case int8:
		return c.Int(int64(t)), nil
	case int16:
		return c.Int(int64(t)), nil
	case int32:
		return c.Int(int64(t)), nil
	case int64:
		return c.Int(t), nil
	case uint:
		return &Real{ctx: c, v: new(big.Float).SetUint64(uint64(t))}, nil
	case uint8:
		return c.Int(int64(t)), nil
	case uint16:
		return c.Int(int64(t)), nil
	case uint32:
		return c.Int(int64(t)), nil
	case uint64:
		return &Real{ctx: c, v: new(big.Float).SetUint64(t)}, nil
	case float32:
		return c.Float64(float64(t)), nil
	case float64:
		return c.Float64(t), nil
	case complex64:
		return c.fromComplex128(complex128(t)), nil
	case complex128:
		return c.fromComplex128(t), nil
	case *big.Int:
		return &Real{ctx: c, v: kernel.FromBigInt(t)}, nil
	case *big.Rat:
		return &Real{ctx: c, v: kernel.FromRat(t, c.prec, c.rounding)}, nil
	case *big.Float:
		return &Real{ctx: c, v: new(big.Float).Copy(t)}, nil
	case string:
		if cfg.noStrings {
			return nil, fmt.Errorf("mp: string input %q disabled here: %w", t, ErrConversion)
		}

		return c.parseLiteral(t)
	default:
		return nil, fmt.Errorf("mp: type %T: %w", x, ErrConversion)
	}
}

// fromComplex128 converts a Go complex, collapsing a zero imaginary
// part down to a Real.
func (c *Context) fromComplex128(z complex128) Value {
	if imag(z) == 0 && !math.IsNaN(real(z)) {
		return c.Float64(real(z))
	}
	re, err := kernel.FromFloat64(real(z))
	if err != nil {
		return c.NaN()
	}
	im, err := kernel.FromFloat64(imag(z))
	if err != nil {
		return c.NaN()
	}

	return &Complex{ctx: c, v: kernel.NewComplex(re, im)}
}

// parseLiteral resolves a string literal to a tower value: special
// names, decimal floats, "p/q" rationals, "a+bj" complexes, then the
// interval forms understood by ParseInterval.
func (c *Context) parseLiteral(s string) (Value, error) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "nan":
		return c.NaN(), nil
	case "inf", "+inf":
		return c.Inf(1), nil
	case "-inf":
		return c.Inf(-1), nil
	}

	if f, err := kernel.FromString(t, c.prec, c.rounding); err == nil {
		return &Real{ctx: c, v: f}, nil
	}
	if r, ok := new(big.Rat).SetString(t); ok {
		return &Real{ctx: c, v: kernel.FromRat(r, c.prec, c.rounding)}, nil
	}
	if z, ok := c.parseComplexLiteral(t); ok {
		return z, nil
	}
	if iv, err := ParseInterval(c, t); err == nil {
		return iv, nil
	}

	return nil, fmt.Errorf("mp: %q: %w", s, ErrBadLiteral)
}

// parseComplexLiteral parses "a+bj", "a-bj" or "bj" (also with an "i"
// suffix). The split point is the last sign that is not an exponent
// sign and not leading.
func (c *Context) parseComplexLiteral(s string) (*Complex, bool) {
	t := strings.ReplaceAll(s, " ", "")
	t = strings.TrimPrefix(strings.TrimSuffix(t, ")"), "(")
	if t == "" {
		return nil, false
	}
	last := t[len(t)-1]
	if last != 'j' && last != 'J' && last != 'i' && last != 'I' {
		return nil, false
	}
	t = t[:len(t)-1]

	split := -1
	for i := len(t) - 1; i > 0; i-- {
		if t[i] != '+' && t[i] != '-' {
			continue
		}
		if p := t[i-1]; p == 'e' || p == 'E' {
			continue
		}
		split = i

		break
	}

	rePart, imPart := "", t
	if split > 0 {
		rePart, imPart = t[:split], t[split:]
	}
	if imPart == "" || imPart == "+" {
		imPart = "1"
	} else if imPart == "-" {
		imPart = "-1"
	}

	im, err := kernel.FromString(imPart, c.prec, c.rounding)
	if err != nil {
		return nil, false
	}
	re := new(big.Float)
	if rePart != "" {
		if re, err = kernel.FromString(rePart, c.prec, c.rounding); err != nil {
			return nil, false
		}
	}

	return &Complex{ctx: c, v: kernel.NewComplex(re, im)}, true
}

// Param is a scalar parameter classified for exact recurrence use: the
// tower value plus, when the value is exactly rational, the rational
// itself. Tag is 'Z' for integers, 'Q' for non-integer rationals, 'R'
// for irrational-or-nonfinite reals and 'C' for complexes.
type Param struct {
	// Val is the converted tower value.
	Val Value

	// Rat holds the exact rational value for tags 'Z' and 'Q', nil
	// otherwise. Every finite binary float is an exact rational, so
	// Real inputs always classify as 'Z' or 'Q'.
	Rat *big.Rat

	// Tag is the classification byte.
	Tag byte
}

// ConvertMaybeRational converts x like Convert and additionally
// classifies it, recovering the exact rational value whenever one
// exists. Complexes with an exactly zero imaginary part classify by
// their real part.
func (c *Context) ConvertMaybeRational(x any) (Param, error) {
	// Exact fast paths that skip the lossy float rounding.
	switch t := x.(type) {
	case int:
		return ratParam(c, new(big.Rat).SetInt64(int64(t))), nil
	case int64:
		return ratParam(c, new(big.Rat).SetInt64(t)), nil
	case *big.Int:
		return ratParam(c, new(big.Rat).SetInt(t)), nil
	case *big.Rat:
		return ratParam(c, t), nil
	case string:
		if r, ok := new(big.Rat).SetString(strings.TrimSpace(t)); ok {
			return ratParam(c, r), nil
		}
	}

	v, err := c.Convert(x)
	if err != nil {
		return Param{}, err
	}

	switch t := v.(type) {
	case *Real:
		if t.nan || t.v.IsInf() {
			return Param{Val: v, Tag: 'R'}, nil
		}
		r, _ := t.v.Rat(nil)

		return Param{Val: v, Rat: r, Tag: ratTag(r)}, nil
	case *Constant:
		return Param{Val: t.materialize(), Tag: 'R'}, nil
	case *Complex:
		if t.IsReal() {
			return c.ConvertMaybeRational(t.Re())
		}

		return Param{Val: v, Tag: 'C'}, nil
	default:
		return Param{Val: v, Tag: 'R'}, nil
	}
}

// ratParam wraps an exact rational as a classified parameter. Integer
// rationals carry over exactly; the rest round at the context precision.
func ratParam(c *Context, r *big.Rat) Param {
	var v *big.Float
	if r.IsInt() {
		v = kernel.FromBigInt(r.Num())
	} else {
		v = kernel.FromRat(r, c.prec, c.rounding)
	}

	return Param{Val: &Real{ctx: c, v: v}, Rat: r, Tag: ratTag(r)}
}

func ratTag(r *big.Rat) byte {
	if r.IsInt() {
		return 'Z'
	}

	return 'Q'
}

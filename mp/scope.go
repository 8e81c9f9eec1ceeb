// SPDX-License-Identifier: MIT
// Package mp: scoped precision overrides with guaranteed restore.

package mp

import "github.com/fangchenli/mpmath/kernel"

// scopeKind distinguishes relative from absolute overrides.
type scopeKind int

const (
	scopeExtraPrec scopeKind = iota
	scopeExtraDps
	scopeWorkPrec
	scopeWorkDps
)

// PrecScope temporarily changes the context precision for the duration
// of one Run call and restores it afterwards, even on error or panic.
// Scopes nest: each Run resolves its target against the precision in
// force at entry, so stacking two ExtraPrec(10) scopes adds 20 bits.
type PrecScope struct {
	ctx       *Context
	kind      scopeKind
	delta     int
	absPrec   uint
	absDps    int
	normalize bool
}

// ExtraPrec returns a scope that raises the binary precision by n bits
// while it runs. Negative n lowers it.
func (c *Context) ExtraPrec(n int) *PrecScope {
	return &PrecScope{ctx: c, kind: scopeExtraPrec, delta: n}
}

// ExtraDps returns a scope that raises the decimal precision by n
// digits while it runs.
func (c *Context) ExtraDps(n int) *PrecScope {
	return &PrecScope{ctx: c, kind: scopeExtraDps, delta: n}
}

// WorkPrec returns a scope that sets the binary precision to exactly
// prec while it runs.
func (c *Context) WorkPrec(prec uint) *PrecScope {
	return &PrecScope{ctx: c, kind: scopeWorkPrec, absPrec: prec}
}

// WorkDps returns a scope that sets the decimal precision to exactly
// dps while it runs.
func (c *Context) WorkDps(dps int) *PrecScope {
	return &PrecScope{ctx: c, kind: scopeWorkDps, absDps: dps}
}

// Normalized makes RunValue and RunValues re-round their results to the
// restored (outer) precision, so extra working bits never leak out of
// the scope.
func (s *PrecScope) Normalized() *PrecScope {
	s.normalize = true

	return s
}

// enter applies the override and returns a restore function.
func (s *PrecScope) enter() func() {
	prevPrec, prevDps := s.ctx.prec, s.ctx.dps

	switch s.kind {
	case scopeExtraPrec:
		p := int(s.ctx.prec) + s.delta
		if p < 1 {
			p = 1
		}
		s.ctx.SetPrec(uint(p))
	case scopeExtraDps:
		d := s.ctx.dps + s.delta
		if d < 1 {
			d = 1
		}
		s.ctx.SetDps(d)
	case scopeWorkPrec:
		s.ctx.SetPrec(s.absPrec)
	case scopeWorkDps:
		s.ctx.SetDps(s.absDps)
	}

	return func() {
		s.ctx.prec, s.ctx.dps = prevPrec, prevDps
	}
}

// Run executes fn at the scoped precision.
func (s *PrecScope) Run(fn func(*Context) error) error {
	defer s.enter()()

	return fn(s.ctx)
}

// RunValue executes fn at the scoped precision and returns its result,
// re-rounded to the outer precision if the scope is Normalized.
func (s *PrecScope) RunValue(fn func(*Context) (Value, error)) (Value, error) {
	var v Value
	var err error
	func() {
		defer s.enter()()
		v, err = fn(s.ctx)
	}()
	if err != nil {
		return nil, err
	}
	if s.normalize {
		v = s.ctx.normalizeValue(v)
	}

	return v, nil
}

// RunValues is RunValue for a slice of results, normalized element-wise.
func (s *PrecScope) RunValues(fn func(*Context) ([]Value, error)) ([]Value, error) {
	var vs []Value
	var err error
	func() {
		defer s.enter()()
		vs, err = fn(s.ctx)
	}()
	if err != nil {
		return nil, err
	}
	if s.normalize {
		for i, v := range vs {
			vs[i] = s.ctx.normalizeValue(v)
		}
	}

	return vs, nil
}

// normalizeValue re-rounds a value to the context's current precision.
func (c *Context) normalizeValue(v Value) Value {
	switch t := v.(type) {
	case *Real:
		if t.nan {
			return t
		}

		return &Real{ctx: c, v: kernel.Pos(t.v, c.prec, c.rounding)}
	case *Complex:
		return &Complex{ctx: c, v: kernel.CPos(t.v, c.prec, c.rounding)}
	case *Interval:
		return &Interval{ctx: c, v: kernel.IPos(t.v, c.prec)}
	default:
		return v
	}
}

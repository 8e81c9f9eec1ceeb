// SPDX-License-Identifier: MIT
// Package hyper: the adaptive-precision summation engine.

package hyper

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fangchenli/mpmath/kernel"
	"github.com/fangchenli/mpmath/mp"
)

// Engine evaluates generalized hypergeometric series pFq(a; b; z) at
// the precision of the context it is bound to, escalating its working
// precision until cancellation no longer eats into the requested bits.
// An Engine is safe for concurrent use; the plan cache is shared.
type Engine struct {
	ctx *mp.Context
	cfg config

	mu    sync.Mutex
	plans map[planKey]*plan
}

// planKey identifies a summation plan: the series shape plus the
// parameter type tags, mirroring how repeated evaluations of the same
// function family share a plan.
type planKey struct {
	p, q     int
	flags    string
	complexZ bool
}

// plan is the cached per-shape summation strategy.
type plan struct {
	key     planKey
	complex bool
}

// New binds an engine to a context. The engine reads the context's
// precision at each Hyper call, so precision scopes work as expected.
func New(ctx *mp.Context, opts ...Option) *Engine {
	cfg := config{
		maxTerms:      DefaultMaxTerms,
		margin:        DefaultMargin,
		accurateSmall: true,
		log:           ctx.Logger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}

	return &Engine{ctx: ctx, cfg: cfg, plans: make(map[planKey]*plan)}
}

// Context returns the bound context.
func (e *Engine) Context() *mp.Context { return e.ctx }

// param is one classified series parameter ready for materialization at
// any working precision.
type param struct {
	rat *big.Rat       // exact value, when rational
	re  *big.Float     // real value, when not rational
	z   kernel.Complex // complex value
	isC bool
}

// materialize renders the parameter as a real at wp bits. Rationals
// re-round from their exact value so no precision is baked in.
func (p param) materialize(wp uint) *big.Float {
	if p.rat != nil {
		return kernel.FromRat(p.rat, wp, kernel.Nearest)
	}

	return new(big.Float).SetPrec(wp).Set(p.re)
}

func (p param) materializeComplex(wp uint) kernel.Complex {
	if p.isC {
		return kernel.NewComplex(
			new(big.Float).SetPrec(wp).Set(p.z.Re),
			new(big.Float).SetPrec(wp).Set(p.z.Im),
		)
	}

	return kernel.FromReal(p.materialize(wp))
}

// Hyper evaluates pFq(as; bs; z) = Σ_k Π(as)_k / Π(bs)_k · z^k / k!.
// Parameters accept anything the context converts: Go numbers, big
// types, strings ("1/3" stays an exact rational), Reals and Complexes.
//
// A lower parameter at a nonpositive integer that the series reaches
// is a genuine pole: Hyper fails fast with ErrPole. Heavy cancellation
// triggers precision escalation; if the escalation ceiling is reached
// the call fails with *NoConvergenceError.
func (e *Engine) Hyper(as, bs []any, z any) (mp.Value, error) {
	prec := e.ctx.Prec()

	aps, aTags, err := e.classify(as)
	if err != nil {
		return nil, err
	}
	bps, bTags, err := e.classify(bs)
	if err != nil {
		return nil, err
	}
	zp, zTag, err := e.classifyOne(z)
	if err != nil {
		return nil, err
	}

	pl := e.plan(planKey{
		p:        len(aps),
		q:        len(bps),
		flags:    aTags + "|" + bTags,
		complexZ: zTag == 'C',
	})

	if err := checkPoles(aps, bps); err != nil {
		return nil, err
	}

	// z = 0: only the k=0 term survives and the sum is exactly 1.
	if zeroArg(zp) {
		return e.ctx.Int(1), nil
	}

	extra, minIndex := nearPoleScan(bps, prec)
	if extra < DefaultExtraPrec {
		extra = DefaultExtraPrec
	}
	epsShift := uint(DefaultEpsShift)

	maxPrec := e.cfg.maxPrec
	if maxPrec == 0 {
		maxPrec = DefaultMaxPrec(prec)
	}

	var lastTerms int
	for attempt := 0; ; attempt++ {
		// The ceiling guards every attempt, including the first: a
		// near-pole scan may already demand more guard bits than the
		// escalation budget allows.
		wp := prec + extra
		if wp > maxPrec {
			return nil, &NoConvergenceError{Requested: prec, Attempted: wp, Terms: lastTerms}
		}

		res, serr := e.attempt(pl, aps, bps, zp, wp, prec, epsShift, minIndex)
		if serr != nil {
			if errors.Is(serr, errTermCeiling) {
				lastTerms = e.cfg.maxTerms
				e.cfg.log.Debug("hyper: term ceiling, widening precision",
					zap.Uint("wp", wp), zap.Int("attempt", attempt))
				extra *= 2

				continue
			}

			return nil, serr
		}
		lastTerms = res.terms

		// Accept when the cancellation fits inside the guard bits with
		// margin to spare. The margin stiffens by 5 bits per retry,
		// tracking the epsilon shift.
		cancel := res.cancellation()
		slack := e.cfg.margin + int(epsShift) - DefaultEpsShift
		if cancel <= int(extra)-slack || !e.cfg.accurateSmall {
			return e.finish(res)
		}

		// Heavy cancellation with the residue below the zero threshold:
		// the sum is zero to within zeroPrec bits. An accurately summed
		// tiny value never reaches this branch.
		if e.cfg.zeroPrec > 0 && res.mag() < -int(e.cfg.zeroPrec) {
			if res.im != nil {
				return e.ctx.NewComplex(nil, nil), nil
			}

			return e.ctx.Int(0), nil
		}

		e.cfg.log.Debug("hyper: cancellation exceeds guard bits, retrying",
			zap.Int("cancellation", cancel),
			zap.Uint("extra", extra),
			zap.Int("terms", res.terms))
		extra = 2*extra + 5
		epsShift += 5
	}
}

// attempt runs one summation pass at wp bits.
func (e *Engine) attempt(pl *plan, aps, bps []param, zp param, wp, prec uint, epsShift uint, minIndex int) (attemptResult, error) {
	if pl.complex {
		av := make([]kernel.Complex, len(aps))
		for i, p := range aps {
			av[i] = p.materializeComplex(wp)
		}
		bv := make([]kernel.Complex, len(bps))
		for i, p := range bps {
			bv[i] = p.materializeComplex(wp)
		}

		return sumComplex(av, bv, zp.materializeComplex(wp), wp, prec, epsShift, minIndex, e.cfg.maxTerms)
	}

	av := make([]*big.Float, len(aps))
	for i, p := range aps {
		av[i] = p.materialize(wp)
	}
	bv := make([]*big.Float, len(bps))
	for i, p := range bps {
		bv[i] = p.materialize(wp)
	}

	return sumReal(av, bv, zp.materialize(wp), wp, prec, epsShift, minIndex, e.cfg.maxTerms)
}

// finish rounds an accepted attempt to the context precision.
func (e *Engine) finish(res attemptResult) (mp.Value, error) {
	if res.im != nil {
		return e.ctx.NewComplex(res.re, res.im), nil
	}

	return e.ctx.NewReal(res.re), nil
}

// classify converts and tags a parameter list.
func (e *Engine) classify(xs []any) ([]param, string, error) {
	ps := make([]param, len(xs))
	var tags strings.Builder
	for i, x := range xs {
		p, tag, err := e.classifyOne(x)
		if err != nil {
			return nil, "", err
		}
		ps[i] = p
		tags.WriteByte(tag)
	}

	return ps, tags.String(), nil
}

func (e *Engine) classifyOne(x any) (param, byte, error) {
	cp, err := e.ctx.ConvertMaybeRational(x)
	if err != nil {
		return param{}, 0, fmt.Errorf("hyper: parameter %v: %w", x, err)
	}

	switch cp.Tag {
	case 'Z', 'Q':
		return param{rat: cp.Rat}, cp.Tag, nil
	case 'C':
		z := cp.Val.(*mp.Complex)

		return param{
			z:   kernel.NewComplex(z.Re().Float(), z.Im().Float()),
			isC: true,
		}, 'C', nil
	default:
		r, ok := cp.Val.(*mp.Real)
		if !ok {
			return param{}, 0, fmt.Errorf("hyper: parameter of kind %s: %w", cp.Val.Kind(), mp.ErrUnsupportedOperand)
		}
		if r.IsNaN() || r.IsInf() {
			return param{}, 0, fmt.Errorf("hyper: nonfinite parameter %v: %w", x, kernel.ErrNonFinite)
		}

		return param{re: r.Float()}, 'R', nil
	}
}

// plan fetches or creates the cached plan for one series shape.
func (e *Engine) plan(key planKey) *plan {
	e.mu.Lock()
	defer e.mu.Unlock()

	if pl, ok := e.plans[key]; ok {
		return pl
	}
	pl := &plan{
		key:     key,
		complex: key.complexZ || strings.ContainsRune(key.flags, 'C'),
	}
	e.cfg.log.Debug("hyper: new summation plan",
		zap.Int("p", key.p), zap.Int("q", key.q), zap.String("flags", key.flags))
	e.plans[key] = pl

	return pl
}

// zeroArg reports whether the series argument is exactly zero.
func zeroArg(zp param) bool {
	if zp.isC {
		return zp.z.CIsZero()
	}
	if zp.rat != nil {
		return zp.rat.Sign() == 0
	}

	return zp.re.Sign() == 0
}

// checkPoles fails fast when a lower parameter pins a pole the series
// will reach: b a nonpositive integer with no upper nonpositive integer
// a ≥ b to terminate the series first.
func checkPoles(aps, bps []param) error {
	for _, b := range bps {
		if b.rat == nil || !b.rat.IsInt() || b.rat.Sign() > 0 {
			continue
		}
		saved := false
		for _, a := range aps {
			if a.rat != nil && a.rat.IsInt() && a.rat.Sign() <= 0 && a.rat.Cmp(b.rat) >= 0 {
				saved = true

				break
			}
		}
		if !saved {
			return fmt.Errorf("hyper: lower parameter %s: %w", b.rat.RatString(), ErrPole)
		}
	}

	return nil
}

// nearPoleScan inspects lower parameters that sit close to (but not
// exactly at) nonpositive integers. The term at index −n then spikes by
// about d bits, where 2^−d is the distance to the integer; the guard
// precision must absorb the spike and the loop must not stop before it.
//
// The distance is measured on the exact parameter value: rounding a
// rational like −3+2^−k to the working precision first would collapse
// it onto the integer and misread the distance as zero.
func nearPoleScan(bps []param, prec uint) (extra uint, minIndex int) {
	extra = DefaultExtraPrec
	for _, b := range bps {
		var (
			n   *big.Int
			d   int
			err error
		)
		switch {
		case b.rat != nil:
			if b.rat.IsInt() {
				continue
			}
			n, d = ratNintDistance(b.rat)
		case b.isC:
			n, d, err = kernel.NintDistance(b.z.Re)
			if err != nil {
				continue
			}
			if im := kernel.Mag(b.z.Im); im > d {
				d = im
			}
		default:
			n, d, err = kernel.NintDistance(b.re)
			if err != nil {
				continue
			}
		}
		if d == kernel.MagNegInf {
			continue
		}
		// Only nonpositive near-integers ahead of the series matter,
		// and only when the parameter is genuinely close (d > 4 bits).
		idx := int(-n.Int64())
		closeness := -d
		if !n.IsInt64() || idx < 0 || closeness <= 4 {
			continue
		}
		if idx+1 > minIndex {
			minIndex = idx + 1
		}
		if pad := closeness - int(prec) + 60; pad > 0 && uint(pad) > extra {
			extra = uint(pad)
		}
	}

	return extra, minIndex
}

// ratNintDistance is the nearest-integer distance of an exact rational:
// the nearest integer (halves away from zero) and the magnitude of the
// difference. A 32-bit rounding of the difference is plenty for a
// 1-bit-accurate magnitude.
func ratNintDistance(r *big.Rat) (*big.Int, int) {
	n, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if twice := new(big.Int).Lsh(new(big.Int).Abs(rem), 1); twice.Cmp(r.Denom()) >= 0 {
		if r.Sign() < 0 {
			n.Sub(n, big.NewInt(1))
		} else {
			n.Add(n, big.NewInt(1))
		}
	}
	diff := new(big.Rat).Sub(r, new(big.Rat).SetInt(n))
	if diff.Sign() == 0 {
		return n, kernel.MagNegInf
	}

	return n, kernel.Mag(kernel.FromRat(diff, 32, kernel.Nearest))
}

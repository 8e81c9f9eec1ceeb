// SPDX-License-Identifier: MIT
// Package hyper: the inner term loop of one summation attempt.

package hyper

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fangchenli/mpmath/kernel"
)

// errTermCeiling aborts an attempt that hit maxTerms; the engine reacts
// by widening the precision or giving up, depending on its ceiling.
var errTermCeiling = errors.New("hyper: term ceiling reached")

// attemptResult is what one summation attempt hands back to the
// escalation loop.
type attemptResult struct {
	// re and im hold the accumulated sum; im is nil for a real series.
	re, im *big.Float

	// maxMag is the magnitude of the largest term encountered, the
	// reference point for the cancellation estimate.
	maxMag int

	// terms counts the terms actually added.
	terms int
}

// mag returns the magnitude of the accumulated sum, taking the larger
// component for a complex result.
func (r attemptResult) mag() int {
	m := kernel.Mag(r.re)
	if r.im != nil {
		if im := kernel.Mag(r.im); im > m {
			m = im
		}
	}

	return m
}

// cancellation returns how many leading bits of the largest term were
// cancelled away in the final sum.
func (r attemptResult) cancellation() int {
	m := r.mag()
	if m == kernel.MagNegInf {
		// Total cancellation: every bit of the largest term vanished.
		return r.maxMag + int(r.re.Prec())
	}

	return r.maxMag - m
}

// sumReal runs the rising-factorial recurrence
//
//	t(k+1) = t(k) · Π(a_i+k) / Π(b_j+k) · z / (k+1)
//
// entirely in real arithmetic at wp bits, stopping once the terms fall
// prec+epsShift bits below both the running sum and the largest term,
// and never before index minIndex (which covers near-pole spikes the
// caller detected in advance).
func sumReal(as, bs []*big.Float, z *big.Float, wp, prec, epsShift uint, minIndex, maxTerms int) (attemptResult, error) {
	sum := new(big.Float).SetPrec(wp)
	t := new(big.Float).SetPrec(wp).SetInt64(1)
	kf := new(big.Float).SetPrec(wp)
	f := new(big.Float).SetPrec(wp)

	res := attemptResult{maxMag: kernel.MagNegInf}
	for k := 0; ; k++ {
		if t.Sign() == 0 {
			// A zero numerator factor terminated the series.
			break
		}
		sum.Add(sum, t)
		res.terms++

		tm := kernel.Mag(t)
		if tm > res.maxMag {
			res.maxMag = tm
		}
		if k > 0 && k >= minIndex && converged(tm, kernel.Mag(sum), res.maxMag, prec, epsShift) {
			break
		}
		if res.terms >= maxTerms {
			return attemptResult{}, errTermCeiling
		}

		kf.SetInt64(int64(k))
		for _, a := range as {
			f.Add(a, kf)
			t.Mul(t, f)
		}
		for _, b := range bs {
			f.Add(b, kf)
			if f.Sign() == 0 {
				return attemptResult{}, fmt.Errorf("hyper: lower parameter %v at term %d: %w", b, k, ErrPole)
			}
			t.Quo(t, f)
		}
		t.Mul(t, z)
		kf.SetInt64(int64(k + 1))
		t.Quo(t, kf)
	}

	res.re = sum

	return res, nil
}

// sumComplex is sumReal over complex terms.
func sumComplex(as, bs []kernel.Complex, z kernel.Complex, wp, prec, epsShift uint, minIndex, maxTerms int) (attemptResult, error) {
	sum := kernel.NewComplex(
		new(big.Float).SetPrec(wp),
		new(big.Float).SetPrec(wp),
	)
	t := kernel.FromReal(new(big.Float).SetPrec(wp).SetInt64(1))
	kf := new(big.Float).SetPrec(wp)

	res := attemptResult{maxMag: kernel.MagNegInf}
	for k := 0; ; k++ {
		if t.CIsZero() {
			break
		}
		var err error
		if sum, err = kernel.CAdd(sum, t, wp, kernel.Nearest); err != nil {
			return attemptResult{}, err
		}
		res.terms++

		tm := cMag(t)
		if tm > res.maxMag {
			res.maxMag = tm
		}
		if k > 0 && k >= minIndex && converged(tm, cMag(sum), res.maxMag, prec, epsShift) {
			break
		}
		if res.terms >= maxTerms {
			return attemptResult{}, errTermCeiling
		}

		kf.SetInt64(int64(k))
		for _, a := range as {
			f := kernel.Complex{
				Re: new(big.Float).SetPrec(wp).Add(a.Re, kf),
				Im: new(big.Float).SetPrec(wp).Set(a.Im),
			}
			if t, err = kernel.CMul(t, f, wp, kernel.Nearest); err != nil {
				return attemptResult{}, err
			}
		}
		for _, b := range bs {
			f := kernel.Complex{
				Re: new(big.Float).SetPrec(wp).Add(b.Re, kf),
				Im: new(big.Float).SetPrec(wp).Set(b.Im),
			}
			if f.CIsZero() {
				return attemptResult{}, fmt.Errorf("hyper: lower parameter at term %d: %w", k, ErrPole)
			}
			if t, err = kernel.CDiv(t, f, wp, kernel.Nearest); err != nil {
				return attemptResult{}, err
			}
		}
		if t, err = kernel.CMul(t, z, wp, kernel.Nearest); err != nil {
			return attemptResult{}, err
		}
		kf.SetInt64(int64(k + 1))
		t.Re = new(big.Float).SetPrec(wp).Quo(t.Re, kf)
		t.Im = new(big.Float).SetPrec(wp).Quo(t.Im, kf)
	}

	res.re, res.im = sum.Re, sum.Im

	return res, nil
}

// converged reports whether a term of magnitude termMag is negligible:
// prec+epsShift bits below both the running sum and the largest term
// seen, so neither the plain nor the cancelled part of the sum can
// still move.
func converged(termMag, sumMag, maxMag int, prec, epsShift uint) bool {
	cut := int(prec + epsShift)
	ref := maxMag
	if sumMag != kernel.MagNegInf && sumMag < maxMag {
		ref = sumMag
	}

	return termMag < ref-cut
}

// cMag bounds the magnitude of a complex kernel value.
func cMag(z kernel.Complex) int {
	m := kernel.Mag(z.Re)
	if im := kernel.Mag(z.Im); im > m {
		m = im
	}
	if m == kernel.MagNegInf || m == kernel.MagPosInf {
		return m
	}

	return m + 1
}

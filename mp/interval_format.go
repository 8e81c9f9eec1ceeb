// SPDX-License-Identifier: MIT
// Package mp: interval literal parsing and formatting.

package mp

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/fangchenli/mpmath/kernel"
)

// ParseInterval parses the interval literal forms:
//
//	"a +- b"       midpoint with absolute uncertainty
//	"a (b%)"       midpoint with relative uncertainty
//	"[a, b]"       explicit endpoints
//	"x[y,z]"       uncertain trailing digits, e.g. "3.14[15,36]"
//
// The digit-bracket form may carry a trailing exponent: "2.3[4,6]e-2".
// Endpoints round outward so the literal's exact value is contained.
func ParseInterval(c *Context, s string) (*Interval, error) {
	t := strings.TrimSpace(s)
	wp := c.prec + 16

	if mid, unc, ok := strings.Cut(t, "+-"); ok {
		return c.midpointInterval(mid, unc, false, wp)
	}
	if open := strings.Index(t, "("); open > 0 && strings.HasSuffix(t, "%)") {
		return c.midpointInterval(t[:open], t[open+1:len(t)-2], true, wp)
	}
	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		lo, hi, ok := strings.Cut(t[1:len(t)-1], ",")
		if !ok {
			return nil, fmt.Errorf("mp: interval %q: %w", s, ErrBadLiteral)
		}

		return c.endpointInterval(lo, hi, wp)
	}
	if open := strings.Index(t, "["); open > 0 {
		end := strings.Index(t, "]")
		if end < open {
			return nil, fmt.Errorf("mp: interval %q: %w", s, ErrBadLiteral)
		}
		lo, hi, ok := strings.Cut(t[open+1:end], ",")
		if !ok {
			return nil, fmt.Errorf("mp: interval %q: %w", s, ErrBadLiteral)
		}
		prefix, suffix := t[:open], t[end+1:]

		return c.endpointInterval(prefix+lo+suffix, prefix+hi+suffix, wp)
	}

	return nil, fmt.Errorf("mp: interval %q: %w", s, ErrBadLiteral)
}

// midpointInterval builds [mid−d, mid+d] where d is the uncertainty,
// taken relative to |mid| when percent is set.
func (c *Context) midpointInterval(midStr, uncStr string, percent bool, wp uint) (*Interval, error) {
	mid, err := kernel.FromString(strings.TrimSpace(midStr), wp, kernel.Nearest)
	if err != nil {
		return nil, fmt.Errorf("mp: interval midpoint %q: %w", midStr, ErrBadLiteral)
	}
	d, err := kernel.FromString(strings.TrimSpace(uncStr), wp, kernel.Nearest)
	if err != nil {
		return nil, fmt.Errorf("mp: interval uncertainty %q: %w", uncStr, ErrBadLiteral)
	}
	if percent {
		d.Mul(d, new(big.Float).SetPrec(wp).Abs(mid))
		d.Quo(d, big.NewFloat(100))
	} else {
		d.Abs(d)
	}

	a, err := kernel.Sub(mid, d, c.prec, kernel.Floor)
	if err != nil {
		return nil, err
	}
	b, err := kernel.Add(mid, d, c.prec, kernel.Ceiling)
	if err != nil {
		return nil, err
	}

	return &Interval{ctx: c, v: kernel.NewInterval(a, b)}, nil
}

// endpointInterval parses two endpoint literals with outward rounding.
func (c *Context) endpointInterval(loStr, hiStr string, wp uint) (*Interval, error) {
	lo, err := kernel.FromString(strings.TrimSpace(loStr), wp, kernel.Floor)
	if err != nil {
		return nil, fmt.Errorf("mp: interval endpoint %q: %w", loStr, ErrBadLiteral)
	}
	hi, err := kernel.FromString(strings.TrimSpace(hiStr), wp, kernel.Ceiling)
	if err != nil {
		return nil, fmt.Errorf("mp: interval endpoint %q: %w", hiStr, ErrBadLiteral)
	}
	if lo.Cmp(hi) > 0 {
		return nil, fmt.Errorf("mp: interval endpoints out of order: %w", ErrBadEndpoints)
	}

	return &Interval{ctx: c, v: kernel.IPos(kernel.NewInterval(lo, hi), c.prec)}, nil
}

// FormatInterval renders x in bracket form at dps decimal digits.
func FormatInterval(x *Interval, dps int) string {
	format := func(e *big.Float) string {
		if e.IsInf() {
			if e.Signbit() {
				return "-inf"
			}

			return "+inf"
		}

		return e.Text('g', dps)
	}

	return fmt.Sprintf("[%s, %s]", format(x.v.A), format(x.v.B))
}

// SPDX-License-Identifier: MIT
// Package mp: magnitude and nearest-integer queries.

package mp

import (
	"fmt"
	"math/big"

	"github.com/fangchenli/mpmath/kernel"
)

// Mag returns the binary magnitude of x: an integer e with |x| < 2^e,
// tight to within one for reals. Complexes report a bound on |z|;
// intervals report the bound of the wider endpoint. Zero maps to
// kernel.MagNegInf, infinities and NaN to kernel.MagPosInf.
func (c *Context) Mag(x any) (int, error) {
	v, err := c.operand(x)
	if err != nil {
		return 0, err
	}

	switch t := v.(type) {
	case *Real:
		return t.Mag(), nil
	case *Complex:
		re, im := kernel.Mag(t.v.Re), kernel.Mag(t.v.Im)
		m := re
		if im > m {
			m = im
		}
		if m == kernel.MagNegInf || m == kernel.MagPosInf {
			return m, nil
		}

		// |z| ≤ √2·max(|re|, |im|), so one extra bit covers it.
		return m + 1, nil
	case *Interval:
		a, b := kernel.Mag(t.v.A), kernel.Mag(t.v.B)
		if b > a {
			return b, nil
		}

		return a, nil
	default:
		return 0, fmt.Errorf("mp: mag of %s: %w", v.Kind(), ErrUnsupportedOperand)
	}
}

// NintDistance returns the integer nearest to x and the binary
// magnitude d of the distance to it, with |x−n| < 2^d. Exact integers
// report d = kernel.MagNegInf. For a complex argument the distance
// covers the imaginary part as well, so d stays a valid bound on the
// distance from z to the integer n on the real line. Nonfinite
// arguments yield kernel.ErrNonFinite.
func (c *Context) NintDistance(x any) (n *big.Int, d int, err error) {
	v, err := c.operand(x)
	if err != nil {
		return nil, 0, err
	}

	switch t := v.(type) {
	case *Real:
		if t.nan {
			return nil, 0, fmt.Errorf("mp: nint distance of nan: %w", kernel.ErrNonFinite)
		}

		return kernel.NintDistance(t.v)
	case *Complex:
		n, d, err = kernel.NintDistance(t.v.Re)
		if err != nil {
			return nil, 0, err
		}
		if im := kernel.Mag(t.v.Im); im > d {
			d = im
		}

		return n, d, nil
	default:
		return nil, 0, fmt.Errorf("mp: nint distance of %s: %w", v.Kind(), ErrUnsupportedOperand)
	}
}

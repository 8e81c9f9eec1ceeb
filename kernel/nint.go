package kernel

import (
	"math"
	"math/big"
)

// Magnitude sentinels for the zero and infinite cases of Mag.
const (
	// MagNegInf stands in for −inf: the magnitude of zero.
	MagNegInf = math.MinInt32

	// MagPosInf stands in for +inf: the magnitude of an infinity.
	MagPosInf = math.MaxInt32
)

// Mag returns the binary magnitude of x: the unique e with
// 2^(e−1) ≤ |x| < 2^e, so that |x| < 2^Mag(x) always holds. Zero maps to
// MagNegInf and infinities map to MagPosInf.
func Mag(x *big.Float) int {
	if x.IsInf() {
		return MagPosInf
	}
	if x.Sign() == 0 {
		return MagNegInf
	}

	return x.MantExp(nil)
}

// NintDistance returns the nearest integer n to x together with d, the
// binary magnitude of the distance |x−n|. An exact integer reports
// d = MagNegInf. Infinite inputs have no nearest integer and yield
// ErrNonFinite.
//
// d bounds the distance from above: |x−n| < 2^d. It is the quantity the
// summation engine inspects to detect near-pole parameter values.
func NintDistance(x *big.Float) (n *big.Int, d int, err error) {
	if x.IsInf() {
		return nil, 0, ErrNonFinite
	}

	// 1. Round half away from zero to the nearest integer.
	half := big.NewFloat(0.5)
	t := new(big.Float).SetPrec(x.Prec() + 2)
	if x.Sign() >= 0 {
		t.Add(x, half)
	} else {
		t.Sub(x, half)
	}
	n, _ = t.Int(nil)

	// 2. Measure the residual x − n.
	diff := new(big.Float).SetPrec(x.Prec() + 2).Sub(x, new(big.Float).SetInt(n))
	if diff.Sign() == 0 {
		return n, MagNegInf, nil
	}

	return n, Mag(diff), nil
}

package kernel_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fangchenli/mpmath/kernel"
)

// f64 converts a kernel value to float64 for coarse comparisons.
func f64(t *testing.T, x *big.Float) float64 {
	t.Helper()
	f, _ := x.Float64()

	return f
}

func TestDivDirectedRounding(t *testing.T) {
	one := kernel.FromInt64(1)
	three := kernel.FromInt64(3)

	lo, err := kernel.Div(one, three, 8, kernel.Floor)
	require.NoError(t, err)
	hi, err := kernel.Div(one, three, 8, kernel.Ceiling)
	require.NoError(t, err)

	// 1/3 is not representable in 8 bits, so the two directions must
	// bracket it strictly.
	require.Equal(t, -1, lo.Cmp(hi), "floor result must sit below ceiling result")

	exact := new(big.Float).SetPrec(64).Quo(one, three)
	require.True(t, lo.Cmp(exact) < 0 && hi.Cmp(exact) > 0,
		"directed endpoints must bracket the true quotient")
}

func TestDivByZero(t *testing.T) {
	_, err := kernel.Div(kernel.FromInt64(1), new(big.Float), 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrDivisionByZero)
}

func TestSqrtNegative(t *testing.T) {
	_, err := kernel.Sqrt(kernel.FromInt64(-4), 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrComplexResult)

	// The principal cube root of a negative real is complex too.
	_, err = kernel.Cbrt(kernel.FromInt64(-8), 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrComplexResult)
}

func TestPowIntEdges(t *testing.T) {
	zero := new(big.Float)

	r, err := kernel.PowInt(zero, 0, 53, kernel.Nearest)
	require.NoError(t, err)
	require.Equal(t, 0, r.Cmp(kernel.FromInt64(1)), "0**0 = 1")

	_, err = kernel.PowInt(zero, -2, 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrDivisionByZero)

	r, err = kernel.PowInt(kernel.FromInt64(2), 10, 53, kernel.Nearest)
	require.NoError(t, err)
	require.Equal(t, 0, r.Cmp(kernel.FromInt64(1024)))

	r, err = kernel.PowInt(kernel.FromInt64(-2), 3, 53, kernel.Nearest)
	require.NoError(t, err)
	require.Equal(t, 0, r.Cmp(kernel.FromInt64(-8)))

	r, err = kernel.PowInt(kernel.FromInt64(2), -1, 53, kernel.Nearest)
	require.NoError(t, err)
	require.InDelta(t, 0.5, f64(t, r), 0)
}

func TestPowMatchesSqrt(t *testing.T) {
	half, err := kernel.FromString("0.5", 53, kernel.Nearest)
	require.NoError(t, err)

	p, err := kernel.Pow(kernel.FromInt64(2), half, 100, kernel.Nearest)
	require.NoError(t, err)
	s, err := kernel.Sqrt(kernel.FromInt64(2), 100, kernel.Nearest)
	require.NoError(t, err)

	diff := new(big.Float).SetPrec(110).Sub(p, s)
	if diff.Sign() != 0 {
		require.Less(t, kernel.Mag(diff), -95, "2**0.5 must agree with sqrt(2) to working precision")
	}
}

func TestPowNegativeBase(t *testing.T) {
	half, err := kernel.FromString("0.5", 53, kernel.Nearest)
	require.NoError(t, err)
	_, err = kernel.Pow(kernel.FromInt64(-2), half, 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrComplexResult)
}

func TestModSignFollowsDivisor(t *testing.T) {
	cases := []struct {
		x, y, want int64
	}{
		{7, 3, 1},
		{-7, 3, 2},
		{7, -3, -2},
		{-7, -3, -1},
	}
	for _, tc := range cases {
		r, err := kernel.Mod(kernel.FromInt64(tc.x), kernel.FromInt64(tc.y), 53, kernel.Nearest)
		require.NoError(t, err)
		require.Equal(t, 0, r.Cmp(kernel.FromInt64(tc.want)),
			"%d mod %d: got %v, want %d", tc.x, tc.y, r, tc.want)
	}

	_, err := kernel.Mod(kernel.FromInt64(1), new(big.Float), 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrDivisionByZero)
}

func TestFloorCeil(t *testing.T) {
	x, err := kernel.FromString("-2.5", 53, kernel.Nearest)
	require.NoError(t, err)

	require.InDelta(t, -3, f64(t, kernel.FloorF(x, 53, kernel.Nearest)), 0)
	require.InDelta(t, -2, f64(t, kernel.CeilF(x, 53, kernel.Nearest)), 0)
	require.Equal(t, int64(-3), kernel.FloorInt(x).Int64())
	require.Equal(t, int64(-2), kernel.CeilInt(x).Int64())
	require.InDelta(t, -2, f64(t, kernel.Trunc(x, 53, kernel.Nearest)), 0)
}

func TestFromStringBadLiteral(t *testing.T) {
	_, err := kernel.FromString("zebra", 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrBadLiteral)

	x, err := kernel.FromString("1.25e3", 53, kernel.Nearest)
	require.NoError(t, err)
	require.InDelta(t, 1250, f64(t, x), 0)
}

func TestFromFloat64NaN(t *testing.T) {
	_, err := kernel.FromFloat64(nan64())
	require.ErrorIs(t, err, kernel.ErrNaN)
}

func nan64() float64 {
	z := 0.0

	return z / z
}

func TestHashIgnoresStoragePrecision(t *testing.T) {
	a := new(big.Float).SetPrec(53).SetFloat64(0.5)
	b := new(big.Float).SetPrec(500).SetFloat64(0.5)
	require.Equal(t, kernel.Hash(a), kernel.Hash(b),
		"equal values must hash alike regardless of allocated precision")

	c := new(big.Float).SetPrec(53).SetFloat64(0.25)
	require.NotEqual(t, kernel.Hash(a), kernel.Hash(c))
}

func TestInfArithmetic(t *testing.T) {
	inf := kernel.Inf(1)

	r, err := kernel.Add(inf, kernel.FromInt64(5), 53, kernel.Nearest)
	require.NoError(t, err)
	require.True(t, r.IsInf())

	// inf − inf has no value.
	_, err = kernel.Sub(inf, inf, 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrNaN)

	// 0 · inf has no value.
	_, err = kernel.Mul(new(big.Float), inf, 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrNaN)
}

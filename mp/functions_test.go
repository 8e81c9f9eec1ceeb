package mp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fangchenli/mpmath/mp"
)

func TestSqrtPromotes(t *testing.T) {
	ctx := mp.NewContext()

	v, err := ctx.Sqrt(-1)
	require.NoError(t, err)
	require.Equal(t, mp.KindComplex, v.Kind())
	z := v.(*mp.Complex)
	require.Zero(t, z.Re().Sign())
	require.InDelta(t, 1, z.Im().Float64(), 0)
}

func TestSqrtTrapped(t *testing.T) {
	ctx := mp.NewContext(mp.WithTrapComplex())
	_, err := ctx.Sqrt(-1)
	require.ErrorIs(t, err, mp.ErrDomain)

	// Positive arguments are unaffected by the trap.
	v, err := ctx.Sqrt(4)
	require.NoError(t, err)
	require.InDelta(t, 2, v.(*mp.Real).Float64(), 1e-15)
}

func TestLogBranches(t *testing.T) {
	ctx := mp.NewContext()

	// log of a negative real lands on the principal branch: log|x| + iπ.
	v, err := ctx.Log(-1)
	require.NoError(t, err)
	require.Equal(t, mp.KindComplex, v.Kind())
	z := v.(*mp.Complex)
	require.InDelta(t, 0, z.Re().Float64(), 1e-15)
	require.InDelta(t, math.Pi, z.Im().Float64(), 1e-14)

	v, err = ctx.Log(0)
	require.NoError(t, err)
	r := v.(*mp.Real)
	require.True(t, r.IsInf())
	require.Equal(t, -1, r.Sign())
}

func TestElementaryAgainstFloat64(t *testing.T) {
	ctx := mp.NewContext()

	checks := []struct {
		name string
		fn   func(any, ...mp.OpOption) (mp.Value, error)
		arg  float64
		want float64
	}{
		{"exp", ctx.Exp, 1, math.E},
		{"log", ctx.Log, 10, math.Log(10)},
		{"sin", ctx.Sin, 1.2, math.Sin(1.2)},
		{"cos", ctx.Cos, -0.7, math.Cos(-0.7)},
		{"tan", ctx.Tan, 0.4, math.Tan(0.4)},
		{"atan", ctx.Atan, 3, math.Atan(3)},
		{"sinh", ctx.Sinh, 1.5, math.Sinh(1.5)},
		{"cosh", ctx.Cosh, 1.5, math.Cosh(1.5)},
		{"tanh", ctx.Tanh, 0.8, math.Tanh(0.8)},
		{"cbrt", ctx.Cbrt, 27, 3},
	}
	for _, c := range checks {
		v, err := c.fn(c.arg)
		require.NoError(t, err, c.name)
		require.InDelta(t, c.want, v.(*mp.Real).Float64(), 1e-13*math.Max(1, math.Abs(c.want)), c.name)
	}
}

func TestCbrtNegativePromotes(t *testing.T) {
	ctx := mp.NewContext()

	// The principal branch: (−27)^(1/3) = 1.5 + (3√3/2)i.
	v, err := ctx.Cbrt(-27)
	require.NoError(t, err)
	require.Equal(t, mp.KindComplex, v.Kind())
	z := v.(*mp.Complex)
	require.InDelta(t, 1.5, z.Re().Float64(), 1e-13)
	require.InDelta(t, 3*math.Sqrt(3)/2, z.Im().Float64(), 1e-13)
}

func TestComplexSin(t *testing.T) {
	ctx := mp.NewContext()

	// sin(i) = i·sinh(1).
	v, err := ctx.Sin(ctx.I())
	require.NoError(t, err)
	z := v.(*mp.Complex)
	require.InDelta(t, 0, z.Re().Float64(), 1e-15)
	require.InDelta(t, math.Sinh(1), z.Im().Float64(), 1e-14)
}

func TestConstantsMaterializeLazily(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(53))
	pi := ctx.Pi()

	coarse := pi.Value()
	ctx.SetPrec(300)
	fine := pi.Value()

	// The same constant yields more digits after the precision raise.
	eq, err := ctx.Equal(coarse, fine)
	require.NoError(t, err)
	require.False(t, eq)

	diff, err := ctx.Sub(fine, coarse)
	require.NoError(t, err)
	m, err := ctx.Mag(diff)
	require.NoError(t, err)
	require.Less(t, m, -45, "53-bit pi agrees with 300-bit pi to ~53 bits")
}

func TestEpsTracksPrecision(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(10))
	eps := ctx.Eps()
	require.InDelta(t, math.Pow(2, -9), eps.Value().Float64(), 0)

	ctx.SetPrec(20)
	require.InDelta(t, math.Pow(2, -19), eps.Value().Float64(), 0)
}

func TestLdexpFrexp(t *testing.T) {
	ctx := mp.NewContext()

	v, err := ctx.Ldexp(3, 4)
	require.NoError(t, err)
	require.InDelta(t, 48, v.(*mp.Real).Float64(), 0)

	m, e, err := ctx.Frexp(48)
	require.NoError(t, err)
	require.InDelta(t, 0.75, m.Float64(), 0)
	require.Equal(t, 6, e)
}

func TestAtan2Hypot(t *testing.T) {
	ctx := mp.NewContext()

	v, err := ctx.Atan2(1, -1)
	require.NoError(t, err)
	require.InDelta(t, 3*math.Pi/4, v.(*mp.Real).Float64(), 1e-14)

	v, err = ctx.Hypot(5, 12)
	require.NoError(t, err)
	require.InDelta(t, 13, v.(*mp.Real).Float64(), 1e-14)
}

func TestFloorCeilValues(t *testing.T) {
	ctx := mp.NewContext()

	v, err := ctx.Floor(-2.5)
	require.NoError(t, err)
	require.InDelta(t, -3, v.(*mp.Real).Float64(), 0)

	v, err = ctx.Ceil(-2.5)
	require.NoError(t, err)
	require.InDelta(t, -2, v.(*mp.Real).Float64(), 0)
}

func TestNintDistanceOnContext(t *testing.T) {
	ctx := mp.NewContext()

	n, d, err := ctx.NintDistance(5)
	require.NoError(t, err)
	require.Equal(t, int64(5), n.Int64())
	require.Less(t, d, -1000000, "exact integers report an effectively infinite closeness")

	// Complex arguments fold the imaginary part into the distance.
	n, d, err = ctx.NintDistance(complex(3, 0.25))
	require.NoError(t, err)
	require.Equal(t, int64(3), n.Int64())
	require.Equal(t, -1, d)
}

package mp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fangchenli/mpmath/mp"
)

func TestParseIntervalForms(t *testing.T) {
	ctx := mp.NewContext()

	cases := []struct {
		in       string
		contains float64
		excludes float64
	}{
		{"[1, 2]", 1.5, 3},
		{"1.5 +- 0.25", 1.6, 2},
		{"100 (1%)", 100.5, 102},
		{"3.14[15,36]", 3.1416, 3.15},
		{"2.3[4,6]e-2", 0.0235, 0.03},
	}
	for _, tc := range cases {
		iv, err := mp.ParseInterval(ctx, tc.in)
		require.NoError(t, err, "ParseInterval(%q)", tc.in)

		ok, err := iv.Contains(tc.contains)
		require.NoError(t, err)
		require.True(t, ok, "%q must contain %v", tc.in, tc.contains)

		ok, err = iv.Contains(tc.excludes)
		require.NoError(t, err)
		require.False(t, ok, "%q must not contain %v", tc.in, tc.excludes)
	}
}

func TestParseIntervalRejects(t *testing.T) {
	ctx := mp.NewContext()
	for _, in := range []string{"[1]", "zebra", "[a, b]", "1 +- "} {
		_, err := mp.ParseInterval(ctx, in)
		require.ErrorIs(t, err, mp.ErrBadLiteral, "input %q", in)
	}
}

func TestIntervalEndpointRules(t *testing.T) {
	ctx := mp.NewContext()

	// Out-of-order endpoints are rejected.
	_, err := ctx.NewInterval(5, 2)
	require.ErrorIs(t, err, mp.ErrBadEndpoints)

	// So is a bracket literal with inverted endpoints.
	_, err = mp.ParseInterval(ctx, "[5, 1]")
	require.ErrorIs(t, err, mp.ErrBadEndpoints)

	// A NaN endpoint widens to the whole line.
	iv, err := ctx.NewInterval(ctx.NaN(), 2)
	require.NoError(t, err)
	require.True(t, iv.A().IsInf())
	require.True(t, iv.B().IsInf())

	// Complex endpoints are rejected.
	_, err = ctx.NewInterval(complex(1, 1), 2)
	require.ErrorIs(t, err, mp.ErrBadEndpoints)
}

func TestIntervalMidDeltaContains(t *testing.T) {
	ctx := mp.NewContext()

	iv, err := ctx.NewInterval(1, 3)
	require.NoError(t, err)

	mid, err := iv.Mid()
	require.NoError(t, err)
	require.InDelta(t, 2, mid.Float64(), 0)

	delta, err := iv.Delta()
	require.NoError(t, err)
	require.InDelta(t, 2, delta.Float64(), 0)

	sub, err := ctx.NewInterval(1.5, 2.5)
	require.NoError(t, err)
	ok, err := iv.Contains(sub)
	require.NoError(t, err)
	require.True(t, ok)

	wider, err := ctx.NewInterval(0, 4)
	require.NoError(t, err)
	ok, err = iv.Contains(wider)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIntervalArithmeticContainment(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(30))

	a, err := mp.ParseInterval(ctx, "1 +- 0.1")
	require.NoError(t, err)
	b, err := mp.ParseInterval(ctx, "2 +- 0.1")
	require.NoError(t, err)

	// (1±0.1)·(2±0.1) must contain every product of contained points.
	p, err := ctx.Mul(a, b)
	require.NoError(t, err)
	for _, xy := range [][2]float64{{0.9, 1.9}, {1.1, 2.1}, {1.0, 2.0}} {
		ok, err := p.(*mp.Interval).Contains(xy[0] * xy[1])
		require.NoError(t, err)
		require.True(t, ok, "product interval must contain %v·%v", xy[0], xy[1])
	}
}

func TestIntervalFormatRoundTrip(t *testing.T) {
	ctx := mp.NewContext()

	iv, err := ctx.NewInterval(1, 2)
	require.NoError(t, err)
	s := iv.String()

	back, err := mp.ParseInterval(ctx, s)
	require.NoError(t, err)
	ok, err := back.Contains(1.5)
	require.NoError(t, err)
	require.True(t, ok)
}

package hyper_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/fangchenli/mpmath/hyper"
	"github.com/fangchenli/mpmath/mp"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// realOf unwraps a Value expected to be real.
func realOf(t *testing.T, v mp.Value) *mp.Real {
	t.Helper()
	r, ok := v.(*mp.Real)
	require.True(t, ok, "expected a real result, got %s", v.Kind())

	return r
}

func TestZeroArgumentIsOne(t *testing.T) {
	e := hyper.New(mp.NewContext())
	v, err := e.Hyp1F1(3, 5, 0)
	require.NoError(t, err)
	require.InDelta(t, 1, realOf(t, v).Float64(), 0)
}

func TestExpAsHypergeometric(t *testing.T) {
	ctx := mp.NewContext()
	e := hyper.New(ctx)

	// ₀F₀(;; z) = e^z.
	v, err := e.Hyper(nil, nil, 1)
	require.NoError(t, err)
	require.InDelta(t, math.E, realOf(t, v).Float64(), 1e-14)

	// ₁F₁(1; 1; z) = e^z as well, exercising the parameter recurrence.
	v, err = e.Hyp1F1(1, 1, 2.5)
	require.NoError(t, err)
	require.InDelta(t, math.Exp(2.5), realOf(t, v).Float64(), 1e-12)
}

func TestBinomialSumIdentity(t *testing.T) {
	// Σ_k C(n,k) = 2^n, summed as the terminating series ₁F₀(−n;; −1):
	// C(n,k) = (−1)^k·(−n)_k / k!.
	e := hyper.New(mp.NewContext())
	for _, n := range []int{1, 5, 10, 30} {
		v, err := e.Hyp1F0(-n, -1)
		require.NoError(t, err)
		require.InDelta(t, math.Pow(2, float64(n)), realOf(t, v).Float64(), 1e-9*math.Pow(2, float64(n)), "n=%d", n)
	}
}

func TestTerminating2F1(t *testing.T) {
	// ₂F₁(−3, 1; −5; 1) terminates at k=3 before the denominator pole
	// at k=5 and sums to exactly 2.
	e := hyper.New(mp.NewContext())
	v, err := e.Hyp2F1(-3, 1, -5, 1)
	require.NoError(t, err)
	require.InDelta(t, 2, realOf(t, v).Float64(), 1e-13)
}

func TestPoleFailsFast(t *testing.T) {
	e := hyper.New(mp.NewContext())

	// b = −2 is a pole the series reaches: no escalation, just an error.
	_, err := e.Hyp1F1(1, -2, 0.5)
	require.ErrorIs(t, err, hyper.ErrPole)

	// An upper nonpositive integer below the lower one does not save it.
	_, err = e.Hyp2F1(-7, 1, -5, 0.5)
	require.ErrorIs(t, err, hyper.ErrPole)
}

func TestCancellationEscalates(t *testing.T) {
	ctx := mp.NewContext()
	e := hyper.New(ctx)

	// e^−30: the largest term is ~2^41 while the sum is ~2^−44, so the
	// first pass at 50 guard bits cannot be accurate and the engine
	// must escalate — and still deliver full relative accuracy.
	v, err := e.Hyper(nil, nil, -30)
	require.NoError(t, err)

	want, err := ctx.Exp(-30, mp.OpPrec(120))
	require.NoError(t, err)
	diff, err := ctx.Sub(v, want, mp.OpPrec(120))
	require.NoError(t, err)
	m, err := ctx.Mag(diff)
	require.NoError(t, err)
	wantMag, err := ctx.Mag(want)
	require.NoError(t, err)
	require.Less(t, m, wantMag-45, "escalation must restore relative accuracy")
}

func TestZeroPrecSnapsToZero(t *testing.T) {
	ctx := mp.NewContext()
	e := hyper.New(ctx, hyper.WithZeroPrec(20))

	// e^−30 ≈ 2^−43 is below the 2^−20 floor: the first heavily
	// cancelled pass already proves the sum zero to 20 bits and the
	// engine snaps instead of escalating.
	v, err := e.Hyper(nil, nil, -30)
	require.NoError(t, err)
	require.True(t, realOf(t, v).IsZero())

	// A floor far below the true magnitude must not destroy the value:
	// with zeroPrec 100 the same sum escalates to full accuracy instead.
	keep := hyper.New(ctx, hyper.WithZeroPrec(100))
	v, err = keep.Hyper(nil, nil, -30)
	require.NoError(t, err)
	require.False(t, realOf(t, v).IsZero())
	require.InDelta(t, math.Exp(-30), realOf(t, v).Float64(), 1e-27)
}

func TestZeroPrecKeepsComplexVariant(t *testing.T) {
	ctx := mp.NewContext()
	e := hyper.New(ctx, hyper.WithZeroPrec(20))

	// e^(−30+εi) is complex and below the floor on both components; the
	// snapped zero must stay complex.
	z := ctx.NewComplex(big.NewFloat(-30), big.NewFloat(1e-12))
	v, err := e.Hyper(nil, nil, z)
	require.NoError(t, err)
	require.Equal(t, mp.KindComplex, v.Kind())
	require.True(t, v.(*mp.Complex).IsZero())
}

func TestNoConvergence(t *testing.T) {
	e := hyper.New(mp.NewContext(), hyper.WithMaxTerms(500))

	// ₂F₁ diverges for |z| > 1: every escalation hits the term ceiling
	// until the precision ceiling ends the loop.
	_, err := e.Hyp2F1(1, 1, 2, 2)
	var nc *hyper.NoConvergenceError
	require.ErrorAs(t, err, &nc)
	require.Equal(t, mp.DefaultPrec, nc.Requested)
	require.Greater(t, nc.Attempted, nc.Requested)
}

func TestNearPoleParameter(t *testing.T) {
	ctx := mp.NewContext()
	e := hyper.New(ctx)

	// b sits 2^−30 away from −3: the k=4 term spikes by ~30 bits. The
	// scan must widen the guard in advance so the 53-bit result agrees
	// with a 150-bit evaluation.
	tiny, err := ctx.Ldexp(1, -30)
	require.NoError(t, err)
	b, err := ctx.Add(-3, tiny)
	require.NoError(t, err)

	coarse, err := e.Hyp1F1(1, b, 1)
	require.NoError(t, err)

	var fine mp.Value
	err = ctx.ExtraPrec(100).Run(func(c *mp.Context) error {
		fine, err = hyper.New(c).Hyp1F1(1, b, 1)

		return err
	})
	require.NoError(t, err)

	diff, err := ctx.Sub(coarse, fine, mp.OpPrec(200))
	require.NoError(t, err)
	m, err := ctx.Mag(diff)
	require.NoError(t, err)
	cm, err := ctx.Mag(coarse)
	require.NoError(t, err)
	require.Less(t, m, cm-40, "near-pole guard must keep the coarse result accurate")
}

func TestNearPoleExactRational(t *testing.T) {
	ctx := mp.NewContext()
	e := hyper.New(ctx)

	// b = −3 + 2^−200 is an exact rational far closer to the pole than
	// the context precision can express: rounding it first would read a
	// distance of zero. The scan must measure the exact distance, widen
	// the guard once and return promptly.
	den := new(big.Int).Lsh(big.NewInt(1), 200)
	num := new(big.Int).Mul(big.NewInt(-3), den)
	num.Add(num, big.NewInt(1))

	v, err := e.Hyp1F1(1, new(big.Rat).SetFrac(num, den), 1)
	require.NoError(t, err)
	m, err := ctx.Mag(v)
	require.NoError(t, err)
	require.Greater(t, m, 100, "the near-pole term spike must dominate the sum")

	// At distance 2^−2000 the required guard exceeds the precision
	// ceiling; the engine must fail fast, before the first attempt.
	den = new(big.Int).Lsh(big.NewInt(1), 2000)
	num = new(big.Int).Mul(big.NewInt(-3), den)
	num.Add(num, big.NewInt(1))

	_, err = e.Hyp1F1(1, new(big.Rat).SetFrac(num, den), 1)
	var nc *hyper.NoConvergenceError
	require.ErrorAs(t, err, &nc)
}

func TestMarginOption(t *testing.T) {
	ctx := mp.NewContext()

	// A loose margin still converges on the cancellation-heavy e^−30.
	loose := hyper.New(ctx, hyper.WithMargin(0))
	v, err := loose.Hyper(nil, nil, -30)
	require.NoError(t, err)
	require.False(t, realOf(t, v).IsZero())

	// An unsatisfiable margin walks the escalation to its ceiling.
	strict := hyper.New(ctx, hyper.WithMargin(1<<20))
	_, err = strict.Hyper(nil, nil, -30)
	var nc *hyper.NoConvergenceError
	require.ErrorAs(t, err, &nc)
}

func TestComplexArgument(t *testing.T) {
	ctx := mp.NewContext()
	e := hyper.New(ctx)

	// ₀F₀(;; iπ) = e^{iπ} = −1.
	z, err := ctx.Mul(ctx.Pi(), complex(0, 1))
	require.NoError(t, err)
	v, err := e.Hyper(nil, nil, z)
	require.NoError(t, err)
	require.Equal(t, mp.KindComplex, v.Kind())
	c := v.(*mp.Complex)
	require.InDelta(t, -1, c.Re().Float64(), 1e-14)
	require.InDelta(t, 0, c.Im().Float64(), 1e-14)
}

func TestRationalParametersStayExact(t *testing.T) {
	ctx := mp.NewContext()
	e := hyper.New(ctx)

	// "1/3" arrives as an exact rational; the engine re-renders it at
	// every working precision instead of freezing a 53-bit rounding.
	coarse, err := e.Hyp1F1("1/3", "4/3", -25)
	require.NoError(t, err)

	var fine mp.Value
	err = ctx.ExtraPrec(150).Run(func(c *mp.Context) error {
		fine, err = hyper.New(c).Hyp1F1("1/3", "4/3", -25)

		return err
	})
	require.NoError(t, err)

	diff, err := ctx.Sub(coarse, fine, mp.OpPrec(250))
	require.NoError(t, err)
	m, err := ctx.Mag(diff)
	require.NoError(t, err)
	cm, err := ctx.Mag(coarse)
	require.NoError(t, err)
	require.Less(t, m, cm-40)
}

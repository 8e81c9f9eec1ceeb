package kernel_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fangchenli/mpmath/kernel"
)

func iv(t *testing.T, a, b int64) kernel.Interval {
	t.Helper()

	return kernel.NewInterval(kernel.FromInt64(a), kernel.FromInt64(b))
}

func TestNewIntervalNilEndpoints(t *testing.T) {
	x := kernel.NewInterval(nil, kernel.FromInt64(2))
	require.Equal(t, 0, x.A.Sign(), "nil endpoint reads as zero")
	require.Equal(t, 0, x.B.Cmp(kernel.FromInt64(2)))
}

func TestIAddContainment(t *testing.T) {
	x, y := iv(t, 1, 2), iv(t, 3, 4)
	s, err := kernel.IAdd(x, y, 53)
	require.NoError(t, err)
	require.True(t, s.Contains(kernel.FromInt64(5)))
	require.False(t, s.Contains(kernel.FromInt64(7)))
}

func TestIMulSignCases(t *testing.T) {
	x, y := iv(t, -2, 3), iv(t, -1, 4)
	p, err := kernel.IMul(x, y, 53)
	require.NoError(t, err)
	require.Equal(t, 0, p.A.Cmp(kernel.FromInt64(-8)))
	require.Equal(t, 0, p.B.Cmp(kernel.FromInt64(12)))
}

func TestIDivByZeroForms(t *testing.T) {
	x := iv(t, 1, 2)

	_, err := kernel.IDiv(x, kernel.PointInterval(new(big.Float)), 53)
	require.ErrorIs(t, err, kernel.ErrDivisionByZero)

	// A divisor straddling zero has an unbounded quotient set.
	q, err := kernel.IDiv(x, iv(t, -1, 1), 53)
	require.NoError(t, err)
	require.True(t, q.A.IsInf() && q.B.IsInf())
	require.True(t, q.Contains(kernel.FromInt64(1000000)))
}

func TestIDivExact(t *testing.T) {
	q, err := kernel.IDiv(iv(t, 4, 8), iv(t, 2, 4), 53)
	require.NoError(t, err)
	require.Equal(t, 0, q.A.Cmp(kernel.FromInt64(1)))
	require.Equal(t, 0, q.B.Cmp(kernel.FromInt64(4)))
}

func TestOutwardRoundingBracketsTrueValue(t *testing.T) {
	// 1/3 cannot be represented; the interval quotient must bracket it.
	q, err := kernel.IDiv(kernel.PointInterval(kernel.FromInt64(1)), kernel.PointInterval(kernel.FromInt64(3)), 16)
	require.NoError(t, err)

	exact := new(big.Float).SetPrec(200).Quo(kernel.FromInt64(1), kernel.FromInt64(3))
	require.True(t, q.Contains(exact))
	require.False(t, q.IsPoint())
}

func TestIAbs(t *testing.T) {
	a := kernel.IAbs(iv(t, -2, 3), 53)
	require.Equal(t, 0, a.A.Sign())
	require.Equal(t, 0, a.B.Cmp(kernel.FromInt64(3)))

	a = kernel.IAbs(iv(t, -5, -2), 53)
	require.Equal(t, 0, a.A.Cmp(kernel.FromInt64(2)))
	require.Equal(t, 0, a.B.Cmp(kernel.FromInt64(5)))
}

func TestIPowIntEvenSpansZero(t *testing.T) {
	p, err := kernel.IPowInt(iv(t, -2, 3), 2, 53)
	require.NoError(t, err)
	require.Equal(t, 0, p.A.Sign(), "even power of a zero-spanning interval bottoms out at 0")
	require.Equal(t, 0, p.B.Cmp(kernel.FromInt64(9)))
}

func TestISqrtContainment(t *testing.T) {
	s, err := kernel.ISqrt(kernel.PointInterval(kernel.FromInt64(2)), 53)
	require.NoError(t, err)

	root := new(big.Float).SetPrec(200).Sqrt(kernel.FromInt64(2))
	require.True(t, s.Contains(root))

	_, err = kernel.ISqrt(iv(t, -1, 4), 53)
	require.ErrorIs(t, err, kernel.ErrComplexResult)
}

func TestIExpLogRoundTrip(t *testing.T) {
	x := kernel.PointInterval(kernel.FromInt64(1))
	e, err := kernel.IExp(x, 53)
	require.NoError(t, err)
	back, err := kernel.ILog(e, 53)
	require.NoError(t, err)
	require.True(t, back.Contains(kernel.FromInt64(1)),
		"log(exp([1,1])) must contain 1 after outward rounding")
}

func TestILogDomain(t *testing.T) {
	_, err := kernel.ILog(iv(t, -1, 2), 53)
	require.ErrorIs(t, err, kernel.ErrComplexResult)

	// log of an interval touching zero opens downward to −inf.
	l, err := kernel.ILog(kernel.NewInterval(new(big.Float), kernel.FromInt64(2)), 53)
	require.NoError(t, err)
	require.True(t, l.A.IsInf() && l.A.Signbit())
}

func TestIPowPositiveBase(t *testing.T) {
	half, err := kernel.FromString("0.5", 53, kernel.Nearest)
	require.NoError(t, err)

	p, err := kernel.IPow(kernel.PointInterval(kernel.FromInt64(4)), kernel.PointInterval(half), 53)
	require.NoError(t, err)
	require.True(t, p.Contains(kernel.FromInt64(2)), "4**0.5 interval must contain 2")
}

func TestIMidDelta(t *testing.T) {
	x := iv(t, 1, 3)
	m, err := kernel.IMid(x, 53)
	require.NoError(t, err)
	require.Equal(t, 0, m.Cmp(kernel.FromInt64(2)))

	d, err := kernel.IDelta(x, 53)
	require.NoError(t, err)
	require.Equal(t, 0, d.Cmp(kernel.FromInt64(2)))
}

package kernel_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fangchenli/mpmath/kernel"
)

func reim(t *testing.T, z kernel.Complex) (float64, float64) {
	t.Helper()
	re, _ := z.Re.Float64()
	im, _ := z.Im.Float64()

	return re, im
}

func TestCSqrtNegativeReal(t *testing.T) {
	z := kernel.FromReal(kernel.FromInt64(-1))
	r, err := kernel.CSqrt(z, 53, kernel.Nearest)
	require.NoError(t, err)

	re, im := reim(t, r)
	require.Zero(t, re)
	require.InDelta(t, 1, im, 0, "sqrt(-1) = i exactly")
}

func TestCMulImaginaryUnit(t *testing.T) {
	i := kernel.NewComplex(nil, kernel.FromInt64(1))
	r, err := kernel.CMul(i, i, 53, kernel.Nearest)
	require.NoError(t, err)

	re, im := reim(t, r)
	require.InDelta(t, -1, re, 0)
	require.Zero(t, im)
}

func TestCDiv(t *testing.T) {
	z := kernel.NewComplex(kernel.FromInt64(1), kernel.FromInt64(2))

	r, err := kernel.CDiv(z, z, 53, kernel.Nearest)
	require.NoError(t, err)
	re, im := reim(t, r)
	require.InDelta(t, 1, re, 1e-15)
	require.InDelta(t, 0, im, 1e-15)

	_, err = kernel.CDiv(z, kernel.Complex{Re: new(big.Float), Im: new(big.Float)}, 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrDivisionByZero)
}

func TestCExpEulerIdentity(t *testing.T) {
	const prec = 100
	z := kernel.NewComplex(nil, kernel.Pi(prec+10, kernel.Nearest))
	r, err := kernel.CExp(z, prec, kernel.Nearest)
	require.NoError(t, err)

	one := kernel.FromInt64(1)
	reDiff := new(big.Float).SetPrec(prec + 10).Add(r.Re, one)
	if reDiff.Sign() != 0 {
		require.Less(t, kernel.Mag(reDiff), -90, "Re(e^{iπ}) must be −1 to working precision")
	}
	if r.Im.Sign() != 0 {
		require.Less(t, kernel.Mag(r.Im), -90, "Im(e^{iπ}) must vanish to working precision")
	}
}

func TestCLogImaginaryUnit(t *testing.T) {
	const prec = 100
	i := kernel.NewComplex(nil, kernel.FromInt64(1))
	r, err := kernel.CLog(i, prec, kernel.Nearest)
	require.NoError(t, err)

	require.Zero(t, r.Re.Sign(), "log(i) is purely imaginary")

	// Im must be π/2.
	half := kernel.Pi(prec+10, kernel.Nearest)
	half.SetMantExp(half, half.MantExp(nil)-1)
	diff := new(big.Float).SetPrec(prec + 10).Sub(r.Im, half)
	if diff.Sign() != 0 {
		require.Less(t, kernel.Mag(diff), -90)
	}
}

func TestCLogZero(t *testing.T) {
	_, err := kernel.CLog(kernel.Complex{Re: new(big.Float), Im: new(big.Float)}, 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrDivisionByZero)
}

func TestCPowInt(t *testing.T) {
	z := kernel.NewComplex(kernel.FromInt64(1), kernel.FromInt64(1))

	// (1+i)² = 2i.
	r, err := kernel.CPowInt(z, 2, 53, kernel.Nearest)
	require.NoError(t, err)
	re, im := reim(t, r)
	require.InDelta(t, 0, re, 1e-15)
	require.InDelta(t, 2, im, 1e-15)

	// (1+i)⁻² = −i/2.
	r, err = kernel.CPowInt(z, -2, 53, kernel.Nearest)
	require.NoError(t, err)
	re, im = reim(t, r)
	require.InDelta(t, 0, re, 1e-15)
	require.InDelta(t, -0.5, im, 1e-15)

	// 0⁰ = 1, 0⁻¹ fails.
	zero := kernel.Complex{Re: new(big.Float), Im: new(big.Float)}
	r, err = kernel.CPowInt(zero, 0, 53, kernel.Nearest)
	require.NoError(t, err)
	require.True(t, kernel.CEq(r, kernel.FromReal(kernel.FromInt64(1))))

	_, err = kernel.CPowInt(zero, -1, 53, kernel.Nearest)
	require.ErrorIs(t, err, kernel.ErrDivisionByZero)
}

func TestCPowGeneral(t *testing.T) {
	// i**i = e^{−π/2}, a real number.
	i := kernel.NewComplex(nil, kernel.FromInt64(1))
	r, err := kernel.CPow(i, i, 100, kernel.Nearest)
	require.NoError(t, err)

	re, im := reim(t, r)
	require.InDelta(t, 0.20787957635076191, re, 1e-15)
	require.InDelta(t, 0, im, 1e-15)
}

func TestCAbs(t *testing.T) {
	z := kernel.NewComplex(kernel.FromInt64(3), kernel.FromInt64(-4))
	r, err := kernel.CAbs(z, 53, kernel.Nearest)
	require.NoError(t, err)
	f, _ := r.Float64()
	require.InDelta(t, 5, f, 1e-15)
}

func TestCHashRealCoincidence(t *testing.T) {
	x := kernel.FromInt64(7)
	require.Equal(t, kernel.Hash(x), kernel.CHash(kernel.FromReal(x)),
		"a complex with zero imaginary part hashes like the real it equals")
}

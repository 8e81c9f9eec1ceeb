package mp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fangchenli/mpmath/mp"
)

func TestExtraPrecRestores(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(53))

	err := ctx.ExtraPrec(100).Run(func(c *mp.Context) error {
		require.Equal(t, uint(153), c.Prec())

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, uint(53), ctx.Prec())
	require.Equal(t, mp.PrecToDps(53), ctx.Dps())
}

func TestScopeRestoresOnFailure(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(53))
	boom := errors.New("boom")

	err := ctx.WorkPrec(1000).Run(func(c *mp.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, uint(53), ctx.Prec(), "precision must restore even when the body fails")
}

func TestScopeRestoresOnPanic(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(53))

	require.Panics(t, func() {
		_ = ctx.ExtraDps(20).Run(func(c *mp.Context) error {
			panic("boom")
		})
	})
	require.Equal(t, uint(53), ctx.Prec())
}

func TestNestedScopesStack(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(50))

	err := ctx.ExtraPrec(10).Run(func(c *mp.Context) error {
		require.Equal(t, uint(60), c.Prec())

		return c.ExtraPrec(10).Run(func(c2 *mp.Context) error {
			require.Equal(t, uint(70), c2.Prec())

			return nil
		})
	})
	require.NoError(t, err)
	require.Equal(t, uint(50), ctx.Prec())
}

func TestWorkDps(t *testing.T) {
	ctx := mp.NewContext()

	err := ctx.WorkDps(50).Run(func(c *mp.Context) error {
		require.Equal(t, 50, c.Dps())
		require.GreaterOrEqual(t, c.Prec(), uint(160))

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, mp.DefaultDps, ctx.Dps())
}

func TestRunValueNormalized(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(53))

	v, err := ctx.ExtraPrec(200).Normalized().RunValue(func(c *mp.Context) (mp.Value, error) {
		return c.Div(1, 3)
	})
	require.NoError(t, err)

	// The normalized result must equal a plain 53-bit division: no
	// extra working bits may leak out of the scope.
	plain, err := ctx.Div(1, 3)
	require.NoError(t, err)
	eq, err := ctx.Equal(v, plain)
	require.NoError(t, err)
	require.True(t, eq)
}

func TestRunValueUnnormalizedKeepsExtraBits(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(53))

	v, err := ctx.ExtraPrec(200).RunValue(func(c *mp.Context) (mp.Value, error) {
		return c.Div(1, 3)
	})
	require.NoError(t, err)

	plain, err := ctx.Div(1, 3)
	require.NoError(t, err)
	eq, err := ctx.Equal(v, plain)
	require.NoError(t, err)
	require.False(t, eq, "without Normalized the scoped result keeps its working precision")
}

func TestRunValuesNormalizesElementwise(t *testing.T) {
	ctx := mp.NewContext(mp.WithPrec(53))

	vs, err := ctx.ExtraPrec(100).Normalized().RunValues(func(c *mp.Context) ([]mp.Value, error) {
		a, err := c.Div(1, 3)
		if err != nil {
			return nil, err
		}
		b, err := c.Div(1, 7)
		if err != nil {
			return nil, err
		}

		return []mp.Value{a, b}, nil
	})
	require.NoError(t, err)
	require.Len(t, vs, 2)

	for i, denom := range []int{3, 7} {
		plain, err := ctx.Div(1, denom)
		require.NoError(t, err)
		eq, err := ctx.Equal(vs[i], plain)
		require.NoError(t, err)
		require.True(t, eq)
	}
}

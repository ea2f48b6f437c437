package histz_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zoobzio/histz"
	histztesting "github.com/zoobzio/histz/testing"
)

func TestSetGumbel_ExpectedCountsSumToN(t *testing.T) {
	const n = 2000
	xs := histztesting.GumbelSamples(n, 0, 1, 11)

	h := histztesting.NewFullTestHistogram(t, -5, 20, 0.5)
	histztesting.Collect(t, h, xs)
	require.NoError(t, h.Finish())
	require.NoError(t, h.SetGumbel(0, 1))

	exp := h.Expected()
	require.NotNil(t, exp)
	require.Len(t, exp, h.Bins())

	sum := 0.0
	for _, e := range exp {
		require.GreaterOrEqual(t, e, 0.0, "expected counts must never be negative")
		sum += e
	}
	require.InDelta(t, float64(n), sum, 1e-6, "primary expected counts must sum to n")

	exp2 := h.SecondaryExpected()
	require.NotNil(t, exp2)
	sum2 := 0.0
	for _, e := range exp2 {
		require.GreaterOrEqual(t, e, 0.0)
		sum2 += e
	}
	require.InDelta(t, float64(n), sum2, 1e-6, "secondary expected counts must sum to n")
}

func TestSetGEV_BinsOutsideSupportGetZero(t *testing.T) {
	xs := histztesting.GumbelSamples(500, 0, 1, 13)

	h := histztesting.NewFullTestHistogram(t, -10, 15, 0.5)
	histztesting.Collect(t, h, xs)
	require.NoError(t, h.Finish())

	// Frechet-type GEV: support is bounded below at mu - 1/(alpha*lambda) = -2.
	require.NoError(t, h.SetGEV(0, 1, 0.5))

	exp := h.Expected()
	for b, e := range exp {
		_, hi, err := h.BinBounds(b)
		require.NoError(t, err)
		if hi < -2 {
			require.Zero(t, e, "bin %d lies entirely below the support", b)
		}
		require.GreaterOrEqual(t, e, 0.0)
	}
}

func TestSetTail_RequiresFinished(t *testing.T) {
	h := histztesting.NewTestHistogram(t, 0, 10, 1)
	histztesting.Collect(t, h, []float64{1, 2, 3})

	require.ErrorIs(t, h.SetGumbel(0, 1), histz.ErrInvalidState)
}

func TestSetTail_Validation(t *testing.T) {
	h := histztesting.NewTestHistogram(t, 0, 10, 1)
	histztesting.Collect(t, h, []float64{1, 2, 3})
	require.NoError(t, h.Finish())

	require.ErrorIs(t, h.SetGumbel(0, 0), histz.ErrInvalidParameter)
	require.ErrorIs(t, h.SetGEV(0, -1, 0.1), histz.ErrInvalidParameter)
	require.ErrorIs(t, h.SetTail(nil), histz.ErrInvalidParameter)
}

package dist_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/zoobzio/histz/dist"
)

func TestGumbel_KnownValues(t *testing.T) {
	d := dist.Gumbel{Mu: 0, Lambda: 1}

	// CDF at the location parameter is e^-1.
	require.InDelta(t, math.Exp(-1), d.CDF(0), 1e-12)
	// Density at mu is e^-1 for unit lambda.
	require.InDelta(t, math.Exp(-1), d.PDF(0), 1e-12)

	shifted := dist.Gumbel{Mu: 3, Lambda: 2}
	require.InDelta(t, math.Exp(-1), shifted.CDF(3), 1e-12)
}

func TestGumbel_SurvComplementsCDF(t *testing.T) {
	d := dist.Gumbel{Mu: -5, Lambda: 0.7}
	for _, x := range []float64{-20, -5, 0, 5, 20} {
		require.InDelta(t, 1.0, d.CDF(x)+d.Surv(x), 1e-9, "x=%g", x)
	}
}

func TestGumbel_SurvFarTail(t *testing.T) {
	d := dist.Gumbel{Mu: 0, Lambda: 1}
	// Deep in the right tail, P(X>x) ~ e^-x; the naive 1-CDF underflows
	// to zero here.
	require.InEpsilon(t, math.Exp(-50), d.Surv(50), 1e-6)
}

func TestFitGumbel_RecoversParameters(t *testing.T) {
	const (
		n      = 10000
		mu     = -20.0
		lambda = 0.4
	)
	d := dist.Gumbel{Mu: mu, Lambda: lambda}
	src := rand.NewSource(5)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = d.Sample(src)
	}

	fit, err := dist.FitGumbel(xs)
	require.NoError(t, err)
	require.InDelta(t, mu, fit.Mu, 0.2)
	require.InDelta(t, lambda, fit.Lambda, 0.02)
}

func TestFitGumbel_Validation(t *testing.T) {
	_, err := dist.FitGumbel([]float64{1})
	require.Error(t, err)

	_, err = dist.FitGumbel([]float64{2, 2, 2, 2})
	require.Error(t, err)
}

func TestGEV_GumbelLimit(t *testing.T) {
	g := dist.Gumbel{Mu: 1, Lambda: 0.5}
	gev := dist.GEV{Mu: 1, Lambda: 0.5, Alpha: 0}

	for _, x := range []float64{-10, 0, 1, 5, 30} {
		require.InDelta(t, g.CDF(x), gev.CDF(x), 1e-9, "CDF at x=%g", x)
		require.InDelta(t, g.Surv(x), gev.Surv(x), 1e-9, "Surv at x=%g", x)
		require.InDelta(t, g.PDF(x), gev.PDF(x), 1e-9, "PDF at x=%g", x)
	}
}

func TestGEV_FrechetSupport(t *testing.T) {
	// Alpha > 0 bounds the support below at mu - 1/(alpha*lambda) = -2.
	d := dist.GEV{Mu: 0, Lambda: 1, Alpha: 0.5}

	require.Zero(t, d.CDF(-3))
	require.Zero(t, d.PDF(-3))
	require.Equal(t, 1.0, d.Surv(-3))
	require.Greater(t, d.CDF(0), 0.0)
}

func TestGEV_WeibullSupport(t *testing.T) {
	// Alpha < 0 bounds the support above at mu - 1/(alpha*lambda) = 2.
	d := dist.GEV{Mu: 0, Lambda: 1, Alpha: -0.5}

	require.Equal(t, 1.0, d.CDF(3))
	require.Zero(t, d.Surv(3))
	require.Zero(t, d.PDF(3))
}

func TestGEV_CDFMonotone(t *testing.T) {
	d := dist.GEV{Mu: 0, Lambda: 1, Alpha: 0.2}
	prev := -1.0
	for x := -5.0; x <= 20; x += 0.25 {
		c := d.CDF(x)
		require.GreaterOrEqual(t, c, prev, "CDF must not decrease at x=%g", x)
		require.GreaterOrEqual(t, c, 0.0)
		require.LessOrEqual(t, c, 1.0)
		prev = c
	}
}

func TestGEV_SampleStaysInSupport(t *testing.T) {
	d := dist.GEV{Mu: 0, Lambda: 1, Alpha: 0.5}
	src := rand.NewSource(9)
	for i := 0; i < 1000; i++ {
		x := d.Sample(src)
		require.Greater(t, x, -2.0, "Frechet samples must stay above the support bound")
	}
}

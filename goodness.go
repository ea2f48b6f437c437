package histz

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Layer selects which histogram a goodness-of-fit test runs against.
type Layer int

const (
	// LayerPrimary tests the fixed-width primary bins.
	LayerPrimary Layer = iota
	// LayerSecondary tests the equal-occupancy secondary bins.
	LayerSecondary
)

// GoodnessResult is the outcome of a goodness-of-fit test.
type GoodnessResult struct {
	Stat float64 // test statistic
	P    float64 // upper-tail probability under chi-squared with Df degrees of freedom
	Bins int     // usable bins after low-count merging
	Df   int     // degrees of freedom: Bins - 1 - ndeg
}

// ChiSquared computes Pearson's X^2 statistic between observed and
// expected counts on the given layer: sum over bins of
// (obs-exp)^2 / exp. Adjacent bins are merged until each carries at
// least minExpect expected counts, since a near-zero expectation cannot
// contribute a finite term. ndeg is the number of parameters consumed
// by the fit (2 for Gumbel, 3 for GEV).
//
// A small p (conventionally < 0.01 or 0.05) is evidence that the
// observed data are unlikely under the fitted tail model.
func (h *Histogram) ChiSquared(layer Layer, ndeg int) (GoodnessResult, error) {
	obs, exp, err := h.layerCounts(layer)
	if err != nil {
		return GoodnessResult{}, err
	}
	mobs, mexp := mergeBins(obs, exp, minExpect)
	df, err := checkUsable(mobs, ndeg)
	if err != nil {
		return GoodnessResult{}, err
	}

	x2 := 0.0
	for i := range mobs {
		d := mobs[i] - mexp[i]
		x2 += d * d / mexp[i]
	}
	return GoodnessResult{
		Stat: x2,
		P:    chiSquaredUpperTail(x2, df),
		Bins: len(mobs),
		Df:   df,
	}, nil
}

// GTest computes the log-likelihood ratio statistic
// 2 * sum(obs * ln(obs/exp)) over the same merged bin set as ChiSquared.
// Expected counts are first renormalized to the observed total, which
// the statistic assumes. Asymptotically equivalent to X^2 but the two
// diverge for small expected counts.
func (h *Histogram) GTest(layer Layer, ndeg int) (GoodnessResult, error) {
	obs, exp, err := h.layerCounts(layer)
	if err != nil {
		return GoodnessResult{}, err
	}
	mobs, mexp := mergeBins(obs, exp, minExpect)
	df, err := checkUsable(mobs, ndeg)
	if err != nil {
		return GoodnessResult{}, err
	}

	var nobs, nexp float64
	for i := range mobs {
		nobs += mobs[i]
		nexp += mexp[i]
	}
	if nexp <= 0 {
		return GoodnessResult{}, fmt.Errorf("%w: expected counts sum to zero", ErrInsufficientData)
	}

	g := 0.0
	for i := range mobs {
		if mobs[i] == 0 {
			continue // lim x->0 of x ln x is 0
		}
		g += mobs[i] * math.Log(mobs[i]/(mexp[i]*nobs/nexp))
	}
	g *= 2
	return GoodnessResult{
		Stat: g,
		P:    chiSquaredUpperTail(g, df),
		Bins: len(mobs),
		Df:   df,
	}, nil
}

// layerCounts returns the observed and expected count vectors for a
// layer, validating lifecycle state and tail model presence.
func (h *Histogram) layerCounts(layer Layer) (obs, exp []float64, err error) {
	if h.phase != closed {
		return nil, nil, fmt.Errorf("%w: histogram is still collecting", ErrInvalidState)
	}
	if h.tail == nil {
		return nil, nil, fmt.Errorf("%w: no tail model installed", ErrInvalidState)
	}
	switch layer {
	case LayerPrimary:
		obs = make([]float64, h.nb)
		if h.obs != nil {
			for i, c := range h.obs.v {
				obs[i] = float64(c)
			}
		}
		return obs, h.expect, nil
	case LayerSecondary:
		if h.obs2 == nil {
			return nil, nil, fmt.Errorf("%w: no secondary histogram; finish a full histogram first", ErrInvalidState)
		}
		obs = make([]float64, len(h.obs2))
		for i, c := range h.obs2 {
			obs[i] = float64(c)
		}
		return obs, h.exp2, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown layer %d", ErrInvalidParameter, layer)
	}
}

// mergeBins sweeps the bins left to right, merging adjacent bins until
// each merged bin carries at least thr expected counts. Any remainder at
// the right edge folds into the last merged bin.
func mergeBins(obs, exp []float64, thr float64) (mobs, mexp []float64) {
	var o, e float64
	for i := range obs {
		o += obs[i]
		e += exp[i]
		if e >= thr {
			mobs = append(mobs, o)
			mexp = append(mexp, e)
			o, e = 0, 0
		}
	}
	if o > 0 || e > 0 {
		if len(mobs) == 0 {
			return nil, nil
		}
		mobs[len(mobs)-1] += o
		mexp[len(mexp)-1] += e
	}
	return mobs, mexp
}

// checkUsable validates the merged bin set and returns the degrees of
// freedom, bins - 1 - ndeg.
func checkUsable(mobs []float64, ndeg int) (int, error) {
	if len(mobs) < 2 {
		return 0, fmt.Errorf("%w: only %d usable bins after merging, need at least 2", ErrInsufficientData, len(mobs))
	}
	df := len(mobs) - 1 - ndeg
	if df < 1 {
		return 0, fmt.Errorf("%w: %d bins leave no degrees of freedom after fitting %d parameters", ErrInsufficientData, len(mobs), ndeg)
	}
	return df, nil
}

// chiSquaredUpperTail returns P(X >= x) for X ~ chi-squared(df).
func chiSquaredUpperTail(x float64, df int) float64 {
	if x <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: float64(df)}.Survival(x)
}

package histz

import (
	"fmt"
	"math"

	"github.com/zoobzio/histz/dist"
)

// TailModel is a fitted extreme-value tail distribution used to compute
// expected bin counts. dist.Gumbel and dist.GEV satisfy it.
type TailModel interface {
	// CDF returns P(X <= x).
	CDF(x float64) float64
	// Surv returns P(X > x), accurate in the far right tail where
	// 1 - CDF(x) loses precision.
	Surv(x float64) float64
}

// SetTail installs a fitted tail model on a finished histogram and
// computes expected counts for every primary bin and, if present, every
// secondary bin. Each expected count is the total sample count times the
// model's probability mass over the bin's interval; the outermost bin
// edges are widened to +/-Inf so that expected counts sum to n exactly.
// Bins outside the model's support receive zero, never a negative value.
func (h *Histogram) SetTail(m TailModel) error {
	if h.phase != closed {
		return fmt.Errorf("%w: histogram is still collecting", ErrInvalidState)
	}
	if m == nil {
		return fmt.Errorf("%w: nil tail model", ErrInvalidParameter)
	}

	n := float64(h.n)
	h.expect = make([]float64, h.nb)
	for b := 0; b < h.nb; b++ {
		lo := h.lower + float64(b)*h.w
		hi := lo + h.w
		h.expect[b] = n * binMass(m, lo, hi, b == 0, b == h.nb-1)
	}

	if h.obs2 != nil {
		h.exp2 = make([]float64, len(h.obs2))
		for b := range h.obs2 {
			var lo float64
			if b > 0 {
				lo = h.topx[b-1]
			}
			h.exp2[b] = n * binMass(m, lo, h.topx[b], b == 0, b == len(h.obs2)-1)
		}
	}

	h.tail = m
	return nil
}

// SetGumbel installs a two-parameter Gumbel tail model with location mu
// and scale lambda.
func (h *Histogram) SetGumbel(mu, lambda float64) error {
	if lambda <= 0 {
		return fmt.Errorf("%w: gumbel lambda %g must be positive", ErrInvalidParameter, lambda)
	}
	return h.SetTail(dist.Gumbel{Mu: mu, Lambda: lambda})
}

// SetGEV installs a three-parameter generalized extreme value tail model
// with location mu, scale lambda and shape alpha.
func (h *Histogram) SetGEV(mu, lambda, alpha float64) error {
	if lambda <= 0 {
		return fmt.Errorf("%w: gev lambda %g must be positive", ErrInvalidParameter, lambda)
	}
	return h.SetTail(dist.GEV{Mu: mu, Lambda: lambda, Alpha: alpha})
}

// binMass returns the model's probability mass over (lo, hi], with the
// first bin extended down to -Inf and the last up to +Inf so the masses
// of a full bin sweep telescope to 1. The survival difference form keeps
// precision in the right tail.
func binMass(m TailModel, lo, hi float64, first, last bool) float64 {
	switch {
	case first && last:
		return 1
	case first:
		return m.CDF(hi)
	case last:
		return m.Surv(lo)
	}
	mass := m.Surv(lo) - m.Surv(hi)
	if mass < 0 || math.IsNaN(mass) {
		return 0
	}
	return mass
}

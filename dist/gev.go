package dist

import (
	"math"

	"golang.org/x/exp/rand"
)

// GEV is the generalized extreme value distribution with location Mu,
// scale Lambda and shape Alpha. Alpha > 0 gives the heavy-tailed
// Frechet family (support bounded below), Alpha < 0 the Weibull family
// (support bounded above), and Alpha -> 0 converges on the Gumbel.
//
// gonum's distuv has no GEV, so the math follows the standard forms
// directly, with the tiny-alpha cases routed through the Gumbel limit
// to avoid catastrophic cancellation in (1+alpha*y)^(-1/alpha).
type GEV struct {
	Mu     float64
	Lambda float64
	Alpha  float64
}

// tinyAlpha is the |alpha*y| threshold below which the Gumbel limit is
// numerically indistinguishable from the GEV form.
const tinyAlpha = 1e-12

// PDF returns the probability density at x; zero outside the support.
func (d GEV) PDF(x float64) float64 {
	y := d.Lambda * (x - d.Mu)
	ya1 := 1 + d.Alpha*y
	if math.Abs(y*d.Alpha) < tinyAlpha {
		return d.Lambda * math.Exp(-y-math.Exp(-y))
	}
	if ya1 <= 0 {
		return 0
	}
	lya1 := math.Log(ya1)
	return d.Lambda * math.Exp(-(1+1/d.Alpha)*lya1-math.Exp(-lya1/d.Alpha))
}

// CDF returns P(X <= x).
func (d GEV) CDF(x float64) float64 {
	y := d.Lambda * (x - d.Mu)
	ya1 := 1 + d.Alpha*y
	if math.Abs(y*d.Alpha) < tinyAlpha {
		return math.Exp(-math.Exp(-y))
	}
	if ya1 <= 0 {
		if x < d.Mu {
			return 0 // below Frechet support
		}
		return 1 // above Weibull support
	}
	return math.Exp(-math.Exp(-math.Log(ya1) / d.Alpha))
}

// Surv returns P(X > x), switching to the e^-y expansion deep in the
// right tail where 1-CDF(x) loses all precision.
func (d GEV) Surv(x float64) float64 {
	y := d.Lambda * (x - d.Mu)
	ya1 := 1 + d.Alpha*y
	if math.Abs(y*d.Alpha) < tinyAlpha {
		return survFromLog(y)
	}
	if ya1 <= 0 {
		if x < d.Mu {
			return 1
		}
		return 0
	}
	return survFromLog(math.Log(ya1) / d.Alpha)
}

// Sample draws one variate by inverting the CDF on an open-interval
// uniform deviate.
func (d GEV) Sample(src rand.Source) float64 {
	rng := rand.New(src)
	var p float64
	for p == 0 {
		p = rng.Float64()
	}
	if math.Abs(d.Alpha) < tinyAlpha {
		return d.Mu - math.Log(-math.Log(p))/d.Lambda
	}
	return d.Mu + (math.Exp(-d.Alpha*math.Log(-math.Log(p)))-1)/(d.Alpha*d.Lambda)
}

// survFromLog computes 1 - exp(-exp(-y)). For large y, 1-e^-x ~ x makes
// the direct form lose precision, so e^-y is returned instead; the
// crossover matches where the two agree to ~1e-8.
func survFromLog(y float64) float64 {
	if y > -0.5*math.Log(dblEpsilon) {
		return math.Exp(-y)
	}
	return 1 - math.Exp(-math.Exp(-y))
}

// dblEpsilon is the double-precision machine epsilon.
const dblEpsilon = 2.220446049250313e-16

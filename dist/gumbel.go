// Package dist provides the extreme-value distributions used to model
// score tails: the two-parameter Gumbel and the three-parameter
// generalized extreme value distribution, plus maximum-likelihood
// Gumbel fitting.
//
// Both distributions are parameterized with location mu and scale
// lambda, where lambda is the inverse of the conventional scale beta.
// Both satisfy histz.TailModel.
package dist

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrConvergence indicates that an iterative fit failed to converge.
var ErrConvergence = errors.New("dist: fit did not converge")

// Gumbel is the type I extreme value distribution with location Mu and
// scale Lambda.
type Gumbel struct {
	Mu     float64
	Lambda float64
}

func (d Gumbel) dist() distuv.GumbelRight {
	return distuv.GumbelRight{Mu: d.Mu, Beta: 1 / d.Lambda}
}

// PDF returns the probability density at x.
func (d Gumbel) PDF(x float64) float64 { return d.dist().Prob(x) }

// CDF returns P(X <= x) = exp(-exp(-lambda(x-mu))).
func (d Gumbel) CDF(x float64) float64 { return d.dist().CDF(x) }

// Surv returns P(X > x), accurate in the right tail where 1-CDF(x)
// underflows.
func (d Gumbel) Surv(x float64) float64 { return d.dist().Survival(x) }

// Sample draws one variate using src.
func (d Gumbel) Sample(src rand.Source) float64 {
	g := d.dist()
	g.Src = src
	return g.Rand()
}

// FitGumbel finds maximum-likelihood Gumbel parameters for the samples
// in x. Lambda solves Lawless eq. 4.1.6 by Newton-Raphson from a
// moment-based initial guess, falling back to bisection if that fails
// to converge; mu then follows from eq. 4.1.5.
func FitGumbel(x []float64) (Gumbel, error) {
	if len(x) < 2 {
		return Gumbel{}, fmt.Errorf("dist: gumbel fit needs at least 2 samples, got %d", len(x))
	}
	_, variance := stat.MeanVariance(x, nil)
	if variance <= 0 {
		return Gumbel{}, fmt.Errorf("dist: gumbel fit needs nonzero sample variance")
	}

	const tol = 1e-5
	guess := math.Pi / math.Sqrt(6*variance)

	lambda := guess
	ok := false
	for i := 0; i < 100; i++ {
		fx, dfx := lawless416(x, lambda)
		if math.Abs(fx) < tol {
			ok = true
			break
		}
		lambda -= fx / dfx
		if lambda <= 0 {
			lambda = 0.001
		}
	}

	if !ok {
		// Newton-Raphson failed; bisect. fx decreases monotonically in
		// lambda: positive left of the root, negative right of it.
		left, right := 0.0, guess
		for fx, _ := lawless416(x, right); fx > 0; fx, _ = lawless416(x, right) {
			right *= 2
			if right > 100 { // no reasonable lambda is this large
				return Gumbel{}, fmt.Errorf("%w: cannot bracket lambda", ErrConvergence)
			}
		}
		for i := 0; ; i++ {
			if i == 100 {
				return Gumbel{}, fmt.Errorf("%w: bisection on lambda", ErrConvergence)
			}
			mid := (left + right) / 2
			fx, _ := lawless416(x, mid)
			if math.Abs(fx) < tol {
				lambda = mid
				break
			}
			if fx > 0 {
				left = mid
			} else {
				right = mid
			}
		}
	}

	esum := 0.0
	for _, xi := range x {
		esum += math.Exp(-lambda * xi)
	}
	mu := -math.Log(esum/float64(len(x))) / lambda

	return Gumbel{Mu: mu, Lambda: lambda}, nil
}

// lawless416 evaluates Lawless eq. 4.1.6 and its derivative with
// respect to lambda. The ML lambda is the root of f.
func lawless416(x []float64, lambda float64) (f, df float64) {
	var esum, xesum, xxesum, xsum float64
	for _, xi := range x {
		e := math.Exp(-lambda * xi)
		xsum += xi
		esum += e
		xesum += xi * e
		xxesum += xi * xi * e
	}
	n := float64(len(x))
	f = 1/lambda - xsum/n + xesum/esum
	df = (xesum/esum)*(xesum/esum) - xxesum/esum - 1/(lambda*lambda)
	return f, df
}

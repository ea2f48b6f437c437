// Package random is a seedable source of synthetic score streams: a
// uniform deviate generator plus the derived transforms (Gaussian,
// Gamma, discrete choice) used to exercise histogram collection. The
// histogram engine itself performs no seeding or generation; callers
// own the generator and pass its output to Add.
package random

import (
	"fmt"

	"github.com/zoobzio/clockz"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator produces pseudorandom deviates from a single owned PRNG
// stream. Not safe for concurrent use; give each goroutine its own.
type Generator struct {
	rng *rand.Rand
	src rand.Source
}

// New returns a generator with an explicit seed. Equal seeds yield
// identical streams, which is what tests want.
func New(seed uint64) *Generator {
	src := rand.NewSource(seed)
	return &Generator{rng: rand.New(src), src: src}
}

// NewFromClock returns a generator seeded from the clock's current
// time. Production callers pass the real clock; tests pass a fake
// clock for reproducibility.
func NewFromClock(c clockz.Clock) *Generator {
	return New(uint64(c.Now().UnixNano()))
}

// Uniform returns a deviate in [0,1).
func (g *Generator) Uniform() float64 { return g.rng.Float64() }

// UniformOpen returns a deviate in (0,1), for transforms that cannot
// tolerate a zero.
func (g *Generator) UniformOpen() float64 {
	for {
		if x := g.rng.Float64(); x != 0 {
			return x
		}
	}
}

// Gaussian returns a normal deviate with the given mean and standard
// deviation.
func (g *Generator) Gaussian(mean, stddev float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stddev, Src: g.src}.Rand()
}

// Gamma returns a gamma deviate with shape a and unit scale.
func (g *Generator) Gamma(a float64) float64 {
	return distuv.Gamma{Alpha: a, Beta: 1, Src: g.src}.Rand()
}

// Choose samples an index 0..len(p)-1 from the normalized discrete
// distribution p. Returns an error if p is empty or sums to something
// clearly different from one.
func (g *Generator) Choose(p []float64) (int, error) {
	if len(p) == 0 {
		return 0, fmt.Errorf("random: empty distribution")
	}
	sum := 0.0
	for _, pi := range p {
		sum += pi
	}
	if sum < 0.99 || sum > 1.01 {
		return 0, fmt.Errorf("random: distribution sums to %g, not 1", sum)
	}

	// The roll can land a hair beyond the accumulated sum when the
	// distribution's machine total is just under 1; re-roll rather
	// than bias the last element.
	for {
		roll := g.rng.Float64()
		acc := 0.0
		for i, pi := range p {
			acc += pi
			if roll < acc {
				return i, nil
			}
		}
	}
}

// Source exposes the underlying PRNG source for samplers that take one,
// such as the dist package's Sample methods.
func (g *Generator) Source() rand.Source { return g.src }

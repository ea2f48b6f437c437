// Package testing provides helpers for tests that exercise histz
// histograms: fail-fast constructors and deterministic synthetic
// sample sets.
package testing

import (
	"testing"

	"github.com/zoobzio/histz"
	"github.com/zoobzio/histz/dist"
	"github.com/zoobzio/histz/random"
)

// NewTestHistogram creates a display-only histogram, failing the test
// on constructor error.
func NewTestHistogram(t *testing.T, lower, upper, w float64) *histz.Histogram {
	t.Helper()
	h, err := histz.New(lower, upper, w)
	if err != nil {
		t.Fatalf("New(%g, %g, %g): %v", lower, upper, w, err)
	}
	return h
}

// NewFullTestHistogram creates a histogram with raw sample retention,
// failing the test on constructor error.
func NewFullTestHistogram(t *testing.T, lower, upper, w float64) *histz.Histogram {
	t.Helper()
	h, err := histz.NewFull(lower, upper, w)
	if err != nil {
		t.Fatalf("NewFull(%g, %g, %g): %v", lower, upper, w, err)
	}
	return h
}

// GumbelSamples returns n deterministic Gumbel(mu, lambda) deviates for
// the given seed. Equal arguments always yield the same set, so
// statistical assertions stay stable across runs.
func GumbelSamples(n int, mu, lambda float64, seed uint64) []float64 {
	g := random.New(seed)
	d := dist.Gumbel{Mu: mu, Lambda: lambda}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Sample(g.Source())
	}
	return out
}

// Collect adds every sample to the histogram, failing the test on the
// first Add error.
func Collect(t *testing.T, h *histz.Histogram, xs []float64) {
	t.Helper()
	for _, x := range xs {
		if err := h.Add(x); err != nil {
			t.Fatalf("Add(%g): %v", x, err)
		}
	}
}

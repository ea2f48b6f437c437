// Package histz collects score histograms and tests them against fitted
// extreme-value tail models.
//
// # Collection
//
// A Histogram counts real-valued scores into fixed-width bins. The
// binned range is width-aligned and grows automatically in both
// directions as extreme scores arrive, so the initial bounds only need
// to be guesses:
//
//	h, _ := histz.New(-100, 100, 0.5)
//	for _, x := range scores {
//	    h.Add(x)
//	}
//	h.Finish()
//
// NewFull additionally retains every raw sample. That enables rank
// queries (GetRank), tail extraction (Tail), and the secondary
// equal-occupancy histogram that Finish derives for goodness-of-fit
// testing.
//
// # Lifecycle
//
// A histogram is in one of two phases. While collecting, exactly one
// writer calls Add; no internal locking is provided or needed. Finish
// closes the histogram exactly once. A finished histogram is immutable
// and safe for concurrent readers: printing, rank queries and
// goodness-of-fit tests may run from multiple goroutines.
//
// # Fitting and testing
//
// After Finish, a fitted tail model attaches expected counts to both
// histograms:
//
//	g, _ := dist.FitGumbel(samples)
//	h.SetGumbel(g.Mu, g.Lambda)
//	r, _ := h.ChiSquared(histz.LayerSecondary, 2)
//	fmt.Printf("X2 = %.2f  p = %.4f\n", r.Stat, r.P)
//
// ChiSquared and GTest merge bins with small expected counts before
// computing their statistics, and report p-values under the chi-squared
// reference distribution with degrees of freedom adjusted for the
// number of fitted parameters.
//
// The dist subpackage provides the Gumbel and generalized extreme value
// distributions plus maximum-likelihood Gumbel fitting; the random
// subpackage is a seedable generator for synthetic score streams.
package histz

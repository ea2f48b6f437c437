package histz

import (
	"fmt"
	"math"
	"sort"
)

// phase is the histogram lifecycle state.
type phase int

const (
	collecting phase = iota // accepting samples
	closed                  // finished; structure is read-only
)

// Histogram accumulates real-valued scores into fixed-width bins.
//
// Scores are counted into bins of width w. The binned range is always
// width-aligned and grows automatically in either direction as extreme
// scores arrive. A score x lands in bin b such that
//
//	lower + b*w < x <= lower + (b+1)*w
//
// i.e. binning is exclusive-low, inclusive-high. Adding exactly the
// current lower bound extends the histogram one bin downward.
//
// A histogram built with NewFull additionally retains every raw sample,
// which enables rank queries and, once Finish is called, a secondary
// equal-occupancy histogram for goodness-of-fit testing.
//
// One writer mutates a histogram during collection; after Finish the
// structure is immutable and safe for concurrent readers.
type Histogram struct {
	w          float64      // fixed bin width, immutable
	lower      float64      // low edge of the binned range
	upper      float64      // high edge of the binned range
	nb         int          // number of bins: (upper-lower)/w
	obs        *numbuf[int] // observed counts, materialized on first Add
	expect     []float64    // expected counts, set by a tail model
	xmin, xmax float64      // observed sample range
	n          int          // total samples added
	imin, imax int          // tightest bin range with nonzero counts

	samples *numbuf[float64] // raw samples; nil without full retention
	sorted  bool             // samples are sorted ascending

	phase phase
	tail  TailModel // installed tail model, nil until SetTail

	// Secondary equal-occupancy histogram, built by Finish on full
	// histograms. topx[b] is the inclusive upper boundary of bin b.
	obs2 []int
	exp2 []float64
	topx []float64
}

// New creates a histogram binning scores > lower and <= upper into bins
// of width w. The bounds are initial guesses: they round outward to
// width-aligned boundaries and the histogram reallocates itself as
// scores outside the range arrive.
func New(lower, upper, w float64) (*Histogram, error) {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return nil, fmt.Errorf("%w: bin width %g must be positive", ErrInvalidParameter, w)
	}
	if !(upper > lower) {
		return nil, fmt.Errorf("%w: bounds [%g,%g] are inverted or empty", ErrInvalidParameter, lower, upper)
	}
	lo := math.Floor(lower/w) * w
	hi := math.Ceil(upper/w) * w
	nb := int(math.Round((hi - lo) / w))
	return &Histogram{
		w:     w,
		lower: lo,
		upper: hi,
		nb:    nb,
		xmin:  math.Inf(1),
		xmax:  math.Inf(-1),
		imin:  nb,
		imax:  -1,
	}, nil
}

// NewFull creates a histogram that also retains every raw sample.
// Retention costs memory proportional to the sample count but enables
// GetRank, Samples, Tail, and the secondary histogram built by Finish.
func NewFull(lower, upper, w float64) (*Histogram, error) {
	h, err := New(lower, upper, w)
	if err != nil {
		return nil, err
	}
	h.samples = newNumbuf[float64](0)
	return h, nil
}

// binOf returns the bin index for score x under the exclusive-low,
// inclusive-high convention. May be negative or >= nb; Add extends the
// range to cover it.
func (h *Histogram) binOf(x float64) int {
	return int(math.Ceil((x-h.lower)/h.w)) - 1
}

// Add records one score. The binned range extends as needed; extension
// at the low side rebases every existing bin index, so the target index
// is re-derived after growth. Fails with ErrInvalidState after Finish.
func (h *Histogram) Add(x float64) error {
	if h.phase == closed {
		return fmt.Errorf("%w: histogram is finished, no more samples accepted", ErrInvalidState)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: sample %g is not a finite value", ErrInvalidParameter, x)
	}

	if h.samples != nil {
		h.samples.push(x)
		h.sorted = false
	}
	if h.obs == nil {
		h.obs = newNumbuf[int](h.nb)
	}

	b := h.binOf(x)
	if b < 0 {
		nlow := -b
		h.obs.extendLow(nlow)
		h.nb += nlow
		h.lower -= float64(nlow) * h.w
		h.imin += nlow
		if h.imax >= 0 {
			h.imax += nlow
		}
		b = 0
	} else if b >= h.nb {
		nhigh := b - h.nb + 1
		h.obs.extendHigh(nhigh)
		if h.imin == h.nb { // sentinel: no counts yet
			h.imin += nhigh
		}
		h.nb += nhigh
		h.upper += float64(nhigh) * h.w
	}

	h.obs.v[b]++
	h.n++
	if b < h.imin {
		h.imin = b
	}
	if b > h.imax {
		h.imax = b
	}
	if x < h.xmin {
		h.xmin = x
	}
	if x > h.xmax {
		h.xmax = x
	}
	return nil
}

// Finish closes the histogram for further addition. On a full histogram
// it sorts the retained samples and builds the secondary equal-occupancy
// histogram with the default bin count, round(sqrt(n)). Fails with
// ErrInvalidState if called twice.
func (h *Histogram) Finish() error {
	if h.phase == closed {
		return fmt.Errorf("%w: histogram is already finished", ErrInvalidState)
	}
	if h.samples == nil || h.n == 0 {
		h.phase = closed
		return nil
	}
	nb2 := int(math.Round(math.Sqrt(float64(h.n))))
	if nb2 < 1 {
		nb2 = 1
	}
	h.finish(nb2)
	return nil
}

// FinishBins is Finish with an explicit secondary bin count. Requires
// full retention; nb2 must satisfy 0 < nb2 <= n.
func (h *Histogram) FinishBins(nb2 int) error {
	if h.phase == closed {
		return fmt.Errorf("%w: histogram is already finished", ErrInvalidState)
	}
	if h.samples == nil {
		return fmt.Errorf("%w: secondary binning needs a full histogram", ErrInvalidState)
	}
	if nb2 <= 0 || nb2 > h.n {
		return fmt.Errorf("%w: secondary bin count %d not in 1..%d", ErrInvalidParameter, nb2, h.n)
	}
	h.finish(nb2)
	return nil
}

func (h *Histogram) finish(nb2 int) {
	h.Sort()
	h.obs2, h.topx = rebin(h.samples.v, nb2)
	h.phase = closed
}

// Sort orders the retained raw samples ascending. No effect on a
// histogram without retention, or one already sorted.
func (h *Histogram) Sort() {
	if h.samples == nil || h.sorted {
		return
	}
	sort.Float64s(h.samples.v)
	h.sorted = true
}

// GetRank returns the rank'th order statistic of the retained samples,
// rank 1 being the smallest. The samples are sorted first if needed.
// Fails with ErrInvalidState without retention and ErrOutOfRange if
// rank is not in 1..n.
func (h *Histogram) GetRank(rank int) (float64, error) {
	if h.samples == nil {
		return 0, fmt.Errorf("%w: rank queries need a full histogram", ErrInvalidState)
	}
	if rank < 1 || rank > h.n {
		return 0, fmt.Errorf("%w: rank %d not in 1..%d", ErrOutOfRange, rank, h.n)
	}
	h.Sort()
	return h.samples.v[rank-1], nil
}

// Samples returns a copy of the retained samples, sorted ascending.
// Only available once the histogram is finished.
func (h *Histogram) Samples() ([]float64, error) {
	if h.samples == nil {
		return nil, fmt.Errorf("%w: samples were not retained", ErrInvalidState)
	}
	if h.phase != closed {
		return nil, fmt.Errorf("%w: histogram is still collecting", ErrInvalidState)
	}
	out := make([]float64, h.samples.len())
	copy(out, h.samples.v)
	return out, nil
}

// Tail returns a copy of the retained samples strictly greater than phi,
// sorted ascending. Only available once the histogram is finished.
func (h *Histogram) Tail(phi float64) ([]float64, error) {
	all, err := h.Samples()
	if err != nil {
		return nil, err
	}
	i := sort.SearchFloat64s(all, phi)
	for i < len(all) && all[i] == phi {
		i++
	}
	return all[i:], nil
}

// Count returns the total number of samples added.
func (h *Histogram) Count() int { return h.n }

// Bins returns the current number of primary bins.
func (h *Histogram) Bins() int { return h.nb }

// Width returns the fixed bin width.
func (h *Histogram) Width() float64 { return h.w }

// Lower returns the low edge of the binned range.
func (h *Histogram) Lower() float64 { return h.lower }

// Upper returns the high edge of the binned range.
func (h *Histogram) Upper() float64 { return h.upper }

// Min returns the smallest observed sample, +Inf before any Add.
func (h *Histogram) Min() float64 { return h.xmin }

// Max returns the largest observed sample, -Inf before any Add.
func (h *Histogram) Max() float64 { return h.xmax }

// Counts returns a copy of the per-bin observed counts.
func (h *Histogram) Counts() []int {
	out := make([]int, h.nb)
	if h.obs != nil {
		copy(out, h.obs.v)
	}
	return out
}

// Expected returns a copy of the per-bin expected counts, or nil if no
// tail model has been installed.
func (h *Histogram) Expected() []float64 {
	if h.expect == nil {
		return nil
	}
	out := make([]float64, len(h.expect))
	copy(out, h.expect)
	return out
}

// BinBounds returns the exclusive lower and inclusive upper boundary of
// primary bin b.
func (h *Histogram) BinBounds(b int) (lo, hi float64, err error) {
	if b < 0 || b >= h.nb {
		return 0, 0, fmt.Errorf("%w: bin %d not in 0..%d", ErrOutOfRange, b, h.nb-1)
	}
	lo = h.lower + float64(b)*h.w
	return lo, lo + h.w, nil
}

// Secondary returns copies of the secondary histogram's per-bin counts
// and inclusive upper boundaries. Fails with ErrInvalidState if the
// histogram was not finished with full retention.
func (h *Histogram) Secondary() (counts []int, topx []float64, err error) {
	if h.obs2 == nil {
		return nil, nil, fmt.Errorf("%w: no secondary histogram; finish a full histogram first", ErrInvalidState)
	}
	counts = make([]int, len(h.obs2))
	copy(counts, h.obs2)
	topx = make([]float64, len(h.topx))
	copy(topx, h.topx)
	return counts, topx, nil
}

// SecondaryExpected returns a copy of the secondary histogram's expected
// counts, or nil if absent.
func (h *Histogram) SecondaryExpected() []float64 {
	if h.exp2 == nil {
		return nil
	}
	out := make([]float64, len(h.exp2))
	copy(out, h.exp2)
	return out
}

package histz

// rebin partitions sorted samples into nb2 contiguous groups whose sizes
// differ by at most one; the first n mod nb2 groups take the extra
// sample. Each group's maximum becomes that bin's inclusive upper
// boundary, so topx is non-decreasing by construction. Equal-occupancy
// bins give every bin comparable statistical power in goodness-of-fit
// tests, unlike fixed-width bins whose tail bins may be nearly empty.
//
// Callers guarantee 0 < nb2 <= len(sorted).
func rebin(sorted []float64, nb2 int) (counts []int, topx []float64) {
	n := len(sorted)
	counts = make([]int, nb2)
	topx = make([]float64, nb2)

	size := n / nb2
	extra := n % nb2

	i := 0
	for b := 0; b < nb2; b++ {
		take := size
		if b < extra {
			take++
		}
		i += take
		counts[b] = take
		topx[b] = sorted[i-1]
	}
	return counts, topx
}

package histz

import (
	"fmt"
	"io"
	"strings"
)

// lineWriter defers write errors so rendering loops stay readable.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...any) {
	if lw.err == nil {
		_, lw.err = fmt.Fprintf(lw.w, format, args...)
	}
}

// Print writes a per-bin listing of the finished histogram: bin score,
// observed count, expected count when a tail model is installed, and an
// ASCII bar scaled to fit an 80-column display. The expected count's
// position is marked with '*' on each bar line.
//
// Fails with ErrInvalidState while the histogram is still collecting.
func (h *Histogram) Print(w io.Writer) error {
	if h.phase != closed {
		return fmt.Errorf("%w: histogram is still collecting", ErrInvalidState)
	}
	lw := &lineWriter{w: w}

	maxbar := 0
	for i := h.imin; i <= h.imax; i++ {
		if h.obs.v[i] > maxbar {
			maxbar = h.obs.v[i]
		}
	}
	units := 1
	if maxbar > 0 {
		units = (maxbar-1)/58 + 1
	}

	lw.printf("%6s %6s %6s  (one = represents %d samples)\n", "score", "obs", "exp", units)
	lw.printf("%6s %6s %6s\n", "-----", "---", "---")
	for i := h.imin; i <= h.imax; i++ {
		x := h.lower + float64(i)*h.w
		var bar []byte
		if c := h.obs.v[i]; c > 0 {
			bar = []byte(strings.Repeat("=", 1+(c-1)/units))
		}
		if h.expect != nil {
			// widen the bar line so the expected marker fits
			pos := int(h.expect[i]-1) / units
			if pos > 57 {
				pos = 57
			}
			if pos >= 0 && h.expect[i] > 0 {
				for len(bar) <= pos {
					bar = append(bar, ' ')
				}
				bar[pos] = '*'
			}
			lw.printf("%6.1f %6d %6d|%s\n", x, h.obs.v[i], int(h.expect[i]), bar)
		} else {
			lw.printf("%6.1f %6d %6s|%s\n", x, h.obs.v[i], "-", bar)
		}
	}
	return lw.err
}

// WriteXY writes the observed counts, and expected counts if set, as
// xmgrace XY data sets: one "x count" line per nonempty bin, each set
// terminated by "&".
//
// Fails with ErrInvalidState while the histogram is still collecting.
func (h *Histogram) WriteXY(w io.Writer) error {
	if h.phase != closed {
		return fmt.Errorf("%w: histogram is still collecting", ErrInvalidState)
	}
	lw := &lineWriter{w: w}

	for i := h.imin; i <= h.imax; i++ {
		if h.obs.v[i] > 0 {
			lw.printf("%f %d\n", h.lower+float64(i)*h.w, h.obs.v[i])
		}
	}
	lw.printf("&\n")

	if h.expect != nil {
		for i := 0; i < h.nb; i++ {
			if h.expect[i] > 0 {
				lw.printf("%.2f %g\n", h.lower+float64(i)*h.w, h.expect[i])
			}
		}
		lw.printf("&\n")
	}
	return lw.err
}

// WriteSurvival writes the observed survival function P(X > x), and the
// expected one if a tail model is set, sweeping from the top bin
// downward, in xmgrace XY format.
//
// Fails with ErrInvalidState while the histogram is still collecting.
func (h *Histogram) WriteSurvival(w io.Writer) error {
	if h.phase != closed {
		return fmt.Errorf("%w: histogram is still collecting", ErrInvalidState)
	}
	lw := &lineWriter{w: w}

	c := 0
	for i := h.imax; i >= h.imin; i-- {
		if h.obs.v[i] > 0 {
			c += h.obs.v[i]
			lw.printf("%f\t%f\n", h.lower+float64(i)*h.w, float64(c)/float64(h.n))
		}
	}
	lw.printf("&\n")

	if h.expect != nil {
		e := 0.0
		for i := h.nb - 1; i >= 0; i-- {
			if h.expect[i] > 0 {
				e += h.expect[i]
				lw.printf("%f\t%f\n", h.lower+float64(i)*h.w, e/float64(h.n))
			}
		}
		lw.printf("&\n")
	}
	return lw.err
}

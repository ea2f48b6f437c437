package histz

// Engine tuning constants.
const (
	// minExpect is the minimum expected count a bin must carry to be
	// usable in a goodness-of-fit test. Bins below it merge with their
	// neighbors (Cochran's rule of thumb).
	minExpect = 5.0
)

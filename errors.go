package histz

import "errors"

// Error kinds reported by the engine. Callers match with errors.Is;
// every failing call returns one of these wrapped with context.
var (
	// ErrInvalidParameter indicates bad construction arguments: a
	// non-positive bin width, inverted bounds, or a bad secondary bin count.
	ErrInvalidParameter = errors.New("histz: invalid parameter")

	// ErrInvalidState indicates an operation attempted in the wrong
	// lifecycle phase, such as Add after Finish or goodness-of-fit
	// before a tail model is installed.
	ErrInvalidState = errors.New("histz: invalid state")

	// ErrOutOfRange indicates a rank query beyond the sample count.
	ErrOutOfRange = errors.New("histz: out of range")

	// ErrInsufficientData indicates a goodness-of-fit test with fewer
	// than two usable bins after low-count merging.
	ErrInsufficientData = errors.New("histz: insufficient data")
)

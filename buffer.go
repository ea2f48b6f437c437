package histz

import "golang.org/x/exp/constraints"

// sampleCap is the initial allocation for growable buffers. Small enough
// to be cheap for short collections, large enough that doubling settles
// quickly for long ones.
const sampleCap = 128

// numbuf is the shared growth primitive behind the raw-sample store and
// the primary bin-count array: a contiguous buffer that grows by doubling
// on append and extends by exact amounts at either end.
//
// Extension at the low end rebases the buffer: every existing element
// moves up by the number of slots inserted. Callers that hold indices
// into the buffer must re-derive them after extendLow.
type numbuf[T constraints.Integer | constraints.Float] struct {
	v []T
}

// newNumbuf returns a buffer preallocated to n zero elements.
func newNumbuf[T constraints.Integer | constraints.Float](n int) *numbuf[T] {
	return &numbuf[T]{v: make([]T, n, max(n, sampleCap))}
}

// push appends one value, doubling capacity when exhausted.
func (b *numbuf[T]) push(x T) {
	if len(b.v) == cap(b.v) {
		grown := make([]T, len(b.v), max(2*cap(b.v), sampleCap))
		copy(grown, b.v)
		b.v = grown
	}
	b.v = append(b.v, x)
}

// extendHigh appends n zero elements.
func (b *numbuf[T]) extendHigh(n int) {
	if len(b.v)+n <= cap(b.v) {
		b.v = b.v[: len(b.v)+n : cap(b.v)]
		for i := len(b.v) - n; i < len(b.v); i++ {
			b.v[i] = 0
		}
		return
	}
	grown := make([]T, len(b.v)+n)
	copy(grown, b.v)
	b.v = grown
}

// extendLow inserts n zero elements at the front, shifting every existing
// element up by n slots. This is the rebase step: either it completes and
// all prior values sit at index+n, or the buffer is unchanged.
func (b *numbuf[T]) extendLow(n int) {
	grown := make([]T, len(b.v)+n)
	copy(grown[n:], b.v)
	b.v = grown
}

func (b *numbuf[T]) len() int { return len(b.v) }

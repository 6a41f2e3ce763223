package drag

import "github.com/dshills/trilex/internal/selection"

// Result is the outcome of a commit.
type Result[T any] struct {
	// Rows is the new sequence. When Moved is false it is the input slice
	// itself.
	Rows []T

	// Selection covers the moved block at its new position, or is the
	// input selection when nothing moved.
	Selection selection.Range

	// Moved reports whether the order changed.
	Moved bool
}

// Commit moves the selected block to the slot targeted by p.
//
// The block is removed first and then inserted, so a target below the
// block is shifted up by the block length before insertion. A preview
// without a target, an empty selection, an out-of-range index or a target
// inside the invalid zone returns rows and sel unchanged. rows is never
// modified.
func Commit[T any](rows []T, sel selection.Range, p Preview) Result[T] {
	unchanged := Result[T]{Rows: rows, Selection: sel}

	lo, hi, ok := sel.Bounds()
	if !ok || hi >= len(rows) {
		return unchanged
	}
	to, ok := p.Target()
	if !ok || to < 0 || to > len(rows) || InInvalidZone(sel, to) {
		return unchanged
	}

	k := hi - lo + 1
	rest := make([]T, 0, len(rows)-k)
	rest = append(rest, rows[:lo]...)
	rest = append(rest, rows[hi+1:]...)

	target := to
	if to > hi {
		target -= k
	}

	out := make([]T, 0, len(rows))
	out = append(out, rest[:target]...)
	out = append(out, rows[lo:hi+1]...)
	out = append(out, rest[target:]...)

	return Result[T]{
		Rows:      out,
		Selection: selection.Span(target, target+k-1),
		Moved:     true,
	}
}

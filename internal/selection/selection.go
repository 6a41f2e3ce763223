// Package selection tracks which dictionary rows are marked for a group
// operation.
//
// A selection is either empty or a contiguous ascending run of row
// indices [Min..Max]. Range is a value type: every operation returns a new
// Range and leaves the receiver untouched, so a host can keep the previous
// value around (for undo or change detection) without copying.
//
// Toggle rules:
//
//   - selecting into an empty range starts a run of one
//   - selecting Min-1 or Max+1 extends the run
//   - selecting anything else discards the run and starts a new one
//   - deselecting is only honoured at Min or Max; interior indices are
//     ignored because removing them would split the run
package selection

import "fmt"

// Range is a contiguous run of selected row indices.
// The zero value is the empty selection.
type Range struct {
	min, max int
	valid    bool
}

// Empty returns the empty selection.
func Empty() Range {
	return Range{}
}

// Span returns the selection [lo..hi]. The bounds may be given in either
// order. Negative bounds yield the empty selection.
func Span(lo, hi int) Range {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		return Range{}
	}
	return Range{min: lo, max: hi, valid: true}
}

// Single returns a selection containing only index.
func Single(index int) Range {
	return Span(index, index)
}

// FromIndices builds a Range from an arbitrary index set.
// It returns false if the indices are not one contiguous run.
func FromIndices(indices []int) (Range, bool) {
	if len(indices) == 0 {
		return Range{}, true
	}
	lo, hi := indices[0], indices[0]
	seen := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 {
			return Range{}, false
		}
		seen[i] = struct{}{}
		lo = min(lo, i)
		hi = max(hi, i)
	}
	if len(seen) != hi-lo+1 {
		return Range{}, false
	}
	return Span(lo, hi), true
}

// IsEmpty reports whether nothing is selected.
func (r Range) IsEmpty() bool {
	return !r.valid
}

// Bounds returns the first and last selected index.
// ok is false for the empty selection.
func (r Range) Bounds() (lo, hi int, ok bool) {
	return r.min, r.max, r.valid
}

// Min returns the first selected index, or -1 when empty.
func (r Range) Min() int {
	if !r.valid {
		return -1
	}
	return r.min
}

// Max returns the last selected index, or -1 when empty.
func (r Range) Max() int {
	if !r.valid {
		return -1
	}
	return r.max
}

// Len returns the number of selected rows.
func (r Range) Len() int {
	if !r.valid {
		return 0
	}
	return r.max - r.min + 1
}

// Contains reports whether index is selected.
func (r Range) Contains(index int) bool {
	return r.valid && index >= r.min && index <= r.max
}

// Indices returns the selected indices in ascending order.
func (r Range) Indices() []int {
	if !r.valid {
		return nil
	}
	out := make([]int, 0, r.Len())
	for i := r.min; i <= r.max; i++ {
		out = append(out, i)
	}
	return out
}

// Equal reports whether two selections cover the same indices.
func (r Range) Equal(other Range) bool {
	if !r.valid || !other.valid {
		return r.valid == other.valid
	}
	return r.min == other.min && r.max == other.max
}

// Select applies one checkbox toggle and returns the resulting selection.
// selecting is true when the row's box is being checked.
func (r Range) Select(index int, selecting bool) Range {
	if index < 0 {
		return r
	}
	if selecting {
		return r.add(index)
	}
	return r.remove(index)
}

func (r Range) add(index int) Range {
	switch {
	case !r.valid:
		return Single(index)
	case r.Contains(index):
		return r
	case index == r.min-1:
		return Span(index, r.max)
	case index == r.max+1:
		return Span(r.min, index)
	default:
		// Not adjacent: start a fresh run.
		return Single(index)
	}
}

func (r Range) remove(index int) Range {
	if !r.valid {
		return r
	}
	switch {
	case r.min == r.max && index == r.min:
		return Range{}
	case index == r.min:
		return Span(r.min+1, r.max)
	case index == r.max:
		return Span(r.min, r.max-1)
	default:
		// Interior or outside the run: deselecting would split it.
		return r
	}
}

// Clip drops indices at or beyond rowCount, for use after rows were
// removed from the sequence.
func (r Range) Clip(rowCount int) Range {
	if !r.valid {
		return r
	}
	if r.min >= rowCount {
		return Range{}
	}
	if r.max >= rowCount {
		return Span(r.min, rowCount-1)
	}
	return r
}

// String returns a compact representation such as "[2..4]" or "[]".
func (r Range) String() string {
	if !r.valid {
		return "[]"
	}
	if r.min == r.max {
		return fmt.Sprintf("[%d]", r.min)
	}
	return fmt.Sprintf("[%d..%d]", r.min, r.max)
}

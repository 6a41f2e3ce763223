package drag

import (
	"fmt"

	"github.com/dshills/trilex/internal/selection"
)

// Preview is the provisional move shown while dragging: the block starting
// at From would be inserted before row To if the drag ended now.
// A Preview without a target means nothing would move.
type Preview struct {
	From      int
	To        int
	HasTarget bool
	Invalid   bool
}

// NoPreview returns the cleared preview.
func NoPreview() Preview {
	return Preview{From: -1, To: -1}
}

// NewPreview returns the preview for moving sel to slot to.
func NewPreview(sel selection.Range, to int) Preview {
	if sel.IsEmpty() || to < 0 {
		return NoPreview()
	}
	return Preview{
		From:      sel.Min(),
		To:        to,
		HasTarget: true,
		Invalid:   InInvalidZone(sel, to),
	}
}

// Target returns the insertion slot, if any.
func (p Preview) Target() (int, bool) {
	if !p.HasTarget {
		return -1, false
	}
	return p.To, true
}

// Committable reports whether releasing now would move rows.
func (p Preview) Committable() bool {
	return p.HasTarget && !p.Invalid
}

// Equal reports whether two previews describe the same move.
func (p Preview) Equal(other Preview) bool {
	if !p.HasTarget || !other.HasTarget {
		return p.HasTarget == other.HasTarget
	}
	return p == other
}

// String returns a compact form such as "2->5", "2->3!" or "-".
func (p Preview) String() string {
	if !p.HasTarget {
		return "-"
	}
	if p.Invalid {
		return fmt.Sprintf("%d->%d!", p.From, p.To)
	}
	return fmt.Sprintf("%d->%d", p.From, p.To)
}

// InInvalidZone reports whether inserting sel before slot to would leave
// every row where it is: min <= to <= max+1.
func InInvalidZone(sel selection.Range, to int) bool {
	lo, hi, ok := sel.Bounds()
	if !ok {
		return true
	}
	return to >= lo && to <= hi+1
}

// Role describes how a row takes part in a pending move.
type Role uint8

const (
	// RoleNone rows stay where they are.
	RoleNone Role = iota
	// RoleBlock rows are part of the dragged block.
	RoleBlock
	// RoleDisplaced rows make room for the block.
	RoleDisplaced
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleBlock:
		return "block"
	case RoleDisplaced:
		return "displaced"
	default:
		return "none"
	}
}

// RowHint is the visual state of one row during a drag.
type RowHint struct {
	Role Role

	// Invalid marks block rows while the preview targets the invalid zone.
	Invalid bool

	// Shift is how many row slots the row moves if the drag ends now.
	// Negative is up.
	Shift int

	// Offset is Shift expressed in rail units, 0 when the rows it depends
	// on were not measured.
	Offset float64

	// InsertBefore marks the row the insertion line is drawn above.
	InsertBefore bool
}

// PreviewState is the per-row projection of a preview.
type PreviewState struct {
	Rows []RowHint

	// InsertAfterLast is set when the block would be appended.
	InsertAfterLast bool

	// Active is false when there is no preview to show.
	Active bool

	// Invalid mirrors the preview's invalid flag.
	Invalid bool
}

// Hint returns the hint for row i, or the zero hint when out of range.
func (s PreviewState) Hint(i int) RowHint {
	if i < 0 || i >= len(s.Rows) {
		return RowHint{}
	}
	return s.Rows[i]
}

// ComputePreviewState derives how every row should be drawn for preview p.
// It has no side effects; renderers draw the result and keep no state of
// their own.
func ComputePreviewState(l Layout, sel selection.Range, p Preview) PreviewState {
	state := PreviewState{Rows: make([]RowHint, l.Count())}
	lo, hi, ok := sel.Bounds()
	to, hasTarget := p.Target()
	if !ok || !hasTarget || hi >= l.Count() || to > l.Count() {
		return state
	}

	state.Active = true
	for i := lo; i <= hi; i++ {
		state.Rows[i].Role = RoleBlock
	}

	if InInvalidZone(sel, to) {
		state.Invalid = true
		for i := lo; i <= hi; i++ {
			state.Rows[i].Invalid = true
		}
		return state
	}

	if to == l.Count() {
		state.InsertAfterLast = true
	} else {
		state.Rows[to].InsertBefore = true
	}

	k := hi - lo + 1
	_, blockHeight, blockOK := l.Block(sel)

	var (
		displacedFrom, displacedTo int
		blockShift, displacedShift int
		sign                       float64
	)
	if to > hi+1 {
		// Moving down: rows between the block and the target rise.
		displacedFrom, displacedTo = hi+1, to
		blockShift, displacedShift = to-hi-1, -k
		sign = 1
	} else {
		// Moving up: rows from the target to the block sink.
		displacedFrom, displacedTo = to, lo
		blockShift, displacedShift = to-lo, k
		sign = -1
	}

	passed, passedOK := l.height(displacedFrom, displacedTo)
	for i := lo; i <= hi; i++ {
		state.Rows[i].Shift = blockShift
		if passedOK {
			state.Rows[i].Offset = sign * passed
		}
	}
	for i := displacedFrom; i < displacedTo; i++ {
		state.Rows[i].Role = RoleDisplaced
		state.Rows[i].Shift = displacedShift
		if blockOK {
			state.Rows[i].Offset = -sign * blockHeight
		}
	}
	return state
}

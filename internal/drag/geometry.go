package drag

import (
	"sort"

	"github.com/dshills/trilex/internal/selection"
)

// RowGeometry is the measured vertical extent of one on-screen row in
// drag-rail coordinates. The rail starts at 0 at the top of the first row.
type RowGeometry struct {
	Index  int
	Top    float64
	Height float64
}

// Bottom returns the y coordinate just below the row.
func (g RowGeometry) Bottom() float64 {
	return g.Top + g.Height
}

// Center returns the vertical midpoint of the row.
func (g RowGeometry) Center() float64 {
	return g.Top + g.Height/2
}

// Layout is the geometry of every row for one render pass.
// Rows that are not mounted (scrolled out, being rebuilt) are holes.
type Layout struct {
	count int
	rows  map[int]RowGeometry
}

// NewLayout builds a layout for rowCount rows from the measured rows.
// Measurements with an index outside [0, rowCount) are ignored.
func NewLayout(rowCount int, rows []RowGeometry) Layout {
	l := Layout{count: max(rowCount, 0), rows: make(map[int]RowGeometry, len(rows))}
	for _, g := range rows {
		if g.Index >= 0 && g.Index < l.count {
			l.rows[g.Index] = g
		}
	}
	return l
}

// Stack builds a complete layout of rows laid out back to back from 0,
// one row per height.
func Stack(heights ...float64) Layout {
	rows := make([]RowGeometry, len(heights))
	top := 0.0
	for i, h := range heights {
		rows[i] = RowGeometry{Index: i, Top: top, Height: h}
		top += h
	}
	return NewLayout(len(heights), rows)
}

// Count returns the number of rows the layout describes, including holes.
func (l Layout) Count() int {
	return l.count
}

// Row returns the geometry of row i.
func (l Layout) Row(i int) (RowGeometry, bool) {
	g, ok := l.rows[i]
	return g, ok
}

// Complete reports whether every row has been measured.
func (l Layout) Complete() bool {
	return len(l.rows) == l.count
}

// Rows returns the measured rows ordered by index.
func (l Layout) Rows() []RowGeometry {
	out := make([]RowGeometry, 0, len(l.rows))
	for _, g := range l.rows {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Block returns the top and total height of the selected rows.
func (l Layout) Block(sel selection.Range) (top, height float64, ok bool) {
	lo, hi, ok := sel.Bounds()
	if !ok {
		return 0, 0, false
	}
	first, ok1 := l.Row(lo)
	last, ok2 := l.Row(hi)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return first.Top, last.Bottom() - first.Top, true
}

// height sums the heights of rows [from, to). It fails on a hole.
func (l Layout) height(from, to int) (float64, bool) {
	total := 0.0
	for i := from; i < to; i++ {
		g, ok := l.Row(i)
		if !ok {
			return 0, false
		}
		total += g.Height
	}
	return total, true
}

// Measurer supplies the live row layout. It is the only piece of the
// reorder mechanism that knows about the rendering surface.
type Measurer interface {
	MeasureRows() Layout
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func() Layout

// MeasureRows implements Measurer.
func (f MeasureFunc) MeasureRows() Layout {
	return f()
}

// TargetIndex returns the insertion slot in [0, Count] for a pointer at
// pointerY: the first row whose center is at or below the pointer, or
// Count when the pointer is below every center. Gaps between rows resolve
// to the following row, so the result does not jitter between rows.
//
// ok is false when any row is missing from the layout; the caller should
// keep whatever target it had before.
func TargetIndex(l Layout, pointerY float64) (int, bool) {
	if !l.Complete() {
		return 0, false
	}
	for i := 0; i < l.count; i++ {
		if l.rows[i].Center() >= pointerY {
			return i, true
		}
	}
	return l.count, true
}

// OffsetBounds returns the allowed range of the visual drag offset of the
// selected block: it may rise until its top meets the top of the rail and
// sink until its bottom meets the bottom of the last row.
func OffsetBounds(l Layout, sel selection.Range) (lo, hi float64, ok bool) {
	top, height, ok := l.Block(sel)
	if !ok || l.count == 0 {
		return 0, 0, false
	}
	last, ok := l.Row(l.count - 1)
	if !ok {
		return 0, 0, false
	}
	return -top, last.Bottom() - height - top, true
}

// ClampOffset limits offset to [lo, hi].
func ClampOffset(offset, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(offset, lo), hi)
}

// Package grid lays out and draws the dictionary as a table of rows.
//
// Rows wrap their text, so a row may span several terminal lines. The
// grid works in two coordinate spaces: screen coordinates, as reported
// by the terminal, and content coordinates, where line 0 is the top of
// the first row regardless of scrolling. Drag geometry is reported in
// content coordinates so a drag keeps working while the list scrolls.
package grid

import (
	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/drag"
	"github.com/dshills/trilex/internal/renderer/core"
)

// Zone identifies the part of the grid under a screen position.
type Zone uint8

const (
	ZoneNone Zone = iota
	ZoneHeader
	ZoneHandle
	ZoneCheck
	ZoneNumber
	ZoneCell
	ZoneVerify
)

// Fixed column widths.
const (
	handleWidth = 2
	checkWidth  = 4
	numberWidth = 5
	verifyWidth = 3
	minCell     = 6
)

// Column is one laid-out column.
type Column struct {
	Title string
	Zone  Zone
	Field dictionary.Field
	X     int
	Width int
}

// Hit is the result of a hit test.
type Hit struct {
	Zone  Zone
	Row   int
	Field dictionary.Field
}

// Options configures a grid.
type Options struct {
	// MaxLines caps how many lines a wrapped row may take.
	MaxLines int

	// Fields are the text columns to show, in order.
	Fields []dictionary.Field
}

// DefaultOptions returns the default grid options.
func DefaultOptions() Options {
	return Options{
		MaxLines: 3,
		Fields:   dictionary.Fields,
	}
}

// Grid is the dictionary table.
type Grid struct {
	opts  Options
	theme Theme

	rect    core.ScreenRect
	columns []Column

	rows    dictionary.Sequence
	tops    []int
	heights []int
	total   int

	scroll int
}

// New creates a grid.
func New(opts Options, theme Theme) *Grid {
	if opts.MaxLines < 1 {
		opts.MaxLines = 1
	}
	if len(opts.Fields) == 0 {
		opts.Fields = dictionary.Fields
	}
	return &Grid{opts: opts, theme: theme}
}

// SetRect places the grid on screen and re-lays out columns and rows.
func (g *Grid) SetRect(rect core.ScreenRect) {
	g.rect = rect
	g.layoutColumns()
	g.measure()
}

// Rect returns the grid's screen area.
func (g *Grid) Rect() core.ScreenRect {
	return g.rect
}

// SetRows replaces the rows and recomputes their heights.
func (g *Grid) SetRows(rows dictionary.Sequence) {
	g.rows = rows
	g.measure()
}

// Columns returns the current column layout.
func (g *Grid) Columns() []Column {
	return g.columns
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return len(g.rows)
}

func (g *Grid) layoutColumns() {
	fixed := []Column{
		{Title: "", Zone: ZoneHandle, Width: handleWidth},
		{Title: "sel", Zone: ZoneCheck, Width: checkWidth},
		{Title: "#", Zone: ZoneNumber, Width: numberWidth},
	}
	textCols := len(g.opts.Fields)
	avail := g.rect.Width() - handleWidth - checkWidth - numberWidth - verifyWidth
	cellW := minCell
	extra := 0
	if textCols > 0 && avail/textCols > minCell {
		cellW = avail / textCols
		extra = avail - cellW*textCols
	}

	cols := make([]Column, 0, len(fixed)+textCols+1)
	x := g.rect.Left
	for _, c := range fixed {
		c.X = x
		x += c.Width
		cols = append(cols, c)
	}
	for i, f := range g.opts.Fields {
		w := cellW
		if i == textCols-1 {
			w += extra
		}
		cols = append(cols, Column{Title: f.String(), Zone: ZoneCell, Field: f, X: x, Width: w})
		x += w
	}
	cols = append(cols, Column{Title: "ok", Zone: ZoneVerify, X: x, Width: verifyWidth})
	g.columns = cols
}

// measure recomputes row heights from the wrapped cell text.
func (g *Grid) measure() {
	g.tops = make([]int, len(g.rows))
	g.heights = make([]int, len(g.rows))
	top := 0
	for i, r := range g.rows {
		h := 1
		for _, c := range g.columns {
			if c.Zone != ZoneCell {
				continue
			}
			h = max(h, len(Wrap(r.Get(c.Field), c.Width-1)))
		}
		h = min(h, g.opts.MaxLines)
		g.tops[i] = top
		g.heights[i] = h
		top += h
	}
	g.total = top
	g.clampScroll()
}

// MeasureRows reports row geometry in content coordinates. It implements
// drag.Measurer.
func (g *Grid) MeasureRows() drag.Layout {
	geo := make([]drag.RowGeometry, len(g.rows))
	for i := range g.rows {
		geo[i] = drag.RowGeometry{Index: i, Top: float64(g.tops[i]), Height: float64(g.heights[i])}
	}
	return drag.NewLayout(len(g.rows), geo)
}

// bodyTop is the first screen line below the header.
func (g *Grid) bodyTop() int {
	return g.rect.Top + 1
}

// BodyHeight returns the number of lines available for rows.
func (g *Grid) BodyHeight() int {
	return max(g.rect.Height()-1, 0)
}

// ContentY converts a screen line to content coordinates, at the middle
// of the line.
func (g *Grid) ContentY(screenY int) float64 {
	return float64(screenY-g.bodyTop()+g.scroll) + 0.5
}

// ScreenY converts a content line to a screen line.
func (g *Grid) ScreenY(contentY int) int {
	return contentY - g.scroll + g.bodyTop()
}

// Scroll returns the content line at the top of the body.
func (g *Grid) Scroll() int {
	return g.scroll
}

// ScrollBy scrolls by n lines, negative is up.
func (g *Grid) ScrollBy(n int) {
	g.scroll += n
	g.clampScroll()
}

// EnsureVisible scrolls so that row i is fully on screen where possible.
func (g *Grid) EnsureVisible(i int) {
	if i < 0 || i >= len(g.rows) {
		return
	}
	top, bottom := g.tops[i], g.tops[i]+g.heights[i]
	switch {
	case top < g.scroll:
		g.scroll = top
	case bottom > g.scroll+g.BodyHeight():
		g.scroll = bottom - g.BodyHeight()
	}
	g.clampScroll()
}

func (g *Grid) clampScroll() {
	limit := max(g.total-g.BodyHeight(), 0)
	g.scroll = min(max(g.scroll, 0), limit)
}

// RowAt returns the row covering content line y, or -1.
func (g *Grid) RowAt(contentY int) int {
	for i := range g.rows {
		if contentY >= g.tops[i] && contentY < g.tops[i]+g.heights[i] {
			return i
		}
	}
	return -1
}

// HitTest reports what lies under screen position (x, y).
func (g *Grid) HitTest(x, y int) Hit {
	if !g.rect.Contains(x, y) {
		return Hit{Zone: ZoneNone, Row: -1}
	}
	var col *Column
	for i := range g.columns {
		c := &g.columns[i]
		if x >= c.X && x < c.X+c.Width {
			col = c
			break
		}
	}
	if y < g.bodyTop() {
		return Hit{Zone: ZoneHeader, Row: -1}
	}
	row := g.RowAt(y - g.bodyTop() + g.scroll)
	if col == nil || row < 0 {
		return Hit{Zone: ZoneNone, Row: row}
	}
	return Hit{Zone: col.Zone, Row: row, Field: col.Field}
}

package grid

import (
	"fmt"
	"math"

	"github.com/rivo/uniseg"

	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/drag"
	"github.com/dshills/trilex/internal/renderer/backend"
	"github.com/dshills/trilex/internal/renderer/core"
	"github.com/dshills/trilex/internal/selection"
)

// Glyphs used by the grid.
const (
	glyphHandle   = '⣿'
	glyphMarker   = '▶'
	glyphVerified = '✓'
	glyphBusy     = '…'
)

// Cursor is the focused cell.
type Cursor struct {
	Row   int
	Field dictionary.Field
}

// View is everything besides the rows that affects drawing.
type View struct {
	Selection  selection.Range
	Preview    drag.PreviewState
	DragOffset float64
	Dragging   bool

	Cursor   Cursor
	Editing  bool
	EditText string

	// Busy marks rows with a translation in flight.
	Busy map[int]bool
}

// Draw renders the header and the visible rows.
func (g *Grid) Draw(b backend.Backend, v View) {
	body := core.NewScreenRect(g.bodyTop(), g.rect.Left, g.rect.Bottom, g.rect.Right)
	b.Fill(body, core.Cell{Rune: ' ', Width: 1, Style: g.theme.Row})
	g.drawHeader(b)

	// Block rows are drawn last so they stay on top of rows they pass.
	var block []int
	for i := range g.rows {
		if v.Preview.Hint(i).Role == drag.RoleBlock {
			block = append(block, i)
			continue
		}
		g.drawRow(b, i, v)
	}
	for _, i := range block {
		g.drawRow(b, i, v)
	}

	if v.Dragging {
		g.drawHandle(b, v)
	}
}

func (g *Grid) drawHeader(b backend.Backend) {
	y := g.rect.Top
	b.Fill(core.RectFromSize(y, g.rect.Left, 1, g.rect.Width()), core.Cell{Rune: ' ', Width: 1, Style: g.theme.Header})
	for _, c := range g.columns {
		g.putString(b, c.X, y, c.Width-1, c.Title, g.theme.Header)
	}
}

func (g *Grid) rowStyle(i int, v View) core.Style {
	hint := v.Preview.Hint(i)
	switch {
	case hint.Role == drag.RoleBlock && hint.Invalid:
		return g.theme.Invalid
	case hint.Role == drag.RoleBlock:
		return g.theme.Block
	case hint.Role == drag.RoleDisplaced:
		return g.theme.Displaced
	case v.Selection.Contains(i):
		return g.theme.Selected
	case v.Busy[i]:
		return g.theme.Busy
	case i%2 == 1:
		return g.theme.RowAlt
	}
	return g.theme.Row
}

func (g *Grid) drawRow(b backend.Backend, i int, v View) {
	hint := v.Preview.Hint(i)
	top := g.tops[i] + int(math.Round(hint.Offset))
	h := g.heights[i]
	row := g.rows[i]
	style := g.rowStyle(i, v)

	for line := 0; line < h; line++ {
		y := g.ScreenY(top + line)
		if y < g.bodyTop() || y >= g.rect.Bottom {
			continue
		}
		b.Fill(core.RectFromSize(y, g.rect.Left, 1, g.rect.Width()), core.Cell{Rune: ' ', Width: 1, Style: style})

		for _, c := range g.columns {
			switch c.Zone {
			case ZoneHandle:
				if v.Selection.Contains(i) && !v.Dragging {
					b.SetCell(c.X, y, core.NewStyledCell(glyphHandle, g.theme.Handle.WithBackground(style.Background)))
				}
				if line == 0 && hint.Role == drag.RoleBlock && !hint.Invalid && hint.Shift != 0 {
					b.SetCell(c.X+1, y, core.NewStyledCell(glyphMarker, g.theme.Marker.WithBackground(style.Background)))
				}
			case ZoneCheck:
				if line == 0 {
					box := "[ ]"
					if v.Selection.Contains(i) {
						box = "[x]"
					}
					g.putString(b, c.X, y, c.Width, box, style)
				}
			case ZoneNumber:
				if line == 0 {
					num := fmt.Sprintf("%*d", c.Width-1, i+1)
					if v.Busy[i] {
						num = fmt.Sprintf("%*c", c.Width-1, glyphBusy)
					}
					g.putString(b, c.X, y, c.Width-1, num, style)
				}
			case ZoneCell:
				g.drawCell(b, c, i, line, y, row, style, v)
			case ZoneVerify:
				if line == 0 && row.Verified {
					b.SetCell(c.X+1, y, core.NewStyledCell(glyphVerified, g.theme.Verified.WithBackground(style.Background)))
				}
			}
		}
	}
}

func (g *Grid) drawCell(b backend.Backend, c Column, i, line, y int, row dictionary.Row, style core.Style, v View) {
	focused := v.Cursor.Row == i && v.Cursor.Field == c.Field
	text := row.Get(c.Field)
	if focused && v.Editing {
		text = v.EditText
	}
	lines := Wrap(text, c.Width-1)
	h := g.heights[i]
	if line >= len(lines) || (line == 0 && lines[0] == "") {
		if focused && line == 0 {
			b.SetCell(c.X, y, core.Cell{Rune: ' ', Width: 1, Style: g.theme.Cursor})
			if v.Editing {
				b.ShowCursor(c.X, y)
			}
		}
		return
	}
	s := lines[line]
	if line == h-1 && len(lines) > h {
		s = Truncate(s+" "+lines[line+1], c.Width-1)
	}
	cellStyle := style
	if focused {
		cellStyle = g.theme.Cursor
		if v.Editing {
			cellStyle = style.WithAttributes(core.AttrUnderline)
		}
	}
	w := g.putString(b, c.X, y, c.Width-1, s, cellStyle)
	if focused && v.Editing && line == min(len(lines), h)-1 {
		b.ShowCursor(c.X+w, y)
	}
}

// drawHandle draws the drag rail next to the selected block, displaced by
// the current drag offset.
func (g *Grid) drawHandle(b backend.Backend, v View) {
	lo, hi, ok := v.Selection.Bounds()
	if !ok || hi >= len(g.rows) {
		return
	}
	top := g.tops[lo] + int(math.Round(v.DragOffset))
	height := g.tops[hi] + g.heights[hi] - g.tops[lo]
	x := g.columns[0].X
	for line := 0; line < height; line++ {
		y := g.ScreenY(top + line)
		if y < g.bodyTop() || y >= g.rect.Bottom {
			continue
		}
		b.SetCell(x, y, core.NewStyledCell(glyphHandle, g.theme.Handle))
	}
}

// putString draws s from x, clipped to width cells, and returns the width
// drawn. Wide runes are followed by a zero-width continuation cell.
func (g *Grid) putString(b backend.Backend, x, y, width int, s string, style core.Style) int {
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if used+w > width {
			break
		}
		runes := gr.Runes()
		b.SetCell(x+used, y, core.Cell{Rune: runes[0], Width: w, Style: style})
		for k := 1; k < w; k++ {
			b.SetCell(x+used+k, y, core.Cell{Rune: 0, Width: 0, Style: style})
		}
		used += w
	}
	return used
}

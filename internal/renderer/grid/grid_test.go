package grid

import (
	"slices"
	"strings"
	"testing"

	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/drag"
	"github.com/dshills/trilex/internal/renderer/backend"
	"github.com/dshills/trilex/internal/renderer/core"
	"github.com/dshills/trilex/internal/selection"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 5, []string{""}},
		{"fits", "abc", 5, []string{"abc"}},
		{"word break", "hello world", 5, []string{"hello", "world"}},
		{"carry partial word", "ab cd", 4, []string{"ab", "cd"}},
		{"hard break", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"hangul is wide", "한국어", 4, []string{"한국", "어"}},
		{"newline", "a\nb", 5, []string{"a", "b"}},
		{"zero width", "abc", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.text, tt.width); !slices.Equal(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abc…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("abc", 4); got != "abc" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("한국어", 4); got != "한…" {
		t.Errorf("Truncate hangul = %q", got)
	}
}

func TestThemeColors(t *testing.T) {
	if _, err := NewTheme(ThemeColors{Accent: "#0f0"}); err != nil {
		t.Errorf("short hex rejected: %v", err)
	}
	if _, err := NewTheme(ThemeColors{Accent: "blue"}); err == nil {
		t.Error("invalid colour accepted")
	}
	th := DefaultTheme()
	if th.Block.Background.Equals(th.Row.Background) {
		t.Error("block rows should stand out from plain rows")
	}
	if !th.Invalid.Attributes.Has(core.AttrStrikethrough) {
		t.Error("invalid rows should be struck through")
	}
}

func rows(texts ...string) dictionary.Sequence {
	s := make(dictionary.Sequence, len(texts))
	for i, txt := range texts {
		s[i] = dictionary.NewRow().With(dictionary.FieldKorean, txt)
	}
	return s
}

func newGrid(width, height int, seq dictionary.Sequence) *Grid {
	opts := DefaultOptions()
	opts.Fields = []dictionary.Field{dictionary.FieldKorean, dictionary.FieldEnglish}
	g := New(opts, DefaultTheme())
	g.SetRect(core.RectFromSize(0, 0, height, width))
	g.SetRows(seq)
	return g
}

func TestColumnsFillWidth(t *testing.T) {
	g := newGrid(60, 10, rows("a"))
	cols := g.Columns()
	last := cols[len(cols)-1]
	if last.X+last.Width != 60 {
		t.Errorf("columns end at %d, want 60", last.X+last.Width)
	}
	if cols[0].Zone != ZoneHandle || last.Zone != ZoneVerify {
		t.Errorf("unexpected column order: %+v", cols)
	}
}

func TestMeasureRowsWraps(t *testing.T) {
	// Text columns are (60-14)/2 = 23 wide, so 22 cells of text.
	long := strings.Repeat("가", 15) // 30 cells, two lines
	g := newGrid(60, 10, rows("a", long, "b"))

	l := g.MeasureRows()
	if !l.Complete() || l.Count() != 3 {
		t.Fatalf("layout count=%d complete=%v", l.Count(), l.Complete())
	}
	r1, _ := l.Row(1)
	r2, _ := l.Row(2)
	if r1.Top != 1 || r1.Height != 2 || r2.Top != 3 {
		t.Errorf("row1=%+v row2=%+v", r1, r2)
	}
}

func TestMaxLines(t *testing.T) {
	long := strings.Repeat("word ", 40)
	g := newGrid(40, 10, rows(long))
	r, _ := g.MeasureRows().Row(0)
	if r.Height != 3 {
		t.Errorf("height = %v, want capped at 3", r.Height)
	}
}

func TestHitTest(t *testing.T) {
	g := newGrid(60, 10, rows("a", "b", "c"))

	if h := g.HitTest(5, 0); h.Zone != ZoneHeader {
		t.Errorf("header hit = %+v", h)
	}
	if h := g.HitTest(0, 2); h.Zone != ZoneHandle || h.Row != 1 {
		t.Errorf("handle hit = %+v", h)
	}
	if h := g.HitTest(3, 1); h.Zone != ZoneCheck || h.Row != 0 {
		t.Errorf("check hit = %+v", h)
	}
	if h := g.HitTest(20, 3); h.Zone != ZoneCell || h.Field != dictionary.FieldKorean || h.Row != 2 {
		t.Errorf("cell hit = %+v", h)
	}
	if h := g.HitTest(20, 8); h.Zone != ZoneNone || h.Row != -1 {
		t.Errorf("below rows hit = %+v", h)
	}
	if h := g.HitTest(99, 1); h.Zone != ZoneNone {
		t.Errorf("outside hit = %+v", h)
	}
}

func TestScrollAndContentY(t *testing.T) {
	seq := rows("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")
	g := newGrid(60, 5, seq) // four body lines

	if g.ContentY(1) != 0.5 {
		t.Errorf("ContentY(1) = %v", g.ContentY(1))
	}
	g.EnsureVisible(9)
	if g.Scroll() != 6 {
		t.Errorf("scroll = %d, want 6", g.Scroll())
	}
	if g.ContentY(1) != 6.5 {
		t.Errorf("ContentY after scroll = %v", g.ContentY(1))
	}
	if h := g.HitTest(20, 1); h.Row != 6 {
		t.Errorf("top visible row = %d, want 6", h.Row)
	}

	g.ScrollBy(-100)
	if g.Scroll() != 0 {
		t.Errorf("scroll = %d, want clamp to 0", g.Scroll())
	}
	g.ScrollBy(100)
	if g.Scroll() != 6 {
		t.Errorf("scroll = %d, want clamp to 6", g.Scroll())
	}
}

func TestGridIsMeasurer(t *testing.T) {
	var _ drag.Measurer = (*Grid)(nil)
}

func TestDrawRows(t *testing.T) {
	seq := rows("사과", "배")
	seq, _ = seq.SetVerified(1, true)
	g := newGrid(60, 5, seq)
	b := backend.NewNullBackend(60, 5)
	_ = b.Init()

	g.Draw(b, View{Selection: selection.Single(0), Cursor: Cursor{Row: -1}})

	header := b.Row(0)
	if !strings.Contains(header, "korean") || !strings.Contains(header, "english") {
		t.Errorf("header = %q", header)
	}
	row0 := b.Row(1)
	if !strings.Contains(row0, "[x]") || !strings.Contains(row0, "사과") || !strings.ContainsRune(row0, glyphHandle) {
		t.Errorf("row 0 = %q", row0)
	}
	row1 := b.Row(2)
	if !strings.Contains(row1, "[ ]") || !strings.ContainsRune(row1, glyphVerified) {
		t.Errorf("row 1 = %q", row1)
	}
	// Wide runes leave a continuation cell.
	x := g.Columns()[3].X
	if c := b.GetCell(x+1, 1); c.Rune != 0 {
		t.Errorf("continuation cell = %q", c.Rune)
	}
}

func TestDrawPreviewProjection(t *testing.T) {
	seq := rows("A", "B", "C", "D")
	g := newGrid(60, 6, seq)
	b := backend.NewNullBackend(60, 6)
	_ = b.Init()

	sel := selection.Single(0)
	state := drag.ComputePreviewState(g.MeasureRows(), sel, drag.NewPreview(sel, 3))
	g.Draw(b, View{Selection: sel, Preview: state, Dragging: true, Cursor: Cursor{Row: -1}})

	// A lands after C: B and C rise one line.
	want := []string{"B", "C", "A", "D"}
	x := g.Columns()[3].X
	for i, w := range want {
		if c := b.GetCell(x, i+1); string(c.Rune) != w {
			t.Errorf("line %d = %q, want %q", i+1, c.Rune, w)
		}
	}
	if c := b.GetCell(1, 3); c.Rune != glyphMarker {
		t.Errorf("marker cell = %q", c.Rune)
	}
	if c := b.GetCell(x, 3); !c.Style.Equals(g.theme.Block) {
		t.Error("moved row not drawn with block style")
	}
}

func TestDrawInvalidPreview(t *testing.T) {
	seq := rows("A", "B", "C")
	g := newGrid(60, 5, seq)
	b := backend.NewNullBackend(60, 5)
	_ = b.Init()

	sel := selection.Single(1)
	state := drag.ComputePreviewState(g.MeasureRows(), sel, drag.NewPreview(sel, 2))
	g.Draw(b, View{Selection: sel, Preview: state, Cursor: Cursor{Row: -1}})

	x := g.Columns()[3].X
	if c := b.GetCell(x, 2); c.Rune != 'B' || !c.Style.Equals(g.theme.Invalid) {
		t.Errorf("invalid block cell = %q %+v", c.Rune, c.Style)
	}
}

func TestDrawEditingShowsCursor(t *testing.T) {
	g := newGrid(60, 5, rows("A"))
	b := backend.NewNullBackend(60, 5)
	_ = b.Init()

	g.Draw(b, View{Cursor: Cursor{Row: 0, Field: dictionary.FieldEnglish}, Editing: true, EditText: "app"})
	x := g.Columns()[4].X
	cx, cy, visible := b.CursorPosition()
	if !visible || cx != x+3 || cy != 1 {
		t.Errorf("cursor at (%d,%d) visible=%v, want (%d,1)", cx, cy, visible, x+3)
	}
}

package drag

import (
	"testing"

	"github.com/dshills/trilex/internal/selection"
)

func TestRowGeometry(t *testing.T) {
	g := RowGeometry{Index: 2, Top: 4, Height: 2}
	if g.Bottom() != 6 {
		t.Errorf("Bottom = %v, want 6", g.Bottom())
	}
	if g.Center() != 5 {
		t.Errorf("Center = %v, want 5", g.Center())
	}
}

func TestStack(t *testing.T) {
	l := Stack(1, 2, 1)
	if l.Count() != 3 || !l.Complete() {
		t.Fatalf("Count=%d Complete=%v", l.Count(), l.Complete())
	}
	g, ok := l.Row(2)
	if !ok || g.Top != 3 || g.Height != 1 {
		t.Errorf("row 2 = %+v, %v", g, ok)
	}
	rows := l.Rows()
	for i, r := range rows {
		if r.Index != i {
			t.Errorf("Rows()[%d].Index = %d", i, r.Index)
		}
	}
}

func TestNewLayoutIgnoresOutOfRange(t *testing.T) {
	l := NewLayout(2, []RowGeometry{
		{Index: 0, Top: 0, Height: 1},
		{Index: 5, Top: 5, Height: 1},
		{Index: -1, Top: 0, Height: 1},
	})
	if l.Complete() {
		t.Error("layout with a hole reported complete")
	}
	if _, ok := l.Row(5); ok {
		t.Error("out-of-range row kept")
	}
}

func TestTargetIndex(t *testing.T) {
	// Rows of height 2 at 0, 2, 4, 6; centers 1, 3, 5, 7.
	l := Stack(2, 2, 2, 2)

	tests := []struct {
		name string
		y    float64
		want int
	}{
		{"above first row", -10, 0},
		{"upper half of first row", 0.5, 0},
		{"on first center", 1, 0},
		{"lower half of first row", 1.5, 1},
		{"between rows", 2, 1},
		{"lower half of last row", 7.5, 4},
		{"below everything", 100, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TargetIndex(l, tt.y)
			if !ok {
				t.Fatal("TargetIndex not ok on complete layout")
			}
			if got != tt.want {
				t.Errorf("TargetIndex(%v) = %d, want %d", tt.y, got, tt.want)
			}
		})
	}
}

func TestTargetIndexVariableHeights(t *testing.T) {
	// A wrapped row of height 3 between two single-line rows.
	l := Stack(1, 3, 1)
	if got, _ := TargetIndex(l, 2.4); got != 1 {
		t.Errorf("upper part of tall row = %d, want 1", got)
	}
	if got, _ := TargetIndex(l, 2.6); got != 2 {
		t.Errorf("lower part of tall row = %d, want 2", got)
	}
}

func TestTargetIndexEmptyLayout(t *testing.T) {
	got, ok := TargetIndex(Stack(), 3)
	if !ok || got != 0 {
		t.Errorf("empty layout = %d, %v; want 0, true", got, ok)
	}
}

func TestTargetIndexMissingGeometry(t *testing.T) {
	l := NewLayout(3, []RowGeometry{{Index: 0, Height: 1}, {Index: 2, Top: 2, Height: 1}})
	if _, ok := TargetIndex(l, 1); ok {
		t.Error("TargetIndex should fail when a row is unmeasured")
	}
}

func TestOffsetBounds(t *testing.T) {
	l := Stack(1, 1, 1, 1, 1)

	tests := []struct {
		name   string
		sel    selection.Range
		lo, hi float64
	}{
		{"middle single", selection.Single(2), -2, 2},
		{"top block", selection.Span(0, 1), 0, 3},
		{"bottom block", selection.Span(3, 4), -3, 0},
		{"whole list", selection.Span(0, 4), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := OffsetBounds(l, tt.sel)
			if !ok {
				t.Fatal("OffsetBounds not ok")
			}
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("bounds = [%v, %v], want [%v, %v]", lo, hi, tt.lo, tt.hi)
			}
		})
	}

	if _, _, ok := OffsetBounds(l, selection.Empty()); ok {
		t.Error("empty selection should have no bounds")
	}
}

func TestClampOffset(t *testing.T) {
	tests := []struct {
		offset, lo, hi, want float64
	}{
		{0, -2, 2, 0},
		{-5, -2, 2, -2},
		{5, -2, 2, 2},
		{1, 0, -1, 0},
	}
	for _, tt := range tests {
		if got := ClampOffset(tt.offset, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ClampOffset(%v, %v, %v) = %v, want %v", tt.offset, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestMeasureFunc(t *testing.T) {
	var m Measurer = MeasureFunc(func() Layout { return Stack(1, 1) })
	if m.MeasureRows().Count() != 2 {
		t.Error("MeasureFunc did not return its layout")
	}
}

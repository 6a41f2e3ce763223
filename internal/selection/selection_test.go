package selection

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func TestEmpty(t *testing.T) {
	r := Empty()
	if !r.IsEmpty() {
		t.Fatal("Empty() should be empty")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
	if r.Min() != -1 || r.Max() != -1 {
		t.Errorf("Min/Max = %d/%d, want -1/-1", r.Min(), r.Max())
	}
	if _, _, ok := r.Bounds(); ok {
		t.Error("Bounds should report !ok")
	}
	if r.Indices() != nil {
		t.Error("Indices of empty should be nil")
	}
	var zero Range
	if !zero.Equal(r) {
		t.Error("zero value should equal Empty()")
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
		want   string
	}{
		{"ordered", 2, 4, "[2..4]"},
		{"reversed", 4, 2, "[2..4]"},
		{"single", 3, 3, "[3]"},
		{"negative", -1, 2, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Span(tt.lo, tt.hi).String(); got != tt.want {
				t.Errorf("Span(%d, %d) = %s, want %s", tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestSelectFirst(t *testing.T) {
	r := Empty().Select(3, true)
	if !r.Equal(Single(3)) {
		t.Errorf("got %s, want [3]", r)
	}
}

func TestSelectAdjacentExtends(t *testing.T) {
	r := Single(3)

	r = r.Select(4, true)
	if !r.Equal(Span(3, 4)) {
		t.Fatalf("after selecting max+1: %s, want [3..4]", r)
	}

	r = r.Select(2, true)
	if !r.Equal(Span(2, 4)) {
		t.Fatalf("after selecting min-1: %s, want [2..4]", r)
	}

	if got := r.Indices(); len(got) != 3 || got[0] != 2 || got[1] != 3 || got[2] != 4 {
		t.Errorf("Indices = %v, want [2 3 4]", got)
	}
}

func TestSelectAlreadySelectedIsNoop(t *testing.T) {
	r := Span(2, 4)
	if got := r.Select(3, true); !got.Equal(r) {
		t.Errorf("selecting an interior row changed %s to %s", r, got)
	}
}

// Scenario C: select 2, then non-adjacent 0 -> {0}, not {0,2}.
func TestSelectNonAdjacentStartsFreshRun(t *testing.T) {
	r := Empty().Select(2, true).Select(0, true)
	if !r.Equal(Single(0)) {
		t.Errorf("got %s, want [0]", r)
	}
}

// Scenario D: {1,2,3}; deselect interior 2 is a no-op, deselect 3 shrinks.
func TestDeselectOnlyAtEnds(t *testing.T) {
	r := Span(1, 3)

	r = r.Select(2, false)
	if !r.Equal(Span(1, 3)) {
		t.Fatalf("interior deselect changed selection to %s", r)
	}

	r = r.Select(3, false)
	if !r.Equal(Span(1, 2)) {
		t.Fatalf("boundary deselect: got %s, want [1..2]", r)
	}

	r = r.Select(1, false)
	if !r.Equal(Single(2)) {
		t.Fatalf("min deselect: got %s, want [2]", r)
	}

	r = r.Select(2, false)
	if !r.IsEmpty() {
		t.Fatalf("last deselect: got %s, want empty", r)
	}
}

func TestDeselectOutsideIsNoop(t *testing.T) {
	r := Span(1, 3)
	if got := r.Select(7, false); !got.Equal(r) {
		t.Errorf("got %s, want unchanged %s", got, r)
	}
	if got := Empty().Select(0, false); !got.IsEmpty() {
		t.Errorf("deselect on empty = %s", got)
	}
}

func TestSelectNegativeIgnored(t *testing.T) {
	r := Single(0)
	if got := r.Select(-1, true); !got.Equal(r) {
		t.Errorf("negative select changed selection to %s", got)
	}
}

func TestSelectDoesNotMutateReceiver(t *testing.T) {
	r := Span(1, 2)
	_ = r.Select(3, true)
	_ = r.Select(1, false)
	if !r.Equal(Span(1, 2)) {
		t.Errorf("receiver mutated to %s", r)
	}
}

func TestFromIndices(t *testing.T) {
	tests := []struct {
		name   string
		in     []int
		want   Range
		wantOK bool
	}{
		{"empty", nil, Empty(), true},
		{"unsorted contiguous", []int{3, 1, 2}, Span(1, 3), true},
		{"duplicates", []int{2, 2, 3}, Span(2, 3), true},
		{"gap", []int{1, 3}, Empty(), false},
		{"negative", []int{-1, 0}, Empty(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromIndices(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		count int
		want  Range
	}{
		{"inside", Span(1, 2), 5, Span(1, 2)},
		{"tail clipped", Span(2, 6), 4, Span(2, 3)},
		{"fully gone", Span(5, 6), 4, Empty()},
		{"empty", Empty(), 4, Empty()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Clip(tt.count); !got.Equal(tt.want) {
				t.Errorf("Clip(%d) = %s, want %s", tt.count, got, tt.want)
			}
		})
	}
}

func TestContiguityInvariantRandomized(t *testing.T) {
	faker := gofakeit.New(42)

	for run := 0; run < 200; run++ {
		r := Empty()
		for step := 0; step < 50; step++ {
			index := faker.IntRange(0, 12)
			r = r.Select(index, faker.Bool())

			if r.IsEmpty() {
				continue
			}
			idx := r.Indices()
			if len(idx) != r.Len() {
				t.Fatalf("run %d step %d: Indices len %d != Len %d", run, step, len(idx), r.Len())
			}
			for i := 1; i < len(idx); i++ {
				if idx[i] != idx[i-1]+1 {
					t.Fatalf("run %d step %d: non-contiguous selection %v", run, step, idx)
				}
			}
		}
	}
}

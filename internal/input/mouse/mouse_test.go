package mouse

import (
	"testing"
	"time"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
		{ButtonScrollUp, "scroll-up"},
		{ButtonScrollDown, "scroll-down"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionAndKindString(t *testing.T) {
	if ActionDrag.String() != "drag" || ActionNone.String() != "none" {
		t.Error("Action.String mismatch")
	}
	if KindRelease.String() != "release" || KindNone.String() != "none" {
		t.Error("Kind.String mismatch")
	}
}

func TestPositionDistance(t *testing.T) {
	tests := []struct {
		p1, p2   Position
		expected int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 7},
		{Position{5, 5}, Position{2, 1}, 7},
	}

	for _, tt := range tests {
		if got := tt.p1.Distance(tt.p2); got != tt.expected {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.p1, tt.p2, got, tt.expected)
		}
	}
}

func TestClickTrackerDoubleClick(t *testing.T) {
	tracker := newClickTracker(400*time.Millisecond, 2)
	pos := Position{X: 10, Y: 3}
	now := time.Now()

	if n := tracker.recordClick(pos, now); n != 1 {
		t.Fatalf("first click = %d, want 1", n)
	}
	if n := tracker.recordClick(pos, now.Add(100*time.Millisecond)); n != 2 {
		t.Fatalf("second click = %d, want 2", n)
	}
	if n := tracker.recordClick(pos, now.Add(200*time.Millisecond)); n != 1 {
		t.Errorf("third click = %d, want 1 (wrapped)", n)
	}
}

func TestClickTrackerResets(t *testing.T) {
	now := time.Now()
	pos := Position{X: 10, Y: 3}

	tests := []struct {
		name   string
		second Position
		at     time.Time
	}{
		{"timeout", pos, now.Add(500 * time.Millisecond)},
		{"distance", Position{X: 30, Y: 3}, now.Add(100 * time.Millisecond)},
		{"clock skew", pos, now.Add(-100 * time.Millisecond)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := newClickTracker(400*time.Millisecond, 2)
			tracker.recordClick(pos, now)
			if n := tracker.recordClick(tt.second, tt.at); n != 1 {
				t.Errorf("count = %d, want 1", n)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	h := NewHandler(DefaultConfig())
	now := time.Now()
	p := Position{X: 1, Y: 1}

	steps := []struct {
		held Button
		pos  Position
		want Action
		btn  Button
	}{
		{ButtonNone, p, ActionMove, ButtonNone},
		{ButtonLeft, p, ActionPress, ButtonLeft},
		{ButtonLeft, Position{X: 1, Y: 2}, ActionDrag, ButtonLeft},
		{ButtonScrollDown, p, ActionPress, ButtonScrollDown},
		{ButtonLeft, Position{X: 1, Y: 3}, ActionDrag, ButtonLeft},
		{ButtonNone, Position{X: 1, Y: 3}, ActionRelease, ButtonLeft},
	}
	for i, s := range steps {
		ev := h.Decode(s.pos, s.held, false, false, now)
		if ev.Action != s.want || ev.Button != s.btn {
			t.Errorf("step %d: got %s/%s, want %s/%s", i, ev.Action, ev.Button, s.want, s.btn)
		}
	}
}

func TestHandlerPressDragRelease(t *testing.T) {
	h := NewHandler(DefaultConfig())
	now := time.Now()

	feed := func(pos Position, held Button) *Gesture {
		return h.Handle(h.Decode(pos, held, false, false, now))
	}

	g := feed(Position{X: 2, Y: 4}, ButtonLeft)
	if g == nil || g.Kind != KindPress || g.Count != 1 {
		t.Fatalf("press gesture = %+v", g)
	}
	if !h.IsDragging() {
		t.Error("should be dragging after press")
	}

	// Same cell: no drag gesture.
	if g := feed(Position{X: 2, Y: 4}, ButtonLeft); g != nil {
		t.Errorf("repeat sample produced %+v", g)
	}

	g = feed(Position{X: 2, Y: 6}, ButtonLeft)
	if g == nil || g.Kind != KindDrag || g.Start != (Position{X: 2, Y: 4}) {
		t.Fatalf("drag gesture = %+v", g)
	}
	if d := h.DragState().Delta(); d.Y != 2 {
		t.Errorf("delta = %+v", d)
	}

	g = feed(Position{X: 2, Y: 6}, ButtonNone)
	if g == nil || g.Kind != KindRelease || g.Position.Y != 6 {
		t.Fatalf("release gesture = %+v", g)
	}
	if h.IsDragging() {
		t.Error("still dragging after release")
	}
}

func TestHandlerDoubleClick(t *testing.T) {
	h := NewHandler(DefaultConfig())
	now := time.Now()
	pos := Position{X: 5, Y: 5}

	h.Handle(Event{Position: pos, Button: ButtonLeft, Action: ActionPress, Timestamp: now})
	h.Handle(Event{Position: pos, Button: ButtonLeft, Action: ActionRelease, Timestamp: now})
	g := h.Handle(Event{Position: pos, Button: ButtonLeft, Action: ActionPress, Timestamp: now.Add(50 * time.Millisecond)})
	if g == nil || g.Count != 2 {
		t.Fatalf("gesture = %+v, want double click", g)
	}
}

func TestHandlerScroll(t *testing.T) {
	h := NewHandler(DefaultConfig())

	g := h.Handle(Event{Button: ButtonScrollUp, Action: ActionPress})
	if g == nil || g.Kind != KindScroll || g.Count != -3 {
		t.Errorf("scroll up = %+v", g)
	}
	g = h.Handle(Event{Button: ButtonScrollDown, Action: ActionPress, Shift: true})
	if g == nil || g.Count != 1 {
		t.Errorf("shift scroll down = %+v", g)
	}
}

func TestHandlerContext(t *testing.T) {
	h := NewHandler(DefaultConfig())
	g := h.Handle(Event{Position: Position{X: 1, Y: 2}, Button: ButtonRight, Action: ActionPress})
	if g == nil || g.Kind != KindContext {
		t.Errorf("right press = %+v", g)
	}
	if h.IsDragging() {
		t.Error("right press started a drag")
	}
}

func TestHandlerIgnoresStrayEvents(t *testing.T) {
	h := NewHandler(DefaultConfig())
	if g := h.Handle(Event{Button: ButtonLeft, Action: ActionDrag}); g != nil {
		t.Errorf("drag without press = %+v", g)
	}
	if g := h.Handle(Event{Button: ButtonLeft, Action: ActionRelease}); g != nil {
		t.Errorf("release without press = %+v", g)
	}
	if g := h.Handle(Event{Action: ActionMove}); g != nil {
		t.Errorf("move = %+v", g)
	}
}

func TestHandlerReset(t *testing.T) {
	h := NewHandler(DefaultConfig())
	h.Handle(h.Decode(Position{X: 1, Y: 1}, ButtonLeft, false, false, time.Now()))
	if !h.IsDragging() {
		t.Fatal("should be dragging after press")
	}

	h.Reset()
	if h.IsDragging() {
		t.Error("should not be dragging after reset")
	}
	// After reset the next held sample is a fresh press.
	if ev := h.Decode(Position{X: 1, Y: 1}, ButtonLeft, false, false, time.Now()); ev.Action != ActionPress {
		t.Errorf("action after reset = %s, want press", ev.Action)
	}
}

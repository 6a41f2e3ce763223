package drag

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/dshills/trilex/internal/event"
	"github.com/dshills/trilex/internal/selection"
)

// uniform measures n rows of height 1.
func uniform(n func() int) Measurer {
	return MeasureFunc(func() Layout {
		h := make([]float64, n())
		for i := range h {
			h[i] = 1
		}
		return Stack(h...)
	})
}

type harness struct {
	bus      event.Bus
	ctrl     *Controller[string]
	previews []Preview
	moves    int
}

func newHarness(t *testing.T, rows []string, opts ...Option) *harness {
	t.Helper()
	h := &harness{bus: event.NewBus()}
	opts = append(opts,
		WithPreviewMove(func(p Preview) { h.previews = append(h.previews, p) }),
		WithMoveRows(func() { h.moves++ }),
	)
	h.ctrl = NewController(h.bus, uniform(func() int { return len(h.ctrl.Rows()) }), rows, opts...)
	t.Cleanup(h.ctrl.Close)
	return h
}

func (h *harness) publish(t *testing.T, topic event.Topic, y float64) {
	t.Helper()
	if err := h.bus.Publish(context.Background(), topic, event.Pointer{Y: y}); err != nil {
		t.Fatalf("Publish %s: %v", topic, err)
	}
}

func (h *harness) listeners() int {
	return h.bus.SubscriberCount(event.TopicPointerMove) +
		h.bus.SubscriberCount(event.TopicPointerUp) +
		h.bus.SubscriberCount(event.TopicKeyEscape)
}

func TestControllerScenarioA(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C", "D", "E"})
	h.ctrl.Select(1, true)

	if err := h.ctrl.BeginDrag(1.5); err != nil {
		t.Fatal(err)
	}
	// Lower half of the last row targets slot 4 (before E).
	h.publish(t, event.TopicPointerMove, 3.9)
	if got := h.ctrl.Preview(); got.String() != "1->4" {
		t.Fatalf("preview = %s, want 1->4", got)
	}
	h.publish(t, event.TopicPointerUp, 3.9)

	if want := []string{"A", "C", "D", "B", "E"}; !slices.Equal(h.ctrl.Rows(), want) {
		t.Errorf("rows = %v, want %v", h.ctrl.Rows(), want)
	}
	if !h.ctrl.Selection().Equal(selection.Single(3)) {
		t.Errorf("selection = %s, want [3]", h.ctrl.Selection())
	}
	if h.moves != 1 {
		t.Errorf("OnMoveRows fired %d times, want 1", h.moves)
	}
	if h.ctrl.Preview().HasTarget || h.ctrl.Offset() != 0 {
		t.Error("preview and offset should be cleared after release")
	}
	if h.ctrl.Dragging() || h.listeners() != 0 {
		t.Errorf("session still active: dragging=%v listeners=%d", h.ctrl.Dragging(), h.listeners())
	}
}

func TestControllerScenarioB(t *testing.T) {
	rows := []string{"A", "B", "C", "D"}
	h := newHarness(t, rows)
	h.ctrl.Select(1, true)
	h.ctrl.Select(2, true)

	_ = h.ctrl.BeginDrag(1.5)
	h.publish(t, event.TopicPointerMove, 1.2) // slot 1
	if p := h.ctrl.Preview(); !p.Invalid || p.To != 1 {
		t.Fatalf("preview = %s, want invalid 1->1", p)
	}
	h.publish(t, event.TopicPointerUp, 1.2)

	if !slices.Equal(h.ctrl.Rows(), rows) || &h.ctrl.Rows()[0] != &rows[0] {
		t.Error("rows changed on invalid drop")
	}
	if !h.ctrl.Selection().Equal(selection.Span(1, 2)) {
		t.Errorf("selection = %s", h.ctrl.Selection())
	}
	if h.moves != 0 {
		t.Error("OnMoveRows fired for an invalid drop")
	}
}

func TestControllerScenarioE(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C", "D"})
	h.ctrl.Select(0, true)
	h.ctrl.Select(1, true)

	_ = h.ctrl.BeginDrag(0.5)
	for _, y := range []float64{-1, -5, -20} {
		h.publish(t, event.TopicPointerMove, y)
		p := h.ctrl.Preview()
		if p.From != 0 || p.To != 0 || !p.Invalid {
			t.Fatalf("y=%v preview = %s, want invalid 0->0", y, p)
		}
		if h.ctrl.Offset() != 0 {
			t.Errorf("y=%v offset = %v, want clamp to 0", y, h.ctrl.Offset())
		}
	}
	// Repeated identical previews are reported once.
	if len(h.previews) != 1 {
		t.Errorf("preview callbacks = %d, want 1", len(h.previews))
	}
	h.publish(t, event.TopicPointerUp, -20)
	if h.moves != 0 {
		t.Error("block at top moved")
	}
}

func TestControllerOffsetClampedAtBottom(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C", "D"})
	h.ctrl.Select(2, true)
	_ = h.ctrl.BeginDrag(2.5)
	h.publish(t, event.TopicPointerMove, 50)
	if h.ctrl.Offset() != 1 {
		t.Errorf("offset = %v, want 1", h.ctrl.Offset())
	}
	if p := h.ctrl.Preview(); p.To != 4 || p.Invalid {
		t.Errorf("preview = %s, want 2->4", p)
	}
}

func TestControllerEscapeCancels(t *testing.T) {
	rows := []string{"A", "B", "C"}
	h := newHarness(t, rows)
	h.ctrl.Select(0, true)

	_ = h.ctrl.BeginDrag(0.5)
	h.publish(t, event.TopicPointerMove, 2.8)
	if !h.ctrl.Preview().Committable() {
		t.Fatalf("preview = %s, want committable", h.ctrl.Preview())
	}
	if err := h.bus.Publish(context.Background(), event.TopicKeyEscape, nil); err != nil {
		t.Fatal(err)
	}

	if h.ctrl.Preview().HasTarget {
		t.Error("preview not cleared by escape")
	}
	if last := h.previews[len(h.previews)-1]; last.HasTarget {
		t.Errorf("last preview callback = %s, want cleared", last)
	}
	if h.listeners() != 0 {
		t.Errorf("%d listeners left after escape", h.listeners())
	}

	// A release after escape must not commit.
	h.publish(t, event.TopicPointerUp, 2.8)
	if !slices.Equal(h.ctrl.Rows(), rows) || h.moves != 0 {
		t.Error("rows moved after escape")
	}
}

func TestControllerMissingGeometryHoldsPreview(t *testing.T) {
	hole := false
	bus := event.NewBus()
	rows := []string{"A", "B", "C", "D"}
	m := MeasureFunc(func() Layout {
		if hole {
			return NewLayout(4, []RowGeometry{{Index: 0, Height: 1}})
		}
		return Stack(1, 1, 1, 1)
	})
	ctrl := NewController(bus, m, rows)
	defer ctrl.Close()
	ctrl.Select(0, true)
	_ = ctrl.BeginDrag(0.5)

	_ = bus.Publish(context.Background(), event.TopicPointerMove, event.Pointer{Y: 2.9})
	before := ctrl.Preview()

	hole = true
	_ = bus.Publish(context.Background(), event.TopicPointerMove, event.Pointer{Y: 0.1})
	if !ctrl.Preview().Equal(before) {
		t.Errorf("preview changed to %s without geometry, want %s", ctrl.Preview(), before)
	}
}

func TestControllerPolicyClear(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, WithPolicy(PolicyClear))
	h.ctrl.Select(0, true)
	_ = h.ctrl.BeginDrag(0.5)
	h.publish(t, event.TopicPointerMove, 2.9)
	h.publish(t, event.TopicPointerUp, 2.9)

	if want := []string{"B", "C", "A"}; !slices.Equal(h.ctrl.Rows(), want) {
		t.Errorf("rows = %v, want %v", h.ctrl.Rows(), want)
	}
	if !h.ctrl.Selection().IsEmpty() {
		t.Errorf("selection = %s, want empty", h.ctrl.Selection())
	}
	if h.ctrl.Policy() != PolicyClear {
		t.Error("Policy not reported")
	}
}

func TestControllerBeginRequiresSelection(t *testing.T) {
	h := newHarness(t, []string{"A"})
	if err := h.ctrl.BeginDrag(0); !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
	if h.listeners() != 0 {
		t.Error("listeners attached without a selection")
	}
}

func TestControllerReentrantBegin(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"})
	h.ctrl.Select(0, true)
	_ = h.ctrl.BeginDrag(0.5)
	_ = h.ctrl.BeginDrag(0.5)

	if n := h.bus.SubscriberCount(event.TopicPointerUp); n != 1 {
		t.Fatalf("pointer.up listeners = %d, want 1", n)
	}
	h.publish(t, event.TopicPointerMove, 2.9)
	h.publish(t, event.TopicPointerUp, 2.9)
	if h.moves != 1 {
		t.Errorf("OnMoveRows fired %d times, want 1", h.moves)
	}
}

func TestControllerReentrantBeginReportsClearedPreview(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"})
	h.ctrl.Select(0, true)
	_ = h.ctrl.BeginDrag(0.5)
	h.publish(t, event.TopicPointerMove, 2.9)
	if !h.ctrl.Preview().HasTarget {
		t.Fatal("expected a preview target after the move")
	}

	_ = h.ctrl.BeginDrag(0.5)
	if h.ctrl.Preview().HasTarget {
		t.Error("expected the second begin to clear the preview")
	}
	if n := len(h.previews); n == 0 || h.previews[n-1].HasTarget {
		t.Errorf("last reported preview = %+v, want no target", h.previews)
	}
	if h.ctrl.Offset() != 0 {
		t.Errorf("offset = %v, want 0", h.ctrl.Offset())
	}
}

func TestControllerCloseTearsDown(t *testing.T) {
	h := newHarness(t, []string{"A", "B"})
	h.ctrl.Select(1, true)
	_ = h.ctrl.BeginDrag(1.5)
	h.ctrl.Close()
	if h.ctrl.Dragging() || h.listeners() != 0 {
		t.Error("Close left the session attached")
	}
}

func TestControllerClearSelectionClearsPreview(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"})
	h.ctrl.Select(0, true)
	_ = h.ctrl.BeginDrag(0.5)
	h.publish(t, event.TopicPointerMove, 2.9)

	h.ctrl.ClearSelection()
	if !h.ctrl.Selection().IsEmpty() || h.ctrl.Preview().HasTarget {
		t.Error("ClearSelection left state behind")
	}
	if h.listeners() != 0 {
		t.Error("ClearSelection left listeners attached")
	}
}

func TestControllerSelectIgnoredWhileDragging(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"})
	h.ctrl.Select(0, true)
	_ = h.ctrl.BeginDrag(0.5)
	if got := h.ctrl.Select(1, true); !got.Equal(selection.Single(0)) {
		t.Errorf("selection changed mid-drag to %s", got)
	}
	if got := h.ctrl.Select(9, true); !got.Equal(selection.Single(0)) {
		t.Errorf("out of range select changed selection to %s", got)
	}
}

func TestControllerSetRowsClipsSelection(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"})
	h.ctrl.Select(1, true)
	h.ctrl.Select(2, true)
	_ = h.ctrl.BeginDrag(1.5)

	h.ctrl.SetRows([]string{"A", "B"})
	if h.ctrl.Dragging() {
		t.Error("SetRows should cancel the drag")
	}
	if !h.ctrl.Selection().Equal(selection.Single(1)) {
		t.Errorf("selection = %s, want [1]", h.ctrl.Selection())
	}
}

func TestControllerPreviewState(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C", "D"})
	h.ctrl.Select(0, true)
	_ = h.ctrl.BeginDrag(0.5)
	h.publish(t, event.TopicPointerMove, 3.9)

	state := h.ctrl.PreviewState()
	if !state.Active || !state.InsertAfterLast {
		t.Errorf("state = %+v, want active append", state)
	}
	if h0 := state.Hint(0); h0.Role != RoleBlock || h0.Shift != 3 {
		t.Errorf("block hint = %+v", h0)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
		ok   bool
	}{
		{"", PolicyFollow, true},
		{"follow", PolicyFollow, true},
		{"clear", PolicyClear, true},
		{"bogus", PolicyFollow, false},
	}
	for _, tt := range tests {
		got, ok := ParsePolicy(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePolicy(%q) = %v, %v", tt.in, got, ok)
		}
	}
}

func TestSessionStates(t *testing.T) {
	bus := event.NewBus()
	s := NewSession(bus)
	if s.State() != StateIdle || s.State().String() != "idle" {
		t.Fatalf("initial state = %s", s.State())
	}

	var moved []float64
	_ = s.Begin(2, Hooks{Move: func(y float64) { moved = append(moved, y) }})
	if s.State() != StateDragging || s.State().String() != "dragging" {
		t.Fatalf("state = %s", s.State())
	}

	_ = bus.Publish(context.Background(), event.TopicPointerMove, &event.Pointer{Y: 5})
	_ = bus.Publish(context.Background(), event.TopicPointerMove, "not a pointer")
	if len(moved) != 1 || s.Delta() != 3 {
		t.Errorf("moved = %v delta = %v", moved, s.Delta())
	}

	_ = bus.Publish(context.Background(), event.TopicPointerUp, nil)
	if s.Dragging() {
		t.Error("pointer up should end the session")
	}
	s.End()
}

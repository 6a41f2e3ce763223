package mouse

import (
	"sync"
	"time"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event is a decoded mouse event.
type Event struct {
	Position  Position
	Button    Button
	Action    Action
	Shift     bool
	Ctrl      bool
	Timestamp time.Time
}

// Kind identifies what a mouse gesture means to the grid.
type Kind uint8

const (
	// KindNone means the event has no effect.
	KindNone Kind = iota
	// KindPress is a primary press. Count holds the click count.
	KindPress
	// KindDrag is pointer motion with the primary button held.
	KindDrag
	// KindRelease ends a primary press.
	KindRelease
	// KindContext is a secondary press.
	KindContext
	// KindScroll is a wheel tick. Count is signed, negative is up.
	KindScroll
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindDrag:
		return "drag"
	case KindRelease:
		return "release"
	case KindContext:
		return "context"
	case KindScroll:
		return "scroll"
	default:
		return "none"
	}
}

// Gesture is what the handler reports for one event.
type Gesture struct {
	Kind     Kind
	Position Position

	// Start is where the primary press began, for KindDrag and KindRelease.
	Start Position

	// Count is the click count for KindPress and the signed line count
	// for KindScroll.
	Count int

	Shift bool
	Ctrl  bool
}

// Config configures mouse handler behavior.
type Config struct {
	// DoubleClickTime is the maximum time between clicks for a double-click.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum distance between clicks for a double-click.
	DoubleClickDistance int

	// ScrollLines is the number of rows to scroll per wheel tick.
	ScrollLines int

	// ScrollLinesShift is the number of rows when Shift is held.
	ScrollLinesShift int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 2,
		ScrollLines:         3,
		ScrollLinesShift:    1,
	}
}

// Handler turns mouse events into grid gestures.
//
// Terminals report which button is held rather than press and release
// transitions, so Decode derives the Action from the previous sample
// before Handle interprets it.
type Handler struct {
	mu     sync.Mutex
	config Config

	click *clickTracker
	drag  *dragTracker

	// held is the button held in the previous sample.
	held Button
}

// NewHandler creates a new mouse handler with the given configuration.
func NewHandler(config Config) *Handler {
	return &Handler{
		config: config,
		click:  newClickTracker(config.DoubleClickTime, config.DoubleClickDistance),
		drag:   newDragTracker(),
	}
}

// Decode builds an Event from a raw terminal sample: the pointer position
// and the button currently held (ButtonNone when all are up).
func (h *Handler) Decode(pos Position, held Button, shift, ctrl bool, ts time.Time) Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	ev := Event{Position: pos, Button: held, Shift: shift, Ctrl: ctrl, Timestamp: ts}
	prev := h.held

	switch {
	case held.IsScroll():
		// Wheel ticks do not change the held state.
		ev.Action = ActionPress
		return ev
	case held == ButtonNone && prev == ButtonNone:
		ev.Action = ActionMove
	case held == ButtonNone:
		ev.Action = ActionRelease
		ev.Button = prev
	case held == prev:
		ev.Action = ActionDrag
	default:
		ev.Action = ActionPress
	}
	h.held = held
	return ev
}

// Handle interprets a decoded event. It returns nil when the event has no
// meaning for the grid.
func (h *Handler) Handle(ev Event) *Gesture {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch ev.Action {
	case ActionPress:
		return h.handlePress(ev)
	case ActionDrag:
		return h.handleDrag(ev)
	case ActionRelease:
		return h.handleRelease(ev)
	}
	return nil
}

func (h *Handler) handlePress(ev Event) *Gesture {
	switch ev.Button {
	case ButtonLeft:
		count := h.click.recordClick(ev.Position, ev.Timestamp)
		h.drag.start(ev.Position, ev.Button)
		return &Gesture{Kind: KindPress, Position: ev.Position, Count: count, Shift: ev.Shift, Ctrl: ev.Ctrl}
	case ButtonRight:
		return &Gesture{Kind: KindContext, Position: ev.Position, Shift: ev.Shift, Ctrl: ev.Ctrl}
	case ButtonScrollUp, ButtonScrollDown:
		lines := h.config.ScrollLines
		if ev.Shift {
			lines = h.config.ScrollLinesShift
		}
		if ev.Button == ButtonScrollUp {
			lines = -lines
		}
		return &Gesture{Kind: KindScroll, Position: ev.Position, Count: lines}
	}
	return nil
}

func (h *Handler) handleDrag(ev Event) *Gesture {
	if !h.drag.isActive() || h.drag.button != ButtonLeft {
		return nil
	}
	if !h.drag.update(ev.Position) {
		return nil
	}
	return &Gesture{Kind: KindDrag, Position: ev.Position, Start: h.drag.startPos}
}

func (h *Handler) handleRelease(ev Event) *Gesture {
	if !h.drag.isActive() || ev.Button != ButtonLeft {
		h.drag.end()
		return nil
	}
	g := &Gesture{Kind: KindRelease, Position: ev.Position, Start: h.drag.startPos}
	h.drag.end()
	return g
}

// Reset clears all handler state.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.click.reset()
	h.drag.end()
	h.held = ButtonNone
}

// IsDragging returns true while the primary button is held.
func (h *Handler) IsDragging() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.isActive()
}

// DragState returns a snapshot of the drag tracker.
func (h *Handler) DragState() DragState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.state()
}

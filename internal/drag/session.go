package drag

import (
	"context"
	"fmt"

	"github.com/dshills/trilex/internal/event"
)

// State is the drag session state.
type State uint8

const (
	// StateIdle means no drag is in progress.
	StateIdle State = iota
	// StateDragging means pointer listeners are attached.
	StateDragging
)

// String returns the state name.
func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Hooks receive the events of one drag session. The session is already
// Idle when Release or Cancel run.
type Hooks struct {
	Move    func(y float64)
	Release func(y float64)
	Cancel  func()
}

// Session owns the temporary pointer and keyboard listeners of one drag.
// Listeners are subscribed on Begin and cancelled together by a single
// teardown on release, escape or End.
type Session struct {
	bus      event.Bus
	state    State
	startY   float64
	currentY float64
	teardown func()
}

// NewSession creates an idle session listening on bus.
func NewSession(bus event.Bus) *Session {
	return &Session{bus: bus}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool {
	return s.state == StateDragging
}

// StartY returns where the drag started.
func (s *Session) StartY() float64 {
	return s.startY
}

// Delta returns how far the pointer has travelled since Begin.
func (s *Session) Delta() float64 {
	return s.currentY - s.startY
}

// Begin enters Dragging at startY. A session that is already dragging is
// torn down first so no listener is ever attached twice.
func (s *Session) Begin(startY float64, hooks Hooks) error {
	if s.state == StateDragging {
		s.End()
	}

	var group event.Group
	subscribe := func(topic event.Topic, fn event.HandlerFunc) error {
		sub, err := s.bus.Subscribe(topic, fn)
		if err != nil {
			group.Cancel()
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		group.Add(sub)
		return nil
	}

	onMove := func(_ context.Context, ev event.Event) error {
		y, ok := pointerY(ev)
		if !ok {
			return nil
		}
		s.currentY = y
		if hooks.Move != nil {
			hooks.Move(y)
		}
		return nil
	}
	onUp := func(_ context.Context, ev event.Event) error {
		y, ok := pointerY(ev)
		if !ok {
			y = s.currentY
		}
		s.End()
		if hooks.Release != nil {
			hooks.Release(y)
		}
		return nil
	}
	onEscape := func(context.Context, event.Event) error {
		s.End()
		if hooks.Cancel != nil {
			hooks.Cancel()
		}
		return nil
	}

	if err := subscribe(event.TopicPointerMove, onMove); err != nil {
		return err
	}
	if err := subscribe(event.TopicPointerUp, onUp); err != nil {
		return err
	}
	if err := subscribe(event.TopicKeyEscape, onEscape); err != nil {
		return err
	}

	s.state = StateDragging
	s.startY = startY
	s.currentY = startY
	s.teardown = group.Cancel
	return nil
}

// End detaches all listeners and returns to Idle without firing hooks.
// Safe to call in any state.
func (s *Session) End() {
	if s.teardown != nil {
		s.teardown()
		s.teardown = nil
	}
	s.state = StateIdle
}

func pointerY(ev event.Event) (float64, bool) {
	switch p := ev.Payload.(type) {
	case event.Pointer:
		return p.Y, true
	case *event.Pointer:
		if p == nil {
			return 0, false
		}
		return p.Y, true
	}
	return 0, false
}

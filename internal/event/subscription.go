package event

import "sync/atomic"

// Subscription is a handle to a registered handler.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the pattern the subscription was registered with.
	Topic() Topic

	// IsActive reports whether the subscription still receives events.
	IsActive() bool

	// Cancel removes the subscription from its bus. Safe to call more
	// than once.
	Cancel()
}

type subscription struct {
	id      string
	pattern Topic
	handler HandlerFunc
	bus     *bus
	active  atomic.Bool
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Topic() Topic {
	return s.pattern
}

func (s *subscription) IsActive() bool {
	return s.active.Load()
}

func (s *subscription) Cancel() {
	if s.active.CompareAndSwap(true, false) {
		s.bus.remove(s)
	}
}

// Group collects subscriptions so they can be cancelled together.
// The zero value is ready to use.
type Group struct {
	subs []Subscription
}

// Add records sub in the group.
func (g *Group) Add(sub Subscription) {
	if sub != nil {
		g.subs = append(g.subs, sub)
	}
}

// Len returns the number of recorded subscriptions.
func (g *Group) Len() int {
	return len(g.subs)
}

// Cancel cancels every recorded subscription and empties the group.
func (g *Group) Cancel() {
	for _, sub := range g.subs {
		sub.Cancel()
	}
	g.subs = nil
}

package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Event is a single published occurrence.
type Event struct {
	// Topic is the concrete topic the event was published on.
	Topic Topic

	// Payload carries topic-specific data.
	Payload any
}

// HandlerFunc handles one event.
type HandlerFunc func(ctx context.Context, ev Event) error

// Bus is the publish/subscribe interface used by trilex components.
type Bus interface {
	// Subscribe registers handler for topics matching pattern.
	Subscribe(pattern Topic, handler HandlerFunc) (Subscription, error)

	// Publish delivers ev synchronously to every matching subscription.
	// Handler errors are joined into the returned error; delivery to
	// other subscribers continues after a failure.
	Publish(ctx context.Context, topic Topic, payload any) error

	// SubscriberCount returns the number of live subscriptions that
	// would receive an event published on topic.
	SubscriberCount(topic Topic) int
}

// Option configures a bus.
type Option func(*bus)

// WithPanicRecovery controls whether handler panics are converted into
// errors. Enabled by default.
func WithPanicRecovery(enabled bool) Option {
	return func(b *bus) {
		b.recoverPanics = enabled
	}
}

// WithErrorHandler sets a callback invoked for every handler error in
// addition to it being returned from Publish.
func WithErrorHandler(fn func(*HandlerError)) Option {
	return func(b *bus) {
		b.onError = fn
	}
}

type bus struct {
	mu            sync.RWMutex
	subs          []*subscription
	nextID        atomic.Uint64
	recoverPanics bool
	onError       func(*HandlerError)
}

// NewBus creates a synchronous event bus.
func NewBus(opts ...Option) Bus {
	b := &bus{recoverPanics: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe implements Bus.
func (b *bus) Subscribe(pattern Topic, handler HandlerFunc) (Subscription, error) {
	if !pattern.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	sub := &subscription{
		id:      fmt.Sprintf("sub-%d", b.nextID.Add(1)),
		pattern: pattern,
		handler: handler,
		bus:     b,
	}
	sub.active.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub, nil
}

// Publish implements Bus.
func (b *bus) Publish(ctx context.Context, topic Topic, payload any) error {
	if !topic.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	if topic.IsPattern() {
		return fmt.Errorf("%w: %q", ErrPatternPublish, topic)
	}

	// Snapshot so handlers can subscribe or cancel during delivery.
	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if topic.Matches(sub.pattern) {
			targets = append(targets, sub)
		}
	}
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	var errs []error
	for _, sub := range targets {
		if !sub.IsActive() {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := b.deliver(ctx, sub, ev); err != nil {
			herr := &HandlerError{SubscriptionID: sub.id, Topic: topic, Err: err}
			if b.onError != nil {
				b.onError(herr)
			}
			errs = append(errs, herr)
		}
	}
	return errors.Join(errs...)
}

func (b *bus) deliver(ctx context.Context, sub *subscription, ev Event) (err error) {
	if b.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
			}
		}()
	}
	return sub.handler(ctx, ev)
}

// SubscriberCount implements Bus.
func (b *bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, sub := range b.subs {
		if sub.IsActive() && topic.Matches(sub.pattern) {
			n++
		}
	}
	return n
}

func (b *bus) remove(target *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub == target {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

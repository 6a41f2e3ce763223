package app

import (
	"context"
	"sync"

	"github.com/dshills/trilex/internal/event"
)

// Event topics published by the application.
const (
	TopicStoreLoaded event.Topic = "store.loaded"
	TopicStoreSaved  event.Topic = "store.saved"
	TopicStoreAll    event.Topic = "store.*"
)

// StorePayload is published on the store topics.
type StorePayload struct {
	Store string
	Rows  int
}

// subscriptionManager manages event bus subscriptions for the application.
type subscriptionManager struct {
	mu            sync.Mutex
	subscriptions []event.Subscription
	app           *Application
}

func newSubscriptionManager(app *Application) *subscriptionManager {
	return &subscriptionManager{app: app}
}

// setupSubscriptions registers all event subscriptions.
func (sm *subscriptionManager) setupSubscriptions() error {
	if sm.app.eventBus == nil {
		return nil
	}

	// Committed moves -> log and metrics
	if err := sm.subscribe(event.TopicRowsMoved, sm.handleRowsMoved); err != nil {
		return err
	}

	// Store loads and saves -> log
	if err := sm.subscribe(TopicStoreAll, sm.handleStoreEvent); err != nil {
		return err
	}
	return nil
}

func (sm *subscriptionManager) subscribe(topic event.Topic, fn event.HandlerFunc) error {
	sub, err := sm.app.eventBus.Subscribe(topic, fn)
	if err != nil {
		return err
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.subscriptions = append(sm.subscriptions, sub)
	return nil
}

// cleanup unsubscribes all managed subscriptions.
// Safe to call multiple times (idempotent).
func (sm *subscriptionManager) cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for _, sub := range sm.subscriptions {
		sub.Cancel()
	}
	sm.subscriptions = nil
}

func (sm *subscriptionManager) handleRowsMoved(_ context.Context, ev event.Event) error {
	moved, ok := ev.Payload.(RowsMoved)
	if !ok {
		return nil
	}
	sm.app.metrics.RecordMove(moved.Count)
	sm.app.Logger().WithComponent("drag").Info("moved %d rows from %d to slot %d", moved.Count, moved.From+1, moved.To)
	return nil
}

func (sm *subscriptionManager) handleStoreEvent(_ context.Context, ev event.Event) error {
	p, ok := ev.Payload.(StorePayload)
	if !ok {
		return nil
	}
	sm.app.Logger().WithComponent("store").Debug("%s: %s (%d rows)", ev.Topic, p.Store, p.Rows)
	return nil
}

// publishStore publishes a store event. Delivery failures are logged.
func (app *Application) publishStore(topic event.Topic) {
	payload := StorePayload{Store: app.store.Name(), Rows: len(app.sequence())}
	if err := app.eventBus.Publish(app.ctx, topic, payload); err != nil {
		app.logComponentError("event", err)
	}
}

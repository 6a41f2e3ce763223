// Package event provides the synchronous event bus used by trilex.
//
// Input decoding publishes pointer and keyboard events on the bus; the
// drag session subscribes to them only while a drag is in flight and
// cancels its subscriptions on every exit path. A bus with no live
// subscriptions on the pointer topics therefore means no drag is leaking
// listeners.
//
// # Event Topics
//
// Topics are hierarchical with dot notation:
//
//	pointer.move     - pointer moved with the primary button held
//	pointer.up       - primary button released
//	key.escape       - Escape pressed
//	rows.moved       - a committed reorder changed the sequence
//
// # Wildcard Patterns
//
// Subscriptions may use wildcards:
//
//	pointer.*    - matches exactly one trailing segment
//	rows.**      - matches any number of trailing segments
//
// # Delivery
//
// Delivery is synchronous, in subscription order, in the publisher's
// goroutine. Handlers may cancel any subscription, including their own,
// while an event is being delivered; cancelled subscriptions receive no
// further events, even later in the same Publish call.
package event

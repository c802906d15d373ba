// Package events implements the publish/subscribe bus that fans
// coordinator-observed match progress out to spectators (HTTP WebSocket
// clients, the Discord bridge, the TUI), mirroring the teacher's
// in-memory event bus shape retargeted at the proof-backed coordinator.
package events

// Bus publishes and subscribes to match events.
type Bus interface {
	// Publish publishes an event to all subscribers.
	Publish(event *GameEvent)
	// Subscribe subscribes to events. Use "*" for matchID to subscribe to
	// every match.
	Subscribe(matchID string, handler Handler) Subscription
	// Close closes the bus and unsubscribes all subscribers.
	Close()
}

// Handler reacts to a published event.
type Handler func(event *GameEvent)

// Subscription represents a subscription to events.
type Subscription interface {
	// Unsubscribe cancels the subscription.
	Unsubscribe()
}

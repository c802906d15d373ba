package events

import (
	"sync"

	"github.com/google/uuid"
)

// MemoryBus is an in-memory Bus implementation, grounded on the teacher's
// MemoryEventBus.
type MemoryBus struct {
	subscribers map[string][]subscriber
	mu          sync.RWMutex
	closed      bool
}

type subscriber struct {
	id      string
	handler Handler
}

type subscription struct {
	bus     *MemoryBus
	matchID string
	id      string
}

// NewMemoryBus creates an empty in-memory bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		subscribers: make(map[string][]subscriber),
	}
}

// Publish delivers event to match-specific and wildcard subscribers.
func (b *MemoryBus) Publish(event *GameEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, sub := range b.subscribers[event.MatchID] {
		go sub.handler(event)
	}
	for _, sub := range b.subscribers["*"] {
		go sub.handler(event)
	}
}

// Subscribe registers handler for matchID ("*" for every match).
func (b *MemoryBus) Subscribe(matchID string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.subscribers[matchID] = append(b.subscribers[matchID], subscriber{id: id, handler: handler})

	return &subscription{bus: b, matchID: matchID, id: id}
}

// Close marks the bus closed and drops all subscribers.
func (b *MemoryBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subscribers = make(map[string][]subscriber)
}

// Unsubscribe removes this subscription from its bus.
func (s *subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	subs := s.bus.subscribers[s.matchID]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.subscribers[s.matchID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

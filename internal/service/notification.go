package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/nautica/battleship-zk/internal/controller"
	"github.com/nautica/battleship-zk/internal/events"
)

var _ controller.NotificationService = (*NotificationService)(nil)

// NotificationService implements controller.NotificationService over
// buffered per-subscriber channels, so a slow WebSocket client cannot
// block the match goroutine that published the event.
type NotificationService struct {
	subscribers map[string][]subscriber
	mu          sync.RWMutex
}

type subscriber struct {
	id string
	ch chan *events.GameEvent
}

type subscription struct {
	ns      *NotificationService
	matchID string
	id      string
}

// NewNotificationService creates an empty notification service.
func NewNotificationService() *NotificationService {
	return &NotificationService{
		subscribers: make(map[string][]subscriber),
	}
}

// Subscribe returns a channel of events for matchID ("*" for every match).
func (s *NotificationService) Subscribe(matchID string) (controller.Subscription, <-chan *events.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan *events.GameEvent, 100)

	s.subscribers[matchID] = append(s.subscribers[matchID], subscriber{id: id, ch: ch})

	return &subscription{ns: s, matchID: matchID, id: id}, ch
}

// Publish delivers event to match-specific and wildcard subscribers,
// dropping it for any subscriber whose buffer is full.
func (s *NotificationService) Publish(event *events.GameEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.publishToSlice(event, s.subscribers[event.MatchID])
	s.publishToSlice(event, s.subscribers["*"])
}

func (s *NotificationService) publishToSlice(event *events.GameEvent, subs []subscriber) {
	for _, sub := range subs {
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Unsubscribe removes the subscription and closes its channel.
func (s *subscription) Unsubscribe() {
	s.ns.mu.Lock()
	defer s.ns.mu.Unlock()

	subs := s.ns.subscribers[s.matchID]
	for i, sub := range subs {
		if sub.id == s.id {
			close(sub.ch)
			s.ns.subscribers[s.matchID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

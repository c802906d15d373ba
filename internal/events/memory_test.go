package events_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautica/battleship-zk/internal/events"
)

func TestMemoryBus_PublishDeliversToMatchSubscriber(t *testing.T) {
	t.Parallel()

	bus := events.NewMemoryBus()
	defer bus.Close()

	got := make(chan *events.GameEvent, 1)
	bus.Subscribe("match-1", func(e *events.GameEvent) { got <- e })

	bus.Publish(&events.GameEvent{Type: events.EventShotTaken, MatchID: "match-1"})

	select {
	case e := <-got:
		assert.Equal(t, events.EventShotTaken, e.Type)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestMemoryBus_WildcardSubscriberSeesEveryMatch(t *testing.T) {
	t.Parallel()

	bus := events.NewMemoryBus()
	defer bus.Close()

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{}, 2)
	bus.Subscribe("*", func(e *events.GameEvent) {
		mu.Lock()
		seen = append(seen, e.MatchID)
		mu.Unlock()
		done <- struct{}{}
	})

	bus.Publish(&events.GameEvent{Type: events.EventBoardReady, MatchID: "a"})
	bus.Publish(&events.GameEvent{Type: events.EventBoardReady, MatchID: "b"})

	for range 2 {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("wildcard handler did not see both events")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b"}, seen)
}

func TestMemoryBus_UnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	bus := events.NewMemoryBus()
	defer bus.Close()

	got := make(chan *events.GameEvent, 1)
	sub := bus.Subscribe("match-1", func(e *events.GameEvent) { got <- e })
	sub.Unsubscribe()

	bus.Publish(&events.GameEvent{Type: events.EventMatchOver, MatchID: "match-1"})

	select {
	case <-got:
		t.Fatal("handler fired after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemoryBus_ClosedBusDropsPublishes(t *testing.T) {
	t.Parallel()

	bus := events.NewMemoryBus()
	got := make(chan *events.GameEvent, 1)
	bus.Subscribe("*", func(e *events.GameEvent) { got <- e })
	bus.Close()

	bus.Publish(&events.GameEvent{Type: events.EventTurnChanged, MatchID: "match-1"})

	select {
	case <-got:
		t.Fatal("handler fired after Close")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemoryBus_ConcurrentSubscribeAndPublish(t *testing.T) {
	t.Parallel()

	bus := events.NewMemoryBus()
	defer bus.Close()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bus.Subscribe("match-1", func(*events.GameEvent) {})
			bus.Publish(&events.GameEvent{Type: events.EventShotTaken, MatchID: "match-1", PlayerID: "p"})
			_ = i
		}(i)
	}
	wg.Wait()
	require.True(t, true)
}

package events

import "time"

// EventType names a kind of match event.
type EventType string

// Possible EventType values.
const (
	EventPeerJoined   EventType = "peer.joined"
	EventBoardReady   EventType = "board.ready"
	EventShotTaken    EventType = "shot.taken"
	EventRoundVerified EventType = "round.verified"
	EventMatchOver    EventType = "match.over"
	EventTurnChanged  EventType = "turn.changed"
	EventRetryNeeded  EventType = "retry.needed"
)

// GameEvent is published whenever the coordinator advances a match by one
// step, so that spectators (the HTTP WebSocket route, the Discord bridge,
// the TUI) can observe progress without participating in the protocol.
type GameEvent struct {
	Type      EventType
	MatchID   string
	PlayerID  string // peer who triggered the event
	TargetID  string // peer who should be notified, "" for broadcast
	Data      any
	Timestamp time.Time
}

// ShotEventData describes a verified shot outcome.
type ShotEventData struct {
	X      uint32
	Y      uint32
	Result string // "miss", "hit", "sunk"
	Ship   string // populated only when Result == "sunk"
}

// MatchOverEventData names the winner of a finished match.
type MatchOverEventData struct {
	Winner string
}

// RetryEventData carries a coordinator.RetryAdvisory's reason.
type RetryEventData struct {
	Reason string
}

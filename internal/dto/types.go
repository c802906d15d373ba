// Package dto contains data transfer objects for representing match state
// to spectators (the HTTP surface, the Discord bridge, the TUI). Board
// cells, positions, and ship names here are plain strings/ints so these
// types can cross JSON and the bot/TUI layers without importing
// internal/model into every presentation package.
package dto

import "time"

// CellState describes what a specific coordinate looks like to a viewer.
type CellState string

// Possible CellState values.
const (
	CellEmpty   CellState = "EMPTY"
	CellShip    CellState = "SHIP" // own fleet only; never sent for an opponent's board
	CellHit     CellState = "HIT"
	CellMiss    CellState = "MISS"
	CellSunk    CellState = "SUNK"
	CellUnknown CellState = "???" // fog of war: opponent's unshot cells
)

// MatchPhase mirrors coordinator.Phase for wire/presentation purposes,
// with an added Setup phase the HTTP lobby needs but the direct
// peer-to-peer coordinator does not (ship placement there happens before
// the session is ever established).
type MatchPhase string

// Possible MatchPhase values.
const (
	PhaseSetup             MatchPhase = "SETUP"
	PhaseAwaitingHandshake MatchPhase = "AWAITING_HANDSHAKE"
	PhasePlaying           MatchPhase = "PLAYING"
	PhaseFinished          MatchPhase = "FINISHED"
)

// BoardView is a simplified, immutable snapshot of one grid. Built with
// BoardViewFrom it carries only shot history; BoardViewOwn additionally
// marks the owner's unshot ship cells as CellShip, so only the owner's
// own view reveals ship placement.
type BoardView struct {
	Grid [][]CellState `json:"grid"`
	Size int            `json:"size"`
}

// PlayerView represents one player's public state.
type PlayerView struct {
	ID    string    `json:"id"`
	Board BoardView `json:"board"`
}

// MatchView is one player's view of a match, returned by the HTTP match
// routes and the Discord bridge.
type MatchView struct {
	Phase  MatchPhase `json:"phase"`
	Turn   string     `json:"turn"`
	Winner string     `json:"winner,omitempty"`
	Host   PlayerView `json:"host"`
	Guest  PlayerView `json:"guest"`
}

// User represents a registered lobby user.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResponse serves a JWT alongside the authenticated user's info.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// MatchSummary is used for the lobby list screen.
type MatchSummary struct {
	ID          string    `json:"match_id"`
	HostName    string    `json:"host_name"`
	PlayerCount int       `json:"player_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Package tui implements a terminal client for the lobby server, driving
// its HTTP/WebSocket surface through internal/client.
package tui

import (
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nautica/battleship-zk/internal/client"
	"github.com/nautica/battleship-zk/internal/dto"
	"github.com/nautica/battleship-zk/internal/env"
)

// SessionState names which screen the TUI is showing.
type SessionState int

// Possible SessionState values.
const (
	StateLogin SessionState = iota
	StateLobby
	StateGame
)

// BoardSize mirrors model.BoardSize for cursor-bounds checks without
// importing internal/model into the presentation layer.
const BoardSize = 10

type shipToPlace struct {
	Name string
	Size int
}

// standardFleet is the fixed set of ships every match requires, in the
// order the player places them.
var standardFleet = []shipToPlace{
	{Name: "Carrier", Size: 5},
	{Name: "Battleship", Size: 4},
	{Name: "Cruiser", Size: 3},
	{Name: "Submarine", Size: 3},
	{Name: "Destroyer", Size: 2},
}

// Model is the root Bubble Tea model for the terminal client.
type Model struct {
	State    SessionState
	Client   *client.Client
	PlayerID string

	// Login
	LoginInput textinput.Model

	// Lobby
	Matches []dto.MatchSummary
	Cursor  int

	// Game
	MatchID string
	View    *dto.MatchView

	// Board cursor
	CursorX, CursorY int

	// Setup phase
	SetupPhase      bool
	CurrentShipIdx  int
	ShipOrientation bool // false = horizontal, true = vertical

	Err error

	Width, Height int
}

// New constructs a fresh Model pointed at the server named by
// BATTLE_SERVER_URL (or http://localhost:8080).
func New() *Model {
	cfg, err := env.LoadClientConfig()
	if err != nil {
		log.Fatalf("tui: loading client config: %v", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Commander name"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 30

	return &Model{
		State:      StateLogin,
		Client:     client.New(cfg.BaseURL),
		LoginInput: ti,
	}
}

// Init starts the cursor blink for the login input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

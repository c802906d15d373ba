package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nautica/battleship-zk/internal/dto"
	"github.com/nautica/battleship-zk/internal/events"
)

// Messages exchanged between Update and the commands it issues.
type (
	PerformLoginMsg struct{ PlayerID string }
	GotMatchesMsg   []dto.MatchSummary
	MatchJoinedMsg  struct{ ID string }
	GotMatchMsg     *dto.MatchView
	ShipPlacedMsg   struct{ View *dto.MatchView }
	TickMsg         time.Time
	MatchUpdateMsg  struct {
		Event   *events.GameEvent
		Channel <-chan *events.GameEvent
	}
)

// TickCmd fires a TickMsg once a second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

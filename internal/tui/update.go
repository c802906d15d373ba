package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nautica/battleship-zk/internal/client"
	"github.com/nautica/battleship-zk/internal/dto"
	"github.com/nautica/battleship-zk/internal/events"
	"github.com/nautica/battleship-zk/internal/tui/rules"
)

// Update dispatches msg to the sub-update function for the current
// screen, after handling the keys and error overlay that apply
// everywhere.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.Err != nil {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "q", "esc":
				m.Err = nil
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	case error:
		m.Err = msg
		return m, nil
	}

	switch m.State {
	case StateLogin:
		return m.updateLogin(msg)
	case StateLobby:
		return m.updateLobby(msg)
	case StateGame:
		return m.updateGame(msg)
	}
	return m, nil
}

func (m *Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.LoginInput, cmd = m.LoginInput.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		username := m.LoginInput.Value()
		return m, func() tea.Msg {
			resp, err := m.Client.Login(username)
			if err != nil {
				return err
			}
			return PerformLoginMsg{PlayerID: resp.User.ID}
		}
	}

	if login, ok := msg.(PerformLoginMsg); ok {
		m.PlayerID = login.PlayerID
		m.State = StateLobby
		return m, fetchMatchesCmd(m.Client)
	}
	return m, cmd
}

func (m *Model) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GotMatchesMsg:
		m.Matches = msg
	case tea.KeyMsg:
		return m.handleLobbyKeys(msg)
	case MatchJoinedMsg:
		return m.handleMatchJoined(msg)
	}
	return m, nil
}

func (m *Model) handleLobbyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Matches)-1 {
			m.Cursor++
		}
	case "r":
		return m, fetchMatchesCmd(m.Client)
	case "c":
		return m, func() tea.Msg {
			id, err := m.Client.CreateMatch()
			if err != nil {
				return err
			}
			return MatchJoinedMsg{ID: id}
		}
	case "enter":
		if len(m.Matches) > 0 {
			selectedID := m.Matches[m.Cursor].ID
			return m, func() tea.Msg {
				if _, err := m.Client.JoinMatch(selectedID); err != nil {
					return err
				}
				return MatchJoinedMsg{ID: selectedID}
			}
		}
	}
	return m, nil
}

func (m *Model) handleMatchJoined(msg MatchJoinedMsg) (tea.Model, tea.Cmd) {
	m.MatchID = msg.ID
	m.State = StateGame
	m.CursorX, m.CursorY = 0, 0
	m.CurrentShipIdx = 0
	m.SetupPhase = true

	return m, tea.Batch(
		func() tea.Msg {
			view, err := m.Client.GetMatchState(m.MatchID)
			if err != nil {
				return err
			}
			return GotMatchMsg(view)
		},
		subToWSCmd(m.Client, m.MatchID),
	)
}

func subToWSCmd(c *client.Client, matchID string) tea.Cmd {
	return func() tea.Msg {
		ch, err := c.SubscribeToMatch(matchID)
		if err != nil {
			return err
		}
		return listenForUpdates(ch)
	}
}

func listenForUpdates(ch <-chan *events.GameEvent) tea.Msg {
	evt, ok := <-ch
	if !ok {
		return nil
	}
	return MatchUpdateMsg{Event: evt, Channel: ch}
}

func (m *Model) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GotMatchMsg:
		return m.handleGotMatch(msg)
	case tea.KeyMsg:
		return m.handleGameKeys(msg)
	case ShipPlacedMsg:
		m.CurrentShipIdx++
		return m.handleGotMatch(GotMatchMsg(msg.View))
	case MatchUpdateMsg:
		return m, tea.Batch(
			func() tea.Msg {
				view, err := m.Client.GetMatchState(m.MatchID)
				if err != nil {
					return err
				}
				return GotMatchMsg(view)
			},
			func() tea.Msg { return listenForUpdates(msg.Channel) },
		)
	}
	return m, nil
}

func (m *Model) handleGotMatch(msg GotMatchMsg) (tea.Model, tea.Cmd) {
	if msg == nil {
		return m, nil
	}
	m.View = msg
	m.SetupPhase = m.View.Phase != dto.PhasePlaying && m.View.Phase != dto.PhaseFinished
	return m, nil
}

func (m *Model) handleGameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.CursorY > 0 {
			m.CursorY--
		}
	case "down", "j":
		if m.CursorY < BoardSize-1 {
			m.CursorY++
		}
	case "left", "h":
		if m.CursorX > 0 {
			m.CursorX--
		}
	case "right", "l":
		if m.CursorX < BoardSize-1 {
			m.CursorX++
		}
	case "r":
		if m.SetupPhase {
			m.ShipOrientation = !m.ShipOrientation
		}
	case "enter", "space":
		return m.handleAction()
	}
	return m, nil
}

func (m *Model) handleAction() (tea.Model, tea.Cmd) {
	if m.View == nil {
		return m, nil
	}
	if m.SetupPhase {
		return m.handleSetupAction()
	}
	if m.View.Phase == dto.PhasePlaying && m.View.Turn == m.PlayerID {
		return m.handlePlayAction()
	}
	return m, nil
}

func (m *Model) myBoard() dto.BoardView {
	if m.View.Host.ID == m.PlayerID {
		return m.View.Host.Board
	}
	return m.View.Guest.Board
}

func (m *Model) opponentBoard() dto.BoardView {
	if m.View.Host.ID == m.PlayerID {
		return m.View.Guest.Board
	}
	return m.View.Host.Board
}

func (m *Model) handleSetupAction() (tea.Model, tea.Cmd) {
	if m.CurrentShipIdx >= len(standardFleet) {
		return m, nil
	}

	ship := standardFleet[m.CurrentShipIdx]
	cx, cy, vert := m.CursorX, m.CursorY, m.ShipOrientation

	if m.View.Phase != dto.PhaseSetup {
		return m, nil
	}

	if err := rules.CanPlaceShip(m.myBoard(), ship.Size, cx, cy, vert); err != nil {
		return m, func() tea.Msg { return err }
	}

	orientation := "horizontal"
	if vert {
		orientation = "vertical"
	}

	return m, func() tea.Msg {
		view, err := m.Client.PlaceShip(m.MatchID, dto.PlaceShipRequest{
			PlayerID:    m.PlayerID,
			ShipName:    ship.Name,
			X:           uint32(cx),
			Y:           uint32(cy),
			Orientation: orientation,
		})
		if err != nil {
			return err
		}
		return ShipPlacedMsg{View: view}
	}
}

func (m *Model) handlePlayAction() (tea.Model, tea.Cmd) {
	cx, cy := m.CursorX, m.CursorY

	if err := rules.CanAttack(m.opponentBoard(), cx, cy); err != nil {
		return m, func() tea.Msg { return err }
	}

	return m, func() tea.Msg {
		view, err := m.Client.Attack(m.MatchID, uint32(cx), uint32(cy))
		if err != nil {
			return err
		}
		return GotMatchMsg(view)
	}
}

func fetchMatchesCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		matches, err := c.ListMatches()
		if err != nil {
			return err
		}
		return GotMatchesMsg(matches)
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nautica/battleship-zk/internal/dto"
	"github.com/nautica/battleship-zk/internal/tui/rules"
)

// View renders the current screen.
func (m *Model) View() string {
	var content string

	switch m.State {
	case StateLogin:
		content = m.viewLogin()
	case StateLobby:
		content = m.viewLobby()
	case StateGame:
		if m.View == nil {
			content = "Loading match state..."
		} else {
			content = m.viewGame()
		}
	default:
		content = "Unknown state"
	}

	if m.Err != nil {
		errBox := StyleErrorBox.Render(fmt.Sprintf("ERROR\n\n%v\n\n[Q] Dismiss", m.Err))
		content = fmt.Sprintf("%s\n\n%s", content, errBox)
	}

	if m.Width > 0 && m.Height > 0 {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *Model) viewLogin() string {
	return fmt.Sprintf(
		"\n%s\n\n%s\n\n[Enter] Login",
		StyleTitle.Render("BATTLESHIP"),
		m.LoginInput.View(),
	)
}

func (m *Model) viewLobby() string {
	var s strings.Builder
	s.WriteString(StyleTitle.Render("LOBBY") + "\n\n")
	if len(m.Matches) == 0 {
		s.WriteString("No active matches found.\n")
	}

	for i, match := range m.Matches {
		cursor := " "
		if m.Cursor == i {
			cursor = ">"
		}

		line := fmt.Sprintf("%s Host: %-20s [%d/2]", cursor, match.HostName, match.PlayerCount)
		if m.Cursor == i {
			s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(line) + "\n")
		} else {
			s.WriteString(line + "\n")
		}
	}

	s.WriteString("\n[C] Create New Match | [Enter] Join Selected | [R] Refresh")
	return s.String()
}

func (m *Model) viewGame() string {
	var baseColor lipgloss.Color
	stateLabel := ""

	switch {
	case m.View.Phase == dto.PhaseFinished:
		if m.View.Winner == m.PlayerID {
			baseColor, stateLabel = ColorWin, "VICTORY"
		} else {
			baseColor, stateLabel = ColorLose, "DEFEAT"
		}
	case m.SetupPhase:
		baseColor, stateLabel = ColorSetup, "SETUP PHASE"
	case m.View.Turn == m.PlayerID:
		baseColor, stateLabel = ColorMyTurn, "YOUR TURN"
	default:
		baseColor, stateLabel = ColorOpTurn, "OPPONENT'S TURN"
	}

	styleBorder := StyleBoardBorder.BorderForeground(baseColor)
	styleLabel := lipgloss.NewStyle().Foreground(baseColor).Bold(true)

	instructions := styleLabel.Render(m.getInstructions())

	showMyCursor := m.SetupPhase && m.CurrentShipIdx < len(standardFleet)
	showOpponentCursor := !m.SetupPhase && m.View.Phase == dto.PhasePlaying && m.View.Turn == m.PlayerID

	myBoard := m.renderBoard(m.myBoard(), showMyCursor, true, &styleBorder)
	opponentBoard := m.renderBoard(m.opponentBoard(), showOpponentCursor, false, &styleBorder)

	leftPanel := lipgloss.JoinVertical(
		lipgloss.Left,
		styleLabel.Render(stateLabel),
		styleLabel.Render("YOUR FLEET"),
		myBoard,
	)

	boards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().MarginRight(4).Render(leftPanel),
		lipgloss.JoinVertical(lipgloss.Left, "", styleLabel.Render("ENEMY WATERS"), opponentBoard),
	)

	return fmt.Sprintf("%s\n\n%s", boards, instructions)
}

func (m *Model) getInstructions() string {
	switch {
	case m.View.Phase == dto.PhaseFinished:
		result := "LOSE"
		if m.View.Winner == m.PlayerID {
			result = "WIN"
		}
		return fmt.Sprintf("MATCH OVER - YOU %s! Winner: %s", result, m.View.Winner)
	case m.SetupPhase:
		if m.CurrentShipIdx < len(standardFleet) {
			ship := standardFleet[m.CurrentShipIdx]
			orient := "HORZ"
			if m.ShipOrientation {
				orient = "VERT"
			}
			action := "Waiting for match..."
			if m.View.Phase == dto.PhaseSetup {
				action = "[Enter] Place"
			}
			return fmt.Sprintf(
				"SETUP: Place %s (size %d, %s) | [Arrows] Move | [R] Rotate | %s",
				ship.Name, ship.Size, orient, action,
			)
		}
		return "SETUP: Waiting for opponent..."
	case m.View.Turn == m.PlayerID:
		return "YOUR TURN: Select target on enemy board | [Arrows] Move | [Enter] Fire"
	default:
		return "OPPONENT'S TURN: Please wait..."
	}
}

func (m *Model) renderBoard(board dto.BoardView, showCursor, isMe bool, borderStyle *lipgloss.Style) string {
	var rows []string

	header := "  "
	for x := 0; x < board.Size; x++ {
		header += fmt.Sprintf("%d ", x)
	}
	rows = append(rows, header)

	for y := 0; y < board.Size; y++ {
		rowStr := fmt.Sprintf("%c ", 'A'+y)
		for x := 0; x < board.Size; x++ {
			rowStr += m.renderCell(x, y, board.Grid[y][x], board, isMe, showCursor) + " "
		}
		rows = append(rows, rowStr)
	}

	return borderStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderCell(x, y int, cell dto.CellState, board dto.BoardView, isMe, showCursor bool) string {
	symbol := "·"
	style := StyleCellEmpty

	switch cell {
	case dto.CellShip:
		symbol, style = "S", StyleCellShip
	case dto.CellHit:
		symbol, style = "X", StyleCellHit
	case dto.CellMiss:
		symbol, style = "O", StyleCellMiss
	case dto.CellSunk:
		symbol, style = "#", StyleCellSunk
	case dto.CellUnknown:
		symbol, style = "~", StyleCellUnknown
	}

	rendered := style.Render(symbol)

	if ghost, ok := m.getGhostSymbol(x, y, board, isMe, symbol); ok {
		rendered = ghost
	}
	if showCursor && x == m.CursorX && y == m.CursorY {
		rendered = StyleCursor.Render(symbol)
	}

	return rendered
}

func (m *Model) getGhostSymbol(x, y int, board dto.BoardView, isMe bool, symbol string) (string, bool) {
	if !isMe || !m.SetupPhase || m.CurrentShipIdx >= len(standardFleet) {
		return "", false
	}

	ship := standardFleet[m.CurrentShipIdx]
	isGhost := false

	if m.ShipOrientation {
		if x == m.CursorX && y >= m.CursorY && y < m.CursorY+ship.Size {
			isGhost = true
		}
	} else if y == m.CursorY && x >= m.CursorX && x < m.CursorX+ship.Size {
		isGhost = true
	}

	if isGhost {
		if err := rules.CanPlaceShip(board, ship.Size, m.CursorX, m.CursorY, m.ShipOrientation); err == nil {
			return StyleCellGhost.Render(symbol), true
		}
	}
	return "", false
}

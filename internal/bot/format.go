package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/nautica/battleship-zk/internal/dto"
)

// CoordinateToChess converts numeric coordinates to chess-style (A-J, 1-10).
func CoordinateToChess(x, y int) string {
	if x < 0 || x > 9 || y < 0 || y > 9 {
		return fmt.Sprintf("(%d,%d)", x, y)
	}
	return fmt.Sprintf("%c%d", rune('A'+x), y+1)
}

// ChessToCoordinate converts chess-style coordinates to numeric (0-9, 0-9).
func ChessToCoordinate(chess string) (x, y int, err error) {
	chess = strings.ToUpper(strings.TrimSpace(chess))
	if len(chess) < 2 {
		return 0, 0, fmt.Errorf("invalid coordinate format")
	}

	col := chess[0]
	if col < 'A' || col > 'J' {
		return 0, 0, fmt.Errorf("column must be A-J")
	}
	x = int(col - 'A')

	var row int
	if _, err := fmt.Sscanf(chess[1:], "%d", &row); err != nil || row < 1 || row > 10 {
		return 0, 0, fmt.Errorf("row must be 1-10")
	}
	y = row - 1

	return x, y, nil
}

// FormatMatchView renders a match's current view from viewerID's
// perspective: their own board shows ship placement, the opponent's
// board stays fog-of-war.
func FormatMatchView(view *dto.MatchView, viewerID string) *discordgo.MessageEmbed {
	me, opponent := view.Host, view.Guest
	if viewerID == view.Guest.ID {
		me, opponent = view.Guest, view.Host
	}

	embed := &discordgo.MessageEmbed{
		Title: "Battleship match",
		Color: colorForPhase(view.Phase),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Phase", Value: string(view.Phase), Inline: true},
		},
	}

	if view.Turn != "" {
		turnLabel := "Opponent"
		if view.Turn == viewerID {
			turnLabel = "You"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Current turn", Value: turnLabel, Inline: true,
		})
	}

	if view.Winner != "" {
		label := "Opponent won"
		if view.Winner == viewerID {
			label = "You won!"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Match over", Value: label, Inline: false,
		})
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Your board", Value: formatBoard(me.Board), Inline: false},
		&discordgo.MessageEmbedField{Name: "Opponent board", Value: formatBoard(opponent.Board), Inline: false},
	)

	return embed
}

func formatBoard(board dto.BoardView) string {
	var sb strings.Builder
	sb.WriteString("```\n   A B C D E F G H I J\n")
	for y := 0; y < board.Size; y++ {
		fmt.Fprintf(&sb, "%2d ", y+1)
		for x := 0; x < board.Size; x++ {
			sb.WriteString(cellToEmoji(board.Grid[y][x]))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("```")
	return sb.String()
}

func cellToEmoji(cell dto.CellState) string {
	switch cell {
	case dto.CellShip:
		return "#"
	case dto.CellHit:
		return "X"
	case dto.CellMiss:
		return "o"
	case dto.CellSunk:
		return "*"
	case dto.CellEmpty, dto.CellUnknown:
		fallthrough
	default:
		return "."
	}
}

func colorForPhase(phase dto.MatchPhase) int {
	switch phase {
	case dto.PhaseSetup, dto.PhaseAwaitingHandshake:
		return 0xffaa00
	case dto.PhasePlaying:
		return 0x0099ff
	case dto.PhaseFinished:
		return 0x00ff00
	default:
		return 0x808080
	}
}

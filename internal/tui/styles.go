package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorWin    = lipgloss.Color("#FFD700")
	ColorLose   = lipgloss.Color("#DC143C")
	ColorSetup  = lipgloss.Color("#00BFFF")
	ColorMyTurn = lipgloss.Color("#00FA9A")
	ColorOpTurn = lipgloss.Color("#FF4500")

	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	StyleBoardBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	StyleCellEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	StyleCellShip    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	StyleCellHit     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	StyleCellMiss    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	StyleCellSunk    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	StyleCellUnknown = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	StyleCellGhost   = lipgloss.NewStyle().Foreground(lipgloss.Color("57"))
	StyleCursor      = lipgloss.NewStyle().
				Background(lipgloss.Color("252")).
				Foreground(lipgloss.Color("0"))

	StyleErrorBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Padding(1, 2).
			Align(lipgloss.Center)
)

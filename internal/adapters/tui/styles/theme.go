package styles

import (
	"github.com/charmbracelet/lipgloss"

	"hvacguide/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#0EA5E9") // Sky
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Priority colors
	PriorityP1 = lipgloss.Color("#EF4444")
	PriorityP2 = lipgloss.Color("#F59E0B")
	PriorityP3 = lipgloss.Color("#60A5FA")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// List rows
	Row = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Pillar = lipgloss.NewStyle().
		Bold(true)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// PriorityColor returns the badge color for an editorial priority
func PriorityColor(p domain.Priority) lipgloss.Color {
	switch p {
	case domain.PriorityP1:
		return PriorityP1
	case domain.PriorityP2:
		return PriorityP2
	case domain.PriorityP3:
		return PriorityP3
	default:
		return Muted
	}
}

// PriorityBadge renders a fixed-width priority label ("P1", "--")
func PriorityBadge(p domain.Priority) string {
	return lipgloss.NewStyle().Foreground(PriorityColor(p)).Bold(true).Render(p.String())
}

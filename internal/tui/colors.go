package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tally/internal/tasks"
)

// Color constants for the tally TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorDisabledText  = "#6D7383" // Done subtasks, muted text
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Logo, active borders
	ColorAccentBright = "#A78BFA" // Cursor, current field

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
)

// ProgressColors maps progress color tokens to their hex values
var ProgressColors = map[tasks.Color]string{
	tasks.ColorSuccess: ColorSuccess,
	tasks.ColorDanger:  ColorError,
	tasks.ColorInfo:    "#3B82F6",
	tasks.ColorNeutral: "#6B7280",
}

// ProgressHex returns the hex color of the bar for progress
func ProgressHex(progress float64) string {
	return ProgressColors[tasks.ProgressColor(progress)]
}

var (
	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText))

	activeLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorAccentBright)).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Italic(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Strikethrough(true)
)

// cardStyle is the bordered box around a task, highlighted when it holds the cursor
func cardStyle(width int, active bool) lipgloss.Style {
	border := ColorBorder
	if active {
		border = ColorAccentMain
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(width)
}

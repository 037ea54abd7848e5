package common

import "github.com/charmbracelet/lipgloss"

const (
	// === Page Colors ===
	COLOR_WHITE = "#f9f9f9" // Header chevron, primary text on the page

	// === Card Colors ===
	COLOR_QUESTION_BG      = "#b1d7ff" // "내가 보낸 고민" card
	COLOR_QUESTION_CAPTION = "#4a8dd2" // Caption and footer on the question card
	COLOR_REPLY_BG         = "#fffffb" // Reply and no-reply cards, delete button
	COLOR_REPLY_CAPTION    = "#dcdccf" // Caption and footer on the reply card
	COLOR_CARD_TEXT        = "#3a3b49" // Body text on cards
	COLOR_PLACEHOLDER      = "#8a8a9a" // No-reply placeholder text

	// === Semantic Colors ===
	COLOR_ERROR   = "196" // ANSI 196 (#ff0000) - Errors, delete actions
	COLOR_MUTED   = "245" // ANSI 245 (#8a8a8a) - Help text, hints
	COLOR_DIM     = "240" // ANSI 240 (#585858) - Skeleton blocks
	COLOR_SUCCESS = "48"  // ANSI 48 (#00ff87) - Spinner
)

var (
	HelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_MUTED)).Padding(0, 2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ERROR)).
			Bold(true)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_MUTED)).
			Italic(true)
)

// DefaultWindowWidth returns the usable width after accounting for outer margins
func DefaultWindowWidth(width int) int {
	return width - 4
}

// DefaultWindowHeight returns the usable height after accounting for outer margins
func DefaultWindowHeight(height int) int {
	return height - 2
}

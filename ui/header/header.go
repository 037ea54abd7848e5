package header

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/letterdesk/ui/common"
	"github.com/deemkeen/letterdesk/util"
	"github.com/mattn/go-runewidth"
)

const chevronLeft = "‹"

type Model struct {
	Width int
	Title string
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	return GetHeaderStyle(m.Title, m.Width)
}

// GetHeaderStyle renders the back affordance on the left, the page title in
// the middle and the version on the right, spaced by display width so that
// Hangul titles stay centred.
func GetHeaderStyle(title string, width int) string {
	if width <= 0 {
		width = common.FallbackWidth
	}

	leftText := chevronLeft + " esc"
	rightText := "v" + util.GetVersion()

	leftLen := runewidth.StringWidth(leftText)
	centerLen := runewidth.StringWidth(title)
	rightLen := runewidth.StringWidth(rightText)

	totalSpacing := maxInt(width-leftLen-centerLen-rightLen-common.PagePaddingX*2, 2)
	leftSpacing := totalSpacing / 2
	rightSpacing := totalSpacing - leftSpacing

	pad := strings.Repeat(" ", common.PagePaddingX)
	line := pad + leftText +
		strings.Repeat(" ", leftSpacing) + title +
		strings.Repeat(" ", rightSpacing) + rightText + pad

	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Foreground(lipgloss.Color(common.COLOR_WHITE)).
		Bold(true).
		Render(line)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

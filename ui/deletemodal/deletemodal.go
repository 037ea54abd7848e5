package deletemodal

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/letterdesk/ui/common"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_ERROR)).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_WHITE)).
			Bold(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_MUTED))

	confirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_ERROR)).
			Bold(true)
)

// ConfirmMsg is emitted when the user confirms. The page decides whether a
// deletion may start; the modal does not guard against repeats.
type ConfirmMsg struct{}

// CancelMsg is emitted when the user dismisses the modal.
type CancelMsg struct{}

type KeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm: key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "삭제")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "취소")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type Model struct {
	Open       bool
	IsDeleting bool
	Width      int
	Keys       KeyMap
}

func New() Model {
	return Model{Keys: DefaultKeyMap()}
}

func (m Model) Show() Model {
	m.Open = true
	m.IsDeleting = false
	return m
}

func (m Model) Hide() Model {
	m.Open = false
	m.IsDeleting = false
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.Open {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.Keys.Confirm):
		return m, func() tea.Msg { return ConfirmMsg{} }
	case key.Matches(keyMsg, m.Keys.Cancel):
		if m.IsDeleting {
			return m, nil
		}
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, nil
}

func (m Model) View() string {
	if !m.Open {
		return ""
	}

	title := titleStyle.Render(common.DeleteConfirmTitle)
	body := bodyStyle.Render(common.DeleteConfirmBody)

	var actions string
	if m.IsDeleting {
		actions = confirmStyle.Render(common.DeletingText)
	} else {
		actions = confirmStyle.Render("[y] 삭제") + "   " + bodyStyle.Render("[n] 취소")
	}

	box := boxStyle
	if m.Width > 0 {
		box = box.Width(m.Width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", actions))
}

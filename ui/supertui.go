package ui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/letterdesk/ui/common"
	"github.com/deemkeen/letterdesk/ui/letterdetail"
)

const (
	minWidth  = 40
	minHeight = 16
)

// MainModel hosts the letter detail page for the letter named when the
// session started. There is no page behind it, so back ends the session.
type MainModel struct {
	width       int
	height      int
	current     string
	detailModel letterdetail.Model
}

func NewModel(archive letterdetail.Archive, letterId string, width int, height int) MainModel {

	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	return MainModel{
		width:       width,
		height:      height,
		current:     letterId,
		detailModel: letterdetail.InitialModel(archive, width, height),
	}
}

func (m MainModel) Init() tea.Cmd {
	letterId := m.current
	return func() tea.Msg { return common.OpenLetterMsg{LetterId: letterId} }
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detailModel.Width = msg.Width
		m.detailModel.Height = msg.Height
		return m, nil

	case common.OpenLetterMsg:
		m.current = msg.LetterId

	case common.NavigateBackMsg:
		log.Printf("Leaving letter %s", m.current)
		m.detailModel, _ = m.detailModel.Update(common.DeactivateViewMsg{})
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			log.Printf("Session closed on letter %s", m.current)
			m.detailModel, _ = m.detailModel.Update(common.DeactivateViewMsg{})
			return m, tea.Quit
		}
	}

	m.detailModel, cmd = m.detailModel.Update(msg)
	return m, cmd
}

func (m MainModel) View() string {

	if m.width < minWidth || m.height < minHeight {
		message := fmt.Sprintf(
			"터미널이 너무 작아요!\n\n최소 크기: %dx%d\n현재 크기: %dx%d",
			minWidth, minHeight, m.width, m.height,
		)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color(common.COLOR_ERROR)).
			Bold(true).
			Render(message)
	}

	return lipgloss.NewStyle().
		MaxHeight(m.height).
		Margin(1).
		Render(m.detailModel.View())
}

// Current returns the id of the letter on screen.
func (m MainModel) Current() string {
	return m.current
}

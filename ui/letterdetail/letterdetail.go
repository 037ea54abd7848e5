package letterdetail

import (
	"context"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/letterdesk/domain"
	"github.com/deemkeen/letterdesk/ui/common"
	"github.com/deemkeen/letterdesk/ui/deletemodal"
)

// Archive is the part of the member archive API the page needs.
type Archive interface {
	GetLetter(ctx context.Context, letterId string) (*domain.Letter, error)
	DeleteLetter(ctx context.Context, letterId string) error
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

type keyMap struct {
	Back   key.Binding
	Delete key.Binding
	Retry  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Back:   key.NewBinding(key.WithKeys("esc", "q", "backspace", "left"), key.WithHelp("esc", "뒤로")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "삭제")),
		Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "다시 시도")),
	}
}

// Model is the letter detail page. Only Update mutates it; network calls run
// as commands and report back with letterLoadedMsg and letterDeletedMsg.
type Model struct {
	Width  int
	Height int

	archive  Archive
	letterId string
	phase    Phase
	letter   *domain.Letter
	failure  string

	// fetchSeq identifies the current fetch; results carrying another
	// sequence or letter id are dropped.
	fetchSeq    int
	cancelFetch context.CancelFunc

	deleting     bool
	cancelDelete context.CancelFunc
	deleteErr    string
	modal        deletemodal.Model

	spinner spinner.Model
	keys    keyMap
	help    help.Model
}

type letterLoadedMsg struct {
	letterId string
	seq      int
	letter   *domain.Letter
	err      error
}

type letterDeletedMsg struct {
	letterId string
	err      error
}

func InitialModel(archive Archive, width, height int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_SUCCESS))

	return Model{
		Width:   width,
		Height:  height,
		archive: archive,
		phase:   PhaseIdle,
		modal:   deletemodal.New(),
		spinner: s,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Phase() Phase { return m.phase }
func (m Model) LetterId() string { return m.letterId }
func (m Model) Letter() *domain.Letter { return m.letter }
func (m Model) Failure() string { return m.failure }
func (m Model) Deleting() bool { return m.deleting }
func (m Model) DeleteError() string { return m.deleteErr }
func (m Model) ModalOpen() bool { return m.modal.Open }
func (m Model) Modal() deletemodal.Model { return m.modal }

// load starts fetching letterId, superseding whatever was shown or in flight.
func (m Model) load(letterId string) (Model, tea.Cmd) {
	m = m.stopRequests()

	m.letterId = strings.TrimSpace(letterId)
	m.fetchSeq++
	m.letter = nil
	m.failure = ""
	m.deleting = false
	m.deleteErr = ""
	m.modal = m.modal.Hide()

	if m.letterId == "" {
		m.phase = PhaseFailed
		m.failure = common.MissingLetterIdText
		log.Println("Letter detail opened without a letter id")
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel
	m.phase = PhaseLoading
	return m, tea.Batch(fetchLetterCmd(ctx, m.archive, m.letterId, m.fetchSeq), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.OpenLetterMsg:
		return m.load(msg.LetterId)

	case common.DeactivateViewMsg:
		return m.stopRequests(), nil

	case letterLoadedMsg:
		if msg.letterId != m.letterId || msg.seq != m.fetchSeq || m.phase != PhaseLoading {
			log.Printf("Dropping stale result for letter %s (seq %d)", msg.letterId, msg.seq)
			return m, nil
		}
		if m.cancelFetch != nil {
			m.cancelFetch()
			m.cancelFetch = nil
		}
		if msg.err != nil {
			log.Printf("Error fetching letter %s: %v", msg.letterId, msg.err)
			m.phase = PhaseFailed
			m.failure = common.FetchErrorText(msg.err)
			return m, nil
		}
		m.phase = PhaseLoaded
		m.letter = msg.letter
		return m, nil

	case spinner.TickMsg:
		if m.phase != PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case deletemodal.ConfirmMsg:
		return m.confirmDelete()

	case deletemodal.CancelMsg:
		if !m.deleting {
			m.modal = m.modal.Hide()
		}
		return m, nil

	case letterDeletedMsg:
		if msg.letterId != m.letterId || !m.deleting {
			return m, nil
		}
		m.deleting = false
		if m.cancelDelete != nil {
			m.cancelDelete()
			m.cancelDelete = nil
		}
		m.modal = m.modal.Hide()
		if msg.err != nil {
			log.Printf("Error deleting letter %s: %v", msg.letterId, msg.err)
			m.deleteErr = common.DeleteErrorText(msg.err)
			return m, nil
		}
		log.Printf("Letter %s deleted", msg.letterId)
		m.phase = PhaseIdle
		m.letter = nil
		return m, func() tea.Msg { return common.NavigateBackMsg{} }

	case tea.KeyMsg:
		if m.modal.Open {
			var cmd tea.Cmd
			m.modal, cmd = m.modal.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return common.NavigateBackMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if m.phase == PhaseLoaded && m.letter != nil {
				m.deleteErr = ""
				m.modal = m.modal.Show()
			}
		case key.Matches(msg, m.keys.Retry):
			if m.phase == PhaseFailed && m.letterId != "" {
				return m.load(m.letterId)
			}
		}
	}
	return m, nil
}

// confirmDelete is the only way into the deleting state: a loaded letter,
// an open modal and no deletion already in flight.
func (m Model) confirmDelete() (Model, tea.Cmd) {
	if m.phase != PhaseLoaded || m.letter == nil || !m.modal.Open || m.deleting {
		return m, nil
	}
	m.deleting = true
	m.deleteErr = ""
	m.modal.IsDeleting = true

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelDelete = cancel
	return m, deleteLetterCmd(ctx, m.archive, m.letterId)
}

// stopRequests cancels the fetch and the delete still in flight, if any.
func (m Model) stopRequests() Model {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
	if m.cancelDelete != nil {
		m.cancelDelete()
		m.cancelDelete = nil
	}
	return m
}

func fetchLetterCmd(ctx context.Context, archive Archive, letterId string, seq int) tea.Cmd {
	return func() tea.Msg {
		letter, err := archive.GetLetter(ctx, letterId)
		return letterLoadedMsg{letterId: letterId, seq: seq, letter: letter, err: err}
	}
}

func deleteLetterCmd(ctx context.Context, archive Archive, letterId string) tea.Cmd {
	return func() tea.Msg {
		err := archive.DeleteLetter(ctx, letterId)
		return letterDeletedMsg{letterId: letterId, err: err}
	}
}

package letterdetail

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/letterdesk/domain"
	"github.com/deemkeen/letterdesk/ui/common"
	"github.com/deemkeen/letterdesk/ui/header"
)

const pageTitle = "편지"

var (
	questionCardStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(common.COLOR_QUESTION_BG)).
				Padding(common.CardPaddingY, common.CardPaddingX)

	questionCaptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(common.COLOR_QUESTION_CAPTION)).
				Background(lipgloss.Color(common.COLOR_QUESTION_BG)).
				Bold(true)

	replyCardStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(common.COLOR_REPLY_BG)).
			Padding(common.CardPaddingY, common.CardPaddingX)

	replyCaptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(common.COLOR_REPLY_CAPTION)).
				Background(lipgloss.Color(common.COLOR_REPLY_BG)).
				Bold(true)

	noReplyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_PLACEHOLDER)).
			Background(lipgloss.Color(common.COLOR_REPLY_BG))

	deleteButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(common.COLOR_CARD_TEXT)).
				Background(lipgloss.Color(common.COLOR_REPLY_BG)).
				Padding(0, 2)

	skeletonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(common.COLOR_DIM))
)

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(header.GetHeaderStyle(pageTitle, m.Width))
	s.WriteString("\n\n")

	var body string
	switch m.phase {
	case PhaseLoading:
		body = m.loadingSkeleton()
	case PhaseLoaded:
		body = m.loadedView()
	case PhaseFailed:
		body = m.failedView()
	default:
		body = common.EmptyStyle.Render("표시할 편지가 없어요.")
	}
	s.WriteString(lipgloss.NewStyle().PaddingLeft(common.PagePaddingX).Render(body))
	s.WriteString("\n\n")
	s.WriteString(common.HelpStyle.Render(m.help.ShortHelpView(m.helpBindings())))

	return s.String()
}

func (m Model) helpBindings() []key.Binding {
	if m.modal.Open {
		return m.modal.Keys.ShortHelp()
	}
	switch m.phase {
	case PhaseLoaded:
		return []key.Binding{m.keys.Back, m.keys.Delete}
	case PhaseFailed:
		if m.letterId != "" {
			return []key.Binding{m.keys.Back, m.keys.Retry}
		}
	}
	return []key.Binding{m.keys.Back}
}

func (m Model) loadedView() string {
	cardWidth := common.CardWidth(m.Width)

	parts := []string{MyQuestionCard(m.letter, cardWidth)}
	if m.letter.Answered() {
		parts = append(parts, ReplyCard(m.letter.Reply, cardWidth))
	} else {
		parts = append(parts, NoReplyCard(cardWidth))
	}

	if m.modal.Open {
		modal := m.modal
		modal.Width = cardWidth
		parts = append(parts, modal.View())
	} else {
		parts = append(parts, lipgloss.PlaceHorizontal(cardWidth, lipgloss.Center, DeleteButton()))
	}

	if m.deleteErr != "" {
		parts = append(parts, common.ErrorStyle.Render(m.deleteErr))
	}

	return lipgloss.JoinVertical(lipgloss.Left, joinWithGap(parts)...)
}

func (m Model) failedView() string {
	lines := []string{common.ErrorStyle.Render(m.failure)}
	if m.letterId != "" {
		lines = append(lines, common.EmptyStyle.Render("r 키를 눌러 다시 불러올 수 있어요."))
	}
	return strings.Join(lines, "\n\n")
}

func (m Model) loadingSkeleton() string {
	cardWidth := common.CardWidth(m.Width)
	block := skeletonStyle.
		Width(cardWidth).
		Height(common.SkeletonBlockHeight).
		Render("")
	button := lipgloss.PlaceHorizontal(cardWidth, lipgloss.Center, m.spinner.View())
	return lipgloss.JoinVertical(lipgloss.Left, block, "", block, "", button)
}

// MyQuestionCard renders the member's own question.
func MyQuestionCard(l *domain.Letter, cardWidth int) string {
	inner := common.CardInnerWidth(cardWidth)
	caption := questionCaptionStyle.Render(common.QuestionCaption)
	content := lipgloss.NewStyle().
		Width(inner).
		Foreground(lipgloss.Color(common.COLOR_CARD_TEXT)).
		Background(lipgloss.Color(common.COLOR_QUESTION_BG)).
		Render(l.Content)
	footer := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Right).
		Foreground(lipgloss.Color(common.COLOR_QUESTION_CAPTION)).
		Background(lipgloss.Color(common.COLOR_QUESTION_BG)).
		Render(common.QuestionFooter(l))

	return questionCardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, caption, "", content, "", footer))
}

// ReplyCard renders an arrived reply. The date line is omitted when the
// archive gave no usable reply timestamp.
func ReplyCard(r *domain.Reply, cardWidth int) string {
	inner := common.CardInnerWidth(cardWidth)
	caption := replyCaptionStyle.Render(common.ReplyCaption)
	content := lipgloss.NewStyle().
		Width(inner).
		Foreground(lipgloss.Color(common.COLOR_CARD_TEXT)).
		Background(lipgloss.Color(common.COLOR_REPLY_BG)).
		Render(r.Content)

	footerStyle := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Right).
		Foreground(lipgloss.Color(common.COLOR_REPLY_CAPTION)).
		Background(lipgloss.Color(common.COLOR_REPLY_BG))
	var footer []string
	if date := common.ReplyDate(r); date != "" {
		footer = append(footer, footerStyle.Render(date))
	}
	footer = append(footer, footerStyle.Render(common.ReplyFrom(r)))

	return replyCardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, caption, "", content, "", strings.Join(footer, "\n")))
}

// NoReplyCard is shown while the letter waits for an answer.
func NoReplyCard(cardWidth int) string {
	inner := common.CardInnerWidth(cardWidth)
	return replyCardStyle.Width(cardWidth).Render(
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, noReplyStyle.Render(common.NoReplyText),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(common.COLOR_REPLY_BG))))
}

func DeleteButton() string {
	return deleteButtonStyle.Render("🗑 삭제 (d)")
}

func joinWithGap(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, p)
	}
	return out
}

package middleware

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/deemkeen/letterdesk/ui"
	"github.com/deemkeen/letterdesk/ui/letterdetail"
	"github.com/deemkeen/letterdesk/util"
	"github.com/muesli/termenv"
)

// MainTui serves the letter page to every interactive session. The letter is
// picked from the ssh command, e.g. `ssh -t host letterId=42`.
func MainTui(archive letterdetail.Archive) wish.Middleware {
	teaHandler := func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := s.Pty()
		if !active {
			wish.Fatalln(s, "no active terminal, use ssh -t")
			return nil, nil
		}

		letterId := util.LetterIdFromArgs(s.Command())
		if letterId != "" {
			if ok, reason := util.IsValidLetterId(letterId); !ok {
				log.Printf("Rejected letter id from %s: %s", s.RemoteAddr(), reason)
				wish.Fatalln(s, reason)
				return nil, nil
			}
		}

		m := ui.NewModel(archive, letterId, pty.Window.Width, pty.Window.Height)
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
	return bubbletea.MiddlewareWithColorProfile(teaHandler, termenv.ANSI256)
}

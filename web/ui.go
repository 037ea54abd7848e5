package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/deemkeen/letterdesk/archive"
	"github.com/deemkeen/letterdesk/domain"
	"github.com/deemkeen/letterdesk/ui/common"
	"github.com/deemkeen/letterdesk/util"
	"github.com/gin-gonic/gin"
)

const (
	LetterPagePath = "/mypage/letter"
	DeletePath     = "/mypage/letter/delete"

	deleteFailed = "failed"
	deleteGone   = "gone"
)

// LetterArchive is what the letter page needs from the member archive.
type LetterArchive interface {
	GetLetter(ctx context.Context, letterId string) (*domain.Letter, error)
	DeleteLetter(ctx context.Context, letterId string) error
}

type IndexPageData struct {
	Title   string
	Host    string
	SSHPort int
	Version string
	Action  string
	Back    string
}

type LetterPageData struct {
	Title       string
	Version     string
	LetterId    string
	Back        string
	Letter      *LetterView
	Error       string
	RetryURL    string
	DeleteError string
	Confirm     bool
	ConfirmURL  string
	CancelURL   string
	DeleteURL   string
	Text        PageText
}

// LetterView is a letter with every display string already formatted.
type LetterView struct {
	Content        string
	QuestionFooter string
	Answered       bool
	ReplyContent   string
	ReplyDate      string
	ReplyFrom      string
}

// PageText carries the fixed copy shared with the terminal page.
type PageText struct {
	QuestionCaption    string
	ReplyCaption       string
	NoReply            string
	DeleteConfirmTitle string
	DeleteConfirmBody  string
	Deleting           string
}

var pageText = PageText{
	QuestionCaption:    common.QuestionCaption,
	ReplyCaption:       common.ReplyCaption,
	NoReply:            common.NoReplyText,
	DeleteConfirmTitle: common.DeleteConfirmTitle,
	DeleteConfirmBody:  common.DeleteConfirmBody,
	Deleting:           common.DeletingText,
}

func newLetterView(l *domain.Letter) *LetterView {
	v := &LetterView{
		Content:        l.Content,
		QuestionFooter: common.QuestionFooter(l),
		Answered:       l.Answered(),
	}
	if v.Answered {
		v.ReplyContent = l.Reply.Content
		v.ReplyDate = common.ReplyDate(l.Reply)
		v.ReplyFrom = common.ReplyFrom(l.Reply)
	}
	return v
}

func HandleIndex(c *gin.Context, conf *util.AppConfig) {
	c.HTML(http.StatusOK, "index.html", IndexPageData{
		Title:   "편지함",
		Host:    conf.Conf.Host,
		SSHPort: conf.Conf.SshPort,
		Version: util.GetVersion(),
		Action:  LetterPagePath,
		Back:    "/",
	})
}

// HandleLetter renders one letter. It performs at most one archive GET.
func HandleLetter(c *gin.Context, letters LetterArchive) {
	letterId := strings.TrimSpace(c.Query("letterId"))
	back := resolveBack(c)

	data := LetterPageData{
		Title:    "편지",
		Version:  util.GetVersion(),
		LetterId: letterId,
		Back:     back,
		Text:     pageText,
	}

	if letterId == "" {
		data.Error = common.MissingLetterIdText
		c.HTML(http.StatusBadRequest, "letter.html", data)
		return
	}
	if ok, reason := util.IsValidLetterId(letterId); !ok {
		log.Printf("Rejected letter id %q: %s", letterId, reason)
		data.Error = common.FetchErrorText(archive.ErrInvalidId)
		c.HTML(http.StatusBadRequest, "letter.html", data)
		return
	}

	letter, err := letters.GetLetter(c.Request.Context(), letterId)
	if err != nil {
		log.Printf("Error fetching letter %s: %v", letterId, err)
		data.Error = common.FetchErrorText(err)
		data.RetryURL = letterURL(letterId, back, nil)
		status := http.StatusBadGateway
		if errors.Is(err, archive.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.HTML(status, "letter.html", data)
		return
	}

	data.Letter = newLetterView(letter)
	data.Confirm = c.Query("confirm") == "1"
	data.ConfirmURL = letterURL(letterId, back, url.Values{"confirm": {"1"}})
	data.CancelURL = letterURL(letterId, back, nil)
	data.DeleteURL = DeletePath

	switch c.Query("deleteError") {
	case deleteGone:
		data.DeleteError = common.DeleteErrorText(archive.ErrNotFound)
	case deleteFailed:
		data.DeleteError = common.DeleteErrorText(errors.New(deleteFailed))
	}

	c.HTML(http.StatusOK, "letter.html", data)
}

// HandleDeleteLetter performs one archive DELETE. Success goes back to where
// the letter page was opened from; failure returns to the letter with the
// error shown.
func HandleDeleteLetter(c *gin.Context, letters LetterArchive) {
	letterId := strings.TrimSpace(c.PostForm("letterId"))
	back := sanitizeBack(c.PostForm("back"), c.Request.Host)

	if ok, reason := util.IsValidLetterId(letterId); !ok {
		log.Printf("Rejected delete for letter id %q: %s", letterId, reason)
		c.Redirect(http.StatusSeeOther, letterURL(letterId, back, nil))
		return
	}

	if err := letters.DeleteLetter(c.Request.Context(), letterId); err != nil {
		log.Printf("Error deleting letter %s: %v", letterId, err)
		code := deleteFailed
		if errors.Is(err, archive.ErrNotFound) {
			code = deleteGone
		}
		c.Redirect(http.StatusSeeOther, letterURL(letterId, back, url.Values{"deleteError": {code}}))
		return
	}

	log.Printf("Letter %s deleted", letterId)
	if pointsAtLetter(back, letterId) {
		back = "/"
	}
	c.Redirect(http.StatusSeeOther, back)
}

func letterURL(letterId, back string, extra url.Values) string {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	q.Set("letterId", letterId)
	if back != "" && back != "/" {
		q.Set("back", back)
	}
	return LetterPagePath + "?" + q.Encode()
}

// resolveBack picks the page to return to: an explicit back parameter, else
// the referring page, else the index.
func resolveBack(c *gin.Context) string {
	if back := c.Query("back"); back != "" {
		return sanitizeBack(back, c.Request.Host)
	}
	ref := c.Request.Referer()
	if ref == "" {
		return "/"
	}
	back := sanitizeBack(ref, c.Request.Host)
	if strings.HasPrefix(back, LetterPagePath) {
		// Reloads and confirm links refer to this page itself.
		return "/"
	}
	return back
}

// sanitizeBack only allows paths on this host.
func sanitizeBack(raw, host string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "/"
	}
	if u.IsAbs() || u.Host != "" {
		if u.Host != host || (u.Scheme != "http" && u.Scheme != "https") {
			return "/"
		}
	}
	path := u.EscapedPath()
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}

func pointsAtLetter(back, letterId string) bool {
	u, err := url.Parse(back)
	if err != nil {
		return false
	}
	return u.Path == LetterPagePath && u.Query().Get("letterId") == letterId
}

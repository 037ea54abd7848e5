package archive

import (
	"log"
	"time"

	"github.com/deemkeen/letterdesk/domain"
	"github.com/deemkeen/letterdesk/util"
)

// QuestionInfo is the JSON body of GET /member/my/archive/question/{letterId}.
type QuestionInfo struct {
	LetterId        string  `json:"letterId,omitempty"`
	Content         string  `json:"content"`
	AuthorNickname  string  `json:"authorNickname"`
	CreatedAt       string  `json:"createdAt"`
	ReplyContent    *string `json:"replyContent"`
	ReplyAt         *string `json:"replyAt"`
	ReplierNickname *string `json:"replierNickname"`
}

// ToLetter converts the wire shape into a domain.Letter. A letter counts as
// answered only when replyContent is a non-empty string; replyAt and
// replierNickname are read from that point on and never decide the status.
func (q QuestionInfo) ToLetter(letterId string, loc *time.Location) domain.Letter {
	letter := domain.Letter{
		Id:             letterId,
		Content:        q.Content,
		AuthorNickname: q.AuthorNickname,
	}
	if q.LetterId != "" {
		letter.Id = q.LetterId
	}

	if createdAt, err := util.ParseTimestamp(q.CreatedAt, loc); err == nil {
		letter.CreatedAt = createdAt
	} else {
		log.Printf("Letter %s: unreadable createdAt: %v", letter.Id, err)
	}

	if q.ReplyContent == nil || *q.ReplyContent == "" {
		return letter
	}

	reply := &domain.Reply{Content: *q.ReplyContent}
	if q.ReplierNickname != nil {
		reply.ReplierNickname = *q.ReplierNickname
	}
	if q.ReplyAt != nil {
		if repliedAt, err := util.ParseTimestamp(*q.ReplyAt, loc); err == nil {
			reply.RepliedAt = repliedAt
		} else {
			log.Printf("Letter %s: unreadable replyAt: %v", letter.Id, err)
		}
	} else {
		log.Printf("Letter %s: reply without replyAt", letter.Id)
	}
	letter.Reply = reply
	return letter
}

// FromLetter is the inverse of ToLetter, used by the demo archive.
func FromLetter(l domain.Letter) QuestionInfo {
	q := QuestionInfo{
		LetterId:       l.Id,
		Content:        l.Content,
		AuthorNickname: l.AuthorNickname,
	}
	if !l.CreatedAt.IsZero() {
		q.CreatedAt = l.CreatedAt.Format(time.RFC3339)
	}
	if l.Reply != nil {
		content := l.Reply.Content
		nickname := l.Reply.ReplierNickname
		q.ReplyContent = &content
		q.ReplierNickname = &nickname
		if !l.Reply.RepliedAt.IsZero() {
			repliedAt := l.Reply.RepliedAt.Format(time.RFC3339)
			q.ReplyAt = &repliedAt
		}
	}
	return q
}

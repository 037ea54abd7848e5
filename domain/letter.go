package domain

import "time"

// Letter is a question sent from a member's archive together with the reply,
// if one has arrived. Reply is nil while the letter is unanswered; a reply is
// never partially present.
type Letter struct {
	Id             string
	Content        string
	AuthorNickname string
	CreatedAt      time.Time // zero when the archive sent an unreadable value
	Reply          *Reply
}

type Reply struct {
	Content         string
	RepliedAt       time.Time // zero when the archive omitted it
	ReplierNickname string
}

func (l *Letter) Answered() bool {
	return l != nil && l.Reply != nil
}

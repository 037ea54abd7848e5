package common

import (
	"errors"

	"github.com/deemkeen/letterdesk/archive"
	"github.com/deemkeen/letterdesk/domain"
	"github.com/deemkeen/letterdesk/util"
)

// Text shared by the terminal page and the web page.
const (
	QuestionCaption     = "내가 보낸 고민"
	ReplyCaption        = "나에게 도착한 편지"
	NoReplyText         = "아직 답변이 달리지 않았어요!"
	DeleteConfirmTitle  = "편지를 삭제할까요?"
	DeleteConfirmBody   = "삭제한 편지는 다시 볼 수 없어요."
	DeletingText        = "삭제 중..."
	MissingLetterIdText = "편지 번호가 없어요."
)

// QuestionFooter is the right-aligned line under the question: the send date
// once the letter is answered, the author otherwise.
func QuestionFooter(l *domain.Letter) string {
	if l.Answered() && !l.CreatedAt.IsZero() {
		return util.FormatLetterDate(l.CreatedAt)
	}
	return "작성자: " + l.AuthorNickname
}

// ReplyDate is empty when the archive sent no usable reply timestamp.
func ReplyDate(r *domain.Reply) string {
	if r == nil || r.RepliedAt.IsZero() {
		return ""
	}
	return util.FormatLetterDate(r.RepliedAt)
}

func ReplyFrom(r *domain.Reply) string {
	return "from. " + r.ReplierNickname
}

// FetchErrorText turns a GET failure into a user facing message.
func FetchErrorText(err error) string {
	var se *archive.StatusError
	switch {
	case errors.Is(err, archive.ErrMissingId):
		return MissingLetterIdText
	case errors.Is(err, archive.ErrInvalidId):
		return "편지 번호가 올바르지 않아요."
	case errors.Is(err, archive.ErrNotFound):
		return "편지를 찾을 수 없어요. 이미 삭제되었을 수 있어요."
	case errors.As(err, &se):
		return "편지를 불러오지 못했어요. 잠시 후 다시 시도해 주세요."
	default:
		return "편지를 불러오지 못했어요. 네트워크 연결을 확인해 주세요."
	}
}

// DeleteErrorText turns a DELETE failure into a user facing message.
func DeleteErrorText(err error) string {
	if errors.Is(err, archive.ErrNotFound) {
		return "이미 삭제된 편지예요."
	}
	return "편지를 삭제하지 못했어요. 다시 시도해 주세요."
}

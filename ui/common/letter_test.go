package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/deemkeen/letterdesk/archive"
	"github.com/deemkeen/letterdesk/domain"
)

func TestQuestionFooter(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	unanswered := &domain.Letter{AuthorNickname: "alice", CreatedAt: createdAt}
	if got := QuestionFooter(unanswered); got != "작성자: alice" {
		t.Errorf("Unanswered footer = %q", got)
	}

	answered := &domain.Letter{
		AuthorNickname: "alice",
		CreatedAt:      createdAt,
		Reply:          &domain.Reply{Content: "r"},
	}
	if got := QuestionFooter(answered); got != "2024년 1월 1일 오전 10시" {
		t.Errorf("Answered footer = %q", got)
	}

	answered.CreatedAt = time.Time{}
	if got := QuestionFooter(answered); got != "작성자: alice" {
		t.Errorf("Answered footer without createdAt should fall back to author, got %q", got)
	}
}

func TestReplyDate(t *testing.T) {
	if got := ReplyDate(nil); got != "" {
		t.Errorf("Expected empty for nil reply, got %q", got)
	}
	if got := ReplyDate(&domain.Reply{Content: "r"}); got != "" {
		t.Errorf("Expected empty for missing timestamp, got %q", got)
	}
	r := &domain.Reply{RepliedAt: time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)}
	if got := ReplyDate(r); got != "2024년 1월 2일 오후 3시" {
		t.Errorf("ReplyDate = %q", got)
	}
}

func TestErrorTexts(t *testing.T) {
	if got := FetchErrorText(archive.ErrMissingId); got != MissingLetterIdText {
		t.Errorf("Missing id text = %q", got)
	}
	wrapped := fmt.Errorf("GET: %w", archive.ErrNotFound)
	if got := FetchErrorText(wrapped); got == FetchErrorText(errors.New("boom")) {
		t.Error("Not found should have its own message")
	}
	if got := FetchErrorText(&archive.StatusError{Code: 500}); got == "" {
		t.Error("Expected message for status error")
	}
	if DeleteErrorText(archive.ErrNotFound) == DeleteErrorText(errors.New("boom")) {
		t.Error("Delete of a missing letter should have its own message")
	}
}

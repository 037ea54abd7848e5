package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deemkeen/letterdesk/archive"
	"github.com/deemkeen/letterdesk/db"
	"github.com/deemkeen/letterdesk/ui/common"
	"github.com/deemkeen/letterdesk/util"
	"github.com/gin-gonic/gin"
)

// setupDemo starts the full HTTP surface backed by the sqlite demo archive,
// with the letter page talking to it over HTTP like in production.
func setupDemo(t *testing.T, token string) (*httptest.Server, *archive.Client, []string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ids, err := store.SeedDemoLetters(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	conf := &util.AppConfig{}
	conf.Conf.ArchiveToken = token
	conf.Conf.RateLimit = 1000
	conf.Conf.RateBurst = 1000

	client := &lazyClient{}
	g, err := Router(conf, client, store)
	if err != nil {
		t.Fatalf("Router failed: %v", err)
	}
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)

	client.Client = archive.NewClient(srv.URL, token, 5*time.Second, time.UTC)
	return srv, client.Client, ids
}

// lazyClient lets the router be built before the server URL is known.
type lazyClient struct {
	*archive.Client
}

func TestDemoArchive_GetLetter(t *testing.T) {
	_, client, ids := setupDemo(t, "")

	waiting, err := client.GetLetter(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("GetLetter failed: %v", err)
	}
	if waiting.Answered() {
		t.Error("Expected unanswered demo letter")
	}

	answered, err := client.GetLetter(context.Background(), ids[1])
	if err != nil {
		t.Fatalf("GetLetter failed: %v", err)
	}
	if !answered.Answered() || answered.Reply.RepliedAt.IsZero() {
		t.Errorf("Expected answered demo letter with reply time, got %+v", answered.Reply)
	}
}

func TestDemoArchive_DeleteLetter(t *testing.T) {
	_, client, ids := setupDemo(t, "")

	if err := client.DeleteLetter(context.Background(), ids[0]); err != nil {
		t.Fatalf("DeleteLetter failed: %v", err)
	}
	if _, err := client.GetLetter(context.Background(), ids[0]); !errors.Is(err, archive.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := client.DeleteLetter(context.Background(), ids[0]); !errors.Is(err, archive.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDemoArchive_RequiresToken(t *testing.T) {
	srv, _, ids := setupDemo(t, "secret")

	anonymous := archive.NewClient(srv.URL, "", 5*time.Second, time.UTC)
	_, err := anonymous.GetLetter(context.Background(), ids[0])
	var se *archive.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 status error, got %v", err)
	}
}

func TestDemoArchive_LetterPageEndToEnd(t *testing.T) {
	srv, _, ids := setupDemo(t, "secret")

	resp, err := http.Get(srv.URL + "/mypage/letter?letterId=" + ids[1])
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, common.ReplyCaption) || !strings.Contains(body, "from. 따뜻한우체부") {
		t.Errorf("Expected the reply card, body:\n%s", body)
	}
}

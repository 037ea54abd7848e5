package db

import (
	"errors"
	"testing"
	"time"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndReadLetter(t *testing.T) {
	db := setupTestDB(t)
	createdAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	id, err := db.CreateLetter("c", "alice", createdAt)
	if err != nil {
		t.Fatalf("CreateLetter failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a generated id")
	}

	letter, err := db.ReadLetterById(id)
	if err != nil {
		t.Fatalf("ReadLetterById failed: %v", err)
	}
	if letter.Id != id || letter.Content != "c" || letter.AuthorNickname != "alice" {
		t.Errorf("Unexpected letter %+v", letter)
	}
	if !letter.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected created_at %v, got %v", createdAt, letter.CreatedAt)
	}
	if letter.Answered() {
		t.Error("New letter should be unanswered")
	}
}

func TestAnswerLetter(t *testing.T) {
	db := setupTestDB(t)
	id, _ := db.CreateLetter("c", "alice", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	repliedAt := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)

	if err := db.AnswerLetter(id, "r", "bob", repliedAt); err != nil {
		t.Fatalf("AnswerLetter failed: %v", err)
	}

	letter, err := db.ReadLetterById(id)
	if err != nil {
		t.Fatalf("ReadLetterById failed: %v", err)
	}
	if !letter.Answered() {
		t.Fatal("Expected answered letter")
	}
	if letter.Reply.Content != "r" || letter.Reply.ReplierNickname != "bob" {
		t.Errorf("Unexpected reply %+v", letter.Reply)
	}
	if !letter.Reply.RepliedAt.Equal(repliedAt) {
		t.Errorf("Expected reply_at %v, got %v", repliedAt, letter.Reply.RepliedAt)
	}
}

func TestAnswerMissingLetter(t *testing.T) {
	db := setupTestDB(t)
	err := db.AnswerLetter("nope", "r", "bob", time.Now())
	if !errors.Is(err, ErrLetterNotFound) {
		t.Errorf("Expected ErrLetterNotFound, got %v", err)
	}
}

func TestDeleteLetter(t *testing.T) {
	db := setupTestDB(t)
	id, _ := db.CreateLetter("c", "alice", time.Now())

	if err := db.DeleteLetterById(id); err != nil {
		t.Fatalf("DeleteLetterById failed: %v", err)
	}
	if _, err := db.ReadLetterById(id); !errors.Is(err, ErrLetterNotFound) {
		t.Errorf("Expected ErrLetterNotFound after delete, got %v", err)
	}
	if err := db.DeleteLetterById(id); !errors.Is(err, ErrLetterNotFound) {
		t.Errorf("Second delete should report ErrLetterNotFound, got %v", err)
	}
}

func TestSeedDemoLetters(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ids, err := db.SeedDemoLetters(now)
	if err != nil {
		t.Fatalf("SeedDemoLetters failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 ids, got %v", ids)
	}

	waiting, err := db.ReadLetterById(ids[0])
	if err != nil {
		t.Fatalf("ReadLetterById failed: %v", err)
	}
	if waiting.Answered() {
		t.Error("First demo letter should be unanswered")
	}

	answered, err := db.ReadLetterById(ids[1])
	if err != nil {
		t.Fatalf("ReadLetterById failed: %v", err)
	}
	if !answered.Answered() {
		t.Error("Second demo letter should be answered")
	}

	// Seeding again keeps the existing rows.
	again, err := db.SeedDemoLetters(now)
	if err != nil {
		t.Fatalf("Second SeedDemoLetters failed: %v", err)
	}
	if count, _ := db.CountLetters(); count != 2 || len(again) != 2 {
		t.Errorf("Expected 2 letters after reseed, got %d (%v)", count, again)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	for i := 0; i < 2; i++ {
		if err := db.RunMigrations(); err != nil {
			t.Fatalf("RunMigrations run %d failed: %v", i+1, err)
		}
	}

	id, err := db.CreateLetter("c", "alice", time.Now())
	if err != nil {
		t.Fatalf("CreateLetter after migrations failed: %v", err)
	}
	if err := db.AnswerLetter(id, "r", "bob", time.Now()); err != nil {
		t.Errorf("replier_nickname column missing: %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-02T15:00:00Z", time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)},
		{"2024-01-02 15:00:00", time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)},
		{"2024-01-02T15:00:00+09:00", time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseTimestamp(tt.in)
		if err != nil {
			t.Errorf("parseTimestamp(%q) failed: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := parseTimestamp(""); err == nil {
		t.Error("Expected error for empty timestamp")
	}
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/deemkeen/letterdesk/domain"
	"github.com/deemkeen/letterdesk/util"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// DB is the demo archive store.
type DB struct {
	db *sql.DB
}

var (
	dbInstance *DB
	dbOnce     sync.Once

	ErrLetterNotFound = errors.New("letter not found")
)

const maxBusyRetries = 5

const (
	sqlInsertLetter = `INSERT INTO letters(id, content, author_nickname, created_at) VALUES (?, ?, ?, ?)`
	sqlAnswerLetter = `UPDATE letters SET reply_content = ?, reply_at = ?, replier_nickname = ? WHERE id = ?`
	sqlDeleteLetter = `DELETE FROM letters WHERE id = ?`
	sqlSelectLetter = `SELECT id, content, author_nickname, created_at, reply_content, reply_at, replier_nickname
                        FROM letters WHERE id = ?`
	sqlSelectLetterIds = `SELECT id FROM letters ORDER BY created_at DESC`
	sqlCountLetters    = `SELECT COUNT(*) FROM letters`
)

// Open opens the sqlite file at path and brings the schema up to date.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if path == ":memory:" {
		// Every connection to :memory: is its own database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(8)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)

		var journalMode string
		if err := sqlDB.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode); err != nil {
			log.Printf("Warning: Failed to enable WAL mode: %v", err)
		} else {
			log.Printf("Database journal mode: %s", journalMode)
		}
	}
	sqlDB.Exec("PRAGMA busy_timeout = 5000")
	sqlDB.Exec("PRAGMA synchronous = NORMAL")

	d := &DB{db: sqlDB}
	if err := d.RunMigrations(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return d, nil
}

// GetDB returns the process wide demo store in letters.db.
func GetDB() *DB {
	dbOnce.Do(func() {
		dbPath := util.ResolveFilePath("letters.db")
		log.Printf("Using database at: %s", dbPath)

		d, err := Open(dbPath)
		if err != nil {
			panic(err)
		}
		dbInstance = d
	})
	return dbInstance
}

func (db *DB) Close() error {
	return db.db.Close()
}

// CreateLetter stores a new unanswered letter and returns its id.
func (db *DB) CreateLetter(content string, authorNickname string, createdAt time.Time) (string, error) {
	id := uuid.New().String()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertLetter, id, content, authorNickname, formatTimestamp(createdAt))
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AnswerLetter attaches a reply to an existing letter.
func (db *DB) AnswerLetter(id string, content string, replierNickname string, repliedAt time.Time) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlAnswerLetter, content, formatTimestamp(repliedAt), replierNickname, id)
		if err != nil {
			return err
		}
		return requireRow(res, id)
	})
}

func (db *DB) DeleteLetterById(id string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlDeleteLetter, id)
		if err != nil {
			return err
		}
		return requireRow(res, id)
	})
}

func (db *DB) ReadLetterById(id string) (*domain.Letter, error) {
	row := db.db.QueryRow(sqlSelectLetter, id)

	var letter domain.Letter
	var createdAtStr string
	var replyContent, replyAt, replierNickname sql.NullString
	err := row.Scan(&letter.Id, &letter.Content, &letter.AuthorNickname, &createdAtStr,
		&replyContent, &replyAt, &replierNickname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("letter %s: %w", id, ErrLetterNotFound)
	}
	if err != nil {
		return nil, err
	}

	letter.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("letter %s created_at: %w", id, err)
	}

	if replyContent.Valid && replyContent.String != "" {
		reply := &domain.Reply{Content: replyContent.String, ReplierNickname: replierNickname.String}
		if replyAt.Valid {
			if t, err := parseTimestamp(replyAt.String); err == nil {
				reply.RepliedAt = t
			} else {
				log.Printf("Letter %s has unreadable reply_at %q", id, replyAt.String)
			}
		}
		letter.Reply = reply
	}
	return &letter, nil
}

// ReadLetterIds lists every stored letter, newest first.
func (db *DB) ReadLetterIds() ([]string, error) {
	rows, err := db.db.Query(sqlSelectLetterIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (db *DB) CountLetters() (int, error) {
	var count int
	err := db.db.QueryRow(sqlCountLetters).Scan(&count)
	return count, err
}

// SeedDemoLetters fills an empty store with one unanswered and one answered
// letter and returns their ids in that order.
func (db *DB) SeedDemoLetters(now time.Time) ([]string, error) {
	count, err := db.CountLetters()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return db.ReadLetterIds()
	}

	waiting, err := db.CreateLetter("요즘 잠이 잘 안 와요. 어떻게 하면 좋을까요?", "새벽고양이", now.Add(-2*time.Hour))
	if err != nil {
		return nil, err
	}
	answered, err := db.CreateLetter("친구에게 서운한 마음을 어떻게 전해야 할지 모르겠어요.", "새벽고양이", now.Add(-48*time.Hour))
	if err != nil {
		return nil, err
	}
	err = db.AnswerLetter(answered, "솔직한 마음을 짧게 적어 먼저 건네 보세요. 친구도 기다리고 있을지 몰라요.", "따뜻한우체부", now.Add(-20*time.Hour))
	if err != nil {
		return nil, err
	}
	log.Printf("Seeded demo letters %s (waiting) and %s (answered)", waiting, answered)
	return []string{waiting, answered}, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("letter %s: %w", id, ErrLetterNotFound)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp accepts RFC3339 as written by formatTimestamp and the
// "2006-01-02 15:04:05" form sqlite uses for CURRENT_TIMESTAMP (UTC).
func parseTimestamp(timestampStr string) (time.Time, error) {
	if timestampStr == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339, timestampStr); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04:05", strings.TrimSuffix(timestampStr, "Z"), time.UTC)
}

// wrapTransaction runs f in a transaction, starting over when sqlite reports
// the database as busy.
func (db *DB) wrapTransaction(f func(tx *sql.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxBusyRetries; attempt++ {
		err = db.runTransaction(f)
		if !isBusy(err) {
			return err
		}
		log.Printf("Database busy, retrying transaction (attempt %d)", attempt+1)
		time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
	}
	return err
}

func (db *DB) runTransaction(f func(tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("error starting transaction: %s", err)
		return err
	}
	if err = f(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("error rolling back transaction: %s", rbErr)
		}
		if !errors.Is(err, ErrLetterNotFound) {
			log.Printf("error in transaction: %s", err)
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		log.Printf("error committing transaction: %s", err)
		return err
	}
	return nil
}

func isBusy(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlitelib.SQLITE_BUSY
}

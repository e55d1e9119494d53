package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

// Open opens the SQLite database at path, creating the parent directory if
// needed (volume mounts may start empty). WAL mode and a busy timeout keep
// concurrently dispatched command invocations from tripping over the single
// file.
func Open(path string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create database directory: %v", domain.ErrStorageUnavailable, err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database %s: %v", domain.ErrStorageUnavailable, path, err)
	}
	return db, nil
}

// LinkRepository persists message-to-issue links.
type LinkRepository struct {
	db *sqlx.DB
}

// NewLinkRepository creates a new LinkRepository.
func NewLinkRepository(db *sqlx.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Initialize ensures the issue_links table exists. Idempotent; called on every
// startup.
func (r *LinkRepository) Initialize(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS issue_links (
			source_message_id INTEGER PRIMARY KEY,
			issue_url         TEXT NOT NULL,
			issue_number      INTEGER NOT NULL,
			created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("%w: initialize schema: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Save inserts one link row. A second save for the same source message fails
// with domain.ErrDuplicateLink; the existing row is never overwritten.
func (r *LinkRepository) Save(ctx context.Context, sourceMessageID int64, issueURL string, issueNumber int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO issue_links (source_message_id, issue_url, issue_number) VALUES (?, ?, ?)`,
		sourceMessageID, issueURL, issueNumber)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: message %d", domain.ErrDuplicateLink, sourceMessageID)
		}
		return fmt.Errorf("%w: save link for message %d: %v", domain.ErrStorageUnavailable, sourceMessageID, err)
	}
	return nil
}

// Find retrieves the link for a source message.
func (r *LinkRepository) Find(ctx context.Context, sourceMessageID int64) (*domain.IssueLink, error) {
	var link domain.IssueLink
	err := r.db.GetContext(ctx, &link,
		`SELECT source_message_id, issue_url, issue_number
		 FROM issue_links WHERE source_message_id = ?`, sourceMessageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find link for message %d: %w", sourceMessageID, err)
	}
	return &link, nil
}

// HealthCheck reports whether the store can execute a trivial read against the
// table. Never returns an error; an unreachable store is simply unhealthy.
func (r *LinkRepository) HealthCheck(ctx context.Context) bool {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM issue_links`)
	return err == nil
}

func isConstraintViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

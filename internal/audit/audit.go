// Package audit keeps a sqlite journal of mutating operations (writes and
// deletes). The journal is advisory bookkeeping: recording failures are
// logged and swallowed so they never fail the operation itself.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/codefionn/fsgate/internal/logger"
)

// Journal handles sqlite operations for the audit log
type Journal struct {
	db     *sql.DB
	dbPath string
}

// Entry is one recorded operation.
type Entry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Operation   string    `json:"operation"`
	Path        string    `json:"path"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentHash string    `json:"content_hash,omitempty"`
}

// Open creates or opens the journal database at dbPath.
func Open(dbPath string) (*Journal, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	journal := &Journal{db: db, dbPath: dbPath}

	if err := journal.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return journal, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.db.Close()
}

// migrate ensures the journal schema exists.
func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		operation TEXT NOT NULL,
		path TEXT NOT NULL,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		content_hash TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_audit_entries_path ON audit_entries(path);
	`

	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create journal schema: %w", err)
	}
	return nil
}

// RecordWrite journals a successful write. The content hash lets an operator
// verify later what was stored without keeping the content itself.
func (j *Journal) RecordWrite(path string, content []byte) {
	hash := fmt.Sprintf("%016x", xxhash.Sum64(content))
	j.record("write", path, int64(len(content)), hash)
}

// RecordDelete journals a successful delete.
func (j *Journal) RecordDelete(path string) {
	j.record("delete", path, 0, "")
}

func (j *Journal) record(operation, path string, size int64, hash string) {
	_, err := j.db.Exec(
		"INSERT INTO audit_entries (operation, path, size_bytes, content_hash) VALUES (?, ?, ?, ?)",
		operation, path, size, hash,
	)
	if err != nil {
		logger.Warn("audit: failed to record %s of %s: %v", operation, path, err)
	}
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.Query(
		"SELECT id, timestamp, operation, path, size_bytes, COALESCE(content_hash, '') FROM audit_entries ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Operation, &e.Path, &e.SizeBytes, &e.ContentHash); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB holding annoview's reviewer data.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every pooled connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the database file path, or ":memory:".
func (d *DB) Path() string { return d.path }

// migrate runs all schema migrations.
func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS feedback (
    id TEXT PRIMARY KEY,
    filename TEXT NOT NULL,
    section_id TEXT NOT NULL,
    element_id TEXT NOT NULL,
    verdict TEXT NOT NULL CHECK(verdict IN ('keep','reject','unsure')),
    comment TEXT NOT NULL DEFAULT '',
    reviewer TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_feedback_element ON feedback(filename, section_id, element_id);
CREATE INDEX IF NOT EXISTS idx_feedback_created ON feedback(created_at);
`

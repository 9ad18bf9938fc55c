// Package storage persists tasks in SQLite and exposes CRUD operations with
// typed failures.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// InMemory opens a private in-memory database instead of a file.
const InMemory = ":memory:"

// DefaultFileName is the database file created inside the data directory.
const DefaultFileName = "tasks.db"

// SQLiteStore implements task persistence on SQLite.
//
// Writes go through writeMu so there is exactly one writer at a time; reads
// use the connection pool and may overlap each other.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	writeMu sync.Mutex
}

// NewSQLiteStore opens (creating if needed) the database at path.
// path is either InMemory or a file path; the parent directory is created.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := InMemory
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == InMemory {
		// Each connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{
		db:   db,
		path: path,
	}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- id is caller supplied and intentionally not unique; rowid keeps insertion order.
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER NOT NULL,
		title TEXT,
		content TEXT NOT NULL DEFAULT '',
		creation_date TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0 CHECK (completed IN (0, 1))
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_id ON tasks(id);
	CREATE INDEX IF NOT EXISTS idx_tasks_order ON tasks(creation_date DESC, id DESC);

	-- Durable process-wide flags (first launch marker and friends)
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Path returns the location the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

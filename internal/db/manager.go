package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Manager handles the database connection. It holds no schema knowledge;
// reconciliation is an explicit engine operation, never a side effect of
// opening a handle.
type Manager struct {
	db   *sql.DB
	path string
}

// NewManager creates a new database manager
func NewManager() *Manager {
	return &Manager{}
}

// Open opens the database connection. The file is created if it does not
// exist yet (fresh install case).
func (m *Manager) Open(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	m.db = db
	m.path = path

	// Test connection
	if err := m.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// DB returns the underlying handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Path returns the database file path.
func (m *Manager) Path() string {
	return m.path
}

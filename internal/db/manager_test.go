package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_OpenClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	manager := NewManager()
	err := manager.Open(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, manager.Path())
	assert.NotNil(t, manager.DB())

	assert.NoError(t, manager.Close())
}

func TestManager_OpenCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	manager := NewManager()
	require.NoError(t, manager.Open(context.Background(), path))
	defer manager.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestManager_CloseWithoutOpen(t *testing.T) {
	manager := NewManager()
	assert.NoError(t, manager.Close())
}

// setupTestDB creates a temporary SQLite database for tests.
func setupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db, path
}

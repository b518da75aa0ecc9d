package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupManager_Backup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	content := []byte("SQLite format 3\x00 pretend database content")
	require.NoError(t, os.WriteFile(path, content, 0644))

	manager := NewBackupManager(path)
	record, err := manager.Backup(context.Background())
	require.NoError(t, err)

	assert.False(t, record.Skipped)
	assert.Equal(t, path, record.SourcePath)
	assert.Equal(t, path+BackupSuffix, record.BackupPath)
	assert.Equal(t, int64(len(content)), record.SizeBytes)

	copied, err := os.ReadFile(record.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, content, copied, "backup must be byte-for-byte identical")
}

func TestBackupManager_BackupMissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	manager := NewBackupManager(path)
	record, err := manager.Backup(context.Background())
	require.NoError(t, err)

	assert.True(t, record.Skipped)
	_, statErr := os.Stat(path + BackupSuffix)
	assert.True(t, os.IsNotExist(statErr), "no backup file should be written")
}

func TestBackupManager_BackupOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	manager := NewBackupManager(path)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(path, []byte("generation one"), 0644))
	_, err := manager.Backup(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("generation two, longer"), 0644))
	record, err := manager.Backup(ctx)
	require.NoError(t, err)

	copied, err := os.ReadFile(record.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("generation two, longer"), copied)
}

func TestBackupManager_BackupFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.db")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	// Make the backup destination uncreatable by occupying it with a
	// directory.
	require.NoError(t, os.Mkdir(path+BackupSuffix, 0755))

	manager := NewBackupManager(path)
	_, err := manager.Backup(context.Background())
	assert.Error(t, err)
}

func TestBackupManager_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("valid backup", func(t *testing.T) {
		db, path := setupTestDB(t)
		_, err := db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY)`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		manager := NewBackupManager(path)
		_, err = manager.Backup(ctx)
		require.NoError(t, err)

		assert.NoError(t, manager.Verify(ctx))
	})

	t.Run("missing backup", func(t *testing.T) {
		manager := NewBackupManager(filepath.Join(t.TempDir(), "app.db"))
		assert.Error(t, manager.Verify(ctx))
	})
}

func TestBackupRecord_String(t *testing.T) {
	skipped := &BackupRecord{SourcePath: "app.db", Skipped: true}
	assert.Contains(t, skipped.String(), "no backup needed")

	record := &BackupRecord{BackupPath: "app.db.bak", SizeBytes: 42}
	assert.Contains(t, record.String(), "app.db.bak")
	assert.Contains(t, record.String(), "42 bytes")
}

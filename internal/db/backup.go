package db

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// BackupSuffix is appended to the database path to form the backup path.
// A single backup generation is retained; each run overwrites it.
const BackupSuffix = ".bak"

// BackupRecord describes the point-in-time copy made before a run
// mutates anything. When the source file does not exist yet (first run),
// Skipped is true and no file is written.
type BackupRecord struct {
	SourcePath string    `json:"source_path"`
	BackupPath string    `json:"backup_path"`
	Timestamp  time.Time `json:"timestamp"`
	SizeBytes  int64     `json:"size_bytes"`
	Skipped    bool      `json:"skipped"`
}

// String returns a one-line description of the backup.
func (r *BackupRecord) String() string {
	if r.Skipped {
		return fmt.Sprintf("no backup needed (%s does not exist yet)", r.SourcePath)
	}
	return fmt.Sprintf("%s (%d bytes, %s)", r.BackupPath, r.SizeBytes, r.Timestamp.Format("2006-01-02 15:04:05"))
}

// BackupManager copies the database file to a deterministic sibling path
// before any mutation is attempted.
type BackupManager struct {
	path string
}

// NewBackupManager creates a backup manager for the given database file.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{path: dbPath}
}

// BackupPath returns the deterministic backup path for a database file.
func BackupPath(dbPath string) string {
	return dbPath + BackupSuffix
}

// Backup copies the database file byte-for-byte to its backup path. If
// the source file does not exist, a skipped record is returned and
// nothing is written. Any copy failure is returned to the caller; the
// engine treats it as fatal and aborts the run before mutating.
func (b *BackupManager) Backup(ctx context.Context) (*BackupRecord, error) {
	record := &BackupRecord{
		SourcePath: b.path,
		BackupPath: BackupPath(b.path),
		Timestamp:  time.Now(),
	}

	stat, err := os.Stat(b.path)
	if os.IsNotExist(err) {
		record.Skipped = true
		return record, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat source database: %w", err)
	}

	if err := b.copyFile(b.path, record.BackupPath); err != nil {
		return nil, err
	}

	record.SizeBytes = stat.Size()
	return record, nil
}

func (b *BackupManager) copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy database: %w", err)
	}

	return dstFile.Sync()
}

// Verify opens the backup file and runs an integrity check against it.
func (b *BackupManager) Verify(ctx context.Context) error {
	backupPath := BackupPath(b.path)
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	manager := NewManager()
	if err := manager.Open(ctx, backupPath); err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer manager.Close()

	row := manager.DB().QueryRowContext(ctx, "PRAGMA integrity_check")
	var result string
	if err := row.Scan(&result); err != nil {
		return fmt.Errorf("failed to check backup integrity: %w", err)
	}

	if result != "ok" {
		return fmt.Errorf("backup integrity check failed: %s", result)
	}

	return nil
}

package db

import (
	"context"
	"fmt"
	"os"
	"time"
)

// HealthManager handles database health checks
type HealthManager struct {
	db *Manager
}

// NewHealthManager creates a new health manager
func NewHealthManager(manager *Manager) *HealthManager {
	return &HealthManager{db: manager}
}

// HealthStatus represents the overall health of the database
type HealthStatus struct {
	Status       string        `json:"status"`
	CheckedAt    time.Time     `json:"checked_at"`
	DatabasePath string        `json:"database_path"`
	DatabaseSize int64         `json:"database_size_bytes"`
	TableCount   int           `json:"table_count"`
	IntegrityOK  bool          `json:"integrity_ok"`
	WALMode      bool          `json:"wal_mode"`
	Version      string        `json:"sqlite_version"`
	Checks       []HealthCheck `json:"checks"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // OK, WARNING, ERROR
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// CheckHealth performs a health check of the database
func (h *HealthManager) CheckHealth(ctx context.Context) (*HealthStatus, error) {
	status := &HealthStatus{
		CheckedAt:    time.Now(),
		DatabasePath: h.db.Path(),
		Status:       "OK",
	}

	if stat, err := os.Stat(h.db.Path()); err == nil {
		status.DatabaseSize = stat.Size()
	}

	connectCheck := h.checkConnectivity(ctx)
	status.Checks = append(status.Checks, connectCheck)
	if connectCheck.Status == "ERROR" {
		status.Status = "ERROR"
		return status, nil
	}

	integrityCheck := h.checkIntegrity(ctx)
	status.Checks = append(status.Checks, integrityCheck)
	status.IntegrityOK = integrityCheck.Status == "OK"
	if integrityCheck.Status == "ERROR" {
		status.Status = "ERROR"
	}

	versionCheck := h.checkVersion(ctx)
	status.Checks = append(status.Checks, versionCheck)
	status.Version = versionCheck.Value

	walCheck := h.checkJournalMode(ctx)
	status.Checks = append(status.Checks, walCheck)
	status.WALMode = walCheck.Value == "wal"

	tableCheck, tableCount := h.checkTableCount(ctx)
	status.Checks = append(status.Checks, tableCheck)
	status.TableCount = tableCount

	return status, nil
}

func (h *HealthManager) checkConnectivity(ctx context.Context) HealthCheck {
	check := HealthCheck{Name: "connectivity"}

	if err := h.db.DB().PingContext(ctx); err != nil {
		check.Status = "ERROR"
		check.Message = fmt.Sprintf("cannot connect to database: %v", err)
		return check
	}

	check.Status = "OK"
	check.Message = "database is reachable"
	return check
}

func (h *HealthManager) checkIntegrity(ctx context.Context) HealthCheck {
	check := HealthCheck{Name: "integrity"}

	row := h.db.DB().QueryRowContext(ctx, "PRAGMA integrity_check")
	var result string
	if err := row.Scan(&result); err != nil {
		check.Status = "ERROR"
		check.Message = fmt.Sprintf("integrity check failed to run: %v", err)
		return check
	}

	if result != "ok" {
		check.Status = "ERROR"
		check.Message = fmt.Sprintf("integrity check reported: %s", result)
		return check
	}

	check.Status = "OK"
	check.Message = "integrity check passed"
	return check
}

func (h *HealthManager) checkVersion(ctx context.Context) HealthCheck {
	check := HealthCheck{Name: "sqlite_version"}

	row := h.db.DB().QueryRowContext(ctx, "SELECT sqlite_version()")
	var version string
	if err := row.Scan(&version); err != nil {
		check.Status = "WARNING"
		check.Message = fmt.Sprintf("could not read version: %v", err)
		return check
	}

	check.Status = "OK"
	check.Message = "SQLite version"
	check.Value = version
	return check
}

func (h *HealthManager) checkJournalMode(ctx context.Context) HealthCheck {
	check := HealthCheck{Name: "journal_mode"}

	row := h.db.DB().QueryRowContext(ctx, "PRAGMA journal_mode")
	var mode string
	if err := row.Scan(&mode); err != nil {
		check.Status = "WARNING"
		check.Message = fmt.Sprintf("could not read journal mode: %v", err)
		return check
	}

	check.Value = mode
	if mode == "wal" {
		check.Status = "OK"
		check.Message = "WAL mode enabled"
	} else {
		check.Status = "WARNING"
		check.Message = fmt.Sprintf("journal mode is %s, WAL recommended", mode)
	}
	return check
}

func (h *HealthManager) checkTableCount(ctx context.Context) (HealthCheck, int) {
	check := HealthCheck{Name: "table_count"}

	row := h.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	var count int
	if err := row.Scan(&count); err != nil {
		check.Status = "WARNING"
		check.Message = fmt.Sprintf("could not count tables: %v", err)
		return check, 0
	}

	check.Status = "OK"
	check.Message = "user tables present"
	check.Value = fmt.Sprintf("%d", count)
	return check, count
}

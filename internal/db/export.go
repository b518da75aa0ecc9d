package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportManager handles schema export operations. Only schema is
// exported, never row data; the engine's job ends at table shape.
type ExportManager struct {
	db *Manager
}

// NewExportManager creates a new export manager
func NewExportManager(manager *Manager) *ExportManager {
	return &ExportManager{db: manager}
}

// ExportFormat represents different export formats
type ExportFormat string

const (
	FormatSQL  ExportFormat = "sql"
	FormatJSON ExportFormat = "json"
)

// ExportOptions contains options for schema export
type ExportOptions struct {
	OutputPath string
	Format     ExportFormat
	Tables     []string
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportedAt time.Time `json:"exported_at"`
	Database   string    `json:"database"`
	TableCount int       `json:"table_count"`
}

// ExportedSchema is the JSON export document
type ExportedSchema struct {
	Metadata ExportMetadata       `json:"metadata"`
	Tables   map[string]TableInfo `json:"tables"`
}

// Export writes the observed schema in the requested format.
func (e *ExportManager) Export(ctx context.Context, opts ExportOptions) error {
	outputDir := filepath.Dir(opts.OutputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tables, err := e.tablesToExport(ctx, opts.Tables)
	if err != nil {
		return fmt.Errorf("failed to get tables: %w", err)
	}

	switch opts.Format {
	case FormatSQL:
		return e.exportSQL(ctx, opts.OutputPath, tables)
	case FormatJSON:
		return e.exportJSON(ctx, opts.OutputPath, tables)
	default:
		return fmt.Errorf("unsupported export format: %s", opts.Format)
	}
}

func (e *ExportManager) tablesToExport(ctx context.Context, requested []string) ([]string, error) {
	all, err := NewInspector(e.db.DB()).UserTables(ctx)
	if err != nil {
		return nil, err
	}
	if len(requested) == 0 {
		return all, nil
	}

	known := make(map[string]bool, len(all))
	for _, name := range all {
		known[name] = true
	}
	for _, name := range requested {
		if !known[name] {
			return nil, fmt.Errorf("table does not exist: %s", name)
		}
	}
	return requested, nil
}

// exportSQL writes the live CREATE statements as recorded by SQLite.
func (e *ExportManager) exportSQL(ctx context.Context, outputPath string, tables []string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "-- schemasync schema export\n")
	fmt.Fprintf(file, "-- Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for _, table := range tables {
		row := e.db.DB().QueryRowContext(ctx,
			`SELECT sql FROM sqlite_master WHERE type='table' AND name=?`, table)

		var createSQL sql.NullString
		if err := row.Scan(&createSQL); err != nil {
			return fmt.Errorf("failed to read schema for %s: %w", table, err)
		}
		if !createSQL.Valid {
			continue
		}

		fmt.Fprintf(file, "%s;\n\n", createSQL.String)
	}

	return file.Sync()
}

// exportJSON writes the observed snapshot as a JSON document.
func (e *ExportManager) exportJSON(ctx context.Context, outputPath string, tables []string) error {
	snapshot, err := NewInspector(e.db.DB()).Snapshot(ctx, tables)
	if err != nil {
		return fmt.Errorf("failed to snapshot schema: %w", err)
	}

	doc := ExportedSchema{
		Metadata: ExportMetadata{
			ExportedAt: time.Now(),
			Database:   e.db.Path(),
			TableCount: len(snapshot.Tables),
		},
		Tables: snapshot.Tables,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

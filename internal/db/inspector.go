package db

import (
	"context"
	"database/sql"
	"fmt"
)

// ColumnInfo is the observed shape of a single live column.
type ColumnInfo struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	NotNull    bool    `json:"not_null"`
	Default    *string `json:"default,omitempty"`
	PrimaryKey bool    `json:"primary_key"`
}

// TableInfo is the observed shape of a single live table.
type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

// HasColumn reports whether the table has a column with the given name.
func (t TableInfo) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// Snapshot is the observed live schema at the start of a run. It is
// read-only, discarded after the run, and never cached across runs.
type Snapshot struct {
	Tables map[string]TableInfo `json:"tables"`
}

// HasTable reports whether the snapshot observed the named table.
func (s *Snapshot) HasTable(name string) bool {
	_, ok := s.Tables[name]
	return ok
}

// Table returns the observed table, if present.
func (s *Snapshot) Table(name string) (TableInfo, bool) {
	info, ok := s.Tables[name]
	return info, ok
}

// Inspector reads live table and column metadata. It never mutates
// anything and never errors on missing tables; an absent table is simply
// absent from the snapshot.
type Inspector struct {
	db *sql.DB
}

// NewInspector creates a new inspector over an open handle.
func NewInspector(db *sql.DB) *Inspector {
	return &Inspector{db: db}
}

// Snapshot captures the observed shape of the named tables. Tables that
// do not exist are left out. An empty or freshly created database yields
// an empty snapshot.
func (i *Inspector) Snapshot(ctx context.Context, tableNames []string) (*Snapshot, error) {
	snapshot := &Snapshot{Tables: make(map[string]TableInfo)}

	for _, name := range tableNames {
		exists, err := i.tableExists(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", name, err)
		}
		if !exists {
			continue
		}

		info, err := i.tableInfo(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect table %s: %w", name, err)
		}
		snapshot.Tables[name] = info
	}

	return snapshot, nil
}

// UserTables returns the names of all user tables in the database,
// sorted by name. Internal sqlite_* tables are excluded.
func (i *Inspector) UserTables(ctx context.Context) ([]string, error) {
	rows, err := i.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (i *Inspector) tableExists(ctx context.Context, name string) (bool, error) {
	row := i.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, name)

	var found string
	err := row.Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (i *Inspector) tableInfo(ctx context.Context, name string) (TableInfo, error) {
	// Table names cannot be bound as parameters in PRAGMA statements;
	// callers validate them against the identifier allow-list first.
	rows, err := i.db.QueryContext(ctx, `PRAGMA table_info(`+name+`)`)
	if err != nil {
		return TableInfo{}, err
	}
	defer rows.Close()

	info := TableInfo{Name: name}
	for rows.Next() {
		var (
			cid       int
			colName   string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dfltValue, &pk); err != nil {
			return TableInfo{}, err
		}

		col := ColumnInfo{
			Name:       colName,
			Type:       colType,
			NotNull:    notNull != 0,
			PrimaryKey: pk != 0,
		}
		if dfltValue.Valid {
			col.Default = &dfltValue.String
		}
		info.Columns = append(info.Columns, col)
	}

	return info, rows.Err()
}

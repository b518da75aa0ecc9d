package schema

import (
	"fmt"
	"strings"

	"github.com/user/schemasync/internal/validate"
)

// ColumnType is a supported SQLite storage class
type ColumnType string

const (
	TypeText    ColumnType = "TEXT"
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
)

// ForeignKey references another table's column (the primary key by default)
type ForeignKey struct {
	Table  string
	Column string
}

// ColumnSpec describes a single declared column. Immutable once declared.
type ColumnSpec struct {
	Name       string
	Type       ColumnType
	NotNull    bool
	Default    *string
	Unique     bool
	ForeignKey *ForeignKey
}

// TableSpec describes a declared table. Column order matters for
// deterministic DDL generation, not for semantics.
type TableSpec struct {
	Name string
	// PrimaryKey names the column that serves as primary key. Empty means
	// a surrogate `id INTEGER PRIMARY KEY AUTOINCREMENT` is generated.
	PrimaryKey string
	Columns    []ColumnSpec
}

// Profile is the desired end state for one deployment generation: an
// ordered set of table specs. Declaration order is the planning order.
type Profile struct {
	Name        string
	Version     string
	Description string
	Tables      []TableSpec
}

// Column returns the column spec with the given name, if declared.
func (t TableSpec) Column(name string) (ColumnSpec, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnSpec{}, false
}

// Table returns the table spec with the given name, if declared.
func (p *Profile) Table(name string) (TableSpec, bool) {
	for _, table := range p.Tables {
		if table.Name == name {
			return table, true
		}
	}
	return TableSpec{}, false
}

// TableNames returns the declared table names in declaration order.
func (p *Profile) TableNames() []string {
	names := make([]string, len(p.Tables))
	for i, table := range p.Tables {
		names[i] = table.Name
	}
	return names
}

// Validate checks the profile for structural problems before any DDL is
// generated from it: invalid identifiers or types, duplicate table or
// column names, and foreign keys pointing at undeclared tables.
func (p *Profile) Validate() error {
	if err := validate.ValidateProfileName(p.Name); err != nil {
		return err
	}

	if len(p.Tables) == 0 {
		return fmt.Errorf("profile %q declares no tables", p.Name)
	}

	seenTables := make(map[string]bool)
	for _, table := range p.Tables {
		if err := validate.ValidateIdentifier(table.Name); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
		if seenTables[table.Name] {
			return fmt.Errorf("profile %q declares table %q twice", p.Name, table.Name)
		}
		seenTables[table.Name] = true

		if err := p.validateTable(table); err != nil {
			return err
		}
	}

	return nil
}

func (p *Profile) validateTable(table TableSpec) error {
	if len(table.Columns) == 0 {
		return fmt.Errorf("table %q declares no columns", table.Name)
	}

	seenColumns := make(map[string]bool)
	for _, col := range table.Columns {
		if err := validate.ValidateIdentifier(col.Name); err != nil {
			return fmt.Errorf("table %q: %w", table.Name, err)
		}
		if seenColumns[col.Name] {
			return fmt.Errorf("table %q declares column %q twice", table.Name, col.Name)
		}
		seenColumns[col.Name] = true

		if err := validate.ValidateColumnType(string(col.Type)); err != nil {
			return fmt.Errorf("table %q column %q: %w", table.Name, col.Name, err)
		}

		if col.ForeignKey != nil {
			if _, ok := p.Table(col.ForeignKey.Table); !ok {
				return fmt.Errorf("table %q column %q references undeclared table %q", table.Name, col.Name, col.ForeignKey.Table)
			}
			if col.ForeignKey.Column != "" {
				if err := validate.ValidateIdentifier(col.ForeignKey.Column); err != nil {
					return fmt.Errorf("table %q column %q foreign key: %w", table.Name, col.Name, err)
				}
			}
		}
	}

	if table.PrimaryKey != "" && !seenColumns[table.PrimaryKey] {
		return fmt.Errorf("table %q names %q as primary key but does not declare it", table.Name, table.PrimaryKey)
	}

	return nil
}

// CreateSQL generates the CREATE TABLE IF NOT EXISTS statement for the
// table, including all declared columns and foreign key clauses.
func (t TableSpec) CreateSQL() string {
	var defs []string

	if t.PrimaryKey == "" {
		defs = append(defs, "id INTEGER PRIMARY KEY AUTOINCREMENT")
	}

	for _, col := range t.Columns {
		def := col.createDDL()
		if col.Name == t.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}

	for _, col := range t.Columns {
		if col.ForeignKey == nil {
			continue
		}
		ref := col.ForeignKey.Column
		if ref == "" {
			ref = "id"
		}
		defs = append(defs, fmt.Sprintf("FOREIGN KEY(%s) REFERENCES %s(%s)", col.Name, col.ForeignKey.Table, ref))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)", t.Name, strings.Join(defs, ",\n    "))
}

// AddColumnSQL generates the ALTER TABLE statement that adds the column
// to an existing table.
func AddColumnSQL(tableName string, col ColumnSpec) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", tableName, col.alterDDL())
}

// createDDL renders the column definition used inside CREATE TABLE.
func (c ColumnSpec) createDDL() string {
	def := fmt.Sprintf("%s %s", c.Name, c.Type)
	if c.NotNull {
		def += " NOT NULL"
	}
	if c.Unique {
		def += " UNIQUE"
	}
	if c.Default != nil {
		def += " DEFAULT " + formatDefault(*c.Default, c.Type)
	}
	return def
}

// alterDDL renders the column definition used with ALTER TABLE ADD
// COLUMN. SQLite rejects added columns that are UNIQUE, that have a
// non-constant default, or that are NOT NULL without a constant default,
// so those constraints are dropped here. Existing rows get NULL, same as
// the original migration scripts.
func (c ColumnSpec) alterDDL() string {
	def := fmt.Sprintf("%s %s", c.Name, c.Type)
	if c.Default != nil && !isNonConstantDefault(*c.Default) {
		if c.NotNull {
			def += " NOT NULL"
		}
		def += " DEFAULT " + formatDefault(*c.Default, c.Type)
	}
	return def
}

// formatDefault renders a default literal for DDL. SQL keywords and
// numeric literals pass through bare; everything else is quoted.
func formatDefault(value string, typ ColumnType) string {
	if isNonConstantDefault(value) {
		return strings.ToUpper(value)
	}
	if typ == TypeInteger || typ == TypeReal {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func isNonConstantDefault(value string) bool {
	switch strings.ToUpper(value) {
	case "CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME":
		return true
	default:
		return false
	}
}

// strptr is a convenience for declaring default literals inline.
func strptr(s string) *string {
	return &s
}

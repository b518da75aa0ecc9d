package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// SQL identifier pattern (tables and columns)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	// Profile name pattern
	profileNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9\-_]*$`)
)

// reservedWords are SQLite keywords that cannot be used as bare identifiers.
var reservedWords = map[string]bool{
	"select": true, "insert": true, "update": true, "delete": true,
	"create": true, "drop": true, "alter": true, "table": true,
	"index": true, "where": true, "from": true, "order": true,
	"group": true, "primary": true, "foreign": true, "references": true,
	"default": true, "unique": true, "null": true, "not": true,
}

// ValidateIdentifier validates a table or column name. Identifiers are
// interpolated into DDL statements, so anything outside the allow-list
// is rejected outright.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier cannot be empty")
	}

	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q: must start with a letter or underscore and contain only letters, numbers, and underscores", name)
	}

	if reservedWords[strings.ToLower(name)] {
		return fmt.Errorf("identifier %q is a reserved SQL keyword", name)
	}

	return nil
}

// ValidateProfileName validates a schema profile name.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if !profileNamePattern.MatchString(name) {
		return fmt.Errorf("invalid profile name %q: must start with a letter and contain only letters, numbers, hyphens, and underscores", name)
	}

	return nil
}

// ValidateColumnType validates a declared column type against the
// supported SQLite storage classes.
func ValidateColumnType(sqlType string) error {
	switch strings.ToUpper(sqlType) {
	case "TEXT", "INTEGER", "REAL":
		return nil
	default:
		return fmt.Errorf("unsupported column type %q (expected TEXT, INTEGER, or REAL)", sqlType)
	}
}

// ValidateDatabasePath validates that the directory holding the database
// file exists and is writable. The file itself may not exist yet.
func ValidateDatabasePath(path string) error {
	if path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}

	dir := filepath.Dir(absPath)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("database directory does not exist: %s", dir)
		}
		return fmt.Errorf("cannot access database directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("database parent path is not a directory: %s", dir)
	}

	// Test write permissions by creating a temp file
	tempFile := filepath.Join(dir, ".schemasync-write-test")
	f, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("database directory is not writable: %s", dir)
	}
	_ = f.Close()
	_ = os.Remove(tempFile)

	return nil
}

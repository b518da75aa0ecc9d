package schema

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML profile document shapes. Kept separate from the in-process types
// so the file format can stay stable while the internal model evolves.
type profileDoc struct {
	Name        string     `yaml:"name"`
	Version     string     `yaml:"version"`
	Description string     `yaml:"description"`
	Tables      []tableDoc `yaml:"tables"`
}

type tableDoc struct {
	Name       string      `yaml:"name"`
	PrimaryKey string      `yaml:"primary_key"`
	Columns    []columnDoc `yaml:"columns"`
}

type columnDoc struct {
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type"`
	NotNull bool    `yaml:"not_null"`
	Default *string `yaml:"default"`
	Unique  bool    `yaml:"unique"`
	// References is "table" or "table.column"; bare table names
	// reference the target's primary key.
	References string `yaml:"references"`
}

// LoadProfile reads and validates a schema profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var doc profileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}

	profile := &Profile{
		Name:        doc.Name,
		Version:     doc.Version,
		Description: doc.Description,
	}

	for _, table := range doc.Tables {
		spec := TableSpec{
			Name:       table.Name,
			PrimaryKey: table.PrimaryKey,
		}
		for _, col := range table.Columns {
			colSpec := ColumnSpec{
				Name:    col.Name,
				Type:    ColumnType(strings.ToUpper(col.Type)),
				NotNull: col.NotNull,
				Default: col.Default,
				Unique:  col.Unique,
			}
			if col.References != "" {
				colSpec.ForeignKey = parseReference(col.References)
			}
			spec.Columns = append(spec.Columns, colSpec)
		}
		profile.Tables = append(profile.Tables, spec)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile in %s: %w", path, err)
	}

	return profile, nil
}

func parseReference(ref string) *ForeignKey {
	table, column, found := strings.Cut(ref, ".")
	if !found {
		return &ForeignKey{Table: table}
	}
	return &ForeignKey{Table: table, Column: column}
}

package engine

import (
	"fmt"

	"github.com/user/schemasync/internal/schema"
)

// OperationKind distinguishes the additive operation variants. Drops,
// renames, and type changes are deliberately unrepresentable.
type OperationKind string

const (
	OpCreateTable OperationKind = "create_table"
	OpAddColumn   OperationKind = "add_column"
)

// Operation is a single planned schema change.
type Operation struct {
	Kind      OperationKind
	TableName string
	// Table is set for OpCreateTable and carries the full spec,
	// including all columns; creation subsumes them.
	Table schema.TableSpec
	// Column is set for OpAddColumn.
	Column schema.ColumnSpec
}

// CreateTable builds a table creation operation.
func CreateTable(table schema.TableSpec) Operation {
	return Operation{
		Kind:      OpCreateTable,
		TableName: table.Name,
		Table:     table,
	}
}

// AddColumn builds a column addition operation.
func AddColumn(tableName string, col schema.ColumnSpec) Operation {
	return Operation{
		Kind:      OpAddColumn,
		TableName: tableName,
		Column:    col,
	}
}

// SQL returns the DDL statement for the operation.
func (op Operation) SQL() string {
	switch op.Kind {
	case OpCreateTable:
		return op.Table.CreateSQL()
	case OpAddColumn:
		return schema.AddColumnSQL(op.TableName, op.Column)
	default:
		return ""
	}
}

// String describes the operation for reports and logs.
func (op Operation) String() string {
	switch op.Kind {
	case OpCreateTable:
		return fmt.Sprintf("create table %s (%d columns)", op.TableName, len(op.Table.Columns))
	case OpAddColumn:
		return fmt.Sprintf("add column %s.%s %s", op.TableName, op.Column.Name, op.Column.Type)
	default:
		return fmt.Sprintf("unknown operation on %s", op.TableName)
	}
}

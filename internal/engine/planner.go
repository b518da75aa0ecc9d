package engine

import (
	"github.com/user/schemasync/internal/db"
	"github.com/user/schemasync/internal/schema"
)

// Planner diffs a declared profile against an observed snapshot and
// produces the minimal, ordered, additive list of operations that brings
// the live schema up to a structural superset of the profile.
//
// The planner never emits drops, renames, or type changes: historical
// tables and columns stay queryable even when the profile no longer
// declares them.
type Planner struct{}

// NewPlanner creates a new planner
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan computes the operations in a deterministic order: tables in
// profile declaration order, then columns in declaration order within
// each table. A missing table yields a single CreateTable carrying the
// full spec; per-column operations are emitted only for tables that
// already exist. Columns already present yield nothing, which is what
// makes repeated runs idempotent.
func (p *Planner) Plan(profile *schema.Profile, snapshot *db.Snapshot) []Operation {
	var ops []Operation

	for _, table := range profile.Tables {
		observed, exists := snapshot.Table(table.Name)
		if !exists {
			ops = append(ops, CreateTable(table))
			continue
		}

		for _, col := range table.Columns {
			if observed.HasColumn(col.Name) {
				continue
			}
			ops = append(ops, AddColumn(table.Name, col))
		}
	}

	return ops
}

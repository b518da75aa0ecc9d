package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/schemasync/internal/db"
	"github.com/user/schemasync/internal/engine"
	"github.com/user/schemasync/internal/schema"
)

func TestRenderer_RenderString(t *testing.T) {
	renderer := NewRenderer()

	out, err := renderer.RenderString("hello {{ name }}", map[string]any{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestRenderer_RenderString_ParseError(t *testing.T) {
	renderer := NewRenderer()

	_, err := renderer.RenderString("{% broken", nil)
	assert.Error(t, err)
}

func TestRenderer_RenderRunReport(t *testing.T) {
	table := schema.TableSpec{Name: "users", Columns: []schema.ColumnSpec{
		{Name: "username", Type: schema.TypeText},
	}}

	rep := &engine.Report{
		Profile:        "consolidated",
		ProfileVersion: "v2",
		DatabasePath:   "database.db",
		Backup:         &db.BackupRecord{SourcePath: "database.db", Skipped: true},
		Results: []engine.Result{
			{Operation: engine.CreateTable(table), Outcome: engine.OutcomeApplied},
			{Operation: engine.AddColumn("jobs", schema.ColumnSpec{Name: "salary", Type: schema.TypeText}), Outcome: engine.OutcomeFailed, Reason: "no such table: jobs"},
		},
	}

	out, err := NewRenderer().RenderRunReport(rep)
	require.NoError(t, err)

	assert.Contains(t, out, "consolidated (v2)")
	assert.Contains(t, out, "database.db")
	assert.Contains(t, out, "no backup needed")
	assert.Contains(t, out, "[applied] create table users (1 columns)")
	assert.Contains(t, out, "[failed] add column jobs.salary TEXT (no such table: jobs)")
	assert.Contains(t, out, "Applied: 1, already satisfied: 0, failed: 1")
	assert.Contains(t, out, "Failures:")
}

func TestRenderer_RenderRunReport_NoFailures(t *testing.T) {
	rep := &engine.Report{
		Profile:      "legacy",
		DatabasePath: "database.db",
		Results: []engine.Result{
			{
				Operation: engine.CreateTable(schema.TableSpec{Name: "users"}),
				Outcome:   engine.OutcomeAlreadySatisfied,
				Reason:    "table and all declared columns present",
			},
		},
	}

	out, err := NewRenderer().RenderRunReport(rep)
	require.NoError(t, err)

	assert.Contains(t, out, "[already-satisfied]")
	assert.NotContains(t, out, "Failures:")
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/schemasync/internal/schema"
)

func sampleReport() *Report {
	table := schema.TableSpec{Name: "users", Columns: []schema.ColumnSpec{{Name: "username", Type: schema.TypeText}}}
	return &Report{
		Profile:      "test",
		DatabasePath: "app.db",
		Results: []Result{
			{Operation: CreateTable(table), Outcome: OutcomeApplied},
			{Operation: AddColumn("jobs", schema.ColumnSpec{Name: "location", Type: schema.TypeText}), Outcome: OutcomeAlreadySatisfied},
			{Operation: AddColumn("jobs", schema.ColumnSpec{Name: "salary", Type: schema.TypeText}), Outcome: OutcomeFailed, Reason: "no such table: jobs"},
		},
	}
}

func TestReport_Summary(t *testing.T) {
	summary := sampleReport().Summary()

	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 1, summary.AlreadySatisfied)
	assert.Equal(t, 1, summary.Failed)
}

func TestReport_Failures(t *testing.T) {
	failures := sampleReport().Failures()

	assert.Len(t, failures, 1)
	assert.Equal(t, "no such table: jobs", failures[0].Reason)
	assert.Equal(t, "salary", failures[0].Operation.Column.Name)
}

func TestReport_Converged(t *testing.T) {
	report := sampleReport()
	assert.False(t, report.Converged())

	report.Results = []Result{
		{Operation: CreateTable(schema.TableSpec{Name: "users"}), Outcome: OutcomeAlreadySatisfied},
	}
	assert.True(t, report.Converged())

	report.Results = nil
	assert.True(t, report.Converged(), "empty report counts as converged")
}

func TestOperation_String(t *testing.T) {
	table := schema.TableSpec{Name: "users", Columns: []schema.ColumnSpec{
		{Name: "username", Type: schema.TypeText},
		{Name: "email", Type: schema.TypeText},
	}}

	assert.Equal(t, "create table users (2 columns)", CreateTable(table).String())
	assert.Equal(t, "add column jobs.location TEXT", AddColumn("jobs", schema.ColumnSpec{Name: "location", Type: schema.TypeText}).String())
}

func TestOperation_SQL(t *testing.T) {
	table := schema.TableSpec{Name: "users", Columns: []schema.ColumnSpec{
		{Name: "username", Type: schema.TypeText},
	}}

	assert.Contains(t, CreateTable(table).SQL(), "CREATE TABLE IF NOT EXISTS users")
	assert.Equal(t, "ALTER TABLE jobs ADD COLUMN location TEXT",
		AddColumn("jobs", schema.ColumnSpec{Name: "location", Type: schema.TypeText}).SQL())
}

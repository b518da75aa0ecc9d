package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector_Snapshot(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(`CREATE TABLE jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		salary TEXT,
		job_status TEXT DEFAULT 'Open'
	)`)
	require.NoError(t, err)

	inspector := NewInspector(db)
	snapshot, err := inspector.Snapshot(ctx, []string{"jobs", "users"})
	require.NoError(t, err)

	assert.True(t, snapshot.HasTable("jobs"))
	assert.False(t, snapshot.HasTable("users"), "missing table must be absent, not an error")

	jobs, ok := snapshot.Table("jobs")
	require.True(t, ok)
	assert.Len(t, jobs.Columns, 4)

	assert.True(t, jobs.HasColumn("title"))
	assert.True(t, jobs.HasColumn("salary"))
	assert.False(t, jobs.HasColumn("location"))

	var title ColumnInfo
	for _, col := range jobs.Columns {
		if col.Name == "title" {
			title = col
		}
	}
	assert.Equal(t, "TEXT", title.Type)
	assert.True(t, title.NotNull)

	var id ColumnInfo
	for _, col := range jobs.Columns {
		if col.Name == "id" {
			id = col
		}
	}
	assert.True(t, id.PrimaryKey)

	var status ColumnInfo
	for _, col := range jobs.Columns {
		if col.Name == "job_status" {
			status = col
		}
	}
	require.NotNil(t, status.Default)
	assert.Equal(t, "'Open'", *status.Default)
}

func TestInspector_SnapshotEmptyDatabase(t *testing.T) {
	db, _ := setupTestDB(t)

	inspector := NewInspector(db)
	snapshot, err := inspector.Snapshot(context.Background(), []string{"users", "jobs", "applications"})
	require.NoError(t, err)

	assert.Empty(t, snapshot.Tables)
}

func TestInspector_SnapshotDoesNotMutate(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, username TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (username) VALUES ('alice')`)
	require.NoError(t, err)

	inspector := NewInspector(db)
	_, err = inspector.Snapshot(ctx, []string{"users"})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInspector_UserTables(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE applications (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)

	inspector := NewInspector(db)
	tables, err := inspector.UserTables(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"applications", "users"}, tables)
}

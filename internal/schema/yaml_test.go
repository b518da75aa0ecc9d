package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfileYAML = `name: custom
version: v9
description: test profile
tables:
  - name: users
    columns:
      - name: username
        type: text
        not_null: true
        unique: true
      - name: email
        type: TEXT
  - name: jobs
    columns:
      - name: recruiter_id
        type: integer
        references: users
      - name: title
        type: text
      - name: job_status
        type: text
        default: Open
  - name: applications
    columns:
      - name: job_id
        type: integer
        references: jobs.id
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProfile(t *testing.T) {
	profile, err := LoadProfile(writeProfile(t, sampleProfileYAML))
	require.NoError(t, err)

	assert.Equal(t, "custom", profile.Name)
	assert.Equal(t, "v9", profile.Version)
	assert.Equal(t, []string{"users", "jobs", "applications"}, profile.TableNames())

	users, ok := profile.Table("users")
	require.True(t, ok)
	username, ok := users.Column("username")
	require.True(t, ok)
	assert.Equal(t, TypeText, username.Type)
	assert.True(t, username.NotNull)
	assert.True(t, username.Unique)

	jobs, ok := profile.Table("jobs")
	require.True(t, ok)
	recruiterID, ok := jobs.Column("recruiter_id")
	require.True(t, ok)
	require.NotNil(t, recruiterID.ForeignKey)
	assert.Equal(t, "users", recruiterID.ForeignKey.Table)
	assert.Empty(t, recruiterID.ForeignKey.Column)

	status, ok := jobs.Column("job_status")
	require.True(t, ok)
	require.NotNil(t, status.Default)
	assert.Equal(t, "Open", *status.Default)

	apps, ok := profile.Table("applications")
	require.True(t, ok)
	jobID, ok := apps.Column("job_id")
	require.True(t, ok)
	require.NotNil(t, jobID.ForeignKey)
	assert.Equal(t, "jobs", jobID.ForeignKey.Table)
	assert.Equal(t, "id", jobID.ForeignKey.Column)
}

func TestLoadProfile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadProfile(writeProfile(t, "tables: ["))
		assert.Error(t, err)
	})

	t.Run("invalid column type", func(t *testing.T) {
		_, err := LoadProfile(writeProfile(t, `name: bad
tables:
  - name: users
    columns:
      - name: blob_col
        type: blob
`))
		assert.Error(t, err)
	})

	t.Run("reference to undeclared table", func(t *testing.T) {
		_, err := LoadProfile(writeProfile(t, `name: bad
tables:
  - name: jobs
    columns:
      - name: recruiter_id
        type: integer
        references: recruiters
`))
		assert.Error(t, err)
	})
}

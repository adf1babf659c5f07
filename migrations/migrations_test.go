package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsGooseMigrations(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up", name)
		assert.Contains(t, string(data), "-- +goose Down", name)
	}
}

func TestInitSchema_EnforcesSlotInvariants(t *testing.T) {
	data, err := fs.ReadFile(FS, "00001_init_schema.sql")
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, "UNIQUE (instructor_id, start_time, end_time)")
	assert.Contains(t, schema, "EXCLUDE USING gist")
	assert.Contains(t, schema, "UNIQUE (slot_id)")
	assert.Contains(t, schema, "version        INTEGER     NOT NULL DEFAULT 0")
}

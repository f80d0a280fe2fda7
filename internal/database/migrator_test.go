package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/migrations"
)

func Test_PendingMigrations_SortsAndSkipsResets(t *testing.T) {
	fsys := fstest.MapFS{
		"002_b.sql":        {Data: []byte("SELECT 2")},
		"001_a.sql":        {Data: []byte("SELECT 1")},
		"999_reset.sql":    {Data: []byte("DROP TABLE x")},
		"README.md":        {Data: []byte("notes")},
		"nested/003_c.sql": {Data: []byte("SELECT 3")},
	}

	files, err := PendingMigrations(fsys, ".")

	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, files)
}

func Test_PendingMigrations_EmbeddedSchema(t *testing.T) {
	files, err := PendingMigrations(migrations.FS, ".")

	require.NoError(t, err)
	assert.Contains(t, files, "001_admin_action_logs.sql")
}

package postgresql

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INT);\n", ExtractUpMigration(content))

	assert.Equal(t, "\nCREATE TABLE b (id INT);", ExtractUpMigration("-- +migrate Up\nCREATE TABLE b (id INT);"))
	assert.Equal(t, "SELECT 1;", ExtractUpMigration("SELECT 1;"))
}

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"002_more.sql":    {Data: []byte("SELECT 2;")},
		"001_initial.sql": {Data: []byte("SELECT 1;")},
		"embed.go":        {Data: []byte("package migrations")},
		"nested/003.sql":  {Data: []byte("SELECT 3;")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_initial.sql", "002_more.sql"}, files)
}

package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644))
}

func TestFindMigrations_OrderAndFiltering(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_add_mentions.sql", "CREATE TABLE b (id int);")
	writeMigration(t, dir, "001_initial_schema.sql", "CREATE TABLE a (id int);")
	writeMigration(t, dir, "notes.txt", "not a migration")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	migrations, err := findMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "001_initial_schema", migrations[0].Version)
	assert.Equal(t, "001_initial_schema.sql", migrations[0].Name)
	assert.Equal(t, "002_add_mentions", migrations[1].Version)
}

func TestFindMigrations_MissingDir(t *testing.T) {
	_, err := findMigrations("/does/not/exist")
	assert.Error(t, err)
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "001_initial_schema", normalizeVersion("001_initial_schema.sql"))
	assert.Equal(t, "001_initial_schema", normalizeVersion("001_initial_schema.SQL"))
	assert.Equal(t, "001_initial_schema", normalizeVersion("001_initial_schema"))
	assert.Equal(t, ".sql", normalizeVersion(".sql"))
}

func TestRunMigrations_NilPool(t *testing.T) {
	_, err := RunMigrations(context.Background(), nil, t.TempDir())
	assert.ErrorContains(t, err, "pool is nil")
}

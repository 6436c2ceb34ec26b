package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brawl-missions/pkg/logger"
)

func TestMigrateDirAppliesOnce(t *testing.T) {
	gormDB, err := NewSQLite(":memory:", false, logger.Discard())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_tables.sql"), []byte("CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0002_seed.sql"), []byte("INSERT INTO things (name) VALUES ('first');"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a migration"), 0o600))

	require.NoError(t, MigrateDir(gormDB, dir, logger.Discard()))
	require.NoError(t, MigrateDir(gormDB, dir, logger.Discard()))

	var things int64
	require.NoError(t, gormDB.Table("things").Count(&things).Error)
	assert.Equal(t, int64(1), things, "seed must run exactly once")

	var recorded int64
	require.NoError(t, gormDB.Raw("SELECT COUNT(1) FROM schema_migrations").Scan(&recorded).Error)
	assert.Equal(t, int64(2), recorded)
}

func TestMigrateDirStopsOnBrokenFile(t *testing.T) {
	gormDB, err := NewSQLite(":memory:", false, logger.Discard())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_broken.sql"), []byte("CREATE TABLE ("), 0o600))

	err = MigrateDir(gormDB, dir, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_broken.sql")
}

func TestAutoMigrateCreatesServiceTables(t *testing.T) {
	gormDB, err := NewSQLite(":memory:", false, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(gormDB))

	for _, table := range []string{"brawlers", "missions", "crew_memberships"} {
		assert.True(t, gormDB.Migrator().HasTable(table), table)
	}
}

package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.PostgresConfig{
		Host:     "db",
		Port:     "5433",
		Username: "u",
		Password: "p",
		Database: "hoopshot",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=hoopshot sslmode=disable", dsn)

	dsn = PostgresDSN(config.PostgresConfig{SSLMode: "require"})
	assert.Contains(t, dsn, "sslmode=require")
}

func TestGetSqliteDB_InMemoryIsolated(t *testing.T) {
	db1, err := GetSqliteDB("")
	require.NoError(t, err)
	db2, err := GetSqliteDB("")
	require.NoError(t, err)

	require.NoError(t, Migrate(db1))
	assert.True(t, db1.Migrator().HasTable(&model.Run{}))
	assert.False(t, db2.Migrator().HasTable(&model.Run{}), "in-memory databases must not share tables")
}

func TestDumpMemoryDBToDisk(t *testing.T) {
	db, err := GetSqliteDB("")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&model.Run{UUID: "r1", Steps: 60}).Error)

	path := filepath.Join(t.TempDir(), "runs.db")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, DumpMemoryDBToDisk(db, path))

	disk, err := GetSqliteDB(path)
	require.NoError(t, err)
	var count int64
	require.NoError(t, disk.Model(&model.Run{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDumpMemoryDBToDisk_NoPath(t *testing.T) {
	db, err := GetSqliteDB("")
	require.NoError(t, err)
	assert.Error(t, DumpMemoryDBToDisk(db, ""))
}

package sqlitestorage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/database"
	"github.com/OCAP2/hoopshot/internal/model"
	"github.com/OCAP2/hoopshot/internal/storage"
	"github.com/OCAP2/hoopshot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface check
var _ storage.Backend = (*Backend)(nil)

func testRun(id string) *core.Run {
	return &core.Run{
		ID:        id,
		StartTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Launch:    core.LaunchParameters{Position: core.Position3D{Y: 1.5}, Speed: 10, Teta0: 45},
		Target:    core.Target{Position: core.Position3D{X: 8, Y: 3.05}, CaptureRadius: 0.1},
		Window:    core.SimulationWindow{Seconds: 3, Steps: 60},
		Gravity:   9.807,
		Trajectory: core.Trajectory{
			Samples: []core.Sample{
				{T: 0, Position: core.Position2D{Y: 1.5}},
				{T: 1, Position: core.Position2D{X: 5, Y: 4}},
			},
		},
	}
}

func countRuns(t *testing.T, path string) int64 {
	t.Helper()
	db, err := database.GetSqliteDB(path)
	require.NoError(t, err)
	var n int64
	require.NoError(t, db.Model(&model.Run{}).Count(&n).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return n
}

func TestInMemory_DumpsOnClose(t *testing.T) {
	dumpPath := filepath.Join(t.TempDir(), "hoopshot.db")

	b, err := New(config.SQLiteConfig{DumpPath: dumpPath}, nil)
	require.NoError(t, err)
	assert.True(t, b.InMemory())
	require.NoError(t, b.Init())

	require.NoError(t, b.RecordRun(testRun("one")))
	require.NoError(t, b.RecordRun(testRun("two")))

	_, err = os.Stat(dumpPath)
	assert.True(t, os.IsNotExist(err), "nothing is written before close")

	require.NoError(t, b.Close())
	assert.Equal(t, int64(2), countRuns(t, dumpPath))
}

func TestInMemory_NoDumpPath(t *testing.T) {
	b, err := New(config.SQLiteConfig{}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Init())
	require.NoError(t, b.RecordRun(testRun("one")))
	require.NoError(t, b.Close())
}

func TestFile_WritesDirectly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	b, err := New(config.SQLiteConfig{Path: path, DumpPath: filepath.Join(t.TempDir(), "unused.db")}, nil)
	require.NoError(t, err)
	assert.False(t, b.InMemory())
	require.NoError(t, b.Init())
	require.NoError(t, b.RecordRun(testRun("file")))
	require.NoError(t, b.Close())

	assert.Equal(t, int64(1), countRuns(t, path))
}

func TestClose_DumpFailure(t *testing.T) {
	// a regular file where the dump directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	b, err := New(config.SQLiteConfig{DumpPath: filepath.Join(blocker, "x.db")}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Init())

	err = b.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create dump directory")
}

func TestDump_CreatesDirectory(t *testing.T) {
	dumpPath := filepath.Join(t.TempDir(), "nested", "runs", "hoopshot.db")

	b, err := New(config.SQLiteConfig{DumpPath: dumpPath}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Init())
	require.NoError(t, b.RecordRun(testRun("one")))
	require.NoError(t, b.Close())

	assert.Equal(t, int64(1), countRuns(t, dumpPath))
}

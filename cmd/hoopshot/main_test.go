package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/logging"
	"github.com/OCAP2/hoopshot/internal/storage"
	"github.com/OCAP2/hoopshot/internal/storage/memory"
	pgstorage "github.com/OCAP2/hoopshot/internal/storage/postgres"
	sqlitestorage "github.com/OCAP2/hoopshot/internal/storage/sqlite"
	wsstorage "github.com/OCAP2/hoopshot/internal/storage/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes cfg as the config file of a fresh directory. Every
// test uses its own file so no values leak between runs.
func writeConfig(t *testing.T, cfg map[string]any) string {
	t.Helper()
	dir := t.TempDir()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), data, 0o644))
	return dir
}

func TestRun_Defaults(t *testing.T) {
	out := t.TempDir()
	dir := writeConfig(t, map[string]any{
		"svg":     map[string]any{"dir": out},
		"storage": map[string]any{"type": "none"},
	})

	var stdout bytes.Buffer
	code := run([]string{"--config-dir", dir}, &stdout)
	require.Equal(t, exitOK, code)

	text := stdout.String()
	assert.Contains(t, text, "** Did the basketball go into the basket? **")
	assert.Contains(t, text, "Entered the basket: true")
	assert.Equal(t, 1, strings.Count(text, "ball entered the basket\n"))
	assert.Contains(t, text, "    svg_trajectory_filename: basketball_trajectory.svg")

	svgData, err := os.ReadFile(filepath.Join(out, "basketball_trajectory.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svgData), `<path id="motionPath"`)
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	out := t.TempDir()
	dir := writeConfig(t, map[string]any{
		"grid":    map[string]any{"colsMeters": 20},
		"storage": map[string]any{"type": "none"},
	})

	var stdout bytes.Buffer
	code := run([]string{
		"--config-dir", dir,
		"--angle-unit", "degrees",
		"--svg-dir", out,
		"--svg-file", "throw.svg",
	}, &stdout)
	require.Equal(t, exitOK, code)

	assert.Contains(t, stdout.String(), "Entered the basket: false")
	assert.Contains(t, stdout.String(), "teta_0: 45.00 degrees")
	assert.FileExists(t, filepath.Join(out, "throw.svg"))
}

func TestRun_BasketFlag(t *testing.T) {
	dir := writeConfig(t, map[string]any{
		"svg":     map[string]any{"dir": t.TempDir()},
		"storage": map[string]any{"type": "none"},
	})

	var stdout bytes.Buffer
	require.Equal(t, exitOK, run([]string{"--config-dir", dir, "--basket", "4, 2, 1"}, &stdout))
	assert.Contains(t, stdout.String(), "basket_pos_x: 4.00 m")
	assert.Contains(t, stdout.String(), "basket_pos_z: 1.00 m")
	assert.Contains(t, stdout.String(), "Entered the basket: false")
}

func TestRun_HeightProfile(t *testing.T) {
	dir := writeConfig(t, map[string]any{
		"svg":    map[string]any{"dir": t.TempDir()},
		"report": map[string]any{"heightProfile": true, "profileHeight": 5},
	})

	var stdout bytes.Buffer
	require.Equal(t, exitOK, run([]string{"--config-dir", dir, "--storage", "none"}, &stdout))
	assert.Contains(t, stdout.String(), "height (m) per sample")
}

func TestRun_MemoryStorage(t *testing.T) {
	runs := t.TempDir()
	dir := writeConfig(t, map[string]any{
		"svg": map[string]any{"dir": t.TempDir()},
		"storage": map[string]any{
			"type":   "memory",
			"memory": map[string]any{"outputDir": runs, "compressOutput": false},
		},
	})

	var stdout bytes.Buffer
	require.Equal(t, exitOK, run([]string{"--config-dir", dir}, &stdout))

	files, err := filepath.Glob(filepath.Join(runs, "run_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var export map[string]any
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, true, export["entered"])
	assert.Len(t, export["samples"], 38)
}

func TestRun_SQLiteStorage(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "runs", "hoopshot.db")
	dir := writeConfig(t, map[string]any{
		"svg": map[string]any{"dir": t.TempDir()},
		"storage": map[string]any{
			"type":   "sqlite",
			"sqlite": map[string]any{"path": "", "dumpPath": dump},
		},
	})

	var stdout bytes.Buffer
	require.Equal(t, exitOK, run([]string{"--config-dir", dir}, &stdout))
	assert.FileExists(t, dump)
}

func TestRun_LogFile(t *testing.T) {
	logs := t.TempDir()
	dir := writeConfig(t, map[string]any{
		"logsDir":  logs,
		"logLevel": "debug",
		"svg":      map[string]any{"dir": t.TempDir()},
		"storage":  map[string]any{"type": "none"},
	})

	var stdout bytes.Buffer
	require.Equal(t, exitOK, run([]string{"--config-dir", dir}, &stdout))

	files, err := filepath.Glob(filepath.Join(logs, appName+".*.log"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	data, err := os.ReadFile(files[len(files)-1])
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id=")
	assert.Contains(t, string(data), "Run complete")
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]any
		args []string
		code int
	}{
		{
			name: "unknown flag",
			args: []string{"--nope"},
			code: exitUsage,
		},
		{
			name: "non-positive speed",
			cfg:  map[string]any{"launch": map[string]any{"speed": 0}},
			code: exitError,
		},
		{
			name: "unknown angle unit",
			args: []string{"--angle-unit", "gradians"},
			code: exitError,
		},
		{
			name: "trajectory off the grid",
			cfg:  map[string]any{"grid": map[string]any{"colsMeters": 2}},
			code: exitError,
		},
		{
			name: "malformed basket",
			args: []string{"--basket", "8"},
			code: exitError,
		},
		{
			name: "unknown storage",
			args: []string{"--storage", "tape"},
			code: exitError,
		},
		{
			name: "missing svg directory",
			args: []string{"--svg-dir", filepath.Join(os.TempDir(), "hoopshot-missing", "nested")},
			code: exitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := map[string]any{
				"svg":     map[string]any{"dir": t.TempDir()},
				"storage": map[string]any{"type": "none"},
			}
			for k, v := range tt.cfg {
				cfg[k] = v
			}
			dir := writeConfig(t, cfg)

			var stdout bytes.Buffer
			code := run(append([]string{"--config-dir", dir}, tt.args...), &stdout)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestCreateStorageBackend(t *testing.T) {
	s := &session{slog: logging.NewSlogManager()}
	s.logger = s.slog.Logger()

	tests := []struct {
		typ  string
		want storage.Backend
	}{
		{"none", nil},
		{"", nil},
		{"memory", &memory.Backend{}},
		{"sqlite", &sqlitestorage.Backend{}},
		{"postgres", &pgstorage.Backend{}},
		{"websocket", &wsstorage.Backend{}},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			b, err := createStorageBackend(s, config.StorageConfig{Type: tt.typ})
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, b)
				return
			}
			assert.IsType(t, tt.want, b)
			if closer, ok := b.(*sqlitestorage.Backend); ok {
				require.NoError(t, closer.Close())
			}
		})
	}

	_, err := createStorageBackend(s, config.StorageConfig{Type: "tape"})
	assert.Error(t, err)
}

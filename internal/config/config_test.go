package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/procmap/internal/timeline"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points the home directory at an empty temp dir so a real
// ~/.procmap/config.yaml cannot leak into tests.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".procmap", "procmap.db"), cfg.DB)
	assert.Empty(t, cfg.WindowStart)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, timeline.DefaultConfig(), cfg.Timeline())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("PROCMAP_DB", "/tmp/other.db")
	t.Setenv("PROCMAP_WINDOW_START", "2024-03")
	t.Setenv("PROCMAP_VERBOSE", "true")
	t.Setenv("PROCMAP_LAYOUT_CELL_WIDTH", "120")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.DB)
	assert.Equal(t, "2024-03", cfg.WindowStart)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 120.0, cfg.Layout.CellWidth)
	assert.Equal(t, 80.0, cfg.Layout.CellHeight)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "procmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db: /data/map.db
window_start: "2025-01"
layout:
  node_size: 30
  min_height: 400
`), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/data/map.db", cfg.DB)
	assert.Equal(t, "2025-01", cfg.WindowStart)
	assert.Equal(t, 30.0, cfg.Layout.NodeSize)
	assert.Equal(t, 400.0, cfg.Layout.MinHeight)
	assert.Equal(t, 200.0, cfg.Layout.CellWidth)
}

func TestLoad_HomeConfigPickedUp(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".procmap")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("verbose: true\n"), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	isolateHome(t)
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidWindowStart(t *testing.T) {
	isolateHome(t)
	t.Setenv("PROCMAP_WINDOW_START", "March")

	_, err := Load(New(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
}

func TestLoad_ExpandsTilde(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("PROCMAP_DB", "~/maps/a.db")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "maps", "a.db"), cfg.DB)
}

func TestBindFlags_FlagBeatsEnv(t *testing.T) {
	isolateHome(t)
	t.Setenv("PROCMAP_DB", "/env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--db", "/flag.db"}))

	v := New()
	require.NoError(t, BindFlags(v, flags))
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, "/flag.db", cfg.DB)
	assert.False(t, cfg.Verbose)
}

func TestConfig_Window(t *testing.T) {
	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

	w := Config{}.Window(now)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), w.Start)

	w = Config{WindowStart: "2024-01"}.Window(now)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), w.Start)
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

func TestDefaultConfigMatchesSolverDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	opts := cfg.SolverOptions()
	want := solver.DefaultOptions()
	assert.Equal(t, want.MaxLength, opts.MaxLength)
	assert.Equal(t, want.TargetLength, opts.TargetLength)
	assert.Equal(t, want.Timeout, opts.Timeout)
	assert.Equal(t, want.Phase2MaxDepth, opts.Phase2MaxDepth)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadEmptyOrMissingPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
solver:
  target_length: 0
  timeout: 500ms
  max_nodes: 100000
log_level: debug
workers: 2
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Solver.TargetLength)
	assert.Equal(t, 500*time.Millisecond, cfg.Solver.Timeout)
	assert.Equal(t, int64(100000), cfg.Solver.MaxNodes)
	assert.Equal(t, 2, cfg.Workers)
	// Unset keys keep their defaults.
	assert.Equal(t, 24, cfg.Solver.MaxLength)
	assert.Equal(t, 12, cfg.Solver.Phase2MaxDepth)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"max length too large", "solver:\n  max_length: 41\n"},
		{"negative timeout", "solver:\n  timeout: -1s\n"},
		{"negative workers", "workers: -1\n"},
		{"unknown level", "log_level: loud\n"},
		{"malformed", "solver: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Solver.Timeout = 10 * time.Second
	cfg.Database = "gocube.db"

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestTableCacheSetting(t *testing.T) {
	t.Setenv("GOCUBE_TABLE_CACHE", "/var/cache/gocube")
	assert.Equal(t, "/var/cache/gocube", DefaultConfig().TableCache)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table_cache: \"\"\n"), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.TableCache)
	assert.Empty(t, cfg.TablesOptions(nil).CacheDir)
}

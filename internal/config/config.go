// Package config loads the command-line tool settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/tables"
)

// Config holds every setting of the gocube command.
type Config struct {
	Solver   SolverConfig `yaml:"solver"`
	LogLevel string       `yaml:"log_level"`
	// Workers bounds parallel solves in batch commands. Zero uses one
	// worker per CPU.
	Workers int `yaml:"workers"`
	// Database is the SQLite file for session logs. Empty keeps them in
	// memory.
	Database string `yaml:"database"`
	// TableCache is the directory holding the phase-1 pruning table between
	// runs. Empty disables the cache.
	TableCache string `yaml:"table_cache"`
}

// SolverConfig mirrors solver.Options.
type SolverConfig struct {
	MaxLength      int           `yaml:"max_length"`
	TargetLength   int           `yaml:"target_length"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxNodes       int64         `yaml:"max_nodes"`
	Phase2MaxDepth int           `yaml:"phase2_max_depth"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	o := solver.DefaultOptions()
	return Config{
		Solver: SolverConfig{
			MaxLength:      o.MaxLength,
			TargetLength:   o.TargetLength,
			Timeout:        o.Timeout,
			MaxNodes:       o.MaxNodes,
			Phase2MaxDepth: o.Phase2MaxDepth,
		},
		LogLevel:   "info",
		TableCache: tables.DefaultCacheDir(),
	}
}

// DefaultPath returns ~/.gocube/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".gocube", "config.yaml"), nil
}

// Load reads the file at path over the defaults. An empty path or a missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the solver bounds, worker count and log level.
func (c Config) Validate() error {
	if err := c.SolverOptions().Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// SolverOptions converts the solver section.
func (c Config) SolverOptions() solver.Options {
	return solver.Options{
		MaxLength:      c.Solver.MaxLength,
		TargetLength:   c.Solver.TargetLength,
		Timeout:        c.Solver.Timeout,
		MaxNodes:       c.Solver.MaxNodes,
		Phase2MaxDepth: c.Solver.Phase2MaxDepth,
	}
}

// TablesOptions converts the table settings.
func (c Config) TablesOptions(log *slog.Logger) tables.Options {
	return tables.Options{CacheDir: c.TableCache, Logger: log}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return l, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}

package gocube

import (
	"log/slog"
	"time"

	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Option configures a solve.
type Option func(*config)

type config struct {
	solver solver.Options
}

func defaultConfig() *config {
	return &config{solver: solver.DefaultOptions()}
}

func buildConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMaxLength sets the longest solution the search accepts (default 24).
func WithMaxLength(n int) Option {
	return func(c *config) {
		c.solver.MaxLength = n
	}
}

// WithTargetLength stops the search as soon as a solution of at most n moves
// is found (default 20). Zero keeps searching until the solution is proven
// shortest or the budget runs out.
func WithTargetLength(n int) Option {
	return func(c *config) {
		c.solver.TargetLength = n
	}
}

// WithTimeout bounds the wall-clock time of a solve (default 3s).
// Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.solver.Timeout = d
	}
}

// WithMaxNodes bounds the number of search nodes (default unlimited).
func WithMaxNodes(n int64) Option {
	return func(c *config) {
		c.solver.MaxNodes = n
	}
}

// WithPhase2MaxDepth caps the length of the second search phase (default 12).
func WithPhase2MaxDepth(n int) Option {
	return func(c *config) {
		c.solver.Phase2MaxDepth = n
	}
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.solver.Logger = l
	}
}

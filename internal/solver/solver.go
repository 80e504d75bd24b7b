// Package solver implements the two-phase search.
//
// Phase 1 looks for move sequences that bring the cube into the subgroup
// generated by U, D, R2, F2, L2 and B2. For every such sequence found, phase
// 2 solves the remainder using only moves of that subgroup. Phase-1 depths are
// tried in increasing order and the shortest total is kept, so the search
// converges towards an optimal two-phase solution until the budget runs out.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/tables"
)

// ErrNoSolution is returned when the budget ran out before any solution was
// found.
var ErrNoSolution = errors.New("gocube: no solution within budget")

var tracer = otel.Tracer("gocube.solver")

// checkEvery is how many expanded nodes pass between clock and context checks.
const checkEvery = 1024

// Options bounds a search.
type Options struct {
	// MaxLength is the longest total solution accepted.
	MaxLength int
	// TargetLength stops the search as soon as a solution this short is
	// found. Zero searches until the result is proven shortest.
	TargetLength int
	// Timeout bounds wall-clock time. Zero means no limit.
	Timeout time.Duration
	// MaxNodes bounds the number of expanded nodes. Zero means no limit.
	MaxNodes int64
	// Phase2MaxDepth caps the length of the phase-2 part.
	Phase2MaxDepth int
	Logger         *slog.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		MaxLength:      24,
		TargetLength:   20,
		Timeout:        3 * time.Second,
		Phase2MaxDepth: 12,
	}
}

// Validate reports option values the search cannot work with.
func (o Options) Validate() error {
	switch {
	case o.MaxLength < 1 || o.MaxLength > maxDepth:
		return fmt.Errorf("max length must be between 1 and %d, got %d", maxDepth, o.MaxLength)
	case o.TargetLength < 0:
		return fmt.Errorf("target length must not be negative, got %d", o.TargetLength)
	case o.Timeout < 0:
		return fmt.Errorf("timeout must not be negative, got %s", o.Timeout)
	case o.MaxNodes < 0:
		return fmt.Errorf("max nodes must not be negative, got %d", o.MaxNodes)
	case o.Phase2MaxDepth < 1:
		return fmt.Errorf("phase 2 max depth must be positive, got %d", o.Phase2MaxDepth)
	}
	return nil
}

// maxDepth bounds the frame arrays; every state is solvable in 20 moves.
const maxDepth = 40

// Solution is the result of a search.
type Solution struct {
	Moves   []cubie.Move
	Nodes   int64
	Elapsed time.Duration
	// Optimal is set when the search proved no shorter two-phase solution
	// exists.
	Optimal bool
}

// Len returns the number of moves.
func (s *Solution) Len() int {
	return len(s.Moves)
}

// String returns the moves in standard notation separated by spaces.
func (s *Solution) String() string {
	parts := make([]string, len(s.Moves))
	for i, m := range s.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Solver searches for solutions. It is safe for concurrent use.
type Solver struct {
	tables *tables.Tables
	opts   Options
}

// New returns a solver reading t. A nil t uses tables.Default.
func New(t *tables.Tables, opts Options) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if t == nil {
		t = tables.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Solver{tables: t, opts: opts}, nil
}

// Options returns the options the solver was built with.
func (s *Solver) Options() Options {
	return s.opts
}

// Solve searches for a move sequence taking c to the solved state.
func (s *Solver) Solve(ctx context.Context, c cubie.Cube) (*Solution, error) {
	ctx, span := tracer.Start(ctx, "solver.Solve")
	defer span.End()

	if err := c.Verify(); err != nil {
		recordResult(resultError, nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unreachable state")
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		recordResult(resultNoSolution, nil)
		return nil, fmt.Errorf("%w: %w", ErrNoSolution, err)
	}
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	st := newSearch(ctx, s.tables, s.opts, c)
	st.run()

	sol := &Solution{Nodes: st.nodes, Elapsed: time.Since(st.start)}
	span.SetAttributes(attribute.Int64("nodes", st.nodes))
	if st.best < 0 {
		err := ErrNoSolution
		if st.ctxErr != nil {
			err = fmt.Errorf("%w: %w", ErrNoSolution, st.ctxErr)
		}
		recordResult(resultNoSolution, sol)
		span.SetStatus(codes.Error, "no solution")
		s.opts.Logger.Debug("search exhausted without solution",
			"nodes", sol.Nodes, "elapsed", sol.Elapsed)
		return nil, err
	}

	sol.Moves = st.bestMoves
	sol.Optimal = st.proven && s.opts.Phase2MaxDepth >= st.best-1
	recordResult(resultSolved, sol)
	span.SetAttributes(attribute.Int("length", sol.Len()), attribute.Bool("optimal", sol.Optimal))
	s.opts.Logger.Debug("solved cube",
		"length", sol.Len(), "nodes", sol.Nodes, "elapsed", sol.Elapsed, "optimal", sol.Optimal)
	return sol, nil
}

// Solve runs a search with the default tables.
func Solve(ctx context.Context, c cubie.Cube, opts Options) (*Solution, error) {
	s, err := New(nil, opts)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, c)
}

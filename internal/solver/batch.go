package solver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

// Result pairs a batch input with its outcome.
type Result struct {
	Solution *Solution
	Err      error
}

// SolveAll solves every cube with at most workers searches running at once.
// Per-cube failures are reported in the results; the returned error is
// non-nil only when ctx ends before every cube was attempted.
func (s *Solver) SolveAll(ctx context.Context, cubes []cubie.Cube, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(cubes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cubes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			sol, err := s.Solve(gctx, c)
			results[i] = Result{Solution: sol, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

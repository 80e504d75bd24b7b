// Package tables builds the move and pruning tables used by the two-phase
// search.
//
// Move tables map (coordinate, move) to the coordinate after the move and are
// stored densely at index coord*cubie.NumMoves + move. Pruning tables hold
// the exact number of moves needed to bring a set of coordinates to zero
// using the moves of its phase, which makes them admissible lower bounds for
// the full search.
//
// Phase 1 uses a single table over all of twist, flip and slice. It is
// reduced by the 16 symmetries that fix the U-D axis and stores each
// distance mod 3 in two bits; the exact distance is recovered by walking
// towards the goal (see Phase1Distance).
//
// Tables are built once and never modified; a *Tables may be shared between
// any number of goroutines.
package tables

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

// Unvisited marks a pruning cell not yet reached during construction.
const Unvisited int8 = -1

// Tables holds every precomputed table.
type Tables struct {
	TwistMove       []uint16
	FlipMove        []uint16
	SliceSortedMove []uint16
	CornersMove     []uint16
	// UDEdgesMove is meaningful for phase-2 moves only; the other columns
	// hold cubie.NoCoord.
	UDEdgesMove []uint16

	// FlipSliceClass and FlipSliceSym map a flipslice coordinate to its
	// symmetry class and to the symmetry that takes it to the class
	// representative. FlipSliceRep lists the representatives.
	FlipSliceClass []uint16
	FlipSliceSym   []uint8
	FlipSliceRep   []uint32
	// TwistConj[twist*cubie.NumSym+s] is the twist of the conjugate by
	// symmetry s.
	TwistConj []uint16

	// Phase1Prune holds the phase-1 distance mod 3 of every (flipslice
	// class, twist) cell, two bits per cell.
	Phase1Prune  phase1Table
	Phase1Depths []int

	SliceCornersPrune []int8
	SliceEdgesPrune   []int8

	BuildTime time.Duration
	// Cached is set when the phase-1 table was read from the cache.
	Cached bool
}

// Options configures Build.
type Options struct {
	// CacheDir keeps the phase-1 pruning table between runs. Empty
	// disables the cache.
	CacheDir string
	Logger   *slog.Logger
}

// DefaultCacheDir returns $GOCUBE_TABLE_CACHE if set, else a gocube
// directory under the user cache directory. It returns "" when neither is
// available.
func DefaultCacheDir() string {
	if dir, ok := os.LookupEnv("GOCUBE_TABLE_CACHE"); ok {
		return dir
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gocube")
}

var (
	defaultOnce   sync.Once
	defaultMu     sync.Mutex
	defaultOpts   = Options{CacheDir: DefaultCacheDir()}
	defaultTables *Tables
)

// SetDefaultOptions changes the options Default builds with. It has no
// effect once Default has run.
func SetDefaultOptions(opts Options) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOpts = opts
}

// Default returns the process-wide tables, building them on first use.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		opts := defaultOpts
		defaultMu.Unlock()
		t, err := Build(context.Background(), opts)
		if err != nil {
			// Build only fails on cancellation.
			panic(fmt.Sprintf("tables: build failed: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

// Build computes all tables. Independent tables are built concurrently; the
// pruning tables start once the move tables they read are complete.
func Build(ctx context.Context, opts Options) (*Tables, error) {
	ctx, span := otel.Tracer("gocube/tables").Start(ctx, "tables.Build")
	defer span.End()

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()
	t := &Tables{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.TwistMove, err = buildCornerTable(gctx, cubie.NumTwist, (*cubie.Cube).SetTwist, cubie.Cube.Twist)
		return err
	})
	g.Go(func() (err error) {
		t.FlipMove, err = buildEdgeTable(gctx, cubie.NumFlip, (*cubie.Cube).SetFlip, cubie.Cube.Flip)
		return err
	})
	g.Go(func() (err error) {
		t.SliceSortedMove, err = buildEdgeTable(gctx, cubie.NumSliceSorted, (*cubie.Cube).SetSliceSorted, cubie.Cube.SliceSorted)
		return err
	})
	g.Go(func() (err error) {
		t.CornersMove, err = buildCornerTable(gctx, cubie.NumCorners8, (*cubie.Cube).SetCorners, cubie.Cube.Corners)
		return err
	})
	g.Go(func() (err error) {
		t.UDEdgesMove, err = buildEdgeTable(gctx, cubie.NumUDEdges, (*cubie.Cube).SetUDEdges, cubie.Cube.UDEdges)
		return err
	})
	g.Go(func() error {
		return t.buildFlipSliceClasses(gctx)
	})
	g.Go(func() error {
		t.buildTwistConj()
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build move tables: %w", err)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		if t.loadPhase1(opts.CacheDir, log) {
			return nil
		}
		if err := t.buildPhase1Prune(gctx, log); err != nil {
			return err
		}
		t.savePhase1(opts.CacheDir, log)
		return nil
	})
	g.Go(func() (err error) {
		t.SliceCornersPrune, err = t.buildPhase2Prune(gctx, cubie.NumCorners8, t.CornersMove)
		return err
	})
	g.Go(func() (err error) {
		t.SliceEdgesPrune, err = t.buildPhase2Prune(gctx, cubie.NumUDEdges, t.UDEdgesMove)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build pruning tables: %w", err)
	}

	t.BuildTime = time.Since(start)
	span.SetAttributes(attribute.Int64("build_ms", t.BuildTime.Milliseconds()),
		attribute.Bool("cached", t.Cached))
	log.Debug("built solver tables", "duration", t.BuildTime, "cached", t.Cached)
	return t, nil
}

// checkEvery is how many coordinates a table builder fills between context
// checks.
const checkEvery = 1024

// buildCornerTable fills a move table for a coordinate that depends on the
// corners only.
func buildCornerTable(ctx context.Context, n int, set func(*cubie.Cube, uint16), get func(cubie.Cube) uint16) ([]uint16, error) {
	table := make([]uint16, n*cubie.NumMoves)
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		c := cubie.Solved
		set(&c, uint16(i))
		for f := cubie.Face(0); f < cubie.NumFaces; f++ {
			q := cubie.BasicMove(f)
			for p := 1; p <= 3; p++ {
				c.CornerMultiply(&q)
				table[i*cubie.NumMoves+int(cubie.NewMove(f, p))] = get(c)
			}
			// The fourth quarter turn restores c.
			c.CornerMultiply(&q)
		}
	}
	return table, nil
}

// buildEdgeTable fills a move table for a coordinate that depends on the
// edges only.
func buildEdgeTable(ctx context.Context, n int, set func(*cubie.Cube, uint16), get func(cubie.Cube) uint16) ([]uint16, error) {
	table := make([]uint16, n*cubie.NumMoves)
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		c := cubie.Solved
		set(&c, uint16(i))
		for f := cubie.Face(0); f < cubie.NumFaces; f++ {
			q := cubie.BasicMove(f)
			for p := 1; p <= 3; p++ {
				c.EdgeMultiply(&q)
				table[i*cubie.NumMoves+int(cubie.NewMove(f, p))] = get(c)
			}
			c.EdgeMultiply(&q)
		}
	}
	return table, nil
}

// Move looks up a move table.
func Move(table []uint16, coord uint16, m cubie.Move) uint16 {
	return table[int(coord)*cubie.NumMoves+int(m)]
}

// Phase2Distance returns the admissible phase-2 lower bound.
func (t *Tables) Phase2Distance(p cubie.Phase2) int {
	a := t.SliceCornersPrune[int(p.SlicePerm)*cubie.NumCorners8+int(p.Corners)]
	b := t.SliceEdgesPrune[int(p.SlicePerm)*cubie.NumUDEdges+int(p.UDEdges)]
	return int(max(a, b))
}

// Phase1Move applies m to phase-1 coordinates.
func (t *Tables) Phase1Move(p cubie.Phase1, m cubie.Move) cubie.Phase1 {
	return cubie.Phase1{
		Twist: Move(t.TwistMove, p.Twist, m),
		Flip:  Move(t.FlipMove, p.Flip, m),
		Slice: Move(t.SliceSortedMove, p.Slice*24, m) / 24,
	}
}

// Phase2Move applies a phase-2 move to phase-2 coordinates.
func (t *Tables) Phase2Move(p cubie.Phase2, m cubie.Move) cubie.Phase2 {
	return cubie.Phase2{
		Corners:   Move(t.CornersMove, p.Corners, m),
		UDEdges:   Move(t.UDEdgesMove, p.UDEdges, m),
		SlicePerm: Move(t.SliceSortedMove, p.SlicePerm, m),
	}
}

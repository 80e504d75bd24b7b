package solver

import (
	"context"
	"time"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/tables"
)

type phase1Frame struct {
	coord cubie.Phase1
	dist  int // exact phase-1 distance of coord
	next  cubie.Move
}

type phase2Frame struct {
	coord cubie.Phase2
	next  int // index into cubie.Phase2Moves
}

// variant is the cube as seen along one of the three axes, or its inverse.
// Phase 1 only ever brings the U-D axis into shape, so searching all six
// finds short solutions much sooner than searching the cube alone.
type variant struct {
	cube    cubie.Cube
	rot     int
	inverse bool
	root    cubie.Phase1
	dist    int
}

func newVariants(t *tables.Tables, c cubie.Cube) []variant {
	var vs []variant
	for _, inverse := range []bool{false, true} {
	next:
		for rot := 0; rot < cubie.NumRotations; rot++ {
			v := variant{cube: c.Rotate(rot), rot: rot, inverse: inverse}
			if inverse {
				v.cube = v.cube.Inverse()
			}
			for _, w := range vs {
				if w.cube == v.cube {
					continue next
				}
			}
			v.root = v.cube.Phase1()
			v.dist = t.Phase1Distance(v.root)
			vs = append(vs, v)
		}
	}
	return vs
}

// solutionOf converts a solution of v.cube into one of the original cube.
func (v variant) solutionOf(moves []cubie.Move) []cubie.Move {
	out := make([]cubie.Move, len(moves))
	for i, m := range moves {
		if v.inverse {
			m = moves[len(moves)-1-i].Inverse()
		}
		out[i] = cubie.RotateMove((cubie.NumRotations-v.rot)%cubie.NumRotations, m)
	}
	return out
}

// search holds the state of one Solve call.
type search struct {
	ctx    context.Context
	tables *tables.Tables
	opts   Options
	cube   cubie.Cube
	start  time.Time

	// v is the variant being searched.
	v       *variant
	moves   [maxDepth]cubie.Move
	frames1 [maxDepth + 1]phase1Frame
	frames2 [maxDepth + 1]phase2Frame

	best      int
	bestMoves []cubie.Move

	nodes   int64
	stopped bool
	ctxErr  error
	// proven is set when every phase-1 depth below best was searched.
	proven bool
}

func newSearch(ctx context.Context, t *tables.Tables, opts Options, c cubie.Cube) *search {
	return &search{
		ctx:    ctx,
		tables: t,
		opts:   opts,
		cube:   c,
		start:  time.Now(),
		best:   -1,
	}
}

// run drives phase 1 over increasing depths, trying every variant at each
// depth before moving on.
func (s *search) run() {
	vs := newVariants(s.tables, s.cube)
	for d1 := 0; d1 <= s.opts.MaxLength; d1++ {
		if s.best >= 0 && d1 >= s.best {
			s.proven = true
			return
		}
		for i := range vs {
			if d1 < vs[i].dist {
				continue
			}
			s.v = &vs[i]
			s.phase1(vs[i].root, vs[i].dist, d1)
			if s.stopped || s.targetReached() {
				return
			}
		}
		if s.best >= 0 && s.best <= d1 {
			// Nothing shorter than a pure phase-1 solution remains.
			s.proven = true
			return
		}
	}
	s.proven = s.best >= 0
}

func (s *search) targetReached() bool {
	return s.best >= 0 && s.best <= s.opts.TargetLength
}

// tick counts one expanded node and reports whether the search must stop.
func (s *search) tick() bool {
	s.nodes++
	if s.opts.MaxNodes > 0 && s.nodes > s.opts.MaxNodes {
		s.stopped = true
	} else if s.nodes%checkEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			s.ctxErr = err
			s.stopped = true
		}
	}
	return s.stopped
}

// allowed reports whether m may follow prev in a canonical sequence: never
// the same face twice, and opposite faces only in ascending order.
func allowed(prev, m cubie.Move) bool {
	pf, f := prev.Face(), m.Face()
	if f == pf {
		return false
	}
	return !(f == pf.Opposite() && f < pf)
}

// phase1 enumerates every canonical sequence of exactly depth moves that
// brings the current variant into the phase-2 subgroup and hands each one
// to phase2.
func (s *search) phase1(root cubie.Phase1, dist, depth int) {
	s.frames1[0] = phase1Frame{coord: root, dist: dist}
	d := 0
	for d >= 0 {
		f := &s.frames1[d]
		if d == depth {
			if f.coord.IsZero() && (depth == 0 || !s.moves[depth-1].IsPhase2()) {
				s.phase2(depth)
				if s.stopped || s.targetReached() {
					return
				}
			}
			d--
			continue
		}
		if f.next >= cubie.NumMoves {
			d--
			continue
		}
		m := f.next
		f.next++
		if d > 0 && !allowed(s.moves[d-1], m) {
			continue
		}
		if s.tick() {
			return
		}
		next := s.tables.Phase1Move(f.coord, m)
		nd := s.tables.Phase1Step(f.dist, next)
		if nd > depth-d-1 {
			continue
		}
		s.moves[d] = m
		d++
		s.frames1[d] = phase1Frame{coord: next, dist: nd}
	}
}

// phase2 completes the phase-1 prefix s.moves[:d1] with the shortest
// phase-2 sequence that beats the current best.
func (s *search) phase2(d1 int) {
	limit := s.opts.MaxLength
	if s.best >= 0 {
		limit = min(limit, s.best-1)
	}
	bound := min(limit-d1, s.opts.Phase2MaxDepth)
	if bound < 0 {
		return
	}

	c := s.v.cube.Apply(s.moves[:d1]...)
	root, ok := c.Phase2()
	if !ok {
		return
	}
	for d2 := s.tables.Phase2Distance(root); d2 <= bound; d2++ {
		if s.phase2Depth(root, d1, d2) {
			s.best = d1 + d2
			s.bestMoves = s.v.solutionOf(s.moves[:s.best])
			return
		}
		if s.stopped {
			return
		}
	}
}

// phase2Depth searches phase-2 sequences of exactly depth moves, writing
// them after the prefix. It reports whether one solved the cube.
func (s *search) phase2Depth(root cubie.Phase2, d1, depth int) bool {
	s.frames2[0] = phase2Frame{coord: root}
	d := 0
	for d >= 0 {
		f := &s.frames2[d]
		if d == depth {
			if f.coord.IsZero() {
				return true
			}
			d--
			continue
		}
		if f.next >= len(cubie.Phase2Moves) {
			d--
			continue
		}
		m := cubie.Phase2Moves[f.next]
		f.next++
		if d1+d > 0 && !allowed(s.moves[d1+d-1], m) {
			continue
		}
		if s.tick() {
			return false
		}
		next := s.tables.Phase2Move(f.coord, m)
		if s.tables.Phase2Distance(next) > depth-d-1 {
			continue
		}
		s.moves[d1+d] = m
		d++
		s.frames2[d] = phase2Frame{coord: next}
	}
	return false
}

// Package gocube models a 3x3 Rubik's cube and finds short solutions with a
// two-phase search.
//
// # Features
//
//   - Cube state as a permutation and orientation of corners and edges
//   - 54-character facelet strings in and out, with reachability checks
//   - Standard move notation (R, R', R2, ...)
//   - Two-phase solver with a length cap and time/node budget
//
// # Quick Start
//
// Solve a cube given as a facelet string:
//
//	ctx := context.Background()
//	sol, err := gocube.Solve(ctx, facelets, gocube.WithTimeout(time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sol) // e.g. "R U2 F' ..."
//
// # Working With Cubes
//
//	cube := gocube.NewCube()
//
//	// Apply moves using predefined constants
//	cube.Apply(gocube.R, gocube.U, gocube.RPrime, gocube.UPrime)
//
//	// Or from notation
//	cube.ApplyNotation("F B2 L' D")
//
//	fmt.Println(cube.Facelets())
//	fmt.Println("Solved:", cube.IsSolved())
//
// # Facelet Strings
//
// Stickers are listed face by face in the order U, R, F, D, L, B. Within a
// face they run row by row, left to right, as seen when looking straight at
// that face with U on top (F on top for D, and B on the far side of U).
// Each sticker is named by the face whose center has its color, so the
// solved cube is
//
//	UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB
//
// # Solving
//
// The search first brings the cube into the subgroup generated by
// U, D, R2, F2, L2, B2 and then solves it using only those moves. It keeps
// improving its best solution until the target length is reached, the
// budget runs out, or no shorter solution can exist. The first call builds
// lookup tables, which takes a moment; later calls share them.
package gocube

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Solution is a move sequence found by the solver.
type Solution struct {
	Moves   []Move
	Nodes   int64         // Search nodes expanded
	Elapsed time.Duration // Wall-clock search time
	Optimal bool          // No shorter two-phase solution exists
}

// Len returns the number of moves.
func (s *Solution) Len() int {
	return len(s.Moves)
}

// String returns the solution in standard notation, empty for a solved cube.
func (s *Solution) String() string {
	return FormatMoves(s.Moves)
}

// Solve decodes a facelet string and searches for a solution.
func Solve(ctx context.Context, facelets string, opts ...Option) (*Solution, error) {
	c, err := ParseCube(facelets)
	if err != nil {
		return nil, err
	}
	return c.Solve(ctx, opts...)
}

func solveState(ctx context.Context, state cubie.Cube, cfg *config) (*Solution, error) {
	sol, err := solver.Solve(ctx, state, cfg.solver)
	if err != nil {
		return nil, err
	}
	return &Solution{
		Moves:   fromCubieMoves(sol.Moves),
		Nodes:   sol.Nodes,
		Elapsed: sol.Elapsed,
		Optimal: sol.Optimal,
	}, nil
}

// Scramble returns a uniformly random cube together with a move sequence
// that produces it from the solved state. A nil r uses a randomly seeded
// source.
func Scramble(ctx context.Context, r *rand.Rand, opts ...Option) (*Cube, []Move, error) {
	c := RandomCube(r)
	sol, err := c.Solve(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return c, InvertMoves(sol.Moves), nil
}

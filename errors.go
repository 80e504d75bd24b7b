package gocube

import (
	"errors"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/facelet"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Sentinel errors for the gocube package.
var (
	// Input errors
	ErrInvalidFaceletLayout = facelet.ErrInvalidLayout
	ErrUnreachableCubeState = cubie.ErrUnreachable
	ErrInvalidNotation      = cubie.ErrInvalidNotation

	// Search errors
	ErrNoSolutionWithinBudget = solver.ErrNoSolution

	// Session errors
	ErrSessionNotFound = errors.New("gocube: session not found")
)

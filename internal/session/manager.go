// Package session keeps interactive cubes: each session holds a cube state,
// the moves applied to it and a log of solver runs.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gocube "github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/facelet"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = gocube.ErrSessionNotFound

type entry struct {
	initial cubie.Cube
	cube    cubie.Cube
}

// Manager owns all sessions. Mutations are serialised; solves run on a
// snapshot without holding the lock.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	sessionRepo *storage.SessionRepository
	moveRepo    *storage.MoveRepository
	solveRepo   *storage.SolveRepository
	solver      *solver.Solver
	logger      *slog.Logger
}

// NewManager creates a manager logging to db and solving with s.
func NewManager(db *storage.DB, s *solver.Solver, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions:    make(map[string]*entry),
		sessionRepo: storage.NewSessionRepository(db),
		moveRepo:    storage.NewMoveRepository(db),
		solveRepo:   storage.NewSolveRepository(db),
		solver:      s,
		logger:      logger,
	}
}

// Create starts a session from a facelet string; empty means solved.
func (m *Manager) Create(ctx context.Context, facelets string) (string, error) {
	c := cubie.Solved
	if facelets != "" {
		var err error
		if c, err = facelet.Decode(facelets); err != nil {
			return "", err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id, err := m.sessionRepo.Create(ctx, facelet.Encode(c))
	if err != nil {
		return "", err
	}
	m.sessions[id] = &entry{initial: c, cube: c}
	m.logger.Debug("session created", "session_id", id)
	return id, nil
}

func (m *Manager) lookup(id string) (*entry, error) {
	e, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// Apply applies moves to a session and returns the new state.
func (m *Manager) Apply(ctx context.Context, id string, moves ...cubie.Move) (cubie.Cube, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := m.lookup(id)
	if err != nil {
		return cubie.Cube{}, err
	}
	if err := m.moveRepo.Append(ctx, id, moves); err != nil {
		return cubie.Cube{}, err
	}
	e.cube = e.cube.Apply(moves...)
	return e.cube, nil
}

// ApplyNotation parses and applies a move sequence. Nothing is applied if
// any token is invalid.
func (m *Manager) ApplyNotation(ctx context.Context, id, notation string) (cubie.Cube, error) {
	moves, err := cubie.ParseMoves(notation)
	if err != nil {
		return cubie.Cube{}, err
	}
	return m.Apply(ctx, id, moves...)
}

// State returns the current state of a session.
func (m *Manager) State(id string) (cubie.Cube, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, err := m.lookup(id)
	if err != nil {
		return cubie.Cube{}, err
	}
	return e.cube, nil
}

// Facelets returns the facelet string of a session.
func (m *Manager) Facelets(id string) (string, error) {
	c, err := m.State(id)
	if err != nil {
		return "", err
	}
	return facelet.Encode(c), nil
}

// Reset returns a session to its initial state and clears its move history.
func (m *Manager) Reset(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	if err := m.moveRepo.DeleteBySession(ctx, id); err != nil {
		return err
	}
	e.cube = e.initial
	return nil
}

// History returns the moves applied since creation or the last reset, each
// stamped with the time it was applied.
func (m *Manager) History(ctx context.Context, id string) ([]gocube.Move, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, err := m.lookup(id); err != nil {
		return nil, err
	}
	records, err := m.moveRepo.GetBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	return Moves(records), nil
}

// Solve searches for a solution of the current state. The run is logged
// whether or not it succeeds; the session state is not changed.
func (m *Manager) Solve(ctx context.Context, id string) (*solver.Solution, error) {
	c, err := m.State(id)
	if err != nil {
		return nil, err
	}

	sol, solveErr := m.solver.Solve(ctx, c)

	rec := storage.SolveRecord{SessionID: &id, Facelets: facelet.Encode(c)}
	if solveErr != nil {
		msg := solveErr.Error()
		rec.Error = &msg
	} else {
		text, length := sol.String(), sol.Len()
		rec.Solution, rec.Length = &text, &length
		rec.Nodes, rec.Duration, rec.Optimal = sol.Nodes, sol.Elapsed, sol.Optimal
	}
	// The log write must not be cancelled with the search.
	if _, err := m.solveRepo.Create(context.WithoutCancel(ctx), rec); err != nil {
		m.logger.Warn("failed to record solve", "session_id", id, "error", err)
	}
	return sol, solveErr
}

// Solves returns the logged solver runs of a session.
func (m *Manager) Solves(ctx context.Context, id string) ([]storage.SolveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, err := m.lookup(id); err != nil {
		return nil, err
	}
	return m.solveRepo.ListBySession(ctx, id)
}

// Close removes a session and its log.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(id); err != nil {
		return err
	}
	if err := m.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

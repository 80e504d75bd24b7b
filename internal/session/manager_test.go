package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gocube "github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/facelet"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
	"github.com/SeamusWaldron/gocube_solver/internal/tables"
)

func newTestManager(t *testing.T, opts solver.Options) *Manager {
	t.Helper()
	db, err := storage.Open(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := solver.New(tables.Default(), opts)
	require.NoError(t, err)
	return NewManager(db, s, nil)
}

func TestCreateSolved(t *testing.T) {
	m := newTestManager(t, solver.DefaultOptions())
	id, err := m.Create(context.Background(), "")
	require.NoError(t, err)

	c, err := m.State(id)
	require.NoError(t, err)
	assert.True(t, c.IsSolved())
	assert.Equal(t, 1, m.Len())
}

func TestCreateFromFacelets(t *testing.T) {
	m := newTestManager(t, solver.DefaultOptions())
	ctx := context.Background()
	scrambled := facelet.Encode(cubie.Solved.Apply(cubie.R1, cubie.U1))

	id, err := m.Create(ctx, scrambled)
	require.NoError(t, err)
	got, err := m.Facelets(id)
	require.NoError(t, err)
	assert.Equal(t, scrambled, got)

	_, err = m.Create(ctx, "UUU")
	assert.ErrorIs(t, err, facelet.ErrInvalidLayout)
	assert.Equal(t, 1, m.Len())
}

func TestApplyAndHistory(t *testing.T) {
	m := newTestManager(t, solver.DefaultOptions())
	ctx := context.Background()
	id, err := m.Create(ctx, "")
	require.NoError(t, err)

	c, err := m.Apply(ctx, id, cubie.R1)
	require.NoError(t, err)
	assert.False(t, c.IsSolved())

	c, err = m.ApplyNotation(ctx, id, "U R'")
	require.NoError(t, err)
	assert.Equal(t, cubie.Solved.Apply(cubie.R1, cubie.U1, cubie.R3), c)

	history, err := m.History(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "R U R'", gocube.FormatMoves(history))
	for i, mv := range history {
		assert.False(t, mv.Time.IsZero(), "move %d has no time", i)
		if i > 0 {
			assert.False(t, mv.Time.Before(history[i-1].Time))
		}
	}
}

func TestMovesFromRecords(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	records := []storage.MoveRecord{
		{Move: cubie.U1, AppliedAt: at},
		{Move: cubie.F2, AppliedAt: at.Add(time.Second)},
		{Move: cubie.B3, AppliedAt: at.Add(2 * time.Second)},
	}
	moves := Moves(records)
	require.Len(t, moves, 3)
	assert.Equal(t, gocube.Move{Face: gocube.FaceU, Turn: gocube.CW, Time: at}, moves[0])
	assert.Equal(t, gocube.Double, moves[1].Turn)
	assert.Equal(t, gocube.Move{Face: gocube.FaceB, Turn: gocube.CCW, Time: at.Add(2 * time.Second)}, moves[2])
}

func TestApplyNotationIsAtomic(t *testing.T) {
	m := newTestManager(t, solver.DefaultOptions())
	ctx := context.Background()
	id, err := m.Create(ctx, "")
	require.NoError(t, err)

	_, err = m.ApplyNotation(ctx, id, "R U X")
	assert.ErrorIs(t, err, cubie.ErrInvalidNotation)

	c, err := m.State(id)
	require.NoError(t, err)
	assert.True(t, c.IsSolved())
	history, err := m.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestReset(t *testing.T) {
	m := newTestManager(t, solver.DefaultOptions())
	ctx := context.Background()
	start := cubie.Solved.Apply(cubie.F2)
	id, err := m.Create(ctx, facelet.Encode(start))
	require.NoError(t, err)

	_, err = m.ApplyNotation(ctx, id, "R U R' U'")
	require.NoError(t, err)
	require.NoError(t, m.Reset(ctx, id))

	c, err := m.State(id)
	require.NoError(t, err)
	assert.Equal(t, start, c)
	history, err := m.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSolveIsLogged(t *testing.T) {
	opts := solver.DefaultOptions()
	opts.TargetLength = 0
	m := newTestManager(t, opts)
	ctx := context.Background()
	id, err := m.Create(ctx, "")
	require.NoError(t, err)
	_, err = m.ApplyNotation(ctx, id, "R U")
	require.NoError(t, err)

	sol, err := m.Solve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "U' R'", sol.String())

	// Solving does not change the session.
	c, err := m.State(id)
	require.NoError(t, err)
	assert.False(t, c.IsSolved())

	solves, err := m.Solves(ctx, id)
	require.NoError(t, err)
	require.Len(t, solves, 1)
	assert.Equal(t, "U' R'", *solves[0].Solution)
	assert.Equal(t, 2, *solves[0].Length)
	assert.True(t, solves[0].Optimal)
	assert.Nil(t, solves[0].Error)
}

func TestFailedSolveIsLogged(t *testing.T) {
	opts := solver.DefaultOptions()
	opts.MaxNodes = 1
	m := newTestManager(t, opts)
	ctx := context.Background()
	id, err := m.Create(ctx, "")
	require.NoError(t, err)
	_, err = m.ApplyNotation(ctx, id, "R U F")
	require.NoError(t, err)

	_, err = m.Solve(ctx, id)
	assert.ErrorIs(t, err, solver.ErrNoSolution)

	solves, err := m.Solves(ctx, id)
	require.NoError(t, err)
	require.Len(t, solves, 1)
	assert.Nil(t, solves[0].Solution)
	require.NotNil(t, solves[0].Error)
	assert.Contains(t, *solves[0].Error, "no solution")
}

func TestUnknownSession(t *testing.T) {
	m := newTestManager(t, solver.DefaultOptions())
	ctx := context.Background()

	_, err := m.State("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Apply(ctx, "missing", cubie.R1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Solve(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Reset(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, m.Close(ctx, "missing"), ErrNotFound)
}

func TestClose(t *testing.T) {
	m := newTestManager(t, solver.DefaultOptions())
	ctx := context.Background()
	id, err := m.Create(ctx, "")
	require.NoError(t, err)

	require.NoError(t, m.Close(ctx, id))
	assert.Zero(t, m.Len())
	_, err = m.History(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentApply(t *testing.T) {
	m := newTestManager(t, solver.DefaultOptions())
	ctx := context.Background()
	id, err := m.Create(ctx, "")
	require.NoError(t, err)

	// Four quarter turns of one face in any interleaving return to solved.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Apply(ctx, id, cubie.U1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := m.State(id)
	require.NoError(t, err)
	assert.True(t, c.IsSolved())

	history, err := m.History(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history, 8)
}

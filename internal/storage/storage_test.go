package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

const solved = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	v, err := db.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// Re-running is a no-op.
	require.NoError(t, db.MigrateUp(ctx))
	v, err = db.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, MemoryDSN, db.DSN())
}

func TestSessionRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewSessionRepository(db)

	id, err := repo.Create(ctx, solved)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	s, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, solved, s.InitialFacelets)
	assert.WithinDuration(t, time.Now(), s.CreatedAt, time.Minute)

	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), ErrNotFound)
}

func TestMoveRepositoryAppendsInOrder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	id, err := NewSessionRepository(db).Create(ctx, solved)
	require.NoError(t, err)

	repo := NewMoveRepository(db)
	require.NoError(t, repo.Append(ctx, id, []cubie.Move{cubie.R1, cubie.U3}))
	require.NoError(t, repo.Append(ctx, id, []cubie.Move{cubie.F2}))

	records, err := repo.GetBySession(ctx, id)
	require.NoError(t, err)
	require.Len(t, records, 3)
	want := []cubie.Move{cubie.R1, cubie.U3, cubie.F2}
	for i, r := range records {
		assert.Equal(t, i, r.MoveIndex)
		assert.Equal(t, want[i], r.Move)
		assert.False(t, r.AppliedAt.IsZero())
	}

	n, err := repo.Count(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, repo.DeleteBySession(ctx, id))
	n, err = repo.Count(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMoveRepositoryRequiresSession(t *testing.T) {
	db := openTestDB(t)
	err := NewMoveRepository(db).Append(context.Background(), "missing", []cubie.Move{cubie.R1})
	assert.Error(t, err)
}

func TestSolveRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	sid, err := NewSessionRepository(db).Create(ctx, solved)
	require.NoError(t, err)

	repo := NewSolveRepository(db)
	solution, length := "R'", 1
	id, err := repo.Create(ctx, SolveRecord{
		SessionID: &sid,
		Facelets:  solved,
		Solution:  &solution,
		Length:    &length,
		Nodes:     42,
		Duration:  1500 * time.Millisecond,
		Optimal:   true,
	})
	require.NoError(t, err)

	msg := "no solution"
	_, err = repo.Create(ctx, SolveRecord{SessionID: &sid, Facelets: solved, Error: &msg})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "R'", *got.Solution)
	assert.Equal(t, 1, *got.Length)
	assert.Equal(t, int64(42), got.Nodes)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.True(t, got.Optimal)
	assert.Nil(t, got.Error)

	list, err := repo.ListBySession(ctx, sid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id, list[0].SolveID)
	assert.Nil(t, list[1].Solution)
	assert.Equal(t, "no solution", *list[1].Error)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

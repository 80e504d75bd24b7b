package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SolveRecord represents a solver run in the database.
type SolveRecord struct {
	SolveID   string
	SessionID *string
	Facelets  string
	Solution  *string
	Length    *int
	Nodes     int64
	Duration  time.Duration
	Optimal   bool
	Error     *string
	CreatedAt time.Time
}

// SolveRepository records solver runs.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create stores rec and returns its new ID. SolveID and CreatedAt are
// assigned here.
func (r *SolveRepository) Create(ctx context.Context, rec SolveRecord) (string, error) {
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO solves (solve_id, session_id, facelets, solution, length, nodes, duration_ms, optimal, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, rec.SessionID, rec.Facelets, rec.Solution, rec.Length, rec.Nodes,
		rec.Duration.Milliseconds(), rec.Optimal, rec.Error, formatTime(time.Now()))
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}
	return id, nil
}

const solveColumns = `solve_id, session_id, facelets, solution, length, nodes, duration_ms, optimal, error, created_at`

func scanSolve(row interface{ Scan(...any) error }) (*SolveRecord, error) {
	var s SolveRecord
	var durationMs int64
	var createdAt string
	err := row.Scan(&s.SolveID, &s.SessionID, &s.Facelets, &s.Solution, &s.Length,
		&s.Nodes, &durationMs, &s.Optimal, &s.Error, &createdAt)
	if err != nil {
		return nil, err
	}
	s.Duration = time.Duration(durationMs) * time.Millisecond
	s.CreatedAt = parseTime(createdAt)
	return &s, nil
}

// Get retrieves a solve by ID.
func (r *SolveRepository) Get(ctx context.Context, solveID string) (*SolveRecord, error) {
	s, err := scanSolve(r.db.QueryRowContext(ctx,
		"SELECT "+solveColumns+" FROM solves WHERE solve_id = ?", solveID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("solve %s: %w", solveID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

// ListBySession retrieves the solves of a session, oldest first.
func (r *SolveRepository) ListBySession(ctx context.Context, sessionID string) ([]SolveRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+solveColumns+" FROM solves WHERE session_id = ? ORDER BY created_at, rowid", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []SolveRecord
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}
	return solves, rows.Err()
}

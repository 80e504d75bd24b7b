package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

// MoveRecord represents a move in the database.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	Move      cubie.Move
	AppliedAt time.Time
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Append adds moves after the last recorded move of a session, in a single
// transaction.
func (r *MoveRepository) Append(ctx context.Context, sessionID string, moves []cubie.Move) error {
	appliedAt := formatTime(time.Now())
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(move_index), -1) + 1 FROM moves WHERE session_id = ?
		`, sessionID).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to get next move index: %w", err)
		}
		for i, m := range moves {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO moves (session_id, move_index, face, power, notation, applied_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, sessionID, next+i, m.Face().String(), m.Power(), m.String(), appliedAt)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", next+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves of a session in order.
func (r *MoveRepository) GetBySession(ctx context.Context, sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT move_id, session_id, move_index, notation, applied_at
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		var notation, appliedAt string
		if err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &notation, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		m.Move, err = cubie.ParseMove(notation)
		if err != nil {
			return nil, fmt.Errorf("failed to decode move %d: %w", m.MoveIndex, err)
		}
		m.AppliedAt = parseTime(appliedAt)
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Count returns the number of moves of a session.
func (r *MoveRepository) Count(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// DeleteBySession removes every move of a session.
func (r *MoveRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM moves WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete moves: %w", err)
	}
	return nil
}

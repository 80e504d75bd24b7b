package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session represents a session row.
type Session struct {
	SessionID       string
	CreatedAt       time.Time
	InitialFacelets string
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session starting from the given facelets and returns
// its ID.
func (r *SessionRepository) Create(ctx context.Context, initialFacelets string) (string, error) {
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, created_at, initial_facelets)
		VALUES (?, ?, ?)
	`, id, formatTime(time.Now()), initialFacelets)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// Get retrieves a session by ID.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	var createdAt string
	err := r.db.QueryRowContext(ctx, `
		SELECT session_id, created_at, initial_facelets
		FROM sessions
		WHERE session_id = ?
	`, sessionID).Scan(&s.SessionID, &createdAt, &s.InitialFacelets)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s.CreatedAt = parseTime(createdAt)
	return &s, nil
}

// List retrieves sessions, newest first.
func (r *SessionRepository) List(ctx context.Context, limit int) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, created_at, initial_facelets
		FROM sessions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var createdAt string
		if err := rows.Scan(&s.SessionID, &createdAt, &s.InitialFacelets); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Delete removes a session with its moves and solves.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

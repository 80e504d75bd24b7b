package gocube

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceR Face = "R" // Right
	FaceF Face = "F" // Front
	FaceD Face = "D" // Down
	FaceL Face = "L" // Left
	FaceB Face = "B" // Back
)

// faces lists the faces in move-index order.
var faces = [...]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	i, ok := f.index()
	if !ok {
		return f
	}
	return faces[cubie.Face(i).Opposite()]
}

func (f Face) index() (int, bool) {
	for i, g := range faces {
		if g == f {
			return i, true
		}
	}
	return 0, false
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// quarters returns the number of clockwise quarter turns, 0 if t is invalid.
func (t Turn) quarters() int {
	switch t {
	case CW:
		return 1
	case Double:
		return 2
	case CCW:
		return 3
	}
	return 0
}

func turnFromQuarters(q int) Turn {
	switch ((q % 4) + 4) % 4 {
	case 1:
		return CW
	case 2:
		return Double
	case 3:
		return CCW
	}
	return 0
}

// Move represents a single cube move with face, turn direction, and optional timestamp.
type Move struct {
	Face Face      // Which face to turn
	Turn Turn      // Direction and amount
	Time time.Time // When the move was made (optional)
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	// Double is its own inverse
	}
	return inv
}

// WithTime returns a copy of the move with the specified timestamp.
func (m Move) WithTime(t time.Time) Move {
	m.Time = t
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Valid reports whether m names a real face and turn.
func (m Move) Valid() bool {
	_, ok := m.Face.index()
	return ok && m.Turn.quarters() != 0
}

// Merge combines two same-face moves. ok is false when the faces differ;
// zero is true when the moves cancel out.
func (m Move) Merge(other Move) (merged Move, zero, ok bool) {
	if m.Face != other.Face {
		return Move{}, false, false
	}
	turn := turnFromQuarters(m.Turn.quarters() + other.Turn.quarters())
	if turn == 0 {
		return Move{}, true, true
	}
	return Move{Face: m.Face, Turn: turn, Time: other.Time}, false, true
}

func (m Move) toCubie() (cubie.Move, error) {
	i, ok := m.Face.index()
	q := m.Turn.quarters()
	if !ok || q == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, m.Notation())
	}
	return cubie.NewMove(cubie.Face(i), q), nil
}

func moveFromCubie(cm cubie.Move) Move {
	return Move{Face: faces[cm.Face()], Turn: turnFromQuarters(cm.Power())}
}

func toCubieMoves(moves []Move) ([]cubie.Move, error) {
	out := make([]cubie.Move, len(moves))
	for i, m := range moves {
		cm, err := m.toCubie()
		if err != nil {
			return nil, err
		}
		out[i] = cm
	}
	return out, nil
}

func fromCubieMoves(moves []cubie.Move) []Move {
	out := make([]Move, len(moves))
	for i, cm := range moves {
		out[i] = moveFromCubie(cm)
	}
	return out
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns ErrInvalidNotation if the notation is invalid.
func ParseMove(s string) (Move, error) {
	cm, err := cubie.ParseMove(s)
	if err != nil {
		return Move{}, err
	}
	return moveFromCubie(cm), nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// The whole sequence is rejected if any token is invalid.
func ParseMoves(s string) ([]Move, error) {
	cms, err := cubie.ParseMoves(s)
	if err != nil {
		return nil, err
	}
	return fromCubieMoves(cms), nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence undoing moves.
func InvertMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}

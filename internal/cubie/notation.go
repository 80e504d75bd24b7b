package cubie

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNotation is returned for tokens that are not a face turn.
var ErrInvalidNotation = errors.New("gocube: invalid move notation")

// ParseMove parses one token such as R, R', R2. Faces may be lower case and
// a backtick is accepted for the prime.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty move", ErrInvalidNotation)
	}

	var face Face
	switch s[0] {
	case 'U', 'u':
		face = FaceU
	case 'R', 'r':
		face = FaceR
	case 'F', 'f':
		face = FaceF
	case 'D', 'd':
		face = FaceD
	case 'L', 'l':
		face = FaceL
	case 'B', 'b':
		face = FaceB
	default:
		return 0, fmt.Errorf("%w: unknown face in %q", ErrInvalidNotation, s)
	}

	power := 1
	switch s[1:] {
	case "":
	case "'", "`":
		power = 3
	case "2", "2'", "2`":
		power = 2
	default:
		return 0, fmt.Errorf("%w: unknown suffix in %q", ErrInvalidNotation, s)
	}
	return NewMove(face, power), nil
}

// ParseMoves parses a whitespace-separated sequence. The whole sequence is
// rejected if any token is invalid.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for i, part := range parts {
		m, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMoves joins moves in standard notation.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

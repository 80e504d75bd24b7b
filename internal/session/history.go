package session

import (
	gocube "github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var turns = [...]gocube.Turn{1: gocube.CW, 2: gocube.Double, 3: gocube.CCW}

// Moves converts logged move records into moves stamped with the time they
// were applied.
func Moves(records []storage.MoveRecord) []gocube.Move {
	out := make([]gocube.Move, len(records))
	for i, r := range records {
		out[i] = publicMove(r.Move).WithTime(r.AppliedAt)
	}
	return out
}

func publicMove(m cubie.Move) gocube.Move {
	return gocube.Move{Face: gocube.Face(m.Face().String()), Turn: turns[m.Power()]}
}

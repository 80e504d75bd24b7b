package tables

import (
	"context"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

// buildPhase2Prune computes, for every (slice permutation, coord) pair, the
// number of phase-2 moves needed to bring both to zero.
func (t *Tables) buildPhase2Prune(ctx context.Context, n int, coordMove []uint16) ([]int8, error) {
	return bfs(ctx, cubie.NumSlicePerm, n, cubie.Phase2Moves[:], func(perm, coord uint16, m cubie.Move) (uint16, uint16) {
		return Move(t.SliceSortedMove, perm, m), Move(coordMove, coord, m)
	})
}

// bfs fills a pruning table over rows*cols cells, indexed row*cols + col, by
// expanding every cell at the current depth until a pass adds nothing.
func bfs(ctx context.Context, rows, cols int, moves []cubie.Move, next func(row, col uint16, m cubie.Move) (uint16, uint16)) ([]int8, error) {
	table := make([]int8, rows*cols)
	for i := range table {
		table[i] = Unvisited
	}
	table[0] = 0

	filled := 1
	for depth := int8(0); filled < len(table); depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		added := 0
		for i, d := range table {
			if d != depth {
				continue
			}
			row, col := uint16(i/cols), uint16(i%cols)
			for _, m := range moves {
				r, c := next(row, col, m)
				j := int(r)*cols + int(c)
				if table[j] == Unvisited {
					table[j] = depth + 1
					added++
				}
			}
		}
		if added == 0 {
			break
		}
		filled += added
	}
	return table, nil
}

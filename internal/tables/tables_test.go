package tables

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

func TestMoveTablesMatchCubieMoves(t *testing.T) {
	tb := Default()
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 100; i++ {
		c := cubie.Random(r)
		p := c.Phase1()
		for m := cubie.Move(0); m < cubie.NumMoves; m++ {
			want := c.Move(m)
			assert.Equal(t, want.Phase1(), tb.Phase1Move(p, m), "move %s", m)
			assert.Equal(t, want.Twist(), Move(tb.TwistMove, c.Twist(), m))
			assert.Equal(t, want.Corners(), Move(tb.CornersMove, c.Corners(), m))
			assert.Equal(t, want.SliceSorted(), Move(tb.SliceSortedMove, c.SliceSorted(), m))
		}
	}
}

func TestPhase2MoveTablesMatchCubieMoves(t *testing.T) {
	tb := Default()
	r := rand.New(rand.NewPCG(5, 6))
	c := cubie.Solved
	for i := 0; i < 300; i++ {
		c = c.Move(cubie.Phase2Moves[r.IntN(len(cubie.Phase2Moves))])
		p, ok := c.Phase2()
		require.True(t, ok)
		for _, m := range cubie.Phase2Moves {
			want, ok := c.Move(m).Phase2()
			require.True(t, ok)
			assert.Equal(t, want, tb.Phase2Move(p, m), "move %s", m)
		}
	}
}

func TestUDEdgesUndefinedOutsidePhase2Moves(t *testing.T) {
	tb := Default()
	assert.Equal(t, uint16(cubie.NoCoord), Move(tb.UDEdgesMove, 0, cubie.R1))
	assert.Equal(t, uint16(cubie.NoCoord), Move(tb.UDEdgesMove, 0, cubie.F3))
	assert.NotEqual(t, uint16(cubie.NoCoord), Move(tb.UDEdgesMove, 0, cubie.R2))
}

func TestPruningTablesAreComplete(t *testing.T) {
	tb := Default()
	for _, ps := range tb.Stats().Prune {
		t.Run(ps.Name, func(t *testing.T) {
			total := 0
			for _, n := range ps.Depths {
				total += n
			}
			assert.Equal(t, ps.Entries, total, "unvisited cells")
			assert.Equal(t, 1, ps.Depths[0])
			assert.Positive(t, ps.MaxDepth)
		})
	}
}

func TestPruningIsConsistent(t *testing.T) {
	tb := Default()
	r := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 2000; i++ {
		p := cubie.Phase1{
			Twist: uint16(r.IntN(cubie.NumTwist)),
			Flip:  uint16(r.IntN(cubie.NumFlip)),
			Slice: uint16(r.IntN(cubie.NumSlice)),
		}
		d := tb.Phase1Distance(p)
		for m := cubie.Move(0); m < cubie.NumMoves; m++ {
			next := tb.Phase1Move(p, m)
			n := tb.Phase1Distance(next)
			assert.LessOrEqual(t, n, d+1)
			assert.GreaterOrEqual(t, n, d-1)
			assert.Equal(t, n, tb.Phase1Step(d, next))
		}
	}
}

func TestDistancesAreAdmissible(t *testing.T) {
	tb := Default()
	r := rand.New(rand.NewPCG(9, 10))
	for n := 0; n <= 12; n++ {
		c := cubie.Solved
		for i := 0; i < n; i++ {
			c = c.Move(cubie.Move(r.IntN(cubie.NumMoves)))
		}
		assert.LessOrEqual(t, tb.Phase1Distance(c.Phase1()), n)

		c = cubie.Solved
		for i := 0; i < n; i++ {
			c = c.Move(cubie.Phase2Moves[r.IntN(len(cubie.Phase2Moves))])
		}
		p, ok := c.Phase2()
		require.True(t, ok)
		assert.LessOrEqual(t, tb.Phase2Distance(p), n)
	}
}

func TestDistanceZeroOnlyAtTarget(t *testing.T) {
	tb := Default()
	assert.Zero(t, tb.Phase1Distance(cubie.Solved.Phase1()))
	assert.Zero(t, tb.Phase2Distance(cubie.Phase2{}))
	assert.Equal(t, 1, tb.Phase1Distance(cubie.Solved.Move(cubie.R1).Phase1()))
	p, _ := cubie.Solved.Move(cubie.R2).Phase2()
	assert.Equal(t, 1, tb.Phase2Distance(p))
}

func TestBuildHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMoveTableBuildersStopOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	table, err := buildCornerTable(ctx, cubie.NumCorners8, (*cubie.Cube).SetCorners, cubie.Cube.Corners)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, table)
	table, err = buildEdgeTable(ctx, cubie.NumUDEdges, (*cubie.Cube).SetUDEdges, cubie.Cube.UDEdges)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, table)
}

func TestStatsBytes(t *testing.T) {
	s := Default().Stats()
	assert.Greater(t, s.Bytes(), 35_000_000)
	require.Len(t, s.Prune, 3)
	assert.Equal(t, "flipslice-twist", s.Prune[0].Name)
	assert.Equal(t, 12, s.Prune[0].MaxDepth)
}

func TestFlipSliceClasses(t *testing.T) {
	tb := Default()
	require.Len(t, tb.FlipSliceRep, NumFlipSliceClass)
	r := rand.New(rand.NewPCG(13, 14))
	for i := 0; i < 500; i++ {
		c := cubie.Random(r)
		p := c.Phase1()
		fs := flipSlice(p)
		class, sym := tb.FlipSliceClass[fs], int(tb.FlipSliceSym[fs])

		rep := c.Conjugate(sym).Phase1()
		assert.Equal(t, int(tb.FlipSliceRep[class]), flipSlice(rep))
		assert.Equal(t, rep.Twist, tb.TwistConj[int(p.Twist)*cubie.NumSym+sym])
	}
}

func TestPhase1DistanceIsSymmetric(t *testing.T) {
	tb := Default()
	r := rand.New(rand.NewPCG(15, 16))
	for i := 0; i < 50; i++ {
		c := cubie.Random(r)
		d := tb.Phase1Distance(c.Phase1())
		for s := 1; s < cubie.NumSym; s++ {
			assert.Equal(t, d, tb.Phase1Distance(c.Conjugate(s).Phase1()), "symmetry %d", s)
		}
	}
}

func TestPhase1DepthDistribution(t *testing.T) {
	want := []int{1, 1, 5, 44, 487, 5841, 68364, 776568, 7950748, 52098876, 76236234, 3771112, 129}
	assert.Equal(t, want, Default().Phase1Depths)
}

func TestPhase1DistanceIsExact(t *testing.T) {
	tb := Default()
	// Every quarter turn of R, L, F or B leaves the subgroup; two of them
	// on the same axis can be undone only one at a time.
	assert.Equal(t, 2, tb.Phase1Distance(cubie.Solved.Apply(cubie.R1, cubie.L1).Phase1()))
	assert.Equal(t, 0, tb.Phase1Distance(cubie.Solved.Apply(cubie.R2, cubie.U1, cubie.F2).Phase1()))
}

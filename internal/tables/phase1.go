package tables

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

const (
	// NumFlipSlice is the number of flipslice coordinates, slice*NumFlip + flip.
	NumFlipSlice = cubie.NumSlice * cubie.NumFlip
	// NumFlipSliceClass is the number of flipslice classes under the 16
	// symmetries.
	NumFlipSliceClass = 64430

	numPhase1Cells = NumFlipSliceClass * cubie.NumTwist

	noClass = 0xFFFF

	// From this depth on the build scans unvisited cells for a neighbour at
	// the current depth instead of expanding the cells at that depth.
	backSearchDepth = 9
)

// phase1Table packs sixteen cells per word. A cell holds its distance mod 3,
// or 3 while unvisited.
type phase1Table []uint32

func newPhase1Table() phase1Table {
	p := make(phase1Table, (numPhase1Cells+15)/16)
	for i := range p {
		p[i] = ^uint32(0)
	}
	return p
}

func (p phase1Table) get(i int) int {
	return int(p[i>>4]>>(2*(i&15))) & 3
}

func (p phase1Table) load(i int) int {
	return int(atomic.LoadUint32(&p[i>>4])>>(2*(i&15))) & 3
}

// set stores v in cell i, which must be unvisited or already hold v. It
// reports whether the cell was unvisited.
func (p phase1Table) set(i, v int) bool {
	shift := 2 * (i & 15)
	old := atomic.AndUint32(&p[i>>4], ^(uint32(3^v) << shift))
	return (old>>shift)&3 == 3
}

// hasCell reports whether any of the sixteen cells in w holds v.
func hasCell(w uint32, v int) bool {
	z := ^(w ^ (0x55555555 * uint32(v)))
	return z&(z>>1)&0x55555555 != 0
}

func flipSlice(p cubie.Phase1) int {
	return int(p.Slice)*cubie.NumFlip + int(p.Flip)
}

func flipSliceCube(fs int) cubie.Cube {
	c := cubie.Solved
	c.SetSliceSorted(uint16(fs/cubie.NumFlip) * cubie.NumSlicePerm)
	c.SetFlip(uint16(fs % cubie.NumFlip))
	return c
}

// buildFlipSliceClasses assigns every flipslice coordinate to its class. The
// first coordinate met in each class becomes its representative.
func (t *Tables) buildFlipSliceClasses(ctx context.Context) error {
	t.FlipSliceClass = make([]uint16, NumFlipSlice)
	t.FlipSliceSym = make([]uint8, NumFlipSlice)
	t.FlipSliceRep = make([]uint32, 0, NumFlipSliceClass)
	for i := range t.FlipSliceClass {
		t.FlipSliceClass[i] = noClass
	}

	for fs := 0; fs < NumFlipSlice; fs++ {
		if t.FlipSliceClass[fs] != noClass {
			continue
		}
		if len(t.FlipSliceRep)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		class := uint16(len(t.FlipSliceRep))
		t.FlipSliceRep = append(t.FlipSliceRep, uint32(fs))
		t.FlipSliceClass[fs] = class

		c := flipSliceCube(fs)
		for s := 1; s < cubie.NumSym; s++ {
			// Conjugating the member by s gives the representative back.
			n := flipSlice(c.Conjugate(cubie.SymInverse[s]).Phase1())
			if t.FlipSliceClass[n] == noClass {
				t.FlipSliceClass[n] = class
				t.FlipSliceSym[n] = uint8(s)
			}
		}
	}
	if len(t.FlipSliceRep) != NumFlipSliceClass {
		return fmt.Errorf("found %d flipslice classes, want %d", len(t.FlipSliceRep), NumFlipSliceClass)
	}
	return nil
}

func (t *Tables) buildTwistConj() {
	t.TwistConj = make([]uint16, cubie.NumTwist*cubie.NumSym)
	for tw := 0; tw < cubie.NumTwist; tw++ {
		c := cubie.Solved
		c.SetTwist(uint16(tw))
		for s := 0; s < cubie.NumSym; s++ {
			t.TwistConj[tw*cubie.NumSym+s] = c.Conjugate(s).Twist()
		}
	}
}

// selfSymmetries returns, per class, the bit set of symmetries that map the
// representative to itself.
func (t *Tables) selfSymmetries() []uint16 {
	masks := make([]uint16, len(t.FlipSliceRep))
	for class, rep := range t.FlipSliceRep {
		c := flipSliceCube(int(rep))
		for s := 0; s < cubie.NumSym; s++ {
			if flipSlice(c.Conjugate(s).Phase1()) == int(rep) {
				masks[class] |= 1 << s
			}
		}
	}
	return masks
}

// phase1Cell returns the class and conjugated twist addressing p.
func (t *Tables) phase1Cell(p cubie.Phase1) (class, twist int) {
	fs := flipSlice(p)
	class = int(t.FlipSliceClass[fs])
	twist = int(t.TwistConj[int(p.Twist)*cubie.NumSym+int(t.FlipSliceSym[fs])])
	return class, twist
}

// Phase1Residue returns the phase-1 distance of p mod 3.
func (t *Tables) Phase1Residue(p cubie.Phase1) int {
	class, twist := t.phase1Cell(p)
	return t.Phase1Prune.get(class*cubie.NumTwist + twist)
}

// Phase1Distance returns the number of moves needed to bring p into the
// phase-2 subgroup, found by following moves that lower the distance.
func (t *Tables) Phase1Distance(p cubie.Phase1) int {
	d := 0
	r := t.Phase1Residue(p)
	for !p.IsZero() {
		want := (r + 2) % 3
		found := false
		for m := cubie.Move(0); m < cubie.NumMoves; m++ {
			n := t.Phase1Move(p, m)
			if t.Phase1Residue(n) == want {
				p, r = n, want
				found = true
				break
			}
		}
		if !found {
			panic("tables: phase-1 pruning table has no descent")
		}
		d++
	}
	return d
}

// Phase1Step returns the phase-1 distance of p, given the distance d of a
// state one move away from it.
func (t *Tables) Phase1Step(d int, p cubie.Phase1) int {
	r := t.Phase1Residue(p)
	return d - 1 + ((r-d+1)%3+3)%3
}

// buildPhase1Prune fills Phase1Prune breadth first. Each level is split
// across one goroutine per CPU.
func (t *Tables) buildPhase1Prune(ctx context.Context, log *slog.Logger) error {
	t.Phase1Prune = newPhase1Table()
	t.Phase1Prune.set(0, 0)
	t.Phase1Depths = []int{1}
	selfSym := t.selfSymmetries()

	workers := runtime.GOMAXPROCS(0)
	chunk := max((numPhase1Cells/workers+15)&^15, 16)
	filled := 1
	for depth := 0; filled < numPhase1Cells; depth++ {
		back := depth >= backSearchDepth
		counts := make([]int, workers)
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			lo, hi := w*chunk, min((w+1)*chunk, numPhase1Cells)
			if lo >= hi {
				break
			}
			g.Go(func() (err error) {
				counts[w], err = t.phase1Pass(gctx, selfSym, lo, hi, depth, back)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		added := 0
		for _, n := range counts {
			added += n
		}
		if added == 0 {
			break
		}
		filled += added
		t.Phase1Depths = append(t.Phase1Depths, added)
		log.Debug("phase 1 pruning level", "depth", depth+1, "cells", added, "backward", back)
	}
	if filled != numPhase1Cells {
		return fmt.Errorf("phase 1 pruning table has %d unreachable cells", numPhase1Cells-filled)
	}
	return nil
}

// phase1Pass moves cells [lo, hi) from depth to depth+1 and returns how many
// cells it filled. Forward passes expand the cells at depth; backward passes
// fill each unvisited cell that has a neighbour at depth.
func (t *Tables) phase1Pass(ctx context.Context, selfSym []uint16, lo, hi, depth int, back bool) (int, error) {
	p := t.Phase1Prune
	cur, next := depth%3, (depth+1)%3
	want := cur
	if back {
		want = 3
	}

	filled := 0
	for i := lo; i < hi; i++ {
		if i&15 == 0 {
			if i&0xFFFF == 0 {
				if err := ctx.Err(); err != nil {
					return 0, err
				}
			}
			if i+16 <= hi && !hasCell(atomic.LoadUint32(&p[i>>4]), want) {
				i += 15
				continue
			}
		}
		if p.load(i) != want {
			continue
		}

		rep := int(t.FlipSliceRep[i/cubie.NumTwist])
		c := cubie.Phase1{
			Twist: uint16(i % cubie.NumTwist),
			Flip:  uint16(rep % cubie.NumFlip),
			Slice: uint16(rep / cubie.NumFlip),
		}
		for m := cubie.Move(0); m < cubie.NumMoves; m++ {
			class, twist := t.phase1Cell(t.Phase1Move(c, m))
			j := class*cubie.NumTwist + twist
			if back {
				if p.load(j) == cur {
					p.set(i, next)
					filled++
					break
				}
				continue
			}

			if p.load(j) != 3 || !p.set(j, next) {
				continue
			}
			filled++
			// The same state under the class's other self-symmetries.
			for s, mask := 1, selfSym[class]>>1; mask != 0; s, mask = s+1, mask>>1 {
				if mask&1 == 0 {
					continue
				}
				k := class*cubie.NumTwist + int(t.TwistConj[twist*cubie.NumSym+s])
				if p.load(k) == 3 && p.set(k, next) {
					filled++
				}
			}
		}
	}
	return filled, nil
}

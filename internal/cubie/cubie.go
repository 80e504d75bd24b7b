// Package cubie implements the cube group at the level of corner and edge pieces.
//
// A Cube holds, for each of the 8 corner slots and 12 edge slots, which piece
// occupies the slot and how it is oriented. The solved cube is the identity
// and the 18 face turns are group elements; applying a move is a product.
package cubie

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnreachable is returned when a state is well formed but cannot be
// reached by turning the faces of a physical cube.
var ErrUnreachable = errors.New("gocube: unreachable cube state")

// Corner identifies a corner piece or slot.
type Corner uint8

const (
	URF Corner = iota
	UFL
	ULB
	UBR
	DFR
	DLF
	DBL
	DRB
)

// NumCorners is the number of corner pieces.
const NumCorners = 8

var cornerNames = [NumCorners]string{"URF", "UFL", "ULB", "UBR", "DFR", "DLF", "DBL", "DRB"}

func (c Corner) String() string {
	if int(c) < NumCorners {
		return cornerNames[c]
	}
	return "?"
}

// Edge identifies an edge piece or slot.
type Edge uint8

const (
	UR Edge = iota
	UF
	UL
	UB
	DR
	DF
	DL
	DB
	FR
	FL
	BL
	BR
)

// NumEdges is the number of edge pieces.
const NumEdges = 12

var edgeNames = [NumEdges]string{"UR", "UF", "UL", "UB", "DR", "DF", "DL", "DB", "FR", "FL", "BL", "BR"}

func (e Edge) String() string {
	if int(e) < NumEdges {
		return edgeNames[e]
	}
	return "?"
}

// Cube is a cube state. CP[i] is the corner occupying slot i and CO[i] its
// twist (0..2); EP and EO are the same for edges (flip 0..1).
//
// Cube is a value type: copies are independent snapshots.
type Cube struct {
	CP [NumCorners]Corner
	CO [NumCorners]uint8
	EP [NumEdges]Edge
	EO [NumEdges]uint8
}

// Solved is the identity element.
var Solved = Cube{
	CP: [NumCorners]Corner{URF, UFL, ULB, UBR, DFR, DLF, DBL, DRB},
	EP: [NumEdges]Edge{UR, UF, UL, UB, DR, DF, DL, DB, FR, FL, BL, BR},
}

// IsSolved reports whether c is the identity.
func (c Cube) IsSolved() bool {
	return c == Solved
}

// CornerMultiply replaces the corners of c with the corners of c*b.
func (c *Cube) CornerMultiply(b *Cube) {
	var cp [NumCorners]Corner
	var co [NumCorners]uint8
	for i := 0; i < NumCorners; i++ {
		cp[i] = c.CP[b.CP[i]]
		co[i] = (c.CO[b.CP[i]] + b.CO[i]) % 3
	}
	c.CP = cp
	c.CO = co
}

// EdgeMultiply replaces the edges of c with the edges of c*b.
func (c *Cube) EdgeMultiply(b *Cube) {
	var ep [NumEdges]Edge
	var eo [NumEdges]uint8
	for i := 0; i < NumEdges; i++ {
		ep[i] = c.EP[b.EP[i]]
		eo[i] = (c.EO[b.EP[i]] + b.EO[i]) % 2
	}
	c.EP = ep
	c.EO = eo
}

// Multiply returns c*b: the state reached by applying b after c.
func (c Cube) Multiply(b Cube) Cube {
	c.CornerMultiply(&b)
	c.EdgeMultiply(&b)
	return c
}

// Inverse returns the group inverse of c, so that c.Multiply(c.Inverse())
// is the identity.
func (c Cube) Inverse() Cube {
	var inv Cube
	for i := 0; i < NumCorners; i++ {
		inv.CP[c.CP[i]] = Corner(i)
	}
	for i := 0; i < NumCorners; i++ {
		inv.CO[i] = (3 - c.CO[inv.CP[i]]) % 3
	}
	for i := 0; i < NumEdges; i++ {
		inv.EP[c.EP[i]] = Edge(i)
	}
	for i := 0; i < NumEdges; i++ {
		inv.EO[i] = c.EO[inv.EP[i]]
	}
	return inv
}

// Move returns c with move m applied.
func (c Cube) Move(m Move) Cube {
	return c.Multiply(moveCubes[m])
}

// Apply returns c with the moves applied in order.
func (c Cube) Apply(moves ...Move) Cube {
	for _, m := range moves {
		c.CornerMultiply(&moveCubes[m])
		c.EdgeMultiply(&moveCubes[m])
	}
	return c
}

// CornerParity returns the parity (0 even, 1 odd) of the corner permutation.
func (c Cube) CornerParity() int {
	s := 0
	for i := NumCorners - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			if c.CP[j] > c.CP[i] {
				s++
			}
		}
	}
	return s % 2
}

// EdgeParity returns the parity (0 even, 1 odd) of the edge permutation.
func (c Cube) EdgeParity() int {
	s := 0
	for i := NumEdges - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			if c.EP[j] > c.EP[i] {
				s++
			}
		}
	}
	return s % 2
}

// Verify checks that c is an element of the cube group: every piece present
// once, orientations in range with sums 0 mod 3 (corners) and 0 mod 2 (edges),
// and equal corner and edge permutation parity.
func (c Cube) Verify() error {
	var edgeCount [NumEdges]int
	for i := 0; i < NumEdges; i++ {
		if int(c.EP[i]) >= NumEdges {
			return fmt.Errorf("%w: invalid edge in slot %s", ErrUnreachable, Edge(i))
		}
		edgeCount[c.EP[i]]++
	}
	for e, n := range edgeCount {
		if n != 1 {
			return fmt.Errorf("%w: edge %s appears %d times", ErrUnreachable, Edge(e), n)
		}
	}
	flip := 0
	for _, o := range c.EO {
		if o > 1 {
			return fmt.Errorf("%w: edge orientation %d out of range", ErrUnreachable, o)
		}
		flip += int(o)
	}
	if flip%2 != 0 {
		return fmt.Errorf("%w: one edge is flipped", ErrUnreachable)
	}

	var cornerCount [NumCorners]int
	for i := 0; i < NumCorners; i++ {
		if int(c.CP[i]) >= NumCorners {
			return fmt.Errorf("%w: invalid corner in slot %s", ErrUnreachable, Corner(i))
		}
		cornerCount[c.CP[i]]++
	}
	for k, n := range cornerCount {
		if n != 1 {
			return fmt.Errorf("%w: corner %s appears %d times", ErrUnreachable, Corner(k), n)
		}
	}
	twist := 0
	for _, o := range c.CO {
		if o > 2 {
			return fmt.Errorf("%w: corner orientation %d out of range", ErrUnreachable, o)
		}
		twist += int(o)
	}
	if twist%3 != 0 {
		return fmt.Errorf("%w: one corner is twisted", ErrUnreachable)
	}

	if c.EdgeParity() != c.CornerParity() {
		return fmt.Errorf("%w: two pieces are swapped (parity mismatch)", ErrUnreachable)
	}
	return nil
}

// String lists (piece,orientation) per slot, corners on the first line and
// edges on the second.
func (c Cube) String() string {
	var b strings.Builder
	for i := 0; i < NumCorners; i++ {
		fmt.Fprintf(&b, "(%d,%d)", c.CP[i], c.CO[i])
	}
	b.WriteByte('\n')
	for i := 0; i < NumEdges; i++ {
		fmt.Fprintf(&b, "(%d,%d)", c.EP[i], c.EO[i])
	}
	return b.String()
}

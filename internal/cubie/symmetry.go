package cubie

// NumSym is the number of symmetries of the cube that fix the U-D axis:
// the rotations about that axis, the half turn about the F-B axis, and the
// mirror images of all of these through the L-R plane.
const NumSym = 16

// Corner orientations of 3..5 only occur in mirrored cubes and mark a corner
// whose twist is read in the opposite sense.
var (
	symF2 = Cube{
		CP: [NumCorners]Corner{DLF, DFR, DRB, DBL, UFL, URF, UBR, ULB},
		EP: [NumEdges]Edge{DL, DF, DR, DB, UL, UF, UR, UB, FL, FR, BR, BL},
	}
	symU4 = Cube{
		CP: [NumCorners]Corner{UBR, URF, UFL, ULB, DRB, DFR, DLF, DBL},
		EP: [NumEdges]Edge{UB, UR, UF, UL, DB, DR, DF, DL, BR, FR, FL, BL},
		EO: [NumEdges]uint8{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
	}
	symLR2 = Cube{
		CP: [NumCorners]Corner{UFL, URF, UBR, ULB, DLF, DFR, DRB, DBL},
		CO: [NumCorners]uint8{3, 3, 3, 3, 3, 3, 3, 3},
		EP: [NumEdges]Edge{UL, UF, UR, UB, DL, DF, DR, DB, FL, FR, BR, BL},
	}
)

// Symmetries lists the symmetry cubes. Index 8*f + 2*u + m is the product
// F2^f * U4^u * LR2^m.
var Symmetries [NumSym]Cube

// SymInverse[s] is the index of the inverse of Symmetries[s].
var SymInverse [NumSym]int

func init() {
	c := Solved
	i := 0
	for f := 0; f < 2; f++ {
		for u := 0; u < 4; u++ {
			for m := 0; m < 2; m++ {
				Symmetries[i] = c
				i++
				c.symMultiply(&symLR2)
			}
			c.symMultiply(&symU4)
		}
		c.symMultiply(&symF2)
	}

	for s := range Symmetries {
		for t := range Symmetries {
			p := Symmetries[s]
			p.symMultiply(&Symmetries[t])
			if p == Solved {
				SymInverse[s] = t
				break
			}
		}
	}
}

// symMultiply is Multiply for operands that may be mirrored.
func (c *Cube) symMultiply(b *Cube) {
	var cp [NumCorners]Corner
	var co [NumCorners]uint8
	for i := 0; i < NumCorners; i++ {
		cp[i] = c.CP[b.CP[i]]
		oa, ob := int(c.CO[b.CP[i]]), int(b.CO[i])
		var o int
		switch {
		case oa < 3 && ob < 3:
			o = (oa + ob) % 3
		case oa < 3:
			o = oa + ob
			if o >= 6 {
				o -= 3
			}
		case ob < 3:
			o = oa - ob
			if o < 3 {
				o += 3
			}
		default:
			o = oa - ob
			if o < 0 {
				o += 3
			}
		}
		co[i] = uint8(o)
	}
	c.CP = cp
	c.CO = co
	c.EdgeMultiply(b)
}

// Conjugate returns S * c * S^-1 for S = Symmetries[s]. The result has the
// same distance to solved as c.
func (c Cube) Conjugate(s int) Cube {
	r := Symmetries[s]
	r.symMultiply(&c)
	r.symMultiply(&Symmetries[SymInverse[s]])
	return r
}

// symURF3 turns the whole cube by 120 degrees about the URF-DBL diagonal,
// taking the U-D axis to the F-B axis.
var symURF3 = Cube{
	CP: [NumCorners]Corner{URF, DFR, DLF, UFL, UBR, DRB, DBL, ULB},
	CO: [NumCorners]uint8{1, 2, 1, 2, 2, 1, 2, 1},
	EP: [NumEdges]Edge{UF, FR, DF, FL, UB, BR, DB, BL, UR, DR, DL, UL},
	EO: [NumEdges]uint8{1, 0, 1, 0, 1, 0, 1, 0, 1, 1, 1, 1},
}

// NumRotations counts the turns about the URF-DBL diagonal, identity
// included.
const NumRotations = 3

var (
	rotations    [NumRotations]Cube
	rotatedMoves [NumRotations][NumMoves]Move
)

func init() {
	rotations[0] = Solved
	for k := 1; k < NumRotations; k++ {
		rotations[k] = rotations[k-1].Multiply(symURF3)
	}
	for k := 0; k < NumRotations; k++ {
		for m := Move(0); m < NumMoves; m++ {
			c := Solved.Move(m).Rotate(k)
			for n := Move(0); n < NumMoves; n++ {
				if c == moveCubes[n] {
					rotatedMoves[k][m] = n
				}
			}
		}
	}
}

// Rotate returns R^k * c * R^-k, where R turns the whole cube by 120 degrees
// about the URF-DBL diagonal. A cube and its rotations need the same number
// of moves.
func (c Cube) Rotate(k int) Cube {
	return rotations[k].Multiply(c).Multiply(rotations[(NumRotations-k)%NumRotations])
}

// RotateMove returns the move that equals R^k * m * R^-k.
func RotateMove(k int, m Move) Move {
	return rotatedMoves[k][m]
}

package cubie

// Face identifies one of the six faces in the fixed order U, R, F, D, L, B.
type Face uint8

const (
	FaceU Face = iota
	FaceR
	FaceF
	FaceD
	FaceL
	FaceB
)

// NumFaces is the number of faces.
const NumFaces = 6

var faceNames = [NumFaces]string{"U", "R", "F", "D", "L", "B"}

func (f Face) String() string {
	if int(f) < NumFaces {
		return faceNames[f]
	}
	return "?"
}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	return (f + 3) % NumFaces
}

// Move is one of the 18 face turns, numbered face*3 + power-1 where power is
// 1 (quarter clockwise), 2 (half) or 3 (quarter counter-clockwise).
type Move uint8

const (
	U1 Move = iota
	U2
	U3
	R1
	R2
	R3
	F1
	F2
	F3
	D1
	D2
	D3
	L1
	L2
	L3
	B1
	B2
	B3
)

// NumMoves is the number of face turns.
const NumMoves = 18

// NewMove builds the move turning face f by power quarter turns (1..3).
func NewMove(f Face, power int) Move {
	return Move(int(f)*3 + power - 1)
}

// Face returns the face turned by m.
func (m Move) Face() Face {
	return Face(m / 3)
}

// Power returns the number of clockwise quarter turns (1..3).
func (m Move) Power() int {
	return int(m%3) + 1
}

// Inverse returns the move undoing m.
func (m Move) Inverse() Move {
	return NewMove(m.Face(), 4-m.Power())
}

func (m Move) String() string {
	if m >= NumMoves {
		return "?"
	}
	switch m.Power() {
	case 2:
		return m.Face().String() + "2"
	case 3:
		return m.Face().String() + "'"
	}
	return m.Face().String()
}

// Phase2Moves are the turns that keep a cube inside the phase-2 subgroup
// (orientations solved, slice edges in the middle layer), in generation order.
var Phase2Moves = [...]Move{U1, U2, U3, R2, F2, D1, D2, D3, L2, B2}

// IsPhase2 reports whether m preserves the phase-2 subgroup.
func (m Move) IsPhase2() bool {
	switch m.Face() {
	case FaceU, FaceD:
		return true
	}
	return m.Power() == 2
}

// basicMoves holds the clockwise quarter turn of each face.
var basicMoves = [NumFaces]Cube{
	FaceU: {
		CP: [NumCorners]Corner{UBR, URF, UFL, ULB, DFR, DLF, DBL, DRB},
		EP: [NumEdges]Edge{UB, UR, UF, UL, DR, DF, DL, DB, FR, FL, BL, BR},
	},
	FaceR: {
		CP: [NumCorners]Corner{DFR, UFL, ULB, URF, DRB, DLF, DBL, UBR},
		CO: [NumCorners]uint8{2, 0, 0, 1, 1, 0, 0, 2},
		EP: [NumEdges]Edge{FR, UF, UL, UB, BR, DF, DL, DB, DR, FL, BL, UR},
	},
	FaceF: {
		CP: [NumCorners]Corner{UFL, DLF, ULB, UBR, URF, DFR, DBL, DRB},
		CO: [NumCorners]uint8{1, 2, 0, 0, 2, 1, 0, 0},
		EP: [NumEdges]Edge{UR, FL, UL, UB, DR, FR, DL, DB, UF, DF, BL, BR},
		EO: [NumEdges]uint8{0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0},
	},
	FaceD: {
		CP: [NumCorners]Corner{URF, UFL, ULB, UBR, DLF, DBL, DRB, DFR},
		EP: [NumEdges]Edge{UR, UF, UL, UB, DF, DL, DB, DR, FR, FL, BL, BR},
	},
	FaceL: {
		CP: [NumCorners]Corner{URF, ULB, DBL, UBR, DFR, UFL, DLF, DRB},
		CO: [NumCorners]uint8{0, 1, 2, 0, 0, 2, 1, 0},
		EP: [NumEdges]Edge{UR, UF, BL, UB, DR, DF, FL, DB, FR, UL, DL, BR},
	},
	FaceB: {
		CP: [NumCorners]Corner{URF, UFL, UBR, DRB, DFR, DLF, ULB, DBL},
		CO: [NumCorners]uint8{0, 0, 1, 2, 0, 0, 2, 1},
		EP: [NumEdges]Edge{UR, UF, UL, BR, DR, DF, DL, BL, FR, FL, UB, DB},
		EO: [NumEdges]uint8{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1},
	},
}

// moveCubes holds all 18 moves as group elements.
var moveCubes [NumMoves]Cube

func init() {
	for f := 0; f < NumFaces; f++ {
		c := Solved
		for p := 0; p < 3; p++ {
			c = c.Multiply(basicMoves[f])
			moveCubes[f*3+p] = c
		}
	}
}

// BasicMove returns the clockwise quarter turn of face f.
func BasicMove(f Face) Cube {
	return basicMoves[f]
}

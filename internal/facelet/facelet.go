// Package facelet converts between the 54-sticker string form of a cube and
// its cubie representation.
//
// Stickers are listed face by face in the order U, R, F, D, L, B; within a
// face they run row by row as seen when looking at that face:
//
//	             |U1 U2 U3|
//	             |U4 U5 U6|
//	             |U7 U8 U9|
//	|L1 L2 L3|   |F1 F2 F3|   |R1 R2 R3|   |B1 B2 B3|
//	|L4 L5 L6|   |F4 F5 F6|   |R4 R5 R6|   |B4 B5 B6|
//	|L7 L8 L9|   |F7 F8 F9|   |R7 R8 R9|   |B7 B8 B9|
//	             |D1 D2 D3|
//	             |D4 D5 D6|
//	             |D7 D8 D9|
package facelet

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
)

// ErrInvalidLayout is returned for strings that are not a layout of 54
// stickers with nine of each colour and the centres in place.
var ErrInvalidLayout = errors.New("gocube: invalid facelet layout")

// Color is the colour of a sticker, named after the face it belongs to when
// the cube is solved.
type Color uint8

const (
	U Color = iota
	R
	F
	D
	L
	B
)

const colorLetters = "URFDLB"

func (c Color) String() string {
	if int(c) < len(colorLetters) {
		return colorLetters[c : c+1]
	}
	return "?"
}

// Size is the number of stickers.
const Size = 54

// Solved is the sticker string of the solved cube.
const Solved = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

// Cube is a sticker-level cube.
type Cube [Size]Color

// Sticker indices of the U face; the other faces follow at multiples of 9.
const (
	u1 = iota
	u2
	u3
	u4
	u5
	u6
	u7
	u8
	u9
)

const (
	offR = 9 * (iota + 1)
	offF
	offD
	offL
	offB
)

// cornerFacelet lists the stickers of each corner slot, starting with the
// U or D sticker and going clockwise.
var cornerFacelet = [cubie.NumCorners][3]int{
	{u9, offR + 0, offF + 2},
	{u7, offF + 0, offL + 2},
	{u1, offL + 0, offB + 2},
	{u3, offB + 0, offR + 2},
	{offD + 2, offF + 8, offR + 6},
	{offD + 0, offL + 8, offF + 6},
	{offD + 6, offB + 8, offL + 6},
	{offD + 8, offR + 8, offB + 6},
}

// edgeFacelet lists the two stickers of each edge slot.
var edgeFacelet = [cubie.NumEdges][2]int{
	{u6, offR + 1},
	{u8, offF + 1},
	{u4, offL + 1},
	{u2, offB + 1},
	{offD + 5, offR + 7},
	{offD + 1, offF + 7},
	{offD + 3, offL + 7},
	{offD + 7, offB + 7},
	{offF + 5, offR + 3},
	{offF + 3, offL + 5},
	{offB + 5, offL + 3},
	{offB + 3, offR + 5},
}

var cornerColor = [cubie.NumCorners][3]Color{
	{U, R, F}, {U, F, L}, {U, L, B}, {U, B, R},
	{D, F, R}, {D, L, F}, {D, B, L}, {D, R, B},
}

var edgeColor = [cubie.NumEdges][2]Color{
	{U, R}, {U, F}, {U, L}, {U, B}, {D, R}, {D, F},
	{D, L}, {D, B}, {F, R}, {F, L}, {B, L}, {B, R},
}

// Parse reads a sticker string. It checks the layout only: length, symbols,
// nine stickers per colour and fixed centres.
func Parse(s string) (Cube, error) {
	var fc Cube
	if len(s) != Size {
		return fc, fmt.Errorf("%w: %d stickers, want %d", ErrInvalidLayout, len(s), Size)
	}
	var count [6]int
	for i := 0; i < Size; i++ {
		switch s[i] {
		case 'U':
			fc[i] = U
		case 'R':
			fc[i] = R
		case 'F':
			fc[i] = F
		case 'D':
			fc[i] = D
		case 'L':
			fc[i] = L
		case 'B':
			fc[i] = B
		default:
			return fc, fmt.Errorf("%w: unexpected symbol %q at %d", ErrInvalidLayout, s[i], i)
		}
		count[fc[i]]++
	}
	for col, n := range count {
		if n != 9 {
			return fc, fmt.Errorf("%w: %d %s stickers, want 9", ErrInvalidLayout, n, Color(col))
		}
	}
	for face := 0; face < 6; face++ {
		if fc[face*9+4] != Color(face) {
			return fc, fmt.Errorf("%w: centre of face %s is %s", ErrInvalidLayout, Color(face), fc[face*9+4])
		}
	}
	return fc, nil
}

func (fc Cube) String() string {
	b := make([]byte, Size)
	for i, c := range fc {
		b[i] = colorLetters[c]
	}
	return string(b)
}

// ToCubie identifies each corner and edge from its stickers. The result is
// checked with cubie.Cube.Verify.
func (fc Cube) ToCubie() (cubie.Cube, error) {
	var cc cubie.Cube
	for i := 0; i < cubie.NumCorners; i++ {
		ori := 0
		for ; ori < 3; ori++ {
			if c := fc[cornerFacelet[i][ori]]; c == U || c == D {
				break
			}
		}
		if ori == 3 {
			return cc, fmt.Errorf("%w: corner slot %s has no U or D sticker", cubie.ErrUnreachable, cubie.Corner(i))
		}
		col1 := fc[cornerFacelet[i][(ori+1)%3]]
		col2 := fc[cornerFacelet[i][(ori+2)%3]]
		found := false
		for j := 0; j < cubie.NumCorners; j++ {
			if col1 == cornerColor[j][1] && col2 == cornerColor[j][2] {
				cc.CP[i] = cubie.Corner(j)
				cc.CO[i] = uint8(ori)
				found = true
				break
			}
		}
		if !found {
			return cc, fmt.Errorf("%w: corner slot %s has no matching piece", cubie.ErrUnreachable, cubie.Corner(i))
		}
	}

	for i := 0; i < cubie.NumEdges; i++ {
		a, b := fc[edgeFacelet[i][0]], fc[edgeFacelet[i][1]]
		found := false
		for j := 0; j < cubie.NumEdges; j++ {
			switch {
			case a == edgeColor[j][0] && b == edgeColor[j][1]:
				cc.EP[i], cc.EO[i] = cubie.Edge(j), 0
			case a == edgeColor[j][1] && b == edgeColor[j][0]:
				cc.EP[i], cc.EO[i] = cubie.Edge(j), 1
			default:
				continue
			}
			found = true
			break
		}
		if !found {
			return cc, fmt.Errorf("%w: edge slot %s has no matching piece", cubie.ErrUnreachable, cubie.Edge(i))
		}
	}

	if err := cc.Verify(); err != nil {
		return cc, err
	}
	return cc, nil
}

// FromCubie paints the stickers of a cubie state.
func FromCubie(cc cubie.Cube) Cube {
	var fc Cube
	for face := 0; face < 6; face++ {
		fc[face*9+4] = Color(face)
	}
	for i := 0; i < cubie.NumCorners; i++ {
		j, ori := cc.CP[i], int(cc.CO[i])
		for n := 0; n < 3; n++ {
			fc[cornerFacelet[i][(n+ori)%3]] = cornerColor[j][n]
		}
	}
	for i := 0; i < cubie.NumEdges; i++ {
		j, ori := cc.EP[i], int(cc.EO[i])
		for n := 0; n < 2; n++ {
			fc[edgeFacelet[i][(n+ori)%2]] = edgeColor[j][n]
		}
	}
	return fc
}

// Decode parses and validates a sticker string.
func Decode(s string) (cubie.Cube, error) {
	fc, err := Parse(s)
	if err != nil {
		return cubie.Cube{}, err
	}
	return fc.ToCubie()
}

// Encode returns the sticker string of a cubie state.
func Encode(cc cubie.Cube) string {
	return FromCubie(cc).String()
}

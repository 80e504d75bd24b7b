package gocube

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/facelet"
)

// Color represents a sticker color in the standard color scheme.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// faceColor maps a facelet letter to the color of that face when solved.
func faceColor(f facelet.Color) Color {
	switch f {
	case facelet.U:
		return White
	case facelet.D:
		return Yellow
	case facelet.F:
		return Green
	case facelet.B:
		return Blue
	case facelet.R:
		return Red
	case facelet.L:
		return Orange
	default:
		return White
	}
}

// Cube represents a 3x3 Rubik's cube.
//
// The zero value is not usable; create cubes with NewCube, ParseCube or
// RandomCube. A Cube is not safe for concurrent mutation.
type Cube struct {
	state cubie.Cube
}

// NewCube creates a solved cube.
func NewCube() *Cube {
	return &Cube{state: cubie.Solved}
}

// ParseCube creates a cube from its 54-character facelet string.
//
// Stickers are given face by face in the order U, R, F, D, L, B, nine per
// face read row by row, each letter naming the face whose center has that
// color. It returns ErrInvalidFaceletLayout for malformed strings and
// ErrUnreachableCubeState for layouts no sequence of moves can produce.
func ParseCube(facelets string) (*Cube, error) {
	state, err := facelet.Decode(facelets)
	if err != nil {
		return nil, err
	}
	return &Cube{state: state}, nil
}

// RandomCube returns a cube in a uniformly random reachable state. A nil r
// uses a randomly seeded source.
func RandomCube(r *rand.Rand) *Cube {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Cube{state: cubie.Random(r)}
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	return &Cube{state: c.state}
}

// IsSolved returns true if the cube is in the solved state.
func (c *Cube) IsSolved() bool {
	return c.state.IsSolved()
}

// Apply applies moves in order. If any move is invalid the cube is left
// unchanged and ErrInvalidNotation is returned.
func (c *Cube) Apply(moves ...Move) error {
	cms, err := toCubieMoves(moves)
	if err != nil {
		return err
	}
	c.state = c.state.Apply(cms...)
	return nil
}

// ApplyNotation parses and applies a move sequence such as "R U R' U'".
func (c *Cube) ApplyNotation(s string) error {
	cms, err := cubie.ParseMoves(s)
	if err != nil {
		return err
	}
	c.state = c.state.Apply(cms...)
	return nil
}

// Facelets returns the 54-character facelet string of the cube.
func (c *Cube) Facelets() string {
	return facelet.Encode(c.state)
}

// Stickers returns the colors of all stickers in facelet order.
func (c *Cube) Stickers() [facelet.Size]Color {
	var out [facelet.Size]Color
	for i, f := range facelet.FromCubie(c.state) {
		out[i] = faceColor(f)
	}
	return out
}

// Inverse returns the cube state that undoes c.
func (c *Cube) Inverse() *Cube {
	return &Cube{state: c.state.Inverse()}
}

// Multiply returns the state reached by applying other's permutation after
// c's, so NewCube().Multiply(x) equals x.
func (c *Cube) Multiply(other *Cube) *Cube {
	return &Cube{state: c.state.Multiply(other.state)}
}

// Equal reports whether both cubes are in the same state.
func (c *Cube) Equal(other *Cube) bool {
	return c.state == other.state
}

// Solve searches for a move sequence that solves the cube. The cube itself
// is not modified.
func (c *Cube) Solve(ctx context.Context, opts ...Option) (*Solution, error) {
	return solveState(ctx, c.state, buildConfig(opts))
}

// String returns the cube as an unfolded net of color letters.
func (c *Cube) String() string {
	stickers := c.Stickers()
	face := func(f facelet.Color, row int) string {
		var sb strings.Builder
		for col := 0; col < 3; col++ {
			sb.WriteString(stickers[int(f)*9+row*3+col].String())
			sb.WriteByte(' ')
		}
		return sb.String()
	}

	var sb strings.Builder
	// U face (indented)
	for row := 0; row < 3; row++ {
		sb.WriteString("      " + face(facelet.U, row) + "\n")
	}
	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, f := range []facelet.Color{facelet.L, facelet.F, facelet.R, facelet.B} {
			sb.WriteString(face(f, row))
		}
		sb.WriteString("\n")
	}
	// D face (indented)
	for row := 0; row < 3; row++ {
		sb.WriteString("      " + face(facelet.D, row) + "\n")
	}
	return sb.String()
}

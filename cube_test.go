package gocube

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

const solvedFacelets = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCube()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	if got := c.Facelets(); got != solvedFacelets {
		t.Errorf("Facelets() = %q, want %q", got, solvedFacelets)
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := NewCube()
	if err := c.Apply(R); err != nil {
		t.Fatal(err)
	}
	if c.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestRMoveFacelets(t *testing.T) {
	c := NewCube()
	c.Apply(R)
	want := "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"
	if got := c.Facelets(); got != want {
		t.Errorf("after R: %q, want %q", got, want)
	}
}

func TestRThenRPrimeReturnsToSolved(t *testing.T) {
	c := NewCube()
	c.Apply(R, RPrime)
	if got := c.Facelets(); got != solvedFacelets {
		t.Errorf("R R' should be solved, got %q", got)
	}
}

func TestFourQuarterTurns_AllFaces(t *testing.T) {
	for _, m := range []Move{U, R, F, D, L, B} {
		c := NewCube()
		c.Apply(m, m, m, m)
		if !c.IsSolved() {
			t.Errorf("%v x 4 should return to solved", m)
			t.Log(c.String())
		}
	}
}

func TestR2R2_ReturnsToSolved(t *testing.T) {
	c := NewCube()
	c.Apply(R2, R2)
	if !c.IsSolved() {
		t.Error("R2 R2 should return to solved")
		t.Log(c.String())
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	c := NewCube()
	for i := 0; i < 6; i++ {
		c.Apply(SexyMove...)
	}
	if !c.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestSuperflipIsSelfInverse(t *testing.T) {
	if len(Superflip) != 20 {
		t.Fatalf("Superflip has %d moves, want 20", len(Superflip))
	}
	c := NewCube()
	c.Apply(Superflip...)
	if c.IsSolved() {
		t.Fatal("Superflip should not be solved")
	}
	c.Apply(Superflip...)
	if !c.IsSolved() {
		t.Error("Superflip twice should return to solved")
	}
}

func TestApplyNotation(t *testing.T) {
	a := NewCube()
	if err := a.ApplyNotation("R U R' U'"); err != nil {
		t.Fatal(err)
	}
	b := NewCube()
	b.Apply(SexyMove...)
	if !a.Equal(b) {
		t.Error("ApplyNotation should match Apply")
	}
}

func TestApplyRejectsInvalidMoveAtomically(t *testing.T) {
	c := NewCube()
	err := c.Apply(R, Move{Face: "X", Turn: CW})
	if !errors.Is(err, ErrInvalidNotation) {
		t.Fatalf("Apply() error = %v, want ErrInvalidNotation", err)
	}
	if !c.IsSolved() {
		t.Error("Cube should be unchanged after a rejected Apply")
	}
	if err := c.ApplyNotation("R U X"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("ApplyNotation() error = %v, want ErrInvalidNotation", err)
	}
	if !c.IsSolved() {
		t.Error("Cube should be unchanged after a rejected ApplyNotation")
	}
}

func TestInverseAndMultiply(t *testing.T) {
	c := NewCube()
	c.Apply(TPerm...)
	if !c.Multiply(c.Inverse()).IsSolved() {
		t.Error("c * c^-1 should be solved")
	}

	r := NewCube()
	r.Apply(R)
	u := NewCube()
	u.Apply(U)
	ru := NewCube()
	ru.Apply(R, U)
	if !r.Multiply(u).Equal(ru) {
		t.Error("R * U should equal the state after R U")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCube()
	clone := c.Clone()
	clone.Apply(F)
	if !c.IsSolved() {
		t.Error("Mutating a clone should not affect the original")
	}
}

func TestParseCubeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		c := RandomCube(r)
		parsed, err := ParseCube(c.Facelets())
		if err != nil {
			t.Fatalf("ParseCube(%q): %v", c.Facelets(), err)
		}
		if !parsed.Equal(c) {
			t.Errorf("round trip changed state %q", c.Facelets())
		}
	}
}

func TestParseCubeErrors(t *testing.T) {
	tenU := []byte(solvedFacelets)
	tenU[27] = 'U'
	twisted := []byte(solvedFacelets)
	twisted[8], twisted[9], twisted[20] = 'F', 'U', 'R'

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"too short", solvedFacelets[:50], ErrInvalidFaceletLayout},
		{"bad symbol", strings.Replace(solvedFacelets, "U", "X", 1), ErrInvalidFaceletLayout},
		{"ten U eight D", string(tenU), ErrInvalidFaceletLayout},
		{"twisted corner", string(twisted), ErrUnreachableCubeState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCube(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseCube() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStringShowsNet(t *testing.T) {
	s := NewCube().String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("String() has %d lines, want 9", len(lines))
	}
	if strings.TrimSpace(lines[0]) != "W W W" {
		t.Errorf("first line = %q", lines[0])
	}
	if strings.TrimSpace(lines[3]) != "O O O G G G R R R B B B" {
		t.Errorf("middle line = %q", lines[3])
	}
}

func TestSolveSolvedCube(t *testing.T) {
	sol, err := Solve(context.Background(), solvedFacelets)
	if err != nil {
		t.Fatal(err)
	}
	if sol.String() != "" {
		t.Errorf("Solve(solved) = %q, want empty", sol)
	}
}

func TestSolveAppliesToSolved(t *testing.T) {
	c := NewCube()
	c.Apply(TPerm...)
	sol, err := c.Solve(context.Background(), WithTimeout(0))
	if err != nil {
		t.Fatal(err)
	}
	c.Apply(sol.Moves...)
	if got := c.Facelets(); got != solvedFacelets {
		t.Errorf("applying %q gave %q", sol, got)
	}
	if sol.Len() > 20 {
		t.Errorf("solution has %d moves, want at most 20", sol.Len())
	}
}

func TestSolveInvalidInput(t *testing.T) {
	_, err := Solve(context.Background(), "UUU")
	if !errors.Is(err, ErrInvalidFaceletLayout) {
		t.Errorf("Solve() error = %v, want ErrInvalidFaceletLayout", err)
	}
}

func TestSolveBudgetExhausted(t *testing.T) {
	c := RandomCube(rand.New(rand.NewPCG(3, 4)))
	_, err := c.Solve(context.Background(), WithMaxNodes(1))
	if !errors.Is(err, ErrNoSolutionWithinBudget) {
		t.Errorf("Solve() error = %v, want ErrNoSolutionWithinBudget", err)
	}
}

func TestSolveInvalidOptions(t *testing.T) {
	_, err := NewCube().Solve(context.Background(), WithMaxLength(0))
	if err == nil {
		t.Error("expected an error for max length 0")
	}
}

func TestScramble(t *testing.T) {
	c, seq, err := Scramble(context.Background(), rand.New(rand.NewPCG(5, 6)), WithTimeout(0))
	if err != nil {
		t.Fatal(err)
	}
	fresh := NewCube()
	fresh.Apply(seq...)
	if !fresh.Equal(c) {
		t.Errorf("scramble %q does not produce the returned cube", FormatMoves(seq))
	}
}

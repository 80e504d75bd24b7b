package gocube

import (
	"errors"
	"testing"
	"time"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		want  Move
	}{
		{"R", R},
		{"R'", RPrime},
		{"R2", R2},
		{"u", U},
		{"F`", FPrime},
		{"B2'", B2},
		{" D ", D},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMove(tt.input)
			if err != nil {
				t.Fatalf("ParseMove(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMove(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, input := range []string{"", "X", "R3", "Rw", "M"} {
		if _, err := ParseMove(input); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", input, err)
		}
	}
}

func TestParseMovesRejectsWholeSequence(t *testing.T) {
	moves, err := ParseMoves("R U Q U'")
	if !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("ParseMoves() error = %v, want ErrInvalidNotation", err)
	}
	if moves != nil {
		t.Errorf("ParseMoves() = %v, want nil", moves)
	}
}

func TestFormatMoves(t *testing.T) {
	moves, err := ParseMoves("R  U2\tF'")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != "R U2 F'" {
		t.Errorf("FormatMoves() = %q", got)
	}
	if got := FormatMoves(nil); got != "" {
		t.Errorf("FormatMoves(nil) = %q, want empty", got)
	}
}

func TestInverse(t *testing.T) {
	if R.Inverse() != RPrime || RPrime.Inverse() != R || R2.Inverse() != R2 {
		t.Error("unexpected move inverse")
	}
	if got := FormatMoves(InvertMoves(SexyMove)); got != "U R U' R'" {
		t.Errorf("InvertMoves(SexyMove) = %q", got)
	}
}

func TestFaceOpposite(t *testing.T) {
	pairs := map[Face]Face{FaceU: FaceD, FaceR: FaceL, FaceF: FaceB, FaceD: FaceU, FaceL: FaceR, FaceB: FaceF}
	for f, want := range pairs {
		if got := f.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", f, got, want)
		}
	}
}

func TestAllMovesAreValid(t *testing.T) {
	if len(AllMoves) != 18 {
		t.Fatalf("AllMoves has %d moves", len(AllMoves))
	}
	seen := map[string]bool{}
	for _, m := range AllMoves {
		if !m.Valid() {
			t.Errorf("%v should be valid", m)
		}
		seen[m.Notation()] = true
	}
	if len(seen) != 18 {
		t.Errorf("AllMoves has duplicates")
	}
	if (Move{Face: FaceR, Turn: 3}).Valid() {
		t.Error("turn 3 should be invalid")
	}
}

func TestSimplifyMoves(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"R U F", "R U F"},
		{"R R", "R2"},
		{"R R'", ""},
		{"R2 R", "R'"},
		{"R U U' R'", ""},
		{"R L R", "R2 L"},
		{"U D U'", "D"},
		{"R R R R", ""},
		{"F R R' F2", "F'"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			moves, err := ParseMoves(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got := FormatMoves(SimplifyMoves(moves)); got != tt.want {
				t.Errorf("SimplifyMoves(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSimplifyMovesPreservesState(t *testing.T) {
	moves, _ := ParseMoves("R L R' U U D U' F F F B2 B2")
	a := NewCube()
	a.Apply(moves...)
	b := NewCube()
	b.Apply(SimplifyMoves(moves)...)
	if !a.Equal(b) {
		t.Error("SimplifyMoves changed the resulting state")
	}
}

func TestSimplifyMovesKeepsLatestTime(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	moves := []Move{
		R.WithTime(start),
		R.WithTime(start.Add(time.Second)),
		U.WithTime(start.Add(2 * time.Second)),
	}
	got := SimplifyMoves(moves)
	if FormatMoves(got) != "R2 U" {
		t.Fatalf("SimplifyMoves = %q, want %q", FormatMoves(got), "R2 U")
	}
	if !got[0].Time.Equal(start.Add(time.Second)) {
		t.Errorf("merged move time = %v, want the later move's time", got[0].Time)
	}
	if !got[1].Time.Equal(start.Add(2 * time.Second)) {
		t.Errorf("unmerged move time = %v", got[1].Time)
	}
}

package cubesim

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
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
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, in := range []string{"", "X", "R3", "RR", "M"} {
		if _, err := ParseMove(in); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) err = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestParseMovesAndFormat(t *testing.T) {
	moves, err := ParseMoves("R U R' U' F2")
	if err != nil {
		t.Fatalf("ParseMoves failed: %v", err)
	}
	if got := FormatMoves(moves); got != "R U R' U' F2" {
		t.Errorf("FormatMoves = %q", got)
	}
	if _, err := ParseMoves("R Q"); err == nil {
		t.Error("ParseMoves should fail on an invalid token")
	}
	if got := FormatMoves(nil); got != "" {
		t.Errorf("FormatMoves(nil) = %q", got)
	}
}

func TestInverse(t *testing.T) {
	if R.Inverse() != RPrime || RPrime.Inverse() != R || R2.Inverse() != R2 {
		t.Error("Inverse mismatch")
	}
	inv := InvertMoves([]Move{R, U, FPrime})
	if got := FormatMoves(inv); got != "F U' R'" {
		t.Errorf("InvertMoves = %q", got)
	}
}

func TestMoveValidate(t *testing.T) {
	if err := (Move{Face: FaceL, Turn: CCW}).Validate(); err != nil {
		t.Errorf("valid move rejected: %v", err)
	}
	if err := (Move{Face: "Z", Turn: CW}).Validate(); !errors.Is(err, ErrInvalidFace) {
		t.Errorf("err = %v, want ErrInvalidFace", err)
	}
	if err := (Move{Face: FaceL, Turn: 3}).Validate(); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("err = %v, want ErrInvalidDirection", err)
	}
}

func TestQuarters(t *testing.T) {
	if q := F2.Quarters(); len(q) != 2 || q[0] != F || q[1] != F {
		t.Errorf("F2.Quarters() = %v", q)
	}
	if q := FPrime.Quarters(); len(q) != 1 || q[0] != FPrime {
		t.Errorf("F'.Quarters() = %v", q)
	}
}

func TestTPermIsAnInvolution(t *testing.T) {
	c := NewCube()
	c.ApplyMoves(TPerm, false)
	if c.IsSolved() {
		t.Error("one T-perm should change the cube")
	}
	c.ApplyMoves(TPerm, false)
	if !c.IsSolved() {
		t.Error("two T-perms should return to solved")
	}
}

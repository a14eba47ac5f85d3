package cubesim

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cubesim/internal/facelet"
)

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCube()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	if got := len(c.Cubies()); got != 26 {
		t.Errorf("cube has %d cubies, want 26", got)
	}
}

func TestPositionBijection(t *testing.T) {
	c := NewCube(WithSeed(7))
	if err := c.ApplyMoves(c.Scramble(40), true); err != nil {
		t.Fatalf("ApplyMoves failed: %v", err)
	}

	seen := make(map[Position]bool)
	ids := make(map[int]bool)
	for _, cb := range c.Cubies() {
		if !cb.Position.Valid() {
			t.Errorf("cubie %d at invalid position %v", cb.ID, cb.Position)
		}
		if seen[cb.Position] {
			t.Errorf("two cubies at %v", cb.Position)
		}
		seen[cb.Position] = true
		ids[cb.ID] = true
		if c.At(cb.Position) != cb {
			t.Errorf("At(%v) does not return the cubie stored there", cb.Position)
		}
	}
	if len(seen) != 26 || len(ids) != 26 {
		t.Errorf("got %d positions and %d ids, want 26 each", len(seen), len(ids))
	}
	if c.At(Position{}) != nil {
		t.Error("the core should hold no cubie")
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := NewCube()
	if err := c.Rotate(FaceR, 1, false); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if c.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestFourQuarterTurnsReturnToSolved_AllFaces(t *testing.T) {
	for _, face := range Faces {
		c := NewCube()
		for i := 0; i < 4; i++ {
			c.Rotate(face, 1, false)
		}
		if !c.IsSolved() {
			t.Errorf("%v x 4 should return to solved", face)
			t.Log(c.String())
		}
	}
}

func TestTurnThenInverseReturnsToSolved_AllFaces(t *testing.T) {
	for _, face := range Faces {
		c := NewCube()
		c.Rotate(face, 1, false)
		c.Rotate(face, -1, false)
		if !c.IsSolved() {
			t.Errorf("%v %v' should return to solved", face, face)
		}
	}
}

func TestR2R2ReturnsToSolved(t *testing.T) {
	c := NewCube()
	c.Apply(R2, false)
	c.Apply(R2, false)
	if !c.IsSolved() {
		t.Error("R2 R2 should return to solved")
		t.Log(c.String())
	}
}

func TestSexyMove6TimesReturnsToSolved(t *testing.T) {
	c := NewCube()
	for i := 0; i < 6; i++ {
		c.ApplyMoves(SexyMove, false)
	}
	if !c.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestRMovesFrontRightEdgeUp(t *testing.T) {
	c := NewCube()
	edge := c.At(Position{1, 0, 1})
	c.Rotate(FaceR, 1, false)

	if edge.Position != (Position{1, 1, 0}) {
		t.Errorf("front-right edge moved to %v, want (1,1,0)", edge.Position)
	}
	if edge.Color(SidePosY) != Green {
		t.Errorf("edge shows %v on top, want green", edge.Color(SidePosY))
	}
	if edge.Color(SidePosX) != Red {
		t.Errorf("edge shows %v on the right, want red", edge.Color(SidePosX))
	}
}

func TestHistoryAndReversal(t *testing.T) {
	c := NewCube()
	c.Rotate(FaceR, 1, true)
	c.Rotate(FaceU, 1, true)
	c.Rotate(FaceF, -1, true)

	if got := c.History().String(); got != "R U F'" {
		t.Errorf("history = %q, want %q", got, "R U F'")
	}

	rev := c.SolutionByReversal()
	if got := FormatMoves(rev); got != "F U' R'" {
		t.Errorf("reversal = %q, want %q", got, "F U' R'")
	}

	c.ApplyMoves(rev, false)
	if !c.IsSolved() {
		t.Error("applying the reversal should solve the cube")
	}
	if c.History().Len() != 3 {
		t.Errorf("unrecorded moves changed the history: %v", c.History())
	}

	c.ClearHistory()
	if c.CanUndo() {
		t.Error("history should be empty after ClearHistory")
	}
}

func TestHalfTurnRecordsOneToken(t *testing.T) {
	c := NewCube()
	if err := c.Apply(U2, true); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	tokens := c.History().Tokens()
	if len(tokens) != 1 || tokens[0] != "U2" {
		t.Errorf("tokens = %v, want [U2]", tokens)
	}

	ref := NewCube()
	ref.Rotate(FaceU, 1, false)
	ref.Rotate(FaceU, 1, false)
	if !c.Equal(ref) {
		t.Error("U2 should equal two quarter turns")
	}

	rev := c.SolutionByReversal()
	if len(rev) != 1 || rev[0] != U2 {
		t.Errorf("reversal of U2 = %v, want [U2]", rev)
	}
}

func TestRotateRejectsInvalidFace(t *testing.T) {
	c := NewCube()
	c.Rotate(FaceR, 1, true)
	before := c.Snapshot()

	err := c.Rotate(Face("X"), 1, true)
	if !errors.Is(err, ErrInvalidFace) {
		t.Fatalf("err = %v, want ErrInvalidFace", err)
	}
	var fe *InvalidFaceError
	if !errors.As(err, &fe) || fe.Face != "X" {
		t.Errorf("err = %v, want *InvalidFaceError for X", err)
	}

	after := c.Snapshot()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("invalid rotation changed the cube")
		}
	}
	if c.History().Len() != 1 {
		t.Error("invalid rotation changed the history")
	}
}

func TestRotateRejectsInvalidDirection(t *testing.T) {
	c := NewCube()
	for _, dir := range []int{0, 2, -2, 5} {
		if err := c.Rotate(FaceF, dir, true); !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("Rotate(F, %d) err = %v, want ErrInvalidDirection", dir, err)
		}
	}
	if !c.IsSolved() || c.CanUndo() {
		t.Error("invalid rotations should have no effect")
	}
}

func TestScramble(t *testing.T) {
	c := NewCube(WithSeed(42))
	moves := c.Scramble(20)

	if len(moves) != 20 {
		t.Fatalf("scramble has %d moves, want 20", len(moves))
	}
	for i, m := range moves {
		if !m.Turn.Quarter() {
			t.Errorf("move %d is %v, want a quarter turn", i, m)
		}
		if i > 0 && moves[i-1].Face == m.Face {
			t.Errorf("moves %d and %d both turn %v", i-1, i, m.Face)
		}
	}
	if !c.IsSolved() || c.CanUndo() {
		t.Error("Scramble should not touch the cube")
	}

	again := NewCube(WithSeed(42)).Scramble(20)
	if FormatMoves(again) != FormatMoves(moves) {
		t.Error("same seed should give the same scramble")
	}

	if got := c.Scramble(0); len(got) != 0 {
		t.Errorf("Scramble(0) = %v", got)
	}
}

func TestScrambleFaces(t *testing.T) {
	c := NewCube(WithSeed(1))
	moves, err := c.ScrambleFaces(30, []Face{FaceR, FaceU})
	if err != nil {
		t.Fatalf("ScrambleFaces failed: %v", err)
	}
	for i, m := range moves {
		if m.Face != FaceR && m.Face != FaceU {
			t.Errorf("move %d turns %v", i, m.Face)
		}
	}

	if _, err := c.ScrambleFaces(5, []Face{FaceR, "Q"}); !errors.Is(err, ErrInvalidFace) {
		t.Errorf("err = %v, want ErrInvalidFace", err)
	}
	if _, err := c.ScrambleFaces(-1, Faces); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("err = %v, want ErrInvalidCount", err)
	}
}

func TestResetToSolved(t *testing.T) {
	c := NewCube(WithSeed(3))
	c.ApplyMoves(c.Scramble(25), true)
	c.ResetToSolved()
	if !c.IsSolved() {
		t.Error("ResetToSolved should solve the cube")
	}
	if got := len(c.Cubies()); got != 26 {
		t.Errorf("cube has %d cubies after reset, want 26", got)
	}
}

func TestCloneAndEqual(t *testing.T) {
	c := NewCube()
	c.ApplyNotation("R U R' F2", true)
	clone := c.Clone()

	if !clone.Equal(c) {
		t.Fatal("clone should equal the original")
	}
	if clone.History().String() != c.History().String() {
		t.Error("clone should copy the history")
	}

	clone.Rotate(FaceD, 1, true)
	if clone.Equal(c) {
		t.Error("clone should be independent of the original")
	}
	if c.History().Len() != 4 {
		t.Error("turning the clone changed the original history")
	}
}

func TestApplyNotationIsAllOrNothing(t *testing.T) {
	c := NewCube()
	if err := c.ApplyNotation("R U X", true); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("err = %v, want ErrInvalidNotation", err)
	}
	if !c.IsSolved() || c.CanUndo() {
		t.Error("invalid notation should not apply any move")
	}
}

func TestFaceletsMatchStickerModel(t *testing.T) {
	c := NewCube(WithSeed(99))
	g := facelet.New()

	faces := map[Face]facelet.Face{
		FaceU: facelet.U, FaceD: facelet.D, FaceF: facelet.F,
		FaceB: facelet.B, FaceR: facelet.R, FaceL: facelet.L,
	}

	moves := append(c.Scramble(50), R2, F2, B2)
	for i, m := range moves {
		c.Apply(m, false)
		g.Move(faces[m.Face], int(m.Turn))
		if c.Facelets() != g.String() {
			t.Fatalf("after move %d (%v):\ncubies   %s\nstickers %s", i, m, c.Facelets(), g.String())
		}
	}
}

package facelet

import (
	"strings"
	"testing"
)

func TestNewGridIsSolved(t *testing.T) {
	g := New()
	if !g.IsSolved() {
		t.Error("New grid should be solved")
	}
	if g.String() != Solved {
		t.Errorf("String() = %s, want %s", g.String(), Solved)
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	g := New()
	g.Move(R, 1)
	if g.IsSolved() {
		t.Error("Grid should not be solved after R move")
	}
}

func TestRMoveString(t *testing.T) {
	g := New()
	g.Move(R, 1)
	want := "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"
	if g.String() != want {
		t.Errorf("after R got %s, want %s", g.String(), want)
	}
}

func TestFourQuarterTurnsReturnToSolved_AllFaces(t *testing.T) {
	for _, face := range []Face{U, D, F, B, R, L} {
		g := New()
		for i := 0; i < 4; i++ {
			g.Move(face, 1)
		}
		if !g.IsSolved() {
			t.Errorf("%v x 4 should return to solved", face)
			t.Log(g.Net(nil))
		}
	}
}

func TestCWThenCCWReturnsToSolved(t *testing.T) {
	for _, face := range []Face{U, D, F, B, R, L} {
		g := New()
		g.Move(face, 1)
		g.Move(face, -1)
		if !g.IsSolved() {
			t.Errorf("%v %v' should return to solved", face, face)
		}
	}
}

func TestR2R2ReturnsToSolved(t *testing.T) {
	g := New()
	g.Move(R, 2)
	g.Move(R, 2)
	if !g.IsSolved() {
		t.Error("R2 R2 should return to solved")
		t.Log(g.Net(nil))
	}
}

func TestSexyMove6TimesReturnsToSolved(t *testing.T) {
	g := New()
	for i := 0; i < 6; i++ {
		g.Move(R, 1)
		g.Move(U, 1)
		g.Move(R, -1)
		g.Move(U, -1)
	}
	if !g.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(g.Net(nil))
	}
}

func TestParseRoundTrip(t *testing.T) {
	g := New()
	g.Move(F, 1)
	g.Move(U, -1)
	g.Move(L, 2)

	parsed, err := Parse(g.String())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if *parsed != *g {
		t.Error("parsed grid differs from original")
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"short", "UUU"},
		{"bad letter", "X" + Solved[1:]},
		{"wrong counts", "R" + Solved[1:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.in); err == nil {
				t.Errorf("Parse(%q) should fail", tt.in)
			}
		})
	}
}

func TestNetLayout(t *testing.T) {
	net := New().Net(nil)
	lines := strings.Split(strings.TrimRight(net, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("net has %d lines, want 9", len(lines))
	}
	if !strings.HasPrefix(lines[3], "L L L F F F R R R B B B") {
		t.Errorf("middle band = %q", lines[3])
	}
}

func TestPhaseDetection(t *testing.T) {
	g := New()
	if g.DetectPhase() != PhaseSolved {
		t.Errorf("solved grid phase = %v", g.DetectPhase())
	}

	// D turns leave the first two layers alone.
	g.Move(D, 1)
	if got := g.DetectPhase(); got != PhaseBottomCross {
		t.Errorf("after D phase = %v, want %v", got, PhaseBottomCross)
	}
	if !g.IsMiddleLayerComplete() {
		t.Error("D move should not break the middle layer")
	}

	g = New()
	g.Move(R, 1)
	if g.IsTopCrossComplete() {
		t.Error("R move should break the top cross")
	}
	if g.DetectPhase() != PhaseScrambled {
		t.Errorf("after R phase = %v, want scrambled", g.DetectPhase())
	}
}

func TestGetProgress(t *testing.T) {
	p := New().GetProgress()
	if !p.TopCross || !p.TopLayer || !p.MiddleLayer || !p.Solved {
		t.Errorf("solved progress = %+v", p)
	}
}

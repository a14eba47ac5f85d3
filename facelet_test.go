package cubesim

import (
	"testing"

	"github.com/SeamusWaldron/cubesim/internal/facelet"
)

func TestSolvedFacelets(t *testing.T) {
	c := NewCube()
	if got := c.Facelets(); got != facelet.Solved {
		t.Errorf("Facelets() = %s, want %s", got, facelet.Solved)
	}
}

func TestFaceletsAfterR(t *testing.T) {
	c := NewCube()
	c.Rotate(FaceR, 1, false)
	want := "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"
	if got := c.Facelets(); got != want {
		t.Errorf("after R got %s, want %s", got, want)
	}
}

func TestFaceletColorsCenters(t *testing.T) {
	c := NewCube(WithSeed(5))
	c.ApplyMoves(c.Scramble(30), false)
	for _, face := range Faces {
		center := c.FaceletColors(face)[4]
		if center != face.Side().SolvedColor() {
			t.Errorf("%v center is %v, want %v", face, center, face.Side().SolvedColor())
		}
	}
}

func TestCubePhase(t *testing.T) {
	c := NewCube()
	if c.Phase() != PhaseSolved {
		t.Errorf("solved phase = %v", c.Phase())
	}
	c.Rotate(FaceD, 1, false)
	if c.Phase() != PhaseYellowCross {
		t.Errorf("after D phase = %v, want %v", c.Phase(), PhaseYellowCross)
	}
	c.Rotate(FaceR, 1, false)
	if c.Phase() != PhaseScrambled {
		t.Errorf("after D R phase = %v, want scrambled", c.Phase())
	}
}

package cubesim

import "github.com/SeamusWaldron/cubesim/internal/facelet"

// Phase represents the current solving phase in the layer-by-layer method.
// Phases progress from Scrambled (0) to Solved (7), allowing comparison
// with < and > operators.
type Phase int

const (
	// PhaseScrambled indicates the cube is in a scrambled state.
	PhaseScrambled Phase = iota

	// PhaseWhiteCross indicates the white cross is complete.
	// The 4 white edge pieces are correctly positioned on the U face
	// with their adjacent colors matching the center colors.
	PhaseWhiteCross

	// PhaseFirstLayer indicates the first layer (white face) is complete.
	PhaseFirstLayer

	// PhaseSecondLayer indicates the second (middle) layer is complete.
	PhaseSecondLayer

	// PhaseYellowCross indicates the 4 yellow edges show yellow on the D face.
	PhaseYellowCross

	// PhaseYellowCorners indicates the yellow corners are positioned
	// (they may be mis-oriented).
	PhaseYellowCorners

	// PhaseYellowOriented indicates the yellow corners are oriented.
	PhaseYellowOriented

	// PhaseSolved indicates the cube is completely solved.
	PhaseSolved
)

func phaseOf(p facelet.Phase) Phase {
	return Phase(p)
}

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseWhiteCross:
		return "white_cross"
	case PhaseFirstLayer:
		return "first_layer"
	case PhaseSecondLayer:
		return "second_layer"
	case PhaseYellowCross:
		return "yellow_cross"
	case PhaseYellowCorners:
		return "yellow_corners"
	case PhaseYellowOriented:
		return "yellow_oriented"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseWhiteCross:
		return "White Cross"
	case PhaseFirstLayer:
		return "First Layer"
	case PhaseSecondLayer:
		return "Second Layer (F2L)"
	case PhaseYellowCross:
		return "Yellow Cross"
	case PhaseYellowCorners:
		return "Yellow Corners Positioned"
	case PhaseYellowOriented:
		return "Yellow Corners Oriented"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// IsComplete returns true if the cube is solved.
func (p Phase) IsComplete() bool {
	return p == PhaseSolved
}

// Phase returns the furthest completed layer-by-layer phase.
func (c *Cube) Phase() Phase {
	return phaseOf(c.Grid().DetectPhase())
}

// ParsePhase returns the phase whose String is key.
func ParsePhase(key string) (Phase, bool) {
	for p := PhaseScrambled; p <= PhaseSolved; p++ {
		if p.String() == key {
			return p, true
		}
	}
	return PhaseScrambled, false
}

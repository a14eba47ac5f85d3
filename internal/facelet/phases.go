package facelet

// Phase detection for the layer-by-layer method, starting from the U face.
// Every check compares stickers with face centers, so it holds for any
// color scheme.

// Phase is the furthest completed step of a layer-by-layer solve.
type Phase int

const (
	PhaseScrambled Phase = iota
	PhaseTopCross
	PhaseTopLayer
	PhaseMiddleLayer
	PhaseBottomCross
	PhaseCornersPositioned
	PhaseCornersOriented
	PhaseSolved
)

func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseTopCross:
		return "white_cross"
	case PhaseTopLayer:
		return "top_corners"
	case PhaseMiddleLayer:
		return "middle_layer"
	case PhaseBottomCross:
		return "bottom_cross"
	case PhaseCornersPositioned:
		return "position_corners"
	case PhaseCornersOriented:
		return "rotate_corners"
	case PhaseSolved:
		return "complete"
	default:
		return "unknown"
	}
}

func (g *Grid) matchesCenter(face Face, idx ...int) bool {
	center := g.Facelets[face][4]
	for _, i := range idx {
		if g.Facelets[face][i] != center {
			return false
		}
	}
	return true
}

// IsTopCrossComplete checks the four U edges and their side stickers.
// U[1] is adjacent to B[1], U[3] to L[1], U[5] to R[1], U[7] to F[1].
func (g *Grid) IsTopCrossComplete() bool {
	if !g.matchesCenter(U, 1, 3, 5, 7) {
		return false
	}
	for _, face := range []Face{B, L, R, F} {
		if !g.matchesCenter(face, 1) {
			return false
		}
	}
	return true
}

// IsTopLayerComplete checks the cross plus the four U corners.
func (g *Grid) IsTopLayerComplete() bool {
	if !g.IsTopCrossComplete() {
		return false
	}
	if !g.matchesCenter(U, 0, 2, 6, 8) {
		return false
	}
	for _, face := range []Face{F, R, B, L} {
		if !g.matchesCenter(face, 0, 2) {
			return false
		}
	}
	return true
}

// IsMiddleLayerComplete checks the middle edges at positions 3 and 5 on the
// side faces.
func (g *Grid) IsMiddleLayerComplete() bool {
	if !g.IsTopLayerComplete() {
		return false
	}
	for _, face := range []Face{F, R, B, L} {
		if !g.matchesCenter(face, 3, 5) {
			return false
		}
	}
	return true
}

// IsBottomCrossComplete checks that the four D edges show the D color.
// Their positions are not checked.
func (g *Grid) IsBottomCrossComplete() bool {
	return g.IsMiddleLayerComplete() && g.matchesCenter(D, 1, 3, 5, 7)
}

// AreBottomCornersPositioned checks each D corner holds the right piece,
// ignoring its twist.
func (g *Grid) AreBottomCornersPositioned() bool {
	if !g.IsBottomCrossComplete() {
		return false
	}

	corners := [][3][2]int{
		{{int(F), 8}, {int(R), 6}, {int(D), 2}},
		{{int(R), 8}, {int(B), 6}, {int(D), 8}},
		{{int(B), 8}, {int(L), 6}, {int(D), 6}},
		{{int(L), 8}, {int(F), 6}, {int(D), 0}},
	}

	for _, corner := range corners {
		actual := make([]Face, 3)
		expected := make([]Face, 3)
		for i, pos := range corner {
			actual[i] = g.Facelets[pos[0]][pos[1]]
			expected[i] = g.Facelets[pos[0]][4]
		}
		if !sameFaces(actual, expected) {
			return false
		}
	}
	return true
}

// AreBottomCornersOriented checks the whole D face and the bottom corners of
// the side faces.
func (g *Grid) AreBottomCornersOriented() bool {
	if !g.AreBottomCornersPositioned() {
		return false
	}
	if !g.matchesCenter(D, 0, 2, 6, 8) {
		return false
	}
	for _, face := range []Face{F, R, B, L} {
		if !g.matchesCenter(face, 6, 8) {
			return false
		}
	}
	return true
}

// sameFaces checks if two slices contain the same values in any order.
func sameFaces(a, b []Face) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[Face]int)
	for _, f := range a {
		count[f]++
	}
	for _, f := range b {
		count[f]--
	}
	for _, v := range count {
		if v != 0 {
			return false
		}
	}
	return true
}

// DetectPhase returns the furthest completed phase.
func (g *Grid) DetectPhase() Phase {
	switch {
	case g.IsSolved():
		return PhaseSolved
	case g.AreBottomCornersOriented():
		return PhaseCornersOriented // edges may still need a D turn
	case g.AreBottomCornersPositioned():
		return PhaseCornersPositioned
	case g.IsBottomCrossComplete():
		return PhaseBottomCross
	case g.IsMiddleLayerComplete():
		return PhaseMiddleLayer
	case g.IsTopLayerComplete():
		return PhaseTopLayer
	case g.IsTopCrossComplete():
		return PhaseTopCross
	}
	return PhaseScrambled
}

// Progress records which phases are complete.
type Progress struct {
	TopCross          bool
	TopLayer          bool
	MiddleLayer       bool
	BottomCross       bool
	CornersPositioned bool
	CornersOriented   bool
	Solved            bool
}

// GetProgress returns the current progress through all phases.
func (g *Grid) GetProgress() Progress {
	return Progress{
		TopCross:          g.IsTopCrossComplete(),
		TopLayer:          g.IsTopLayerComplete(),
		MiddleLayer:       g.IsMiddleLayerComplete(),
		BottomCross:       g.IsBottomCrossComplete(),
		CornersPositioned: g.AreBottomCornersPositioned(),
		CornersOriented:   g.AreBottomCornersOriented(),
		Solved:            g.IsSolved(),
	}
}

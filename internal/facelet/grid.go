// Package facelet models a cube as 54 stickers, the representation external
// solvers exchange. It is independent of the cubie model and is used to
// serialize it, cross-check it and detect solving phases.
package facelet

import (
	"fmt"
	"strings"
)

// Face identifies one of the six faces. Sticker values are also Faces: each
// sticker holds the face whose center shares its color.
type Face int

const (
	U Face = 0 // Up (White)
	D Face = 1 // Down (Yellow)
	F Face = 2 // Front (Green)
	B Face = 3 // Back (Blue)
	R Face = 4 // Right (Red)
	L Face = 5 // Left (Orange)
)

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// ParseFace converts a face letter.
func ParseFace(b byte) (Face, bool) {
	switch b {
	case 'U':
		return U, true
	case 'D':
		return D, true
	case 'F':
		return F, true
	case 'B':
		return B, true
	case 'R':
		return R, true
	case 'L':
		return L, true
	}
	return 0, false
}

// Order is the face order of the serialized string.
var Order = []Face{U, R, F, D, L, B}

// Solved is the serialized form of a solved cube.
const Solved = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

// Grid holds the stickers of each face indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// looking at the face from outside. The center (index 4) never moves.
type Grid struct {
	Facelets [6][9]Face
}

// New creates a solved grid.
func New() *Grid {
	g := &Grid{}
	for face := Face(0); face < 6; face++ {
		for i := 0; i < 9; i++ {
			g.Facelets[face][i] = face
		}
	}
	return g
}

// Parse reads a 54 character string in U, R, F, D, L, B order.
func Parse(s string) (*Grid, error) {
	if len(s) != 54 {
		return nil, fmt.Errorf("facelet string must be 54 characters, got %d", len(s))
	}
	g := &Grid{}
	counts := make(map[Face]int, 6)
	for fi, face := range Order {
		for i := 0; i < 9; i++ {
			b := s[fi*9+i]
			v, ok := ParseFace(b)
			if !ok {
				return nil, fmt.Errorf("invalid facelet %q at %d", b, fi*9+i)
			}
			g.Facelets[face][i] = v
			counts[v]++
		}
	}
	for face := Face(0); face < 6; face++ {
		if counts[face] != 9 {
			return nil, fmt.Errorf("face %s appears %d times, want 9", face, counts[face])
		}
	}
	return g, nil
}

// String serializes the grid in U, R, F, D, L, B order.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(54)
	for _, face := range Order {
		for i := 0; i < 9; i++ {
			sb.WriteString(g.Facelets[face][i].String())
		}
	}
	return sb.String()
}

// IsSolved returns true if every sticker matches its face center.
func (g *Grid) IsSolved() bool {
	for face := Face(0); face < 6; face++ {
		center := g.Facelets[face][4]
		for i := 0; i < 9; i++ {
			if g.Facelets[face][i] != center {
				return false
			}
		}
	}
	return true
}

// Net renders the grid unfolded: U on top, L F R B across, D below.
// cell formats one sticker two columns wide.
func (g *Grid) Net(cell func(Face) string) string {
	return g.NetWidth(cell, 2)
}

// NetWidth is Net for cells that render width columns wide, such as
// strings carrying terminal escape codes.
func (g *Grid) NetWidth(cell func(Face) string, width int) string {
	if cell == nil {
		cell = func(f Face) string { return f.String() + " " }
		width = 2
	}
	blank := strings.Repeat(" ", width)
	var sb strings.Builder

	block := func(face Face, indent bool) {
		for row := 0; row < 3; row++ {
			if indent {
				sb.WriteString(strings.Repeat(blank, 3))
			}
			for col := 0; col < 3; col++ {
				sb.WriteString(cell(g.Facelets[face][row*3+col]))
			}
			sb.WriteString("\n")
		}
	}

	block(U, true)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{L, F, R, B} {
			for col := 0; col < 3; col++ {
				sb.WriteString(cell(g.Facelets[face][row*3+col]))
			}
		}
		sb.WriteString("\n")
	}
	block(D, true)

	return sb.String()
}

// strip is three stickers on one face.
type strip struct {
	face Face
	idx  [3]int
}

// rings lists, per face, the adjacent strips in the order a clockwise turn
// carries stickers: ring[0] moves to ring[1], and so on.
var rings = [6][4]strip{
	U: {{F, [3]int{0, 1, 2}}, {L, [3]int{0, 1, 2}}, {B, [3]int{0, 1, 2}}, {R, [3]int{0, 1, 2}}},
	D: {{F, [3]int{6, 7, 8}}, {R, [3]int{6, 7, 8}}, {B, [3]int{6, 7, 8}}, {L, [3]int{6, 7, 8}}},
	F: {{U, [3]int{6, 7, 8}}, {R, [3]int{0, 3, 6}}, {D, [3]int{2, 1, 0}}, {L, [3]int{8, 5, 2}}},
	B: {{U, [3]int{2, 1, 0}}, {L, [3]int{0, 3, 6}}, {D, [3]int{6, 7, 8}}, {R, [3]int{8, 5, 2}}},
	R: {{U, [3]int{2, 5, 8}}, {B, [3]int{6, 3, 0}}, {D, [3]int{2, 5, 8}}, {F, [3]int{2, 5, 8}}},
	L: {{U, [3]int{0, 3, 6}}, {F, [3]int{0, 3, 6}}, {D, [3]int{0, 3, 6}}, {B, [3]int{8, 5, 2}}},
}

// Move turns a face. turn: 1 = CW, -1 = CCW, 2 = 180 degrees.
func (g *Grid) Move(face Face, turn int) {
	switch turn {
	case 1:
		g.moveCW(face)
	case -1:
		g.moveCW(face)
		g.moveCW(face)
		g.moveCW(face)
	case 2:
		g.moveCW(face)
		g.moveCW(face)
	}
}

func (g *Grid) moveCW(face Face) {
	// Corners 0->2->8->6, edges 1->5->7->3.
	f := &g.Facelets[face]
	f[0], f[2], f[8], f[6] = f[6], f[0], f[2], f[8]
	f[1], f[5], f[7], f[3] = f[3], f[1], f[5], f[7]

	ring := rings[face]
	var saved [3]Face
	for k := 0; k < 3; k++ {
		saved[k] = g.Facelets[ring[3].face][ring[3].idx[k]]
	}
	for s := 3; s > 0; s-- {
		for k := 0; k < 3; k++ {
			g.Facelets[ring[s].face][ring[s].idx[k]] = g.Facelets[ring[s-1].face][ring[s-1].idx[k]]
		}
	}
	for k := 0; k < 3; k++ {
		g.Facelets[ring[0].face][ring[0].idx[k]] = saved[k]
	}
}

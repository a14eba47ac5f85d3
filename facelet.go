package cubesim

import (
	"strings"

	"github.com/SeamusWaldron/cubesim/internal/facelet"
)

// faceletPositions lists, per face, the lattice points of its nine stickers
// in reading order as seen from outside the face.
var faceletPositions = map[Face][9]Position{
	FaceU: {
		{-1, 1, -1}, {0, 1, -1}, {1, 1, -1},
		{-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
		{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
	},
	FaceR: {
		{1, 1, 1}, {1, 1, 0}, {1, 1, -1},
		{1, 0, 1}, {1, 0, 0}, {1, 0, -1},
		{1, -1, 1}, {1, -1, 0}, {1, -1, -1},
	},
	FaceF: {
		{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
		{-1, 0, 1}, {0, 0, 1}, {1, 0, 1},
		{-1, -1, 1}, {0, -1, 1}, {1, -1, 1},
	},
	FaceD: {
		{-1, -1, 1}, {0, -1, 1}, {1, -1, 1},
		{-1, -1, 0}, {0, -1, 0}, {1, -1, 0},
		{-1, -1, -1}, {0, -1, -1}, {1, -1, -1},
	},
	FaceL: {
		{-1, 1, -1}, {-1, 1, 0}, {-1, 1, 1},
		{-1, 0, -1}, {-1, 0, 0}, {-1, 0, 1},
		{-1, -1, -1}, {-1, -1, 0}, {-1, -1, 1},
	},
	FaceB: {
		{1, 1, -1}, {0, 1, -1}, {-1, 1, -1},
		{1, 0, -1}, {0, 0, -1}, {-1, 0, -1},
		{1, -1, -1}, {0, -1, -1}, {-1, -1, -1},
	},
}

// colorFaces maps a sticker color to the face that shows it when solved.
var colorFaces = func() map[Color]Face {
	m := make(map[Color]Face, 6)
	for _, s := range Sides {
		m[s.SolvedColor()] = FaceForSide(s)
	}
	return m
}()

// FaceletColors returns the nine sticker colors of a face in reading order.
func (c *Cube) FaceletColors(face Face) [9]Color {
	var out [9]Color
	side := face.Side()
	for i, p := range faceletPositions[face] {
		out[i] = c.cubies[p].Colors[side]
	}
	return out
}

// Facelets serializes the cube as 54 face letters in U, R, F, D, L, B order,
// nine per face. Each letter names the face whose solved color the sticker
// shows. This is the input format of two-phase solvers.
func (c *Cube) Facelets() string {
	var sb strings.Builder
	sb.Grow(54)
	for _, face := range Faces {
		for _, col := range c.FaceletColors(face) {
			sb.WriteString(string(colorFaces[col]))
		}
	}
	return sb.String()
}

// Grid returns the sticker view of the cube.
func (c *Cube) Grid() *facelet.Grid {
	g, err := facelet.Parse(c.Facelets())
	if err != nil {
		// The cubie model always yields nine stickers of each color.
		panic("cubesim: inconsistent facelets: " + err.Error())
	}
	return g
}

// String returns the unfolded net of the cube.
func (c *Cube) String() string {
	return c.Grid().Net(nil)
}

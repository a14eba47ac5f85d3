package cubesim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Hex returns the color as a #rrggbb string for terminal styling.
func (c Color) Hex() string {
	switch c {
	case White:
		return "#ffffff"
	case Yellow:
		return "#ffd500"
	case Green:
		return "#009b48"
	case Blue:
		return "#0046ad"
	case Red:
		return "#b71234"
	case Orange:
		return "#ff5800"
	default:
		return "#000000"
	}
}

// Axis is one of the three lattice axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Side is an outward unit direction (±X, ±Y, ±Z). Cubie colors are keyed by Side.
type Side int

const (
	SidePosX Side = iota // Right
	SideNegX             // Left
	SidePosY             // Up
	SideNegY             // Down
	SidePosZ             // Front
	SideNegZ             // Back
)

// Sides lists every side in index order.
var Sides = [6]Side{SidePosX, SideNegX, SidePosY, SideNegY, SidePosZ, SideNegZ}

func (s Side) String() string {
	switch s {
	case SidePosX:
		return "+X"
	case SideNegX:
		return "-X"
	case SidePosY:
		return "+Y"
	case SideNegY:
		return "-Y"
	case SidePosZ:
		return "+Z"
	case SideNegZ:
		return "-Z"
	default:
		return "?"
	}
}

// Axis returns the axis the side lies on.
func (s Side) Axis() Axis {
	return Axis(s / 2)
}

// Sign returns +1 for a positive side and -1 for a negative one.
func (s Side) Sign() int {
	if s%2 == 0 {
		return 1
	}
	return -1
}

// Vector returns the side as an integer unit vector.
func (s Side) Vector() Position {
	var p Position
	p.set(s.Axis(), s.Sign())
	return p
}

// Normal returns the side as a float unit vector.
func (s Side) Normal() mgl64.Vec3 {
	return s.Vector().Vec3()
}

// sideOf maps a unit lattice vector back to its Side.
func sideOf(p Position) (Side, bool) {
	for _, s := range Sides {
		if s.Vector() == p {
			return s, true
		}
	}
	return 0, false
}

// SolvedColor returns the color a side shows on a solved cube.
func (s Side) SolvedColor() Color {
	switch s {
	case SidePosY:
		return White
	case SideNegY:
		return Yellow
	case SidePosZ:
		return Green
	case SideNegZ:
		return Blue
	case SidePosX:
		return Red
	default:
		return Orange
	}
}

// Position is an integer lattice coordinate with components in {-1, 0, 1}.
type Position struct {
	X, Y, Z int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Coord returns the component along axis a.
func (p Position) Coord(a Axis) int {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

func (p *Position) set(a Axis, v int) {
	switch a {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	default:
		p.Z = v
	}
}

// Vec3 converts the position to a float vector in lattice units.
func (p Position) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}
}

// Valid reports whether p is one of the 26 outer lattice points.
func (p Position) Valid() bool {
	in := func(v int) bool { return v >= -1 && v <= 1 }
	return in(p.X) && in(p.Y) && in(p.Z) && p != (Position{})
}

// less orders positions by x, then y, then z.
func (p Position) less(o Position) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.Z < o.Z
}

// Colors holds one color per side of a cubie, indexed by Side.
type Colors [6]Color

// solvedColors is the orientation every cubie has on a solved cube.
func solvedColors() Colors {
	var c Colors
	for _, s := range Sides {
		c[s] = s.SolvedColor()
	}
	return c
}

package cubesim

import "github.com/go-gl/mathgl/mgl64"

// faceSpec describes the layer a face symbol turns.
type faceSpec struct {
	axis  Axis
	layer int  // coordinate of the layer on axis
	side  Side // outward normal of the face
}

var faceSpecs = map[Face]faceSpec{
	FaceF: {AxisZ, 1, SidePosZ},
	FaceB: {AxisZ, -1, SideNegZ},
	FaceU: {AxisY, 1, SidePosY},
	FaceD: {AxisY, -1, SideNegY},
	FaceL: {AxisX, -1, SideNegX},
	FaceR: {AxisX, 1, SidePosX},
}

// Side returns the outward side of the face.
func (f Face) Side() Side {
	return faceSpecs[f].side
}

// TurnAxis returns the inward face normal. A positive right-handed rotation
// about it is a clockwise turn as seen from outside the face.
func (f Face) TurnAxis() mgl64.Vec3 {
	return f.Side().Normal().Mul(-1)
}

// FaceForSide returns the face symbol whose outward normal is s.
func FaceForSide(s Side) Face {
	for f, spec := range faceSpecs {
		if spec.side == s {
			return f
		}
	}
	return ""
}

// RotationTransform is a quarter turn of one layer expressed on the integer
// lattice. It is pure: applying it never touches a Cube.
type RotationTransform struct {
	Axis      Axis
	Layer     int
	Direction int // effective direction after the viewing convention, ±1
}

// NewRotationTransform builds the transform for turning face in direction
// (+1 clockwise, -1 counter-clockwise, as seen from outside the face).
func NewRotationTransform(face Face, direction int) (RotationTransform, error) {
	spec, ok := faceSpecs[face]
	if !ok {
		return RotationTransform{}, &InvalidFaceError{Face: face}
	}
	if direction != 1 && direction != -1 {
		return RotationTransform{}, ErrInvalidDirection
	}

	// Faces seen from the negative end of their axis turn the other way.
	eff := direction
	if spec.side.Sign() < 0 {
		eff = -eff
	}
	return RotationTransform{Axis: spec.axis, Layer: spec.layer, Direction: eff}, nil
}

// Contains reports whether p lies in the turning layer.
func (t RotationTransform) Contains(p Position) bool {
	return p.Coord(t.Axis) == t.Layer
}

// Position returns where p ends up after the turn.
func (t RotationTransform) Position(p Position) Position {
	return rotatePosition(p, t.Axis, t.Direction)
}

// Colors re-keys a cubie's colors so each one follows its sticker.
func (t RotationTransform) Colors(c Colors) Colors {
	table := &sideTable[t.Axis][dirIndex(t.Direction)]
	var out Colors
	for _, s := range Sides {
		out[table[s]] = c[s]
	}
	return out
}

// Side returns where side s points after the turn.
func (t RotationTransform) Side(s Side) Side {
	return sideTable[t.Axis][dirIndex(t.Direction)][s]
}

func rotatePosition(p Position, axis Axis, eff int) Position {
	x, y, z := p.X, p.Y, p.Z
	switch axis {
	case AxisX:
		if eff > 0 {
			return Position{x, z, -y}
		}
		return Position{x, -z, y}
	case AxisY:
		if eff > 0 {
			return Position{-z, y, x}
		}
		return Position{z, y, -x}
	default:
		if eff > 0 {
			return Position{y, -x, z}
		}
		return Position{-y, x, z}
	}
}

func dirIndex(eff int) int {
	if eff > 0 {
		return 0
	}
	return 1
}

// sideTable[axis][dirIndex][side] is the side that side rotates onto.
var sideTable [3][2][6]Side

func init() {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for i, eff := range []int{1, -1} {
			for _, s := range Sides {
				rotated, ok := sideOf(rotatePosition(s.Vector(), axis, eff))
				if !ok {
					panic("cubesim: side rotation left the unit lattice")
				}
				sideTable[axis][i][s] = rotated
			}
		}
	}
}

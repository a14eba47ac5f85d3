package cubesim

import "github.com/go-gl/mathgl/mgl64"

// Cubie is one of the 26 visible pieces. It is created once and afterwards
// only its Position and Colors change.
type Cubie struct {
	ID       int      // stable identity, index in home order
	Home     Position // lattice point the cubie occupies when solved
	Position Position
	Colors   Colors // sticker color facing each side

	anim *mgl64.Mat4
}

func newCubie(id int, home Position) *Cubie {
	return &Cubie{
		ID:       id,
		Home:     home,
		Position: home,
		Colors:   solvedColors(),
	}
}

// Color returns the color facing side s.
func (c *Cubie) Color(s Side) Color {
	return c.Colors[s]
}

// Outer reports whether side s of the cubie is on the outside of the cube.
func (c *Cubie) Outer(s Side) bool {
	return c.Position.Coord(s.Axis()) == s.Sign()
}

// AnimationTransform returns the transient rotation set by the animation
// scheduler, if any.
func (c *Cubie) AnimationTransform() (mgl64.Mat4, bool) {
	if c.anim == nil {
		return mgl64.Ident4(), false
	}
	return *c.anim, true
}

// Transform returns the rotation to draw the cubie with; identity when idle.
func (c *Cubie) Transform() mgl64.Mat4 {
	m, _ := c.AnimationTransform()
	return m
}

func (c *Cubie) setAnimation(m mgl64.Mat4) {
	c.anim = &m
}

func (c *Cubie) clearAnimation() {
	c.anim = nil
}

func (c *Cubie) solved() bool {
	return c.Position == c.Home && c.Colors == solvedColors()
}

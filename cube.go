package cubesim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
)

// Cube is the authoritative discrete state of a 3x3x3 puzzle: 26 cubies in a
// strict bijection with the outer lattice points, plus the move history.
//
// A Cube is not safe for concurrent use. It is driven from a single frame
// loop, usually through a Scheduler.
type Cube struct {
	cubies  map[Position]*Cubie
	all     []*Cubie // by ID
	history History

	rng    *rand.Rand
	logger *slog.Logger
}

// NewCube creates a solved cube with standard orientation:
// White on top, Green in front.
func NewCube(opts ...Option) *Cube {
	cfg := newConfig(opts)
	c := &Cube{
		rng:    cfg.rng,
		logger: cfg.logger,
	}
	c.ResetToSolved()
	return c
}

// ResetToSolved reinitializes all 26 cubies at their home positions.
// The history is left alone; see ClearHistory.
func (c *Cube) ResetToSolved() {
	c.cubies = make(map[Position]*Cubie, 26)
	c.all = c.all[:0]
	id := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				p := Position{x, y, z}
				if !p.Valid() {
					continue
				}
				cb := newCubie(id, p)
				c.cubies[p] = cb
				c.all = append(c.all, cb)
				id++
			}
		}
	}
}

// Rotate turns one face a quarter turn. direction is +1 for clockwise and -1
// for counter-clockwise as seen from outside the face. When record is set the
// move is appended to the history. An invalid face or direction leaves the
// cube untouched.
func (c *Cube) Rotate(face Face, direction int, record bool) error {
	t, err := NewRotationTransform(face, direction)
	if err != nil {
		return err
	}

	m := Move{Face: face, Turn: Turn(direction)}
	if record {
		c.history.Append(m)
	}
	c.apply(t)

	c.logger.Debug("rotate", "move", m.Notation(), "record", record)
	return nil
}

// apply moves the layer selected by t and swaps in a new position map.
func (c *Cube) apply(t RotationTransform) {
	next := make(map[Position]*Cubie, len(c.cubies))
	for p, cb := range c.cubies {
		if t.Contains(p) {
			cb.Position = t.Position(p)
			cb.Colors = t.Colors(cb.Colors)
		}
		next[cb.Position] = cb
	}
	c.cubies = next
}

// Apply executes a move. A half turn runs as two quarter turns and records a
// single X2 entry.
func (c *Cube) Apply(m Move, record bool) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Turn.Quarter() {
		return c.Rotate(m.Face, int(m.Turn), record)
	}

	for _, q := range m.Quarters() {
		if err := c.Rotate(q.Face, int(q.Turn), false); err != nil {
			return err
		}
	}
	if record {
		c.history.Append(m)
	}
	return nil
}

// ApplyMoves executes moves in order, stopping at the first invalid one.
func (c *Cube) ApplyMoves(moves []Move, record bool) error {
	for _, m := range moves {
		if err := c.Apply(m, record); err != nil {
			return err
		}
	}
	return nil
}

// ApplyNotation parses and executes a space-separated move sequence.
// Nothing is applied if any token is invalid.
func (c *Cube) ApplyNotation(s string, record bool) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	return c.ApplyMoves(moves, record)
}

// Scramble returns count random quarter turns without applying them.
// No two consecutive moves turn the same face.
func (c *Cube) Scramble(count int) []Move {
	moves, _ := c.ScrambleFaces(count, Faces)
	return moves
}

// ScrambleFaces is Scramble restricted to the given faces.
func (c *Cube) ScrambleFaces(count int, faces []Face) ([]Move, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	for _, f := range faces {
		if !f.Valid() {
			return nil, &InvalidFaceError{Face: f}
		}
	}
	if count == 0 {
		return []Move{}, nil
	}
	if len(faces) < 2 {
		return nil, fmt.Errorf("%w: need at least two faces", ErrInvalidCount)
	}

	moves := make([]Move, 0, count)
	var last Face
	for len(moves) < count {
		face := faces[c.rng.IntN(len(faces))]
		for face == last {
			face = faces[c.rng.IntN(len(faces))]
		}
		turn := CW
		if c.rng.IntN(2) == 1 {
			turn = CCW
		}
		moves = append(moves, Move{Face: face, Turn: turn})
		last = face
	}
	return moves, nil
}

// SolutionByReversal returns the history reversed with every move inverted.
func (c *Cube) SolutionByReversal() []Move {
	return c.history.Reversal()
}

// ClearHistory empties the move history. The cube state is unchanged.
func (c *Cube) ClearHistory() {
	c.history.Clear()
}

// History returns the move history.
func (c *Cube) History() *History {
	return &c.history
}

// CanUndo reports whether the history has moves to reverse.
func (c *Cube) CanUndo() bool {
	return c.history.CanUndo()
}

// Cubies returns all cubies ordered by current position.
func (c *Cube) Cubies() []*Cubie {
	out := make([]*Cubie, 0, len(c.cubies))
	for _, cb := range c.cubies {
		out = append(out, cb)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Position.less(out[j].Position)
	})
	return out
}

// At returns the cubie at p, or nil for the hidden core or an invalid point.
func (c *Cube) At(p Position) *Cubie {
	return c.cubies[p]
}

// layer returns the cubies currently in the layer turned by face.
func (c *Cube) layer(face Face) []*Cubie {
	spec := faceSpecs[face]
	var out []*Cubie
	for p, cb := range c.cubies {
		if p.Coord(spec.axis) == spec.layer {
			out = append(out, cb)
		}
	}
	return out
}

// CubieState is the observable state of one lattice point.
type CubieState struct {
	Position Position
	Home     Position
	Colors   Colors
}

// Snapshot returns the state of every lattice point ordered by position.
func (c *Cube) Snapshot() []CubieState {
	cubies := c.Cubies()
	out := make([]CubieState, len(cubies))
	for i, cb := range cubies {
		out[i] = CubieState{Position: cb.Position, Home: cb.Home, Colors: cb.Colors}
	}
	return out
}

// Equal reports whether both cubes hold the same pieces in the same
// places with the same orientation. History is not compared.
func (c *Cube) Equal(o *Cube) bool {
	if len(c.cubies) != len(o.cubies) {
		return false
	}
	for p, a := range c.cubies {
		b, ok := o.cubies[p]
		if !ok || a.Home != b.Home || a.Colors != b.Colors {
			return false
		}
	}
	return true
}

// IsSolved returns true if every cubie is home with its solved orientation.
func (c *Cube) IsSolved() bool {
	for _, cb := range c.cubies {
		if !cb.solved() {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the cube, history included. Animation
// transforms are not copied.
func (c *Cube) Clone() *Cube {
	clone := &Cube{
		cubies: make(map[Position]*Cubie, len(c.cubies)),
		all:    make([]*Cubie, len(c.all)),
		rng:    c.rng,
		logger: c.logger,
	}
	for i, cb := range c.all {
		cp := &Cubie{ID: cb.ID, Home: cb.Home, Position: cb.Position, Colors: cb.Colors}
		clone.all[i] = cp
		clone.cubies[cp.Position] = cp
	}
	clone.history.moves = c.history.Moves()
	return clone
}

// clearAnimations drops every transient transform.
func (c *Cube) clearAnimations() {
	for _, cb := range c.all {
		cb.clearAnimation()
	}
}

package cubesim

import (
	"fmt"
	"strings"
)

// Face represents an outer layer in standard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceR Face = "R" // Right
	FaceF Face = "F" // Front
	FaceD Face = "D" // Down
	FaceL Face = "L" // Left
	FaceB Face = "B" // Back
)

// Faces lists the six faces in facelet order (U, R, F, D, L, B).
var Faces = []Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// Valid reports whether f is one of the six face symbols.
func (f Face) Valid() bool {
	switch f {
	case FaceU, FaceR, FaceF, FaceD, FaceL, FaceB:
		return true
	}
	return false
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Quarter reports whether t is a single 90 degree turn.
func (t Turn) Quarter() bool {
	return t == CW || t == CCW
}

// Move represents a single face turn.
type Move struct {
	Face Face // Which face to turn
	Turn Turn // Direction and amount
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// Quarters expands the move into the quarter turns that execute it.
// A half turn is two clockwise quarter turns.
func (m Move) Quarters() []Move {
	if m.Turn == Double {
		q := Move{Face: m.Face, Turn: CW}
		return []Move{q, q}
	}
	return []Move{m}
}

// Validate checks the face symbol and turn value.
func (m Move) Validate() error {
	if !m.Face.Valid() {
		return &InvalidFaceError{Face: m.Face}
	}
	switch m.Turn {
	case CW, CCW, Double:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrInvalidDirection, int(m.Turn))
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns an error if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	face := Face(strings.ToUpper(s[:1]))
	if !face.Valid() {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// The first invalid token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves: reversed, each move inverted.
func InvertMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

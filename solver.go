package cubesim

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Solver is an external solving algorithm. It receives the 54 character
// facelet string and returns a move list in two-phase notation, for
// example "R1 U2 F3 (3f)".
type Solver interface {
	Solve(ctx context.Context, facelets string) (string, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, facelets string) (string, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, facelets string) (string, error) {
	return f(ctx, facelets)
}

// lengthAnnotation matches the "(21f)" suffix two-phase solvers append.
var lengthAnnotation = regexp.MustCompile(`^\(\d+f\)$`)

// ParseSolution converts a solver response into moves. A length annotation
// is dropped when it is the last field; anywhere else it is malformed.
// Tokens are a face letter followed by 1 (clockwise), 2 (half turn) or 3
// (counter-clockwise). An empty solution is valid and yields no moves.
func ParseSolution(s string) ([]Move, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "Error") {
		return nil, fmt.Errorf("%w: %s", ErrSolverRejected, s)
	}

	fields := strings.Fields(s)
	if n := len(fields); n > 0 && lengthAnnotation.MatchString(fields[n-1]) {
		fields = fields[:n-1]
	}
	moves := make([]Move, 0, len(fields))
	for _, tok := range fields {
		if len(tok) != 2 {
			return nil, fmt.Errorf("%w: token %q", ErrMalformedSolution, tok)
		}
		face := Face(tok[:1])
		if !face.Valid() {
			return nil, fmt.Errorf("%w: token %q", ErrMalformedSolution, tok)
		}
		var turn Turn
		switch tok[1] {
		case '1':
			turn = CW
		case '2':
			turn = Double
		case '3':
			turn = CCW
		default:
			return nil, fmt.Errorf("%w: token %q", ErrMalformedSolution, tok)
		}
		moves = append(moves, Move{Face: face, Turn: turn})
	}
	return moves, nil
}

package cubesim

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cubesim package.
var (
	// Move errors
	ErrInvalidFace      = errors.New("cubesim: invalid face")
	ErrInvalidDirection = errors.New("cubesim: invalid turn direction")
	ErrInvalidNotation  = errors.New("cubesim: invalid move notation")
	ErrInvalidCount     = errors.New("cubesim: invalid move count")

	// Solver errors
	ErrNoSolver          = errors.New("cubesim: no solver configured")
	ErrMalformedSolution = errors.New("cubesim: malformed solver response")
	ErrSolverRejected    = errors.New("cubesim: solver rejected cube state")

	// Session errors
	ErrBusy          = errors.New("cubesim: animation in progress")
	ErrNothingToUndo = errors.New("cubesim: move history is empty")
)

// InvalidFaceError reports a face symbol outside U, R, F, D, L, B.
// It matches ErrInvalidFace with errors.Is.
type InvalidFaceError struct {
	Face Face
}

func (e *InvalidFaceError) Error() string {
	return fmt.Sprintf("cubesim: invalid face %q", string(e.Face))
}

// Is reports whether target is ErrInvalidFace.
func (e *InvalidFaceError) Is(target error) bool {
	return target == ErrInvalidFace
}

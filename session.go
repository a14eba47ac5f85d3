package cubesim

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Button identifies the mouse button of a click.
type Button int

const (
	ButtonLeft  Button = iota // clockwise
	ButtonRight               // counter-clockwise
)

// Session binds a cube to its scheduler, picker, solver and phase tracker
// and exposes the user-level actions. Every action except Reset is refused
// with ErrBusy while an animation is queued or running.
type Session struct {
	cube    *Cube
	sched   *Scheduler
	picker  *Picker
	tracker *Tracker
	solver  Solver
	logger  *slog.Logger

	scrambleLength int
}

// NewSession creates a session. It panics if cube or viewer is nil.
func NewSession(cube *Cube, viewer Viewer, opts ...Option) *Session {
	if cube == nil {
		panic("cubesim: NewSession called with nil cube")
	}
	cfg := newConfig(opts)
	s := &Session{
		cube:           cube,
		sched:          NewScheduler(cube, opts...),
		picker:         NewPicker(viewer, opts...),
		tracker:        NewTracker(cube),
		solver:         cfg.solver,
		logger:         cfg.logger,
		scrambleLength: cfg.scrambleLength,
	}
	s.sched.OnCommit(func(Commit) { s.tracker.Update() })
	return s
}

// Cube returns the session cube.
func (s *Session) Cube() *Cube { return s.cube }

// Scheduler returns the animation scheduler.
func (s *Session) Scheduler() *Scheduler { return s.sched }

// Picker returns the face picker.
func (s *Session) Picker() *Picker { return s.picker }

// Tracker returns the phase tracker.
func (s *Session) Tracker() *Tracker { return s.tracker }

// OnCommit registers a callback for every committed quarter turn.
func (s *Session) OnCommit(fn func(Commit)) {
	s.sched.OnCommit(fn)
}

// Busy reports whether an animation is queued or running.
func (s *Session) Busy() bool {
	return s.sched.IsBusy()
}

// Tick advances animations. Call once per frame before reading state.
func (s *Session) Tick(dt time.Duration) {
	s.sched.Tick(dt)
}

// Turn animates and records a quarter turn.
func (s *Session) Turn(face Face, direction int) error {
	if s.Busy() {
		return ErrBusy
	}
	return s.sched.Enqueue(face, direction, true)
}

// Click picks the face under a window point and turns it: clockwise for the
// left button, counter-clockwise for the right. ok is false when nothing
// was hit.
func (s *Session) Click(x, y float64, b Button) (face Face, ok bool, err error) {
	if s.Busy() {
		return "", false, ErrBusy
	}
	face, ok = s.picker.Pick(x, y)
	if !ok {
		return "", false, nil
	}
	dir := 1
	if b == ButtonRight {
		dir = -1
	}
	s.logger.Debug("face picked", "face", face, "button", b)
	return face, true, s.sched.Enqueue(face, dir, true)
}

// Scramble queues an animated, recorded scramble and returns its moves.
func (s *Session) Scramble() ([]Move, error) {
	if s.Busy() {
		return nil, ErrBusy
	}
	moves := s.cube.Scramble(s.scrambleLength)
	if err := s.sched.EnqueueMoves(moves, true); err != nil {
		return nil, err
	}
	s.tracker.Reset()
	s.logger.Info("scramble queued", "moves", FormatMoves(moves))
	return moves, nil
}

// QuickScramble applies a recorded scramble immediately.
func (s *Session) QuickScramble() ([]Move, error) {
	if s.Busy() {
		return nil, ErrBusy
	}
	moves := s.cube.Scramble(s.scrambleLength)
	if err := s.cube.ApplyMoves(moves, true); err != nil {
		return nil, err
	}
	s.tracker.Reset()
	s.logger.Info("scramble applied", "moves", FormatMoves(moves))
	return moves, nil
}

// Reset abandons any animation, restores the solved cube and clears the
// history. It is always allowed.
func (s *Session) Reset() {
	s.sched.Clear()
	s.cube.ResetToSolved()
	s.cube.ClearHistory()
	s.tracker.Reset()
	s.logger.Info("cube reset")
}

// UndoAll animates the reversal of the history without recording it, then
// clears the history.
func (s *Session) UndoAll() ([]Move, error) {
	if s.Busy() {
		return nil, ErrBusy
	}
	if !s.cube.CanUndo() {
		return nil, ErrNothingToUndo
	}
	moves := s.cube.SolutionByReversal()
	if err := s.sched.EnqueueMoves(moves, false); err != nil {
		return nil, err
	}
	s.cube.ClearHistory()
	s.logger.Info("undo queued", "moves", len(moves))
	return moves, nil
}

// Solve asks the solver for a solution and animates it without recording,
// then clears the history. A malformed response leaves everything untouched.
func (s *Session) Solve(ctx context.Context) ([]Move, error) {
	if s.Busy() {
		return nil, ErrBusy
	}
	if s.solver == nil {
		return nil, ErrNoSolver
	}

	resp, err := s.solver.Solve(ctx, s.cube.Facelets())
	if err != nil {
		return nil, fmt.Errorf("solver failed: %w", err)
	}
	return s.ApplySolution(resp)
}

// ApplySolution parses a solver response for the current cube and animates
// it like Solve. Callers that run the solver off the frame loop use it to
// apply the answer; they must not turn the cube in between.
func (s *Session) ApplySolution(resp string) ([]Move, error) {
	if s.Busy() {
		return nil, ErrBusy
	}
	moves, err := ParseSolution(resp)
	if err != nil {
		s.logger.Warn("solver response rejected", "response", resp, "error", err)
		return nil, err
	}

	if len(moves) > 0 {
		if err := s.sched.EnqueueMoves(moves, false); err != nil {
			return nil, err
		}
	}
	s.cube.ClearHistory()
	s.logger.Info("solution queued", "moves", FormatMoves(moves))
	return moves, nil
}

// Solver returns the configured solver, or nil.
func (s *Session) Solver() Solver {
	return s.solver
}

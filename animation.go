package cubesim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// AnimationState is one queued quarter turn.
type AnimationState struct {
	Face      Face
	Direction int           // +1 clockwise, -1 counter-clockwise
	Progress  float64       // 0..1
	Duration  time.Duration // time to reach Progress 1
	Complete  bool
	Record    bool // append Token to the history on commit
	Token     Move // history entry for the move this turn completes

	layer []*Cubie // cubies in the turning layer, taken on activation
}

// Angle returns the displayed rotation in degrees.
func (a *AnimationState) Angle() float64 {
	return 90 * a.Progress
}

func (a *AnimationState) advance(dt time.Duration) {
	if a.Complete || dt <= 0 {
		return
	}
	a.Progress = min(1, a.Progress+dt.Seconds()/a.Duration.Seconds())
	if a.Progress >= 1 {
		a.Complete = true
	}
}

// Commit describes one discrete state change made by the scheduler.
type Commit struct {
	Face      Face
	Direction int
	Recorded  bool
	Token     Move // meaningful when Recorded
	Pending   int  // entries still queued after this one
}

// Scheduler turns queued moves into timed transitions. At most one entry is
// active; it is committed to the cube exactly once, when its progress
// reaches 1, and the next entry starts on a later Tick.
//
// A Scheduler is not safe for concurrent use; call it from the frame loop.
type Scheduler struct {
	cube     *Cube
	duration time.Duration
	logger   *slog.Logger

	queue    []*AnimationState
	active   *AnimationState
	onCommit []func(Commit)
}

// NewScheduler creates a scheduler that commits to cube. It panics if cube
// is nil.
func NewScheduler(cube *Cube, opts ...Option) *Scheduler {
	if cube == nil {
		panic("cubesim: NewScheduler called with nil cube")
	}
	cfg := newConfig(opts)
	return &Scheduler{
		cube:     cube,
		duration: cfg.duration,
		logger:   cfg.logger,
	}
}

// OnCommit registers a callback invoked after every commit.
func (s *Scheduler) OnCommit(fn func(Commit)) {
	s.onCommit = append(s.onCommit, fn)
}

// Duration returns the time one quarter turn takes.
func (s *Scheduler) Duration() time.Duration {
	return s.duration
}

// Enqueue queues a quarter turn.
func (s *Scheduler) Enqueue(face Face, direction int, record bool) error {
	if _, err := NewRotationTransform(face, direction); err != nil {
		return err
	}
	s.push(face, direction, record, Move{Face: face, Turn: Turn(direction)})
	return nil
}

// EnqueueMove queues a move. A half turn becomes two quarter turns; only the
// second carries the record flag, with the X2 token.
func (s *Scheduler) EnqueueMove(m Move, record bool) error {
	if err := m.Validate(); err != nil {
		return err
	}
	quarters := m.Quarters()
	for i, q := range quarters {
		last := i == len(quarters)-1
		s.push(q.Face, int(q.Turn), record && last, m)
	}
	return nil
}

// EnqueueMoves queues a sequence. Nothing is queued if any move is invalid.
func (s *Scheduler) EnqueueMoves(moves []Move, record bool) error {
	if len(moves) == 0 {
		s.logger.Warn("ignoring empty move sequence")
		return nil
	}
	for i, m := range moves {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("move %d: %w", i, err)
		}
	}
	for _, m := range moves {
		if err := s.EnqueueMove(m, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) push(face Face, direction int, record bool, token Move) {
	s.queue = append(s.queue, &AnimationState{
		Face:      face,
		Direction: direction,
		Duration:  s.duration,
		Record:    record,
		Token:     token,
	})
}

// IsBusy reports whether an entry is active or queued.
func (s *Scheduler) IsBusy() bool {
	return s.active != nil || len(s.queue) > 0
}

// Active returns the running entry, or nil.
func (s *Scheduler) Active() *AnimationState {
	return s.active
}

// Pending returns the number of queued entries, not counting the active one.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Tick advances the animation by dt. It is a no-op when idle. A
// non-positive dt leaves progress unchanged.
func (s *Scheduler) Tick(dt time.Duration) {
	if s.active == nil {
		if len(s.queue) == 0 {
			return
		}
		s.activate()
	}

	a := s.active
	a.advance(dt)
	s.updateTransforms(a)

	if a.Complete {
		s.commit(a)
	}
}

func (s *Scheduler) activate() {
	a := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	a.layer = s.cube.layer(a.Face)
	s.active = a
	s.logger.Debug("animation started", "face", a.Face, "direction", a.Direction, "pending", len(s.queue))
}

// updateTransforms rotates the snapshotted layer about the cube center and
// clears every other cubie.
func (s *Scheduler) updateTransforms(a *AnimationState) {
	rot := mgl64.HomogRotate3D(mgl64.DegToRad(a.Angle()*float64(a.Direction)), a.Face.TurnAxis())
	s.cube.clearAnimations()
	for _, cb := range a.layer {
		cb.setAnimation(rot)
	}
}

func (s *Scheduler) commit(a *AnimationState) {
	if err := s.cube.Rotate(a.Face, a.Direction, false); err != nil {
		// Entries are validated on enqueue.
		panic(err)
	}
	if a.Record {
		s.cube.history.Append(a.Token)
	}
	s.cube.clearAnimations()
	s.active = nil

	c := Commit{
		Face:      a.Face,
		Direction: a.Direction,
		Recorded:  a.Record,
		Token:     a.Token,
		Pending:   len(s.queue),
	}
	for _, fn := range s.onCommit {
		fn(c)
	}
}

// Clear drops the queue and the active entry without committing, and
// clears all transient transforms.
func (s *Scheduler) Clear() {
	s.queue = nil
	s.active = nil
	s.cube.clearAnimations()
}

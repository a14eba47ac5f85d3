// Package recorder journals the moves of a play session to SQLite.
package recorder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyRecording = errors.New("recorder: session already in progress")
	ErrNotRecording     = errors.New("recorder: no session in progress")
)

// Session writes every committed quarter turn and every newly reached
// phase of a cube session to the journal. The journal is an audit log; it
// is never used to restore a cube.
type Session struct {
	logger *slog.Logger
	now    func() time.Time

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	startTime time.Time
	moveIndex int

	sessionRepo *storage.SessionRepository
	moveRepo    *storage.MoveRepository
	phaseRepo   *storage.PhaseRepository
}

// NewSession creates a recorder over db. A nil logger discards output.
func NewSession(db *storage.DB, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		logger:      logger,
		now:         time.Now,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		moveRepo:    storage.NewMoveRepository(db),
		phaseRepo:   storage.NewPhaseRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// MoveCount returns the number of quarter turns journaled so far.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveIndex
}

// ElapsedMs returns the time since the session started in milliseconds.
func (s *Session) ElapsedMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return s.now().Sub(s.startTime).Milliseconds()
}

// Start begins a new journal session.
func (s *Session) Start(notes, appVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrAlreadyRecording
	}

	id, err := s.sessionRepo.Create(notes, appVersion)
	if err != nil {
		return "", err
	}

	s.sessionID = id
	s.startTime = s.now()
	s.moveIndex = 0
	s.state = StateRecording
	s.logger.Info("journal session started", "session_id", id)
	return id, nil
}

// End finishes the current session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}
	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return err
	}
	s.state = StateEnded
	s.logger.Info("journal session ended", "session_id", s.sessionID, "moves", s.moveIndex)
	return nil
}

// RecordCommit journals one scheduler commit.
func (s *Session) RecordCommit(c cubesim.Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	rec := storage.NewMoveRecord(s.sessionID, s.moveIndex, s.now(), c)
	if _, err := s.moveRepo.Create(rec); err != nil {
		return fmt.Errorf("failed to store move: %w", err)
	}
	s.moveIndex++
	return nil
}

// RecordScramble stores the scramble text on the session.
func (s *Session) RecordScramble(moves []cubesim.Move) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}
	return s.sessionRepo.SetScramble(s.sessionID, cubesim.FormatMoves(moves))
}

// MarkPhase journals a newly reached phase. Session runs phase tracking
// before other commit callbacks, so the mark points at the move index the
// triggering commit is about to be journaled under.
func (s *Session) MarkPhase(p cubesim.Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if _, err := s.phaseRepo.CreatePhaseMark(s.sessionID, s.now(), p.String(), s.moveIndex); err != nil {
		return fmt.Errorf("failed to mark phase: %w", err)
	}
	return nil
}

// Attach journals every commit and phase of cs. Write failures are logged
// and do not interrupt play. It replaces the tracker's phase callback;
// then, when non-nil, is called after each phase is journaled.
func (s *Session) Attach(cs *cubesim.Session, then func(cubesim.Phase)) {
	cs.OnCommit(func(c cubesim.Commit) {
		if err := s.RecordCommit(c); err != nil && !errors.Is(err, ErrNotRecording) {
			s.logger.Warn("journal write failed", "error", err)
		}
	})
	cs.Tracker().SetPhaseCallback(func(p cubesim.Phase) {
		if err := s.MarkPhase(p); err != nil && !errors.Is(err, ErrNotRecording) {
			s.logger.Warn("journal phase mark failed", "phase", p, "error", err)
		}
		if then != nil {
			then(p)
		}
	})
}

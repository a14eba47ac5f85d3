package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout has fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Session is a play session in the journal.
type Session struct {
	SessionID    string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	ScrambleText *string
	Notes        *string
	AppVersion   *string
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create creates a new session and returns its ID.
func (r *SessionRepository) Create(notes, appVersion string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, notes, app_version)
		VALUES (?, ?, ?, ?)
	`, id, startedAt.Format(timeLayout), nullable(notes), nullable(appVersion))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// SetScramble stores the most recent scramble of a session.
func (r *SessionRepository) SetScramble(sessionID, scramble string) error {
	_, err := r.db.Exec("UPDATE sessions SET scramble_text = ? WHERE session_id = ?",
		nullable(scramble), sessionID)
	if err != nil {
		return fmt.Errorf("failed to set scramble: %w", err)
	}
	return nil
}

// End marks a session as finished.
func (r *SessionRepository) End(sessionID string) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM sessions WHERE session_id = ?", sessionID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get session start time: %w", err)
	}

	startedAt, err := time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	durationMs := endedAt.Sub(startedAt).Milliseconds()

	_, err = r.db.Exec(`
		UPDATE sessions
		SET ended_at = ?, duration_ms = ?
		WHERE session_id = ?
	`, endedAt.Format(timeLayout), durationMs, sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

const sessionColumns = `session_id, started_at, ended_at, duration_ms, scramble_text, notes, app_version`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var s Session
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(&s.SessionID, &startedAtStr, &endedAtStr,
		&s.DurationMs, &s.ScrambleText, &s.Notes, &s.AppVersion)
	if err != nil {
		return nil, err
	}

	s.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		s.EndedAt = &t
	}
	return &s, nil
}

// Get retrieves a session by ID. It returns nil, nil when none exists.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// FindByPrefix resolves an abbreviated session ID, as printed by
// "history list". It fails if the prefix is ambiguous.
func (r *SessionRepository) FindByPrefix(prefix string) (*Session, error) {
	rows, err := r.db.Query(`SELECT session_id FROM sessions WHERE session_id LIKE ? || '%' LIMIT 2`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	switch len(ids) {
	case 0:
		return nil, nil
	case 1:
		return r.Get(ids[0])
	}
	return nil, fmt.Errorf("session prefix %q is ambiguous", prefix)
}

// GetLast retrieves the most recent session.
func (r *SessionRepository) GetLast() (*Session, error) {
	sessions, err := r.List(1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// List retrieves recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

// Delete deletes a session and its moves and phase marks.
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesim"
)

// MoveRecord is one committed quarter turn in the journal. Notation holds
// the recorded history token for recorded commits (for example "R2" on the
// second half of a half turn) and the quarter turn itself otherwise.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	TsMs      int64
	Face      string
	Direction int
	Notation  string
	Recorded  bool
}

// NewMoveRecord builds the journal row for a scheduler commit.
func NewMoveRecord(sessionID string, index int, ts time.Time, c cubesim.Commit) MoveRecord {
	notation := cubesim.Move{Face: c.Face, Turn: cubesim.Turn(c.Direction)}.Notation()
	if c.Recorded {
		notation = c.Token.Notation()
	}
	return MoveRecord{
		SessionID: sessionID,
		MoveIndex: index,
		TsMs:      ts.UnixMilli(),
		Face:      string(c.Face),
		Direction: c.Direction,
		Notation:  notation,
		Recorded:  c.Recorded,
	}
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, move_index, ts_ms, face, direction, notation, recorded)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// Create inserts a move and returns its ID.
func (r *MoveRepository) Create(m MoveRecord) (int64, error) {
	result, err := r.db.Exec(insertMove,
		m.SessionID, m.MoveIndex, m.TsMs, m.Face, m.Direction, m.Notation, m.Recorded)
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch inserts several moves in a single transaction.
func (r *MoveRepository) CreateBatch(moves []MoveRecord) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, m := range moves {
			_, err := tx.Exec(insertMove,
				m.SessionID, m.MoveIndex, m.TsMs, m.Face, m.Direction, m.Notation, m.Recorded)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", m.MoveIndex, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves of a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, face, direction, notation, recorded
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.TsMs,
			&m.Face, &m.Direction, &m.Notation, &m.Recorded)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// GetNextIndex returns the next move index for a session.
func (r *MoveRepository) GetNextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(move_index), -1) FROM moves WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of moves in a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// RecordedMoves returns the history tokens among records, in order.
// Records with unparseable notation are skipped.
func RecordedMoves(records []MoveRecord) []cubesim.Move {
	moves := make([]cubesim.Move, 0, len(records))
	for _, r := range records {
		if !r.Recorded {
			continue
		}
		m, err := cubesim.ParseMove(r.Notation)
		if err != nil {
			continue
		}
		moves = append(moves, m)
	}
	return moves
}

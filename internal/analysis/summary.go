// Package analysis derives statistics from journaled play sessions.
package analysis

import (
	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// TimedMove is a move with its journal timestamp.
type TimedMove struct {
	Move cubesim.Move
	TsMs int64
}

// FromRecords converts journal rows into quarter turns, one per row.
func FromRecords(records []storage.MoveRecord) []TimedMove {
	moves := make([]TimedMove, len(records))
	for i, r := range records {
		moves[i] = TimedMove{
			Move: cubesim.Move{Face: cubesim.Face(r.Face), Turn: cubesim.Turn(r.Direction)},
			TsMs: r.TsMs,
		}
	}
	return moves
}

// SessionSummary contains statistics for a single journal session.
type SessionSummary struct {
	SessionID          string           `json:"session_id"`
	StartedAt          string           `json:"started_at"`
	EndedAt            string           `json:"ended_at,omitempty"`
	DurationMs         int64            `json:"duration_ms"`
	QuarterTurns       int              `json:"quarter_turns"`
	RecordedMoves      int              `json:"recorded_moves"`
	AutomaticTurns     int              `json:"automatic_turns"`
	SimplifiedMoves    int              `json:"simplified_moves"`
	Cancellations      int              `json:"cancellations"`
	TPSOverall         float64          `json:"tps_overall"`
	LongestPauseMs     int64            `json:"longest_pause_ms"`
	PauseCountOver1500 int              `json:"pause_count_over_1500ms"`
	AvgMoveDurationMs  float64          `json:"avg_move_duration_ms"`
	Phases             []PhaseStats     `json:"phases,omitempty"`
	Profile            *MovementProfile `json:"profile"`
}

// PhaseStats describes when a phase was first reached.
type PhaseStats struct {
	PhaseKey    string `json:"phase_key"`
	DisplayName string `json:"display_name"`
	ReachedAtMs int64  `json:"reached_at_ms"`
	MoveIndex   int    `json:"move_index"`
}

// PauseInfo represents a pause between moves.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// PauseThresholdMs is the gap counted as a pause in summaries.
const PauseThresholdMs = 1500

// Summarize builds the summary of a journal session. Timing statistics
// cover every journaled quarter turn; cancellations and simplification
// cover only the recorded history tokens.
func Summarize(s *storage.Session, records []storage.MoveRecord, marks []storage.PhaseMark) *SessionSummary {
	timed := FromRecords(records)
	recorded := storage.RecordedMoves(records)

	sum := &SessionSummary{
		SessionID:          s.SessionID,
		StartedAt:          s.StartedAt.Format("2006-01-02 15:04:05"),
		QuarterTurns:       len(records),
		RecordedMoves:      len(recorded),
		SimplifiedMoves:    len(Simplify(recorded)),
		Cancellations:      CountCancellations(recorded),
		LongestPauseMs:     FindLongestPause(timed),
		PauseCountOver1500: CountPausesOver(timed, PauseThresholdMs),
		AvgMoveDurationMs:  CalculateAvgMoveDuration(timed),
		Profile:            AnalyzeMovementProfile(recorded),
	}
	for _, r := range records {
		if !r.Recorded {
			sum.AutomaticTurns++
		}
	}
	if s.EndedAt != nil {
		sum.EndedAt = s.EndedAt.Format("2006-01-02 15:04:05")
	}
	if s.DurationMs != nil {
		sum.DurationMs = *s.DurationMs
	}
	if len(timed) > 1 {
		sum.TPSOverall = CalculateTPS(timed, timed[len(timed)-1].TsMs-timed[0].TsMs)
	}

	start := s.StartedAt.UnixMilli()
	for _, m := range marks {
		ps := PhaseStats{
			PhaseKey:    m.PhaseKey,
			DisplayName: m.PhaseKey,
			ReachedAtMs: m.TsMs - start,
			MoveIndex:   m.MoveIndex,
		}
		if p, ok := cubesim.ParsePhase(m.PhaseKey); ok {
			ps.DisplayName = p.DisplayName()
		}
		sum.Phases = append(sum.Phases, ps)
	}

	return sum
}

// AnalyzePauses finds all significant pauses in a move sequence.
func AnalyzePauses(moves []TimedMove, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: i - 1,
				DurationMs:     gap,
				TsMs:           moves[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second for a move sequence.
func CalculateTPS(moves []TimedMove, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(moves)) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the average time between moves.
func CalculateAvgMoveDuration(moves []TimedMove) float64 {
	if len(moves) < 2 {
		return 0
	}

	totalGap := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(totalGap) / float64(len(moves)-1)
}

// FindLongestPause finds the longest pause in a move sequence.
func FindLongestPause(moves []TimedMove) int64 {
	var longest int64

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}

	return longest
}

// CountPausesOver counts pauses over a threshold.
func CountPausesOver(moves []TimedMove, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap > thresholdMs {
			count++
		}
	}
	return count
}

// quarters returns a turn as clockwise quarter turns in 0..3.
func quarters(t cubesim.Turn) int {
	switch t {
	case cubesim.CW:
		return 1
	case cubesim.Double:
		return 2
	case cubesim.CCW:
		return 3
	}
	return 0
}

func turnOf(q int) (cubesim.Turn, bool) {
	switch q % 4 {
	case 1:
		return cubesim.CW, true
	case 2:
		return cubesim.Double, true
	case 3:
		return cubesim.CCW, true
	}
	return 0, false
}

// Simplify merges consecutive turns of the same face: R R becomes R2 and
// R R' disappears. Merges cascade, so R U U' R' simplifies to nothing.
func Simplify(moves []cubesim.Move) []cubesim.Move {
	out := make([]cubesim.Move, 0, len(moves))
	for _, m := range moves {
		if n := len(out); n > 0 && out[n-1].Face == m.Face {
			t, ok := turnOf(quarters(out[n-1].Turn) + quarters(m.Turn))
			if ok {
				out[n-1].Turn = t
			} else {
				out = out[:n-1]
			}
			continue
		}
		out = append(out, m)
	}
	return out
}

// CountCancellations counts adjacent pairs of a move and its inverse.
func CountCancellations(moves []cubesim.Move) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		if moves[i] == moves[i-1].Inverse() {
			count++
			i++
		}
	}
	return count
}

// MovementProfile analyzes the movement patterns in a session.
type MovementProfile struct {
	FaceCounts    map[cubesim.Face]int `json:"face_counts"`
	TurnCounts    map[cubesim.Turn]int `json:"turn_counts"`
	MostUsedFace  cubesim.Face         `json:"most_used_face"`
	MostUsedTurn  cubesim.Turn         `json:"most_used_turn"`
	FaceSequences map[string]int       `json:"face_sequences"` // e.g., "RU" -> count
}

// AnalyzeMovementProfile analyzes which faces and turns are most used.
// Ties go to the face or turn that comes first in notation order.
func AnalyzeMovementProfile(moves []cubesim.Move) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts:    make(map[cubesim.Face]int),
		TurnCounts:    make(map[cubesim.Turn]int),
		FaceSequences: make(map[string]int),
	}

	for i, m := range moves {
		profile.FaceCounts[m.Face]++
		profile.TurnCounts[m.Turn]++

		if i > 0 {
			seq := string(moves[i-1].Face) + string(m.Face)
			profile.FaceSequences[seq]++
		}
	}

	maxFaceCount := 0
	for _, face := range cubesim.Faces {
		if count := profile.FaceCounts[face]; count > maxFaceCount {
			maxFaceCount = count
			profile.MostUsedFace = face
		}
	}

	maxTurnCount := 0
	for _, turn := range []cubesim.Turn{cubesim.CW, cubesim.CCW, cubesim.Double} {
		if count := profile.TurnCounts[turn]; count > maxTurnCount {
			maxTurnCount = count
			profile.MostUsedTurn = turn
		}
	}

	return profile
}

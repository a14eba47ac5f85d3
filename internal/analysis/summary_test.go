package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

func mustParse(t *testing.T, s string) []cubesim.Move {
	t.Helper()
	moves, err := cubesim.ParseMoves(s)
	require.NoError(t, err)
	return moves
}

func timed(moves []cubesim.Move, gapsMs ...int64) []TimedMove {
	out := make([]TimedMove, len(moves))
	var ts int64
	for i, m := range moves {
		if i > 0 && i-1 < len(gapsMs) {
			ts += gapsMs[i-1]
		}
		out[i] = TimedMove{Move: m, TsMs: ts}
	}
	return out
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"R R", "R2"},
		{"R R'", ""},
		{"R U U' R'", ""},
		{"R2 R", "R'"},
		{"R R R", "R'"},
		{"R L R", "R L R"},
		{"F U2 U2 F2", "F'"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Simplify(mustParse(t, tt.in))
			assert.Equal(t, tt.want, cubesim.FormatMoves(got))
		})
	}
}

func TestCountCancellations(t *testing.T) {
	assert.Equal(t, 0, CountCancellations(mustParse(t, "R U R' U'")))
	assert.Equal(t, 2, CountCancellations(mustParse(t, "R R' U2 U2")))
	assert.Equal(t, 1, CountCancellations(mustParse(t, "R R' R")))
}

func TestPausesAndTPS(t *testing.T) {
	moves := timed(mustParse(t, "R U R' U'"), 500, 2000, 500)

	assert.Equal(t, int64(2000), FindLongestPause(moves))
	assert.Equal(t, 1, CountPausesOver(moves, 1500))
	assert.InDelta(t, 1000.0, CalculateAvgMoveDuration(moves), 1e-9)
	assert.InDelta(t, 4.0/3.0, CalculateTPS(moves, 3000), 1e-9)
	assert.Zero(t, CalculateTPS(moves, 0))

	pauses := AnalyzePauses(moves, 1500)
	require.Len(t, pauses, 1)
	assert.Equal(t, 1, pauses[0].AfterMoveIndex)
}

func TestMovementProfile(t *testing.T) {
	p := AnalyzeMovementProfile(mustParse(t, "R U R' U' R2"))
	assert.Equal(t, 3, p.FaceCounts[cubesim.FaceR])
	assert.Equal(t, cubesim.FaceR, p.MostUsedFace)
	assert.Equal(t, cubesim.CW, p.MostUsedTurn)
	assert.Equal(t, 2, p.FaceSequences["RU"])
}

func TestSummarize(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dur := int64(4000)
	s := &storage.Session{SessionID: "abc", StartedAt: start, DurationMs: &dur}

	commits := []cubesim.Commit{
		{Face: cubesim.FaceR, Direction: 1, Recorded: true, Token: cubesim.R},
		{Face: cubesim.FaceR, Direction: -1, Recorded: true, Token: cubesim.RPrime},
		{Face: cubesim.FaceU, Direction: 1},
		{Face: cubesim.FaceU, Direction: 1, Recorded: true, Token: cubesim.U2},
	}
	var records []storage.MoveRecord
	for i, c := range commits {
		records = append(records, storage.NewMoveRecord("abc", i, start.Add(time.Duration(i+1)*time.Second), c))
	}
	marks := []storage.PhaseMark{{SessionID: "abc", TsMs: start.Add(2 * time.Second).UnixMilli(), PhaseKey: "solved", MoveIndex: 1}}

	sum := Summarize(s, records, marks)
	assert.Equal(t, 4, sum.QuarterTurns)
	assert.Equal(t, 3, sum.RecordedMoves)
	assert.Equal(t, 1, sum.AutomaticTurns)
	assert.Equal(t, 1, sum.Cancellations)
	assert.Equal(t, 1, sum.SimplifiedMoves)
	assert.Equal(t, int64(4000), sum.DurationMs)
	assert.InDelta(t, 4.0/3.0, sum.TPSOverall, 1e-9)
	require.Len(t, sum.Phases, 1)
	assert.Equal(t, "Solved", sum.Phases[0].DisplayName)
	assert.Equal(t, int64(2000), sum.Phases[0].ReachedAtMs)
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

type env struct {
	dir    string
	config string
	db     string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	return &env{
		dir:    dir,
		config: filepath.Join(dir, "config.yaml"),
		db:     filepath.Join(dir, "journal.db"),
	}
}

func (e *env) writeConfig(t *testing.T, edit func(*config.Config)) {
	t.Helper()
	cfg := config.Default()
	edit(cfg)
	require.NoError(t, config.Save(e.config, cfg))
}

// resetFlags restores flag variables that persist between Execute calls.
func resetFlags() {
	configPath, dbPath, verbose = "", "", false
	scrambleLength, scrambleSeed = 0, 0
	solveSolverPath = ""
	historyLimit, historyLast, historyJSON, historyNGrams = 20, false, false, false
}

func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--db", e.db}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := newEnv(t).run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cubesim "+version+"\n", out)
}

func TestMissingConfigIsCreated(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "facelets")
	require.NoError(t, err)

	_, err = os.Stat(e.config)
	assert.NoError(t, err)
}

func TestFacelets(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "facelets")
	require.NoError(t, err)
	assert.Contains(t, out, "Facelets: UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB")
	assert.Contains(t, out, "Phase:    Solved")

	out, err = e.run(t, "facelets", "R", "U", "R'", "U'")
	require.NoError(t, err)
	assert.Contains(t, out, "Moves:    R U R' U'")
	assert.NotContains(t, out, "Phase:    Solved")

	_, err = e.run(t, "facelets", "R", "X")
	assert.ErrorIs(t, err, cubesim.ErrInvalidNotation)
}

func TestScramble(t *testing.T) {
	e := newEnv(t)

	first, err := e.run(t, "scramble", "-n", "7", "--seed", "42")
	require.NoError(t, err)
	second, err := e.run(t, "scramble", "-n", "7", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	line := strings.SplitN(first, "\n", 2)[0]
	require.True(t, strings.HasPrefix(line, "Scramble: "))
	moves, err := cubesim.ParseMoves(strings.TrimPrefix(line, "Scramble: "))
	require.NoError(t, err)
	assert.Len(t, moves, 7)

	_, err = e.run(t, "scramble", "-n", "-1")
	assert.ErrorIs(t, err, cubesim.ErrInvalidCount)
}

func TestScrambleUsesConfigLength(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, func(c *config.Config) { c.Scramble.Length = 4 })

	out, err := e.run(t, "scramble")
	require.NoError(t, err)
	line := strings.SplitN(out, "\n", 2)[0]
	assert.Len(t, strings.Fields(strings.TrimPrefix(line, "Scramble: ")), 4)
}

func TestSolve(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skipf("sh not available: %v", err)
	}
	e := newEnv(t)
	e.writeConfig(t, func(c *config.Config) {
		c.Solver.Command = sh
		c.Solver.Args = []string{"-c", "echo 'R1 (1f)'", "sh", "{facelets}"}
	})

	out, err := e.run(t, "solve", "R'")
	require.NoError(t, err)
	assert.Contains(t, out, "Solution: R (1 moves")
	assert.Contains(t, out, "Verified: cube solved")

	_, err = e.run(t, "solve", "U")
	assert.ErrorContains(t, err, "does not solve the cube")
}

func TestSolveWithoutSolver(t *testing.T) {
	_, err := newEnv(t).run(t, "solve", "R")
	assert.ErrorIs(t, err, cubesim.ErrNoSolver)
}

// journal records one session: scramble "R U", then R and R' by hand.
func (e *env) journal(t *testing.T) string {
	t.Helper()
	db, err := storage.Open(e.db)
	require.NoError(t, err)
	defer db.Close()

	rec := recorder.NewSession(db, nil)
	id, err := rec.Start("", version)
	require.NoError(t, err)
	require.NoError(t, rec.RecordScramble([]cubesim.Move{cubesim.R, cubesim.U}))
	for _, m := range []cubesim.Move{cubesim.R, cubesim.RPrime} {
		require.NoError(t, rec.RecordCommit(cubesim.Commit{Face: m.Face, Direction: int(m.Turn), Recorded: true, Token: m}))
	}
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, rec.End())
	return id
}

func TestHistoryListAndShow(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded")

	id := e.journal(t)

	out, err = e.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id[:8])
	assert.Contains(t, out, "R U")

	out, err = e.run(t, "history", "show", id[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Session "+id)
	assert.Contains(t, out, "Scramble: R U")
	assert.Contains(t, out, "Moves:          R R'")
	assert.Contains(t, out, "Recorded:       2 (0 after simplifying, 1 cancellations)")

	out, err = e.run(t, "history", "show", "--last", "--json")
	require.NoError(t, err)
	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, id, view["session_id"])
	assert.EqualValues(t, 2, view["quarter_turns"])

	_, err = e.run(t, "history", "show")
	assert.Error(t, err)
	_, err = e.run(t, "history", "show", "zzzz")
	assert.ErrorContains(t, err, "session not found")
}

func TestHistoryDelete(t *testing.T) {
	e := newEnv(t)
	id := e.journal(t)

	out, err := e.run(t, "history", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted session "+id)

	out, err = e.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded")
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/facelet"
	"github.com/SeamusWaldron/cubesim/internal/metrics"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
)

var (
	playMetricsAddr string
	playNoJournal   bool
	playNet         bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube in the terminal",
	Long: `Start the interactive cube.

Keyboard:
  f b u d l r      - Turn a face clockwise
  F B U D L R      - Turn a face counter-clockwise
  s                - Animated scramble
  S                - Instant scramble
  c                - Reset to solved
  backspace        - Undo every recorded move
  enter            - Solve with the configured solver
  arrows           - Orbit the camera
  n                - Toggle the unfolded net
  q / Esc          - Quit

Mouse:
  left click       - Turn the face under the pointer clockwise
  right click      - Turn it counter-clockwise
  left drag        - Orbit the camera`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides the config)")
	playCmd.Flags().BoolVar(&playNoJournal, "no-journal", false, "Do not journal this session")
	playCmd.Flags().BoolVar(&playNet, "net", false, "Show the unfolded net next to the cube")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	frameInterval = 16 * time.Millisecond
	maxFrameStep  = 100 * time.Millisecond
	headerLines   = 2
	footerLines   = 8
	orbitStep     = 15.0 // arrow keys, in drag units
	recentMoves   = 20
)

// Messages
type frameMsg time.Time
type solutionMsg struct {
	gen  int
	resp string
	err  error
}

type playModel struct {
	ctx     context.Context
	session *cubesim.Session
	cam     *cubesim.OrbitCamera
	rec     *recorder.Session
	metrics *metrics.Metrics
	logger  *slog.Logger

	lastFrame time.Time
	solving   bool
	solveGen  int // bumped by reset; stale answers are dropped
	showNet   bool

	// Mouse
	pressed    bool
	pressX     int
	pressY     int
	lastX      int
	lastY      int
	dragged    bool
	pressRight bool

	// UI
	width    int
	height   int
	status   string
	err      error
	quitting bool
}

func newPlayModel(ctx context.Context, session *cubesim.Session, cam *cubesim.OrbitCamera, rec *recorder.Session, m *metrics.Metrics, logger *slog.Logger) *playModel {
	return &playModel{
		ctx:     ctx,
		session: session,
		cam:     cam,
		rec:     rec,
		metrics: m,
		logger:  logger,
		showNet: playNet,
		width:   80,
		height:  40,
		status:  "Ready",
	}
}

func (m *playModel) Init() tea.Cmd {
	m.lastFrame = time.Now()
	m.resize()
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// cubeArea returns the terminal cells available for the cube.
func (m *playModel) cubeArea() (cols, rows int) {
	cols = m.width
	if m.showNet {
		cols -= 26
	}
	rows = m.height - headerLines - footerLines
	return max(cols, 1), max(rows, 1)
}

func (m *playModel) resize() {
	cols, rows := m.cubeArea()
	m.cam.SetViewport(0, 0, cols, rows*cellHeight)
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case frameMsg:
		now := time.Time(msg)
		dt := min(now.Sub(m.lastFrame), maxFrameStep)
		m.lastFrame = now
		m.session.Tick(dt)
		return m, m.frameCmd()

	case solutionMsg:
		if msg.gen != m.solveGen {
			m.logger.Debug("dropping stale solver answer", "response", msg.resp)
			return m, nil
		}
		m.solving = false
		if msg.err != nil {
			m.setErr(fmt.Errorf("solver failed: %w", msg.err))
			return m, nil
		}
		moves, err := m.session.ApplySolution(msg.resp)
		if err != nil {
			m.setErr(err)
			return m, nil
		}
		m.status = fmt.Sprintf("Solving in %d moves: %s", len(moves), cubesim.FormatMoves(moves))
	}

	return m, nil
}

func (m *playModel) setErr(err error) {
	m.err = err
	m.logger.Warn("action failed", "error", err)
}

func (m *playModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	m.err = nil

	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return tea.Quit
	case "left":
		m.orbit(-orbitStep, 0)
		return nil
	case "right":
		m.orbit(orbitStep, 0)
		return nil
	case "up":
		m.orbit(0, orbitStep)
		return nil
	case "down":
		m.orbit(0, -orbitStep)
		return nil
	case "n":
		m.showNet = !m.showNet
		m.resize()
		return nil
	case "c":
		m.reset()
		return nil
	}

	if m.solving {
		m.setErr(errors.New("waiting for the solver"))
		return nil
	}

	switch key {
	case "f", "b", "u", "d", "l", "r", "F", "B", "U", "D", "L", "R":
		face := cubesim.Face(strings.ToUpper(key))
		dir := 1
		if key == string(face) {
			dir = -1
		}
		if err := m.session.Turn(face, dir); err != nil {
			m.setErr(err)
		}

	case "s":
		moves, err := m.session.Scramble()
		m.afterScramble(moves, err)

	case "S":
		moves, err := m.session.QuickScramble()
		m.afterScramble(moves, err)

	case "backspace":
		moves, err := m.session.UndoAll()
		if err != nil {
			m.setErr(err)
			break
		}
		m.status = fmt.Sprintf("Undoing %d moves", len(moves))

	case "enter":
		return m.solveCmd()
	}
	return nil
}

// reset is allowed at any time, including while the solver runs.
func (m *playModel) reset() {
	m.session.Reset()
	if m.solving {
		m.solving = false
		m.solveGen++
	}
	m.status = "Reset to solved"
}

func (m *playModel) afterScramble(moves []cubesim.Move, err error) {
	if err != nil {
		m.setErr(err)
		return
	}
	m.status = "Scramble: " + cubesim.FormatMoves(moves)
	if m.rec != nil {
		if err := m.rec.RecordScramble(moves); err != nil && !errors.Is(err, recorder.ErrNotRecording) {
			m.logger.Warn("journal scramble failed", "error", err)
		}
	}
}

// solveCmd runs the solver off the frame loop. Turns are refused until the
// answer arrives so it still matches the cube.
func (m *playModel) solveCmd() tea.Cmd {
	if m.session.Busy() {
		m.setErr(cubesim.ErrBusy)
		return nil
	}
	s := m.session.Solver()
	if s == nil {
		m.setErr(cubesim.ErrNoSolver)
		return nil
	}

	m.solving = true
	m.status = "Asking the solver..."
	facelets := m.session.Cube().Facelets()
	ctx, gen := m.ctx, m.solveGen
	return func() tea.Msg {
		resp, err := s.Solve(ctx, facelets)
		return solutionMsg{gen: gen, resp: resp, err: err}
	}
}

func (m *playModel) orbit(dx, dy float64) {
	m.cam.Orbit(dx, dy)
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonRight {
			return
		}
		m.pressed = true
		m.pressRight = msg.Button == tea.MouseButtonRight
		m.pressX, m.pressY = msg.X, msg.Y
		m.lastX, m.lastY = msg.X, msg.Y
		m.dragged = false

	case tea.MouseActionMotion:
		if !m.pressed || m.pressRight {
			return
		}
		dx, dy := msg.X-m.lastX, msg.Y-m.lastY
		if dx == 0 && dy == 0 {
			return
		}
		m.dragged = true
		m.lastX, m.lastY = msg.X, msg.Y
		// Cells are wider than tall; scale so both axes feel alike.
		m.orbit(float64(dx)*4, float64(dy)*8)

	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		if m.dragged {
			return
		}
		m.click(m.pressX, m.pressY, m.pressRight)
	}
}

// click turns the face under a terminal cell.
func (m *playModel) click(col, row int, right bool) {
	if m.solving {
		m.setErr(errors.New("waiting for the solver"))
		return
	}
	row -= headerLines
	if cols, rows := m.cubeArea(); col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}

	button := cubesim.ButtonLeft
	if right {
		button = cubesim.ButtonRight
	}
	x, y := cellPoint(col, row)
	face, ok, err := m.session.Click(x, y, button)
	if err != nil {
		m.setErr(err)
		return
	}
	if m.metrics != nil {
		m.metrics.ObservePick(ok)
	}
	if ok {
		m.status = "Picked " + string(face)
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	cube := m.session.Cube()

	b.WriteString(titleStyle.Render("cubesim"))
	if m.rec != nil && m.rec.State() == recorder.StateRecording {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  journal %s", m.rec.SessionID()[:8])))
	}
	b.WriteString("\n\n")

	cols, rows := m.cubeArea()
	view := renderCube(cube, m.session.Picker(), cols, rows)
	if m.showNet {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, "  ", renderNet(cube))
	}
	b.WriteString(view)
	b.WriteString("\n")

	tracker := m.session.Tracker()
	state := phaseStyle.Render(tracker.CurrentPhase().DisplayName())
	if cube.IsSolved() {
		state = phaseStyle.Render("SOLVED")
	}
	b.WriteString(fmt.Sprintf("State: %s  Best: %s\n", state, statusStyle.Render(tracker.HighestPhase().DisplayName())))

	b.WriteString(progressLine(cube.Grid().GetProgress()))
	b.WriteString("\n")

	history := cube.History().Moves()
	b.WriteString(fmt.Sprintf("History: %d moves", len(history)))
	if len(history) > 0 {
		start := max(0, len(history)-recentMoves)
		prefix := " "
		if start > 0 {
			prefix = " ... "
		}
		b.WriteString(prefix + moveStyle.Render(cubesim.FormatMoves(history[start:])))
	}
	b.WriteString("\n")

	if a := m.session.Scheduler().Active(); a != nil {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Turning %s %+d  %3.0f%%  (%d queued)",
			a.Face, a.Direction, a.Progress*100, m.session.Scheduler().Pending())))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("fbudlr=CW  FBUDLR=CCW  s/S=scramble  c=reset  bksp=undo  enter=solve  arrows/drag=orbit  n=net  q=quit"))
	b.WriteString("\n")

	return b.String()
}

// progressLine marks each layer-by-layer step as done or pending.
func progressLine(p facelet.Progress) string {
	steps := []struct {
		name string
		done bool
	}{
		{"cross", p.TopCross},
		{"layer 1", p.TopLayer},
		{"layer 2", p.MiddleLayer},
		{"last cross", p.BottomCross},
		{"corners", p.CornersPositioned},
		{"oriented", p.CornersOriented},
	}
	parts := make([]string, len(steps))
	for i, st := range steps {
		mark := "-"
		if st.done {
			mark = "+"
		}
		parts[i] = mark + st.name
	}
	return "Progress: " + statusStyle.Render(strings.Join(parts, "  "))
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := coreOptions(cfg, logger.Logger)

	var mtr *metrics.Metrics
	addr := cfg.Metrics.Addr
	if playMetricsAddr != "" {
		addr = playMetricsAddr
	}
	if addr != "" {
		mtr = metrics.New()
		if s := newSolver(cfg, logger.Logger); s != nil {
			opts = append(opts, cubesim.WithSolver(mtr.Solver(s)))
		}
		go func() {
			if err := mtr.Serve(ctx, addr, logger.Logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	cam := cubesim.NewOrbitCamera(80, 40)
	cam.Distance = cfg.Camera.Distance
	cam.Pitch = cfg.Camera.Pitch
	cam.Yaw = cfg.Camera.Yaw
	cam.FOV = cfg.Camera.FOV

	session := cubesim.NewSession(cubesim.NewCube(opts...), cam, opts...)
	if mtr != nil {
		session.OnCommit(mtr.ObserveCommit)
	}

	var rec *recorder.Session
	if cfg.Journal.Enabled && !playNoJournal {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		rec = recorder.NewSession(db, logger.Logger)
		if _, err := rec.Start("", version); err != nil {
			return err
		}
		defer func() {
			if err := rec.End(); err != nil {
				logger.Warn("failed to end journal session", "error", err)
			}
		}()
		rec.Attach(session, func(p cubesim.Phase) {
			logger.Info("phase reached", "phase", p)
		})
	}

	model := newPlayModel(ctx, session, cam, rec, mtr, logger.Logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if rec != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Journal session %s: %d quarter turns\n", rec.SessionID(), rec.MoveCount())
	}
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/analysis"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	historyLimit  int
	historyLast   bool
	historyJSON   bool
	historyNGrams bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review journaled play sessions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session summary",
	Long: `Show the moves, phases and timing statistics of one session.
The session ID may be abbreviated to any unique prefix.

Examples:
  cubesim history show --last
  cubesim history show 3f2a --ngrams
  cubesim history show 3f2a --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum sessions to list")

	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Show the most recent session")
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the summary as JSON")
	historyShowCmd.Flags().BoolVar(&historyNGrams, "ngrams", false, "Include repeated move sequences")
}

func withDB(fn func(db *storage.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		sessionRepo := storage.NewSessionRepository(db)
		moveRepo := storage.NewMoveRepository(db)

		sessions, err := sessionRepo.List(historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions recorded")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-19s  %9s  %6s  %s\n", "ID", "STARTED", "DURATION", "TURNS", "SCRAMBLE")
		for _, s := range sessions {
			count, err := moveRepo.Count(s.SessionID)
			if err != nil {
				return fmt.Errorf("failed to count moves: %w", err)
			}
			duration := "active"
			if s.DurationMs != nil {
				duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
			}
			scramble := "-"
			if s.ScrambleText != nil && *s.ScrambleText != "" {
				scramble = *s.ScrambleText
			}
			fmt.Fprintf(out, "%-8s  %-19s  %9s  %6d  %s\n",
				s.SessionID[:8], s.StartedAt.Local().Format("2006-01-02 15:04:05"), duration, count, scramble)
		}
		return nil
	})
}

// sessionSummary pairs a summary with its session's moves for display.
type sessionSummary struct {
	*analysis.SessionSummary
	Scramble string                `json:"scramble,omitempty"`
	Moves    string                `json:"moves"`
	NGrams   *analysis.NGramReport `json:"ngrams,omitempty"`
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !historyLast {
		return fmt.Errorf("specify a session ID or --last")
	}

	return withDB(func(db *storage.DB) error {
		sessionRepo := storage.NewSessionRepository(db)

		var s *storage.Session
		var err error
		if historyLast {
			s, err = sessionRepo.GetLast()
		} else {
			s, err = sessionRepo.FindByPrefix(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}
		if s == nil {
			return fmt.Errorf("session not found")
		}

		records, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
		if err != nil {
			return fmt.Errorf("failed to get moves: %w", err)
		}
		marks, err := storage.NewPhaseRepository(db).GetPhaseMarks(s.SessionID)
		if err != nil {
			return fmt.Errorf("failed to get phase marks: %w", err)
		}

		view := sessionSummary{
			SessionSummary: analysis.Summarize(s, records, marks),
			Moves:          cubesim.FormatMoves(storage.RecordedMoves(records)),
		}
		if s.ScrambleText != nil {
			view.Scramble = *s.ScrambleText
		}
		if historyNGrams {
			view.NGrams = analysis.MineNGrams(analysis.FromRecords(records), 2, 6, 5)
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		}
		printSummary(out, view)
		return nil
	})
}

func printSummary(out io.Writer, v sessionSummary) {
	fmt.Fprintf(out, "Session %s\n", v.SessionID)
	fmt.Fprintln(out, strings.Repeat("=", len(v.SessionID)+8))
	fmt.Fprintf(out, "Started:  %s\n", v.StartedAt)
	if v.EndedAt != "" {
		fmt.Fprintf(out, "Ended:    %s (%s)\n", v.EndedAt, formatDuration(time.Duration(v.DurationMs)*time.Millisecond))
	}
	if v.Scramble != "" {
		fmt.Fprintf(out, "Scramble: %s\n", v.Scramble)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Moves:          %s\n", v.Moves)
	fmt.Fprintf(out, "Recorded:       %d (%d after simplifying, %d cancellations)\n",
		v.RecordedMoves, v.SimplifiedMoves, v.Cancellations)
	fmt.Fprintf(out, "Quarter turns:  %d (%d automatic)\n", v.QuarterTurns, v.AutomaticTurns)
	fmt.Fprintf(out, "TPS:            %.2f\n", v.TPSOverall)
	fmt.Fprintf(out, "Avg move:       %.0fms\n", v.AvgMoveDurationMs)
	fmt.Fprintf(out, "Longest pause:  %dms (%d over %dms)\n", v.LongestPauseMs, v.PauseCountOver1500, analysis.PauseThresholdMs)
	if v.Profile != nil && v.RecordedMoves > 0 {
		fmt.Fprintf(out, "Favorite face:  %s (%d moves)\n", v.Profile.MostUsedFace, v.Profile.FaceCounts[v.Profile.MostUsedFace])
	}

	if len(v.Phases) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Phases:")
		for _, p := range v.Phases {
			fmt.Fprintf(out, "  %-26s  move %-4d  %s\n", p.DisplayName, p.MoveIndex,
				formatDuration(time.Duration(p.ReachedAtMs)*time.Millisecond))
		}
	}

	if v.NGrams != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Repeated sequences:")
		found := false
		for n := 2; n <= 6; n++ {
			for _, g := range v.NGrams.TopNGrams[n] {
				if g.Count < 2 {
					continue
				}
				found = true
				fmt.Fprintf(out, "  %-24s  x%d\n", strings.Join(g.Sequence, " "), g.Count)
			}
		}
		if !found {
			fmt.Fprintln(out, "  none")
		}
	}
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		sessionRepo := storage.NewSessionRepository(db)
		s, err := sessionRepo.FindByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}
		if s == nil {
			return fmt.Errorf("session not found")
		}
		if err := sessionRepo.Delete(s.SessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", s.SessionID)
		return nil
	})
}

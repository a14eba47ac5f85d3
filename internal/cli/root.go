// Package cli implements the cubesim command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/logging"
	"github.com/SeamusWaldron/cubesim/internal/solver"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesim",
	Short: "Interactive 3x3x3 cube simulator",
	Long: `cubesim - an interactive Rubik's cube simulator for the terminal.

Turn faces with the keyboard or mouse, watch each quarter turn animate,
scramble, undo everything, or hand the cube to an external two-phase solver.
Every committed move is journaled so sessions can be reviewed later.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cubesim %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubesim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Journal database path (overrides the config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. quiet keeps stderr clean for the TUI;
// records then go to the configured log file only.
func newLogger(cfg *config.Config, quiet bool) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(logging.Config{
		Level:   level,
		File:    cfg.Log.File,
		Quiet:   quiet,
		Service: "cubesim",
	})
}

func openDB(cfg *config.Config) (*storage.DB, error) {
	path := dbPath
	if path == "" {
		p, err := cfg.JournalPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// newSolver returns the configured external solver, or nil if none is set.
func newSolver(cfg *config.Config, logger *slog.Logger) cubesim.Solver {
	if cfg.Solver.Command == "" {
		return nil
	}
	return &solver.Command{
		Path:    cfg.Solver.Command,
		Args:    cfg.Solver.Args,
		Timeout: cfg.Solver.Timeout,
		Logger:  logger,
	}
}

// coreOptions translates the config into options for the cube types.
func coreOptions(cfg *config.Config, logger *slog.Logger) []cubesim.Option {
	opts := []cubesim.Option{
		cubesim.WithLogger(logger),
		cubesim.WithAnimationDuration(cfg.Animation.Duration),
		cubesim.WithScrambleLength(cfg.Scramble.Length),
	}
	if s := newSolver(cfg, logger); s != nil {
		opts = append(opts, cubesim.WithSolver(s))
	}
	return opts
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
)

var solveSolverPath string

var solveCmd = &cobra.Command{
	Use:   "solve [moves...]",
	Short: "Solve a scrambled cube with the external solver",
	Long: `Apply a move sequence to a solved cube, hand the facelet string to the
configured two-phase solver and verify its answer.

The solver is taken from solver.command in the config, or from --solver.

Examples:
  cubesim solve "R U R' U' F2"
  cubesim solve --solver /usr/local/bin/twophase "D L2 B'"`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveSolverPath, "solver", "", "Solver executable (overrides solver.command)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logger.Close()

	if solveSolverPath != "" {
		cfg.Solver.Command = solveSolverPath
	}
	s := newSolver(cfg, logger.Logger)
	if s == nil {
		return fmt.Errorf("%w: set solver.command in the config or pass --solver", cubesim.ErrNoSolver)
	}

	cube := cubesim.NewCube(cubesim.WithLogger(logger.Logger))
	if err := cube.ApplyNotation(strings.Join(args, " "), false); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	facelets := cube.Facelets()
	fmt.Fprintf(out, "Facelets: %s\n", facelets)

	start := time.Now()
	resp, err := s.Solve(cmd.Context(), facelets)
	if err != nil {
		return fmt.Errorf("solver failed: %w", err)
	}
	moves, err := cubesim.ParseSolution(resp)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Solution: %s (%d moves, %s)\n", cubesim.FormatMoves(moves), len(moves), formatDuration(time.Since(start)))

	if err := cube.ApplyMoves(moves, false); err != nil {
		return err
	}
	if !cube.IsSolved() {
		return fmt.Errorf("solution does not solve the cube; ended in phase %s", cube.Phase().DisplayName())
	}
	fmt.Fprintln(out, "Verified: cube solved")
	return nil
}

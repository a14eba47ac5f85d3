// Package cubesim provides the state core of an interactive 3x3x3 cube
// simulator: an exact integer cubie model, a reversible move history, an
// animation scheduler that turns queued moves into smooth transitions, and
// ray-based face picking.
//
// # Features
//
//   - Exact quarter turns on the integer lattice (no float drift)
//   - Move history with undo by reversal
//   - Frame-driven animation with exactly one state commit per move
//   - Face picking from a screen point through any view/projection pair
//   - Facelet serialization for external two-phase solvers
//   - Layer-by-layer phase detection
//
// # Standalone Cube
//
//	cube := cubesim.NewCube()
//
//	// Turn faces directly, recording history
//	cube.Rotate(cubesim.FaceR, 1, true)
//	cube.ApplyNotation("U F' R2", true)
//
//	// Undo everything
//	cube.ApplyMoves(cube.SolutionByReversal(), false)
//	fmt.Println("Solved:", cube.IsSolved())
//
// # Animated Moves
//
// A Scheduler owns the animation queue. Drive it from the frame loop:
//
//	sched := cubesim.NewScheduler(cube, cubesim.WithAnimationDuration(300*time.Millisecond))
//	sched.EnqueueMoves(cube.Scramble(20), true)
//
//	for sched.IsBusy() {
//	    sched.Tick(16 * time.Millisecond)
//	    draw(cube.Cubies()) // positions, colors and Transform()
//	}
//
// # Sessions
//
// Session binds a cube, a scheduler, a picker and an optional solver and
// exposes the user-level actions (turn, click, scramble, reset, undo, solve).
package cubesim

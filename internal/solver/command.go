// Package solver runs an external two-phase solver as a subprocess.
package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubesim"
)

// Placeholder is replaced by the facelet string in Command.Args. When no
// argument contains it, the facelet string is appended as the last argument.
const Placeholder = "{facelets}"

// DefaultTimeout bounds a solver run when Command.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// ErrNotConfigured is returned when Path is empty.
var ErrNotConfigured = errors.New("solver: no command configured")

// Command is a cubesim.Solver backed by an executable that prints a
// solution such as "R1 U3 F2 (3f)" to stdout.
type Command struct {
	Path    string
	Args    []string
	Timeout time.Duration
	Logger  *slog.Logger
}

var _ cubesim.Solver = (*Command)(nil)

// Solve runs the command and returns its trimmed stdout.
func (c *Command) Solve(ctx context.Context, facelets string) (string, error) {
	if c.Path == "" {
		return "", ErrNotConfigured
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := c.args(facelets)
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	if c.Logger != nil {
		c.Logger.Debug("solver finished", "path", c.Path, "elapsed", time.Since(start), "error", err)
	}
	if ctx.Err() != nil {
		return "", fmt.Errorf("solver %s: %w", c.Path, ctx.Err())
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("solver %s: %w", c.Path, err)
		}
		return "", fmt.Errorf("solver %s: %w: %s", c.Path, err, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (c *Command) args(facelets string) []string {
	out := make([]string, 0, len(c.Args)+1)
	substituted := false
	for _, a := range c.Args {
		if strings.Contains(a, Placeholder) {
			a = strings.ReplaceAll(a, Placeholder, facelets)
			substituted = true
		}
		out = append(out, a)
	}
	if !substituted {
		out = append(out, facelets)
	}
	return out
}

package cubesim

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

const (
	// DefaultAnimationDuration is how long one quarter turn takes on screen.
	DefaultAnimationDuration = 500 * time.Millisecond

	// DefaultScrambleLength is the number of moves in a generated scramble.
	DefaultScrambleLength = 20
)

// Option configures a Cube, Scheduler or Session.
type Option func(*config)

type config struct {
	rng            *rand.Rand
	logger         *slog.Logger
	duration       time.Duration
	scrambleLength int
	solver         Solver
}

func defaultConfig() *config {
	return &config{
		duration:       DefaultAnimationDuration,
		scrambleLength: DefaultScrambleLength,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// WithSeed makes scrambles reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand sets the random source used for scrambles.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithLogger sets the structured logger. Diagnostics are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithAnimationDuration sets how long one animated quarter turn takes.
// Non-positive values are ignored.
func WithAnimationDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithScrambleLength sets the number of moves a Session scramble generates.
// Non-positive values are ignored.
func WithScrambleLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.scrambleLength = n
		}
	}
}

// WithSolver plugs in the external solving algorithm used by Session.Solve.
func WithSolver(s Solver) Option {
	return func(c *config) {
		c.solver = s
	}
}

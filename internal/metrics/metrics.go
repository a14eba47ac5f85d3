// Package metrics exposes Prometheus counters for a play session.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SeamusWaldron/cubesim"
)

// Metrics holds the collectors for one process. Each instance owns its
// registry so tests can create as many as they need.
type Metrics struct {
	reg *prometheus.Registry

	moves        *prometheus.CounterVec
	animations   prometheus.Counter
	picks        *prometheus.CounterVec
	solves       *prometheus.CounterVec
	solveLatency prometheus.Histogram
}

// New creates and registers the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		moves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubesim",
			Name:      "moves_committed_total",
			Help:      "Quarter turns committed to the cube",
		}, []string{"face", "recorded"}),
		animations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cubesim",
			Name:      "animations_total",
			Help:      "Animated quarter turns completed",
		}),
		picks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubesim",
			Name:      "picks_total",
			Help:      "Pointer picks by result",
		}, []string{"result"}),
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubesim",
			Name:      "solver_requests_total",
			Help:      "Solver requests by outcome",
		}, []string{"outcome"}),
		solveLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cubesim",
			Name:      "solver_latency_seconds",
			Help:      "Time spent waiting for the external solver",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// ObserveCommit counts a committed animation entry. Register it with
// Session.OnCommit.
func (m *Metrics) ObserveCommit(c cubesim.Commit) {
	recorded := "false"
	if c.Recorded {
		recorded = "true"
	}
	m.moves.WithLabelValues(string(c.Face), recorded).Inc()
	m.animations.Inc()
}

// ObservePick counts a pick that hit or missed the cube.
func (m *Metrics) ObservePick(hit bool) {
	if hit {
		m.picks.WithLabelValues("hit").Inc()
		return
	}
	m.picks.WithLabelValues("miss").Inc()
}

// Solver wraps s so every call is timed and counted by outcome:
// ok, malformed, rejected, timeout or error.
func (m *Metrics) Solver(s cubesim.Solver) cubesim.Solver {
	return cubesim.SolverFunc(func(ctx context.Context, facelets string) (string, error) {
		start := time.Now()
		resp, err := s.Solve(ctx, facelets)
		m.solveLatency.Observe(time.Since(start).Seconds())
		m.solves.WithLabelValues(outcome(resp, err)).Inc()
		return resp, err
	})
}

func outcome(resp string, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case err != nil:
		return "error"
	}
	_, perr := cubesim.ParseSolution(resp)
	switch {
	case errors.Is(perr, cubesim.ErrSolverRejected):
		return "rejected"
	case perr != nil:
		return "malformed"
	}
	return "ok"
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package observability

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeHalted    = "halted"
	OutcomeUndefined = "undefined_transition"
	OutcomeStepLimit = "step_limit"
	OutcomeCanceled  = "canceled"
	OutcomeError     = "error"
)

// Metrics holds the Prometheus collectors for machine runs.
type Metrics struct {
	Steps        *prometheus.CounterVec
	Moves        *prometheus.CounterVec
	Runs         *prometheus.CounterVec
	RunDuration  *prometheus.HistogramVec
	CacheLookups *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_steps_total",
				Help: "Total number of executed machine steps",
			},
			[]string{"machine"},
		),
		Moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_head_moves_total",
				Help: "Head movements by direction",
			},
			[]string{"machine", "move"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Completed runs by outcome",
			},
			[]string{"machine", "outcome"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_run_duration_seconds",
				Help:    "Duration of machine runs",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"machine"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_cache_lookups_total",
				Help: "Result cache lookups by result",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Moves, m.Runs, m.RunDuration, m.CacheLookups)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the step, move and run counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Machine).Inc()
			m.Moves.WithLabelValues(e.Machine, string(e.Rule.Move)).Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			m.Runs.WithLabelValues(e.Machine, OutcomeHalted).Inc()
		},
		OnFault: func(ctx context.Context, e *domain.FaultEvent) {
			m.Runs.WithLabelValues(e.Machine, Outcome(e.Err)).Inc()
		},
	}
}

// CacheLookup records a result cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RunCompleted records the wall time of a run, whatever its outcome.
func (m *Metrics) RunCompleted(machine string, elapsed time.Duration, err error) {
	m.RunDuration.WithLabelValues(machine).Observe(elapsed.Seconds())
}

// Outcome classifies a run error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeHalted
	case errors.Is(err, domain.ErrUndefinedTransition):
		return OutcomeUndefined
	case errors.Is(err, domain.ErrStepLimitExceeded):
		return OutcomeStepLimit
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

package observability_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/programs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	m := programs.BinaryIncrement(domain.Symbols("101"),
		turing.WithName("increment"),
		turing.WithLifecycleHooks(metrics.Hooks()),
	)
	_, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(6), testutil.ToFloat64(metrics.Steps.WithLabelValues("increment")))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.Moves.WithLabelValues("increment", "R")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Moves.WithLabelValues("increment", "L")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Moves.WithLabelValues("increment", "N")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Runs.WithLabelValues("increment", observability.OutcomeHalted)))

	t.Run("Fault", func(t *testing.T) {
		m := programs.BinaryIncrement(domain.Symbols("1?"),
			turing.WithName("increment"),
			turing.WithLifecycleHooks(metrics.Hooks()),
		)
		_, err := m.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Runs.WithLabelValues("increment", observability.OutcomeUndefined)))
	})

	count, err := testutil.GatherAndCount(reg, "turing_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_CacheAndDuration(t *testing.T) {
	metrics := observability.NewMetrics(nil)

	metrics.CacheLookup(true)
	metrics.CacheLookup(false)
	metrics.CacheLookup(false)
	metrics.RunCompleted("x", 5*time.Millisecond, nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RunDuration))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, observability.OutcomeHalted, observability.Outcome(nil))
	assert.Equal(t, observability.OutcomeUndefined, observability.Outcome(&domain.UndefinedTransitionError{State: "q", Symbol: "x"}))
	assert.Equal(t, observability.OutcomeStepLimit, observability.Outcome(fmt.Errorf("run: %w", &domain.StepLimitError{Limit: 3})))
	assert.Equal(t, observability.OutcomeCanceled, observability.Outcome(context.Canceled))
	assert.Equal(t, observability.OutcomeError, observability.Outcome(errors.New("boom")))
}

func TestCombine(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) { order = append(order, "a") },
	}
	b := domain.LifecycleHooks{
		OnHalt:  func(ctx context.Context, e *domain.HaltEvent) { order = append(order, "b") },
		OnFault: func(ctx context.Context, e *domain.FaultEvent) { order = append(order, "fault") },
	}

	hooks := observability.Combine(a, domain.LifecycleHooks{}, b)
	assert.Nil(t, hooks.OnStep)

	hooks.OnHalt(context.Background(), &domain.HaltEvent{})
	hooks.OnFault(context.Background(), &domain.FaultEvent{})
	assert.Equal(t, []string{"a", "b", "fault"}, order)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m := programs.BinaryComplement(domain.Symbols("10"),
		turing.WithName("complement"),
		turing.WithLifecycleHooks(observability.LoggingHooks(logger)),
	)
	_, err := m.Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "machine_halt")
	assert.Contains(t, out, "machine=complement")
	assert.Contains(t, out, "steps=3")
	// Steps are logged at Debug, below the handler's default level.
	assert.NotContains(t, out, "machine_step")
}

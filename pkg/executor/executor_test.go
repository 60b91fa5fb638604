package executor_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/executor"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	mu     sync.Mutex
	hits   int
	misses int
	runs   []error
}

func (m *recordingMetrics) CacheLookup(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func (m *recordingMetrics) RunCompleted(machine string, elapsed time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, err)
}

func TestExecute_Builtin(t *testing.T) {
	exec := executor.New(executor.WithSources(memory.NewBuiltinSource()))

	tests := []struct {
		program string
		tape    string
		output  string
	}{
		{"increment", "101", "110"},
		{"increment", "111", "1000"},
		{"complement", "101", "010"},
		{"addition", "101+11", "1000"},
		{"addition", "", "1000"}, // example input
	}

	for _, tt := range tests {
		t.Run(tt.program+"/"+tt.tape, func(t *testing.T) {
			res, err := exec.Execute(context.Background(), executor.Request{Program: tt.program, Tape: tt.tape})
			require.NoError(t, err)
			assert.Equal(t, tt.output, res.Output)
			assert.Equal(t, domain.State("qf"), res.State)
			assert.Equal(t, tt.program, res.Machine)
			assert.False(t, res.Cached)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	exec := executor.New(executor.WithSources(memory.NewBuiltinSource()))
	ctx := context.Background()

	t.Run("Unknown Program", func(t *testing.T) {
		_, err := exec.Execute(ctx, executor.Request{Program: "nope"})
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})

	t.Run("Empty Request", func(t *testing.T) {
		_, err := exec.Execute(ctx, executor.Request{})
		assert.ErrorIs(t, err, executor.ErrInvalidRequest)
	})

	t.Run("Undefined Transition", func(t *testing.T) {
		_, err := exec.Execute(ctx, executor.Request{Program: "increment", Tape: "1x1"})
		assert.ErrorIs(t, err, domain.ErrUndefinedTransition)

		var ute *domain.UndefinedTransitionError
		require.True(t, errors.As(err, &ute))
		assert.Equal(t, domain.Symbol("x"), ute.Symbol)
	})

	t.Run("Step Limit", func(t *testing.T) {
		_, err := exec.Execute(ctx, executor.Request{Program: "increment", Tape: "101", MaxSteps: 3})
		assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	})
}

func TestExecute_StepCeiling(t *testing.T) {
	exec := executor.New(
		executor.WithSources(memory.NewBuiltinSource()),
		executor.WithMaxSteps(10),
	)
	ctx := context.Background()

	res, err := exec.Execute(ctx, executor.Request{Program: "increment", Tape: "101"})
	require.NoError(t, err)
	assert.Equal(t, "110", res.Output)

	// A request may lower the ceiling.
	_, err = exec.Execute(ctx, executor.Request{Program: "increment", Tape: "101", MaxSteps: 5})
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)

	// But never raise it.
	_, err = exec.Execute(ctx, executor.Request{Program: "increment", Tape: "1111111111", MaxSteps: 1000})
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	assert.Equal(t, 10, exec.MaxSteps())
}

func TestTrace(t *testing.T) {
	cache := memory.NewCache()
	exec := executor.New(
		executor.WithSources(memory.NewBuiltinSource()),
		executor.WithCache(cache),
	)

	var events []*domain.StepEvent
	hooks := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { events = append(events, e) },
	}

	res, err := exec.Trace(context.Background(), executor.Request{Program: "complement", Tape: "10"}, hooks)
	require.NoError(t, err)
	assert.Equal(t, "01", res.Output)
	require.Len(t, events, 3)
	assert.Equal(t, "complement", events[0].Machine)
	assert.Equal(t, domain.Symbol("1"), events[0].Read)
	assert.Equal(t, 0, cache.Len(), "traces bypass the cache")
}

func TestExecute_InlineDefinition(t *testing.T) {
	def, err := definition.Parse([]byte(`
start: a
halt: [h]
rules:
  - {state: a, read: [x], next: h, write: y, move: R}
`), definition.FormatYAML)
	require.NoError(t, err)

	exec := executor.New()
	res, err := exec.Execute(context.Background(), executor.Request{Definition: def, Tape: "x"})
	require.NoError(t, err)
	assert.Equal(t, "y", res.Output)
	assert.Equal(t, 1, res.Head)
	assert.Equal(t, 1, res.Steps)
}

func TestExecute_Cache(t *testing.T) {
	cache := memory.NewCache()
	metrics := &recordingMetrics{}
	exec := executor.New(
		executor.WithSources(memory.NewBuiltinSource()),
		executor.WithCache(cache),
		executor.WithMetrics(metrics),
	)
	ctx := context.Background()
	req := executor.Request{Program: "addition", Tape: "10+101"}

	first, err := exec.Execute(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "111", first.Output)

	second, err := exec.Execute(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, first.Steps, second.Steps)

	assert.Equal(t, 1, cache.Len())
	assert.Len(t, metrics.runs, 1)
	assert.Equal(t, 1, metrics.hits)

	t.Run("Faults Are Not Cached", func(t *testing.T) {
		_, err := exec.Execute(ctx, executor.Request{Program: "increment", Tape: "2"})
		require.Error(t, err)
		assert.Equal(t, 1, cache.Len())
	})
}

func TestExecute_ConcurrentRunsCollapse(t *testing.T) {
	var halts atomic.Int64
	hooks := domain.LifecycleHooks{
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			halts.Add(1)
		},
	}
	exec := executor.New(
		executor.WithSources(memory.NewBuiltinSource()),
		executor.WithCache(memory.NewCache()),
		executor.WithLifecycleHooks(hooks),
	)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := exec.Execute(context.Background(), executor.Request{Program: "addition", Tape: "1111+1"})
			assert.NoError(t, err)
			assert.Equal(t, "10000", res.Output)
		}()
	}
	wg.Wait()

	// Only one machine actually ran to completion.
	assert.Equal(t, int64(1), halts.Load())
}

type stubLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked int
	err      error
}

func (l *stubLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.locked = append(l.locked, key)
	l.mu.Unlock()
	return func(ctx context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocked++
		return nil
	}, nil
}

func TestExecute_DistributedLock(t *testing.T) {
	locker := &stubLocker{}
	exec := executor.New(
		executor.WithSources(memory.NewBuiltinSource()),
		executor.WithCache(memory.NewCache()),
		executor.WithLocker(locker, time.Second),
	)

	_, err := exec.Execute(context.Background(), executor.Request{Program: "increment", Tape: "1"})
	require.NoError(t, err)
	assert.Len(t, locker.locked, 1)
	assert.Equal(t, 1, locker.unlocked)

	t.Run("Lock Failure", func(t *testing.T) {
		failing := executor.New(
			executor.WithSources(memory.NewBuiltinSource()),
			executor.WithCache(memory.NewCache()),
			executor.WithLocker(&stubLocker{err: errors.New("busy")}, 0),
		)
		_, err := failing.Execute(context.Background(), executor.Request{Program: "increment", Tape: "1"})
		assert.ErrorContains(t, err, "distributed lock")
	})
}

func TestKey(t *testing.T) {
	exec := executor.New(executor.WithSources(memory.NewBuiltinSource()))
	inc, err := exec.Lookup("increment")
	require.NoError(t, err)
	comp, err := exec.Lookup("complement")
	require.NoError(t, err)

	base := executor.Key(inc, "101", 0)
	assert.Equal(t, base, executor.Key(inc, "101", 0))
	assert.NotEqual(t, base, executor.Key(inc, "101", 10))
	assert.NotEqual(t, base, executor.Key(inc, "1010", 0))
	assert.NotEqual(t, base, executor.Key(comp, "101", 0))
}

func TestList(t *testing.T) {
	custom, err := memory.NewSource(&definition.Definition{
		Name:  "increment",
		Start: "shadowed",
	}, &definition.Definition{
		Name:        "noop",
		Description: "Halts immediately",
		Start:       "h",
		Halt:        []string{"h"},
	})
	require.NoError(t, err)

	exec := executor.New(executor.WithSources(memory.NewBuiltinSource(), custom))
	list, err := exec.List()
	require.NoError(t, err)

	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"addition", "complement", "increment", "noop"}, names)

	// The builtin source was registered first and wins.
	def, err := exec.Lookup("increment")
	require.NoError(t, err)
	assert.Equal(t, "q0", def.Start)

	assert.Equal(t, "101", list[2].Example)
	assert.Equal(t, 3, list[2].States)
	assert.Equal(t, 6, list[2].Rules)
}

package turing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComplement(input string, opts ...turing.Option) *turing.Machine {
	m := turing.New(domain.Symbols(input), " ", "q0", []domain.State{"qf"}, opts...)
	m.SetTransition("q0", "1", "q0", "0", domain.MoveRight)
	m.SetTransition("q0", "0", "q0", "1", domain.MoveRight)
	m.SetTransition("q0", " ", "qf", " ", domain.MoveStay)
	return m
}

func TestMachine_Run(t *testing.T) {
	m := newComplement("101")

	contents, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "010", turing.Result(contents, m.Blank()))
	assert.Equal(t, domain.State("qf"), m.CurrentState())
	assert.Equal(t, 3, m.HeadPosition())
	assert.Equal(t, 4, m.Steps())
	assert.True(t, m.Halted())
	assert.Equal(t, contents, m.Contents())
}

func TestMachine_Accessors(t *testing.T) {
	m := newComplement("1", turing.WithName("complement"))
	assert.Equal(t, "complement", m.Name)
	assert.Equal(t, domain.State("q0"), m.InitialState())
	assert.Equal(t, []domain.State{"qf"}, m.HaltingStates())
	assert.Equal(t, domain.Symbol(" "), m.Blank())
	assert.Equal(t, 3, m.Table().Len())
	assert.False(t, m.Halted())
}

func TestMachine_FatalPath(t *testing.T) {
	m := turing.New(domain.Symbols("1"), " ", "q0", []domain.State{"qf"})

	err := m.Step(context.Background())
	var ute *domain.UndefinedTransitionError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, domain.State("q0"), ute.State)
	assert.Equal(t, domain.Symbol("1"), ute.Symbol)
	assert.Equal(t, "1", domain.Join(m.Contents()))

	_, err = m.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrUndefinedTransition)
}

func TestMachine_SharedTable(t *testing.T) {
	tbl := table.New()
	tbl.Set("q0", "a", "qf", "b", domain.MoveStay)

	m1 := turing.New(domain.Symbols("a"), "_", "q0", []domain.State{"qf"}, turing.WithTable(tbl))
	m2 := turing.New(domain.Symbols("a"), "_", "q0", []domain.State{"qf"}, turing.WithTable(tbl))

	c1, err := m1.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", domain.Join(c1))

	// The second machine owns its own tape.
	assert.Equal(t, "a", domain.Join(m2.Contents()))
	c2, err := m2.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}

func TestMachine_MaxSteps(t *testing.T) {
	m := turing.New(nil, "_", "loop", []domain.State{"never"}, turing.WithMaxSteps(100))
	m.SetTransition("loop", "_", "loop", "_", domain.MoveLeft)

	_, err := m.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	assert.Equal(t, -100, m.HeadPosition())
}

func TestMachine_LifecycleHooks(t *testing.T) {
	var steps, halts int
	hooks := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { steps++ },
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) { halts++ },
	}

	m := newComplement("10", turing.WithLifecycleHooks(hooks))
	_, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, steps)
	assert.Equal(t, 1, halts)
}

func TestResult(t *testing.T) {
	tests := []struct {
		name     string
		contents []domain.Symbol
		want     string
	}{
		{"Trailing Blank", domain.Symbols("110 "), "110"},
		{"Both Ends", domain.Symbols("  1000   "), "1000"},
		{"Inner Blanks Kept", domain.Symbols(" 1 0 "), "1 0"},
		{"All Blank", domain.Symbols("   "), ""},
		{"Empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, turing.Result(tt.contents, " "))
		})
	}
}

package turing

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
	"github.com/aretw0/turing/pkg/tape"
)

// Machine is the high-level entry point of the library.
// It owns one tape and drives it with a transition table through the internal runtime.
type Machine struct {
	runtime  *runtime.Engine
	table    *table.Table
	tape     *tape.Tape
	blank    domain.Symbol
	initial  domain.State
	halting  []domain.State
	maxSteps int
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	Name     string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithMaxSteps bounds a run. Exceeding it fails with domain.ErrStepLimitExceeded.
// The default is unbounded.
func WithMaxSteps(n int) Option {
	return func(m *Machine) {
		m.maxSteps = n
	}
}

// WithTable binds a pre-built transition table instead of a fresh empty one.
// The table is read, never written, while the machine runs.
func WithTable(t *table.Table) Option {
	return func(m *Machine) {
		m.table = t
	}
}

// WithName labels the machine in logs and lifecycle events.
func WithName(name string) Option {
	return func(m *Machine) {
		m.Name = name
	}
}

// New creates a machine with initialTape written at positions 0..len-1, the head at 0,
// and the control in initialState. Reaching any of haltingStates stops a run.
func New(initialTape []domain.Symbol, blank domain.Symbol, initialState domain.State, haltingStates []domain.State, opts ...Option) *Machine {
	m := &Machine{
		blank:   blank,
		initial: initialState,
		halting: append([]domain.State(nil), haltingStates...),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.table == nil {
		m.table = table.New()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	m.tape = tape.New(initialTape, blank)
	m.runtime = runtime.NewEngine(m.tape, m.table, initialState, m.halting,
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithMaxSteps(m.maxSteps),
		runtime.WithName(m.Name),
	)
	return m
}

// SetTransition registers the rule for (state, symbol). Registering the same pair
// again replaces the previous rule.
func (m *Machine) SetTransition(state domain.State, symbol domain.Symbol, next domain.State, write domain.Symbol, move domain.Move) {
	m.table.Set(state, symbol, next, write, move)
}

// Step fires a single rule. See runtime.Engine.Step for the failure modes.
func (m *Machine) Step(ctx context.Context) error {
	return m.runtime.Step(ctx)
}

// Run steps until a halting state is reached and returns the final tape contents.
func (m *Machine) Run(ctx context.Context) ([]domain.Symbol, error) {
	return m.runtime.Run(ctx)
}

// Contents returns the materialized tape, left to right.
func (m *Machine) Contents() []domain.Symbol {
	return m.runtime.Contents()
}

// CurrentState returns the control state.
func (m *Machine) CurrentState() domain.State {
	return m.runtime.State()
}

// HeadPosition returns the head position. It may be negative.
func (m *Machine) HeadPosition() int {
	return m.runtime.Head()
}

// Steps returns the number of rules fired so far.
func (m *Machine) Steps() int {
	return m.runtime.Steps()
}

// Halted reports whether the machine sits in a halting state.
func (m *Machine) Halted() bool {
	return m.runtime.Halted()
}

// Snapshot captures the machine for display.
func (m *Machine) Snapshot() domain.Snapshot {
	return m.runtime.Snapshot()
}

// Blank returns the blank symbol of the tape.
func (m *Machine) Blank() domain.Symbol {
	return m.blank
}

// InitialState returns the state the machine was created in.
func (m *Machine) InitialState() domain.State {
	return m.initial
}

// HaltingStates returns the halting set.
func (m *Machine) HaltingStates() []domain.State {
	return append([]domain.State(nil), m.halting...)
}

// Table returns the transition table bound to the machine.
func (m *Machine) Table() *table.Table {
	return m.table
}

// Result renders tape contents as a string, dropping blank cells at both ends.
func Result(contents []domain.Symbol, blank domain.Symbol) string {
	lo, hi := 0, len(contents)
	for lo < hi && contents[lo] == blank {
		lo++
	}
	for hi > lo && contents[hi-1] == blank {
		hi--
	}
	var sb strings.Builder
	for _, s := range contents[lo:hi] {
		sb.WriteString(string(s))
	}
	return sb.String()
}

package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
	"github.com/aretw0/turing/pkg/tape"
)

// Engine is the core step/run loop of a single-tape machine.
// It exclusively drives the mutations of its tape; the table is only read.
// An Engine is not safe for concurrent use.
type Engine struct {
	tape    *tape.Tape
	table   *table.Table
	state   domain.State
	head    int
	steps   int
	halting map[domain.State]struct{}

	name     string
	maxSteps int
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Steps are logged at Debug level.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMaxSteps bounds the total number of steps the machine may execute.
// Zero or a negative value means unbounded.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithName labels the machine in logs and events.
func WithName(name string) EngineOption {
	return func(e *Engine) {
		e.name = name
	}
}

// NewEngine binds a machine to its tape and table, starting in initial with the head at 0.
func NewEngine(tp *tape.Tape, tbl *table.Table, initial domain.State, halting []domain.State, opts ...EngineOption) *Engine {
	e := &Engine{
		tape:    tp,
		table:   tbl,
		state:   initial,
		halting: make(map[domain.State]struct{}, len(halting)),
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, h := range halting {
		e.halting[h] = struct{}{}
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.name != "" {
		e.logger = e.logger.With("machine", e.name)
	}
	return e
}

// Step fires the rule registered for the current state and the symbol under the head.
// If no rule exists it returns an *domain.UndefinedTransitionError and leaves the
// tape, the state and the head untouched.
func (e *Engine) Step(ctx context.Context) error {
	if e.Halted() {
		return fmt.Errorf("step in state %q: %w", e.state, domain.ErrHalted)
	}

	read := e.tape.Read(e.head)
	rule, ok := e.table.Lookup(e.state, read)
	if !ok {
		err := &domain.UndefinedTransitionError{State: e.state, Symbol: read, Head: e.head}
		e.logger.Debug("undefined transition", "state", e.state, "symbol", read, "head", e.head)
		e.emitFault(ctx, err)
		return err
	}

	from := e.state
	e.tape.Write(e.head, rule.Write)
	e.state = rule.Next
	e.head += rule.Move.Delta()
	e.tape.Touch(e.head)
	e.steps++

	e.logger.Debug("step",
		"step", e.steps,
		"from", from,
		"read", read,
		"to", rule.Next,
		"write", rule.Write,
		"move", rule.Move,
		"head", e.head,
	)
	e.emitStep(ctx, from, read, rule)
	return nil
}

// Run steps the machine until it reaches a halting state and returns the final tape contents.
// A machine whose table never reaches a halting state runs forever unless a step limit
// was configured or ctx is canceled.
func (e *Engine) Run(ctx context.Context) ([]domain.Symbol, error) {
	for !e.Halted() {
		if err := ctx.Err(); err != nil {
			e.emitFault(ctx, err)
			return nil, err
		}
		if e.maxSteps > 0 && e.steps >= e.maxSteps {
			err := &domain.StepLimitError{Limit: e.maxSteps, State: e.state}
			e.logger.Debug("step limit exceeded", "limit", e.maxSteps, "state", e.state)
			e.emitFault(ctx, err)
			return nil, err
		}
		if err := e.Step(ctx); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("halted", "state", e.state, "steps", e.steps, "head", e.head)
	e.emitHalt(ctx)
	return e.tape.Sequence(), nil
}

// Halted reports whether the current state belongs to the halting set.
func (e *Engine) Halted() bool {
	_, ok := e.halting[e.state]
	return ok
}

// State returns the current control state.
func (e *Engine) State() domain.State {
	return e.state
}

// Head returns the current head position.
func (e *Engine) Head() int {
	return e.head
}

// Steps returns the number of rules fired so far.
func (e *Engine) Steps() int {
	return e.steps
}

// Contents returns the materialized tape, left to right.
func (e *Engine) Contents() []domain.Symbol {
	return e.tape.Sequence()
}

// Snapshot captures the machine for presentation layers.
func (e *Engine) Snapshot() domain.Snapshot {
	lo, _, _ := e.tape.Bounds()
	return domain.Snapshot{
		State:  e.state,
		Head:   e.head,
		Steps:  e.steps,
		Halted: e.Halted(),
		Tape:   e.tape.Sequence(),
		Offset: lo,
	}
}

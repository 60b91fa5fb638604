package domain

import (
	"errors"
	"fmt"
)

// ErrUndefinedTransition is matched by errors.Is for every *UndefinedTransitionError.
var ErrUndefinedTransition = errors.New("undefined transition")

// ErrStepLimitExceeded is matched by errors.Is for every *StepLimitError.
var ErrStepLimitExceeded = errors.New("step limit exceeded")

// ErrHalted is returned when stepping a machine that already sits in a halting state.
var ErrHalted = errors.New("machine is halted")

// ErrProgramNotFound is returned when a named program is not registered.
var ErrProgramNotFound = errors.New("program not found")

// ErrCacheMiss is returned by result caches when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// UndefinedTransitionError reports that no rule exists for the current (state, symbol) pair.
// It is fatal to the run.
type UndefinedTransitionError struct {
	State  State
	Symbol Symbol
	Head   int
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("no transition defined for state %q and symbol %q (head %d)", e.State, e.Symbol, e.Head)
}

func (e *UndefinedTransitionError) Is(target error) bool {
	return target == ErrUndefinedTransition
}

// StepLimitError reports that a run was stopped after Limit steps without halting.
type StepLimitError struct {
	Limit int
	State State
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %d exceeded in state %q", e.Limit, e.State)
}

func (e *StepLimitError) Is(target error) bool {
	return target == ErrStepLimitExceeded
}

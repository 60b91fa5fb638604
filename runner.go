package turing

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Runner steps a machine to completion while writing every configuration to Output.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Output   io.Writer
	Renderer SnapshotRenderer

	// Every prints one configuration out of Every steps. Zero or one prints all of them.
	// The initial and the final configuration are always printed.
	Every int
}

// SnapshotRenderer turns a machine configuration into one line of text.
// This allows for colored rendering without coupling the core package to a terminal library.
type SnapshotRenderer func(snap domain.Snapshot, blank domain.Symbol) string

// NewRunner creates a Runner with the plain-text renderer.
func NewRunner(out io.Writer) *Runner {
	return &Runner{
		Output:   out,
		Renderer: PlainRenderer,
	}
}

// Run executes the machine step by step until it halts or fails.
func (r *Runner) Run(ctx context.Context, m *Machine) ([]domain.Symbol, error) {
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	render := r.Renderer
	if render == nil {
		render = PlainRenderer
	}
	every := r.Every
	if every < 1 {
		every = 1
	}

	fmt.Fprintln(r.Output, render(m.Snapshot(), m.Blank()))

	for !m.Halted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.maxSteps > 0 && m.Steps() >= m.maxSteps {
			// Let the runtime report the limit consistently.
			return m.Run(ctx)
		}
		if err := m.Step(ctx); err != nil {
			return nil, err
		}
		if m.Steps()%every == 0 || m.Halted() {
			fmt.Fprintln(r.Output, render(m.Snapshot(), m.Blank()))
		}
	}

	return m.Run(ctx)
}

// PlainRenderer prints the step count, the state and the tape with the head cell in brackets.
func PlainRenderer(snap domain.Snapshot, blank domain.Symbol) string {
	lo, hi := snap.Offset, snap.Offset+len(snap.Tape)-1
	if len(snap.Tape) == 0 {
		lo, hi = snap.Head, snap.Head
	}
	if snap.Head < lo {
		lo = snap.Head
	}
	if snap.Head > hi {
		hi = snap.Head
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%4d %-6s %+4d |", snap.Steps, snap.State, snap.Head)
	for p := lo; p <= hi; p++ {
		cell := string(snap.Cell(p, blank))
		if p == snap.Head {
			sb.WriteString("[" + cell + "]")
		} else {
			sb.WriteString(" " + cell + " ")
		}
	}
	return sb.String()
}

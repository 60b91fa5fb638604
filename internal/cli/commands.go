package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/executor"
)

// Resolve picks the definition a command works on: a file when path is set,
// otherwise the named program.
func Resolve(exec *executor.Executor, program, path string) (*definition.Definition, error) {
	if path != "" {
		return definition.Load(path)
	}
	if program == "" {
		return nil, errors.New("a program name or --file is required")
	}
	return exec.Lookup(program)
}

// PrintResult writes a run result as text or, with asJSON, as an indented JSON document.
func PrintResult(w io.Writer, res *domain.RunResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(w, "result: %s\n", res.Output)
	fmt.Fprintf(w, "state:  %s\n", res.State)
	fmt.Fprintf(w, "head:   %d\n", res.Head)
	fmt.Fprintf(w, "steps:  %d\n", res.Steps)
	if res.Cached {
		fmt.Fprintln(w, "(cached)")
	}
	return nil
}

// TraceOptions configures Trace.
type TraceOptions struct {
	Tape     string
	MaxSteps int
	Every    int
	Window   int
}

// Trace steps the machine built from def, printing its configurations to w.
// Colors are used only when w is a terminal.
func Trace(ctx context.Context, w io.Writer, def *definition.Definition, opts TraceOptions, machineOpts ...turing.Option) ([]domain.Symbol, error) {
	var input []domain.Symbol
	if opts.Tape != "" {
		input = domain.Symbols(opts.Tape)
	}
	m, err := def.Build(input, append(machineOpts, turing.WithMaxSteps(opts.MaxSteps))...)
	if err != nil {
		return nil, err
	}

	renderer := tui.NewTapeRenderer(tui.ProfileFor(w))
	renderer.Window = opts.Window

	r := turing.NewRunner(w)
	r.Renderer = renderer.Render
	r.Every = opts.Every

	contents, err := r.Run(ctx, m)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "result: %s\n", turing.Result(contents, m.Blank()))
	return contents, nil
}

// Graph writes the Mermaid state diagram of def. A non-nil overlay highlights a run.
func Graph(w io.Writer, def *definition.Definition, overlay *graph.GraphOverlay) error {
	m, err := def.Build(nil)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(graph.Diagram{
		Start:       m.InitialState(),
		Halting:     m.HaltingStates(),
		Blank:       m.Blank(),
		Transitions: m.Table().Transitions(),
	}, overlay))
	return err
}

// Overlay runs def on tape through exec and records the states it visits.
// A run that faults still returns its overlay, along with the error.
func Overlay(ctx context.Context, exec *executor.Executor, def *definition.Definition, tape string) (*graph.GraphOverlay, error) {
	var rec graph.Recorder
	_, err := exec.Trace(ctx, executor.Request{Definition: def, Tape: tape}, rec.Hooks())
	return rec.Overlay(), err
}

// Describe writes the rule table of def, rendered with glamour when raw is false.
func Describe(w io.Writer, def *definition.Definition, raw bool) error {
	md := tui.DescribeMarkdown(def)
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}
	out, err := tui.NewRenderer()(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Programs writes a table of the available programs.
func Programs(w io.Writer, exec *executor.Executor) error {
	list, err := exec.List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATES\tRULES\tEXAMPLE\tDESCRIPTION")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", p.Name, p.States, p.Rules, p.Example, p.Description)
	}
	return tw.Flush()
}

// Export writes def as a definition document.
func Export(w io.Writer, def *definition.Definition, format definition.Format) error {
	data, err := definition.Marshal(def, format)
	if err != nil {
		return err
	}
	if format == definition.FormatJSON {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/programs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		diagram  graph.Diagram
		contains []string
		excludes []string
	}{
		{
			name: "Entry And Exit",
			diagram: graph.Diagram{
				Start:   "q0",
				Halting: []domain.State{"qf"},
				Blank:   " ",
				Transitions: []domain.Transition{
					{State: "q0", Symbol: " ", Rule: domain.Rule{Next: "qf", Write: "1", Move: domain.MoveStay}},
				},
			},
			contains: []string{
				"stateDiagram-v2\n",
				"[*] --> q0\n",
				"q0 --> qf : ␣ → 1, N\n",
				"qf --> [*]\n",
			},
		},
		{
			name: "ID Sanitization",
			diagram: graph.Diagram{
				Start: "carry-left",
				Transitions: []domain.Transition{
					{State: "carry-left", Symbol: "1", Rule: domain.Rule{Next: "done.ok", Write: "0", Move: domain.MoveLeft}},
				},
			},
			contains: []string{
				"state \"carry-left\" as carry_left\n",
				"state \"done.ok\" as done_ok\n",
				"carry_left --> done_ok : 1 → 0, L\n",
			},
		},
		{
			name: "Label Escaping",
			diagram: graph.Diagram{
				Start: "a",
				Transitions: []domain.Transition{
					{State: "a", Symbol: ";", Rule: domain.Rule{Next: "a", Write: ":", Move: domain.MoveRight}},
				},
			},
			contains: []string{"a --> a : , → #colon;, R\n"},
			excludes: []string{"state \"a\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.diagram, nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
			assert.NotContains(t, got, "classDef")
		})
	}
}

func TestGenerateMermaid_Program(t *testing.T) {
	m := programs.BinaryIncrement(nil)
	got := graph.GenerateMermaid(graph.Diagram{
		Start:       m.InitialState(),
		Halting:     m.HaltingStates(),
		Blank:       m.Blank(),
		Transitions: m.Table().Transitions(),
	}, nil)

	assert.Equal(t, 6, strings.Count(got, " : "), "one edge per rule")
	assert.Equal(t, 1, strings.Count(got, "[*] -->"))
	assert.Contains(t, got, "q1 --> q1 : 1 → 0, L\n")
	for _, long := range []string{"Left", "Right", "Stay"} {
		assert.NotContains(t, got, long, "moves use their short code")
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	d := graph.Diagram{
		Start: "q0",
		Transitions: []domain.Transition{
			{State: "q0", Symbol: "1", Rule: domain.Rule{Next: "q1", Write: "1", Move: domain.MoveRight}},
		},
	}
	got := graph.GenerateMermaid(d, &graph.GraphOverlay{
		VisitedStates: []domain.State{"q0", "q0", "q1"},
		CurrentState:  "q1",
	})

	assert.Contains(t, got, "classDef visited")
	assert.Equal(t, 1, strings.Count(got, "class q0 visited"))
	assert.Contains(t, got, "class q1 current")
	assert.NotContains(t, got, "class q1 visited")
}

func TestRecorder(t *testing.T) {
	t.Run("Not Started", func(t *testing.T) {
		var rec graph.Recorder
		assert.Nil(t, rec.Overlay())
	})

	t.Run("Halted", func(t *testing.T) {
		var rec graph.Recorder
		m := programs.BinaryIncrement(domain.Symbols("11"), turing.WithLifecycleHooks(rec.Hooks()))
		_, err := m.Run(context.Background())
		require.NoError(t, err)

		overlay := rec.Overlay()
		require.NotNil(t, overlay)
		assert.Equal(t, domain.State("qf"), overlay.CurrentState)
		assert.Contains(t, overlay.VisitedStates, domain.State("q0"))
		assert.Contains(t, overlay.VisitedStates, domain.State("q1"))
		assert.Len(t, overlay.VisitedStates, m.Steps())
	})

	t.Run("Faulted", func(t *testing.T) {
		var rec graph.Recorder
		m := programs.BinaryComplement(domain.Symbols("1x"), turing.WithLifecycleHooks(rec.Hooks()))
		_, err := m.Run(context.Background())
		require.ErrorIs(t, err, domain.ErrUndefinedTransition)

		overlay := rec.Overlay()
		require.NotNil(t, overlay)
		assert.Equal(t, domain.State("q0"), overlay.CurrentState)
		assert.Equal(t, []domain.State{"q0"}, overlay.VisitedStates)
	})

	t.Run("Initial State Halting", func(t *testing.T) {
		var rec graph.Recorder
		m := turing.New(nil, " ", "qf", []domain.State{"qf"}, turing.WithLifecycleHooks(rec.Hooks()))
		_, err := m.Run(context.Background())
		require.NoError(t, err)

		overlay := rec.Overlay()
		require.NotNil(t, overlay)
		assert.Equal(t, domain.State("qf"), overlay.CurrentState)
		assert.Empty(t, overlay.VisitedStates)
	})
}

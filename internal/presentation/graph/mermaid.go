package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// BlankLabel stands in for the blank symbol in edge labels.
const BlankLabel = "␣"

// GraphOverlay contains run data to highlight on the diagram.
type GraphOverlay struct {
	VisitedStates []domain.State
	CurrentState  domain.State
}

// Diagram is the static structure of a machine.
type Diagram struct {
	Start       domain.State
	Halting     []domain.State
	Blank       domain.Symbol
	Transitions []domain.Transition
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 for the machine.
// The start state gets an entry arrow from [*], halting states an exit arrow to [*],
// and every rule one edge labeled "read → write, move".
func GenerateMermaid(d Diagram, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	declared := make(map[string]bool)
	declare := func(s domain.State) string {
		id := sanitizeMermaidID(string(s))
		if !declared[id] {
			declared[id] = true
			if id != string(s) {
				sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", escapeLabel(string(s)), id))
			}
		}
		return id
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", declare(d.Start)))

	for _, t := range d.Transitions {
		from := declare(t.State)
		to := declare(t.Next)
		label := fmt.Sprintf("%s → %s, %s", symbolLabel(t.Symbol, d.Blank), symbolLabel(t.Write, d.Blank), string(t.Move))
		sb.WriteString(fmt.Sprintf("    %s --> %s : %s\n", from, to, label))
	}

	for _, h := range d.Halting {
		sb.WriteString(fmt.Sprintf("    %s --> [*]\n", declare(h)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		visited := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id := sanitizeMermaidID(string(s))
			if id != "" && !visited[id] && s != overlay.CurrentState {
				visited[id] = true
				sb.WriteString(fmt.Sprintf("    class %s visited\n", id))
			}
		}
		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current\n", sanitizeMermaidID(string(overlay.CurrentState))))
		}
	}

	return sb.String()
}

func symbolLabel(s, blank domain.Symbol) string {
	if s == blank || strings.TrimSpace(string(s)) == "" {
		return BlankLabel
	}
	return escapeLabel(string(s))
}

// escapeLabel removes characters that end a Mermaid statement or label.
func escapeLabel(s string) string {
	r := strings.NewReplacer("\"", "'", ";", ",", ":", "#colon;", "\n", " ")
	return r.Replace(s)
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

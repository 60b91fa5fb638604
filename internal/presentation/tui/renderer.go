package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		return r.Render(markdown)
	}
}

// DescribeMarkdown documents a definition: its conventions and its rule table.
func DescribeMarkdown(d *definition.Definition) string {
	var sb strings.Builder

	name := d.Name
	if name == "" {
		name = "machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	if d.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", d.Description)
	}

	blank := d.Blank
	if blank == "" {
		blank = definition.DefaultBlank
	}
	fmt.Fprintf(&sb, "- **Start:** `%s`\n", d.Start)
	fmt.Fprintf(&sb, "- **Halt:** %s\n", codeList(d.Halt))
	fmt.Fprintf(&sb, "- **Blank:** %s\n", symbol(blank, blank))
	if len(d.Tape) > 0 {
		fmt.Fprintf(&sb, "- **Example tape:** `%s`\n", strings.Join(d.Tape, ""))
	}

	sb.WriteString("\n| State | Read | Next | Write | Move |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, r := range d.Rules {
		reads := make([]string, len(r.Read))
		for i, s := range r.Read {
			reads[i] = symbol(s, blank)
		}
		write := "same"
		if r.Write != "" {
			write = symbol(r.Write, blank)
		}
		fmt.Fprintf(&sb, "| `%s` | %s | `%s` | %s | %s |\n", r.State, strings.Join(reads, " "), r.Next, write, r.Move)
	}
	return sb.String()
}

func symbol(s, blank string) string {
	if s == blank {
		return "blank"
	}
	return "`" + strings.ReplaceAll(s, "|", "\\|") + "`"
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}

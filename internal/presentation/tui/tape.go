package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// TapeRenderer draws machine configurations with the head cell highlighted.
type TapeRenderer struct {
	Profile termenv.Profile

	// Window, when positive, limits the drawing to that many cells on each side of the head.
	Window int
}

// NewTapeRenderer creates a renderer for the given color profile.
func NewTapeRenderer(p termenv.Profile) *TapeRenderer {
	return &TapeRenderer{Profile: p}
}

// Render formats one configuration. It matches turing.SnapshotRenderer.
func (r *TapeRenderer) Render(snap domain.Snapshot, blank domain.Symbol) string {
	p := r.Profile
	lo, hi := bounds(snap)
	if r.Window > 0 {
		lo = max(lo, snap.Head-r.Window)
		hi = min(hi, snap.Head+r.Window)
	}

	state := p.String(fmt.Sprintf("%-6s", snap.State)).Foreground(p.Color("#a78bfa"))
	if snap.Halted {
		state = p.String(fmt.Sprintf("%-6s", snap.State)).Foreground(p.Color("#4ade80")).Bold()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%4d %s %+4d |", snap.Steps, state, snap.Head)
	for pos := lo; pos <= hi; pos++ {
		cell := string(snap.Cell(pos, blank))
		if pos == snap.Head {
			sb.WriteString(p.String("[" + cell + "]").Reverse().Bold().String())
			continue
		}
		text := " " + cell + " "
		if snap.Cell(pos, blank) == blank {
			sb.WriteString(p.String(text).Faint().String())
		} else {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

func bounds(snap domain.Snapshot) (int, int) {
	lo, hi := snap.Offset, snap.Offset+len(snap.Tape)-1
	if len(snap.Tape) == 0 {
		lo, hi = snap.Head, snap.Head
	}
	return min(lo, snap.Head), max(hi, snap.Head)
}

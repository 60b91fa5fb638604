package domain

import (
	"fmt"
	"strings"
)

// State labels one configuration of the machine's control logic.
// States are not enumerated up front: the transition table implicitly defines them.
type State string

// Symbol labels one unit of tape content.
type Symbol string

// Symbols splits s into one symbol per rune.
// It is the usual way to turn a textual input such as "101+11" into a tape.
func Symbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return out
}

// Join concatenates symbols into a single string.
func Join(symbols []Symbol) string {
	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteString(string(s))
	}
	return sb.String()
}

// Move is the head displacement applied after a rule fires.
type Move string

const (
	MoveLeft  Move = "L"
	MoveRight Move = "R"
	MoveStay  Move = "N"
)

// Delta returns the signed head displacement for the move.
func (m Move) Delta() int {
	switch m {
	case MoveLeft:
		return -1
	case MoveRight:
		return 1
	default:
		return 0
	}
}

// String returns the long name of the move.
func (m Move) String() string {
	switch m {
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	case MoveStay:
		return "Stay"
	default:
		return string(m)
	}
}

// ParseMove accepts the short (L, R, N, S) and long (Left, Right, Stay) spellings, case-insensitively.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return MoveLeft, nil
	case "r", "right":
		return MoveRight, nil
	case "n", "s", "stay", "none":
		return MoveStay, nil
	}
	return "", fmt.Errorf("invalid move %q (expected L, R or N)", s)
}

// Package tape implements the bi-infinite tape read and written by the machine head.
package tape

import "github.com/aretw0/turing/pkg/domain"

// Tape is a sparse, conceptually bi-infinite sequence of symbols.
// Positions never written read as the blank symbol. Not safe for concurrent use:
// a tape is owned by the single machine that drives it.
type Tape struct {
	cells   map[int]domain.Symbol
	blank   domain.Symbol
	min     int
	max     int
	touched bool
}

// New creates a tape holding initial at positions 0..len(initial)-1.
func New(initial []domain.Symbol, blank domain.Symbol) *Tape {
	t := &Tape{
		cells: make(map[int]domain.Symbol, len(initial)),
		blank: blank,
	}
	for i, s := range initial {
		t.Write(i, s)
	}
	return t
}

// Blank returns the symbol reported for unwritten positions.
func (t *Tape) Blank() domain.Symbol {
	return t.blank
}

// Read returns the symbol at pos, or the blank symbol if pos was never written.
func (t *Tape) Read(pos int) domain.Symbol {
	if s, ok := t.cells[pos]; ok {
		return s
	}
	return t.blank
}

// Write stores s at pos, extending the materialized range if needed.
func (t *Tape) Write(pos int, s domain.Symbol) {
	t.cells[pos] = s
	t.extend(pos)
}

// Touch extends the materialized range to pos without writing.
// The runtime calls it when the head visits a cell, so that visited blanks
// show up in Sequence like they do for a growing array.
func (t *Tape) Touch(pos int) {
	t.extend(pos)
}

func (t *Tape) extend(pos int) {
	if !t.touched {
		t.min, t.max, t.touched = pos, pos, true
		return
	}
	if pos < t.min {
		t.min = pos
	}
	if pos > t.max {
		t.max = pos
	}
}

// Bounds returns the minimum and maximum touched positions.
// ok is false for a tape that was never touched.
func (t *Tape) Bounds() (lo, hi int, ok bool) {
	return t.min, t.max, t.touched
}

// Sequence returns the contiguous range of symbols from the minimum to the maximum
// touched position, left to right. Gaps inside the range read as blank.
func (t *Tape) Sequence() []domain.Symbol {
	if !t.touched {
		return []domain.Symbol{}
	}
	out := make([]domain.Symbol, 0, t.max-t.min+1)
	for p := t.min; p <= t.max; p++ {
		out = append(out, t.Read(p))
	}
	return out
}

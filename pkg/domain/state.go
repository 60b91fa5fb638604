package domain

// Snapshot is a read-only view of a machine, used by presentation layers.
type Snapshot struct {
	// State is the current control state.
	State State `json:"state"`

	// Head is the absolute head position. It may be negative.
	Head int `json:"head"`

	// Steps counts the rules fired so far.
	Steps int `json:"steps"`

	// Halted is true once State belongs to the halting set.
	Halted bool `json:"halted"`

	// Tape holds the materialized cells, left to right.
	Tape []Symbol `json:"tape"`

	// Offset is the absolute position of Tape[0].
	Offset int `json:"offset"`
}

// Cell returns the symbol at absolute position pos, or blank if outside the materialized range.
func (s Snapshot) Cell(pos int, blank Symbol) Symbol {
	i := pos - s.Offset
	if i < 0 || i >= len(s.Tape) {
		return blank
	}
	return s.Tape[i]
}

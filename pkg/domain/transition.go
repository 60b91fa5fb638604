package domain

// Rule is the action registered for a (state, symbol) pair.
type Rule struct {
	// Next is the state the machine enters after the rule fires.
	Next State `json:"next" yaml:"next"`

	// Write is the symbol written under the head before it moves.
	Write Symbol `json:"write" yaml:"write"`

	// Move is the head displacement applied last.
	Move Move `json:"move" yaml:"move"`
}

// Transition is a fully qualified rule, as listed by table inspection.
type Transition struct {
	State  State  `json:"state" yaml:"state"`
	Symbol Symbol `json:"read" yaml:"read"`
	Rule
}

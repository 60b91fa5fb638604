package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
)

// StateBuilder collects the rules leaving one state.
type StateBuilder struct {
	name    string
	rules   []definition.RuleSpec
	err     error
	builder *Builder
}

// On starts a rule that fires when any of symbols is read.
func (s *StateBuilder) On(symbols ...string) *RuleBuilder {
	return &RuleBuilder{
		state: s,
		rule: definition.RuleSpec{
			State: s.name,
			Read:  symbols,
			Move:  string(domain.MoveStay),
		},
	}
}

// RuleBuilder provides a fluent API for configuring a rule.
type RuleBuilder struct {
	state *StateBuilder
	rule  definition.RuleSpec
}

// Write sets the symbol written before moving. Without it the read symbol is kept.
func (r *RuleBuilder) Write(symbol string) *RuleBuilder {
	r.rule.Write = symbol
	return r
}

// Move sets the head movement.
func (r *RuleBuilder) Move(m domain.Move) *RuleBuilder {
	r.rule.Move = string(m)
	return r
}

// Left moves the head one cell to the left.
func (r *RuleBuilder) Left() *RuleBuilder { return r.Move(domain.MoveLeft) }

// Right moves the head one cell to the right.
func (r *RuleBuilder) Right() *RuleBuilder { return r.Move(domain.MoveRight) }

// Stay keeps the head in place.
func (r *RuleBuilder) Stay() *RuleBuilder { return r.Move(domain.MoveStay) }

// Goto completes the rule with its target state and returns the state builder,
// so several rules can be chained.
func (r *RuleBuilder) Goto(next string) *StateBuilder {
	r.rule.Next = next
	if len(r.rule.Read) == 0 && r.state.err == nil {
		r.state.err = fmt.Errorf("state %q: rule to %q reads no symbol", r.state.name, next)
	}
	r.state.rules = append(r.state.rules, r.rule)
	return r.state
}

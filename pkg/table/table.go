// Package table holds the transition function of a machine.
package table

import (
	"sort"

	"github.com/aretw0/turing/pkg/domain"
)

// Table maps (state, symbol) pairs to rules.
// It is built before execution and only read while a machine runs.
type Table struct {
	rules map[domain.State]map[domain.Symbol]domain.Rule
	size  int
}

// New creates an empty table.
func New() *Table {
	return &Table{rules: make(map[domain.State]map[domain.Symbol]domain.Rule)}
}

// Set registers the rule for (state, symbol). A later registration for the
// same pair replaces the earlier one.
func (t *Table) Set(state domain.State, symbol domain.Symbol, next domain.State, write domain.Symbol, move domain.Move) {
	row, ok := t.rules[state]
	if !ok {
		row = make(map[domain.Symbol]domain.Rule)
		t.rules[state] = row
	}
	if _, exists := row[symbol]; !exists {
		t.size++
	}
	row[symbol] = domain.Rule{Next: next, Write: write, Move: move}
}

// Lookup returns the rule for (state, symbol). ok is false when no rule is registered.
func (t *Table) Lookup(state domain.State, symbol domain.Symbol) (rule domain.Rule, ok bool) {
	row, found := t.rules[state]
	if !found {
		return domain.Rule{}, false
	}
	rule, ok = row[symbol]
	return rule, ok
}

// Len returns the number of registered (state, symbol) pairs.
func (t *Table) Len() int {
	return t.size
}

// Transitions lists every registered rule, sorted by state then symbol.
func (t *Table) Transitions() []domain.Transition {
	out := make([]domain.Transition, 0, t.size)
	for state, row := range t.rules {
		for symbol, rule := range row {
			out = append(out, domain.Transition{State: state, Symbol: symbol, Rule: rule})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// States returns every state referenced by the table, either as a source or as a target, sorted.
func (t *Table) States() []domain.State {
	seen := make(map[domain.State]struct{})
	for state, row := range t.rules {
		seen[state] = struct{}{}
		for _, rule := range row {
			seen[rule.Next] = struct{}{}
		}
	}
	out := make([]domain.State, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
)

// Builder manages the definition construction.
type Builder struct {
	def    definition.Definition
	states map[string]*StateBuilder
	order  []string
}

// New creates a new definition builder.
func New(name string) *Builder {
	return &Builder{
		def:    definition.Definition{Name: name},
		states: make(map[string]*StateBuilder),
	}
}

// Describe sets the human readable description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Blank sets the blank symbol. Defaults to definition.DefaultBlank.
func (b *Builder) Blank(symbol string) *Builder {
	b.def.Blank = symbol
	return b
}

// Start sets the initial state.
func (b *Builder) Start(state string) *Builder {
	b.def.Start = state
	return b
}

// Halt adds halting states.
func (b *Builder) Halt(states ...string) *Builder {
	b.def.Halt = append(b.def.Halt, states...)
	return b
}

// Tape sets the default input, one symbol per character.
func (b *Builder) Tape(input string) *Builder {
	b.def.Tape = nil
	for _, s := range domain.Symbols(input) {
		b.def.Tape = append(b.def.Tape, string(s))
	}
	return b
}

// State returns the builder for the rules leaving state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build validates and returns the definition. Rules keep their declaration order,
// grouped by state in the order states were first mentioned.
func (b *Builder) Build() (*definition.Definition, error) {
	def := b.def
	def.Halt = append([]string(nil), b.def.Halt...)
	def.Tape = append(definition.TapeSpec(nil), b.def.Tape...)
	def.Rules = nil

	for _, name := range b.order {
		sb := b.states[name]
		if sb.err != nil {
			return nil, sb.err
		}
		def.Rules = append(def.Rules, sb.rules...)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition %q: %w", def.Name, err)
	}
	return &def, nil
}

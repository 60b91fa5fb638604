// Package definition loads declarative machine definitions from YAML or JSON documents.
package definition

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
)

// DefaultBlank is used when a definition does not name its blank symbol.
const DefaultBlank = " "

// Definition is the document form of a machine: its alphabet conventions,
// its initial and halting states, a default input and the transition rules.
type Definition struct {
	Name        string     `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Blank       string     `json:"blank" yaml:"blank" mapstructure:"blank"`
	Start       string     `json:"start" yaml:"start" mapstructure:"start"`
	Halt        []string   `json:"halt" yaml:"halt,flow" mapstructure:"halt"`
	Tape        TapeSpec   `json:"tape,omitempty" yaml:"tape,omitempty,flow" mapstructure:"tape"`
	Rules       []RuleSpec `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// TapeSpec lists the initial symbols. In documents it may also be written as a
// plain string, which is split into one symbol per character.
type TapeSpec []string

// RuleSpec is one entry of the rules list.
// Read may list several symbols sharing the same action; an empty Write keeps the read symbol.
type RuleSpec struct {
	State string   `json:"state" yaml:"state" mapstructure:"state"`
	Read  []string `json:"read" yaml:"read,flow" mapstructure:"read"`
	Next  string   `json:"next" yaml:"next" mapstructure:"next"`
	Write string   `json:"write,omitempty" yaml:"write,omitempty" mapstructure:"write"`
	Move  string   `json:"move" yaml:"move" mapstructure:"move"`
}

// Validate checks the structure of the document. The transition table itself is not
// checked for completeness: a missing rule only surfaces when a run reaches it.
func (d *Definition) Validate() error {
	var errs []error
	if d.Start == "" {
		errs = append(errs, errors.New("start state is required"))
	}
	for i, r := range d.Rules {
		if r.State == "" || r.Next == "" {
			errs = append(errs, fmt.Errorf("rule %d: state and next are required", i))
		}
		if len(r.Read) == 0 {
			errs = append(errs, fmt.Errorf("rule %d: read is required", i))
		}
		if _, err := domain.ParseMove(r.Move); err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Symbols converts the default tape to domain symbols.
func (d *Definition) Symbols() []domain.Symbol {
	out := make([]domain.Symbol, len(d.Tape))
	for i, s := range d.Tape {
		out[i] = domain.Symbol(s)
	}
	return out
}

// Build creates a machine from the definition. A nil input falls back to the
// definition's own tape.
func (d *Definition) Build(input []domain.Symbol, opts ...turing.Option) (*turing.Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition %q: %w", d.Name, err)
	}
	if input == nil {
		input = d.Symbols()
	}

	halting := make([]domain.State, len(d.Halt))
	for i, h := range d.Halt {
		halting[i] = domain.State(h)
	}

	if d.Name != "" {
		opts = append([]turing.Option{turing.WithName(d.Name)}, opts...)
	}
	m := turing.New(input, domain.Symbol(d.blank()), domain.State(d.Start), halting, opts...)

	for _, r := range d.Rules {
		move, _ := domain.ParseMove(r.Move)
		for _, read := range r.Read {
			write := r.Write
			if write == "" {
				write = read
			}
			m.SetTransition(domain.State(r.State), domain.Symbol(read), domain.State(r.Next), domain.Symbol(write), move)
		}
	}
	return m, nil
}

func (d *Definition) blank() string {
	if d.Blank == "" {
		return DefaultBlank
	}
	return d.Blank
}

// Fingerprint identifies the machine behavior of the definition: two definitions with
// the same fingerprint produce the same run for the same input.
func (d *Definition) Fingerprint() string {
	canonical := struct {
		Blank string     `json:"blank"`
		Start string     `json:"start"`
		Halt  []string   `json:"halt"`
		Rules []RuleSpec `json:"rules"`
	}{d.blank(), d.Start, d.Halt, d.Rules}

	data, _ := json.Marshal(canonical)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FromMachine exports the transition table of m as a definition.
func FromMachine(m *turing.Machine) *Definition {
	d := &Definition{
		Name:  m.Name,
		Blank: string(m.Blank()),
		Start: string(m.InitialState()),
	}
	for _, h := range m.HaltingStates() {
		d.Halt = append(d.Halt, string(h))
	}
	for _, tr := range m.Table().Transitions() {
		d.Rules = append(d.Rules, RuleSpec{
			State: string(tr.State),
			Read:  []string{string(tr.Symbol)},
			Next:  string(tr.Next),
			Write: string(tr.Write),
			Move:  string(tr.Move),
		})
	}
	return d
}

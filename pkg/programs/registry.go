package programs

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
)

// Builder creates a machine for a given input tape.
type Builder func(input []domain.Symbol, opts ...turing.Option) *turing.Machine

// Program is a named, documented builder.
type Program struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Example     string  `json:"example"`
	Build       Builder `json:"-"`
}

var registry = map[string]Program{
	"increment": {
		Name:        "increment",
		Description: "Increment a binary number by one",
		Example:     "101",
		Build:       BinaryIncrement,
	},
	"complement": {
		Name:        "complement",
		Description: "Compute the complement of a binary number",
		Example:     "101",
		Build:       BinaryComplement,
	},
	"addition": {
		Name:        "addition",
		Description: "Add two binary numbers separated by '+'",
		Example:     "101+11",
		Build:       BinaryAddition,
	},
}

// Lookup returns the program registered under name.
func Lookup(name string) (Program, error) {
	p, ok := registry[name]
	if !ok {
		return Program{}, fmt.Errorf("%q: %w", name, domain.ErrProgramNotFound)
	}
	return p, nil
}

// Names returns the registered program names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered program, sorted by name.
func All() []Program {
	out := make([]Program, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}

package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/programs"
)

// Source implements ports.DefinitionSource using an in-memory map.
// Safe for concurrent use.
type Source struct {
	mu   sync.RWMutex
	defs map[string]*definition.Definition
}

// NewSource creates a source holding the given definitions, keyed by name.
func NewSource(defs ...*definition.Definition) (*Source, error) {
	s := &Source{defs: make(map[string]*definition.Definition)}
	for _, d := range defs {
		if err := s.Add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewBuiltinSource exposes the programs package as definitions.
func NewBuiltinSource() *Source {
	s := &Source{defs: make(map[string]*definition.Definition)}
	for _, p := range programs.All() {
		def := definition.FromMachine(p.Build(nil))
		def.Name = p.Name
		def.Description = p.Description
		def.Tape = definition.TapeSpec(symbolsToStrings(domain.Symbols(p.Example)))
		s.defs[p.Name] = def
	}
	return s
}

// Add registers d, replacing any definition with the same name.
func (s *Source) Add(d *definition.Definition) error {
	if d.Name == "" {
		return fmt.Errorf("definition missing name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[d.Name] = d
	return nil
}

// Get returns the definition registered under name.
func (s *Source) Get(name string) (*definition.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.defs[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrProgramNotFound)
	}
	return d, nil
}

// List returns all definition names.
func (s *Source) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.defs))
	for k := range s.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

func symbolsToStrings(in []domain.Symbol) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

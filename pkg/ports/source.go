package ports

import "github.com/aretw0/turing/pkg/definition"

// DefinitionSource defines how the executor retrieves machine definitions by name.
// This allows the storage layer (built-in programs, a directory of files) to be decoupled.
type DefinitionSource interface {
	// Get returns the definition registered under name.
	// Returns domain.ErrProgramNotFound if the source has no such definition.
	Get(name string) (*definition.Definition, error)

	// List returns the names of all available definitions, sorted.
	List() ([]string, error)
}

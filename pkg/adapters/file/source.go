package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
)

// Source implements ports.DefinitionSource over a directory of definition files
// (*.yaml, *.yml, *.json). The directory is read on every call, so edits are picked
// up without a restart.
type Source struct {
	Dir string
}

// NewSource creates a source reading from dir.
func NewSource(dir string) *Source {
	return &Source{Dir: dir}
}

func isDefinition(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Get loads the definition stored in <name>.yaml, <name>.yml or <name>.json.
func (s *Source) Get(name string) (*definition.Definition, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid definition name %q", name)
	}

	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(s.Dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		def, err := definition.Load(path)
		if err != nil {
			return nil, err
		}
		def.Name = name
		return def, nil
	}
	return nil, fmt.Errorf("%q in %s: %w", name, s.Dir, domain.ErrProgramNotFound)
}

// List returns the names of all definition files in the directory.
func (s *Source) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isDefinition(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

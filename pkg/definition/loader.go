package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension. Anything but .json is YAML.
func FormatFor(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads a definition file (YAML or JSON).
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	def, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Parse decodes a definition document.
// The document is first read into a generic map so that loosely typed values
// (numeric symbols, a tape given as a string, a single halting state) decode the same
// way from YAML and JSON. Scalars keep their literal text: an unquoted 0011 stays
// "0011" instead of becoming a number.
func Parse(data []byte, format Format) (*Definition, error) {
	raw := make(map[string]any)

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse json definition: %w", err)
		}
	default:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml definition: %w", err)
		}
		if len(doc.Content) > 0 {
			m, ok := literal(doc.Content[0]).(map[string]any)
			if !ok {
				return nil, fmt.Errorf("failed to parse yaml definition: document is not a mapping")
			}
			raw = m
		}
	}

	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       tapeHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &def,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// literal converts a YAML node into maps, slices and strings, keeping every scalar
// as written.
func literal(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return literal(n.Content[0])
	case yaml.AliasNode:
		return literal(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = literal(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, literal(c))
		}
		return out
	default:
		if n.Tag == "!!null" {
			return nil
		}
		return n.Value
	}
}

// tapeHook splits a scalar tape ("101" or an unquoted 101) into one symbol per character.
// JSON numbers arrive as json.Number, whose kind is string.
func tapeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(TapeSpec{}) || from.Kind() != reflect.String {
		return data, nil
	}
	s := reflect.ValueOf(data).String()

	out := make(TapeSpec, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out, nil
}

// Marshal encodes a definition in the given format.
func Marshal(d *Definition, format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(d, "", "  ")
	}
	return yaml.Marshal(d)
}

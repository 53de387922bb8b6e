package tttor

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dictionary maps macro names to their raw bodies.
// Expansion only reads it, so one Dictionary may be shared by concurrent calls.
type Dictionary map[string]string

// Names returns the macro names in sorted order.
func (d Dictionary) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the body of a macro. Empty bodies are reported as undefined.
func (d Dictionary) Lookup(name string) (string, bool) {
	body := d[name]
	return body, body != ""
}

// SplitTemplates separates macro-definition templates from regular ones.
// A template whose slug starts with prefix defines the macro named by the
// rest of the slug, with its current code as the body. Regular templates are
// returned in their original order.
func SplitTemplates(templates []*StoredTemplate, prefix string) ([]*StoredTemplate, Dictionary) {
	regular := make([]*StoredTemplate, 0, len(templates))
	dict := make(Dictionary)
	for _, tmpl := range templates {
		if prefix != "" && strings.HasPrefix(tmpl.Slug, prefix) {
			dict[strings.TrimPrefix(tmpl.Slug, prefix)] = tmpl.Code
			continue
		}
		regular = append(regular, tmpl)
	}
	return regular, dict
}

// LoadDictionary decodes a YAML mapping of macro name to body.
func LoadDictionary(r io.Reader) (Dictionary, error) {
	var dict Dictionary
	if err := yaml.NewDecoder(r).Decode(&dict); err != nil {
		if err == io.EOF {
			return Dictionary{}, nil
		}
		return nil, fmt.Errorf("decode macro dictionary: %w", err)
	}
	if dict == nil {
		dict = Dictionary{}
	}
	return dict, nil
}

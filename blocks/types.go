// Package blocks describes block types and builds the registry of CSS
// selectors used when compiling per-block styles.
package blocks

import (
	"fmt"
	"os"

	"gsc/tree"
)

// Type is block type metadata relevant for styling.
type Type struct {
	Name      string
	Supports  *tree.Map
	Selectors *tree.Map
	// registered block style variations
	Styles []string
}

// ParseTypes decodes list of block types from JSON or YAML. Document is either
// a list of block type objects or an object with such list under
// "blockTypes".
func ParseTypes(data []byte) ([]Type, error) {
	doc, err := tree.ParseValue(data)
	if err != nil {
		return nil, err
	}
	if m, ok := doc.(*tree.Map); ok {
		doc = m.Value("blockTypes")
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("block types must be a list, got %T", doc)
	}

	types := make([]Type, 0, len(list))
	for i, item := range list {
		m, ok := item.(*tree.Map)
		if !ok {
			return nil, fmt.Errorf("block type #%d is not an object", i)
		}
		bt := Type{
			Name:      m.String("name"),
			Supports:  m.Map("supports"),
			Selectors: m.Map("selectors"),
		}
		if bt.Name == "" {
			return nil, fmt.Errorf("block type #%d has no name", i)
		}
		styles, _ := m.Value("styles").([]any)
		for _, s := range styles {
			switch s := s.(type) {
			case string:
				bt.Styles = append(bt.Styles, s)
			case *tree.Map:
				if name := s.String("name"); name != "" {
					bt.Styles = append(bt.Styles, name)
				}
			}
		}
		types = append(types, bt)
	}
	return types, nil
}

// LoadTypes reads block types from file.
func LoadTypes(path string) ([]Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read block types: %w", err)
	}
	types, err := ParseTypes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse block types from '%s': %w", path, err)
	}
	return types, nil
}

package tree

import (
	"errors"
	"fmt"
	"strconv"

	yaml "gopkg.in/yaml.v3"
)

// ErrNotMap is returned by Parse when document is not an object.
var ErrNotMap = errors.New("document is not an object")

// Parse decodes JSON or YAML document which must be an object. Key order of
// the source is preserved.
func Parse(data []byte) (*Map, error) {
	v, err := ParseValue(data)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return New(0), nil
	}
	m, ok := v.(*Map)
	if !ok {
		return nil, ErrNotMap
	}
	return m, nil
}

// ParseValue decodes arbitrary JSON or YAML document.
func ParseValue(data []byte) (any, error) {
	// JSON is valid YAML, and yaml.Node keeps mapping order for us
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		m := New(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Tag == "!!merge" {
				return nil, fmt.Errorf("line %d: merge keys are not supported", k.Line)
			}
			val, err := fromNode(v)
			if err != nil {
				return nil, err
			}
			m.set(k.Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			s = append(s, val)
		}
		return s, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, fmt.Errorf("line %d: unexpected node kind %d", n.Line, n.Kind)
}

func fromScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return b, nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			// out of range integers and such
			if f, err = strconv.ParseFloat(n.Value, 64); err != nil {
				return nil, fmt.Errorf("line %d: bad number %q", n.Line, n.Value)
			}
		}
		return f, nil
	default:
		return n.Value, nil
	}
}

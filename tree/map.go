// Package tree implements the data model of global styles: JSON-like values
// held in insertion ordered maps.
//
// Values stored in a tree are nil, bool, float64, string, []any and *Map.
// Key order is significant: it defines the order of generated CSS. Maps
// returned by the package are never modified after they have been published,
// all "modifying" operations return copies sharing unchanged subtrees.
package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Map is an insertion ordered string keyed map. Zero value and nil pointer are
// valid empty maps.
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty map with room for n keys.
func New(n int) *Map {
	return &Map{keys: make([]string, 0, n), values: make(map[string]any, n)}
}

// Of builds a map from alternating keys and values. It panics when key is
// not a string, which is always programmer error.
func Of(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("tree.Of: odd number of arguments")
	}
	m := New(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("tree.Of: key %v is not a string", kv[i]))
		}
		m.set(k, kv[i+1])
	}
	return m
}

// set is used only while a map is being built and has not been published.
func (m *Map) set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Len returns number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Has reports whether key is present, even with nil value.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Value returns value stored under key or nil.
func (m *Map) Value(key string) any {
	v, _ := m.Get(key)
	return v
}

// Map returns nested map stored under key or nil if value is not a map.
func (m *Map) Map(key string) *Map {
	v, _ := m.Value(key).(*Map)
	return v
}

// String returns string stored under key or empty string if value is not a
// string.
func (m *Map) String(key string) string {
	v, _ := m.Value(key).(string)
	return v
}

// All iterates over key/value pairs in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// With returns a copy of the map with key set to value. Existing key keeps its
// position, new key is appended.
func (m *Map) With(key string, value any) *Map {
	out := m.shallow(1)
	out.set(key, value)
	return out
}

// Without returns a copy of the map with keys removed.
func (m *Map) Without(keys ...string) *Map {
	return m.Filter(func(k string, _ any) bool {
		return !slices.Contains(keys, k)
	})
}

// Filter returns a copy of the map holding only pairs accepted by keep.
func (m *Map) Filter(keep func(key string, value any) bool) *Map {
	out := New(m.Len())
	for k, v := range m.All() {
		if keep(k, v) {
			out.set(k, v)
		}
	}
	return out
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	out := New(m.Len())
	for k, v := range m.All() {
		out.set(k, cloneValue(v))
	}
	return out
}

func (m *Map) shallow(extra int) *Map {
	out := New(m.Len() + extra)
	for k, v := range m.All() {
		out.set(k, v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case *Map:
		return v.Clone()
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = cloneValue(v[i])
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the map keeping key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("unable to encode value of %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

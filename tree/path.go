package tree

import "strings"

// Lookup follows path through nested maps and returns the value found or nil.
func Lookup(v any, path ...string) any {
	for _, key := range path {
		m, ok := v.(*Map)
		if !ok {
			return nil
		}
		if v, ok = m.Get(key); !ok {
			return nil
		}
	}
	return v
}

// LookupMap is Lookup which expects a map at the end of the path.
func LookupMap(v any, path ...string) *Map {
	m, _ := Lookup(v, path...).(*Map)
	return m
}

// Path splits dotted path into keys. Empty path yields no keys.
func Path(dotted string) []string {
	if dotted == "" {
		return nil
	}
	return strings.Split(dotted, ".")
}

// SetIn returns a copy of m with value placed at path. Intermediate maps are
// created as necessary, non-map values on the way are replaced. Subtrees not on
// the path are shared with the original.
func SetIn(m *Map, path []string, value any) *Map {
	if len(path) == 0 {
		if nm, ok := value.(*Map); ok {
			return nm
		}
		return m
	}
	if len(path) == 1 {
		return m.With(path[0], value)
	}
	return m.With(path[0], SetIn(m.Map(path[0]), path[1:], value))
}

// Merge deep merges user over base. Maps are merged recursively with base keys
// first, any other user value (arrays included) replaces base value.
func Merge(base, user *Map) *Map {
	out := New(base.Len() + user.Len())
	for k, v := range base.All() {
		out.set(k, v)
	}
	for k, uv := range user.All() {
		bv, exists := out.values[k]
		um, uok := uv.(*Map)
		bm, bok := bv.(*Map)
		if exists && uok && bok {
			out.set(k, Merge(bm, um))
			continue
		}
		out.set(k, uv)
	}
	return out
}

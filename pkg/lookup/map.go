package lookup

import (
	"encoding/json"
	"iter"
	"sort"
)

// Map is an immutable key-normalized mapping. Lookups of missing keys
// return nil instead of failing.
type Map struct {
	entries map[string]any
	keys    []string
}

// NewMap creates a map from entries, normalizing every key with
// NormalizeKey. When two keys normalize to the same value the one that
// sorts last wins.
func NewMap(entries map[string]any) *Map {
	raw := make([]string, 0, len(entries))
	for k := range entries {
		raw = append(raw, k)
	}
	sort.Strings(raw)

	m := &Map{entries: make(map[string]any, len(entries))}
	for _, k := range raw {
		nk := NormalizeKey(k)
		if _, seen := m.entries[nk]; !seen {
			m.keys = append(m.keys, nk)
		}
		m.entries[nk] = entries[k]
	}
	sort.Strings(m.keys)
	return m
}

// Get returns the value for key, or nil when the key is absent
func (m *Map) Get(key string) any {
	v, _ := m.Lookup(key)
	return v
}

// Lookup returns the value for key and whether it was present
func (m *Map) Lookup(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.entries[NormalizeKey(key)]
	return v, ok
}

// Has reports whether key is present
func (m *Map) Has(key string) bool {
	_, ok := m.Lookup(key)
	return ok
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the normalized keys in sorted order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates over entries in key order
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.entries[k]) {
				return
			}
		}
	}
}

// StringMap returns the string-valued entries
func (m *Map) StringMap() map[string]string {
	out := make(map[string]string)
	for k, v := range m.All() {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// MarshalJSON encodes the map as a JSON object
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.entries)
}

// MarshalYAML encodes the map as a YAML mapping
func (m *Map) MarshalYAML() (interface{}, error) {
	out := make(map[string]any, m.Len())
	for k, v := range m.All() {
		out[k] = v
	}
	return out, nil
}

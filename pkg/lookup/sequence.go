package lookup

import (
	"encoding/json"
	"iter"
	"strconv"
)

// Sequence is an immutable ordered list of typed values
type Sequence struct {
	kind  Kind
	items []any
}

// NewSequence creates a sequence holding a copy of items
func NewSequence(kind Kind, items []any) *Sequence {
	copied := make([]any, len(items))
	copy(copied, items)
	return &Sequence{kind: kind, items: copied}
}

// Kind returns the element kind
func (s *Sequence) Kind() Kind {
	if s == nil {
		return KindAny
	}
	return s.kind
}

// Len returns the number of elements
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the element at index i. Negative indexes count from the end.
// Out of range indexes yield nil.
func (s *Sequence) At(i int) any {
	if s == nil {
		return nil
	}
	if i < 0 {
		i += len(s.items)
	}
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// Get implements Getter using a decimal index as key
func (s *Sequence) Get(key string) any {
	i, err := strconv.Atoi(key)
	if err != nil {
		return nil
	}
	return s.At(i)
}

// All iterates over index/value pairs in order
func (s *Sequence) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		if s == nil {
			return
		}
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Items returns a copy of the elements
func (s *Sequence) Items() []any {
	if s == nil {
		return nil
	}
	out := make([]any, len(s.items))
	copy(out, s.items)
	return out
}

// Strings returns the string elements of the sequence, skipping the rest
func (s *Sequence) Strings() []string {
	var out []string
	for _, v := range s.All() {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// MarshalJSON encodes the sequence as a JSON array
func (s *Sequence) MarshalJSON() ([]byte, error) {
	if s == nil || s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// MarshalYAML encodes the sequence as a YAML sequence
func (s *Sequence) MarshalYAML() (interface{}, error) {
	return s.Items(), nil
}

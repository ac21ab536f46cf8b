package lookup

import "strings"

// Kind describes the element type carried by a Sequence
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBool
	KindMap
	KindSequence
	KindReference
	KindIPAddress
	KindObject // Resource specific nested value
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindSequence:
		return "sequence"
	case KindReference:
		return "reference"
	case KindIPAddress:
		return "ip_address"
	case KindObject:
		return "object"
	default:
		return "any"
	}
}

// Getter is implemented by every value that supports keyed access
type Getter interface {
	// Get returns the value stored under key, or nil when it is absent
	Get(key string) any
}

// NormalizeKey returns the canonical form of a map key: trimmed, lower case,
// with '-', '.' and spaces folded to '_'.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '.', ' ':
			return '_'
		}
		return r
	}, key)
}

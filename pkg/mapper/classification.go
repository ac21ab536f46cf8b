package mapper

import (
	"fmt"
	"sort"

	"github.com/cuemby/vesinspect/pkg/types"
)

// Category tells the mapper how to convert a spec field
type Category int

const (
	// Simple fields pass through: arrays become lookup.Sequence, objects
	// lookup.Map, scalars stay as they are.
	Simple Category = iota
	// IPAddress fields hold an IPv4/IPv6 literal (or a list of them).
	IPAddress
	// Reference fields hold a {name, namespace, tenant} object (or a list).
	Reference
	// EmptyObjectMarker fields hold a oneof choice like {"no_proxy": {}}.
	EmptyObjectMarker
	// NestedObject fields are built by a resource specific constructor.
	NestedObject
	// NestedArray fields are lists of NestedObject values.
	NestedArray
)

// String returns the category name
func (c Category) String() string {
	switch c {
	case Simple:
		return "simple"
	case IPAddress:
		return "ip_address"
	case Reference:
		return "reference"
	case EmptyObjectMarker:
		return "empty_object_marker"
	case NestedObject:
		return "nested_object"
	case NestedArray:
		return "nested_array"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// NestedFunc builds a resource specific value from a raw nested object.
// Keys it does not know about must be ignored.
type NestedFunc func(raw map[string]any) (any, error)

// Classification describes the spec fields of one resource kind. It is
// plain data: build it once (usually as a package variable) and share it.
type Classification struct {
	// Kind names the resource kind in logs, metrics and errors
	Kind string

	// Fields maps a gc_spec field name to its category
	Fields map[string]Category

	// Nested holds the constructor of every NestedObject/NestedArray field
	Nested map[string]NestedFunc
}

// Validate checks that every nested field has a constructor
func (c *Classification) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: classification is nil", types.ErrConfiguration)
	}
	if c.Kind == "" {
		return fmt.Errorf("%w: classification has no kind", types.ErrConfiguration)
	}
	for _, name := range c.FieldNames() {
		switch c.Fields[name] {
		case NestedObject, NestedArray:
			if c.Nested[name] == nil {
				return fmt.Errorf("%w: %s field %q has no nested constructor", types.ErrConfiguration, c.Kind, name)
			}
		}
	}
	return nil
}

// FieldNames returns the classified field names in sorted order
func (c *Classification) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for name := range c.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldsOf returns the sorted names of the fields in category cat
func (c *Classification) FieldsOf(cat Category) []string {
	var names []string
	for _, name := range c.FieldNames() {
		if c.Fields[name] == cat {
			names = append(names, name)
		}
	}
	return names
}

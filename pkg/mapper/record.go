package mapper

import (
	"sort"

	"github.com/cuemby/vesinspect/pkg/types"
)

// Record is the typed, read-only result of mapping one raw document. Field
// values are one of: string, bool, int64, float64, netip.Addr,
// types.Reference, *lookup.Sequence, *lookup.Map or a value returned by a
// NestedFunc. Absent fields are simply not present.
type Record struct {
	kind           string
	metadata       *types.Metadata
	systemMetadata *types.SystemMetadata
	fields         map[string]any
	diagnostics    Diagnostics
}

// Kind returns the resource kind of the classification used
func (r *Record) Kind() string {
	if r == nil {
		return ""
	}
	return r.kind
}

// Exists reports whether the document carried metadata. A lookup that got
// a 404 yields a Record that does not exist.
func (r *Record) Exists() bool {
	return r != nil && r.metadata != nil
}

// Metadata returns a copy of the metadata, or nil when absent
func (r *Record) Metadata() *types.Metadata {
	if r == nil {
		return nil
	}
	return cloneMetadata(r.metadata)
}

// SystemMetadata returns a copy of the system metadata, or nil when absent
func (r *Record) SystemMetadata() *types.SystemMetadata {
	if r == nil {
		return nil
	}
	return cloneSystemMetadata(r.systemMetadata)
}

// Field returns the value of a spec field, or nil when absent
func (r *Record) Field(name string) any {
	v, _ := r.Lookup(name)
	return v
}

// Lookup returns the value of a spec field and whether it is present
func (r *Record) Lookup(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.fields[name]
	return v, ok
}

// FieldNames returns the names of the present spec fields, sorted
func (r *Record) FieldNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Diagnostics returns the non-fatal observations made while mapping
func (r *Record) Diagnostics() Diagnostics {
	if r == nil {
		return nil
	}
	return append(Diagnostics(nil), r.diagnostics...)
}

// Get implements lookup.Getter. "metadata" and "system_metadata" return the
// metadata copies; any other key is looked up among the spec fields.
func (r *Record) Get(key string) any {
	switch key {
	case "metadata":
		if md := r.Metadata(); md != nil {
			return md
		}
		return nil
	case "system_metadata":
		if sm := r.SystemMetadata(); sm != nil {
			return sm
		}
		return nil
	default:
		return r.Field(key)
	}
}

package mapper

import "fmt"

// Diagnostic codes
const (
	CodeUnknownTopLevelField = "unknown_top_level_field"
	CodeUnknownSpecField     = "unknown_spec_field"
	CodeUnknownMetadataField = "unknown_metadata_field"
)

// Diagnostic is a non-fatal observation made while mapping, such as a raw
// field no classification covers
type Diagnostic struct {
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Field is the dotted path of the raw field, e.g. "spec.gc_spec.foo".
	Field string
	// Message is the human-readable description.
	Message string
}

// String returns "code: message"
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Diagnostics is the ordered list of diagnostics of one mapping
type Diagnostics []Diagnostic

// Fields returns the field paths of all diagnostics
func (d Diagnostics) Fields() []string {
	out := make([]string, 0, len(d))
	for _, diag := range d {
		out = append(out, diag.Field)
	}
	return out
}

// WithCode returns the diagnostics carrying code
func (d Diagnostics) WithCode(code string) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Code == code {
			out = append(out, diag)
		}
	}
	return out
}

func (d *Diagnostics) add(code, field, format string, args ...any) {
	*d = append(*d, Diagnostic{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

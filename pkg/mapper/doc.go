/*
Package mapper turns a raw API document into a typed, read-only Record.

The engine knows nothing about any particular resource kind. A
Classification tells it, per gc_spec field, which Category of conversion to
apply, and supplies constructors for nested values:

	var siteFields = &mapper.Classification{
		Kind: "ves_site",
		Fields: map[string]mapper.Category{
			"site_state":   mapper.Simple,
			"inside_vip":   mapper.IPAddress,
			"connected_re": mapper.Reference,
			"coordinates":  mapper.NestedObject,
		},
		Nested: map[string]mapper.NestedFunc{
			"coordinates": newCoordinates,
		},
	}

	rec, err := mapper.Map(raw, siteFields)

Fields the classification does not cover are skipped and reported through
Record.Diagnostics, never dropped silently. A field that cannot be
converted fails the whole mapping with a *FieldError.
*/
package mapper

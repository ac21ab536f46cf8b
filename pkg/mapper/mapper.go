package mapper

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cuemby/vesinspect/pkg/log"
	"github.com/cuemby/vesinspect/pkg/lookup"
	"github.com/cuemby/vesinspect/pkg/metrics"
	"github.com/cuemby/vesinspect/pkg/scalar"
	"github.com/cuemby/vesinspect/pkg/types"
	"github.com/rs/zerolog"
)

// Map converts a raw document into a Record following c.
//
// metadata and system_metadata are mapped into their fixed shapes; spec is
// unwrapped to spec.gc_spec and every field found there is converted
// according to its category. Fields that c does not cover, and unknown
// top-level keys, are recorded as diagnostics and skipped. The first field
// that cannot be converted aborts the mapping with a *FieldError; no
// partial Record is returned.
//
// A nil document maps to a Record that does not exist.
func Map(raw map[string]any, c *Classification) (*Record, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := log.WithComponent("mapper").With().Str("kind", c.Kind).Logger()

	rec, err := mapDocument(raw, c)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) && fe.Kind == "" {
			fe.Kind = c.Kind
		}
		metrics.MappingFailuresTotal.WithLabelValues(c.Kind).Inc()
		logger.Error().Err(err).Msg("Failed to map resource")
		return nil, err
	}

	report(logger, c.Kind, rec.diagnostics)
	return rec, nil
}

func mapDocument(raw map[string]any, c *Classification) (*Record, error) {
	rec := &Record{
		kind:   c.Kind,
		fields: make(map[string]any),
	}

	for _, key := range sortedKeys(raw) {
		value := raw[key]
		switch key {
		case "metadata":
			if value == nil {
				continue
			}
			md, err := mapMetadata(value, &rec.diagnostics)
			if err != nil {
				return nil, &FieldError{Field: key, Category: NestedObject, Err: err}
			}
			rec.metadata = md
		case "system_metadata":
			if value == nil {
				continue
			}
			sm, err := mapSystemMetadata(value, &rec.diagnostics)
			if err != nil {
				return nil, wrapField(key, err)
			}
			rec.systemMetadata = sm
		case "spec":
			if err := mapSpec(rec, value, c); err != nil {
				return nil, err
			}
		default:
			rec.diagnostics.add(CodeUnknownTopLevelField, key, "top-level field %q is not mapped", key)
		}
	}

	return rec, nil
}

func mapSpec(rec *Record, raw any, c *Classification) error {
	if raw == nil {
		return nil
	}
	spec, ok := raw.(map[string]any)
	if !ok {
		return &FieldError{Field: "spec", Category: NestedObject,
			Err: fmt.Errorf("%w: spec must be an object, got %T", types.ErrParse, raw)}
	}

	for _, key := range sortedKeys(spec) {
		if key != "gc_spec" {
			rec.diagnostics.add(CodeUnknownSpecField, "spec."+key, "spec field %q is not mapped", key)
		}
	}

	gcSpec, ok := spec["gc_spec"].(map[string]any)
	if !ok {
		if spec["gc_spec"] != nil {
			return &FieldError{Field: "spec.gc_spec", Category: NestedObject,
				Err: fmt.Errorf("%w: gc_spec must be an object, got %T", types.ErrParse, spec["gc_spec"])}
		}
		return nil
	}

	for _, name := range sortedKeys(gcSpec) {
		cat, known := c.Fields[name]
		if !known {
			rec.diagnostics.add(CodeUnknownSpecField, "spec.gc_spec."+name, "%s field %q is not classified", c.Kind, name)
			continue
		}

		value, present, err := mapField(gcSpec[name], cat, c.Nested[name])
		if err != nil {
			return &FieldError{Field: name, Category: cat, Err: err}
		}
		if present {
			rec.fields[name] = value
		}
	}
	return nil
}

// mapField converts one classified value. present is false for absent
// values, which are left out of the Record.
func mapField(raw any, cat Category, nested NestedFunc) (value any, present bool, err error) {
	switch cat {
	case Simple:
		if raw == nil {
			return nil, false, nil
		}
		return scalar.Value(raw), true, nil

	case IPAddress:
		return mapIPAddress(raw)

	case Reference:
		return mapReference(raw)

	case EmptyObjectMarker:
		marker, err := scalar.EmptyObjectMarker(raw)
		if err != nil || marker == "" {
			return nil, false, err
		}
		return marker, true, nil

	case NestedObject:
		if raw == nil {
			return nil, false, nil
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("%w: expected an object, got %T", types.ErrParse, raw)
		}
		v, err := nested(obj)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil

	case NestedArray:
		if raw == nil {
			return nil, false, nil
		}
		arr, ok := raw.([]any)
		if !ok {
			return nil, false, fmt.Errorf("%w: expected an array, got %T", types.ErrParse, raw)
		}
		items := make([]any, 0, len(arr))
		for i, elem := range arr {
			obj, ok := elem.(map[string]any)
			if !ok {
				return nil, false, fmt.Errorf("%w: element %d is %T, not an object", types.ErrParse, i, elem)
			}
			v, err := nested(obj)
			if err != nil {
				return nil, false, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, v)
		}
		return lookup.NewSequence(lookup.KindObject, items), true, nil

	default:
		return nil, false, fmt.Errorf("%w: unsupported category %s", types.ErrConfiguration, cat)
	}
}

func report(logger zerolog.Logger, kind string, diags Diagnostics) {
	for _, d := range diags {
		metrics.MappingDiagnosticsTotal.WithLabelValues(kind, d.Code).Inc()
		logger.Warn().Str("code", d.Code).Str("field", d.Field).Msg(d.Message)
	}
}

func wrapField(field string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return err
	}
	return &FieldError{Field: field, Category: NestedObject, Err: err}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

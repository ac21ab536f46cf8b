// Package scalar converts raw JSON values into the typed values held by a
// mapped resource: IP addresses, timestamps, empty-object markers and
// lookup containers.
package scalar

import (
	"encoding/json"
	"fmt"
	"math"
	"net/netip"
	"sort"
	"strings"
	"time"

	"github.com/cuemby/vesinspect/pkg/lookup"
	"github.com/cuemby/vesinspect/pkg/types"
)

// ParseIP parses an IPv4 or IPv6 literal. nil and "" yield the zero
// netip.Addr, which callers treat as absent.
func ParseIP(raw any) (netip.Addr, error) {
	switch v := raw.(type) {
	case nil:
		return netip.Addr{}, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return netip.Addr{}, nil
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return netip.Addr{}, fmt.Errorf("%w: invalid IP address %q", types.ErrParse, v)
		}
		return addr, nil
	default:
		return netip.Addr{}, fmt.Errorf("%w: IP address must be a string, got %T", types.ErrParse, raw)
	}
}

// ParseTimestamp parses an RFC 3339 timestamp. nil and "" yield the zero time.
func ParseTimestamp(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, nil
	case string:
		if v == "" {
			return time.Time{}, nil
		}
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", types.ErrParse, v)
		}
		return ts, nil
	default:
		return time.Time{}, fmt.Errorf("%w: timestamp must be a string, got %T", types.ErrParse, raw)
	}
}

// EmptyObjectMarker returns the name of the key selected in a oneof-style
// object such as {"no_proxy": {}}. nil and empty objects yield "", any
// other non-object is an error. When more than one key is present the
// first in sorted order is returned.
func EmptyObjectMarker(raw any) (string, error) {
	if raw == nil {
		return "", nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: marker must be an object, got %T", types.ErrParse, raw)
	}
	if len(obj) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], nil
}

// Number converts a JSON number into int64 when it is integral and float64
// otherwise.
func Number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return f
}

// Value converts a raw JSON value into its typed form. Arrays become
// lookup.Sequence, objects lookup.Map and numbers int64/float64. Strings,
// booleans and nil pass through.
func Value(raw any) any {
	switch v := raw.(type) {
	case []any:
		return Array(v)
	case map[string]any:
		return Object(v)
	case json.Number:
		return Number(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v)
		}
		return v
	default:
		return v
	}
}

// Array converts a raw JSON array into a sequence whose kind is taken from
// the first element. Empty arrays yield an empty KindAny sequence.
func Array(raw []any) *lookup.Sequence {
	if len(raw) == 0 {
		return lookup.NewSequence(lookup.KindAny, nil)
	}
	items := make([]any, len(raw))
	for i, v := range raw {
		items[i] = Value(v)
	}
	return lookup.NewSequence(KindOf(items[0]), items)
}

// Object converts a raw JSON object into a lookup map
func Object(raw map[string]any) *lookup.Map {
	entries := make(map[string]any, len(raw))
	for k, v := range raw {
		entries[k] = Value(v)
	}
	return lookup.NewMap(entries)
}

// Strings converts a raw JSON array of strings. Non-string elements are
// rendered with fmt.
func Strings(raw any) []string {
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		} else if v != nil {
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

// StringMap converts a raw JSON object of strings such as labels or
// annotations.
func StringMap(raw any) map[string]string {
	obj, ok := raw.(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			out[k] = s
		} else if v != nil {
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

// String returns raw when it is a string and "" otherwise
func String(raw any) string {
	s, _ := raw.(string)
	return s
}

// Bool returns raw when it is a bool and false otherwise
func Bool(raw any) bool {
	b, _ := raw.(bool)
	return b
}

// Float returns raw as a float64 when it is numeric
func Float(raw any) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// KindOf returns the sequence kind matching an already converted value
func KindOf(v any) lookup.Kind {
	switch v.(type) {
	case string:
		return lookup.KindString
	case int64:
		return lookup.KindInteger
	case float64:
		return lookup.KindFloat
	case bool:
		return lookup.KindBool
	case *lookup.Map:
		return lookup.KindMap
	case *lookup.Sequence:
		return lookup.KindSequence
	case types.Reference, *types.Reference:
		return lookup.KindReference
	case netip.Addr:
		return lookup.KindIPAddress
	case nil:
		return lookup.KindAny
	default:
		return lookup.KindObject
	}
}

package mapper

import (
	"fmt"
	"net/netip"

	"github.com/cuemby/vesinspect/pkg/lookup"
	"github.com/cuemby/vesinspect/pkg/scalar"
	"github.com/cuemby/vesinspect/pkg/types"
)

// ParseReference builds a Reference from a raw object. name, namespace and
// tenant are required; kind and uid are optional.
func ParseReference(raw any) (types.Reference, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return types.Reference{}, fmt.Errorf("%w: reference must be an object, got %T", types.ErrParse, raw)
	}

	ref := referenceFrom(obj)
	var missing []string
	if ref.Name == "" {
		missing = append(missing, "name")
	}
	if ref.Namespace == "" {
		missing = append(missing, "namespace")
	}
	if ref.Tenant == "" {
		missing = append(missing, "tenant")
	}
	if len(missing) > 0 {
		return types.Reference{}, fmt.Errorf("%w: reference is missing %v", types.ErrConfiguration, missing)
	}
	return ref, nil
}

// referenceFrom reads reference fields without enforcing required ones.
// owner_view, for instance, carries no tenant.
func referenceFrom(obj map[string]any) types.Reference {
	return types.Reference{
		Name:      scalar.String(obj["name"]),
		Namespace: scalar.String(obj["namespace"]),
		Tenant:    scalar.String(obj["tenant"]),
		Kind:      scalar.String(obj["kind"]),
		UID:       scalar.String(obj["uid"]),
	}
}

// mapReference converts a Reference field: a single object, or a list of
// them. ok is false when the value is absent.
func mapReference(raw any) (any, bool, error) {
	switch v := raw.(type) {
	case nil:
		return nil, false, nil
	case []any:
		items := make([]any, 0, len(v))
		for i, elem := range v {
			ref, err := ParseReference(elem)
			if err != nil {
				return nil, false, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, ref)
		}
		return lookup.NewSequence(lookup.KindReference, items), true, nil
	default:
		ref, err := ParseReference(v)
		if err != nil {
			return nil, false, err
		}
		return ref, true, nil
	}
}

// mapIPAddress converts an IPAddress field: a single literal, or a list.
// Empty literals are absent; inside a list they are skipped.
func mapIPAddress(raw any) (any, bool, error) {
	switch v := raw.(type) {
	case []any:
		items := make([]any, 0, len(v))
		for i, elem := range v {
			addr, err := scalar.ParseIP(elem)
			if err != nil {
				return nil, false, fmt.Errorf("element %d: %w", i, err)
			}
			if addr.IsValid() {
				items = append(items, addr)
			}
		}
		return lookup.NewSequence(lookup.KindIPAddress, items), true, nil
	default:
		addr, err := scalar.ParseIP(v)
		if err != nil {
			return nil, false, err
		}
		if addr == (netip.Addr{}) {
			return nil, false, nil
		}
		return addr, true, nil
	}
}

package resource

import (
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/cuemby/vesinspect/pkg/lookup"
	"github.com/cuemby/vesinspect/pkg/types"
)

// Get resolves a dotted property path against the site, for assertion
// layers that address properties by string:
//
//	site.Get("metadata.labels.env")
//	site.Get("spec.coordinates.latitude")
//	site.Get("connected_re.0.name")
//
// The leading "spec." is optional. Any segment that does not resolve
// yields nil.
func (s *Site) Get(path string) any {
	if path == "" {
		return nil
	}
	segments := strings.Split(path, ".")
	if segments[0] == "spec" {
		segments = segments[1:]
		if len(segments) == 0 {
			return nil
		}
	}

	var cur any = s.record
	for _, seg := range segments {
		cur = step(cur, seg)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// step resolves one path segment
func step(v any, seg string) any {
	switch x := v.(type) {
	case lookup.Getter:
		return x.Get(seg)
	case map[string]string:
		if s, ok := x[seg]; ok {
			return s
		}
	case []string:
		if i, ok := index(seg, len(x)); ok {
			return x[i]
		}
	}
	return nil
}

func index(seg string, n int) (int, bool) {
	i, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// Properties returns the site as a tree of plain values (maps, slices,
// strings, numbers and bools) for JSON or YAML rendering. A site that does
// not exist renders as {"exists": false}.
func (s *Site) Properties() map[string]any {
	props := map[string]any{
		"kind":      SiteKind,
		"namespace": s.namespace,
		"name":      s.name,
		"exists":    s.Exists(),
	}
	if !s.Exists() {
		return props
	}

	props["metadata"] = metadataProperties(s.Metadata())
	if sm := s.SystemMetadata(); sm != nil {
		props["system_metadata"] = systemMetadataProperties(sm)
	}

	spec := make(map[string]any)
	for _, name := range s.FieldNames() {
		spec[name] = Plain(s.Field(name))
	}
	props["spec"] = spec

	if diags := s.Diagnostics(); len(diags) > 0 {
		props["unmapped_fields"] = diags.Fields()
	}
	return props
}

func metadataProperties(md *types.Metadata) map[string]any {
	return map[string]any{
		"name":        md.Name,
		"namespace":   md.Namespace,
		"labels":      md.Labels,
		"annotations": md.Annotations,
		"description": md.Description,
		"disable":     md.Disable,
	}
}

func systemMetadataProperties(sm *types.SystemMetadata) map[string]any {
	props := map[string]any{
		"creator_class": sm.CreatorClass,
		"creator_id":    sm.CreatorID,
		"tenant":        sm.Tenant,
		"uid":           sm.UID,
		"finalizers":    plainStrings(sm.Finalizers),
	}
	for key, ts := range map[string]time.Time{
		"creation_timestamp":     sm.CreationTimestamp,
		"modification_timestamp": sm.ModificationTimestamp,
		"deletion_timestamp":     sm.DeletionTimestamp,
	} {
		if !ts.IsZero() {
			props[key] = ts.Format(time.RFC3339Nano)
		}
	}
	if sm.OwnerView != nil {
		props["owner_view"] = Plain(*sm.OwnerView)
	}
	return props
}

// Plain converts a mapped value into plain data: addresses become strings,
// references and nested values become maps and lookup containers become
// slices and maps.
func Plain(v any) any {
	switch x := v.(type) {
	case netip.Addr:
		return x.String()
	case types.Reference:
		ref := map[string]any{
			"name":      x.Name,
			"namespace": x.Namespace,
			"tenant":    x.Tenant,
		}
		if x.Kind != "" {
			ref["kind"] = x.Kind
		}
		if x.UID != "" {
			ref["uid"] = x.UID
		}
		return ref
	case Coordinates:
		return map[string]any{"latitude": x.Latitude, "longitude": x.Longitude}
	case VIPParams:
		return map[string]any{
			"az_name":           x.AZName,
			"inside_vip":        Plain(x.InsideVIP),
			"outside_vip":       Plain(x.OutsideVIP),
			"inside_vip_cname":  x.InsideVIPCname,
			"outside_vip_cname": x.OutsideVIPCname,
		}
	case *lookup.Sequence:
		out := make([]any, 0, x.Len())
		for _, item := range x.All() {
			out = append(out, Plain(item))
		}
		return out
	case *lookup.Map:
		out := make(map[string]any, x.Len())
		for k, item := range x.All() {
			out[k] = Plain(item)
		}
		return out
	case *types.Reference:
		if x == nil {
			return nil
		}
		return Plain(*x)
	case *types.Metadata:
		if x == nil {
			return nil
		}
		return metadataProperties(x)
	case *types.SystemMetadata:
		if x == nil {
			return nil
		}
		return systemMetadataProperties(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return v
	}
}

func plainStrings(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

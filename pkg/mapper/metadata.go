package mapper

import (
	"fmt"
	"sort"
	"time"

	"github.com/cuemby/vesinspect/pkg/scalar"
	"github.com/cuemby/vesinspect/pkg/types"
)

var metadataFields = map[string]bool{
	"name":        true,
	"namespace":   true,
	"annotations": true,
	"labels":      true,
	"description": true,
	"disable":     true,
	"uid":         true, // Always empty on reads; uid lives in system_metadata
}

var systemMetadataFields = map[string]bool{
	"creation_timestamp":     true,
	"modification_timestamp": true,
	"deletion_timestamp":     true,
	"creator_class":          true,
	"creator_id":             true,
	"finalizers":             true,
	"owner_view":             true,
	"tenant":                 true,
	"uid":                    true,
}

func mapMetadata(raw any, diags *Diagnostics) (*types.Metadata, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: metadata must be an object, got %T", types.ErrParse, raw)
	}
	reportUnknown(obj, metadataFields, "metadata", diags)

	return &types.Metadata{
		Name:        scalar.String(obj["name"]),
		Namespace:   scalar.String(obj["namespace"]),
		Annotations: scalar.StringMap(obj["annotations"]),
		Labels:      scalar.StringMap(obj["labels"]),
		Description: scalar.String(obj["description"]),
		Disable:     scalar.Bool(obj["disable"]),
	}, nil
}

func mapSystemMetadata(raw any, diags *Diagnostics) (*types.SystemMetadata, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: system_metadata must be an object, got %T", types.ErrParse, raw)
	}
	reportUnknown(obj, systemMetadataFields, "system_metadata", diags)

	sm := &types.SystemMetadata{
		CreatorClass: scalar.String(obj["creator_class"]),
		CreatorID:    scalar.String(obj["creator_id"]),
		Finalizers:   scalar.Strings(obj["finalizers"]),
		Tenant:       scalar.String(obj["tenant"]),
		UID:          scalar.String(obj["uid"]),
	}

	timestamps := []struct {
		key string
		dst *time.Time
	}{
		{"creation_timestamp", &sm.CreationTimestamp},
		{"modification_timestamp", &sm.ModificationTimestamp},
		{"deletion_timestamp", &sm.DeletionTimestamp},
	}
	for _, ts := range timestamps {
		parsed, err := scalar.ParseTimestamp(obj[ts.key])
		if err != nil {
			return nil, &FieldError{Field: "system_metadata." + ts.key, Category: Simple, Err: err}
		}
		*ts.dst = parsed
	}

	if ov, ok := obj["owner_view"].(map[string]any); ok && len(ov) > 0 {
		ref := referenceFrom(ov)
		sm.OwnerView = &ref
	}

	return sm, nil
}

func reportUnknown(obj map[string]any, known map[string]bool, section string, diags *Diagnostics) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if !known[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		diags.add(CodeUnknownMetadataField, section+"."+k, "%s field %q is not mapped", section, k)
	}
}

func cloneMetadata(m *types.Metadata) *types.Metadata {
	if m == nil {
		return nil
	}
	out := *m
	out.Annotations = cloneStrings(m.Annotations)
	out.Labels = cloneStrings(m.Labels)
	return &out
}

func cloneSystemMetadata(s *types.SystemMetadata) *types.SystemMetadata {
	if s == nil {
		return nil
	}
	out := *s
	if s.Finalizers != nil {
		out.Finalizers = append([]string(nil), s.Finalizers...)
	}
	if s.OwnerView != nil {
		ov := *s.OwnerView
		out.OwnerView = &ov
	}
	return &out
}

func cloneStrings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

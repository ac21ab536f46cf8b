package types

import (
	"fmt"
	"time"
)

// Reference identifies another VES object
type Reference struct {
	Name      string
	Namespace string
	Tenant    string
	Kind      string // Optional, empty when absent
	UID       string // Optional, empty when absent
}

// String returns tenant/namespace/name, prefixed with the kind when known
func (r Reference) String() string {
	if r.Kind != "" {
		return fmt.Sprintf("%s:%s/%s/%s", r.Kind, r.Tenant, r.Namespace, r.Name)
	}
	return fmt.Sprintf("%s/%s/%s", r.Tenant, r.Namespace, r.Name)
}

// Metadata is the user-controlled part of an object's metadata
type Metadata struct {
	Name        string
	Namespace   string
	Annotations map[string]string
	Labels      map[string]string
	Description string
	Disable     bool
}

// SystemMetadata is the server-populated part of an object's metadata
type SystemMetadata struct {
	CreationTimestamp     time.Time // Zero when absent
	ModificationTimestamp time.Time
	DeletionTimestamp     time.Time
	CreatorClass          string
	CreatorID             string
	Finalizers            []string
	OwnerView             *Reference
	Tenant                string
	UID                   string
}

// Deleted reports whether the object has been marked for deletion
func (s *SystemMetadata) Deleted() bool {
	return s != nil && !s.DeletionTimestamp.IsZero()
}

// Get returns a reference field by its API name
func (r Reference) Get(key string) any {
	switch key {
	case "name":
		return r.Name
	case "namespace":
		return r.Namespace
	case "tenant":
		return r.Tenant
	case "kind":
		return r.Kind
	case "uid":
		return r.UID
	}
	return nil
}

// Get returns a metadata field by its API name. Labels and annotations are
// returned as map[string]string.
func (m *Metadata) Get(key string) any {
	if m == nil {
		return nil
	}
	switch key {
	case "name":
		return m.Name
	case "namespace":
		return m.Namespace
	case "annotations":
		return m.Annotations
	case "labels":
		return m.Labels
	case "description":
		return m.Description
	case "disable":
		return m.Disable
	}
	return nil
}

// Get returns a system metadata field by its API name. Absent timestamps
// and owner view yield nil.
func (s *SystemMetadata) Get(key string) any {
	if s == nil {
		return nil
	}
	switch key {
	case "creation_timestamp":
		return timeOrNil(s.CreationTimestamp)
	case "modification_timestamp":
		return timeOrNil(s.ModificationTimestamp)
	case "deletion_timestamp":
		return timeOrNil(s.DeletionTimestamp)
	case "creator_class":
		return s.CreatorClass
	case "creator_id":
		return s.CreatorID
	case "finalizers":
		return s.Finalizers
	case "owner_view":
		if s.OwnerView == nil {
			return nil
		}
		return s.OwnerView
	case "tenant":
		return s.Tenant
	case "uid":
		return s.UID
	}
	return nil
}

func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

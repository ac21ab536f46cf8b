/*
Package types defines the value objects shared by the vesinspect packages.

Every VES object carries two metadata blocks next to its spec:

	{
	  "metadata":        { "name": ..., "namespace": ..., "labels": {...} },
	  "system_metadata": { "uid": ..., "tenant": ..., "creation_timestamp": ... },
	  "spec":            { "gc_spec": { ... resource specific ... } }
	}

Metadata and SystemMetadata model the first two blocks. Reference models the
{name, namespace, tenant, kind, uid} objects VES uses to point from one object
to another (owner_view, connected_re, ...).

# Error Kinds

The package also defines the three error kinds used across the module:

  - ErrConfiguration: no usable client credentials, or a raw object missing
    a field the API guarantees (e.g. a reference without a tenant)
  - ErrTransport: connection, TLS, timeout or unexpected HTTP status
  - ErrParse: malformed IP literal, timestamp or JSON body

All values in this package are built once by the mapper and never mutated
afterwards. Absent optional strings are represented by "" and absent
timestamps by the zero time.Time.
*/
package types

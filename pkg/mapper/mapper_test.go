package mapper

import (
	"encoding/json"
	"errors"
	"net/netip"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/cuemby/vesinspect/pkg/lookup"
	"github.com/cuemby/vesinspect/pkg/metrics"
	"github.com/cuemby/vesinspect/pkg/scalar"
	"github.com/cuemby/vesinspect/pkg/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Lat, Lng float64
}

func newPoint(raw map[string]any) (any, error) {
	lat, _ := scalar.Float(raw["latitude"])
	lng, _ := scalar.Float(raw["longitude"])
	return point{Lat: lat, Lng: lng}, nil
}

func testClassification(kind string) *Classification {
	return &Classification{
		Kind: kind,
		Fields: map[string]Category{
			"site_state":   Simple,
			"tags":         Simple,
			"settings":     Simple,
			"volume":       Simple,
			"inside_vip":   IPAddress,
			"nameservers":  IPAddress,
			"connected_re": Reference,
			"owner":        Reference,
			"proxy":        EmptyObjectMarker,
			"coordinates":  NestedObject,
			"points":       NestedArray,
		},
		Nested: map[string]NestedFunc{
			"coordinates": newPoint,
			"points":      newPoint,
		},
	}
}

func decode(t *testing.T, doc string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	var raw map[string]any
	require.NoError(t, dec.Decode(&raw))
	return raw
}

func withSpec(fields string) string {
	return `{"metadata": {"name": "x", "namespace": "y"}, "spec": {"gc_spec": ` + fields + `}}`
}

func TestMapMetadataRoundTrip(t *testing.T) {
	raw := decode(t, `{
		"metadata": {
			"name": "x",
			"namespace": "y",
			"labels": {"env": "prod"},
			"annotations": {"owner": "netops"},
			"description": "edge site",
			"disable": false
		},
		"system_metadata": {
			"creation_timestamp": "2024-03-01T10:00:00.123456Z",
			"modification_timestamp": "2024-03-02T11:30:00Z",
			"creator_class": "prism",
			"creator_id": "user@example.com",
			"finalizers": ["ves.io/cleanup"],
			"owner_view": {"kind": "site", "name": "x", "namespace": "y", "uid": "u-1"},
			"tenant": "acme-abcdef",
			"uid": "4b1d"
		}
	}`)

	rec, err := Map(raw, testClassification("roundtrip"))
	require.NoError(t, err)

	assert.True(t, rec.Exists())
	assert.Equal(t, "roundtrip", rec.Kind())

	md := rec.Metadata()
	require.NotNil(t, md)
	assert.Equal(t, "x", md.Name)
	assert.Equal(t, "y", md.Namespace)
	assert.Equal(t, map[string]string{"env": "prod"}, md.Labels)
	assert.Equal(t, map[string]string{"owner": "netops"}, md.Annotations)
	assert.Equal(t, "edge site", md.Description)
	assert.False(t, md.Disable)

	sm := rec.SystemMetadata()
	require.NotNil(t, sm)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 123456000, time.UTC), sm.CreationTimestamp)
	assert.Equal(t, time.Date(2024, 3, 2, 11, 30, 0, 0, time.UTC), sm.ModificationTimestamp)
	assert.True(t, sm.DeletionTimestamp.IsZero())
	assert.False(t, sm.Deleted())
	assert.Equal(t, "prism", sm.CreatorClass)
	assert.Equal(t, "user@example.com", sm.CreatorID)
	assert.Equal(t, []string{"ves.io/cleanup"}, sm.Finalizers)
	assert.Equal(t, "acme-abcdef", sm.Tenant)
	assert.Equal(t, "4b1d", sm.UID)
	require.NotNil(t, sm.OwnerView)
	assert.Equal(t, "site", sm.OwnerView.Kind)
	assert.Equal(t, "u-1", sm.OwnerView.UID)

	assert.Empty(t, rec.Diagnostics())
}

func TestMapNilDocumentDoesNotExist(t *testing.T) {
	rec, err := Map(nil, testClassification("absent"))
	require.NoError(t, err)

	assert.False(t, rec.Exists())
	assert.Nil(t, rec.Metadata())
	assert.Nil(t, rec.SystemMetadata())
	assert.Empty(t, rec.FieldNames())
	assert.Nil(t, rec.Field("site_state"))
	assert.Nil(t, rec.Get("metadata"))
	assert.Nil(t, rec.Get("system_metadata"))
}

func TestMapWithoutMetadataDoesNotExist(t *testing.T) {
	raw := decode(t, `{"spec": {"gc_spec": {"site_state": "ONLINE"}}}`)

	rec, err := Map(raw, testClassification("nometa"))
	require.NoError(t, err)

	assert.False(t, rec.Exists())
	assert.Equal(t, "ONLINE", rec.Field("site_state"))
}

func TestMapSimpleFields(t *testing.T) {
	raw := decode(t, withSpec(`{
		"site_state": "ONLINE",
		"tags": ["a", "b"],
		"settings": {"Max-Nodes": 3, "ratio": 0.5},
		"volume": 42
	}`))

	rec, err := Map(raw, testClassification("simple"))
	require.NoError(t, err)

	assert.Equal(t, "ONLINE", rec.Field("site_state"))
	assert.Equal(t, int64(42), rec.Field("volume"))

	tags, ok := rec.Field("tags").(*lookup.Sequence)
	require.True(t, ok)
	assert.Equal(t, lookup.KindString, tags.Kind())
	assert.Equal(t, []string{"a", "b"}, tags.Strings())

	settings, ok := rec.Field("settings").(*lookup.Map)
	require.True(t, ok)
	assert.Equal(t, int64(3), settings.Get("max_nodes"))
	assert.Equal(t, 0.5, settings.Get("ratio"))
	assert.Nil(t, settings.Get("missing"))

	assert.Equal(t, []string{"settings", "site_state", "tags", "volume"}, rec.FieldNames())
}

func TestMapEmptyArrayIsGenericSequence(t *testing.T) {
	raw := decode(t, withSpec(`{"tags": []}`))

	rec, err := Map(raw, testClassification("emptyarray"))
	require.NoError(t, err)

	tags, ok := rec.Field("tags").(*lookup.Sequence)
	require.True(t, ok)
	assert.Equal(t, lookup.KindAny, tags.Kind())
	assert.Equal(t, 0, tags.Len())
}

func TestMapIPAddress(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    any
		present bool
		wantErr bool
	}{
		{name: "ipv4", value: `"10.0.0.1"`, want: netip.MustParseAddr("10.0.0.1"), present: true},
		{name: "ipv6", value: `"2001:db8::1"`, want: netip.MustParseAddr("2001:db8::1"), present: true},
		{name: "empty", value: `""`},
		{name: "null", value: `null`},
		{name: "malformed", value: `"not-an-ip"`, wantErr: true},
		{name: "number", value: `17`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, withSpec(`{"inside_vip": `+tt.value+`}`))

			rec, err := Map(raw, testClassification("ip"))
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, rec)
				assert.True(t, errors.Is(err, types.ErrParse))

				var fe *FieldError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, "inside_vip", fe.Field)
				assert.Equal(t, IPAddress, fe.Category)
				assert.Equal(t, "ip", fe.Kind)
				return
			}

			require.NoError(t, err)
			v, ok := rec.Lookup("inside_vip")
			assert.Equal(t, tt.present, ok)
			if tt.present {
				addr := v.(netip.Addr)
				assert.Equal(t, tt.want, addr)
			} else {
				assert.Nil(t, v)
			}
		})
	}
}

func TestMapIPAddressList(t *testing.T) {
	raw := decode(t, withSpec(`{"nameservers": ["8.8.8.8", "", "2001:4860:4860::8888"]}`))

	rec, err := Map(raw, testClassification("iplist"))
	require.NoError(t, err)

	seq, ok := rec.Field("nameservers").(*lookup.Sequence)
	require.True(t, ok)
	assert.Equal(t, lookup.KindIPAddress, seq.Kind())
	require.Equal(t, 2, seq.Len())
	assert.Equal(t, netip.MustParseAddr("8.8.8.8"), seq.At(0))
	assert.True(t, seq.At(1).(netip.Addr).Is6())
}

func TestMapReference(t *testing.T) {
	raw := decode(t, withSpec(`{"owner": {"name": "a", "namespace": "b", "tenant": "c"}}`))

	rec, err := Map(raw, testClassification("ref"))
	require.NoError(t, err)

	ref, ok := rec.Field("owner").(types.Reference)
	require.True(t, ok)
	assert.Equal(t, types.Reference{Name: "a", Namespace: "b", Tenant: "c"}, ref)
	assert.Empty(t, ref.Kind)
	assert.Empty(t, ref.UID)
	assert.Equal(t, "c/b/a", ref.String())
}

func TestMapReferenceList(t *testing.T) {
	raw := decode(t, withSpec(`{"connected_re": [
		{"kind": "site", "name": "pa4-par", "namespace": "system", "tenant": "ves-io", "uid": "r1"},
		{"name": "ny8-nyc", "namespace": "system", "tenant": "ves-io"}
	]}`))

	rec, err := Map(raw, testClassification("reflist"))
	require.NoError(t, err)

	seq, ok := rec.Field("connected_re").(*lookup.Sequence)
	require.True(t, ok)
	assert.Equal(t, lookup.KindReference, seq.Kind())
	require.Equal(t, 2, seq.Len())

	first := seq.At(0).(types.Reference)
	assert.Equal(t, "pa4-par", first.Name)
	assert.Equal(t, "site", first.Kind)
	assert.Equal(t, "r1", first.UID)

	last := seq.At(-1).(types.Reference)
	assert.Equal(t, "ny8-nyc", last.Name)
}

func TestMapReferenceMissingRequiredField(t *testing.T) {
	raw := decode(t, withSpec(`{"owner": {"name": "a", "namespace": "b"}}`))

	rec, err := Map(raw, testClassification("badref"))
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
	assert.Contains(t, err.Error(), "tenant")

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "owner", fe.Field)
	assert.Equal(t, Reference, fe.Category)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.MappingFailuresTotal.WithLabelValues("badref")))
}

func TestMapEmptyObjectMarker(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		present bool
	}{
		{name: "selected", value: `{"no_proxy": {}}`, want: "no_proxy", present: true},
		{name: "null", value: `null`},
		{name: "empty object", value: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, withSpec(`{"proxy": `+tt.value+`}`))

			rec, err := Map(raw, testClassification("marker"))
			require.NoError(t, err)

			v, ok := rec.Lookup("proxy")
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.Equal(t, tt.want, v)
			} else {
				assert.Nil(t, v)
			}
		})
	}
}

func TestMapEmptyObjectMarkerRejectsNonObject(t *testing.T) {
	for _, value := range []string{`"no_proxy"`, `3`, `[]`} {
		t.Run(value, func(t *testing.T) {
			raw := decode(t, withSpec(`{"proxy": `+value+`}`))

			rec, err := Map(raw, testClassification("badmarker"))
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.True(t, errors.Is(err, types.ErrParse))

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "proxy", fe.Field)
			assert.Equal(t, EmptyObjectMarker, fe.Category)
		})
	}
}

func TestMapNestedFields(t *testing.T) {
	raw := decode(t, withSpec(`{
		"coordinates": {"latitude": 48.85, "longitude": 2.35, "altitude": 35},
		"points": [{"latitude": 1, "longitude": 2}, {"latitude": 3}]
	}`))

	rec, err := Map(raw, testClassification("nested"))
	require.NoError(t, err)

	assert.Equal(t, point{Lat: 48.85, Lng: 2.35}, rec.Field("coordinates"))

	seq, ok := rec.Field("points").(*lookup.Sequence)
	require.True(t, ok)
	assert.Equal(t, lookup.KindObject, seq.Kind())
	assert.Equal(t, []any{point{Lat: 1, Lng: 2}, point{Lat: 3}}, seq.Items())
}

func TestMapNestedTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "object expected", field: "coordinates", value: `[1, 2]`},
		{name: "array expected", field: "points", value: `{"latitude": 1}`},
		{name: "array element", field: "points", value: `[{"latitude": 1}, "oops"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, withSpec(`{"`+tt.field+`": `+tt.value+`}`))

			_, err := Map(raw, testClassification("mismatch"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrParse))

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestMapNestedConstructorError(t *testing.T) {
	c := testClassification("ctorerr")
	c.Nested["coordinates"] = func(map[string]any) (any, error) {
		return nil, types.ErrParse
	}
	raw := decode(t, withSpec(`{"coordinates": {}}`))

	_, err := Map(raw, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrParse))
}

func TestMapUnknownFieldsAreDiagnostics(t *testing.T) {
	raw := decode(t, `{
		"metadata": {"name": "x", "namespace": "y", "extra": 1},
		"system_metadata": {"labels": {}},
		"status": [],
		"referring_objects": [],
		"spec": {
			"gc_spec": {"site_state": "ONLINE", "brand_new_field": true},
			"legacy": {}
		}
	}`)

	rec, err := Map(raw, testClassification("unknowns"))
	require.NoError(t, err)

	assert.True(t, rec.Exists())
	assert.Equal(t, "ONLINE", rec.Field("site_state"))
	assert.Nil(t, rec.Field("brand_new_field"))

	diags := rec.Diagnostics()
	assert.Equal(t, []string{
		"metadata.extra",
		"referring_objects",
		"spec.gc_spec.brand_new_field",
		"spec.legacy",
		"status",
		"system_metadata.labels",
	}, sortedFields(diags))

	assert.Len(t, diags.WithCode(CodeUnknownTopLevelField), 2)
	assert.Len(t, diags.WithCode(CodeUnknownSpecField), 2)
	assert.Len(t, diags.WithCode(CodeUnknownMetadataField), 2)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		metrics.MappingDiagnosticsTotal.WithLabelValues("unknowns", CodeUnknownTopLevelField)))
}

func TestMapBadTimestamp(t *testing.T) {
	raw := decode(t, `{
		"metadata": {"name": "x"},
		"system_metadata": {"creation_timestamp": "yesterday"}
	}`)

	_, err := Map(raw, testClassification("badts"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrParse))

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "system_metadata.creation_timestamp", fe.Field)
	assert.Equal(t, "badts", fe.Kind)
}

func TestMapRejectsMalformedSections(t *testing.T) {
	docs := map[string]string{
		"metadata":        `{"metadata": "x"}`,
		"system_metadata": `{"metadata": {}, "system_metadata": []}`,
		"spec":            `{"metadata": {}, "spec": "x"}`,
		"gc_spec":         `{"metadata": {}, "spec": {"gc_spec": 3}}`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := Map(decode(t, doc), testClassification("sections"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrParse))
		})
	}
}

func TestMapRecordIsImmutable(t *testing.T) {
	raw := decode(t, `{
		"metadata": {"name": "x", "labels": {"env": "prod"}},
		"system_metadata": {"finalizers": ["f1"], "owner_view": {"name": "o"}}
	}`)

	rec, err := Map(raw, testClassification("immutable"))
	require.NoError(t, err)

	md := rec.Metadata()
	md.Name = "changed"
	md.Labels["env"] = "dev"

	sm := rec.SystemMetadata()
	sm.Finalizers[0] = "changed"
	sm.OwnerView.Name = "changed"

	assert.Equal(t, "x", rec.Metadata().Name)
	assert.Equal(t, "prod", rec.Metadata().Labels["env"])
	assert.Equal(t, "f1", rec.SystemMetadata().Finalizers[0])
	assert.Equal(t, "o", rec.SystemMetadata().OwnerView.Name)

	// The raw document can change after mapping without affecting the record
	raw["metadata"].(map[string]any)["name"] = "mutated"
	assert.Equal(t, "x", rec.Metadata().Name)
}

func TestRecordGet(t *testing.T) {
	raw := decode(t, withSpec(`{"site_state": "ONLINE"}`))

	rec, err := Map(raw, testClassification("getter"))
	require.NoError(t, err)

	var g lookup.Getter = rec
	assert.Equal(t, "ONLINE", g.Get("site_state"))
	assert.Nil(t, g.Get("inside_vip"))

	md, ok := g.Get("metadata").(*types.Metadata)
	require.True(t, ok)
	assert.Equal(t, "x", md.Name)
	assert.Nil(t, g.Get("system_metadata"))
}

func TestClassificationValidate(t *testing.T) {
	var nilClassification *Classification
	_, err := Map(nil, nilClassification)
	assert.True(t, errors.Is(err, types.ErrConfiguration))

	_, err = Map(nil, &Classification{})
	assert.True(t, errors.Is(err, types.ErrConfiguration))

	c := testClassification("validate")
	delete(c.Nested, "points")
	err = c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
	assert.Contains(t, err.Error(), "points")

	assert.Equal(t, []string{"connected_re", "owner"}, testClassification("x").FieldsOf(Reference))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "simple", Simple.String())
	assert.Equal(t, "empty_object_marker", EmptyObjectMarker.String())
	assert.Equal(t, "nested_array", NestedArray.String())
	assert.Equal(t, "category(42)", Category(42).String())
}

func sortedFields(d Diagnostics) []string {
	fields := d.Fields()
	sort.Strings(fields)
	return fields
}

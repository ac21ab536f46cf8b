package resource

import (
	"context"
	"fmt"
	"net/netip"
	"net/url"

	"github.com/cuemby/vesinspect/pkg/config"
	"github.com/cuemby/vesinspect/pkg/log"
	"github.com/cuemby/vesinspect/pkg/lookup"
	"github.com/cuemby/vesinspect/pkg/mapper"
	"github.com/cuemby/vesinspect/pkg/types"
)

// Fetcher retrieves the raw "object" of an API path. A missing object is
// reported as (nil, nil). *client.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, path string, query url.Values) (map[string]any, error)
}

// Site is a mapped VES site. The zero of every accessor means absent.
type Site struct {
	namespace string
	name      string
	record    *mapper.Record
}

// SitePath returns the API path of a site
func SitePath(namespace, name string) string {
	return fmt.Sprintf("/config/namespaces/%s/sites/%s", url.PathEscape(namespace), url.PathEscape(name))
}

// GetSite fetches and maps the site namespace/name. An empty namespace
// means "system". A site that does not exist is returned with Exists()
// false and a nil error.
func GetSite(ctx context.Context, f Fetcher, namespace, name string) (*Site, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: site name is required", types.ErrConfiguration)
	}
	if namespace == "" {
		namespace = config.DefaultNamespace
	}

	logger := log.WithResource(SiteKind, namespace, name)

	raw, err := f.Fetch(ctx, SitePath(namespace, name), nil)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		logger.Debug().Msg("Site not found")
	}

	site, err := NewSite(namespace, name, raw)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Bool("exists", site.Exists()).
		Int("diagnostics", len(site.Diagnostics())).
		Msg("Site mapped")
	return site, nil
}

// NewSite maps an already fetched raw object. raw may be nil.
func NewSite(namespace, name string, raw map[string]any) (*Site, error) {
	rec, err := mapper.Map(raw, SiteClassification)
	if err != nil {
		return nil, fmt.Errorf("failed to map site %s/%s: %w", namespace, name, err)
	}
	return &Site{namespace: namespace, name: name, record: rec}, nil
}

// Exists reports whether the site was found
func (s *Site) Exists() bool {
	return s.record.Exists()
}

// String returns "ves_site namespace/name"
func (s *Site) String() string {
	return fmt.Sprintf("%s %s/%s", SiteKind, s.namespace, s.name)
}

// Name returns the requested site name
func (s *Site) Name() string {
	return s.name
}

// Namespace returns the requested namespace
func (s *Site) Namespace() string {
	return s.namespace
}

// Metadata returns a copy of the site metadata, nil when the site does not exist
func (s *Site) Metadata() *types.Metadata {
	return s.record.Metadata()
}

// SystemMetadata returns a copy of the system metadata
func (s *Site) SystemMetadata() *types.SystemMetadata {
	return s.record.SystemMetadata()
}

// Diagnostics returns the fields that were present but not mapped
func (s *Site) Diagnostics() mapper.Diagnostics {
	return s.record.Diagnostics()
}

// Field returns a mapped gc_spec field by name
func (s *Site) Field(name string) any {
	return s.record.Field(name)
}

// FieldNames returns the names of the populated gc_spec fields
func (s *Site) FieldNames() []string {
	return s.record.FieldNames()
}

// Record returns the underlying mapped record
func (s *Site) Record() *mapper.Record {
	return s.record
}

// SiteState returns site_state, e.g. "ONLINE"
func (s *Site) SiteState() string {
	return s.str("site_state")
}

// SiteType returns site_type, e.g. "CUSTOMER_EDGE"
func (s *Site) SiteType() string {
	return s.str("site_type")
}

// Region returns the region the site is placed in
func (s *Site) Region() string {
	return s.str("region")
}

// Address returns the postal address of the site
func (s *Site) Address() string {
	return s.str("address")
}

// TunnelType returns the tunnel encapsulation used towards the regional edges
func (s *Site) TunnelType() string {
	return s.str("tunnel_type")
}

// SoftwareVersion returns volterra_software_version
func (s *Site) SoftwareVersion() string {
	return s.str("volterra_software_version")
}

// OperatingSystemVersion returns operating_system_version
func (s *Site) OperatingSystemVersion() string {
	return s.str("operating_system_version")
}

// DesiredPoolCount returns desired_pool_count, 0 when absent
func (s *Site) DesiredPoolCount() int64 {
	n, _ := s.Field("desired_pool_count").(int64)
	return n
}

// Proxy returns the selected proxy choice, e.g. "no_proxy"
func (s *Site) Proxy() string {
	return s.str("proxy")
}

// DefaultUnderlayNetwork returns the selected underlay choice
func (s *Site) DefaultUnderlayNetwork() string {
	return s.str("default_underlay_network")
}

// InsideVIP returns the site local inside VIP, the zero Addr when absent
func (s *Site) InsideVIP() netip.Addr {
	return s.addr("inside_vip")
}

// OutsideVIP returns the site local outside VIP
func (s *Site) OutsideVIP() netip.Addr {
	return s.addr("outside_vip")
}

// InsideNameserver returns the DNS server used on the inside network
func (s *Site) InsideNameserver() netip.Addr {
	return s.addr("inside_nameserver")
}

// OutsideNameserver returns the DNS server used on the outside network
func (s *Site) OutsideNameserver() netip.Addr {
	return s.addr("outside_nameserver")
}

// BGPPeerAddress returns the IPv4 BGP peer address
func (s *Site) BGPPeerAddress() netip.Addr {
	return s.addr("bgp_peer_address")
}

// BGPRouterID returns the BGP router ID
func (s *Site) BGPRouterID() netip.Addr {
	return s.addr("bgp_router_id")
}

// SiteToSiteTunnelIP returns the local address of site to site tunnels
func (s *Site) SiteToSiteTunnelIP() netip.Addr {
	return s.addr("site_to_site_tunnel_ip")
}

// Coordinates returns the site location and whether it is set
func (s *Site) Coordinates() (Coordinates, bool) {
	c, ok := s.Field("coordinates").(Coordinates)
	return c, ok
}

// ConnectedRE returns the regional edges the site is connected to
func (s *Site) ConnectedRE() []types.Reference {
	return s.refs("connected_re")
}

// ConnectedREForConfig returns the regional edges used for configuration
func (s *Site) ConnectedREForConfig() []types.Reference {
	return s.refs("connected_re_for_config")
}

// VIPParamsPerAZ returns the per availability zone VIP settings
func (s *Site) VIPParamsPerAZ() []VIPParams {
	seq, ok := s.Field("vip_params_per_az").(*lookup.Sequence)
	if !ok {
		return nil
	}
	out := make([]VIPParams, 0, seq.Len())
	for _, item := range seq.All() {
		if p, ok := item.(VIPParams); ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Site) str(name string) string {
	v, _ := s.Field(name).(string)
	return v
}

func (s *Site) addr(name string) netip.Addr {
	v, _ := s.Field(name).(netip.Addr)
	return v
}

// refs accepts both a single reference and a list of them
func (s *Site) refs(name string) []types.Reference {
	switch v := s.Field(name).(type) {
	case types.Reference:
		return []types.Reference{v}
	case *lookup.Sequence:
		out := make([]types.Reference, 0, v.Len())
		for _, item := range v.All() {
			if ref, ok := item.(types.Reference); ok {
				out = append(out, ref)
			}
		}
		return out
	}
	return nil
}

package resource

import (
	"fmt"

	"github.com/cuemby/vesinspect/pkg/lookup"
	"github.com/cuemby/vesinspect/pkg/mapper"
	"github.com/cuemby/vesinspect/pkg/scalar"
	"github.com/cuemby/vesinspect/pkg/types"
)

// SiteKind is the resource kind of a Site
const SiteKind = "ves_site"

// SiteClassification describes the gc_spec fields of a Site
var SiteClassification = &mapper.Classification{
	Kind: SiteKind,
	Fields: map[string]mapper.Category{
		// Simple
		"address":                   mapper.Simple,
		"admin_user_credentials":    mapper.Simple,
		"ce_site_mode":              mapper.Simple,
		"desired_pool_count":        mapper.Simple,
		"local_k8s_access_enabled":  mapper.Simple,
		"main_nodes":                mapper.Simple,
		"operating_system_version":  mapper.Simple,
		"region":                    mapper.Simple,
		"site_state":                mapper.Simple,
		"site_subtype":              mapper.Simple,
		"site_type":                 mapper.Simple,
		"tunnel_dead_timeout":       mapper.Simple,
		"tunnel_type":               mapper.Simple,
		"vip_vrrp_mode":             mapper.Simple,
		"volterra_software_overide": mapper.Simple,
		"volterra_software_version": mapper.Simple,
		"inside_vip_cname":          mapper.Simple,
		"outside_vip_cname":         mapper.Simple,

		// IP addresses
		"bgp_peer_address":       mapper.IPAddress,
		"bgp_peer_address_v6":    mapper.IPAddress,
		"bgp_router_id":          mapper.IPAddress,
		"inside_nameserver":      mapper.IPAddress,
		"inside_nameserver_v6":   mapper.IPAddress,
		"inside_vip":             mapper.IPAddress,
		"inside_vip_v6":          mapper.IPAddress,
		"outside_nameserver":     mapper.IPAddress,
		"outside_nameserver_v6":  mapper.IPAddress,
		"outside_vip":            mapper.IPAddress,
		"outside_vip_v6":         mapper.IPAddress,
		"site_to_site_tunnel_ip": mapper.IPAddress,

		// References
		"connected_re":            mapper.Reference,
		"connected_re_for_config": mapper.Reference,

		// Oneof choices
		"default_underlay_network": mapper.EmptyObjectMarker,
		"proxy":                    mapper.EmptyObjectMarker,

		// Nested
		"coordinates":       mapper.NestedObject,
		"vip_params_per_az": mapper.NestedArray,
	},
	Nested: map[string]mapper.NestedFunc{
		"coordinates":       newCoordinates,
		"vip_params_per_az": newVIPParams,
	},
}

// Coordinates is the geographic location of a site
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Get implements lookup.Getter
func (c Coordinates) Get(key string) any {
	switch key {
	case "latitude":
		return c.Latitude
	case "longitude":
		return c.Longitude
	}
	return nil
}

func newCoordinates(raw map[string]any) (any, error) {
	var c Coordinates
	var ok bool
	if v, present := raw["latitude"]; present && v != nil {
		if c.Latitude, ok = scalar.Float(v); !ok {
			return nil, fmt.Errorf("%w: latitude must be a number, got %T", types.ErrParse, v)
		}
	}
	if v, present := raw["longitude"]; present && v != nil {
		if c.Longitude, ok = scalar.Float(v); !ok {
			return nil, fmt.Errorf("%w: longitude must be a number, got %T", types.ErrParse, v)
		}
	}
	return c, nil
}

// VIPParams holds the VIPs of one availability zone. The address lists
// are KindIPAddress sequences.
type VIPParams struct {
	AZName          string
	InsideVIP       *lookup.Sequence
	OutsideVIP      *lookup.Sequence
	InsideVIPCname  string
	OutsideVIPCname string
}

// Get implements lookup.Getter
func (p VIPParams) Get(key string) any {
	switch key {
	case "az_name":
		return p.AZName
	case "inside_vip":
		return p.InsideVIP
	case "outside_vip":
		return p.OutsideVIP
	case "inside_vip_cname":
		return p.InsideVIPCname
	case "outside_vip_cname":
		return p.OutsideVIPCname
	}
	return nil
}

func newVIPParams(raw map[string]any) (any, error) {
	inside, err := addrList(raw["inside_vip"])
	if err != nil {
		return nil, fmt.Errorf("inside_vip: %w", err)
	}
	outside, err := addrList(raw["outside_vip"])
	if err != nil {
		return nil, fmt.Errorf("outside_vip: %w", err)
	}
	return VIPParams{
		AZName:          scalar.String(raw["az_name"]),
		InsideVIP:       inside,
		OutsideVIP:      outside,
		InsideVIPCname:  scalar.String(raw["inside_vip_cname"]),
		OutsideVIPCname: scalar.String(raw["outside_vip_cname"]),
	}, nil
}

// addrList accepts a single literal or a list of them
func addrList(raw any) (*lookup.Sequence, error) {
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}
	var out []any
	for _, item := range items {
		addr, err := scalar.ParseIP(item)
		if err != nil {
			return nil, err
		}
		if addr.IsValid() {
			out = append(out, addr)
		}
	}
	return lookup.NewSequence(lookup.KindIPAddress, out), nil
}

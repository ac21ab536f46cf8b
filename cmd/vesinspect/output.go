package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cuemby/vesinspect/pkg/resource"
	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
	formatDump format = "dump"
)

func parseFormat(s string) (format, error) {
	switch f := format(s); f {
	case formatJSON, formatYAML, formatDump:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (json, yaml, dump)", s)
	}
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// renderSite prints the whole site. dump shows the typed graph as mapped,
// json and yaml show its plain properties.
func renderSite(w io.Writer, f format, site *resource.Site) error {
	if f == formatDump {
		dumper.Fdump(w, site.Record())
		return nil
	}
	return encode(w, f, site.Properties())
}

func renderValue(w io.Writer, f format, value any) error {
	if f == formatDump {
		dumper.Fdump(w, value)
		return nil
	}
	return encode(w, f, resource.Plain(value))
}

func encode(w io.Writer, f format, v any) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}

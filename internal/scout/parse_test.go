package scout

import (
	"reflect"
	"testing"

	"github.com/netgauge/netgauge/pkg/assess"
	"github.com/netgauge/netgauge/pkg/topo"
)

func TestParseDiscovery(t *testing.T) {
	data := []byte(`{
		"devices": [
			{"ip": "192.168.1.1", "snmp": true},
			{"ip": "192.168.1.9", "snmp": false},
			{"ip": "", "snmp": true}
		]
	}`)

	got, err := parseDiscovery(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []assess.Discovered{
		{IP: "192.168.1.1", SNMPCapable: true},
		{IP: "192.168.1.9", SNMPCapable: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseDiscovery = %v, want %v", got, want)
	}
}

func TestParseDiscoveryMalformed(t *testing.T) {
	if _, err := parseDiscovery([]byte("not json")); err == nil {
		t.Error("expected error for malformed discovery output")
	}
}

func TestParseMetrics(t *testing.T) {
	data := []byte(`{
		"ip": "192.168.1.1",
		"metrics": {"por": 0.62, "par": 0.01, "ier": 0.001, "qdr": 0.002}
	}`)

	got, err := parseMetrics(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["por"] != 0.62 || got["qdr"] != 0.002 {
		t.Errorf("parseMetrics = %v", got)
	}
}

func TestParseMetricsMissingReadings(t *testing.T) {
	if _, err := parseMetrics([]byte(`{"ip": "192.168.1.1"}`)); err == nil {
		t.Error("expected error when output carries no readings")
	}
}

func TestFilterRoutes(t *testing.T) {
	routes := []topo.Route{
		{Source: "192.168.1.1", NextHop: "192.168.1.254", Dest: "0.0.0.0/0"},
		{Source: "192.168.1.1", NextHop: "0.0.0.0"},   // directly connected
		{Source: "192.168.1.1", NextHop: "127.0.0.1"}, // loopback
		{Source: "192.168.1.1", NextHop: ""},          // no next hop
		{Source: "192.168.1.2", NextHop: "192.168.1.2"}, // self-referential
		{Source: "", NextHop: "192.168.1.254"},          // no source
		{Source: "192.168.1.254", NextHop: "192.168.1.100"},
	}

	got := filterRoutes(routes)
	want := []topo.Route{
		{Source: "192.168.1.1", NextHop: "192.168.1.254", Dest: "0.0.0.0/0"},
		{Source: "192.168.1.254", NextHop: "192.168.1.100"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filterRoutes = %v, want %v", got, want)
	}
}

func TestParseRoutes(t *testing.T) {
	data := []byte(`{
		"routes": [
			{"source": "10.0.0.1", "dest": "10.1.0.0/16", "next_hop": "10.0.0.254"}
		]
	}`)

	got, err := parseRoutes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []topo.Route{{Source: "10.0.0.1", Dest: "10.1.0.0/16", NextHop: "10.0.0.254"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseRoutes = %v, want %v", got, want)
	}
}

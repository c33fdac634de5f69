package scout

import (
	"encoding/json"
	"fmt"

	"github.com/netgauge/netgauge/pkg/assess"
	"github.com/netgauge/netgauge/pkg/topo"
)

// Wire shapes of scout's -oJ output.

type discoveryDoc struct {
	Devices []struct {
		IP   string `json:"ip"`
		SNMP bool   `json:"snmp"`
	} `json:"devices"`
}

type metricsDoc struct {
	IP      string             `json:"ip"`
	Metrics map[string]float64 `json:"metrics"`
}

type topologyDoc struct {
	Routes []topo.Route `json:"routes"`
}

func parseDiscovery(data []byte) ([]assess.Discovered, error) {
	var doc discoveryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing discovery output: %w", err)
	}

	out := make([]assess.Discovered, 0, len(doc.Devices))
	for _, d := range doc.Devices {
		if d.IP == "" {
			continue
		}
		out = append(out, assess.Discovered{IP: d.IP, SNMPCapable: d.SNMP})
	}
	return out, nil
}

func parseMetrics(data []byte) (map[string]float64, error) {
	var doc metricsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing metrics output: %w", err)
	}
	if doc.Metrics == nil {
		return nil, fmt.Errorf("metrics output for %s carries no readings", doc.IP)
	}
	return doc.Metrics, nil
}

func parseRoutes(data []byte) ([]topo.Route, error) {
	var doc topologyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing topology output: %w", err)
	}
	return doc.Routes, nil
}

// filterRoutes drops records that would pollute the topology graph:
// missing sources, loopback or zero-address next hops, and routes that
// point back at their own source.
func filterRoutes(routes []topo.Route) []topo.Route {
	var kept []topo.Route
	for _, r := range routes {
		if r.Source == "" {
			continue
		}
		switch r.NextHop {
		case "", "0.0.0.0", "127.0.0.1":
			continue
		}
		if r.Source == r.NextHop {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

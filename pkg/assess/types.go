// Package assess runs the two-tier subnet assessment pipeline: discover
// devices, sample telemetry, and turn the readings plus topology into an
// overall health score and a scan-rate level.
package assess

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/netgauge/netgauge/pkg/device"
	"github.com/netgauge/netgauge/pkg/topo"
)

// Outcome classifies how an assessment terminated.
type Outcome string

const (
	// OutcomeNoDevices: discovery returned an empty subnet.
	OutcomeNoDevices Outcome = "NO_DEVICES"
	// OutcomeShortCircuit: every SNMP device was comfortably idle, so the
	// comprehensive tier was skipped.
	OutcomeShortCircuit Outcome = "SHORT_CIRCUIT"
	// OutcomeComprehensive: the full pipeline ran to completion.
	OutcomeComprehensive Outcome = "COMPREHENSIVE"
)

// Discovered is one device found by the discovery sweep.
type Discovered struct {
	IP          string `json:"ip"`
	SNMPCapable bool   `json:"snmp_capable"`
}

// Prober abstracts the measurement tool the engine drives. The production
// implementation shells out to scout; tests substitute fakes.
type Prober interface {
	// Discover sweeps the CIDR and reports responding devices.
	Discover(ctx context.Context, cidr string) ([]Discovered, error)

	// FetchMetrics samples one device and returns its current metric
	// values keyed by metric name (por, par, ier, qdr).
	FetchMetrics(ctx context.Context, ip string) (map[string]float64, error)

	// FetchTopology collects routing-table records from the subnet.
	FetchTopology(ctx context.Context, cidr string) ([]topo.Route, error)
}

// DeviceReport is the per-device slice of an assessment result.
type DeviceReport struct {
	IP          string             `json:"ip"`
	SNMPCapable bool               `json:"snmp_capable"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	Score       float64            `json:"score"`
	Risk        device.RiskLevel   `json:"risk"`
}

// Result is the outcome of one subnet assessment run.
type Result struct {
	ID              uuid.UUID          `json:"id"`
	Subnet          string             `json:"subnet"`
	Outcome         Outcome            `json:"outcome"`
	OverallScore    float64            `json:"overall_score"`
	RateLevel       string             `json:"rate_level"`
	RateDescription string             `json:"rate_description,omitempty"`
	DeviceCount     int                `json:"device_count"`
	Devices         []DeviceReport     `json:"devices,omitempty"`
	Weights         map[string]float64 `json:"weights,omitempty"`
	Centrality      map[string]float64 `json:"centrality,omitempty"`
	KeyNodes        []string           `json:"key_nodes,omitempty"`
	Message         string             `json:"message,omitempty"`
	AssessedAt      time.Time          `json:"assessed_at"`
}

// Package device defines the core data model for netgauge assessments.
// These types are the shared vocabulary across the scoring, topology and
// pipeline packages.
package device

// MetricNames lists the tracked telemetry rates in canonical order:
// port occupancy, port anomaly, interface error, queue discard.
// All four are "smaller is better".
var MetricNames = []string{"por", "par", "ier", "qdr"}

// Metrics is one snapshot of the four device telemetry rates.
type Metrics struct {
	POR float64 `json:"por"` // port occupancy rate
	PAR float64 `json:"par"` // port anomaly rate
	IER float64 `json:"ier"` // interface error rate
	QDR float64 `json:"qdr"` // queue discard rate
}

// Values returns the snapshot as a name→value map keyed by MetricNames.
func (m Metrics) Values() map[string]float64 {
	return map[string]float64{
		"por": m.POR,
		"par": m.PAR,
		"ier": m.IER,
		"qdr": m.QDR,
	}
}

// RiskLevel classifies a device by its computed score.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// RiskFromScore maps a 0-100 device score to a risk level.
// The banding is fixed: >=80 LOW, >=60 MEDIUM, below HIGH.
func RiskFromScore(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Device is one discovered host. It is created at discovery time with only
// the SNMP flag set, mutated by metric sampling, scored once per run, and
// discarded when the run ends.
type Device struct {
	IP          string               `json:"ip"`
	SNMPCapable bool                 `json:"snmp_capable"`
	Metrics     Metrics              `json:"metrics"`
	History     []map[string]float64 `json:"-"`
	Score       float64              `json:"score"`
	Risk        RiskLevel            `json:"risk"`
}

// New creates a Device in its pre-sampling state.
func New(ip string, snmpCapable bool) *Device {
	return &Device{
		IP:          ip,
		SNMPCapable: snmpCapable,
		Risk:        RiskUnknown,
	}
}

// Update applies the given metric values (keys from MetricNames; unknown
// keys are ignored) and appends a full snapshot of the current metrics to
// History. History is append-only within a run: entries are never reordered
// or removed, since the weight estimator depends on insertion order.
func (d *Device) Update(values map[string]float64) {
	for name, v := range values {
		switch name {
		case "por":
			d.Metrics.POR = v
		case "par":
			d.Metrics.PAR = v
		case "ier":
			d.Metrics.IER = v
		case "qdr":
			d.Metrics.QDR = v
		}
	}
	d.History = append(d.History, d.Metrics.Values())
}

package surface_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/netgauge/netgauge/pkg/assess"
	"github.com/netgauge/netgauge/pkg/device"
	"github.com/netgauge/netgauge/pkg/surface"
)

func sampleResult() *assess.Result {
	return &assess.Result{
		ID:              uuid.MustParse("5f3a2f00-4f2a-4c4e-9f6f-1234567890ab"),
		Subnet:          "192.168.1.0/24",
		Outcome:         assess.OutcomeComprehensive,
		OverallScore:    72.4,
		RateLevel:       "level_3",
		RateDescription: "moderate scan rate",
		DeviceCount:     3,
		Devices: []assess.DeviceReport{
			{IP: "192.168.1.1", SNMPCapable: true, Score: 91.2, Risk: device.RiskLow},
			{IP: "192.168.1.254", SNMPCapable: true, Score: 48.7, Risk: device.RiskHigh},
			{IP: "192.168.1.9", SNMPCapable: false},
		},
		Weights: map[string]float64{
			"por": 0.4, "par": 0.2, "ier": 0.2, "qdr": 0.2,
		},
		Centrality: map[string]float64{
			"192.168.1.1": 0, "192.168.1.254": 0.5,
		},
		KeyNodes:   []string{"192.168.1.254"},
		AssessedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	err := r.Render(&buf, sampleResult())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()

	// Check header
	if !strings.Contains(output, "192.168.1.0/24") {
		t.Error("expected subnet in output")
	}
	if !strings.Contains(output, "Score 72.4") {
		t.Error("expected Score 72.4 in output")
	}
	if !strings.Contains(output, "level_3") {
		t.Error("expected rate level in output")
	}
	if !strings.Contains(output, "moderate scan rate") {
		t.Error("expected rate description in output")
	}

	// Device breakdown, worst first
	if !strings.Contains(output, "Device scores:") {
		t.Error("expected device scores section")
	}
	idxHub := strings.Index(output, "192.168.1.254")
	idxLeaf := strings.Index(output, "192.168.1.1 ")
	if idxHub == -1 || idxLeaf == -1 || idxHub > idxLeaf {
		t.Error("expected worst-scoring device listed first")
	}
	if !strings.Contains(output, string(device.RiskHigh)) {
		t.Error("expected HIGH risk label")
	}

	// Weights and key nodes
	if !strings.Contains(output, "por=0.40") {
		t.Error("expected por weight in output")
	}
	if !strings.Contains(output, "Key nodes:") {
		t.Error("expected key nodes section")
	}
	if !strings.Contains(output, "centrality 0.500") {
		t.Error("expected centrality detail for key node")
	}
}

func TestTerminalRenderer_ShortCircuit(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	result := &assess.Result{
		Subnet:       "10.0.0.0/24",
		Outcome:      assess.OutcomeShortCircuit,
		OverallScore: 100,
		RateLevel:    "level_5",
		Message:      "all 4 SNMP devices below 50% occupancy",
		DeviceCount:  4,
	}

	if err := r.Render(&buf, result); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "SHORT_CIRCUIT") {
		t.Error("expected outcome in output")
	}
	if !strings.Contains(output, "below 50% occupancy") {
		t.Error("expected short-circuit message")
	}
	if strings.Contains(output, "Key nodes:") {
		t.Error("key nodes section should be absent without centrality data")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	err := r.Render(&buf, sampleResult())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestJSONRenderer_RoundTrips(t *testing.T) {
	r := &surface.JSONRenderer{}
	var buf bytes.Buffer

	want := sampleResult()
	if err := r.Render(&buf, want); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var got assess.Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Subnet != want.Subnet || got.OverallScore != want.OverallScore {
		t.Errorf("decoded result = %+v, want %+v", got, want)
	}
	if got.ID != want.ID {
		t.Errorf("decoded ID = %s, want %s", got.ID, want.ID)
	}
}

func TestForFormat(t *testing.T) {
	if _, ok := surface.ForFormat("json").(*surface.JSONRenderer); !ok {
		t.Error("ForFormat(json) should return the JSON renderer")
	}
	if _, ok := surface.ForFormat("text").(*surface.TerminalRenderer); !ok {
		t.Error("ForFormat(text) should return the terminal renderer")
	}
	if _, ok := surface.ForFormat("").(*surface.TerminalRenderer); !ok {
		t.Error("ForFormat should default to the terminal renderer")
	}
}

package device

import "testing"

func TestNewDeviceDefaults(t *testing.T) {
	d := New("192.168.1.10", true)

	if d.IP != "192.168.1.10" {
		t.Errorf("IP = %q, want %q", d.IP, "192.168.1.10")
	}
	if !d.SNMPCapable {
		t.Error("expected SNMPCapable true")
	}
	if d.Risk != RiskUnknown {
		t.Errorf("Risk = %q, want %q", d.Risk, RiskUnknown)
	}
	if d.Score != 0 {
		t.Errorf("Score = %f, want 0 before scoring", d.Score)
	}
	if len(d.History) != 0 {
		t.Errorf("History length = %d, want 0", len(d.History))
	}
}

func TestUpdateAppendsHistory(t *testing.T) {
	d := New("10.0.0.1", true)

	d.Update(map[string]float64{"por": 0.5})
	d.Update(map[string]float64{"par": 0.01, "ier": 0.001, "qdr": 0.002})

	if d.Metrics.POR != 0.5 {
		t.Errorf("POR = %f, want 0.5", d.Metrics.POR)
	}
	if d.Metrics.PAR != 0.01 {
		t.Errorf("PAR = %f, want 0.01", d.Metrics.PAR)
	}

	if len(d.History) != 2 {
		t.Fatalf("History length = %d, want 2", len(d.History))
	}

	// First entry is the por-only sample with the other rates still zero.
	first := d.History[0]
	if first["por"] != 0.5 || first["par"] != 0 {
		t.Errorf("first history entry = %v, want por=0.5 par=0", first)
	}

	// Second entry carries the por from the first pass plus the full sample.
	second := d.History[1]
	if second["por"] != 0.5 || second["qdr"] != 0.002 {
		t.Errorf("second history entry = %v, want por=0.5 qdr=0.002", second)
	}
}

func TestUpdateIgnoresUnknownNames(t *testing.T) {
	d := New("10.0.0.1", true)
	d.Update(map[string]float64{"bogus": 9.9, "por": 0.2})

	if d.Metrics.POR != 0.2 {
		t.Errorf("POR = %f, want 0.2", d.Metrics.POR)
	}
	if _, ok := d.History[0]["bogus"]; ok {
		t.Error("unknown metric name leaked into history")
	}
}

func TestRiskFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{100, RiskLow},
		{80, RiskLow},
		{79.99, RiskMedium},
		{60, RiskMedium},
		{59.99, RiskHigh},
		{0, RiskHigh},
	}
	for _, tt := range tests {
		if got := RiskFromScore(tt.score); got != tt.want {
			t.Errorf("RiskFromScore(%f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestMetricsValues(t *testing.T) {
	m := Metrics{POR: 1, PAR: 2, IER: 3, QDR: 4}
	v := m.Values()

	if len(v) != len(MetricNames) {
		t.Fatalf("Values() has %d entries, want %d", len(v), len(MetricNames))
	}
	for _, name := range MetricNames {
		if _, ok := v[name]; !ok {
			t.Errorf("Values() missing %q", name)
		}
	}
	if v["ier"] != 3 {
		t.Errorf("ier = %f, want 3", v["ier"])
	}
}

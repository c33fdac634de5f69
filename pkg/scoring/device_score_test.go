package scoring_test

import (
	"math"
	"testing"

	"github.com/netgauge/netgauge/pkg/device"
	"github.com/netgauge/netgauge/pkg/scoring"
)

func uniform() map[string]float64 {
	return map[string]float64{"por": 0.25, "par": 0.25, "ier": 0.25, "qdr": 0.25}
}

func TestDeviceScoreUniformWeights(t *testing.T) {
	// por 0.6 -> 90, par 0.01 -> 85, ier 0.001 -> 85, qdr 0.002 -> 85;
	// uniform weighting gives (90+85+85+85)/4.
	metrics := map[string]float64{"por": 0.6, "par": 0.01, "ier": 0.001, "qdr": 0.002}

	got := scoring.DeviceScore(metrics, uniform(), scoring.DefaultMaxPower, scoring.DefaultMostFreqPower)
	want := 86.25
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("DeviceScore = %f, want %f", got, want)
	}
	if risk := device.RiskFromScore(got); risk != device.RiskLow {
		t.Errorf("risk = %q, want %q for score %f", risk, device.RiskLow, got)
	}
}

func TestDeviceScoreInRange(t *testing.T) {
	samples := []map[string]float64{
		{"por": 0, "par": 0, "ier": 0, "qdr": 0},
		{"por": 0.99, "par": 0.5, "ier": 0.1, "qdr": 0.3},
		{"por": 1e12, "par": 1e12, "ier": 1e12, "qdr": 1e12},
		{"por": 0.0001, "par": 3, "ier": 42000, "qdr": 7},
	}
	for _, metrics := range samples {
		got := scoring.DeviceScore(metrics, uniform(), scoring.DefaultMaxPower, scoring.DefaultMostFreqPower)
		if got < 0 || got > 100 {
			t.Errorf("DeviceScore(%v) = %f, outside [0,100]", metrics, got)
		}
	}
}

func TestDeviceScorePerfectMetrics(t *testing.T) {
	metrics := map[string]float64{"por": 0, "par": 0, "ier": 0, "qdr": 0}
	got := scoring.DeviceScore(metrics, uniform(), scoring.DefaultMaxPower, scoring.DefaultMostFreqPower)
	if math.Abs(got-100) > 1e-9 {
		t.Errorf("DeviceScore(all zero) = %f, want 100", got)
	}
}

func TestDeviceScoreIgnoresMetricsWithoutWeights(t *testing.T) {
	metrics := map[string]float64{"por": 0, "bogus": 1e9}
	weights := map[string]float64{"por": 1.0}

	got := scoring.DeviceScore(metrics, weights, scoring.DefaultMaxPower, scoring.DefaultMostFreqPower)
	if math.Abs(got-100) > 1e-9 {
		t.Errorf("DeviceScore = %f, want 100 (unweighted metric must not contribute)", got)
	}
}

func TestDeviceScoreMissingWeightedMetric(t *testing.T) {
	// A name present in weights but absent from the sample contributes 0.
	metrics := map[string]float64{"por": 0}
	got := scoring.DeviceScore(metrics, uniform(), scoring.DefaultMaxPower, scoring.DefaultMostFreqPower)
	if math.Abs(got-25) > 1e-9 {
		t.Errorf("DeviceScore = %f, want 25 (only por's quarter-share)", got)
	}
}

// Package scoring implements the netgauge assessment math: metric
// normalization, volatility-driven weighting, and device/subnet scores.
// Everything here is pure computation with no I/O.
package scoring

import "math"

// Default normalization parameters. MaxPower is the largest decimal order
// of magnitude a raw counter rate is expected to reach; MostFreqPower is
// the order where typical degraded values cluster.
const (
	DefaultMaxPower      = 10
	DefaultMostFreqPower = 5
)

// Normalize maps a raw "smaller is better" metric value onto a 1-100 score.
// The mapping is piecewise over the value's decimal order of magnitude:
// vanishingly small values land in 95-100, sub-unit values in 85-95, values
// just above one decay linearly to 20, and anything beyond 10^maxPower
// saturates at the floor of 1. A value of zero (or below) scores a perfect
// 100 — no occupancy or errors at all.
func Normalize(value float64, maxPower, mostFreqPower int) float64 {
	if value <= 0 {
		return 100
	}

	power := int(math.Floor(math.Log10(value)))

	var score float64
	switch {
	case power < -3:
		score = clamp(100+1.5*float64(power), 95, 100)
	case power < 0:
		score = clamp(95+5*float64(power), 85, 95)
	case power == 0:
		// Ratio-like inputs: direct linear interpolation instead of a
		// magnitude bucket.
		score = clamp(85-25*value, 60, 85)
	case power <= mostFreqPower:
		score = clamp(60-8*float64(power-1), 20, 60)
	case power <= maxPower:
		score = clamp(20*math.Exp(-0.5*float64(power-mostFreqPower)), 1, 20)
	default:
		score = 1
	}

	return clamp(score, 1, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

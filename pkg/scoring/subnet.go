package scoring

import "github.com/netgauge/netgauge/pkg/device"

// SubnetScore aggregates per-device scores into one 0-100 subnet score,
// discounting each device's contribution by its normalized betweenness
// centrality: mean over devices of (1 - c(ip)) * score(ip).
//
// Centrality values are normalized against the maximum observed value; a
// device absent from the centrality map contributes at full weight. When a
// device has no externally supplied score its own stored score is used.
// An empty device list scores 0.
//
// Note the formula dampens, rather than amplifies, a high-centrality
// device's influence on the mean. That is the shipped behavior and is
// pinned by a regression test; see DESIGN.md for the discussion.
func SubnetScore(devices []*device.Device, centrality map[string]float64, deviceScores map[string]float64) float64 {
	if len(devices) == 0 {
		return 0
	}

	normalized := normalizeCentrality(centrality)

	var total float64
	for _, d := range devices {
		score, ok := deviceScores[d.IP]
		if !ok {
			score = d.Score
		}
		total += (1 - normalized[d.IP]) * score
	}
	return total / float64(len(devices))
}

// normalizeCentrality rescales centrality values so the maximum observed
// value is 1. A nil/empty map, or one whose values are all zero, yields an
// empty map (every lookup then reads as zero centrality).
func normalizeCentrality(centrality map[string]float64) map[string]float64 {
	if len(centrality) == 0 {
		return map[string]float64{}
	}

	var max float64
	for _, v := range centrality {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return map[string]float64{}
	}

	normalized := make(map[string]float64, len(centrality))
	for ip, v := range centrality {
		normalized[ip] = v / max
	}
	return normalized
}

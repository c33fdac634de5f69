package scoring

import "math"

// Default clamp band for dynamic weights. The clamp keeps a single volatile
// metric from dominating the weighted sum and keeps a flat metric from being
// zeroed out entirely.
const (
	DefaultMinWeight = 0.1
	DefaultMaxWeight = 0.4
)

// DynamicWeights derives per-metric weights from the volatility of pooled
// sample history. For each name it computes the coefficient of variation
// (population std over mean) across the history entries that contain that
// name; metrics that fluctuate more receive proportionally more weight,
// since fluctuation is what currently discriminates good from bad states.
//
// Fewer than two history entries, or a history with no volatility at all,
// yields uniform weights. Raw weights are clamped to [minWeight, maxWeight]
// and then renormalized, so the returned weights always sum to 1 (the
// renormalized values may legitimately fall outside the clamp band).
func DynamicWeights(history []map[string]float64, names []string, minWeight, maxWeight float64) map[string]float64 {
	if len(names) == 0 {
		return map[string]float64{}
	}
	if len(history) < 2 {
		return uniformWeights(names)
	}

	coefficients := make(map[string]float64, len(names))
	var total float64
	for _, name := range names {
		var values []float64
		for _, entry := range history {
			if v, ok := entry[name]; ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			coefficients[name] = 0
			continue
		}

		mean := meanOf(values)
		if mean == 0 {
			coefficients[name] = 0
			continue
		}
		coefficients[name] = stdOf(values, mean) / mean
		total += coefficients[name]
	}

	if total == 0 {
		return uniformWeights(names)
	}

	weights := make(map[string]float64, len(names))
	var clampedTotal float64
	for _, name := range names {
		w := clamp(coefficients[name]/total, minWeight, maxWeight)
		weights[name] = w
		clampedTotal += w
	}
	for name := range weights {
		weights[name] /= clampedTotal
	}
	return weights
}

func uniformWeights(names []string) map[string]float64 {
	weights := make(map[string]float64, len(names))
	for _, name := range names {
		weights[name] = 1.0 / float64(len(names))
	}
	return weights
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdOf is the population standard deviation around the given mean.
func stdOf(values []float64, mean float64) float64 {
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

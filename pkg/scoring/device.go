package scoring

// DeviceScore combines normalized metrics into one weighted 0-100 device
// score. Only metric names present in weights contribute; a metric named in
// weights but absent from the sample contributes nothing.
func DeviceScore(metrics map[string]float64, weights map[string]float64, maxPower, mostFreqPower int) float64 {
	var total float64
	for name, weight := range weights {
		value, ok := metrics[name]
		if !ok {
			continue
		}
		total += Normalize(value, maxPower, mostFreqPower) * weight
	}
	return total
}

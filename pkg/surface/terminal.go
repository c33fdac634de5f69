package surface

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/netgauge/netgauge/pkg/assess"
	"github.com/netgauge/netgauge/pkg/device"
)

// TerminalRenderer renders an assessment result as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func riskColor(risk device.RiskLevel) string {
	if noColor() {
		return ""
	}
	switch risk {
	case device.RiskLow:
		return colorGreen
	case device.RiskMedium:
		return colorYellow
	case device.RiskHigh:
		return colorRed
	default:
		return ""
	}
}

func scoreColor(score float64) string {
	if noColor() {
		return ""
	}
	switch {
	case score >= 80:
		return colorGreen
	case score >= 60:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *assess.Result) error {
	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Netgauge: %s — Score %s — %s",
			result.Subnet,
			colored(fmt.Sprintf("%.1f", result.OverallScore), scoreColor(result.OverallScore)),
			result.RateLevel)))

	fmt.Fprintf(w, "Outcome: %s", result.Outcome)
	if result.RateDescription != "" {
		fmt.Fprintf(w, " — %s", result.RateDescription)
	}
	fmt.Fprintln(w)
	if result.Message != "" {
		fmt.Fprintf(w, "%s\n", dim(result.Message))
	}
	fmt.Fprintf(w, "Devices: %d\n\n", result.DeviceCount)

	// Per-device breakdown, worst first.
	if len(result.Devices) > 0 {
		devices := make([]assess.DeviceReport, len(result.Devices))
		copy(devices, result.Devices)
		sort.SliceStable(devices, func(i, j int) bool {
			return devices[i].Score < devices[j].Score
		})

		fmt.Fprintln(w, "Device scores:")
		for _, d := range devices {
			marker := " "
			if !d.SNMPCapable {
				marker = dim("·")
			}
			fmt.Fprintf(w, "  %s %-15s %6.1f  %s\n",
				marker, d.IP, d.Score, colored(string(d.Risk), riskColor(d.Risk)))
		}
		fmt.Fprintln(w)
	}

	// Weights, highest influence first.
	if len(result.Weights) > 0 {
		names := make([]string, 0, len(result.Weights))
		for name := range result.Weights {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if result.Weights[names[i]] != result.Weights[names[j]] {
				return result.Weights[names[i]] > result.Weights[names[j]]
			}
			return names[i] < names[j]
		})

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%.2f", name, result.Weights[name]))
		}
		fmt.Fprintf(w, "Metric weights: %s\n\n", dim(strings.Join(parts, "  ")))
	}

	// Key nodes
	if len(result.KeyNodes) > 0 {
		fmt.Fprintln(w, "Key nodes:")
		for _, ip := range result.KeyNodes {
			fmt.Fprintf(w, "  %s %s %s\n",
				colored("●", colorRed), bold(ip),
				dim(fmt.Sprintf("centrality %.3f", result.Centrality[ip])))
		}
		fmt.Fprintln(w)
	}

	return nil
}

package assess

import "fmt"

// DiscoveryFailure means the device discovery sweep itself failed, so the
// subnet could not be assessed at all.
type DiscoveryFailure struct {
	Subnet string
	Err    error
}

func (e *DiscoveryFailure) Error() string {
	return fmt.Sprintf("discovery failed for %s: %v", e.Subnet, e.Err)
}

func (e *DiscoveryFailure) Unwrap() error { return e.Err }

// TelemetryFailure means metric sampling failed for a device.
type TelemetryFailure struct {
	IP  string
	Err error
}

func (e *TelemetryFailure) Error() string {
	return fmt.Sprintf("telemetry sampling failed for %s: %v", e.IP, e.Err)
}

func (e *TelemetryFailure) Unwrap() error { return e.Err }

// TopologyFailure means routing-table collection failed for the subnet.
type TopologyFailure struct {
	Subnet string
	Err    error
}

func (e *TopologyFailure) Error() string {
	return fmt.Sprintf("topology collection failed for %s: %v", e.Subnet, e.Err)
}

func (e *TopologyFailure) Unwrap() error { return e.Err }

// Package scout wraps the scout measurement tool for device discovery,
// SNMP telemetry sampling and routing-table collection.
package scout

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/netgauge/netgauge/pkg/assess"
	"github.com/netgauge/netgauge/pkg/config"
	"github.com/netgauge/netgauge/pkg/topo"
)

// Client shells out to the scout binary. It implements assess.Prober.
type Client struct {
	BinaryPath     string
	Timeout        time.Duration
	SampleInterval float64 // seconds between the two counter reads
	Community      string
	Port           int
}

// NewClient builds a Client from the scout configuration section.
func NewClient(cfg config.ScoutConfig) *Client {
	return &Client{
		BinaryPath:     cfg.BinaryPath,
		Timeout:        time.Duration(cfg.Timeout) * time.Second,
		SampleInterval: cfg.SampleInterval,
		Community:      cfg.Community,
		Port:           cfg.Port,
	}
}

// Discover sweeps the CIDR and reports responding devices along with
// whether each answered the SNMP capability probe.
func (c *Client) Discover(ctx context.Context, cidr string) ([]assess.Discovered, error) {
	out, err := c.run(ctx, "discover", "-oJ", cidr)
	if err != nil {
		return nil, err
	}
	return parseDiscovery(out)
}

// FetchMetrics samples one device twice, SampleInterval apart, and returns
// the derived occupancy rates keyed by metric name.
func (c *Client) FetchMetrics(ctx context.Context, ip string) (map[string]float64, error) {
	out, err := c.run(ctx, "metrics", "-oJ",
		"--interval", strconv.FormatFloat(c.SampleInterval, 'f', -1, 64), ip)
	if err != nil {
		return nil, err
	}
	return parseMetrics(out)
}

// FetchTopology collects routing-table records from every SNMP device on
// the subnet. Loopback, zero-address and self-referential records are
// dropped before they reach the graph layer.
func (c *Client) FetchTopology(ctx context.Context, cidr string) ([]topo.Route, error) {
	out, err := c.run(ctx, "topology", "-oJ", cidr)
	if err != nil {
		return nil, err
	}
	routes, err := parseRoutes(out)
	if err != nil {
		return nil, err
	}
	return filterRoutes(routes), nil
}

func (c *Client) run(ctx context.Context, subcommand string, extraArgs ...string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := []string{subcommand,
		"--community", c.Community,
		"--port", strconv.Itoa(c.Port),
	}
	args = append(args, extraArgs...)

	bin := c.BinaryPath
	if bin == "" {
		bin = config.DefaultScoutPath
	}
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("scout %s failed: %w\nstderr: %s", subcommand, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

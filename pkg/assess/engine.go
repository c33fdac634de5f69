package assess

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/netgauge/netgauge/pkg/config"
	"github.com/netgauge/netgauge/pkg/device"
	"github.com/netgauge/netgauge/pkg/scoring"
	"github.com/netgauge/netgauge/pkg/topo"
)

// Engine drives the assessment pipeline for one subnet at a time.
type Engine struct {
	prober Prober
	cfg    *config.Config
	log    *slog.Logger
	now    func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the engine's time source. Tests use this to pin
// AssessedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an Engine around the given prober and configuration.
func New(prober Prober, cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		prober: prober,
		cfg:    cfg,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assess runs the full pipeline against a subnet CIDR.
//
// The pipeline is two-tiered: a cheap occupancy probe first, and only if any
// SNMP device looks busy (or none are SNMP-capable) the comprehensive tier
// with full telemetry, topology and centrality-weighted scoring. Any probe
// failure aborts the run with a typed failure error; a partial read must not
// masquerade as a healthy subnet.
func (e *Engine) Assess(ctx context.Context, subnet string) (*Result, error) {
	start := e.now()
	log := e.log.With("subnet", subnet)
	log.Info("assessment started")

	discovered, err := e.prober.Discover(ctx, subnet)
	if err != nil {
		return nil, &DiscoveryFailure{Subnet: subnet, Err: err}
	}
	if len(discovered) == 0 {
		log.Info("no devices discovered")
		return e.finish(&Result{
			Subnet:  subnet,
			Outcome: OutcomeNoDevices,
			Message: "no devices discovered",
		}, start), nil
	}

	devices := make([]*device.Device, 0, len(discovered))
	for _, d := range discovered {
		devices = append(devices, device.New(d.IP, d.SNMPCapable))
	}
	log.Info("discovery complete", "devices", len(devices))

	// Only SNMP-capable devices answer telemetry probes; probing the rest
	// would turn every printer on the subnet into a fatal TelemetryFailure.
	snmp := snmpCapable(devices)

	// Tier 1: occupancy-only sample.
	if err := e.sample(ctx, snmp, e.recordOccupancy); err != nil {
		return nil, err
	}

	if e.redundancySatisfied(snmp) {
		log.Info("redundancy check passed, skipping comprehensive tier",
			"snmp_devices", len(snmp))
		res := &Result{
			Subnet:       subnet,
			Outcome:      OutcomeShortCircuit,
			OverallScore: 100,
			Devices:      reports(devices),
			Message: fmt.Sprintf("all %d SNMP devices below %.0f%% occupancy",
				len(snmp), e.cfg.Assessment.RedundancyThreshold*100),
		}
		res.RateLevel, res.RateDescription = e.rateLevel(res.OverallScore)
		return e.finish(res, start), nil
	}

	// Tier 2: topology collection overlaps the full telemetry sample.
	type topoResult struct {
		routes []topo.Route
		err    error
	}
	topoCh := make(chan topoResult, 1)
	if e.cfg.Assessment.UseTopology {
		go func() {
			routes, err := e.prober.FetchTopology(ctx, subnet)
			topoCh <- topoResult{routes, err}
		}()
	} else {
		topoCh <- topoResult{}
	}

	if err := e.sample(ctx, snmp, e.recordFull); err != nil {
		return nil, err
	}

	weights := scoring.DynamicWeights(pooledHistory(snmp), device.MetricNames,
		e.cfg.Assessment.MinWeight, e.cfg.Assessment.MaxWeight)
	log.Debug("dynamic weights computed", "weights", weights)

	deviceScores := make(map[string]float64, len(snmp))
	for _, d := range snmp {
		d.Score = scoring.DeviceScore(d.Metrics.Values(), weights,
			e.cfg.Assessment.MaxPower, e.cfg.Assessment.MostFreqPower)
		d.Risk = device.RiskFromScore(d.Score)
		deviceScores[d.IP] = d.Score
	}

	tr := <-topoCh
	if tr.err != nil {
		return nil, &TopologyFailure{Subnet: subnet, Err: tr.err}
	}

	var centrality map[string]float64
	var keyNodes []string
	if len(tr.routes) > 0 {
		edges, nodes := topo.BuildFromRoutes(tr.routes)
		centrality = topo.Betweenness(edges, nodes, true)
		keyNodes = topo.KeyNodes(centrality, e.cfg.Assessment.KeyNodeThreshold)
		log.Info("topology mapped", "nodes", len(nodes), "edges", len(edges),
			"key_nodes", len(keyNodes))
	}

	// The mean runs over every discovered device; unscorable non-SNMP
	// devices contribute their zero score and drag the subnet down.
	res := &Result{
		Subnet:       subnet,
		Outcome:      OutcomeComprehensive,
		OverallScore: scoring.SubnetScore(devices, centrality, deviceScores),
		Devices:      reports(devices),
		Weights:      weights,
		Centrality:   centrality,
		KeyNodes:     keyNodes,
	}
	res.RateLevel, res.RateDescription = e.rateLevel(res.OverallScore)
	return e.finish(res, start), nil
}

// sample fetches metrics for every device with a bounded worker pool and
// hands each reading to record. The first failure cancels the remaining
// fetches and aborts the run.
func (e *Engine) sample(ctx context.Context, devices []*device.Device,
	record func(*device.Device, map[string]float64)) error {

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Assessment.Workers)
	for _, d := range devices {
		g.Go(func() error {
			values, err := e.prober.FetchMetrics(ctx, d.IP)
			if err != nil {
				return &TelemetryFailure{IP: d.IP, Err: err}
			}
			record(d, values)
			return nil
		})
	}
	return g.Wait()
}

// recordOccupancy keeps only the occupancy reading from the cheap first pass.
func (e *Engine) recordOccupancy(d *device.Device, values map[string]float64) {
	d.Update(map[string]float64{"por": values["por"]})
}

// recordFull applies the anomaly, error and discard readings from the
// second pass. Occupancy keeps its tier-1 value so both history entries
// and the scored metrics reflect the same POR observation.
func (e *Engine) recordFull(d *device.Device, values map[string]float64) {
	full := make(map[string]float64, 3)
	for _, name := range []string{"par", "ier", "qdr"} {
		if v, ok := values[name]; ok {
			full[name] = v
		}
	}
	d.Update(full)
}

// redundancySatisfied reports whether every SNMP-capable device sits below
// the occupancy threshold. An empty SNMP set never satisfies the check:
// with nothing measured there is no evidence of spare capacity.
func (e *Engine) redundancySatisfied(snmp []*device.Device) bool {
	if len(snmp) == 0 {
		return false
	}
	for _, d := range snmp {
		if d.Metrics.POR >= e.cfg.Assessment.RedundancyThreshold {
			return false
		}
	}
	return true
}

func (e *Engine) rateLevel(score float64) (string, string) {
	return RateLevelFor(e.cfg.RateTiers, score)
}

// RateLevelFor maps a subnet score onto the configured tiers, which
// config.Validate keeps sorted by descending minimum score. Scores below
// every tier floor land in the lowest tier.
func RateLevelFor(tiers []config.RateTier, score float64) (string, string) {
	for _, t := range tiers {
		if score >= t.MinScore {
			return t.Name, t.Description
		}
	}
	last := tiers[len(tiers)-1]
	return last.Name, last.Description
}

func (e *Engine) finish(res *Result, start time.Time) *Result {
	res.ID = uuid.New()
	res.DeviceCount = len(res.Devices)
	res.AssessedAt = start
	if res.RateLevel == "" {
		res.RateLevel, res.RateDescription = e.rateLevel(res.OverallScore)
	}
	e.log.Info("assessment finished",
		"subnet", res.Subnet,
		"outcome", res.Outcome,
		"score", res.OverallScore,
		"rate_level", res.RateLevel,
		"elapsed", e.now().Sub(start))
	return res
}

func snmpCapable(devices []*device.Device) []*device.Device {
	var snmp []*device.Device
	for _, d := range devices {
		if d.SNMPCapable {
			snmp = append(snmp, d)
		}
	}
	return snmp
}

func pooledHistory(devices []*device.Device) []map[string]float64 {
	var pooled []map[string]float64
	for _, d := range devices {
		pooled = append(pooled, d.History...)
	}
	return pooled
}

func reports(devices []*device.Device) []DeviceReport {
	out := make([]DeviceReport, 0, len(devices))
	for _, d := range devices {
		out = append(out, DeviceReport{
			IP:          d.IP,
			SNMPCapable: d.SNMPCapable,
			Metrics:     d.Metrics.Values(),
			Score:       d.Score,
			Risk:        d.Risk,
		})
	}
	return out
}

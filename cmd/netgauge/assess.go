package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/netgauge/netgauge/internal/archive"
	"github.com/netgauge/netgauge/internal/scout"
	"github.com/netgauge/netgauge/pkg/assess"
	"github.com/netgauge/netgauge/pkg/config"
	"github.com/netgauge/netgauge/pkg/surface"
)

// healthyMinScore is the score floor below which the assess command exits
// nonzero, so schedulers and CI can branch on subnet health.
const healthyMinScore = 60

var errSubnetUnhealthy = errors.New("subnet health below moderate threshold")

func newAssessCmd() *cobra.Command {
	var (
		target     string
		configPath string
		outputFmt  string
		workers    int
		noTopology bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess a subnet and recommend a scan-rate level",
		Long: `Discovers devices on the target subnet, samples their telemetry, maps the
topology, and prints an overall health score with a scan-rate recommendation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runAssess(cmd.Context(), assessOpts{
				target:     target,
				configPath: configPath,
				outputFmt:  outputFmt,
				workers:    workers,
				noTopology: noTopology,
				verbose:    verbose,
			})
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Subnet CIDR to assess (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .netgauge/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().IntVar(&workers, "workers", 0, "Override the sampling worker pool size")
	cmd.Flags().BoolVar(&noTopology, "no-topology", false, "Skip topology mapping and centrality weighting")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

type assessOpts struct {
	target     string
	configPath string
	outputFmt  string
	workers    int
	noTopology bool
	verbose    bool
}

func runAssess(ctx context.Context, opts assessOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.workers > 0 {
		cfg.Assessment.Workers = opts.workers
	}
	if opts.noTopology {
		cfg.Assessment.UseTopology = false
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fmt.Fprintf(os.Stderr, "Assessing %s...\n", opts.target)

	prober := scout.NewClient(cfg.Scout)
	engine := assess.New(prober, cfg, assess.WithLogger(log))

	result, err := engine.Assess(ctx, opts.target)
	if err != nil {
		return err
	}

	saveResult(ctx, cfg, result)

	if err := surface.ForFormat(opts.outputFmt).Render(os.Stdout, result); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	if result.OverallScore < healthyMinScore {
		return errSubnetUnhealthy
	}
	return nil
}

// saveResult archives the run best-effort; a dead archive backend must not
// fail an otherwise successful assessment.
func saveResult(ctx context.Context, cfg *config.Config, result *assess.Result) {
	client, err := archive.New(ctx, cfg.Archive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: archive unavailable: %v\n", err)
		return
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal result: %v\n", err)
		return
	}

	if err := client.Put(ctx, result.Subnet, result.ID.String(), data); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to archive result: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Result archived: %s\n", result.ID)
}

// loadConfig resolves the config path, falling back to a .netgauge directory
// found in the working directory or one of its parents.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err == nil {
			path = config.FindConfigFile(cwd)
		}
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netgauge/netgauge/internal/archive"
	"github.com/netgauge/netgauge/pkg/assess"
	"github.com/netgauge/netgauge/pkg/surface"
)

func newReportCmd() *cobra.Command {
	var (
		target     string
		runID      string
		configPath string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Re-render an archived assessment result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runReport(cmd.Context(), target, runID, configPath, outputFmt)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Subnet CIDR of the archived run (required)")
	cmd.Flags().StringVar(&runID, "id", "", "Run ID printed by the assess command (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .netgauge/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runReport(ctx context.Context, target, runID, configPath, outputFmt string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	client, err := archive.New(ctx, cfg.Archive)
	if err != nil {
		return err
	}

	data, err := client.Get(ctx, target, runID)
	if err != nil {
		return fmt.Errorf("loading archived run: %w", err)
	}

	var result assess.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("parsing archived run: %w", err)
	}

	return surface.ForFormat(outputFmt).Render(os.Stdout, &result)
}

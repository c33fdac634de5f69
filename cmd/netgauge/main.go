// Package main provides the netgauge CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "netgauge",
		Short: "Subnet health assessment for adaptive scan rates",
		Long: `Netgauge samples device telemetry over SNMP, maps subnet topology, and
turns both into a 0-100 health score and a recommended scan-rate level.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newAssessCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

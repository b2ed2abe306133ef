// Package vitalscmder
package vitalscmder

import (
	"github.com/spf13/cobra"

	versioncmder "github.com/papercomputeco/vitals/cmd/version"
	configcmder "github.com/papercomputeco/vitals/cmd/vitals/config"
	initcmder "github.com/papercomputeco/vitals/cmd/vitals/init"
	querycmder "github.com/papercomputeco/vitals/cmd/vitals/query"
	servecmder "github.com/papercomputeco/vitals/cmd/vitals/serve"
)

const vitalsLongDesc string = `Vitals answers free-text questions about your health metrics.

It loads JSONL exports of heart rate, blood pressure, HRV, and activity
samples, aggregates them into daily statistics, and summarizes the slices
relevant to each query with a local or hosted model.

Run services using:
  vitals serve             Run the API server
  vitals query "<text>"    Run a one-shot query from the terminal`

const vitalsShortDesc string = "Vitals - query your health metrics"

func NewVitalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitals",
		Short: vitalsShortDesc,
		Long:  vitalsLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory containing the .vitals/ config (default: local, then home)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(querycmder.NewQueryCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}

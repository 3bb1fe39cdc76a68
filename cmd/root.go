package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gigalog",
	Short: "Manufacturing event log generator and process analytics",
	Long: `gigalog generates synthetic battery-production event logs and runs
descriptive and process-mining analytics over them.

Commands:
  generate  synthesize an event log from a stage-flow configuration
  analyze   descriptive stats, process discovery and conformance over a log
  design    synthesize a QC inspection snapshot dataset
  inspect   operational analytics over an inspection dataset`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(designCmd)
	rootCmd.AddCommand(inspectCmd)
}

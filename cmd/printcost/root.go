// ABOUTME: Root command for the printcost CLI
// ABOUTME: Handles global flags and shared configuration loading

package main

import (
	"github.com/spf13/cobra"

	"github.com/Bibekdka/3dd/config"
	"github.com/Bibekdka/3dd/logger"
)

var jsonOutput bool

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "printcost",
	Short: "3D print cost and weight estimator",
	Long: `printcost analyzes STL files and estimates material weight, print
time, and cost, then prices the batch with a configurable rate card.

Configuration is read from the environment (and a .env file if present),
using the same variables as the API server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig loads shared configuration for subcommands.
func loadConfig() (*config.Config, error) {
	return config.Load()
}

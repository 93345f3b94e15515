// Package cmd implements the CLI commands for the diggerweb backend.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "diggerweb",
	Short: "Backend for searching Discogs and seller inventories",
	Long:  "An API backend that fronts the Discogs API for a record-digging web frontend: catalog search, seller inventory search with marketplace-stats enrichment, and the OAuth1 authorization flow with server-side credential storage.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clicktree",
	Short: "clicktree renders flat leveled lists as collapsible trees",
	Long: `clicktree turns an ordered list of {id, name, level} items into a nested,
collapsible list and reports the item a user picks back to its host.

Payloads are YAML or JSON documents with an "options" list and optional
"indent", "style" and "collapsedState" keys.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./clicktree.yaml when present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject lists whose level rises by more than one")
	rootCmd.PersistentFlags().Int("row-height", 35, "Pixels per row used for the reported frame height")
	rootCmd.PersistentFlags().String("sources", "", "Directory of option list documents")
}

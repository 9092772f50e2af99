package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/clicktree"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of clicktree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "clicktree version %s\n", strings.TrimSpace(clicktree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

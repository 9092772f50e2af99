package main

import (
	"fmt"

	"github.com/aretw0/clicktree/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [payload]",
	Short: "Export the tree as a Mermaid diagram",
	Long:  `Builds the tree for a payload and outputs a Mermaid flowchart (graph TD). Edges below collapsed groups are dotted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		payload, err := loadPayload(cmd, cfg, args)
		if err != nil {
			return err
		}
		comp, err := renderComponent(cmd, cfg, logger, payload)
		if err != nil {
			return err
		}

		selected, _ := cmd.Flags().GetString("selected")
		var overlay *graph.GraphOverlay
		if selected != "" {
			overlay = &graph.GraphOverlay{SelectedID: selected}
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(comp.Tree(), overlay))
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addPayloadFlags(graphCmd)
	graphCmd.Flags().String("selected", "", "Highlight the item with this ID")
}

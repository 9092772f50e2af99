package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/clicktree/internal/cli"
	"github.com/aretw0/clicktree/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse <payload>",
	Short: "Pick an item interactively",
	Long: `Opens the tree in the terminal. Arrow keys move, left and right fold groups,
enter toggles a group or selects a leaf. The selection (item plus collapse
state) is printed as JSON, so the command can feed a script.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdin) && len(args) == 0 {
			if name, _ := cmd.Flags().GetString("source"); name == "" {
				return errors.New("browse needs a payload file or --source; stdin is used for keys")
			}
		}
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		payload, err := loadPayload(cmd, cfg, args)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		comp, err := renderComponent(cmd, cfg, logger, payload)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		sel, err := tui.Browse(ctx, comp, title)
		if err != nil {
			if errors.Is(err, tui.ErrNoSelection) {
				return nil
			}
			return cli.HandleExecutionError(err)
		}

		data, err := json.Marshal(sel)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	addPayloadFlags(browseCmd)
	browseCmd.Flags().String("title", "", "Heading shown above the tree")
}

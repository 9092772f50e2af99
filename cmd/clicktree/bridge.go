package main

import (
	"github.com/aretw0/clicktree/internal/cli"
	"github.com/aretw0/clicktree/pkg/bridge"
	"github.com/spf13/cobra"
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Host a component over JSON Lines on stdin/stdout",
	Long: `Reads one envelope per line on stdin and writes one report per line on stdout.

Inbound:  {"type":"render","args":{...}}, {"type":"toggle","key":"..."},
          {"type":"click","index":N} or {"type":"click","id":"..."}
Outbound: componentReady once, setFrameHeight after each render,
          setComponentValue after each click.

Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		b := bridge.New(cmd.InOrStdin(), cmd.OutOrStdout(),
			bridge.WithLogger(logger),
			bridge.WithComponentOptions(componentOptions(cfg, logger)...),
		)
		return cli.HandleExecutionError(b.Run(ctx))
	},
}

func init() {
	rootCmd.AddCommand(bridgeCmd)
}

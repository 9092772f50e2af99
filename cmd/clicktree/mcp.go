package main

import (
	"log"
	"os"

	"github.com/aretw0/clicktree/internal/cli"
	"github.com/aretw0/clicktree/pkg/adapters/mcp"
	"github.com/aretw0/clicktree/pkg/session"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes clicktree sessions as MCP tools (render_list, toggle_group,
select_item, get_tree) so an agent can act as the host.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		backend, err := cli.OpenStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer backend.Close()

		sessionOpts := append([]session.Option{
			session.WithLogger(logger),
			session.WithComponentOptions(componentOptions(cfg, logger)...),
		}, backend.SessionOpts...)

		serverOpts := []mcp.Option{mcp.WithLogger(logger)}
		if cfg.Sources != "" {
			src, err := openSource(cfg)
			if err != nil {
				return err
			}
			serverOpts = append(serverOpts, mcp.WithSource(src))
		}
		srv := mcp.NewServer(session.NewManager(backend.Store, sessionOpts...), serverOpts...)

		switch cfg.MCP.Transport {
		case "sse":
			logger.Info("Starting clicktree MCP Server (SSE)", "address", cfg.MCP.Addr)
			if err := srv.ServeSSE(ctx, cfg.MCP.Addr, cfg.MCP.BaseURL); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting clicktree MCP Server (Stdio)")
			return srv.ServeStdio()
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("store", "memory", "Session store: memory, file, sqlite, redis")
	mcpCmd.Flags().String("store-path", "", "Directory (file) or database path (sqlite)")
	mcpCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
}

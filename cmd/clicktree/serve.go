package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/internal/cli"
	"github.com/aretw0/clicktree/internal/presentation/tui"
	httpAdapter "github.com/aretw0/clicktree/pkg/adapters/http"
	"github.com/aretw0/clicktree/pkg/observability"
	"github.com/aretw0/clicktree/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Hosts one component per session over HTTP. Pages under /sessions/{id}/view
render the tree; reports for an embedding frame stream from
/sessions/{id}/events. The API is described at /openapi.yaml.`,
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

		compOpts := componentOptions(cfg, logger)
		var serverOpts []httpAdapter.Option
		if cfg.HTTP.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := observability.NewMetrics(reg)
			compOpts = append(compOpts, clicktree.WithLifecycleHooks(metrics.Hooks()))
			serverOpts = append(serverOpts, httpAdapter.WithMetrics(reg))
		}

		sessionOpts := append([]session.Option{session.WithComponentOptions(compOpts...)}, backend.SessionOpts...)
		serverOpts = append(serverOpts,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithSessionOptions(sessionOpts...),
		)

		server, err := httpAdapter.NewServer(ctx, backend.Store, serverOpts...)
		if err != nil {
			return err
		}
		handler, err := server.Handler()
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			if isTerminal(os.Stdout) {
				tui.PrintBanner(os.Stdout, colorProfile(false))
			}
			logger.Info("Starting clicktree server", "address", srv.Addr, "store", cfg.Store.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("clicktree server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().String("store", "memory", "Session store: memory, file, sqlite, redis")
	serveCmd.Flags().String("store-path", "", "Directory (file) or database path (sqlite)")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
}

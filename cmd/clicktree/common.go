package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/internal/cli"
	"github.com/aretw0/clicktree/internal/config"
	"github.com/aretw0/clicktree/pkg/adapters/loam"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/clicktree/pkg/observability"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// setup loads the configuration and builds the logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := cli.NewLogger(cfg.LogLevel, debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func componentOptions(cfg *config.Config, logger *slog.Logger) []clicktree.Option {
	return []clicktree.Option{
		clicktree.WithLogger(logger),
		clicktree.WithRowHeight(cfg.RowHeight),
		clicktree.WithStrict(cfg.Strict),
		clicktree.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
}

func openSource(cfg *config.Config) (*loam.Source, error) {
	if cfg.Sources == "" {
		return nil, errors.New("no sources directory configured (use --sources)")
	}
	return loam.Open(cfg.Sources)
}

// loadPayload reads the payload named by --source, or the file in args
// ("-" or no argument reads stdin).
func loadPayload(cmd *cobra.Command, cfg *config.Config, args []string) (*domain.RenderConfig, error) {
	if name, _ := cmd.Flags().GetString("source"); name != "" {
		src, err := openSource(cfg)
		if err != nil {
			return nil, err
		}
		return src.Load(cmd.Context(), name)
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	query, _ := cmd.Flags().GetString("query")
	return cli.LoadPayload(path, query, cmd.InOrStdin())
}

func addPayloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "Load the named list from the sources directory instead of a file")
	cmd.Flags().StringP("query", "q", "", "jq expression selecting the payload inside the document")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorProfile disables styling when stdout is not a terminal.
func colorProfile(noColor bool) termenv.Profile {
	if noColor || !isTerminal(os.Stdout) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func renderComponent(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, payload *domain.RenderConfig, opts ...clicktree.Option) (*clicktree.Component, error) {
	comp := clicktree.New(append(componentOptions(cfg, logger), opts...)...)
	tree, err := comp.Render(cmd.Context(), payload)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, fmt.Errorf("payload has no options")
	}
	return comp, nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/clicktree/internal/builder"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [payload]",
	Short: "Check that a payload's levels are well formed",
	Long: `Reports the first item whose level rises by more than one, or a list that
does not start at level 0. Such lists still render in the default mode, but the
resulting nesting is undefined.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		payload, err := loadPayload(cmd, cfg, args)
		if err != nil {
			return err
		}
		if !payload.Renderable() {
			return errors.New("payload has no options")
		}

		if err := builder.Validate(payload.Options); err != nil {
			var levelErr *domain.LevelError
			if errors.As(err, &levelErr) {
				item := payload.Options[levelErr.Index]
				return fmt.Errorf("item %q (%s): %w", item.ID, item.Name, err)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %d items, levels are well formed\n", len(payload.Options))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addPayloadFlags(validateCmd)
}

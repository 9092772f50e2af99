package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/clicktree/internal/presentation/html"
	"github.com/aretw0/clicktree/internal/presentation/markdown"
	"github.com/aretw0/clicktree/internal/presentation/text"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [payload]",
	Short: "Render a payload as a tree",
	Long: `Builds the tree for a payload file (or stdin) and prints it.

Formats:
- text (default): glyph-drawn outline for terminals
- markdown: nested list, styled with glamour on a terminal
- html: standalone fragment with collapse hooks
- json: the tree structure including keys and margins`,
	Args: cobra.MaximumNArgs(1),
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
		tree := comp.Tree()

		format, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")
		indices, _ := cmd.Flags().GetBool("indices")
		out := cmd.OutOrStdout()

		switch format {
		case "text":
			return text.Render(out, tree, text.Options{Profile: colorProfile(noColor), Indices: indices})
		case "markdown":
			if noColor || !isTerminal(os.Stdout) {
				_, err := fmt.Fprint(out, markdown.Markdown(tree))
				return err
			}
			style, _ := cmd.Flags().GetString("style")
			r, err := markdown.NewRenderer(style, terminalWidth())
			if err != nil {
				return err
			}
			s, err := r.Render("", tree)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, s)
			return err
		case "html":
			return html.Render(out, tree)
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(tree)
		}
		return fmt.Errorf("unknown format %q", format)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addPayloadFlags(renderCmd)
	renderCmd.Flags().StringP("format", "f", "text", "Output format: text, markdown, html, json")
	renderCmd.Flags().Bool("no-color", false, "Disable colors")
	renderCmd.Flags().Bool("indices", false, "Prefix rows with their item index")
	renderCmd.Flags().String("style", "", "glamour style for markdown output (default: detect)")
}

// Package markdown renders a tree as a Markdown list, optionally styled for
// terminals with glamour.
package markdown

import (
	"fmt"
	"strings"

	"github.com/aretw0/clicktree/internal/sanitize"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// Markdown returns the visible tree as a nested bullet list. Groups are bold;
// collapsed groups note how many items they hide.
func Markdown(tree *domain.Tree) string {
	var b strings.Builder
	for _, v := range tree.Visible() {
		n := v.Node
		b.WriteString(strings.Repeat("  ", v.Depth))
		b.WriteString("- ")
		label := escape(sanitize.Label(n.Item.Name))
		if n.IsGroup() {
			fmt.Fprintf(&b, "**%s**", label)
			if n.Collapsed {
				fmt.Fprintf(&b, " _(%d hidden)_", descendants(n))
			}
		} else {
			b.WriteString(label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func descendants(n *domain.Node) int {
	count := 0
	for _, c := range n.Children {
		count += 1 + descendants(c)
	}
	return count
}

var escaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`", `[`, `\[`, `]`, `\]`)

func escape(s string) string {
	return escaper.Replace(s)
}

// Renderer turns a tree into styled terminal output.
type Renderer struct {
	r *glamour.TermRenderer
}

// NewRenderer builds a renderer for a glamour standard style ("dark", "light",
// "notty", ...). An empty style detects the terminal background.
func NewRenderer(style string, width int) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{r: r}, nil
}

// Render styles the tree, with an optional heading.
func (r *Renderer) Render(title string, tree *domain.Tree) (string, error) {
	md := Markdown(tree)
	if title != "" {
		md = "# " + escape(title) + "\n\n" + md
	}
	return r.r.Render(md)
}

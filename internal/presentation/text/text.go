// Package text draws a tree for terminals.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/clicktree/internal/sanitize"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/muesli/termenv"
)

const (
	glyphMid  = "├─ "
	glyphLast = "└─ "
	expanded  = "▾ "
	collapsed = "▸ "
)

// Options controls text output.
type Options struct {
	// Profile selects the color capability; termenv.Ascii disables styling.
	Profile termenv.Profile
	// Indices prefixes every row with the item's input index, the handle used by select commands.
	Indices bool
}

// Line renders a single visible row without a trailing newline.
func Line(v domain.VisibleNode, opts Options) string {
	n := v.Node
	p := opts.Profile

	var b strings.Builder
	if opts.Indices {
		b.WriteString(p.String(fmt.Sprintf("%3d ", n.Index)).Faint().String())
	}
	if v.Depth > 0 {
		b.WriteString(strings.Repeat("   ", v.Depth-1))
		switch n.Glyph {
		case domain.GlyphMid:
			b.WriteString(p.String(glyphMid).Faint().String())
		case domain.GlyphLast:
			b.WriteString(p.String(glyphLast).Faint().String())
		default:
			b.WriteString("   ")
		}
	}

	label := sanitize.Label(n.Item.Name)
	if n.IsGroup() {
		marker := expanded
		if n.Collapsed {
			marker = collapsed
		}
		b.WriteString(marker)
		b.WriteString(p.String(label).Bold().String())
	} else {
		b.WriteString(p.String(label).Foreground(p.Color("#818cf8")).String())
	}
	return b.String()
}

// Render writes every visible row of tree to w.
// Descendants of collapsed groups are omitted.
func Render(w io.Writer, tree *domain.Tree, opts Options) error {
	for _, v := range tree.Visible() {
		if _, err := fmt.Fprintln(w, Line(v, opts)); err != nil {
			return err
		}
	}
	return nil
}

// String is Render into a string.
func String(tree *domain.Tree, opts Options) string {
	var b strings.Builder
	_ = Render(&b, tree, opts)
	return b.String()
}

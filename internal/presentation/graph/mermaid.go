// Package graph exports a tree as a Mermaid flowchart.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/clicktree/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	// SelectedID highlights the leaf that was last reported to the host.
	SelectedID string
}

// GenerateMermaid produces a Mermaid flowchart of the full tree, including the
// children of collapsed groups. Shapes:
//   - Root: ((Circle))
//   - Group: [Rectangle], marked ▾ or ▸
//   - Leaf: (Rounded)
//
// Edges into collapsed groups' children are dotted.
func GenerateMermaid(tree *domain.Tree, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    root((\"options\"))\n")

	var collapsed []string
	var selected string

	var walk func(parent string, parentCollapsed bool, nodes []*domain.Node)
	walk = func(parent string, parentCollapsed bool, nodes []*domain.Node) {
		for _, n := range nodes {
			id := nodeID(n)
			label := quote(n.Item.Name)

			if n.IsGroup() {
				marker := "▾"
				if n.Collapsed {
					marker = "▸"
					collapsed = append(collapsed, id)
				}
				fmt.Fprintf(&sb, "    %s[\"%s %s\"]\n", id, marker, label)
			} else {
				fmt.Fprintf(&sb, "    %s(\"%s\")\n", id, label)
				if overlay != nil && overlay.SelectedID != "" && n.Item.ID == overlay.SelectedID && selected == "" {
					selected = id
				}
			}

			arrow := "-->"
			if parentCollapsed {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", parent, arrow, id)

			walk(id, n.Collapsed, n.Children)
		}
	}
	if tree != nil && tree.Root != nil {
		walk("root", false, tree.Root.Children)
	}

	if len(collapsed) > 0 || selected != "" {
		sb.WriteString("\n    %% State Styles\n")
		// Force black text (color:#000) for contrast on both light and dark themes.
		sb.WriteString("    classDef collapsed fill:#eceff1,stroke:#607d8b,stroke-dasharray:4 2,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, id := range collapsed {
			fmt.Fprintf(&sb, "    class %s collapsed;\n", id)
		}
		if selected != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", selected)
		}
	}

	return sb.String()
}

// Item ids are host data, so nodes are named after their input index.
func nodeID(n *domain.Node) string {
	return fmt.Sprintf("n%d", n.Index)
}

func quote(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

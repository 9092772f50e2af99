package builder

import "github.com/aretw0/clicktree/pkg/domain"

// Collapsed answers whether a group key is currently collapsed.
type Collapsed interface {
	IsCollapsed(key string) bool
}

// Options controls a single build.
type Options struct {
	// Indent is the left margin for items with level > 0. It is not scaled by depth.
	Indent int
	// Style is appended verbatim to every node.
	Style string
	// RowHeight is the height of one row; zero means domain.DefaultRowHeight.
	RowHeight int
	// Strict rejects input that breaks the level rules instead of building a best-effort tree.
	Strict bool
}

// Build runs one pass over items and returns the nested tree.
// collapsed may be nil, in which case every group starts expanded.
// Items are never modified.
func Build(items []domain.Item, opts Options, collapsed Collapsed) (*domain.Tree, error) {
	if opts.Strict {
		if err := Validate(items); err != nil {
			return nil, err
		}
	}

	rowHeight := opts.RowHeight
	if rowHeight <= 0 {
		rowHeight = domain.DefaultRowHeight
	}

	tree := domain.NewTree()
	stack := newAncestors(tree.Root)

	for i, item := range items {
		stack.adjust(item.Level)

		node := &domain.Node{
			Kind:  Classify(items, i),
			Item:  item,
			Index: i,
			Glyph: SiblingGlyph(items, i),
			Style: opts.Style,
		}
		if item.Level > 0 {
			node.MarginLeft = opts.Indent
		}
		if node.IsGroup() {
			node.Key = item.Key()
			node.Collapsed = collapsed != nil && collapsed.IsCollapsed(node.Key)
		}

		stack.attach(node)
		stack.settle(node, item.Level)
	}

	tree.Count = len(items)
	tree.Height = len(items) * rowHeight
	return tree, nil
}

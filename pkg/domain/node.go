package domain

// NodeKind distinguishes containers from terminal entries.
type NodeKind string

const (
	KindRoot  NodeKind = "root"
	KindGroup NodeKind = "group"
	KindLeaf  NodeKind = "leaf"
)

// Glyph marks a nested node's position among its siblings.
type Glyph string

const (
	GlyphNone Glyph = ""
	GlyphMid  Glyph = "mid"
	GlyphLast Glyph = "last"
)

// Node is one element of the rendered tree.
// The root container and every Group own their Children exclusively.
type Node struct {
	Kind  NodeKind `json:"kind"`
	Item  Item     `json:"item"`
	Index int      `json:"index"`
	Key   string   `json:"key,omitempty"`
	Glyph Glyph    `json:"glyph,omitempty"`

	// MarginLeft is the indent in pixels; zero for top-level items.
	MarginLeft int    `json:"marginLeft"`
	Style      string `json:"style,omitempty"`

	// Collapsed only applies to groups. Children stay attached either way.
	Collapsed bool    `json:"collapsed,omitempty"`
	Children  []*Node `json:"children,omitempty"`
}

// IsGroup reports whether the node can hold children and be collapsed.
func (n *Node) IsGroup() bool {
	return n.Kind == KindGroup
}

// IsLeaf reports whether the node is a selectable terminal entry.
func (n *Node) IsLeaf() bool {
	return n.Kind == KindLeaf
}

// LastChild returns the most recently attached child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Tree is the result of a single render pass.
type Tree struct {
	Root   *Node `json:"root"`
	Height int   `json:"height"`
	Count  int   `json:"count"`
}

// NewTree returns an empty tree with a fresh root container.
func NewTree() *Tree {
	return &Tree{Root: &Node{Kind: KindRoot, Index: -1}}
}

// Walk visits every node below the root in pre-order.
// depth is 0 for top-level nodes. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t == nil || t.Root == nil {
		return
	}
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(t.Root.Children, 0)
}

// VisibleNode is a node paired with its depth in the tree.
type VisibleNode struct {
	Node  *Node
	Depth int
}

// Visible flattens the tree, omitting the descendants of collapsed groups.
func (t *Tree) Visible() []VisibleNode {
	var out []VisibleNode
	t.Walk(func(n *Node, depth int) bool {
		out = append(out, VisibleNode{Node: n, Depth: depth})
		return !n.Collapsed
	})
	return out
}

// At returns the node created for the item at the given input index.
func (t *Tree) At(index int) *Node {
	var found *Node
	t.Walk(func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Index == index {
			found = n
		}
		return true
	})
	return found
}

// GroupsByKey returns every group whose identity matches key.
func (t *Tree) GroupsByKey(key string) []*Node {
	var groups []*Node
	t.Walk(func(n *Node, _ int) bool {
		if n.IsGroup() && n.Key == key {
			groups = append(groups, n)
		}
		return true
	})
	return groups
}

// FindLeaf returns the first leaf carrying the given item id.
func (t *Tree) FindLeaf(id string) *Node {
	var found *Node
	t.Walk(func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.IsLeaf() && n.Item.ID == id {
			found = n
		}
		return true
	})
	return found
}

package builder

import (
	"testing"

	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay runs the two-phase stack updates the same way Build does and checks
// the depth invariant after every item.
func replay(t *testing.T, items []domain.Item) *domain.Tree {
	t.Helper()
	tree := domain.NewTree()
	stack := newAncestors(tree.Root)

	for i, it := range items {
		stack.adjust(it.Level)
		require.Equal(t, it.Level+1, stack.depth(), "before item %d", i)

		n := &domain.Node{Kind: Classify(items, i), Item: it, Index: i}
		stack.attach(n)
		stack.settle(n, it.Level)
		require.Equal(t, stack.level+1, stack.depth(), "after item %d", i)
	}
	return tree
}

func TestAncestors_DepthInvariant(t *testing.T) {
	in := []domain.Item{
		{ID: "a", Level: 0},
		{ID: "b", Level: 1},
		{ID: "c", Level: 2},
		{ID: "d", Level: 2},
		{ID: "e", Level: 1},
		{ID: "f", Level: 2},
		{ID: "g", Level: 3},
		{ID: "h", Level: 0},
		{ID: "i", Level: 1},
	}
	tree := replay(t, in)
	assert.Len(t, tree.Root.Children, 2)
}

func TestAncestors_NeverPopsRoot(t *testing.T) {
	root := &domain.Node{Kind: domain.KindRoot}
	a := newAncestors(root)
	a.level = 4

	a.adjust(0)
	assert.Equal(t, 1, a.depth())
	assert.Same(t, root, a.top())
	assert.Equal(t, 0, a.level)
}

func TestAncestors_DescendSkipsLeaves(t *testing.T) {
	root := &domain.Node{Kind: domain.KindRoot}
	a := newAncestors(root)

	leaf := &domain.Node{Kind: domain.KindLeaf}
	a.attach(leaf)
	a.settle(leaf, 0)

	a.adjust(1)
	assert.Equal(t, 1, a.depth(), "a leaf must not become a container")
	assert.Equal(t, 1, a.level)
}

func TestAncestors_DescendPushesLastGroup(t *testing.T) {
	root := &domain.Node{Kind: domain.KindRoot}
	a := newAncestors(root)

	group := &domain.Node{Kind: domain.KindGroup}
	a.attach(group)
	a.level = 0 // pretend settle was not called

	a.adjust(1)
	assert.Same(t, group, a.top())
}

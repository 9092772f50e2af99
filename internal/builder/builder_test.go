package builder_test

import (
	"errors"
	"testing"

	"github.com/aretw0/clicktree/internal/builder"
	"github.com/aretw0/clicktree/pkg/collapse"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(spec ...any) []domain.Item {
	out := make([]domain.Item, 0, len(spec)/2)
	for i := 0; i < len(spec); i += 2 {
		id := spec[i].(string)
		out = append(out, domain.Item{ID: id, Name: id, Level: spec[i+1].(int)})
	}
	return out
}

func names(nodes []*domain.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Item.ID
	}
	return out
}

func TestBuild_FlatList(t *testing.T) {
	in := []domain.Item{
		{ID: "a", Name: "A", Level: 0},
		{ID: "b", Name: "B", Level: 0},
	}

	tree, err := builder.Build(in, builder.Options{Indent: 10}, nil)
	require.NoError(t, err)

	require.Len(t, tree.Root.Children, 2)
	assert.Equal(t, []string{"a", "b"}, names(tree.Root.Children))
	for _, n := range tree.Root.Children {
		assert.True(t, n.IsLeaf())
		assert.Zero(t, n.MarginLeft)
		assert.Equal(t, domain.GlyphNone, n.Glyph)
	}
	assert.Equal(t, 70, tree.Height)
	assert.Equal(t, 2, tree.Count)
}

func TestBuild_NestedList(t *testing.T) {
	in := items("p", 0, "c1", 1, "c2", 1, "g", 2)

	tree, err := builder.Build(in, builder.Options{Indent: 10}, nil)
	require.NoError(t, err)

	require.Len(t, tree.Root.Children, 1)
	p := tree.Root.Children[0]
	assert.True(t, p.IsGroup())
	assert.Equal(t, "p-p-0", p.Key)
	assert.Equal(t, []string{"c1", "c2"}, names(p.Children))

	c1, c2 := p.Children[0], p.Children[1]
	assert.True(t, c1.IsLeaf())
	assert.True(t, c2.IsGroup())
	assert.Equal(t, []string{"g"}, names(c2.Children))
	assert.True(t, c2.Children[0].IsLeaf())

	assert.Equal(t, domain.GlyphMid, c1.Glyph)
	assert.Equal(t, domain.GlyphLast, c2.Glyph)
	assert.Equal(t, domain.GlyphLast, c2.Children[0].Glyph)

	assert.Equal(t, 140, tree.Height)
}

func TestBuild_FirstChildAttachesToGroup(t *testing.T) {
	cases := [][]domain.Item{
		items("a", 0, "b", 1),
		items("a", 0, "b", 1, "c", 2, "d", 3),
		items("x", 0, "a", 0, "b", 1, "y", 0),
	}
	for _, in := range cases {
		tree, err := builder.Build(in, builder.Options{}, nil)
		require.NoError(t, err)

		for i := 0; i < len(in)-1; i++ {
			if in[i+1].Level != in[i].Level+1 {
				continue
			}
			n := tree.At(i)
			require.NotNil(t, n)
			assert.True(t, n.IsGroup(), "item %d should be a group", i)
			require.NotEmpty(t, n.Children)
			assert.Equal(t, i+1, n.Children[0].Index)
		}
	}
}

func TestBuild_LastItemIsAlwaysLeaf(t *testing.T) {
	for _, in := range [][]domain.Item{
		items("a", 0),
		items("a", 0, "b", 1),
		items("a", 0, "b", 1, "c", 2),
		items("a", 0, "b", 1, "c", 0),
	} {
		tree, err := builder.Build(in, builder.Options{}, nil)
		require.NoError(t, err)
		last := tree.At(len(in) - 1)
		require.NotNil(t, last)
		assert.True(t, last.IsLeaf())
	}
}

func TestBuild_IndentIsNotScaledByDepth(t *testing.T) {
	in := items("a", 0, "b", 1, "c", 2, "d", 3, "e", 0)

	tree, err := builder.Build(in, builder.Options{Indent: 15}, nil)
	require.NoError(t, err)

	tree.Walk(func(n *domain.Node, _ int) bool {
		if n.Item.Level == 0 {
			assert.Zero(t, n.MarginLeft, n.Item.ID)
		} else {
			assert.Equal(t, 15, n.MarginLeft, n.Item.ID)
		}
		return true
	})
}

func TestBuild_HeightIgnoresNesting(t *testing.T) {
	flat := items("a", 0, "b", 0, "c", 0, "d", 0)
	deep := items("a", 0, "b", 1, "c", 2, "d", 3)

	t1, err := builder.Build(flat, builder.Options{}, nil)
	require.NoError(t, err)
	t2, err := builder.Build(deep, builder.Options{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 35*4, t1.Height)
	assert.Equal(t, t1.Height, t2.Height)
}

func TestBuild_CustomRowHeight(t *testing.T) {
	tree, err := builder.Build(items("a", 0, "b", 0), builder.Options{RowHeight: 20}, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, tree.Height)
}

func TestBuild_EmptyList(t *testing.T) {
	tree, err := builder.Build([]domain.Item{}, builder.Options{}, nil)
	require.NoError(t, err)
	assert.Empty(t, tree.Root.Children)
	assert.Zero(t, tree.Height)
}

func TestBuild_StyleAppliedToEveryNode(t *testing.T) {
	style := "color: red;"
	tree, err := builder.Build(items("a", 0, "b", 1, "c", 0), builder.Options{Style: style}, nil)
	require.NoError(t, err)

	count := 0
	tree.Walk(func(n *domain.Node, _ int) bool {
		assert.Equal(t, style, n.Style)
		count++
		return true
	})
	assert.Equal(t, 3, count)
}

func TestBuild_CollapsedGroupsKeepChildren(t *testing.T) {
	in := items("p", 0, "c", 1, "q", 0, "d", 1)
	store := collapse.New("p-p-0")

	tree, err := builder.Build(in, builder.Options{}, store)
	require.NoError(t, err)

	p, q := tree.Root.Children[0], tree.Root.Children[1]
	assert.True(t, p.Collapsed)
	assert.False(t, q.Collapsed)
	assert.Len(t, p.Children, 1)

	visible := tree.Visible()
	ids := make([]string, len(visible))
	for i, v := range visible {
		ids[i] = v.Node.Item.ID
	}
	assert.Equal(t, []string{"p", "q", "d"}, ids)
}

func TestBuild_LeavesAreNeverCollapsed(t *testing.T) {
	store := collapse.New("a-a-0")
	tree, err := builder.Build(items("a", 0), builder.Options{}, store)
	require.NoError(t, err)

	leaf := tree.Root.Children[0]
	assert.False(t, leaf.Collapsed)
	assert.Empty(t, leaf.Key)
}

func TestBuild_DeepAscent(t *testing.T) {
	in := items("a", 0, "b", 1, "c", 2, "d", 3, "e", 0, "f", 1)

	tree, err := builder.Build(in, builder.Options{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "e"}, names(tree.Root.Children))
	e := tree.Root.Children[1]
	assert.True(t, e.IsGroup())
	assert.Equal(t, []string{"f"}, names(e.Children))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	in := items("a", 0, "b", 1)
	orig := append([]domain.Item(nil), in...)

	_, err := builder.Build(in, builder.Options{Indent: 5, Style: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, orig, in)
}

func TestBuild_LevelGapIsBestEffort(t *testing.T) {
	in := items("a", 0, "b", 2, "c", 0)

	tree, err := builder.Build(in, builder.Options{}, nil)
	require.NoError(t, err)

	count := 0
	tree.Walk(func(*domain.Node, int) bool { count++; return true })
	assert.Equal(t, 3, count)
	assert.Equal(t, 105, tree.Height)
}

func TestBuild_StrictRejectsLevelGap(t *testing.T) {
	_, err := builder.Build(items("a", 0, "b", 2), builder.Options{Strict: true}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var lvlErr *domain.LevelError
	require.ErrorAs(t, err, &lvlErr)
	assert.Equal(t, 1, lvlErr.Index)
}

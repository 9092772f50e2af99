package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func sampleTree() *domain.Tree {
	leaf := func(id string, idx int) *domain.Node {
		return &domain.Node{Kind: domain.KindLeaf, Item: domain.Item{ID: id, Name: id}, Index: idx}
	}
	group := &domain.Node{
		Kind:     domain.KindGroup,
		Item:     domain.Item{ID: "g", Name: "G"},
		Key:      "g-G-0",
		Index:    0,
		Children: []*domain.Node{leaf("a", 1), leaf("b", 2)},
	}
	tree := domain.NewTree()
	tree.Root.Children = []*domain.Node{group, leaf("c", 3)}
	return tree
}

func TestItem_Key(t *testing.T) {
	item := domain.Item{ID: "7", Name: "Method A", Level: 2}
	assert.Equal(t, "7-Method A-2", item.Key())
}

func TestTree_Visible(t *testing.T) {
	tree := sampleTree()
	assert.Len(t, tree.Visible(), 4)

	tree.Root.Children[0].Collapsed = true
	visible := tree.Visible()
	assert.Len(t, visible, 2)
	assert.Equal(t, "g", visible[0].Node.Item.ID)
	assert.Equal(t, "c", visible[1].Node.Item.ID)
	assert.Equal(t, 0, visible[1].Depth)
}

func TestTree_Lookups(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, "b", tree.At(2).Item.ID)
	assert.Nil(t, tree.At(42))
	assert.Len(t, tree.GroupsByKey("g-G-0"), 1)
	assert.Empty(t, tree.GroupsByKey("nope"))
	assert.Equal(t, 1, tree.FindLeaf("a").Index)
	assert.Nil(t, tree.FindLeaf("g"))

	var nilTree *domain.Tree
	assert.Nil(t, nilTree.At(0))
}

func TestRenderConfig_Renderable(t *testing.T) {
	var cfg *domain.RenderConfig
	assert.False(t, cfg.Renderable())
	assert.False(t, (&domain.RenderConfig{}).Renderable())
	assert.True(t, (&domain.RenderConfig{Options: []domain.Item{}}).Renderable())
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnToggle: func(context.Context, *domain.ToggleEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnToggle: func(context.Context, *domain.ToggleEvent) { calls = append(calls, "b") },
		OnSelect: func(context.Context, *domain.SelectEvent) { calls = append(calls, "b-select") },
	}

	merged := a.Merge(b)
	merged.OnToggle(context.Background(), &domain.ToggleEvent{})
	merged.OnSelect(context.Background(), &domain.SelectEvent{})

	assert.Equal(t, []string{"a", "b", "b-select"}, calls)
	assert.Nil(t, merged.OnRender)
}

func TestLevelError(t *testing.T) {
	err := &domain.LevelError{Index: 2, Level: 3, Previous: 1, Reason: "level rises by more than one"}
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "item 2")
}

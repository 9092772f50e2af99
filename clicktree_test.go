package clicktree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHost captures every outbound report.
type recordingHost struct {
	ready      int
	heights    []int
	selections []domain.Selection
	err        error
}

func (h *recordingHost) Ready(context.Context) error {
	h.ready++
	return h.err
}

func (h *recordingHost) FrameHeight(_ context.Context, height int) error {
	h.heights = append(h.heights, height)
	return h.err
}

func (h *recordingHost) Select(_ context.Context, sel domain.Selection) error {
	h.selections = append(h.selections, sel)
	return h.err
}

func flatConfig() *domain.RenderConfig {
	return &domain.RenderConfig{
		Options: []domain.Item{
			{ID: "a", Name: "A", Level: 0},
			{ID: "b", Name: "B", Level: 0},
		},
		Indent: 10,
	}
}

func nestedConfig() *domain.RenderConfig {
	return &domain.RenderConfig{
		Options: []domain.Item{
			{ID: "p", Name: "P", Level: 0},
			{ID: "c1", Name: "C1", Level: 1},
			{ID: "c2", Name: "C2", Level: 1},
			{ID: "g", Name: "G", Level: 2},
		},
		Indent: 10,
	}
}

func TestComponent_RenderFlatList(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host))

	tree, err := comp.Render(context.Background(), flatConfig())
	require.NoError(t, err)

	require.Len(t, tree.Root.Children, 2)
	assert.Equal(t, "a", tree.Root.Children[0].Item.ID)
	assert.Equal(t, "b", tree.Root.Children[1].Item.ID)
	assert.Equal(t, []int{70}, host.heights)
}

func TestComponent_RenderNestedList(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host))

	tree, err := comp.Render(context.Background(), nestedConfig())
	require.NoError(t, err)

	p := tree.Root.Children[0]
	assert.True(t, p.IsGroup())
	require.Len(t, p.Children, 2)
	assert.True(t, p.Children[1].IsGroup())
	assert.Equal(t, "g", p.Children[1].Children[0].Item.ID)
	assert.Equal(t, []int{140}, host.heights)
}

func TestComponent_SelectLeaf(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host))
	ctx := context.Background()

	_, err := comp.Render(ctx, flatConfig())
	require.NoError(t, err)

	sel, err := comp.Select(ctx, 1)
	require.NoError(t, err)

	want := domain.Selection{ID: "b", Name: "B", Level: 0, CollapsedState: []string{}}
	assert.Equal(t, want, sel)
	assert.Equal(t, []domain.Selection{want}, host.selections)
}

func TestComponent_SelectGroupIsRejected(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host))
	ctx := context.Background()

	_, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)

	_, err = comp.Select(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrNotLeaf)
	assert.Empty(t, host.selections)

	_, err = comp.Select(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestComponent_SelectByID(t *testing.T) {
	comp := clicktree.New()
	ctx := context.Background()

	_, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)

	sel, err := comp.SelectByID(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Level)

	_, err = comp.SelectByID(ctx, "p")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestComponent_ToggleDoesNotRerender(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host))
	ctx := context.Background()

	tree, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)

	collapsed, err := comp.Toggle(ctx, "p-P-0")
	require.NoError(t, err)
	assert.True(t, collapsed)

	assert.Same(t, tree, comp.Tree(), "toggle must not rebuild the tree")
	assert.True(t, tree.Root.Children[0].Collapsed)
	assert.Len(t, host.heights, 1, "toggle must not report a height")
	assert.Empty(t, host.selections, "toggle must not report a selection")
	assert.Equal(t, []string{"p-P-0"}, comp.Collapsed())

	collapsed, err = comp.Toggle(ctx, "p-P-0")
	require.NoError(t, err)
	assert.False(t, collapsed)
	assert.False(t, tree.Root.Children[0].Collapsed)
	assert.Empty(t, comp.Collapsed())
}

func TestComponent_ToggleErrors(t *testing.T) {
	comp := clicktree.New()
	ctx := context.Background()

	_, err := comp.Toggle(ctx, "p-P-0")
	assert.ErrorIs(t, err, domain.ErrNoTree)

	_, err = comp.Render(ctx, flatConfig())
	require.NoError(t, err)

	_, err = comp.Toggle(ctx, "a-A-0")
	assert.ErrorIs(t, err, domain.ErrNotGroup)
}

func TestComponent_ToggleSharedKey(t *testing.T) {
	comp := clicktree.New()
	ctx := context.Background()

	tree, err := comp.Render(ctx, &domain.RenderConfig{Options: []domain.Item{
		{ID: "d", Name: "Dup", Level: 0},
		{ID: "x", Name: "X", Level: 1},
		{ID: "d", Name: "Dup", Level: 0},
		{ID: "y", Name: "Y", Level: 1},
	}})
	require.NoError(t, err)

	_, err = comp.Toggle(ctx, "d-Dup-0")
	require.NoError(t, err)
	assert.True(t, tree.Root.Children[0].Collapsed)
	assert.True(t, tree.Root.Children[1].Collapsed)
}

func TestComponent_CollapseStatePersistsWithinSession(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host))
	ctx := context.Background()

	_, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)
	_, err = comp.Toggle(ctx, "c2-C2-1")
	require.NoError(t, err)

	// New pass without collapsedState: the store is not cleared.
	tree, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)
	assert.True(t, tree.Root.Children[0].Children[1].Collapsed)
	assert.False(t, tree.Root.Children[0].Collapsed)
}

func TestComponent_EchoedStateReplacesStore(t *testing.T) {
	comp := clicktree.New()
	ctx := context.Background()

	_, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)
	_, err = comp.Toggle(ctx, "c2-C2-1")
	require.NoError(t, err)

	cfg := nestedConfig()
	cfg.CollapsedState = []string{"p-P-0"}
	tree, err := comp.Render(ctx, cfg)
	require.NoError(t, err)

	assert.True(t, tree.Root.Children[0].Collapsed)
	assert.False(t, tree.Root.Children[0].Children[1].Collapsed)
	assert.Equal(t, []string{"p-P-0"}, comp.Collapsed())

	// An explicitly empty echo clears the store.
	cfg = nestedConfig()
	cfg.CollapsedState = []string{}
	_, err = comp.Render(ctx, cfg)
	require.NoError(t, err)
	assert.Empty(t, comp.Collapsed())
}

func TestComponent_SelectionCarriesCollapseState(t *testing.T) {
	comp := clicktree.New()
	ctx := context.Background()

	_, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)
	_, err = comp.Toggle(ctx, "c2-C2-1")
	require.NoError(t, err)

	sel, err := comp.Select(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "c1", sel.ID)
	assert.Equal(t, []string{"c2-C2-1"}, sel.CollapsedState)
}

func TestComponent_SkipsPayloadWithoutOptions(t *testing.T) {
	host := &recordingHost{}
	var reasons []string
	comp := clicktree.New(
		clicktree.WithHost(host),
		clicktree.WithLifecycleHooks(domain.LifecycleHooks{
			OnSkip: func(_ context.Context, e *domain.SkipEvent) { reasons = append(reasons, e.Reason) },
		}),
	)
	ctx := context.Background()

	tree, err := comp.Render(ctx, nil)
	assert.NoError(t, err)
	assert.Nil(t, tree)

	tree, err = comp.Render(ctx, &domain.RenderConfig{Indent: 5})
	assert.NoError(t, err)
	assert.Nil(t, tree)

	assert.Empty(t, host.heights)
	assert.Equal(t, []string{"no_options", "no_options"}, reasons)
}

func TestComponent_StrictRejectsWithoutReporting(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host), clicktree.WithStrict(true))

	_, err := comp.Render(context.Background(), &domain.RenderConfig{Options: []domain.Item{
		{ID: "a", Name: "A", Level: 0},
		{ID: "b", Name: "B", Level: 2},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, host.heights)
	assert.Nil(t, comp.Tree())
}

func TestComponent_ReadyOnce(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host))

	require.NoError(t, comp.Ready(context.Background()))
	require.NoError(t, comp.Ready(context.Background()))
	assert.Equal(t, 1, host.ready)
}

func TestComponent_HostErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	comp := clicktree.New(clicktree.WithHost(&recordingHost{err: boom}))

	err := comp.Ready(context.Background())
	assert.ErrorIs(t, err, boom)

	tree, err := comp.Render(context.Background(), flatConfig())
	assert.ErrorIs(t, err, boom)
	assert.NotNil(t, tree, "the pass itself completed")
}

func TestComponent_RestoreDoesNotReport(t *testing.T) {
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host), clicktree.WithCollapsed([]string{"p-P-0"}))

	tree, err := comp.Restore(context.Background(), nestedConfig())
	require.NoError(t, err)
	assert.True(t, tree.Root.Children[0].Collapsed)
	assert.Empty(t, host.heights)
}

func TestComponent_RehydrateReplacesState(t *testing.T) {
	ctx := context.Background()
	host := &recordingHost{}
	comp := clicktree.New(clicktree.WithHost(host))
	require.NoError(t, comp.Ready(ctx))
	_, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)

	require.NoError(t, comp.Rehydrate(ctx, []string{"p-P-0"}, nestedConfig()))
	assert.True(t, comp.Tree().Root.Children[0].Collapsed)
	assert.Equal(t, []string{"p-P-0"}, comp.Collapsed())

	require.NoError(t, comp.Rehydrate(ctx, nil, nil))
	assert.Nil(t, comp.Tree())
	assert.Empty(t, comp.Collapsed())

	assert.Equal(t, 1, host.ready)
	assert.Len(t, host.heights, 1, "rehydration reports nothing")
}

func TestComponent_ConfigDropsEchoedState(t *testing.T) {
	comp := clicktree.New()
	cfg := nestedConfig()
	cfg.CollapsedState = []string{"p-P-0"}

	_, err := comp.Render(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, comp.Config().CollapsedState)
	assert.Equal(t, cfg.Options, comp.Config().Options)
}

func TestComponent_Hooks(t *testing.T) {
	var renders []*domain.RenderEvent
	var toggles []*domain.ToggleEvent
	var selects []*domain.SelectEvent

	comp := clicktree.New(
		clicktree.WithRowHeight(20),
		clicktree.WithLifecycleHooks(domain.LifecycleHooks{
			OnRender: func(_ context.Context, e *domain.RenderEvent) { renders = append(renders, e) },
			OnToggle: func(_ context.Context, e *domain.ToggleEvent) { toggles = append(toggles, e) },
			OnSelect: func(_ context.Context, e *domain.SelectEvent) { selects = append(selects, e) },
		}),
	)
	ctx := context.Background()

	_, err := comp.Render(ctx, nestedConfig())
	require.NoError(t, err)
	_, err = comp.Toggle(ctx, "p-P-0")
	require.NoError(t, err)
	_, err = comp.Select(ctx, 3)
	require.NoError(t, err)

	require.Len(t, renders, 1)
	assert.Equal(t, 4, renders[0].Items)
	assert.Equal(t, 2, renders[0].Groups)
	assert.Equal(t, 2, renders[0].Leaves)
	assert.Equal(t, 80, renders[0].Height)

	require.Len(t, toggles, 1)
	assert.True(t, toggles[0].Collapsed)

	require.Len(t, selects, 1)
	assert.Equal(t, "g", selects[0].Selection.ID)
}

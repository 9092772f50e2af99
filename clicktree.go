package clicktree

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/clicktree/internal/builder"
	"github.com/aretw0/clicktree/internal/logging"
	"github.com/aretw0/clicktree/pkg/collapse"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/clicktree/pkg/ports"
)

// Component is one instance of the collapsible list.
// It owns its collapse store and the tree of the last render pass.
type Component struct {
	host      ports.Host
	store     *collapse.Store
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	rowHeight int
	strict    bool

	tree   *domain.Tree
	config *domain.RenderConfig
	ready  bool
}

// Option defines a functional option for configuring the Component.
type Option func(*Component)

// WithHost sets the destination of outbound reports (default: discard).
func WithHost(h ports.Host) Option {
	return func(c *Component) {
		c.host = h
	}
}

// WithLogger sets a custom structured logger for the component.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Component) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Component) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithRowHeight overrides the per-row height used for the frame height report.
func WithRowHeight(px int) Option {
	return func(c *Component) {
		c.rowHeight = px
	}
}

// WithStrict makes Render reject option lists that break the level rules.
// Rejected passes report nothing to the host.
func WithStrict(strict bool) Option {
	return func(c *Component) {
		c.strict = strict
	}
}

// WithCollapsed seeds the collapse store, e.g. from a persisted session.
func WithCollapsed(keys []string) Option {
	return func(c *Component) {
		c.store.Restore(keys)
	}
}

// New creates a component with an empty collapse store.
func New(opts ...Option) *Component {
	c := &Component{
		host:      ports.NopHost{},
		store:     collapse.New(),
		logger:    logging.NewNop(),
		rowHeight: domain.DefaultRowHeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.host == nil {
		c.host = ports.NopHost{}
	}
	return c
}

// Ready sends the readiness signal. Only the first call reaches the host.
func (c *Component) Ready(ctx context.Context) error {
	if c.ready {
		return nil
	}
	if err := c.host.Ready(ctx); err != nil {
		return fmt.Errorf("failed to signal readiness: %w", err)
	}
	c.ready = true
	return nil
}

// Render runs one render pass and reports the frame height.
// A payload without options is skipped: Render returns (nil, nil) and reports nothing.
// When cfg carries CollapsedState it replaces the collapse store first; otherwise
// the store is left as it is.
func (c *Component) Render(ctx context.Context, cfg *domain.RenderConfig) (*domain.Tree, error) {
	tree, err := c.build(ctx, cfg, false)
	if err != nil || tree == nil {
		return nil, err
	}
	if err := c.host.FrameHeight(ctx, tree.Height); err != nil {
		return tree, fmt.Errorf("failed to report frame height: %w", err)
	}
	return tree, nil
}

// Restore rebuilds the tree from a previously accepted payload without reporting
// anything to the host. Sessions use it to resume after a restart.
func (c *Component) Restore(ctx context.Context, cfg *domain.RenderConfig) (*domain.Tree, error) {
	return c.build(ctx, cfg, true)
}

// Rehydrate replaces the collapse store and the tree with persisted state,
// reporting nothing to the host. A nil cfg leaves the component without a tree.
func (c *Component) Rehydrate(ctx context.Context, collapsed []string, cfg *domain.RenderConfig) error {
	c.store.Restore(collapsed)
	c.tree, c.config = nil, nil
	if cfg == nil {
		return nil
	}
	_, err := c.build(ctx, cfg, true)
	return err
}

func (c *Component) build(ctx context.Context, cfg *domain.RenderConfig, restored bool) (*domain.Tree, error) {
	if !cfg.Renderable() {
		c.logger.Debug("render skipped: payload has no options")
		c.emitSkip(ctx, "no_options", nil)
		return nil, nil
	}

	start := time.Now()
	if cfg.CollapsedState != nil {
		c.store.Restore(cfg.CollapsedState)
	}

	tree, err := builder.Build(cfg.Options, builder.Options{
		Indent:    cfg.Indent,
		Style:     cfg.Style,
		RowHeight: c.rowHeight,
		Strict:    c.strict,
	}, c.store)
	if err != nil {
		c.logger.Warn("render rejected", "error", err, "items", len(cfg.Options))
		c.emitSkip(ctx, "invalid_input", err)
		return nil, err
	}

	// The echoed state is already in the store; keeping it would clobber later toggles on Restore.
	accepted := *cfg
	accepted.CollapsedState = nil

	c.tree = tree
	c.config = &accepted
	c.emitRender(ctx, tree, restored, time.Since(start))
	c.logger.Debug("render pass complete", "items", tree.Count, "height", tree.Height, "restored", restored)
	return tree, nil
}

// Toggle flips the collapse state of the group identified by key and returns
// whether it is now collapsed. Only the affected groups change; the tree is not
// rebuilt and nothing is reported to the host. Groups sharing a key flip together.
func (c *Component) Toggle(ctx context.Context, key string) (bool, error) {
	if c.tree == nil {
		return false, domain.ErrNoTree
	}
	groups := c.tree.GroupsByKey(key)
	if len(groups) == 0 {
		return false, fmt.Errorf("%w: %s", domain.ErrNotGroup, key)
	}

	collapsed := c.store.Toggle(key)
	for _, g := range groups {
		g.Collapsed = collapsed
	}

	if c.hooks.OnToggle != nil {
		c.hooks.OnToggle(ctx, &domain.ToggleEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventToggle},
			Key:       key,
			Collapsed: collapsed,
		})
	}
	return collapsed, nil
}

// Select activates the leaf created for the item at the given input index and
// reports it to the host. Groups are not selectable.
func (c *Component) Select(ctx context.Context, index int) (domain.Selection, error) {
	if c.tree == nil {
		return domain.Selection{}, domain.ErrNoTree
	}
	node := c.tree.At(index)
	if node == nil {
		return domain.Selection{}, fmt.Errorf("%w: index %d", domain.ErrNodeNotFound, index)
	}
	return c.selectNode(ctx, node)
}

// SelectByID activates the first leaf whose item carries id.
func (c *Component) SelectByID(ctx context.Context, id string) (domain.Selection, error) {
	if c.tree == nil {
		return domain.Selection{}, domain.ErrNoTree
	}
	node := c.tree.FindLeaf(id)
	if node == nil {
		return domain.Selection{}, fmt.Errorf("%w: id %q", domain.ErrNodeNotFound, id)
	}
	return c.selectNode(ctx, node)
}

func (c *Component) selectNode(ctx context.Context, node *domain.Node) (domain.Selection, error) {
	if !node.IsLeaf() {
		return domain.Selection{}, fmt.Errorf("%w: %s", domain.ErrNotLeaf, node.Key)
	}

	sel := domain.NewSelection(node.Item, c.store.Serialize())
	if err := c.host.Select(ctx, sel); err != nil {
		return sel, fmt.Errorf("failed to report selection: %w", err)
	}

	if c.hooks.OnSelect != nil {
		c.hooks.OnSelect(ctx, &domain.SelectEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSelect},
			Selection: sel,
		})
	}
	return sel, nil
}

// Tree returns the tree of the last successful render pass, or nil.
func (c *Component) Tree() *domain.Tree {
	return c.tree
}

// Config returns the payload of the last successful render pass, or nil.
func (c *Component) Config() *domain.RenderConfig {
	return c.config
}

// Collapsed returns the serialized collapse store.
func (c *Component) Collapsed() []string {
	return c.store.Serialize()
}

func (c *Component) emitRender(ctx context.Context, tree *domain.Tree, restored bool, d time.Duration) {
	if c.hooks.OnRender == nil {
		return
	}
	evt := &domain.RenderEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRender},
		Items:     tree.Count,
		Height:    tree.Height,
		Restored:  restored,
		Duration:  d,
	}
	tree.Walk(func(n *domain.Node, _ int) bool {
		if n.IsGroup() {
			evt.Groups++
		} else {
			evt.Leaves++
		}
		return true
	})
	c.hooks.OnRender(ctx, evt)
}

func (c *Component) emitSkip(ctx context.Context, reason string, err error) {
	if c.hooks.OnSkip == nil {
		return
	}
	c.hooks.OnSkip(ctx, &domain.SkipEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSkip},
		Reason:    reason,
		Err:       err,
	})
}

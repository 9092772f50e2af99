package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRender EventType = "render"
	EventSkip   EventType = "skip"
	EventToggle EventType = "toggle"
	EventSelect EventType = "select"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RenderEvent is emitted after a completed render pass.
type RenderEvent struct {
	EventBase
	Items    int           `json:"items"`
	Groups   int           `json:"groups"`
	Leaves   int           `json:"leaves"`
	Height   int           `json:"height"`
	Restored bool          `json:"restored"`
	Duration time.Duration `json:"duration"`
}

// SkipEvent is emitted when a render pass is skipped.
type SkipEvent struct {
	EventBase
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// ToggleEvent is emitted after a group's collapse state flips.
type ToggleEvent struct {
	EventBase
	Key       string `json:"key"`
	Collapsed bool   `json:"collapsed"`
}

// SelectEvent is emitted when a selection is reported.
type SelectEvent struct {
	EventBase
	Selection Selection `json:"selection"`
}

// LifecycleHooks defines callbacks for component observability.
type LifecycleHooks struct {
	OnRender func(context.Context, *RenderEvent)
	OnSkip   func(context.Context, *SkipEvent)
	OnToggle func(context.Context, *ToggleEvent)
	OnSelect func(context.Context, *SelectEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRender: chain(h.OnRender, other.OnRender),
		OnSkip:   chain(h.OnSkip, other.OnSkip),
		OnToggle: chain(h.OnToggle, other.OnToggle),
		OnSelect: chain(h.OnSelect, other.OnSelect),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

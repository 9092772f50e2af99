package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/clicktree/pkg/domain"
)

// LoggingHooks writes one structured log line per lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRender: func(ctx context.Context, e *domain.RenderEvent) {
			logger.InfoContext(ctx, "render",
				"items", e.Items,
				"groups", e.Groups,
				"leaves", e.Leaves,
				"height", e.Height,
				"restored", e.Restored,
				"duration", e.Duration,
			)
		},
		OnSkip: func(ctx context.Context, e *domain.SkipEvent) {
			attrs := []any{"reason", e.Reason}
			if e.Err != nil {
				attrs = append(attrs, "err", e.Err)
			}
			logger.InfoContext(ctx, "render_skipped", attrs...)
		},
		OnToggle: func(ctx context.Context, e *domain.ToggleEvent) {
			logger.InfoContext(ctx, "toggle", "key", e.Key, "collapsed", e.Collapsed)
		},
		OnSelect: func(ctx context.Context, e *domain.SelectEvent) {
			logger.InfoContext(ctx, "select",
				"id", e.Selection.ID,
				"name", e.Selection.Name,
				"level", e.Selection.Level,
				"collapsed", len(e.Selection.CollapsedState),
			)
		},
	}
}

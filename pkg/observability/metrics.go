package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	Renders    *prometheus.CounterVec
	Skips      *prometheus.CounterVec
	Toggles    *prometheus.CounterVec
	Selections prometheus.Counter
	Items      prometheus.Histogram
	Duration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clicktree_render_passes_total",
				Help: "Total number of completed render passes",
			},
			[]string{"restored"},
		),
		Skips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clicktree_render_skipped_total",
				Help: "Total number of skipped render passes",
			},
			[]string{"reason"},
		),
		Toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clicktree_toggles_total",
				Help: "Total number of group collapse toggles",
			},
			[]string{"state"},
		),
		Selections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clicktree_selections_total",
				Help: "Total number of reported selections",
			},
		),
		Items: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "clicktree_render_items",
				Help:    "Number of items per render pass",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "clicktree_render_duration_seconds",
				Help:    "Duration of render passes",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}
	reg.MustRegister(m.Renders, m.Skips, m.Toggles, m.Selections, m.Items, m.Duration)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRender: func(_ context.Context, e *domain.RenderEvent) {
			m.Renders.WithLabelValues(strconv.FormatBool(e.Restored)).Inc()
			m.Items.Observe(float64(e.Items))
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnSkip: func(_ context.Context, e *domain.SkipEvent) {
			m.Skips.WithLabelValues(e.Reason).Inc()
		},
		OnToggle: func(_ context.Context, e *domain.ToggleEvent) {
			state := "expanded"
			if e.Collapsed {
				state = "collapsed"
			}
			m.Toggles.WithLabelValues(state).Inc()
		},
		OnSelect: func(_ context.Context, _ *domain.SelectEvent) {
			m.Selections.Inc()
		},
	}
}

package observability

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Metrics holds the editor's collectors.
type Metrics struct {
	Edits        *prometheus.CounterVec
	Rejections   *prometheus.CounterVec
	Saves        *prometheus.CounterVec
	SaveDuration prometheus.Histogram
	SavedNodes   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Edits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dwengo_editor_edits_total",
				Help: "Structural edits applied, by kind",
			},
			[]string{"type"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dwengo_editor_rejections_total",
				Help: "Structural edits refused, by reason",
			},
			[]string{"reason"},
		),
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dwengo_editor_saves_total",
				Help: "Save attempts that reached the path store, by outcome",
			},
			[]string{"outcome"},
		),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dwengo_editor_save_duration_seconds",
			Help:    "Duration of path store saves",
			Buckets: prometheus.DefBuckets,
		}),
		SavedNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dwengo_editor_saved_nodes",
			Help:    "Nodes per saved path",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
	reg.MustRegister(m.Edits, m.Rejections, m.Saves, m.SaveDuration, m.SavedNodes)
	return m
}

// Hooks records every event on the collectors.
func (m *Metrics) Hooks() domain.EditorHooks {
	return domain.EditorHooks{
		OnEdit: func(_ context.Context, e *domain.EditEvent) {
			m.Edits.WithLabelValues(string(e.Type)).Inc()
		},
		OnRejected: func(_ context.Context, e *domain.EditEvent) {
			m.Rejections.WithLabelValues(e.Reason).Inc()
		},
		OnSave: func(_ context.Context, e *domain.SaveEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.Saves.WithLabelValues(outcome).Inc()
			m.SaveDuration.Observe(e.Duration.Seconds())
			if e.Err == nil {
				m.SavedNodes.Observe(float64(e.Nodes))
			}
		},
	}
}

// LogHooks writes one structured line per event.
func LogHooks(logger *slog.Logger) domain.EditorHooks {
	return domain.EditorHooks{
		OnEdit: func(ctx context.Context, e *domain.EditEvent) {
			logger.InfoContext(ctx, string(e.Type),
				"session_id", e.SessionID,
				"branch", e.Branch.String(),
				"node", e.Node.String(),
				"index", e.Index,
				"discarded", e.Discarded,
			)
		},
		OnRejected: func(ctx context.Context, e *domain.EditEvent) {
			logger.InfoContext(ctx, string(e.Type),
				"session_id", e.SessionID,
				"branch", e.Branch.String(),
				"index", e.Index,
				"reason", e.Reason,
			)
		},
		OnSave: func(ctx context.Context, e *domain.SaveEvent) {
			attrs := []any{
				"session_id", e.SessionID,
				"path_id", e.PathID,
				"nodes", e.Nodes,
				"drafts", e.Drafts,
				"duration", e.Duration,
			}
			if e.Err != nil {
				logger.WarnContext(ctx, string(e.Type), append(attrs, "err", e.Err)...)
				return
			}
			logger.InfoContext(ctx, string(e.Type), attrs...)
		},
	}
}

// Chain calls each set of hooks in order.
func Chain(all ...domain.EditorHooks) domain.EditorHooks {
	return domain.EditorHooks{
		OnEdit: func(ctx context.Context, e *domain.EditEvent) {
			for _, h := range all {
				if h.OnEdit != nil {
					h.OnEdit(ctx, e)
				}
			}
		},
		OnRejected: func(ctx context.Context, e *domain.EditEvent) {
			for _, h := range all {
				if h.OnRejected != nil {
					h.OnRejected(ctx, e)
				}
			}
		},
		OnSave: func(ctx context.Context, e *domain.SaveEvent) {
			for _, h := range all {
				if h.OnSave != nil {
					h.OnSave(ctx, e)
				}
			}
		},
	}
}

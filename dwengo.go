package dwengo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SELab-2/Dwengo-4-sub000/internal/editor"
	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/internal/presentation/graph"
	"github.com/SELab-2/Dwengo-4-sub000/internal/presentation/tui"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/observability"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/session"
)

// Service is the high-level entry point for the path editor.
// It wires the editing sessions to a path store and a content catalog.
type Service struct {
	sessions  *session.Manager
	store     ports.PathStore
	catalog   ports.ContentCatalog
	hooks     []domain.EditorHooks
	metrics   *observability.Metrics
	registry  prometheus.Registerer
	locker    ports.DistributedLocker
	lockTTL   time.Duration
	noticeTTL time.Duration
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithLogger sets a custom structured logger for the service and its sessions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks. Hooks of repeated calls are chained.
func WithHooks(hooks domain.EditorHooks) Option {
	return func(s *Service) {
		s.hooks = append(s.hooks, hooks)
	}
}

// WithMetrics registers the editor collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.registry = reg
	}
}

// WithLocker serializes saves across processes.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(s *Service) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

// WithNoticeTTL sets how long user notices stay visible.
func WithNoticeTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.noticeTTL = ttl
	}
}

// New initializes the service.
func New(store ports.PathStore, catalog ports.ContentCatalog, opts ...Option) (*Service, error) {
	if store == nil || catalog == nil {
		return nil, errors.New("a path store and a content catalog are required")
	}
	s := &Service{store: store, catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	hooks := append([]domain.EditorHooks{observability.LogHooks(s.logger)}, s.hooks...)
	if s.registry != nil {
		s.metrics = observability.NewMetrics(s.registry)
		hooks = append(hooks, s.metrics.Hooks())
	}

	editorOpts := []editor.Option{editor.WithHooks(observability.Chain(hooks...))}
	if s.noticeTTL > 0 {
		editorOpts = append(editorOpts, editor.WithNoticeTTL(s.noticeTTL))
	}
	managerOpts := []session.Option{
		session.WithLogger(s.logger),
		session.WithEditorOptions(editorOpts...),
	}
	if s.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(s.locker), session.WithLockTTL(s.lockTTL))
	}
	s.sessions = session.NewManager(store, catalog, managerOpts...)
	return s, nil
}

// Sessions returns the session manager.
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}

// Metrics returns the collectors, or nil when WithMetrics was not given.
func (s *Service) Metrics() *observability.Metrics {
	return s.metrics
}

// Create starts a session for a new path.
func (s *Service) Create(ctx context.Context, meta domain.PathMetadata) (*editor.Session, error) {
	return s.sessions.Create(ctx, meta)
}

// Open starts a session on a stored path.
func (s *Service) Open(ctx context.Context, pathID int64) (*editor.Session, error) {
	return s.sessions.Open(ctx, pathID)
}

// Report summarizes the structural check of a stored path.
type Report struct {
	PathID   int64    `json:"path_id"`
	Nodes    int      `json:"nodes"`
	Branches int      `json:"branches"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate loads a stored path and checks that it forms a tree. Dangling references are
// reported as warnings; a cycle or a shared node is an error.
func (s *Service) Validate(ctx context.Context, pathID int64) (Report, error) {
	_, g, warnings, err := s.load(ctx, pathID)
	if err != nil {
		return Report{PathID: pathID}, err
	}
	r := Report{PathID: pathID, Nodes: g.Len(), Branches: len(g.Branches())}
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r, nil
}

// Mermaid renders a stored path as a Mermaid flowchart.
func (s *Service) Mermaid(ctx context.Context, pathID int64) (string, error) {
	_, g, _, err := s.load(ctx, pathID)
	if err != nil {
		return "", err
	}
	return graph.GenerateMermaid(g, nil)
}

// Outline renders a stored path as a markdown outline.
func (s *Service) Outline(ctx context.Context, pathID int64) (string, error) {
	p, g, _, err := s.load(ctx, pathID)
	if err != nil {
		return "", err
	}
	return tui.Outline(p.Metadata, g)
}

func (s *Service) load(ctx context.Context, pathID int64) (*domain.Path, *pathgraph.Graph, []pathgraph.Warning, error) {
	p, err := s.store.LoadPath(ctx, pathID)
	if err != nil {
		return nil, nil, nil, err
	}
	g, warnings, err := pathgraph.FromPath(p)
	if err != nil {
		return nil, nil, nil, err
	}
	return p, g, warnings, nil
}

// RunReaper closes sessions idle for longer than maxIdle, checking every interval,
// until ctx is done.
func (s *Service) RunReaper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Reap(maxIdle); n > 0 {
				s.logger.Info("Reaped idle sessions", "count", n)
			}
		}
	}
}

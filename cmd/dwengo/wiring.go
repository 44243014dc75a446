package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SELab-2/Dwengo-4-sub000"
	"github.com/SELab-2/Dwengo-4-sub000/internal/config"
	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/cache"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/file"
	loamAdapter "github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/loam"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/memory"
	redisAdapter "github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/redis"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
)

//go:embed sample_catalog.yaml
var sampleCatalog []byte

// app holds what a command needs, built from the configuration.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   ports.PathStore
	catalog ports.ContentCatalog
	docs    *loamAdapter.Catalog // set when content comes from a document directory
	service *dwengo.Service
	closers []io.Closer
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("Close failed", "err", err)
		}
	}
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, cfg.LogJSON), nil
}

// newApp wires the store, the catalog and the service. reg may be nil.
func newApp(cfg config.Config, reg prometheus.Registerer, extra ...dwengo.Option) (*app, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger}

	opts := []dwengo.Option{dwengo.WithLogger(logger), dwengo.WithNoticeTTL(cfg.Editor.NoticeTTL)}
	if reg != nil {
		opts = append(opts, dwengo.WithMetrics(reg))
	}

	switch cfg.Store.Driver {
	case "file":
		a.store = file.New(cfg.Store.Dir)
	case "redis":
		rc := cfg.Store.Redis
		store := redisAdapter.New(rc.Addr, rc.Password, rc.DB, redisAdapter.WithPrefix(rc.Prefix))
		a.store = store
		a.closers = append(a.closers, store.Client())
		opts = append(opts, dwengo.WithLocker(redisAdapter.NewLocker(store.Client(), rc.Prefix), cfg.Editor.LockTTL))
	default:
		a.store = memory.NewStore()
	}

	opts = append(opts, extra...)

	if err := a.loadCatalog(context.Background()); err != nil {
		return nil, err
	}

	a.service, err = dwengo.New(a.store, a.catalog, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Service wired", "store", cfg.Store.Driver, "catalog", cfg.Catalog.File, "content_dir", cfg.Catalog.Dir)
	return a, nil
}

// loadCatalog builds the content catalog: a markdown document directory, a YAML file or the
// embedded sample, cached when a TTL is configured.
func (a *app) loadCatalog(ctx context.Context) error {
	cfg := a.cfg.Catalog
	var catalog ports.ContentCatalog
	switch {
	case cfg.Dir != "":
		docs, err := loamAdapter.Open(ctx, cfg.Dir, loamAdapter.WithLogger(a.logger))
		if err != nil {
			return err
		}
		a.docs = docs
		catalog = docs
	case cfg.File != "":
		c, err := file.LoadCatalog(cfg.File)
		if err != nil {
			return err
		}
		catalog = c
	default:
		summaries, err := file.ParseCatalog(sampleCatalog)
		if err != nil {
			return fmt.Errorf("sample catalog: %w", err)
		}
		catalog = memory.NewCatalog(summaries...)
	}
	if cfg.CacheTTL > 0 {
		catalog = cache.NewCatalog(catalog, cfg.CacheTTL)
	}
	a.catalog = catalog
	return nil
}

// seedPath stores p with its own ids, for stores that support it.
func seedPath(ctx context.Context, store ports.PathStore, p *domain.Path) error {
	switch s := store.(type) {
	case *memory.Store:
		s.Seed(p)
		return nil
	case *file.Store:
		return s.Seed(p)
	case *redisAdapter.Store:
		return s.Seed(ctx, p)
	}
	return fmt.Errorf("store %T cannot be seeded", store)
}

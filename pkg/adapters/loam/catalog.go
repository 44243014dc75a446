// Package loam serves learning content authored as markdown documents with front matter.
//
// Each document is one unit of content. The front matter carries the catalog entry
// (local or hruid, language, title, kind, question) and the body is the question prompt
// when the front matter does not give one. A document without local or hruid is local
// content named after its file.
package loam

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/loam"

	"github.com/SELab-2/Dwengo-4-sub000/internal/dto"
	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/memory"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Catalog implements ports.ContentCatalog over a Loam repository.
type Catalog struct {
	Repo *loam.TypedRepository[dto.CatalogEntry]

	mu      sync.RWMutex
	current *memory.Catalog
	logger  *slog.Logger
}

// Option configures the Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for reloads.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Open loads the content documents under dir. The directory is never written to.
func Open(ctx context.Context, dir string, opts ...Option) (*Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(ctx, loam.NewTypedRepository[dto.CatalogEntry](repo), opts...)
}

// New creates a catalog over repo and loads it.
func New(ctx context.Context, repo *loam.TypedRepository[dto.CatalogEntry], opts ...Option) (*Catalog, error) {
	c := &Catalog{Repo: repo, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload reads every document again. On error the previous content stays in place.
func (c *Catalog) Reload(ctx context.Context) error {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loam list failed: %w", err)
	}

	summaries := make([]domain.ContentSummary, 0, len(docs))
	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		s, err := toSummary(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return fmt.Errorf("%s: %w", doc.ID, err)
		}
		key := s.Ref.String()
		if other, dup := seen[key]; dup {
			return fmt.Errorf("collision detected: %s is defined in both '%s' and '%s'", key, other, doc.ID)
		}
		seen[key] = doc.ID
		summaries = append(summaries, s)
	}

	c.mu.Lock()
	c.current = memory.NewCatalog(summaries...)
	c.mu.Unlock()
	c.logger.Debug("Content catalog loaded", "documents", len(summaries))
	return nil
}

func toSummary(docID string, entry dto.CatalogEntry, body string) (domain.ContentSummary, error) {
	name := trimExtension(docID)
	if entry.Local == "" && entry.Hruid == "" {
		entry.Local = name
	}
	if strings.TrimSpace(entry.Title) == "" {
		entry.Title = filepath.Base(name)
	}
	s, err := dto.ToSummary(entry)
	if err != nil {
		return s, err
	}
	if s.PromptText == "" && s.Kind != domain.ContentKindLearningObject {
		s.PromptText = strings.TrimSpace(body)
	}
	return s, nil
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}

func (c *Catalog) catalog() *memory.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// FetchContent looks ref up in the loaded documents.
func (c *Catalog) FetchContent(ctx context.Context, ref domain.ContentRef) (domain.ContentSummary, error) {
	return c.catalog().FetchContent(ctx, ref)
}

// SearchContent lists matching documents ordered by title.
func (c *Catalog) SearchContent(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentSummary, error) {
	return c.catalog().SearchContent(ctx, filter)
}

// Watch reloads the catalog whenever a document changes, until ctx is done.
// A reload that fails is logged and the previous content is kept.
func (c *Catalog) Watch(ctx context.Context) error {
	events, err := c.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return fmt.Errorf("failed to start loam watcher: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				if err := c.Reload(ctx); err != nil {
					c.logger.Warn("Content catalog reload failed", "document", evt.ID, "err", err)
					continue
				}
				c.logger.Info("Content catalog reloaded", "document", evt.ID)
			}
		}
	}()
	return nil
}

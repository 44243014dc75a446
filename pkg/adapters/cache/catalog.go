// Package cache decorates a content catalog with an in-process TTL cache.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
)

// Catalog caches FetchContent results, including misses, for the configured TTL.
// Searches always go to the underlying catalog.
type Catalog struct {
	next  ports.ContentCatalog
	cache *cache.Cache
}

type miss struct{}

// NewCatalog wraps next. A zero ttl defaults to five minutes.
func NewCatalog(next ports.ContentCatalog, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Catalog{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

// FetchContent serves from the cache when possible.
func (c *Catalog) FetchContent(ctx context.Context, ref domain.ContentRef) (domain.ContentSummary, error) {
	key := ref.String()
	if x, found := c.cache.Get(key); found {
		if s, ok := x.(domain.ContentSummary); ok {
			s.Options = append([]string(nil), s.Options...)
			return s, nil
		}
		return domain.ContentSummary{}, domain.ErrContentNotFound
	}

	s, err := c.next.FetchContent(ctx, ref)
	switch {
	case err == nil:
		c.cache.Set(key, s, cache.DefaultExpiration)
	case errors.Is(err, domain.ErrContentNotFound):
		c.cache.Set(key, miss{}, cache.DefaultExpiration)
	}
	return s, err
}

// SearchContent delegates to the wrapped catalog and warms the cache with the results.
func (c *Catalog) SearchContent(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentSummary, error) {
	found, err := c.next.SearchContent(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, s := range found {
		c.cache.Set(s.Ref.String(), s, cache.DefaultExpiration)
	}
	return found, nil
}

// Invalidate drops every cached entry.
func (c *Catalog) Invalidate() {
	c.cache.Flush()
}

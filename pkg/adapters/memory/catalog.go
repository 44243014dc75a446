package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Catalog implements ports.ContentCatalog over a fixed set of summaries.
type Catalog struct {
	mu      sync.RWMutex
	content map[string]domain.ContentSummary
}

// NewCatalog creates a catalog holding the given content, keyed by reference.
func NewCatalog(content ...domain.ContentSummary) *Catalog {
	c := &Catalog{content: make(map[string]domain.ContentSummary, len(content))}
	for _, s := range content {
		c.content[s.Ref.String()] = s
	}
	return c
}

// Put adds or replaces one entry.
func (c *Catalog) Put(s domain.ContentSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content[s.Ref.String()] = s
}

// FetchContent looks ref up.
func (c *Catalog) FetchContent(ctx context.Context, ref domain.ContentRef) (domain.ContentSummary, error) {
	if err := ref.Validate(); err != nil {
		return domain.ContentSummary{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.content[ref.String()]
	if !ok {
		return domain.ContentSummary{}, domain.ErrContentNotFound
	}
	s.Options = append([]string(nil), s.Options...)
	return s, nil
}

// SearchContent returns the matching entries ordered by title.
func (c *Catalog) SearchContent(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.ContentSummary, 0)
	for _, s := range c.content {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	SortSummaries(out)
	return out, nil
}

// SortSummaries orders by title, then by reference for equal titles.
func SortSummaries(s []domain.ContentSummary) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Title != s[j].Title {
			return s[i].Title < s[j].Title
		}
		return s[i].Ref.String() < s[j].Ref.String()
	})
}

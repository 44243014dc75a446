package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SELab-2/Dwengo-4-sub000/internal/reconcile"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Store implements ports.PathStore in memory.
// Safe for concurrent use.
type Store struct {
	data     map[int64]*domain.Path
	lastPath int64
	lastNode int64
	mu       sync.RWMutex
	now      func() time.Time
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[int64]*domain.Path),
		now:  time.Now,
	}
}

// Seed stores a prepared path under its own id, as the seed command and tests do.
func (s *Store) Seed(p *domain.Path) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := p.Clone()
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = s.now()
	}
	s.data[cp.ID] = cp
	s.lastPath = max(s.lastPath, cp.ID)
	for _, n := range cp.Nodes {
		s.lastNode = max(s.lastNode, n.ID)
	}
}

// SaveOrCreatePath applies the request under the write lock, so readers see the old or the new path.
func (s *Store) SaveOrCreatePath(ctx context.Context, req domain.SaveRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *domain.Path
	id := s.lastPath + 1
	if req.PathID != nil {
		p, ok := s.data[*req.PathID]
		if !ok {
			return 0, domain.ErrPathNotFound
		}
		existing, id = p, p.ID
	}

	// Ids are only committed once the whole path is valid.
	nextNode := s.lastNode
	path, err := reconcile.Apply(id, existing, req, func() (int64, error) {
		nextNode++
		return nextNode, nil
	})
	if err != nil {
		return 0, err
	}
	path.UpdatedAt = s.now()

	s.data[id] = path
	s.lastNode = nextNode
	s.lastPath = max(s.lastPath, id)
	return id, nil
}

// LoadPath retrieves a copy of the stored path.
func (s *Store) LoadPath(ctx context.Context, id int64) (*domain.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[id]
	if !ok {
		return nil, domain.ErrPathNotFound
	}
	return p.Clone(), nil
}

// ListPaths returns the stored paths ordered by id.
func (s *Store) ListPaths(ctx context.Context) ([]domain.PathSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PathSummary, 0, len(s.data))
	for _, p := range s.data {
		out = append(out, p.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

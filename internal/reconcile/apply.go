package reconcile

import (
	"fmt"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Apply computes the stored form of req. existing is the currently stored path, nil on
// creation; every persisted id named by the payload must belong to it. The caller writes
// the returned path in one step, which is what makes a save all-or-nothing.
func Apply(pathID int64, existing *domain.Path, req domain.SaveRequest, alloc IDAllocator) (*domain.Path, error) {
	known := map[int64]*domain.PersistedNode{}
	if existing != nil {
		known = existing.NodeByID()
	}
	for _, entry := range req.Payload.Nodes {
		if entry.Draft || entry.ID == nil {
			continue
		}
		if _, ok := known[*entry.ID]; !ok {
			return nil, fmt.Errorf("node %d: %w", *entry.ID, domain.ErrNodeNotFound)
		}
	}

	nodes, start, err := Materialize(req.Payload, alloc)
	if err != nil {
		return nil, err
	}
	out := &domain.Path{
		ID:          pathID,
		Metadata:    req.Metadata,
		StartNodeID: start,
		Nodes:       nodes,
	}
	if _, _, err := pathgraph.FromPath(out); err != nil {
		return nil, err
	}
	return out, nil
}

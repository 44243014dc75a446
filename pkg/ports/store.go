package ports

import (
	"context"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// PathStore persists learning paths.
type PathStore interface {
	// SaveOrCreatePath applies the whole request atomically: either every node and
	// transition of the payload is stored, or nothing changes. A nil PathID creates a
	// new path. It returns the id of the saved path.
	// Returns domain.ErrPathNotFound when PathID names no stored path.
	SaveOrCreatePath(ctx context.Context, req domain.SaveRequest) (int64, error)

	// LoadPath retrieves a stored path with its nodes and transitions.
	// Returns domain.ErrPathNotFound if the path does not exist.
	LoadPath(ctx context.Context, id int64) (*domain.Path, error)

	// ListPaths returns a summary of every stored path, ordered by id.
	ListPaths(ctx context.Context) ([]domain.PathSummary, error)
}

package ports

import (
	"context"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// ContentCatalog resolves the learning content nodes refer to.
type ContentCatalog interface {
	// FetchContent returns the summary of ref.
	// Returns domain.ErrContentNotFound if the catalog does not know it.
	FetchContent(ctx context.Context, ref domain.ContentRef) (domain.ContentSummary, error)

	// SearchContent lists content matching filter, ordered by title.
	SearchContent(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentSummary, error)
}

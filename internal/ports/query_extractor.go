package ports

import (
	"context"

	"travel-search-service/internal/domain"
)

// Port: boundary to the natural-language query extractor. Implementations
// turn a free-text travel request into a structured search query.
type QueryExtractor interface {
	Extract(ctx context.Context, message string) (domain.SearchQuery, error)
}

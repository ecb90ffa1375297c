package driving

import (
	"context"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

// SearchService provides keyword search over ingested documents.
type SearchService interface {
	// Search returns up to domain.SearchLimit hits for a free-text query.
	// The indexed path is used when the query is safe for the index
	// grammar; otherwise, or on an index error, the substring fallback
	// runs. Returns domain.ErrEmptyQuery for a blank query; index
	// grammar errors are never surfaced.
	Search(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchHit, error)
}

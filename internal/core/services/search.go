package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driving"
	"github.com/arkiv-labs/arkiv-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// strippedPunctuation is removed from queries before they reach the
// full-text index; each of these characters carries meaning in the
// FTS5 MATCH grammar or adds nothing to a keyword query.
const strippedPunctuation = `"'?()[]{}*+`

// SearchService routes queries to the full-text index or the substring
// fallback. The index path is best effort only: any index failure
// downgrades to the fallback, so callers always get a plain result or
// a storage error, never an index syntax error.
type SearchService struct {
	store driven.MetadataStore
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.MetadataStore) *SearchService {
	return &SearchService{store: store}
}

// Search runs a keyword search over all ingested documents.
func (s *SearchService) Search(
	ctx context.Context, query string, filter domain.SearchFilter,
) ([]domain.SearchHit, error) {
	logger.Debug("Search query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	path, indexQuery := decidePath(query)
	logger.Debug("Search path: %s", path)

	if path == domain.UseIndex {
		hits, err := s.store.IndexedSearch(ctx, indexQuery, filter)
		if err == nil {
			logger.Debug("Indexed search: %d hits", len(hits))
			return hits, nil
		}
		// Bad MATCH syntax or a broken index must not surface to the
		// caller; the substring scan still answers the query.
		logger.Warn("Indexed search failed, falling back to substring scan: %v", err)
	}

	hits, err := s.store.SubstringSearch(ctx, query, filter)
	if err != nil {
		return nil, fmt.Errorf("substring search: %w", err)
	}
	logger.Debug("Substring search: %d hits", len(hits))
	return hits, nil
}

// decidePath picks the search path for a query and, on the index path,
// returns the sanitized query to match with. Queries containing
// non-ASCII runes or MATCH punctuation go straight to the fallback,
// as does anything the sanitizer reduces to nothing.
func decidePath(query string) (domain.SearchPath, string) {
	for _, r := range query {
		if r > unicode.MaxASCII {
			return domain.UseFallback, ""
		}
		if strings.ContainsRune(strippedPunctuation, r) {
			return domain.UseFallback, ""
		}
	}

	sanitized := SanitizeQuery(query)
	if sanitized == "" {
		return domain.UseFallback, ""
	}
	return domain.UseIndex, sanitized
}

// SanitizeQuery normalises a raw query for the full-text index:
// MATCH punctuation is removed, hyphens become spaces, and tokens
// shorter than two runes are dropped. Sanitizing twice is a no-op.
func SanitizeQuery(query string) string {
	var b strings.Builder
	for _, r := range query {
		switch {
		case strings.ContainsRune(strippedPunctuation, r):
			// dropped
		case r == '-':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	var tokens []string
	for _, token := range strings.Fields(b.String()) {
		if len([]rune(token)) >= 2 {
			tokens = append(tokens, token)
		}
	}
	return strings.Join(tokens, " ")
}

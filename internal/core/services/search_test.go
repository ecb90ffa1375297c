package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"plain words", "budget report", "budget report"},
		{"strips punctuation", `"budget" (report)?`, "budget report"},
		{"hyphen becomes space", "year-end", "year end"},
		{"drops short tokens", "a budget b report c", "budget report"},
		{"brackets and wildcards", "[q3]* {draft}+", "q3 draft"},
		{"only punctuation", `"?*+`, ""},
		{"idempotent", "budget report", SanitizeQuery(SanitizeQuery("budget report"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeQuery(tt.query))
		})
	}
}

func TestDecidePath(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPath  domain.SearchPath
		wantQuery string
	}{
		{"ascii words", "budget report", domain.UseIndex, "budget report"},
		{"hyphenated", "year-end", domain.UseIndex, "year end"},
		{"cyrillic", "бюджет", domain.UseFallback, ""},
		{"quoted phrase", `"budget"`, domain.UseFallback, ""},
		{"parentheses", "report (draft)", domain.UseFallback, ""},
		{"short tokens only", "a b c", domain.UseFallback, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, query := decidePath(tt.query)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantQuery, query)
		})
	}
}

func TestSearchService_EmptyQuery(t *testing.T) {
	svc := NewSearchService(newMockStore())

	_, err := svc.Search(context.Background(), "   ", domain.SearchFilter{})
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestSearchService_IndexPath(t *testing.T) {
	store := newMockStore()
	store.indexedHits = []domain.SearchHit{{DocumentID: "doc-1"}}
	svc := NewSearchService(store)

	hits, err := svc.Search(context.Background(), "budget report", domain.SearchFilter{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "doc-1", hits[0].DocumentID)
	assert.Equal(t, []string{"budget report"}, store.indexedQueries)
	assert.Empty(t, store.substringQueries)
}

func TestSearchService_IndexedQueryIsSanitized(t *testing.T) {
	store := newMockStore()
	svc := NewSearchService(store)

	_, err := svc.Search(context.Background(), "year-end budget", domain.SearchFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"year end budget"}, store.indexedQueries)
}

func TestSearchService_FallbackForNonASCII(t *testing.T) {
	store := newMockStore()
	store.substringHits = []domain.SearchHit{{DocumentID: "doc-1"}}
	svc := NewSearchService(store)

	hits, err := svc.Search(context.Background(), "бюджет", domain.SearchFilter{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Empty(t, store.indexedQueries, "index must not see non-ASCII queries")
	assert.Equal(t, []string{"бюджет"}, store.substringQueries)
}

func TestSearchService_FallbackForPunctuation(t *testing.T) {
	store := newMockStore()
	svc := NewSearchService(store)

	_, err := svc.Search(context.Background(), `"exact phrase"`, domain.SearchFilter{})
	require.NoError(t, err)
	assert.Empty(t, store.indexedQueries)
	// The fallback sees the query as typed.
	assert.Equal(t, []string{`"exact phrase"`}, store.substringQueries)
}

func TestSearchService_IndexErrorDowngrades(t *testing.T) {
	store := newMockStore()
	store.indexedErr = errors.New("fts5: syntax error")
	store.substringHits = []domain.SearchHit{{DocumentID: "doc-1"}}
	svc := NewSearchService(store)

	hits, err := svc.Search(context.Background(), "budget", domain.SearchFilter{})
	require.NoError(t, err, "index errors must never reach the caller")
	require.Len(t, hits, 1)
	assert.Equal(t, []string{"budget"}, store.indexedQueries)
	assert.Equal(t, []string{"budget"}, store.substringQueries)
}

func TestSearchService_NoHitsIsNotAnError(t *testing.T) {
	svc := NewSearchService(newMockStore())

	hits, err := svc.Search(context.Background(), "nothing matches", domain.SearchFilter{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

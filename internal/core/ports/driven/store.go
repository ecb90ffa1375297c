package driven

import (
	"context"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

// MetadataStore persists documents, chunks, and the full-text index.
// Backed by SQLite. Safe for concurrent use across ingestion and search.
type MetadataStore interface {
	// InsertDocument persists the document and all its chunks in one
	// atomic unit and adds each chunk to the full-text index.
	// An index-insertion failure for an individual chunk is logged and
	// skipped; it never fails the insert. Readers never observe a
	// document row without its full chunk set.
	InsertDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if no row matches.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns documents ordered by upload time descending.
	// An empty category means no filtering.
	ListDocuments(ctx context.Context, category string) ([]domain.Document, error)

	// GetChunk retrieves one chunk by document ID and index.
	// Returns domain.ErrNotFound if no row matches.
	GetChunk(ctx context.Context, documentID string, index int) (*domain.Chunk, error)

	// GetAllChunks returns a document's chunks ordered by index.
	GetAllChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// IndexedSearch queries the full-text index with its match syntax
	// and returns highlighted snippets. The query must already be
	// sanitized; a grammar violation surfaces as an error.
	IndexedSearch(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchHit, error)

	// SubstringSearch performs case-insensitive substring matching over
	// chunk content, filename, and description, with a plain excerpt
	// as snippet.
	SubstringSearch(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchHit, error)

	// Stats summarises the store contents.
	Stats(ctx context.Context) (*domain.Stats, error)

	// Close releases the underlying database handle.
	Close() error
}

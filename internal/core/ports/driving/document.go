package driving

import (
	"context"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

// DocumentContent is the text of a document plus display metadata.
type DocumentContent struct {
	// Content is the requested chunk's text, or all chunks joined
	// when no chunk index was given.
	Content string

	// Filename, Type, Category, and Description mirror the record.
	Filename    string
	Type        domain.FileType
	Category    string
	Description string

	// ChunkCount is the document's chunk count.
	ChunkCount int
}

// DocumentService retrieves ingested documents and their content.
type DocumentService interface {
	// List returns documents, newest first, optionally filtered by category.
	List(ctx context.Context, category string) ([]domain.Document, error)

	// Get retrieves a single document record.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Content returns a document's text. A nil chunkIndex returns the
	// full text; otherwise just that chunk. Returns domain.ErrNotFound
	// for an unknown document or chunk index.
	Content(ctx context.Context, documentID string, chunkIndex *int) (*DocumentContent, error)

	// Stats summarises the store contents.
	Stats(ctx context.Context) (*domain.Stats, error)
}

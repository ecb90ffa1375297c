package driven

import "github.com/arkiv-labs/arkiv-cli/internal/core/domain"

// Chunker splits extracted text into overlapping word windows.
// It never returns zero chunks: empty text yields exactly one chunk
// with empty content at index 0.
type Chunker interface {
	// Chunk splits text into ordered chunks owned by documentID.
	Chunk(text, documentID string) []domain.Chunk
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService retrieves ingested documents and their content.
type DocumentService struct {
	store driven.MetadataStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(store driven.MetadataStore) *DocumentService {
	return &DocumentService{store: store}
}

// List returns documents, newest first, optionally filtered by category.
func (s *DocumentService) List(ctx context.Context, category string) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx, category)
}

// Get retrieves a single document record.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.store.GetDocument(ctx, documentID)
}

// Content returns a document's text: one chunk when chunkIndex is set,
// otherwise every chunk joined in order.
func (s *DocumentService) Content(ctx context.Context, documentID string, chunkIndex *int) (*driving.DocumentContent, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	var content string
	if chunkIndex != nil {
		chunk, err := s.store.GetChunk(ctx, documentID, *chunkIndex)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", *chunkIndex, err)
		}
		content = chunk.Content
	} else {
		chunks, err := s.store.GetAllChunks(ctx, documentID)
		if err != nil {
			return nil, err
		}

		parts := make([]string, len(chunks))
		for i, chunk := range chunks {
			parts[i] = chunk.Content
		}
		content = strings.Join(parts, "\n\n")
	}

	return &driving.DocumentContent{
		Content:     content,
		Filename:    doc.Filename,
		Type:        doc.Type,
		Category:    doc.Category,
		Description: doc.Description,
		ChunkCount:  doc.ChunkCount,
	}, nil
}

// Stats summarises the store contents.
func (s *DocumentService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.store.Stats(ctx)
}

package services

import (
	"context"
	"strings"
	"sync"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
)

// mockStore is an in-memory MetadataStore with optional error hooks.
type mockStore struct {
	mu     sync.Mutex
	docs   map[string]*domain.Document
	chunks map[string][]domain.Chunk
	order  []string

	insertErr        error
	indexedErr       error
	indexedHits      []domain.SearchHit
	substringHits    []domain.SearchHit
	indexedQueries   []string
	substringQueries []string
}

var _ driven.MetadataStore = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		docs:   make(map[string]*domain.Document),
		chunks: make(map[string][]domain.Chunk),
	}
}

func (m *mockStore) InsertDocument(_ context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	copied := *doc
	m.docs[doc.ID] = &copied
	m.chunks[doc.ID] = chunks
	m.order = append(m.order, doc.ID)
	return nil
}

func (m *mockStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (m *mockStore) ListDocuments(_ context.Context, category string) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []domain.Document
	for i := len(m.order) - 1; i >= 0; i-- {
		doc := m.docs[m.order[i]]
		if category != "" && doc.Category != category {
			continue
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (m *mockStore) GetChunk(_ context.Context, documentID string, index int) (*domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chunk := range m.chunks[documentID] {
		if chunk.Index == index {
			copied := chunk
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetAllChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Chunk(nil), m.chunks[documentID]...), nil
}

func (m *mockStore) IndexedSearch(_ context.Context, query string, _ domain.SearchFilter) ([]domain.SearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexedQueries = append(m.indexedQueries, query)
	if m.indexedErr != nil {
		return nil, m.indexedErr
	}
	return m.indexedHits, nil
}

func (m *mockStore) SubstringSearch(_ context.Context, query string, _ domain.SearchFilter) ([]domain.SearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.substringQueries = append(m.substringQueries, query)
	return m.substringHits, nil
}

func (m *mockStore) Stats(_ context.Context) (*domain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &domain.Stats{ByType: make(map[domain.FileType]int)}
	for _, doc := range m.docs {
		stats.Documents++
		stats.TotalBytes += doc.SizeBytes
		stats.ByType[doc.Type]++
	}
	for _, chunks := range m.chunks {
		stats.Chunks += len(chunks)
	}
	return stats, nil
}

func (m *mockStore) Close() error { return nil }

// mockRegistry returns canned text or an error for every extraction.
type mockRegistry struct {
	text string
	err  error
}

var _ driven.ExtractorRegistry = (*mockRegistry)(nil)

func (m *mockRegistry) Register(_ driven.Extractor) {}

func (m *mockRegistry) Extract(_ context.Context, _ string, _ domain.FileType) (string, error) {
	return m.text, m.err
}

// wordChunker splits on whitespace into fixed-size single-word chunks,
// enough to observe chunk plumbing without the real chunker.
type wordChunker struct{}

var _ driven.Chunker = (*wordChunker)(nil)

func (wordChunker) Chunk(text, documentID string) []domain.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []domain.Chunk{{
			ID:         domain.ChunkID(documentID, 0),
			DocumentID: documentID,
			Index:      0,
		}}
	}
	chunks := make([]domain.Chunk, len(words))
	for i, word := range words {
		chunks[i] = domain.Chunk{
			ID:         domain.ChunkID(documentID, i),
			DocumentID: documentID,
			Index:      i,
			Content:    word,
			Preview:    domain.Preview(word),
		}
	}
	return chunks
}

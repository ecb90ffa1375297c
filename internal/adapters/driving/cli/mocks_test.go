package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driving"
)

// mockSearchService returns canned hits.
type mockSearchService struct {
	hits []domain.SearchHit
	err  error

	lastQuery  string
	lastFilter domain.SearchFilter
}

func (m *mockSearchService) Search(_ context.Context, query string, filter domain.SearchFilter) ([]domain.SearchHit, error) {
	m.lastQuery = query
	m.lastFilter = filter
	return m.hits, m.err
}

// mockDocumentService returns canned documents.
type mockDocumentService struct {
	docs    []domain.Document
	doc     *domain.Document
	content *driving.DocumentContent
	stats   *domain.Stats
	err     error
}

func (m *mockDocumentService) List(_ context.Context, _ string) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}

func (m *mockDocumentService) Content(_ context.Context, _ string, _ *int) (*driving.DocumentContent, error) {
	return m.content, m.err
}

func (m *mockDocumentService) Stats(_ context.Context) (*domain.Stats, error) {
	return m.stats, m.err
}

// mockIngestService records the last call.
type mockIngestService struct {
	result   *driving.IngestResult
	err      error
	lastPath string
	lastOpts driving.IngestOptions
}

func (m *mockIngestService) Ingest(_ context.Context, path string, opts driving.IngestOptions) (*driving.IngestResult, error) {
	m.lastPath = path
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockIngestService) IngestBytes(_ context.Context, _ []byte, _ string, opts driving.IngestOptions) (*driving.IngestResult, error) {
	m.lastOpts = opts
	return m.result, m.err
}

// mockBulkService records the last call.
type mockBulkService struct {
	result       *driving.BulkResult
	err          error
	lastDir      string
	lastCategory string
}

func (m *mockBulkService) IngestDir(_ context.Context, dir, category string) (*driving.BulkResult, error) {
	m.lastDir = dir
	m.lastCategory = category
	return m.result, m.err
}

func (m *mockBulkService) Watch(ctx context.Context, dir, category string) error {
	m.lastDir = dir
	m.lastCategory = category
	<-ctx.Done()
	return ctx.Err()
}

// executeCommand runs the root command with args against injected mocks
// and returns combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// withServices installs mock services for the duration of the test.
func withServices(t *testing.T, search *mockSearchService, document *mockDocumentService,
	ingest *mockIngestService, bulk *mockBulkService) {
	t.Helper()

	origSearch, origDocument := searchService, documentService
	origIngest, origBulk := ingestService, bulkService
	t.Cleanup(func() {
		searchService, documentService = origSearch, origDocument
		ingestService, bulkService = origIngest, origBulk
	})

	if search == nil {
		search = &mockSearchService{}
	}
	if document == nil {
		document = &mockDocumentService{}
	}
	if ingest == nil {
		ingest = &mockIngestService{}
	}
	if bulk == nil {
		bulk = &mockBulkService{}
	}
	searchService = search
	documentService = document
	ingestService = ingest
	bulkService = bulk
}

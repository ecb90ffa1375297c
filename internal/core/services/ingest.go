package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driving"
	"github.com/arkiv-labs/arkiv-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the ingestion pipeline. Every accepted file gets a
// fresh record, a copy in the managed storage area, and an atomically
// persisted set of chunks. Extraction failures are absorbed: the
// document is still recorded, with empty content and Degraded set.
type IngestService struct {
	store      driven.MetadataStore
	extractors driven.ExtractorRegistry
	chunker    driven.Chunker
	storageDir string
}

// NewIngestService creates a new ingest service. Stored copies of
// ingested files are kept under storageDir.
func NewIngestService(
	store driven.MetadataStore,
	extractors driven.ExtractorRegistry,
	chunker driven.Chunker,
	storageDir string,
) *IngestService {
	return &IngestService{
		store:      store,
		extractors: extractors,
		chunker:    chunker,
		storageDir: storageDir,
	}
}

// Ingest processes the file at path.
func (s *IngestService) Ingest(ctx context.Context, path string, opts driving.IngestOptions) (*driving.IngestResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return s.ingest(ctx, content, path, filepath.Base(path), opts)
}

// IngestBytes processes raw file bytes under an original filename.
// The bytes are spooled to a temp file so extractors that need a real
// path (pdf, xlsx) work unchanged.
func (s *IngestService) IngestBytes(ctx context.Context, content []byte, originalName string, opts driving.IngestOptions) (*driving.IngestResult, error) {
	if originalName == "" {
		return nil, fmt.Errorf("%w: empty original name", domain.ErrInvalidInput)
	}

	return s.ingest(ctx, content, originalName, filepath.Base(originalName), opts)
}

// ingest is the shared pipeline tail: store the copy, extract, chunk,
// persist.
func (s *IngestService) ingest(ctx context.Context, content []byte, originalPath, filename string, opts driving.IngestOptions) (*driving.IngestResult, error) {
	id := uuid.NewString()
	fileType := domain.FileTypeFromExtension(filename)
	hash := sha256.Sum256(content)

	logger.Info("Ingesting %s (type=%s, %d bytes)", filename, fileType, len(content))

	if err := os.MkdirAll(s.storageDir, 0700); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	storedPath := filepath.Join(s.storageDir, id+"_"+filename)
	if err := os.WriteFile(storedPath, content, 0600); err != nil {
		return nil, fmt.Errorf("storing copy: %w", err)
	}

	text, degraded := s.extractText(ctx, storedPath, fileType)
	chunks := s.chunker.Chunk(text, id)
	logger.Debug("Extracted %d chars into %d chunks", len(text), len(chunks))

	now := time.Now().UTC()
	tags := opts.Tags
	if tags == nil {
		tags = []string{}
	}
	doc := domain.Document{
		ID:             id,
		Filename:       filename,
		OriginalPath:   originalPath,
		StoredPath:     storedPath,
		Type:           fileType,
		SizeBytes:      int64(len(content)),
		ContentHash:    hex.EncodeToString(hash[:]),
		UploadedAt:     now,
		LastModifiedAt: now,
		Category:       opts.Category,
		Tags:           tags,
		Description:    opts.Description,
		Processed:      !degraded,
		ChunkCount:     len(chunks),
	}

	if err := s.store.InsertDocument(ctx, &doc, chunks); err != nil {
		// Keep storage consistent with the database: no orphan copies.
		if rmErr := os.Remove(storedPath); rmErr != nil {
			logger.Warn("Removing stored copy %s failed: %v", storedPath, rmErr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	return &driving.IngestResult{Document: doc, Degraded: degraded}, nil
}

// extractText pulls text from the stored copy. Extraction is best
// effort: any failure downgrades to empty content so the document is
// still recorded and findable by its metadata.
func (s *IngestService) extractText(ctx context.Context, path string, fileType domain.FileType) (string, bool) {
	text, err := s.extractors.Extract(ctx, path, fileType)
	if err != nil {
		logger.Warn("Extraction failed for %s: %v (recording empty content)", path, err)
		return "", true
	}
	return text, false
}

package driving

import (
	"context"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

// IngestOptions carries uploader-supplied metadata.
type IngestOptions struct {
	// Category is a free-form grouping string.
	Category string

	// Tags is an ordered sequence of tag strings.
	Tags []string

	// Description is free text.
	Description string
}

// IngestResult reports a completed ingestion.
type IngestResult struct {
	// Document is the persisted record.
	Document domain.Document

	// Degraded is true when extraction failed and the document was
	// recorded with empty content instead. The failure was logged;
	// ingestion itself still succeeded.
	Degraded bool
}

// IngestService runs the ingestion pipeline: type detection, extraction,
// chunking, persistence, and indexing.
type IngestService interface {
	// Ingest processes the file at path.
	// Returns domain.ErrNotFound if the source path does not exist and
	// domain.ErrPersistFailed on a store transaction failure; extraction
	// failures never fail the call (see IngestResult.Degraded).
	Ingest(ctx context.Context, path string, opts IngestOptions) (*IngestResult, error)

	// IngestBytes processes raw file bytes under an original filename.
	IngestBytes(ctx context.Context, content []byte, originalName string, opts IngestOptions) (*IngestResult, error)
}

// BulkResult summarises a directory ingestion.
type BulkResult struct {
	// Succeeded lists results for files that ingested cleanly.
	Succeeded []IngestResult

	// Failed maps file paths to their error messages.
	Failed map[string]string
}

// Total returns the number of files processed.
func (r *BulkResult) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}

// BulkService ingests whole directory trees. It is a thin loop over
// IngestService and relies on its per-call atomicity.
type BulkService interface {
	// IngestDir recursively ingests every supported file under dir.
	IngestDir(ctx context.Context, dir, category string) (*BulkResult, error)

	// Watch ingests supported files as they appear under dir,
	// blocking until ctx is cancelled.
	Watch(ctx context.Context, dir, category string) error
}

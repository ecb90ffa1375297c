package driven

import (
	"context"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

// Extractor converts one document format to plain text.
// Extraction is a pure function of the file bytes and type:
// re-extracting the same stored file yields identical text.
type Extractor interface {
	// Supports returns the file types this extractor handles.
	Supports() []domain.FileType

	// Extract reads the file at path and returns its text content.
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorRegistry dispatches a file type to its extraction routine.
// New formats are added by registering an implementation at startup,
// not by modifying a central conditional.
type ExtractorRegistry interface {
	// Register adds an extractor for each of its supported types.
	Register(e Extractor)

	// Extract dispatches to the extractor for fileType, falling back
	// to the plain-text routine for unrecognised or missing types.
	Extract(ctx context.Context, path string, fileType domain.FileType) (string, error)
}

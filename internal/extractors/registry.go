// Package extractors provides per-format text extraction and the
// registry that dispatches a detected file type to its routine.
package extractors

import (
	"context"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
	"github.com/arkiv-labs/arkiv-cli/internal/extractors/docx"
	"github.com/arkiv-labs/arkiv-cli/internal/extractors/excel"
	"github.com/arkiv-labs/arkiv-cli/internal/extractors/html"
	"github.com/arkiv-labs/arkiv-cli/internal/extractors/markdown"
	"github.com/arkiv-labs/arkiv-cli/internal/extractors/pdf"
	"github.com/arkiv-labs/arkiv-cli/internal/extractors/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file types to extraction routines. Types without a
// registered extractor fall back to the plain-text routine.
type Registry struct {
	byType   map[domain.FileType]driven.Extractor
	fallback driven.Extractor
}

// NewRegistry creates an empty registry with the given fallback.
func NewRegistry(fallback driven.Extractor) *Registry {
	return &Registry{
		byType:   make(map[domain.FileType]driven.Extractor),
		fallback: fallback,
	}
}

// NewDefaultRegistry creates a registry with all built-in extractors
// registered and the plain-text extractor as fallback.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(excel.New())
	r.Register(plaintext.New())
	r.Register(html.New())
	r.Register(markdown.New())
	return r
}

// Register adds an extractor for each of its supported types.
// A later registration for the same type wins.
func (r *Registry) Register(e driven.Extractor) {
	for _, t := range e.Supports() {
		r.byType[t] = e
	}
}

// Extract dispatches to the extractor for fileType.
// Unrecognised or missing types use the plain-text fallback.
func (r *Registry) Extract(ctx context.Context, path string, fileType domain.FileType) (string, error) {
	e, ok := r.byType[fileType]
	if !ok {
		e = r.fallback
	}
	return e.Extract(ctx, path)
}

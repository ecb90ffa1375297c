// Package pdf extracts text from PDF documents page by page.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
	"github.com/arkiv-labs/arkiv-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports returns the file types this extractor handles.
func (e *Extractor) Supports() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Extract concatenates per-page text with newline separators.
// A page that fails extraction contributes an empty string instead of
// aborting the document; only a document-level failure returns an error.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("pdf page %d of %s failed: %v", i, path, err)
			text = ""
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

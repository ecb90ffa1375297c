// Package markdown extracts text from Markdown by rendering to HTML
// first, then stripping tags the same way the HTML extractor does.
package markdown

import (
	"context"
	"fmt"
	"os"

	"github.com/gomarkdown/markdown"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
	"github.com/arkiv-labs/arkiv-cli/internal/extractors/html"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Markdown documents.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports returns the file types this extractor handles.
func (e *Extractor) Supports() []domain.FileType {
	return []domain.FileType{domain.FileTypeMarkdown}
}

// Extract renders the Markdown to HTML and strips the markup, so
// formatting constructs (emphasis, links, tables) degrade to their
// visible text exactly as they would for an HTML source.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading markdown file: %w", err)
	}

	rendered := markdown.ToHTML(data, nil, nil)
	return html.StripTags(string(rendered)), nil
}

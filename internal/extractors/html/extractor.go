// Package html extracts the rendered plain text of HTML documents.
package html

import (
	"context"
	"fmt"
	stdhtml "html"
	"os"
	"regexp"
	"strings"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor strips markup from HTML documents.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports returns the file types this extractor handles.
func (e *Extractor) Supports() []domain.FileType {
	return []domain.FileType{domain.FileTypeHTML}
}

// Extract returns the document's text content with tags stripped.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading html file: %w", err)
	}
	return StripTags(string(data)), nil
}

// Pre-compiled expressions for tag stripping.
var (
	invisibleTags = regexp.MustCompile(`(?is)<(script|style|noscript|head)[^>]*>.*?</(script|style|noscript|head)>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBreaks   = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>|<(br|hr)\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
)

// StripTags converts HTML markup to plain text. The markdown extractor
// reuses it so both formats yield identical text for the same markup.
func StripTags(content string) string {
	// Drop elements whose content never renders.
	content = invisibleTags.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Block-level boundaries become line breaks.
	content = blockBreaks.ReplaceAllString(content, "\n")

	// Strip everything else, then decode entities.
	content = allTags.ReplaceAllString(content, "")
	content = stdhtml.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	// Keep only non-empty trimmed lines.
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Package plaintext extracts text files, including legacy Windows-1251
// encoded ones.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads plain text. It also serves as the registry fallback
// for json, xml, and unrecognised types.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports returns the file types this extractor handles.
func (e *Extractor) Supports() []domain.FileType {
	return []domain.FileType{
		domain.FileTypeText,
		domain.FileTypeJSON,
		domain.FileTypeXML,
		domain.FileTypeUnknown,
	}
}

// Extract reads the file as UTF-8. Content that is not valid UTF-8 is
// re-decoded as Windows-1251, the dominant legacy encoding in the
// corpus this tool was built for.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding windows-1251: %w", err)
	}
	return string(decoded), nil
}

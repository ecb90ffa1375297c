package docx

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

// writeDocx builds a minimal DOCX archive containing documentXML.
func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	if documentXML != "" {
		entry, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = entry.Write([]byte(documentXML))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return path
}

const sampleXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestSupports(t *testing.T) {
	assert.Equal(t, []domain.FileType{domain.FileTypeDOCX}, New().Supports())
}

func TestExtract(t *testing.T) {
	path := writeDocx(t, sampleXML)

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtract_EmptyArchive(t *testing.T) {
	path := writeDocx(t, "")

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0600))

	_, err := New().Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestExtract_MalformedXML(t *testing.T) {
	path := writeDocx(t, "<w:document><unclosed")

	_, err := New().Extract(context.Background(), path)
	assert.Error(t, err)
}

package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

// writeMinimalPDF assembles a one-page PDF with no content stream,
// computing the xref offsets as it goes.
func writeMinimalPDF(t *testing.T) string {
	t.Helper()

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n",
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		b.WriteString(obj)
	}

	xrefStart := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	path := filepath.Join(t.TempDir(), "minimal.pdf")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0600))
	return path
}

func TestSupports(t *testing.T) {
	assert.Equal(t, []domain.FileType{domain.FileTypePDF}, New().Supports())
}

func TestExtract_EmptyPage(t *testing.T) {
	path := writeMinimalPDF(t)

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(text))
}

func TestExtract_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text pretending"), 0600))

	_, err := New().Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

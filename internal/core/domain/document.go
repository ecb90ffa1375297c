package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FileType classifies a document by its file extension.
// Detection is extension-only; content sniffing is not performed.
type FileType string

// Known file types.
const (
	FileTypePDF      FileType = "pdf"
	FileTypeDOCX     FileType = "docx"
	FileTypeDOC      FileType = "doc"
	FileTypeExcel    FileType = "excel"
	FileTypeText     FileType = "text"
	FileTypeMarkdown FileType = "markdown"
	FileTypeHTML     FileType = "html"
	FileTypeJSON     FileType = "json"
	FileTypeXML      FileType = "xml"
	FileTypeUnknown  FileType = "unknown"
)

// extensionTypes maps lowercase file extensions to file types.
var extensionTypes = map[string]FileType{
	".pdf":  FileTypePDF,
	".docx": FileTypeDOCX,
	".doc":  FileTypeDOC,
	".xlsx": FileTypeExcel,
	".xls":  FileTypeExcel,
	".txt":  FileTypeText,
	".md":   FileTypeMarkdown,
	".html": FileTypeHTML,
	".htm":  FileTypeHTML,
	".json": FileTypeJSON,
	".xml":  FileTypeXML,
}

// FileTypeFromExtension derives the file type from a path's extension.
// Unrecognised extensions return FileTypeUnknown.
func FileTypeFromExtension(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return FileTypeUnknown
}

// Valid reports whether t is one of the known file types.
func (t FileType) Valid() bool {
	switch t {
	case FileTypePDF, FileTypeDOCX, FileTypeDOC, FileTypeExcel, FileTypeText,
		FileTypeMarkdown, FileTypeHTML, FileTypeJSON, FileTypeXML, FileTypeUnknown:
		return true
	}
	return false
}

// Document is the persisted record for one ingested file.
// Records are immutable: a re-upload creates a new record with a new ID,
// even when the content hash matches an existing one.
type Document struct {
	// ID is a random unique identifier generated at ingest time.
	ID string

	// Filename is the name as uploaded.
	Filename string

	// OriginalPath is the source path the file was ingested from.
	OriginalPath string

	// StoredPath is the copy in the managed storage area.
	StoredPath string

	// Type is derived from the file extension.
	Type FileType

	// SizeBytes is the raw file size.
	SizeBytes int64

	// ContentHash is the SHA-256 digest of the raw bytes.
	// Stored for future dedup; not enforced.
	ContentHash string

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time

	// LastModifiedAt is when the record was last written.
	LastModifiedAt time.Time

	// Category, Tags, and Description are uploader-supplied metadata.
	Category    string
	Tags        []string
	Description string

	// Processed is true once extraction and chunking succeeded.
	Processed bool

	// ChunkCount is the number of chunks produced for this document.
	ChunkCount int
}

// PreviewLength is the number of runes kept in a chunk preview.
const PreviewLength = 200

// Chunk is a contiguous, possibly-overlapping slice of a document's
// extracted text. A document exclusively owns its chunks; chunk indices
// are dense, covering 0..ChunkCount-1 exactly once.
type Chunk struct {
	// ID is "{documentID}_chunk_{index}".
	ID string

	// DocumentID is the owning document.
	DocumentID string

	// Index is the 0-based position among the document's chunks.
	Index int

	// Content is the chunk's text.
	Content string

	// Preview is the first PreviewLength runes of Content,
	// precomputed for listing UIs.
	Preview string
}

// ChunkID builds the canonical chunk identifier.
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, index)
}

// Preview truncates content to PreviewLength runes for display.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength]) + "..."
}

package domain

// SearchLimit is the maximum number of hits either search path returns.
const SearchLimit = 20

// SearchFilter narrows a search to exact-match predicates.
// Zero values mean no filtering.
type SearchFilter struct {
	// Category filters on the uploader-supplied category.
	Category string

	// Type filters on the detected file type.
	Type FileType
}

// SearchHit is one result row. Hits are ephemeral, never persisted.
type SearchHit struct {
	// DocumentID identifies the matched document.
	DocumentID string

	// Filename, Type, Category, and Description mirror the document record.
	Filename    string
	Type        FileType
	Category    string
	Description string

	// ChunkCount is the document's chunk count.
	ChunkCount int

	// Snippet is a highlighted excerpt on the indexed path,
	// or a plain ~300-character excerpt on the fallback path.
	Snippet string
}

// SearchPath is the execution strategy chosen for a query.
type SearchPath int

const (
	// UseIndex runs the query against the full-text index.
	UseIndex SearchPath = iota

	// UseFallback runs a case-insensitive substring scan instead.
	// Chosen up front for queries known to break the index grammar,
	// and as the runtime downgrade when the index rejects a query.
	UseFallback
)

// String returns the path name for logging.
func (p SearchPath) String() string {
	if p == UseIndex {
		return "index"
	}
	return "fallback"
}

// Stats summarises the store contents.
type Stats struct {
	// Documents is the total number of document records.
	Documents int

	// Chunks is the total number of chunk rows.
	Chunks int

	// TotalBytes is the sum of raw file sizes.
	TotalBytes int64

	// ByType counts documents per file type.
	ByType map[FileType]int
}

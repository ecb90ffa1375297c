package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arkiv-labs/arkiv-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
	"github.com/arkiv-labs/arkiv-cli/internal/logger"
)

// Snippet markers for highlighted FTS5 results.
const (
	highlightOpen  = "<mark>"
	highlightClose = "</mark>"
)

// fallbackSnippetLength is the plain excerpt size on the substring path.
const fallbackSnippetLength = 300

// Ensure Store implements the interface.
var _ driven.MetadataStore = (*Store)(nil)

// Store is the SQLite-backed metadata store: document and chunk rows
// plus the FTS5 full-text index over chunk content. The handle is safe
// for concurrent use; inserts are transactional, so readers never see
// a document without its full chunk set.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store under dataDir.
// If dataDir is empty, defaults to ~/.arkiv/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".arkiv", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL keeps searches readable while an ingest transaction commits.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// InsertDocument persists the document and its chunks in one transaction
// and indexes each chunk. A per-chunk FTS insertion failure is logged
// and skipped: that chunk stays reachable through the fallback path only.
func (s *Store) InsertDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	tagsJSON, err := json.Marshal(doc.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO files (id, filename, original_name, file_path, file_type,
			file_size, content_hash, upload_date, last_modified,
			category, tags, description, processed, chunk_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Filename, doc.OriginalPath, doc.StoredPath, string(doc.Type),
		doc.SizeBytes, doc.ContentHash, doc.UploadedAt, doc.LastModifiedAt,
		doc.Category, string(tagsJSON), doc.Description, doc.Processed, doc.ChunkCount)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, file_id, chunk_index, content, content_preview)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk statement: %w", err)
	}
	defer chunkStmt.Close()

	searchStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO file_search (file_id, filename, content, category, tags)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing search statement: %w", err)
	}
	defer searchStmt.Close()

	for _, chunk := range chunks {
		if _, err := chunkStmt.ExecContext(ctx, chunk.ID, chunk.DocumentID,
			chunk.Index, chunk.Content, chunk.Preview); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ID, err)
		}

		// Index failures must never fail the ingestion.
		if _, err := searchStmt.ExecContext(ctx, doc.ID, doc.Filename,
			chunk.Content, doc.Category, string(tagsJSON)); err != nil {
			logger.Warn("indexing chunk %s failed: %v", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, original_name, file_path, file_type, file_size,
			content_hash, upload_date, last_modified, category, tags,
			description, processed, chunk_count
		FROM files WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns documents ordered by upload time descending.
func (s *Store) ListDocuments(ctx context.Context, category string) ([]domain.Document, error) {
	query := `
		SELECT id, filename, original_name, file_path, file_type, file_size,
			content_hash, upload_date, last_modified, category, tags,
			description, processed, chunk_count
		FROM files`
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY upload_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// GetChunk retrieves one chunk by document ID and index.
func (s *Store) GetChunk(ctx context.Context, documentID string, index int) (*domain.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_id, chunk_index, content, content_preview
		FROM chunks WHERE file_id = ? AND chunk_index = ?
	`, documentID, index)

	var chunk domain.Chunk
	err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Index, &chunk.Content, &chunk.Preview)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	return &chunk, nil
}

// GetAllChunks returns a document's chunks ordered by index.
func (s *Store) GetAllChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_id, chunk_index, content, content_preview
		FROM chunks WHERE file_id = ?
		ORDER BY chunk_index
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Index,
			&chunk.Content, &chunk.Preview); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// IndexedSearch queries the FTS5 index with its MATCH grammar.
// The query must already be sanitized; a grammar violation is returned
// to the caller, which downgrades to the substring path.
func (s *Store) IndexedSearch(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchHit, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT DISTINCT f.id, f.filename, f.file_type, f.category, f.description,
			f.chunk_count, snippet(file_search, 2, '%s', '%s', '...', 32)
		FROM files f
		JOIN file_search ON f.id = file_search.file_id
		WHERE file_search MATCH ?`, highlightOpen, highlightClose)
	args := []any{query}

	sqlQuery, args = appendFilters(sqlQuery, args, filter)
	sqlQuery += " ORDER BY f.upload_date DESC LIMIT ?"
	args = append(args, domain.SearchLimit)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("indexed search: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

// SubstringSearch scans chunk content, filename, and description with
// case-insensitive LIKE matching and a plain excerpt as snippet.
func (s *Store) SubstringSearch(ctx context.Context, query string, filter domain.SearchFilter) ([]domain.SearchHit, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT DISTINCT f.id, f.filename, f.file_type, f.category, f.description,
			f.chunk_count, SUBSTR(c.content, 1, %d)
		FROM files f
		JOIN chunks c ON f.id = c.file_id
		WHERE (c.content LIKE ? OR f.filename LIKE ? OR f.description LIKE ?)`,
		fallbackSnippetLength)
	pattern := "%" + query + "%"
	args := []any{pattern, pattern, pattern}

	sqlQuery, args = appendFilters(sqlQuery, args, filter)
	sqlQuery += " ORDER BY f.upload_date DESC LIMIT ?"
	args = append(args, domain.SearchLimit)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("substring search: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

// Stats summarises the store contents.
func (s *Store) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{ByType: make(map[domain.FileType]int)}

	row := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(file_size), 0) FROM files")
	if err := row.Scan(&stats.Documents, &stats.TotalBytes); err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}

	row = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&stats.Chunks); err != nil {
		return nil, fmt.Errorf("counting chunks: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT file_type, COUNT(*) FROM files GROUP BY file_type")
	if err != nil {
		return nil, fmt.Errorf("counting by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fileType string
		var count int
		if err := rows.Scan(&fileType, &count); err != nil {
			return nil, fmt.Errorf("scanning type count: %w", err)
		}
		stats.ByType[domain.FileType(fileType)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating type counts: %w", err)
	}
	return stats, nil
}

// appendFilters adds the exact-match AND predicates when set.
func appendFilters(query string, args []any, filter domain.SearchFilter) (string, []any) {
	if filter.Category != "" {
		query += " AND f.category = ?"
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		query += " AND f.file_type = ?"
		args = append(args, string(filter.Type))
	}
	return query, args
}

// scanDocument scans a files row through either Row.Scan or Rows.Scan.
func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var doc domain.Document
	var fileType, tagsJSON string

	if err := scan(&doc.ID, &doc.Filename, &doc.OriginalPath, &doc.StoredPath,
		&fileType, &doc.SizeBytes, &doc.ContentHash, &doc.UploadedAt,
		&doc.LastModifiedAt, &doc.Category, &tagsJSON, &doc.Description,
		&doc.Processed, &doc.ChunkCount); err != nil {
		return nil, err
	}

	doc.Type = domain.FileType(fileType)
	if err := json.Unmarshal([]byte(tagsJSON), &doc.Tags); err != nil {
		return nil, fmt.Errorf("unmarshalling tags: %w", err)
	}
	return &doc, nil
}

// scanHits scans search result rows.
func scanHits(rows *sql.Rows) ([]domain.SearchHit, error) {
	var hits []domain.SearchHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit domain.SearchHit
		var fileType string
		if err := rows.Scan(&hit.DocumentID, &hit.Filename, &fileType,
			&hit.Category, &hit.Description, &hit.ChunkCount, &hit.Snippet); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hit.Type = domain.FileType(fileType)
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hits: %w", err)
	}
	return hits, nil
}

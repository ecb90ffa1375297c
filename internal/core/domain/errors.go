package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist:
	// a missing source file at ingest time, or a document/chunk
	// lookup with no matching row.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type with no registered extractor.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyQuery indicates search was called with no query text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrPersistFailed indicates a store-level transaction failure.
	// Ingestion surfaces it to the caller; no partial rows remain.
	ErrPersistFailed = errors.New("persist failed")
)

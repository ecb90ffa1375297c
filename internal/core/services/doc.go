// Package services contains the application logic driving ingestion,
// search, and document access. Services depend on ports only; adapters
// are wired in by the CLI layer.
package services

// Package driving defines the interfaces external actors use to
// drive the core: ingestion, search, and document retrieval.
package driving

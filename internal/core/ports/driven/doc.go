// Package driven defines the interfaces the core depends on:
// storage, extraction, and chunking. Adapters implement these.
package driven

// Package cli wires the arkiv services into cobra commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arkiv-labs/arkiv-cli/internal/adapters/driven/config/file"
	"github.com/arkiv-labs/arkiv-cli/internal/adapters/driven/storage/sqlite"
	"github.com/arkiv-labs/arkiv-cli/internal/chunker"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driving"
	"github.com/arkiv-labs/arkiv-cli/internal/core/services"
	"github.com/arkiv-labs/arkiv-cli/internal/extractors"
	"github.com/arkiv-labs/arkiv-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose bool
	dataDir string
)

// Services are wired in initServices; tests inject their own.
var (
	ingestService   driving.IngestService
	bulkService     driving.BulkService
	searchService   driving.SearchService
	documentService driving.DocumentService
)

// metadataStore is kept for closing after the command finishes.
var metadataStore *sqlite.Store

var rootCmd = &cobra.Command{
	Use:   "arkiv",
	Short: "Local document archive with full-text search",
	Long: `arkiv ingests documents (PDF, Word, Excel, text, Markdown, HTML),
extracts and chunks their text, and makes them searchable from the
command line. Everything is stored locally under ~/.arkiv.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if metadataStore != nil {
			if err := metadataStore.Close(); err != nil {
				logger.Warn("Closing store failed: %v", err)
			}
			metadataStore = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "base data directory (default ~/.arkiv)")
}

// initServices builds the adapter stack and the services on top of it.
// Already-set services (tests) are left alone.
func initServices() error {
	if ingestService != nil && bulkService != nil && searchService != nil && documentService != nil {
		return nil
	}

	baseDir := dataDir
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".arkiv")
	}

	cfg, err := file.NewConfigStore(baseDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	if configured := cfg.GetString(file.KeyDataDir); configured != "" && dataDir == "" {
		baseDir = configured
	}
	if cfg.GetBool(file.KeyVerbose) {
		logger.SetVerbose(true)
	}

	store, err := sqlite.NewStore(filepath.Join(baseDir, "data"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	metadataStore = store
	logger.Debug("Store: %s", store.Path())

	var chunkOpts []chunker.Option
	if words := cfg.GetInt(file.KeyChunkWords); words > 0 {
		chunkOpts = append(chunkOpts, chunker.WithMaxWords(words))
	}
	if overlap := cfg.GetInt(file.KeyChunkOverlap); overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(overlap))
	}

	registry := extractors.NewDefaultRegistry()
	chk := chunker.New(chunkOpts...)
	storageDir := filepath.Join(baseDir, "files")

	ingestService = services.NewIngestService(store, registry, chk, storageDir)
	bulkService = services.NewBulkService(ingestService)
	searchService = services.NewSearchService(store)
	documentService = services.NewDocumentService(store)
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

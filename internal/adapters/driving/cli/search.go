package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

var (
	searchCategory string
	searchType     string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested documents",
	Long: `Searches document text by keyword. Queries go through the full-text
index when possible and fall back to a substring scan for phrases the
index cannot handle (non-ASCII text, punctuation).`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "only documents in this category")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "only documents of this file type")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	filter := domain.SearchFilter{Category: searchCategory}
	if searchType != "" {
		fileType := domain.FileType(searchType)
		if !fileType.Valid() {
			return fmt.Errorf("unknown file type: %s", searchType)
		}
		filter.Type = fileType
	}

	hits, err := searchService.Search(context.Background(), args[0], filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, hits)
	}
	return outputSearchTable(cmd, hits)
}

func outputSearchJSON(cmd *cobra.Command, hits []domain.SearchHit) error {
	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, hits []domain.SearchHit) error {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range hits {
		cmd.Printf("  [%d] %s (%s)\n", i+1, hits[i].Filename, hits[i].Type)
		cmd.Printf("      ID: %s\n", hits[i].DocumentID)
		if hits[i].Category != "" {
			cmd.Printf("      Category: %s\n", hits[i].Category)
		}
		if hits[i].Snippet != "" {
			cmd.Printf("      %s\n", hits[i].Snippet)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d results\n", len(hits))
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driving"
)

var (
	ingestCategory    string
	ingestTags        string
	ingestDescription string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the archive",
	Long: `Copies the file into the archive, extracts its text, and indexes it
for search. The original file is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestCategory, "category", "c", "", "category to file the document under")
	ingestCmd.Flags().StringVarP(&ingestTags, "tags", "t", "", "comma-separated tags")
	ingestCmd.Flags().StringVarP(&ingestDescription, "description", "d", "", "free-text description")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	opts := driving.IngestOptions{
		Category:    ingestCategory,
		Tags:        splitTags(ingestTags),
		Description: ingestDescription,
	}

	res, err := ingestService.Ingest(context.Background(), args[0], opts)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	doc := res.Document
	cmd.Printf("Ingested %s\n\n", doc.Filename)
	cmd.Printf("  ID:       %s\n", doc.ID)
	cmd.Printf("  Type:     %s\n", doc.Type)
	cmd.Printf("  Size:     %d bytes\n", doc.SizeBytes)
	cmd.Printf("  Chunks:   %d\n", doc.ChunkCount)
	if doc.Category != "" {
		cmd.Printf("  Category: %s\n", doc.Category)
	}
	if res.Degraded {
		cmd.Println("\nWarning: text extraction failed; the document was stored with empty content.")
	}
	return nil
}

// splitTags parses a comma-separated tag list, dropping empties.
func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

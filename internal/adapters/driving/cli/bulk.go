package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var bulkCategory string

var bulkCmd = &cobra.Command{
	Use:   "bulk [dir]",
	Short: "Ingest every supported document under a directory",
	Long: `Recursively walks the directory and ingests every file with a
supported extension (.pdf, .docx, .xlsx, .txt, .md, .html).
Files that fail are reported but do not stop the import.`,
	Args: cobra.ExactArgs(1),
	RunE: runBulk,
}

func init() {
	bulkCmd.Flags().StringVarP(&bulkCategory, "category", "c", "", "category for all ingested documents")
	rootCmd.AddCommand(bulkCmd)
}

func runBulk(cmd *cobra.Command, args []string) error {
	if bulkService == nil {
		return errors.New("bulk service not configured")
	}

	result, err := bulkService.IngestDir(context.Background(), args[0], bulkCategory)
	if err != nil {
		return fmt.Errorf("bulk ingest failed: %w", err)
	}

	cmd.Printf("Processed %d files: %d ingested, %d failed\n",
		result.Total(), len(result.Succeeded), len(result.Failed))

	for path, msg := range result.Failed {
		cmd.Printf("  failed: %s: %s\n", path, msg)
	}
	return nil
}

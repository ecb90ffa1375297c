package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	stats, err := documentService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	cmd.Println("Archive statistics:")
	cmd.Println()
	cmd.Printf("  Documents: %d\n", stats.Documents)
	cmd.Printf("  Chunks:    %d\n", stats.Chunks)
	cmd.Printf("  Size:      %s\n", formatBytes(stats.TotalBytes))

	if len(stats.ByType) > 0 {
		cmd.Println("\n  By type:")
		types := make([]string, 0, len(stats.ByType))
		for t := range stats.ByType {
			types = append(types, string(t))
		}
		sort.Strings(types)
		for _, t := range types {
			cmd.Printf("    %-10s %d\n", t, stats.ByType[domain.FileType(t)])
		}
	}
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

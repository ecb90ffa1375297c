package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCategory string

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest new documents as they appear",
	Long: `Watches the directory tree and ingests supported files as they are
created or modified. Runs until interrupted with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchCategory, "category", "c", "", "category for ingested documents")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if bulkService == nil {
		return errors.New("bulk service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", args[0])

	err := bulkService.Watch(ctx, args[0], watchCategory)
	if errors.Is(err, context.Canceled) {
		cmd.Println("Stopped.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

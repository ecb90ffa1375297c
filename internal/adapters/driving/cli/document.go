package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	documentListCategory string
	documentChunkIndex   int
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Inspect ingested documents",
	Long:  `List documents, show their metadata, or print their text.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print document text",
	Long:  `Prints the document's extracted text, or a single chunk with --chunk.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

func init() {
	documentListCmd.Flags().StringVarP(&documentListCategory, "category", "c", "", "only documents in this category")
	documentContentCmd.Flags().IntVar(&documentChunkIndex, "chunk", -1, "print just this chunk (0-based)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background(), documentListCategory)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Filename: %s (%s)\n", docs[i].Filename, docs[i].Type)
		if docs[i].Category != "" {
			cmd.Printf("    Category: %s\n", docs[i].Category)
		}
		cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Filename:    %s\n", doc.Filename)
	cmd.Printf("  Type:        %s\n", doc.Type)
	cmd.Printf("  Size:        %d bytes\n", doc.SizeBytes)
	cmd.Printf("  Hash:        %s\n", doc.ContentHash)
	cmd.Printf("  Uploaded:    %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Chunks:      %d\n", doc.ChunkCount)
	cmd.Printf("  Processed:   %t\n", doc.Processed)
	if doc.Category != "" {
		cmd.Printf("  Category:    %s\n", doc.Category)
	}
	if len(doc.Tags) > 0 {
		cmd.Printf("  Tags:        %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.Description != "" {
		cmd.Printf("  Description: %s\n", doc.Description)
	}
	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	var chunkIndex *int
	if documentChunkIndex >= 0 {
		chunkIndex = &documentChunkIndex
	}

	content, err := documentService.Content(context.Background(), args[0], chunkIndex)
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content.Content)
	return nil
}

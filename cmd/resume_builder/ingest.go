package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/ingestion"
)

var (
	ingestFile string
	ingestOut  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract and clean text from a resume file",
	Long: `Extract text from a resume file (pdf, docx, or txt), clean it, and write
the cleaned text plus metadata to an output directory. Useful for inspecting
what the parser will actually see before running the full pipeline.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to resume file (required)")
	ingestCmd.Flags().StringVar(&ingestOut, "out", "", "Output directory (required)")
	_ = ingestCmd.MarkFlagRequired("file")
	_ = ingestCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	text, meta, err := ingestion.IngestFromFile(ingestFile)
	if err != nil {
		return fmt.Errorf("failed to ingest resume: %w", err)
	}

	if err := ingestion.WriteOutput(ingestOut, text, meta); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Ingested: %s (%s)\n", meta.SourceFile, meta.Format)
	fmt.Printf("Characters: %d\n", meta.CharCount)
	fmt.Printf("Output written to: %s\n", ingestOut)
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/chunker"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/config"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/db"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/ingestion"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/llm"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/observability"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/orchestrator"
)

var (
	parseConfigPath string
	parseResume     string
	parseOutput     string
	parseOutDir     string
	parseAPIKey     string
	parseDBURL      string
	parseVerbose    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume file into structured JSON",
	Long: `Parse a resume file (pdf, docx, or txt) into a structured JSON record.

The file is chunked into sections, and six extraction agents run concurrently
against the LLM, one per resume section. Failed agents leave their section
empty rather than failing the run.

Options can be provided via a JSON config file (--config), with CLI flags
taking precedence over config file values.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseConfigPath, "config", "", "Path to JSON config file")
	parseCmd.Flags().StringVarP(&parseResume, "resume", "r", "", "Path to resume file (pdf, docx, or txt)")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Path to write the parsed record JSON (default: stdout)")
	parseCmd.Flags().StringVar(&parseOutDir, "out-dir", "", "Directory for intermediate artifacts (cleaned text, metadata)")
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API key (default: GEMINI_API_KEY env var)")
	parseCmd.Flags().StringVar(&parseDBURL, "db-url", "", "PostgreSQL URL for run persistence (default: DATABASE_URL env var)")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print section and agent details")

	rootCmd.AddCommand(parseCmd)
}

// resolveParseConfig merges the config file (if any) with CLI flags and
// environment fallbacks. CLI flags that were explicitly set win over the
// config file; the config file wins over env vars.
func resolveParseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}

	if parseConfigPath != "" {
		loaded, err := config.LoadConfig(parseConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// CLI flags override config file values only when explicitly set
	flagCfg := config.Config{}
	if cmd.Flags().Changed("resume") {
		flagCfg.Resume = parseResume
	}
	if cmd.Flags().Changed("output") {
		flagCfg.Output = parseOutput
	}
	if cmd.Flags().Changed("out-dir") {
		flagCfg.OutDir = parseOutDir
	}
	if cmd.Flags().Changed("api-key") {
		flagCfg.APIKey = parseAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		flagCfg.DatabaseURL = parseDBURL
	}
	merged := flagCfg.MergeWithDefaults(*cfg)

	// Bool flags always win (can't distinguish unset from false)
	if cmd.Flags().Changed("verbose") {
		merged.Verbose = parseVerbose
	} else {
		merged.Verbose = merged.Verbose || cfg.Verbose
	}

	// Environment fallbacks
	if merged.APIKey == "" {
		merged.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if merged.DatabaseURL == "" {
		merged.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	if merged.Resume == "" {
		return nil, fmt.Errorf("resume file is required (use --resume or set 'resume' in config)")
	}
	if merged.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required (use --api-key or set GEMINI_API_KEY)")
	}

	return &merged, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveParseConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	text, meta, err := ingestion.IngestFromFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to ingest resume: %w", err)
	}

	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Ingested %s (%s, %d chars, sha256 %s)\n",
			meta.SourceFile, meta.Format, meta.CharCount, meta.Hash[:12])
		sections := chunker.New(nil, nil).Chunk(text)
		printer.PrintSections(sections)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	orch := orchestrator.New(client)
	var summary *orchestrator.ProcessingSummary
	orch.OnProgress = func(event orchestrator.ProgressEvent) {
		if event.ProcessingSummary != nil {
			summary = event.ProcessingSummary
		}
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", event.Progress, event.Message)
		}
	}

	record, err := orch.ProcessResume(ctx, text)
	if err != nil {
		return fmt.Errorf("resume processing failed: %w", err)
	}

	output, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parsed record: %w", err)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, output, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Parsed resume written to: %s\n", cfg.Output)
	} else {
		fmt.Println(string(output))
	}

	if cfg.OutDir != "" {
		if err := ingestion.WriteOutput(cfg.OutDir, text, meta); err != nil {
			return fmt.Errorf("failed to write artifacts: %w", err)
		}
		recordPath := filepath.Join(cfg.OutDir, "resume.parsed.json")
		if err := os.WriteFile(recordPath, output, 0644); err != nil {
			return fmt.Errorf("failed to write parsed record artifact: %w", err)
		}
		fmt.Printf("Artifacts written to: %s\n", cfg.OutDir)
	}

	if cfg.DatabaseURL != "" {
		persistParseRun(ctx, cfg.DatabaseURL, meta, text, record, summary)
	}

	if cfg.Verbose && summary != nil {
		printer.PrintResumeRecord(record)
		printer.PrintRunSummary(summary.SuccessfulAgents, summary.FailedAgents)
	}

	return nil
}

// persistParseRun records the run in Postgres. Persistence failures are
// logged and never fail the parse itself.
func persistParseRun(ctx context.Context, databaseURL string, meta *ingestion.Metadata, text string, record any, summary *orchestrator.ProcessingSummary) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: database unavailable, continuing without database persistence: %v\n", err)
		return
	}
	defer database.Close()

	runID, err := database.CreateRun(ctx, meta.SourceFile, string(meta.Format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create run record: %v\n", err)
		return
	}
	if err := database.SaveTextArtifact(ctx, runID, db.StepRawText, db.CategoryIngestion, text); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save raw text artifact: %v\n", err)
	}
	if err := database.SaveArtifact(ctx, runID, db.StepMetadata, db.CategoryIngestion, meta); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save metadata artifact: %v\n", err)
	}
	if err := database.SaveArtifact(ctx, runID, db.StepParsedResume, db.CategoryMerge, record); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save parsed resume artifact: %v\n", err)
	}

	status := db.RunStatusCompleted
	if summary != nil && summary.FailedAgents > 0 {
		status = db.RunStatusPartial
	}
	if err := database.CompleteRun(ctx, runID, status); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to complete run record: %v\n", err)
		return
	}
	fmt.Printf("Run persisted: %s\n", runID)
}

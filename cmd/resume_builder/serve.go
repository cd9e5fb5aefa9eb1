package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resume parsing API server",
	Long: `Start the HTTP API server for resume parsing.

Endpoints:
  POST   /parse             - Parse an uploaded resume, return the record as JSON
  POST   /parse/stream      - Parse an uploaded resume, stream progress via SSE
  GET    /health            - Health check
  GET    /runs              - List persisted parse runs
  GET    /runs/{id}         - Get a persisted run
  GET    /runs/{id}/resume  - Get the parsed record for a run
  DELETE /runs/{id}         - Delete a run and its artifacts

Requires GEMINI_API_KEY. DATABASE_URL is optional: without it the run
endpoints return 503 and parses are not persisted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(server.Config{
		Port:        servePort,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/db"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/ingestion"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/orchestrator"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// maxUploadBytes limits resume uploads to 10 MB.
const maxUploadBytes = 10 << 20

// ParseResponse represents the response for /parse
type ParseResponse struct {
	RunID  string              `json:"run_id,omitempty"`
	Status string              `json:"status"`
	Data   *types.ResumeRecord `json:"data"`
}

// RunResponse represents one run in /runs listings
type RunResponse struct {
	RunID       string `json:"run_id"`
	SourceFile  string `json:"source_file"`
	Format      string `json:"format"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// readUpload pulls the resume file out of a multipart request and returns
// its cleaned text plus metadata.
func (s *Server) readUpload(r *http.Request) (string, *ingestion.Metadata, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, fmt.Errorf("invalid multipart request: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("file field is required: %w", err)
	}
	defer func() { _ = file.Close() }()

	format, err := ingestion.DetectFormat(header.Filename)
	if err != nil {
		// Fall back to the declared content type for extensionless uploads
		format, err = ingestion.FormatFromMIME(header.Header.Get("Content-Type"))
		if err != nil {
			return "", nil, err
		}
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}

	text, err := ingestion.ExtractText(data, format)
	if err != nil {
		return "", nil, err
	}

	cleaned := ingestion.CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("no text could be extracted from %s", header.Filename)
	}

	return cleaned, ingestion.NewMetadata(cleaned, header.Filename, format), nil
}

// handleParse runs the extraction pipeline synchronously and returns the
// merged record as JSON.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, meta, err := s.readUpload(r)
	if err != nil {
		s.errorResponse(w, uploadStatus(err), err.Error())
		return
	}

	o := orchestrator.New(s.extractor)

	var summary *orchestrator.ProcessingSummary
	o.OnProgress = func(event orchestrator.ProgressEvent) {
		if event.Type == "final_data" {
			summary = event.ProcessingSummary
		}
	}

	record, err := o.ProcessResume(r.Context(), text)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Processing failed: "+err.Error())
		return
	}

	runID := s.persistRun(r.Context(), meta, text, record, summary)

	s.jsonResponse(w, http.StatusOK, ParseResponse{
		RunID:  runID,
		Status: runStatus(summary),
		Data:   record,
	})
}

// handleParseStream runs the extraction pipeline and streams its progress
// events via SSE, terminated by a [DONE] sentinel.
func (s *Server) handleParseStream(w http.ResponseWriter, r *http.Request) {
	text, meta, err := s.readUpload(r)
	if err != nil {
		s.errorResponse(w, uploadStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming parse run for %s", meta.SourceFile)

	o := orchestrator.New(s.extractor)

	var summary *orchestrator.ProcessingSummary
	var errorEventSent bool
	o.OnProgress = func(event orchestrator.ProgressEvent) {
		switch event.Type {
		case "final_data":
			summary = event.ProcessingSummary
		case "error":
			errorEventSent = true
		}
		if err := sse.WriteEvent(event.Type, event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	record, err := o.ProcessResume(r.Context(), text)
	if err != nil {
		log.Printf("Parse run failed: %v", err)
		// The orchestrator emits its own terminal error event; only write
		// one here if it failed before reaching that point.
		if !errorEventSent {
			sse.WriteError(err.Error())
		}
		sse.WriteDone()
		return
	}

	s.persistRun(r.Context(), meta, text, record, summary)

	sse.WriteDone()
	log.Printf("Streaming parse run completed")
}

// persistRun saves the run and its artifacts when a database is configured.
// Persistence failures are logged, never surfaced to the client.
func (s *Server) persistRun(ctx context.Context, meta *ingestion.Metadata, text string, record *types.ResumeRecord, summary *orchestrator.ProcessingSummary) string {
	if s.db == nil {
		return ""
	}

	runID, err := s.db.CreateRun(ctx, meta.SourceFile, meta.Format)
	if err != nil {
		log.Printf("Warning: failed to create run record: %v", err)
		return ""
	}

	if err := s.db.SaveTextArtifact(ctx, runID, db.StepRawText, db.CategoryIngestion, text); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := s.db.SaveArtifact(ctx, runID, db.StepMetadata, db.CategoryIngestion, meta); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := s.db.SaveArtifact(ctx, runID, db.StepParsedResume, db.CategoryMerge, record); err != nil {
		log.Printf("Warning: %v", err)
	}

	if err := s.db.CompleteRun(ctx, runID, runStatus(summary)); err != nil {
		log.Printf("Warning: failed to complete run: %v", err)
	}

	return runID.String()
}

// runStatus maps the processing summary onto a run status.
func runStatus(summary *orchestrator.ProcessingSummary) string {
	if summary != nil && summary.FailedAgents > 0 {
		return db.RunStatusPartial
	}
	return db.RunStatusCompleted
}

// uploadStatus maps an upload error to an HTTP status code.
func uploadStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return http.StatusBadRequest
}

// handleListRuns returns recent parse runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database persistence is not configured")
		return
	}

	runs, err := s.db.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	responses := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, runResponse(run))
	}
	s.jsonResponse(w, http.StatusOK, responses)
}

// handleGetRun returns the status of a parse run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runIDFromPath(w, r)
	if !ok {
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, runResponse(*run))
}

// handleGetRunResume returns the parsed resume record for a run
func (s *Server) handleGetRunResume(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runIDFromPath(w, r)
	if !ok {
		return
	}

	content, err := s.db.GetArtifact(r.Context(), runID, db.StepParsedResume)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "Parsed resume not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// handleDeleteRun deletes a parse run and its artifacts
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runIDFromPath(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteRun(r.Context(), runID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// runIDFromPath parses the {id} path value and checks that persistence is
// available, writing the error response itself on failure.
func (s *Server) runIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database persistence is not configured")
		return uuid.Nil, false
	}

	idStr := r.PathValue("id")
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return uuid.Nil, false
	}
	return runID, true
}

func runResponse(run db.Run) RunResponse {
	resp := RunResponse{
		RunID:      run.ID.String(),
		SourceFile: run.SourceFile,
		Format:     run.Format,
		Status:     run.Status,
		CreatedAt:  run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

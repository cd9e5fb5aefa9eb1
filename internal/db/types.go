package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents one resume parse run.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	SourceFile  string     `json:"source_file"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusPartial   = "partial"
	RunStatusFailed    = "failed"
)

// ArtifactStep constants for known artifact types.
const (
	StepRawText      = "raw_text"
	StepMetadata     = "metadata"
	StepSections     = "sections"
	StepAgentResults = "agent_results"
	StepParsedResume = "parsed_resume"
)

// Category constants for grouping artifacts by pipeline phase.
const (
	CategoryIngestion  = "ingestion"
	CategoryChunking   = "chunking"
	CategoryExtraction = "extraction"
	CategoryMerge      = "merge"
)

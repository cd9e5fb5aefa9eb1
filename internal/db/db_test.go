package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepRawText,
		StepMetadata,
		StepSections,
		StepAgentResults,
		StepParsedResume,
	}

	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
	}
}

func TestRunStatusConstants(t *testing.T) {
	assert.Equal(t, "running", RunStatusRunning)
	assert.Equal(t, "completed", RunStatusCompleted)
	assert.Equal(t, "partial", RunStatusPartial)
	assert.Equal(t, "failed", RunStatusFailed)
}

func TestRunType(t *testing.T) {
	run := Run{
		SourceFile: "resume.pdf",
		Format:     "pdf",
		Status:     RunStatusRunning,
	}

	assert.Equal(t, "resume.pdf", run.SourceFile)
	assert.Equal(t, "pdf", run.Format)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}

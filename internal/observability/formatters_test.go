package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/agents"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

func TestPrintSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := types.NewSectionMap()
	sections.Set(types.SectionSummary, "A decade of experience.")
	sections.Set(types.SectionSkills, "Go, SQL")
	sections.Integrity[types.SectionSummary] = types.IntegrityRecord{
		SegmentCount: 2,
		Status:       "ok",
	}

	p.PrintSections(sections)
	output := buf.String()

	assert.Contains(t, output, "CHUNKED SECTIONS")
	assert.Contains(t, output, "summary")
	assert.Contains(t, output, "skills")
	assert.Contains(t, output, "2 segments")
}

func TestPrintSections_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSections(types.NewSectionMap())
	assert.Empty(t, buf.String())

	p.PrintSections(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAgentResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []agents.AgentResult{
		{AgentType: agents.AgentHeader, Success: true, ProcessingTimeSeconds: 1.25},
		{AgentType: agents.AgentSkills, Success: false, ErrorMessage: "timeout"},
	}

	p.PrintAgentResults(results)
	output := buf.String()

	assert.Contains(t, output, "AGENT RESULTS")
	assert.Contains(t, output, "✓ header")
	assert.Contains(t, output, "✗ skills")
	assert.Contains(t, output, "timeout")
}

func TestPrintResumeRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewResumeRecord()
	record.Name = "Jane Doe"
	record.Title = "Senior Engineer"
	record.EmploymentHistory = []types.JobEntry{
		{CompanyName: "Acme Corp", WorkPeriod: "Jan 2020 - Till Date"},
	}
	record.Certifications = []types.Certification{{Name: "AWS SA"}}

	p.PrintResumeRecord(record)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Certifications: 1")
}

func TestPrintRunSummary_AllSucceeded(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(6, 0)
	assert.Contains(t, buf.String(), "ALL 6 AGENTS SUCCEEDED")
}

func TestPrintRunSummary_PartialFailure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(5, 1)
	output := buf.String()

	assert.Contains(t, output, "PARTIAL RESULT")
	assert.Contains(t, output, "Successful agents: 5")
	assert.Contains(t, output, "Failed agents:     1")
}

func TestPrintBoxTruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewResumeRecord()
	record.Name = strings.Repeat("x", 100)
	p.PrintResumeRecord(record)

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth+2)
	}
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/agents"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSections outputs a summary of the chunked resume sections.
func (p *Printer) PrintSections(sections *types.SectionMap) {
	if sections == nil || sections.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Detected %d sections:\n\n", sections.Len()))

	for _, key := range sections.Keys() {
		text, _ := sections.Get(key)
		sb.WriteString(fmt.Sprintf("• %-16s %5d chars", key, len(text)))
		if rec, ok := sections.Integrity[key]; ok {
			if rec.SegmentCount > 1 {
				sb.WriteString(fmt.Sprintf(", %d segments", rec.SegmentCount))
			}
			if rec.Status != "ok" {
				sb.WriteString(" ⚠")
			}
		}
		sb.WriteString("\n")
	}

	if len(sections.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("\n%d integrity warnings\n", len(sections.Warnings)))
	}

	p.printBox("CHUNKED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAgentResults outputs the per-agent outcomes with timing.
func (p *Printer) PrintAgentResults(results []agents.AgentResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, result := range results {
		marker := "✓"
		if !result.Success {
			marker = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %-16s %.2fs", marker, result.AgentType, result.ProcessingTimeSeconds))
		if result.ErrorMessage != "" {
			message := result.ErrorMessage
			if len(message) > 28 {
				message = message[:25] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s", message))
		}
		sb.WriteString("\n")
	}

	p.printBox("AGENT RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeRecord outputs a human-readable summary of the merged record.
func (p *Printer) PrintResumeRecord(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:   %s\n", record.Name))
	if record.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:  %s\n", record.Title))
	}
	sb.WriteString("\n")

	if len(record.EmploymentHistory) > 0 {
		sb.WriteString(fmt.Sprintf("Employment (%d positions):\n", len(record.EmploymentHistory)))
		count := min(len(record.EmploymentHistory), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := record.EmploymentHistory[i]
			line := job.CompanyName
			if job.WorkPeriod != "" {
				line += " (" + job.WorkPeriod + ")"
			}
			if len(line) > 50 {
				line = line[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", line))
		}
		if len(record.EmploymentHistory) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.EmploymentHistory)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(record.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education: %d entries\n", len(record.Education)))
	}
	if len(record.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(record.Certifications)))
	}
	if len(record.TechnicalSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Skill groups: %d\n", len(record.TechnicalSkills)))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the agent success/failure counts.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRunSummary(successful, failed int) {
	if failed == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ ALL %d AGENTS SUCCEEDED", successful))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Successful agents: %d\n", successful))
	sb.WriteString(fmt.Sprintf("Failed agents:     %d\n", failed))
	sb.WriteString("\nFailed sections are left empty in the output.")

	p.printBox("PARTIAL RESULT", sb.String())
}

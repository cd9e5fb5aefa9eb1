package normalize

import (
	"regexp"
	"strings"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// EnforceTechResponsibilityRule clears job-level responsibilities and
// technologies when the job carries projects: detail must live inside the
// project objects, never duplicated at both levels.
func EnforceTechResponsibilityRule(job *types.JobEntry) {
	if len(job.Projects) == 0 {
		return
	}
	job.KeyTechnologies = ""
	job.Responsibilities = []string{}
}

// EnforceProjectPeriodDedup clears any project period that is textually
// identical to the parent job's work period. Such a copy is an extraction
// artifact, not a real distinct range.
func EnforceProjectPeriodDedup(job *types.JobEntry) {
	if job.WorkPeriod == "" {
		return
	}
	for i := range job.Projects {
		if job.Projects[i].Period == job.WorkPeriod {
			job.Projects[i].Period = ""
		}
	}
}

var projectNamePattern = regexp.MustCompile(`(?i)^project\s*#?\d+\s*:\s*(.+?)(?:\s*/\s*.+)?$`)

// HasSyntheticProjectName reports whether a project name has the
// "Project N: <title>[/ <role>]" shape. Only names of this shape are
// candidates for the fabrication check; organically named projects are
// always kept.
func HasSyntheticProjectName(projectName string) bool {
	return projectNamePattern.MatchString(strings.TrimSpace(projectName))
}

// ValidateProjectName checks a "Project N: <title>[/ <role>]" name against
// the job's source text. At least half of the title's significant terms
// (longer than 3 characters) must appear in the text for the project to be
// considered real rather than synthesized from generic responsibility
// prose.
func ValidateProjectName(projectName, jobText string) bool {
	m := projectNamePattern.FindStringSubmatch(strings.TrimSpace(projectName))
	if m == nil {
		return false
	}
	title := m[1]

	lowerText := strings.ToLower(jobText)
	var total, found int
	for _, term := range strings.Fields(title) {
		term = strings.ToLower(strings.Trim(term, ".,;:()[]"))
		if len(term) <= 3 {
			continue
		}
		total++
		if strings.Contains(lowerText, term) {
			found++
		}
	}
	if total == 0 {
		return false
	}
	return float64(found)/float64(total) >= 0.5
}

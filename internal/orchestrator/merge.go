package orchestrator

import (
	"log"
	"strings"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/agents"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/normalize"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// mergeResults folds the succeeded agents' contributions into one record.
// The merge keys on each result's own agent type, so it is deterministic
// regardless of completion order; a failed agent's fields simply stay at
// their empty defaults.
func mergeResults(results []agents.AgentResult) *types.ResumeRecord {
	record := types.NewResumeRecord()

	var rawName, headerTitle, summaryTitle string
	var haveHeaderTitle, haveSummaryTitle bool

	for _, result := range results {
		switch result.AgentType {
		case agents.AgentHeader:
			data, ok := result.Data.(*agents.HeaderData)
			if !ok {
				log.Printf("header agent: unexpected payload type, skipping")
				continue
			}
			rawName = data.Name
			record.RequisitionNumber = data.RequisitionNumber
			if data.Title != "" {
				headerTitle = data.Title
				haveHeaderTitle = true
			}

		case agents.AgentSummary:
			data, ok := result.Data.(*agents.SummaryData)
			if !ok {
				log.Printf("summary agent: unexpected payload type, skipping")
				continue
			}
			record.ProfessionalSummary = data.ProfessionalSummary
			record.SummarySections = data.SummarySections
			// Legacy alias for older renderers.
			record.Subsections = data.SummarySections
			if data.Title != "" {
				summaryTitle = data.Title
				haveSummaryTitle = true
			}

		case agents.AgentExperience:
			data, ok := result.Data.(*agents.ExperienceData)
			if !ok {
				log.Printf("experience agent: unexpected payload type, skipping")
				continue
			}
			record.EmploymentHistory = data.EmploymentHistory

		case agents.AgentEducation:
			data, ok := result.Data.(*agents.EducationData)
			if !ok {
				log.Printf("education agent: unexpected payload type, skipping")
				continue
			}
			record.Education = data.Education

		case agents.AgentSkills:
			data, ok := result.Data.(*agents.SkillsData)
			if !ok {
				log.Printf("skills agent: unexpected payload type, skipping")
				continue
			}
			record.TechnicalSkills = data.TechnicalSkills
			record.SkillCategories = data.SkillCategories

		case agents.AgentCertifications:
			data, ok := result.Data.(*agents.CertificationsData)
			if !ok {
				log.Printf("certifications agent: unexpected payload type, skipping")
				continue
			}
			record.Certifications = data.Certifications
		}
	}

	record.Name = reconcileName(rawName)
	record.Title = reconcileTitle(headerTitle, haveHeaderTitle, summaryTitle, haveSummaryTitle)
	return record
}

// reconcileName prefers the normalized name; if normalization collapses it
// to nothing, the raw extracted name is better than an empty field.
func reconcileName(rawName string) string {
	normalized := normalize.NormalizePersonName(rawName)
	if normalized == "" {
		return strings.TrimSpace(rawName)
	}
	return normalized
}

// reconcileTitle resolves the header and summary agents' title claims.
// When both exist and disagree after normalization, the title stays empty:
// an ambiguous title is worse than none.
func reconcileTitle(headerTitle string, haveHeader bool, summaryTitle string, haveSummary bool) string {
	switch {
	case haveHeader && haveSummary:
		if normalizeTitle(headerTitle) == normalizeTitle(summaryTitle) {
			return headerTitle
		}
		log.Printf("title mismatch between header (%q) and summary (%q); leaving empty", headerTitle, summaryTitle)
		return ""
	case haveHeader:
		return headerTitle
	case haveSummary:
		return summaryTitle
	}
	return ""
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

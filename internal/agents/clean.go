package agents

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/normalize"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// cleanAgentData parses an agent's raw JSON and applies the section's
// deterministic cleaning rules. A JSON syntax error is the only hard
// failure; malformed elements inside otherwise valid JSON are dropped and
// logged. inputText is the source text the agent extracted from; the
// experience cleaner checks suspect project names against it.
func cleanAgentData(agentType AgentType, raw, inputText string) (interface{}, error) {
	switch agentType {
	case AgentHeader:
		return cleanHeader(raw)
	case AgentSummary:
		return cleanSummary(raw)
	case AgentExperience:
		return cleanExperience(raw, inputText)
	case AgentEducation:
		return cleanEducation(raw)
	case AgentSkills:
		return cleanSkills(raw)
	case AgentCertifications:
		return cleanCertifications(raw)
	}
	return nil, json.Unmarshal([]byte(raw), &struct{}{})
}

func cleanHeader(raw string) (*HeaderData, error) {
	var data HeaderData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	data.Name = strings.TrimSpace(data.Name)
	data.Title = strings.TrimSpace(data.Title)
	data.RequisitionNumber = strings.TrimSpace(data.RequisitionNumber)
	return &data, nil
}

func cleanSummary(raw string) (*SummaryData, error) {
	var data SummaryData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	data.ProfessionalSummary = normalize.StripBulletPrefixes(data.ProfessionalSummary)
	for i := range data.SummarySections {
		data.SummarySections[i].Content = normalize.StripBulletPrefixes(data.SummarySections[i].Content)
	}
	return &data, nil
}

// cleanExperience tolerates the model returning a bare object or a string
// where the employment list belongs: an object is coerced to a
// single-element list, a string is discarded with a log line. Individual
// list elements that are not well-formed records are skipped.
func cleanExperience(raw, inputText string) (*ExperienceData, error) {
	var envelope struct {
		EmploymentHistory json.RawMessage `json:"employmentHistory"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, err
	}

	data := &ExperienceData{EmploymentHistory: []types.JobEntry{}}
	for _, element := range coerceToList(envelope.EmploymentHistory, "employmentHistory") {
		var job types.JobEntry
		if err := json.Unmarshal(element, &job); err != nil {
			log.Printf("experience agent: skipping malformed job entry: %v", err)
			continue
		}
		cleanJobEntry(&job, inputText)
		data.EmploymentHistory = append(data.EmploymentHistory, job)
	}
	return data, nil
}

// coerceToList renders a raw JSON value as a list of elements: arrays pass
// through, a bare object becomes a single-element list, anything else is
// discarded.
func coerceToList(raw json.RawMessage, field string) []json.RawMessage {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	switch trimmed[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err != nil {
			log.Printf("discarding unparsable %s array: %v", field, err)
			return nil
		}
		return elements
	case '{':
		log.Printf("%s arrived as a bare object; coercing to single-element list", field)
		return []json.RawMessage{raw}
	default:
		log.Printf("discarding %s of unexpected type: %s", field, snippet(trimmed))
		return nil
	}
}

func snippet(s string) string {
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}

func cleanJobEntry(job *types.JobEntry, inputText string) {
	job.WorkPeriod = normalize.NormalizeWorkPeriod(job.WorkPeriod)
	if job.Location == "" {
		job.Location = locationFromCompanyName(job.CompanyName)
	}
	job.Location = normalize.NormalizeLocation(job.Location)

	job.Responsibilities = normalize.StripBulletPrefixes(job.Responsibilities)
	job.Responsibilities = normalize.SanitizeResponsibilities(job.Responsibilities)
	for i := range job.Subsections {
		job.Subsections[i].Content = normalize.StripBulletPrefixes(job.Subsections[i].Content)
	}

	kept := job.Projects[:0]
	for i := range job.Projects {
		p := &job.Projects[i]

		// A numbered "Project N: ..." name whose title terms barely overlap
		// the source text was synthesized by the model, not extracted.
		if normalize.HasSyntheticProjectName(p.ProjectName) && !normalize.ValidateProjectName(p.ProjectName, inputText) {
			log.Printf("experience agent: dropping fabricated project %q (title not grounded in source text)", p.ProjectName)
			continue
		}

		p.Period = normalize.NormalizeWorkPeriod(p.Period)
		if p.ProjectLocation != "" {
			p.ProjectLocation = normalize.NormalizeLocation(p.ProjectLocation)
		}
		p.ProjectResponsibilities = normalize.StripBulletPrefixes(p.ProjectResponsibilities)
		p.ProjectResponsibilities = normalize.SanitizeResponsibilities(p.ProjectResponsibilities)
		kept = append(kept, *p)
	}
	job.Projects = kept

	normalize.EnforceTechResponsibilityRule(job)
	normalize.EnforceProjectPeriodDedup(job)
}

// locationFromCompanyName recovers a location the model folded into the
// company field, e.g. "Acme Corp, Dallas, TX" or "Acme Corp - Hyderabad,
// India".
func locationFromCompanyName(companyName string) string {
	for _, sep := range []string{" - ", " | "} {
		if idx := strings.LastIndex(companyName, sep); idx >= 0 {
			return strings.TrimSpace(companyName[idx+len(sep):])
		}
	}
	parts := strings.Split(companyName, ",")
	if len(parts) >= 3 {
		return strings.TrimSpace(parts[len(parts)-2]) + ", " + strings.TrimSpace(parts[len(parts)-1])
	}
	return ""
}

func cleanEducation(raw string) (*EducationData, error) {
	var envelope struct {
		Education json.RawMessage `json:"education"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, err
	}

	data := &EducationData{Education: []types.EducationEntry{}}
	for _, element := range coerceToList(envelope.Education, "education") {
		var entry types.EducationEntry
		if err := json.Unmarshal(element, &entry); err != nil {
			log.Printf("education agent: skipping malformed entry: %v", err)
			continue
		}
		entry.Degree = normalize.StandardizeDegree(entry.Degree)
		entry.Location = normalize.NormalizeLocation(entry.Location)
		entry.Date = normalize.NormalizeWorkPeriod(entry.Date)
		data.Education = append(data.Education, entry)
	}
	normalize.SortEducationAscending(data.Education)
	return data, nil
}

func cleanSkills(raw string) (*SkillsData, error) {
	var data SkillsData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	if data.TechnicalSkills == nil {
		data.TechnicalSkills = map[string]interface{}{}
	}
	if data.SkillCategories == nil {
		data.SkillCategories = []types.SkillCategory{}
	}
	for i := range data.SkillCategories {
		// subCategories always exists, even when the model omits it.
		if data.SkillCategories[i].SubCategories == nil {
			data.SkillCategories[i].SubCategories = []types.SubCategory{}
		}
	}
	return &data, nil
}

func cleanCertifications(raw string) (*CertificationsData, error) {
	var envelope struct {
		Certifications json.RawMessage `json:"certifications"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, err
	}

	data := &CertificationsData{Certifications: []types.Certification{}}
	for _, element := range coerceToList(envelope.Certifications, "certifications") {
		var cert types.Certification
		if err := json.Unmarshal(element, &cert); err != nil {
			log.Printf("certifications agent: skipping malformed entry: %v", err)
			continue
		}
		cert = normalize.ExtractCertificationFields(cert)
		cert.Name = strings.TrimSpace(cert.Name)
		if cert.Name == "" {
			continue
		}
		cert.DateObtained = normalize.NormalizeWorkPeriod(cert.DateObtained)
		cert.ExpirationDate = normalize.NormalizeWorkPeriod(cert.ExpirationDate)
		data.Certifications = append(data.Certifications, cert)
	}
	return data, nil
}

// Package agents implements the section-specific extraction agents. Each
// agent binds one section key to one output schema and one prompt, calls
// the structured-extraction capability once, and deterministically cleans
// whatever comes back. An agent never lets a failure escape: every outcome
// is an AgentResult.
package agents

import (
	"context"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/llm"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// AgentType identifies which resume section an agent extracts. The set is
// closed; every dispatch site switches exhaustively over it.
type AgentType string

const (
	AgentHeader         AgentType = "header"
	AgentSummary        AgentType = "summary"
	AgentExperience     AgentType = "experience"
	AgentEducation      AgentType = "education"
	AgentSkills         AgentType = "skills"
	AgentCertifications AgentType = "certifications"
)

// AllAgentTypes lists every agent in canonical section order.
var AllAgentTypes = []AgentType{
	AgentHeader,
	AgentSummary,
	AgentExperience,
	AgentEducation,
	AgentSkills,
	AgentCertifications,
}

// SectionKey maps an agent to the chunker section it consumes.
func (t AgentType) SectionKey() types.SectionKey {
	switch t {
	case AgentHeader:
		return types.SectionHeader
	case AgentSummary:
		return types.SectionSummary
	case AgentExperience:
		return types.SectionExperience
	case AgentEducation:
		return types.SectionEducation
	case AgentSkills:
		return types.SectionSkills
	case AgentCertifications:
		return types.SectionCertifications
	}
	return types.SectionUncategorized
}

// Tier returns the model tier this agent runs on. Header, summary, and
// certifications are small targeted extractions; the structured sections
// get the standard tier.
func (t AgentType) Tier() llm.ModelTier {
	switch t {
	case AgentHeader, AgentSummary, AgentCertifications:
		return llm.TierLite
	default:
		return llm.TierStandard
	}
}

// Extractor is the structured-extraction capability an agent calls. llm.Client
// satisfies it; tests substitute a fake.
type Extractor interface {
	ExtractJSON(ctx context.Context, systemPrompt, userPrompt string, tier llm.ModelTier) (string, error)
}

// HeaderData is the header agent's cleaned output.
type HeaderData struct {
	Name              string `json:"name"`
	Title             string `json:"title"`
	RequisitionNumber string `json:"requisitionNumber"`
}

// SummaryData is the summary agent's cleaned output.
type SummaryData struct {
	ProfessionalSummary []string               `json:"professionalSummary"`
	SummarySections     []types.SummarySection `json:"summarySections"`
	Title               string                 `json:"title,omitempty"`
}

// ExperienceData is the experience agent's cleaned output.
type ExperienceData struct {
	EmploymentHistory []types.JobEntry `json:"employmentHistory"`
}

// EducationData is the education agent's cleaned output.
type EducationData struct {
	Education []types.EducationEntry `json:"education"`
}

// SkillsData is the skills agent's cleaned output.
type SkillsData struct {
	TechnicalSkills map[string]interface{} `json:"technicalSkills"`
	SkillCategories []types.SkillCategory  `json:"skillCategories"`
}

// CertificationsData is the certifications agent's cleaned output.
type CertificationsData struct {
	Certifications []types.Certification `json:"certifications"`
}

// AgentResult is the outcome of one agent invocation. Data holds the
// cleaned section payload (one of the *Data types above) when Success is
// true, nil otherwise.
type AgentResult struct {
	AgentType             AgentType   `json:"agentType"`
	Data                  interface{} `json:"data"`
	Success               bool        `json:"success"`
	ErrorMessage          string      `json:"errorMessage,omitempty"`
	ProcessingTimeSeconds float64     `json:"processingTimeSeconds"`
}

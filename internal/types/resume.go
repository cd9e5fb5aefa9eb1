// Package types defines the shared data structures exchanged between the
// chunker, the extraction agents, and the orchestrator.
package types

// ResumeRecord is the canonical, fully-normalized output of one pipeline run.
// It is assembled by the orchestrator from the per-agent results; a field
// whose agent failed stays at its zero value.
type ResumeRecord struct {
	Name                string           `json:"name"`
	Title               string           `json:"title"`
	RequisitionNumber   string           `json:"requisitionNumber"`
	ProfessionalSummary []string         `json:"professionalSummary"`
	SummarySections     []SummarySection `json:"summarySections"`
	// Subsections mirrors SummarySections for older renderers that still
	// read the legacy field name.
	Subsections       []SummarySection       `json:"subsections"`
	EmploymentHistory []JobEntry             `json:"employmentHistory"`
	Education         []EducationEntry       `json:"education"`
	Certifications    []Certification        `json:"certifications"`
	TechnicalSkills   map[string]interface{} `json:"technicalSkills"`
	SkillCategories   []SkillCategory        `json:"skillCategories"`
}

// NewResumeRecord returns a record with all collection fields initialized,
// so a section-sparse merge still serializes with empty arrays/objects
// rather than nulls.
func NewResumeRecord() *ResumeRecord {
	return &ResumeRecord{
		ProfessionalSummary: []string{},
		SummarySections:     []SummarySection{},
		Subsections:         []SummarySection{},
		EmploymentHistory:   []JobEntry{},
		Education:           []EducationEntry{},
		Certifications:      []Certification{},
		TechnicalSkills:     map[string]interface{}{},
		SkillCategories:     []SkillCategory{},
	}
}

// SummarySection is an explicitly titled subsection of the professional
// summary (e.g. "Areas of Expertise").
type SummarySection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// JobEntry is one position in the employment history.
type JobEntry struct {
	CompanyName      string           `json:"companyName"`
	RoleName         string           `json:"roleName"`
	WorkPeriod       string           `json:"workPeriod"`
	Location         string           `json:"location"`
	Projects         []Project        `json:"projects"`
	Responsibilities []string         `json:"responsibilities"`
	KeyTechnologies  string           `json:"keyTechnologies"`
	Subsections      []SummarySection `json:"subsections,omitempty"`
}

// Project is a named project inside a job entry. When a job carries
// projects, all responsibility and technology detail lives here and the
// job-level fields are cleared.
type Project struct {
	ProjectName             string   `json:"projectName"`
	ProjectLocation         string   `json:"projectLocation,omitempty"`
	ProjectResponsibilities []string `json:"projectResponsibilities"`
	KeyTechnologies         string   `json:"keyTechnologies"`
	Period                  string   `json:"period"`
}

// EducationEntry is one degree. Degrees are standardized (BTech/BE/BCom/BA
// become BS, MTech/ME become MS) and entries are sorted ascending by
// degree rank, ties broken by date.
type EducationEntry struct {
	Degree      string `json:"degree"`
	AreaOfStudy string `json:"areaOfStudy"`
	School      string `json:"school"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	WasAwarded  bool   `json:"wasAwarded"`
}

// Certification is one professional credential. The Name field never
// carries issuer/date/number text; leaked substrings are split out into
// the dedicated fields during cleaning.
type Certification struct {
	Name                string `json:"name"`
	IssuedBy            string `json:"issuedBy"`
	DateObtained        string `json:"dateObtained"`
	CertificationNumber string `json:"certificationNumber"`
	ExpirationDate      string `json:"expirationDate"`
}

// SkillCategory is one named group of skills, optionally nested.
type SkillCategory struct {
	CategoryName  string        `json:"categoryName"`
	Skills        []string      `json:"skills"`
	SubCategories []SubCategory `json:"subCategories"`
}

// SubCategory is a nested skill group inside a SkillCategory.
type SubCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

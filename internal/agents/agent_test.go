package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/llm"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// fakeExtractor returns a canned response or error and records the prompts
// it was called with.
type fakeExtractor struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
	lastTier   llm.ModelTier
}

func (f *fakeExtractor) ExtractJSON(_ context.Context, systemPrompt, userPrompt string, tier llm.ModelTier) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	f.lastTier = tier
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestAgentProcessHeader(t *testing.T) {
	ext := &fakeExtractor{response: `{"name": "  Jane Doe ", "title": "Engineer"}`}
	agent, err := New(AgentHeader, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "Jane Doe\nEngineer")
	require.True(t, result.Success)
	assert.Equal(t, AgentHeader, result.AgentType)

	data, ok := result.Data.(*HeaderData)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", data.Name)
	assert.Equal(t, "Engineer", data.Title)
	assert.GreaterOrEqual(t, result.ProcessingTimeSeconds, 0.0)
}

func TestAgentPromptsCarrySchemaAndSession(t *testing.T) {
	ext := &fakeExtractor{response: `{"name": "Jane"}`}
	agent, err := New(AgentHeader, ext)
	require.NoError(t, err)

	agent.Process(context.Background(), "some resume text")

	assert.Contains(t, ext.lastSystem, "specialized resume extraction agent")
	assert.Contains(t, ext.lastSystem, "personal information")
	assert.Contains(t, ext.lastSystem, `"requisitionNumber"`)
	assert.Contains(t, ext.lastUser, "Agent Session: AGENT_HEADER_")
	assert.Contains(t, ext.lastUser, "some resume text")
	assert.Equal(t, llm.TierLite, ext.lastTier)
}

func TestAgentProcessFailureIsContained(t *testing.T) {
	ext := &fakeExtractor{err: errors.New("rate limited")}
	agent, err := New(AgentCertifications, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "text")
	assert.False(t, result.Success)
	assert.Equal(t, "rate limited", result.ErrorMessage)
	assert.Nil(t, result.Data)
}

func TestAgentProcessBadJSONIsContained(t *testing.T) {
	ext := &fakeExtractor{response: `{"name": `}
	agent, err := New(AgentHeader, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "text")
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "JSON parsing failed")
}

func TestAgentProcessSummaryStripsBullets(t *testing.T) {
	ext := &fakeExtractor{response: `{
		"professionalSummary": ["• Ten years of backend work", "- Led three teams"],
		"summarySections": [{"title": "Areas of Expertise", "content": ["• Distributed systems"]}]
	}`}
	agent, err := New(AgentSummary, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "text")
	require.True(t, result.Success)

	data := result.Data.(*SummaryData)
	assert.Equal(t, []string{"Ten years of backend work", "Led three teams"}, data.ProfessionalSummary)
	assert.Equal(t, []string{"Distributed systems"}, data.SummarySections[0].Content)
}

func TestAgentProcessExperienceNormalizes(t *testing.T) {
	ext := &fakeExtractor{response: `{
		"employmentHistory": [{
			"companyName": "Acme Corp",
			"roleName": "Engineer",
			"workPeriod": "January 2020 - Present",
			"location": "Hyderabad, Telangana, India",
			"responsibilities": ["• Built services"],
			"keyTechnologies": "Go"
		}]
	}`}
	agent, err := New(AgentExperience, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "text")
	require.True(t, result.Success)

	data := result.Data.(*ExperienceData)
	require.Len(t, data.EmploymentHistory, 1)
	job := data.EmploymentHistory[0]
	assert.Equal(t, "Jan 2020 - Till Date", job.WorkPeriod)
	assert.Equal(t, "Hyderabad, India", job.Location)
	assert.Equal(t, []string{"Built services"}, job.Responsibilities)
	assert.Equal(t, llm.TierStandard, ext.lastTier)
}

func TestAgentProcessExperienceProjectRules(t *testing.T) {
	ext := &fakeExtractor{response: `{
		"employmentHistory": [{
			"companyName": "Acme Corp",
			"workPeriod": "Jun 2020 - Dec 2021",
			"location": "Dallas, TX",
			"responsibilities": ["General duty"],
			"keyTechnologies": "Go, SQL",
			"projects": [{
				"projectName": "Project 1: Billing",
				"projectResponsibilities": ["• Shipped billing"],
				"keyTechnologies": "Go",
				"period": "Jun 2020 - Dec 2021"
			}]
		}]
	}`}
	agent, err := New(AgentExperience, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "Acme Corp\nShipped billing for enterprise customers")
	require.True(t, result.Success)

	job := result.Data.(*ExperienceData).EmploymentHistory[0]
	assert.Empty(t, job.Responsibilities, "projects force job-level responsibilities empty")
	assert.Equal(t, "", job.KeyTechnologies)
	assert.Equal(t, "", job.Projects[0].Period, "period identical to workPeriod is cleared")
	assert.Equal(t, []string{"Shipped billing"}, job.Projects[0].ProjectResponsibilities)
}

func TestAgentProcessExperienceDropsFabricatedProjects(t *testing.T) {
	ext := &fakeExtractor{response: `{
		"employmentHistory": [{
			"companyName": "Acme Corp",
			"workPeriod": "Jun 2020 - Dec 2021",
			"location": "Dallas, TX",
			"projects": [{
				"projectName": "Project 1: Quantum Blockchain Synergy Platform",
				"projectResponsibilities": ["Delivered synergy"],
				"keyTechnologies": "Go"
			}, {
				"projectName": "Project 2: Billing Migration",
				"projectResponsibilities": ["Migrated billing"],
				"keyTechnologies": "Go"
			}, {
				"projectName": "Internal Tooling Revamp",
				"projectResponsibilities": ["Rebuilt tooling"],
				"keyTechnologies": "Go"
			}]
		}]
	}`}
	agent, err := New(AgentExperience, ext)
	require.NoError(t, err)

	sourceText := "Acme Corp\nLed the billing migration and day-to-day platform work."
	result := agent.Process(context.Background(), sourceText)
	require.True(t, result.Success)

	job := result.Data.(*ExperienceData).EmploymentHistory[0]
	require.Len(t, job.Projects, 2, "numbered project with no title terms in the source text is dropped")
	assert.Equal(t, "Project 2: Billing Migration", job.Projects[0].ProjectName)
	assert.Equal(t, "Internal Tooling Revamp", job.Projects[1].ProjectName,
		"non-numbered names are kept regardless of overlap")
}

func TestAgentProcessExperienceCoercion(t *testing.T) {
	t.Run("bare object becomes single-element list", func(t *testing.T) {
		ext := &fakeExtractor{response: `{"employmentHistory": {"companyName": "Acme", "workPeriod": "Jan 2020 - Dec 2020", "location": "Dallas, TX"}}`}
		agent, err := New(AgentExperience, ext)
		require.NoError(t, err)

		result := agent.Process(context.Background(), "text")
		require.True(t, result.Success)
		data := result.Data.(*ExperienceData)
		require.Len(t, data.EmploymentHistory, 1)
		assert.Equal(t, "Acme", data.EmploymentHistory[0].CompanyName)
	})

	t.Run("string is discarded", func(t *testing.T) {
		ext := &fakeExtractor{response: `{"employmentHistory": "no history found"}`}
		agent, err := New(AgentExperience, ext)
		require.NoError(t, err)

		result := agent.Process(context.Background(), "text")
		require.True(t, result.Success)
		assert.Empty(t, result.Data.(*ExperienceData).EmploymentHistory)
	})

	t.Run("malformed element skipped", func(t *testing.T) {
		ext := &fakeExtractor{response: `{"employmentHistory": [{"companyName": "Acme"}, "garbage", {"companyName": "Beta"}]}`}
		agent, err := New(AgentExperience, ext)
		require.NoError(t, err)

		result := agent.Process(context.Background(), "text")
		require.True(t, result.Success)
		data := result.Data.(*ExperienceData)
		require.Len(t, data.EmploymentHistory, 2)
		assert.Equal(t, "Acme", data.EmploymentHistory[0].CompanyName)
		assert.Equal(t, "Beta", data.EmploymentHistory[1].CompanyName)
	})
}

func TestAgentProcessEducationSortsAscending(t *testing.T) {
	ext := &fakeExtractor{response: `{
		"education": [
			{"degree": "MTech", "school": "IIT", "date": "2018"},
			{"degree": "BTech", "school": "JNTU", "date": "2014", "location": "Hyderabad, Telangana, India"}
		]
	}`}
	agent, err := New(AgentEducation, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "text")
	require.True(t, result.Success)

	data := result.Data.(*EducationData)
	require.Len(t, data.Education, 2)
	assert.Equal(t, "BS", data.Education[0].Degree)
	assert.Equal(t, "Hyderabad, India", data.Education[0].Location)
	assert.Equal(t, "MS", data.Education[1].Degree)
}

func TestAgentProcessSkillsDefaults(t *testing.T) {
	ext := &fakeExtractor{response: `{
		"skillCategories": [{"categoryName": "Languages", "skills": ["Go", "Python"]}]
	}`}
	agent, err := New(AgentSkills, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "text")
	require.True(t, result.Success)

	data := result.Data.(*SkillsData)
	assert.NotNil(t, data.TechnicalSkills)
	require.Len(t, data.SkillCategories, 1)
	assert.NotNil(t, data.SkillCategories[0].SubCategories, "subCategories defaults to empty list")
	assert.Empty(t, data.SkillCategories[0].SubCategories)
}

func TestAgentProcessCertificationsRepair(t *testing.T) {
	ext := &fakeExtractor{response: `{
		"certifications": [
			{"name": "AWS Solutions Architect, Issued by Amazon, Obtained Jan 2023"},
			{"name": "   "}
		]
	}`}
	agent, err := New(AgentCertifications, ext)
	require.NoError(t, err)

	result := agent.Process(context.Background(), "text")
	require.True(t, result.Success)

	data := result.Data.(*CertificationsData)
	require.Len(t, data.Certifications, 1)
	cert := data.Certifications[0]
	assert.Equal(t, "AWS Solutions Architect", cert.Name)
	assert.Equal(t, "Amazon", cert.IssuedBy)
	assert.Equal(t, "Jan 2023", cert.DateObtained)
}

func TestLocationFromCompanyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp - Dallas, TX", "Dallas, TX"},
		{"Acme Corp, Dallas, TX", "Dallas, TX"},
		{"Acme Corp | Hyderabad, India", "Hyderabad, India"},
		{"Acme Corp", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, locationFromCompanyName(tt.in), "input %q", tt.in)
	}
}

func TestAgentSectionKeysAndTiers(t *testing.T) {
	assert.Equal(t, types.SectionHeader, AgentHeader.SectionKey())
	assert.Equal(t, types.SectionCertifications, AgentCertifications.SectionKey())
	assert.Equal(t, llm.TierLite, AgentSummary.Tier())
	assert.Equal(t, llm.TierStandard, AgentEducation.Tier())
	assert.Len(t, AllAgentTypes, 6)
}

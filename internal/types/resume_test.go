package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeRecord_NoNullCollections(t *testing.T) {
	record := NewResumeRecord()

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	arrayFields := []string{
		"professionalSummary", "summarySections", "subsections",
		"employmentHistory", "education", "certifications", "skillCategories",
	}
	for _, field := range arrayFields {
		assert.Equal(t, "[]", string(decoded[field]), "%s should serialize as an empty array", field)
	}
	assert.Equal(t, "{}", string(decoded["technicalSkills"]), "technicalSkills should serialize as an empty object")
}

func TestResumeRecord_RoundTrip(t *testing.T) {
	record := NewResumeRecord()
	record.Name = "Jane Doe"
	record.Title = "Senior Engineer"
	record.EmploymentHistory = []JobEntry{
		{
			CompanyName:      "Acme Corp",
			RoleName:         "Engineer",
			WorkPeriod:       "Jan 2020 - Present",
			Responsibilities: []string{"Built services"},
			Projects: []Project{
				{ProjectName: "Payments", KeyTechnologies: "Go, Postgres", Period: "2021"},
			},
		},
	}
	record.Certifications = []Certification{
		{Name: "AWS Solutions Architect", IssuedBy: "Amazon", DateObtained: "Mar 2022"},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded ResumeRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Jane Doe", decoded.Name)
	require.Len(t, decoded.EmploymentHistory, 1)
	assert.Equal(t, "Acme Corp", decoded.EmploymentHistory[0].CompanyName)
	require.Len(t, decoded.EmploymentHistory[0].Projects, 1)
	assert.Equal(t, "Payments", decoded.EmploymentHistory[0].Projects[0].ProjectName)
	require.Len(t, decoded.Certifications, 1)
	assert.Equal(t, "Amazon", decoded.Certifications[0].IssuedBy)
}

func TestJobEntry_SubsectionsOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(JobEntry{CompanyName: "Acme Corp"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "subsections")

	data, err = json.Marshal(JobEntry{
		CompanyName: "Acme Corp",
		Subsections: []SummarySection{{Title: "Highlights", Content: []string{"Led a team"}}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subsections"`)
}

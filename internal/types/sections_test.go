package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionMap_SetGetKeys(t *testing.T) {
	m := NewSectionMap()

	_, ok := m.Get(SectionHeader)
	assert.False(t, ok, "missing key should report not detected")
	assert.Equal(t, 0, m.Len())

	m.Set(SectionSkills, "Go, SQL")
	m.Set(SectionHeader, "Jane Doe")

	text, ok := m.Get(SectionHeader)
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", text)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []SectionKey{SectionSkills, SectionHeader}, m.Keys(), "insertion order preserved")

	// Overwriting must not duplicate the key in the order
	m.Set(SectionHeader, "Jane A. Doe")
	assert.Equal(t, 2, m.Len())
	text, _ = m.Get(SectionHeader)
	assert.Equal(t, "Jane A. Doe", text)
}

func TestSectionMap_Reorder(t *testing.T) {
	m := NewSectionMap()
	m.Set(SectionSkills, "skills")
	m.Set(SectionUncategorized, "extra")
	m.Set(SectionHeader, "header")
	m.Set(SectionExperience, "experience")

	m.Reorder()

	assert.Equal(t,
		[]SectionKey{SectionHeader, SectionExperience, SectionSkills, SectionUncategorized},
		m.Keys(),
		"standard sections in canonical order, non-standard keys after")

	// Idempotent
	m.Reorder()
	assert.Equal(t,
		[]SectionKey{SectionHeader, SectionExperience, SectionSkills, SectionUncategorized},
		m.Keys())
}

func TestSectionMap_ReorderEmpty(t *testing.T) {
	m := NewSectionMap()
	m.Reorder()
	assert.Empty(t, m.Keys())
}

func TestSectionMap_MarshalJSON(t *testing.T) {
	m := NewSectionMap()
	m.Set(SectionSummary, "A summary.")
	m.Set(SectionHeader, "Jane Doe")
	m.Reorder()
	m.Integrity[SectionHeader] = IntegrityRecord{
		RawSliceChars:        8,
		RawSliceTrimmedChars: 8,
		ExtractedChars:       8,
		SegmentCount:         1,
		Status:               "ok",
	}
	m.Warnings = []string{"summary: extracted 10 chars from a 12 char slice"}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	// Keys must appear in canonical order, integrity metadata last
	assert.Regexp(t, `^\{"header":.*"summary":.*"integrity_check":.*"integrity_warning":.*\}$`, string(data))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "header")
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "integrity_check")
	assert.Contains(t, decoded, "integrity_warning")
}

func TestSectionMap_MarshalJSONOmitsEmptyIntegrity(t *testing.T) {
	m := NewSectionMap()
	m.Set(SectionHeader, "Jane Doe")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"header":"Jane Doe"}`, string(data))
}

func TestStandardSectionOrder(t *testing.T) {
	assert.Equal(t, []SectionKey{
		SectionHeader,
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionCertifications,
	}, StandardSectionOrder)
	assert.Equal(t, StandardSectionOrder, DefaultSections)
}

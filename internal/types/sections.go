package types

import (
	"bytes"
	"encoding/json"
)

// SectionKey identifies one of the fixed resume categories produced by the
// chunker. The set is closed: adding a key means touching every exhaustive
// switch over it (schema lookup, prompt addendum, cleaning, merge).
type SectionKey string

const (
	SectionHeader         SectionKey = "header"
	SectionSummary        SectionKey = "summary"
	SectionExperience     SectionKey = "experience"
	SectionEducation      SectionKey = "education"
	SectionSkills         SectionKey = "skills"
	SectionCertifications SectionKey = "certifications"

	// SectionUncategorized holds the whole document when no heading was
	// detected at all.
	SectionUncategorized SectionKey = "Uncategorized"
)

// StandardSectionOrder is the canonical presentation order for sections.
var StandardSectionOrder = []SectionKey{
	SectionHeader,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
}

// DefaultSections lists the section keys the chunker looks for by default.
var DefaultSections = []SectionKey{
	SectionHeader,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
}

// IntegrityRecord tracks the per-section character accounting produced
// while slicing the document. A "warn" status flags a boundary mismatch,
// not a hard failure.
type IntegrityRecord struct {
	RawSliceChars        int    `json:"raw_slice_chars"`
	RawSliceTrimmedChars int    `json:"raw_slice_trimmed_chars"`
	ExtractedChars       int    `json:"extracted_chars"`
	SegmentCount         int    `json:"segment_count"`
	Status               string `json:"status"`
}

// SectionMap is the chunker's output: detected section text keyed by
// SectionKey, preserving insertion order so it can be rendered in the
// canonical order after Reorder. A key absent from the map means the
// section was not detected (never an empty string).
type SectionMap struct {
	order    []SectionKey
	sections map[SectionKey]string

	Integrity map[SectionKey]IntegrityRecord
	Warnings  []string
}

// NewSectionMap returns an empty SectionMap.
func NewSectionMap() *SectionMap {
	return &SectionMap{
		sections:  make(map[SectionKey]string),
		Integrity: make(map[SectionKey]IntegrityRecord),
	}
}

// Set stores text for a key, appending the key to the order on first use.
func (m *SectionMap) Set(key SectionKey, text string) {
	if _, exists := m.sections[key]; !exists {
		m.order = append(m.order, key)
	}
	m.sections[key] = text
}

// Get returns the text for a key and whether the section was detected.
func (m *SectionMap) Get(key SectionKey) (string, bool) {
	text, ok := m.sections[key]
	return text, ok
}

// Keys returns the section keys in their current order.
func (m *SectionMap) Keys() []SectionKey {
	keys := make([]SectionKey, len(m.order))
	copy(keys, m.order)
	return keys
}

// Len returns the number of detected sections.
func (m *SectionMap) Len() int {
	return len(m.order)
}

// Reorder rewrites the key order to the canonical sequence: standard
// sections first, then any non-standard keys in their original relative
// order. Idempotent.
func (m *SectionMap) Reorder() {
	if len(m.order) == 0 {
		return
	}

	inStandard := make(map[SectionKey]bool, len(StandardSectionOrder))
	reordered := make([]SectionKey, 0, len(m.order))
	for _, key := range StandardSectionOrder {
		inStandard[key] = true
		if _, ok := m.sections[key]; ok {
			reordered = append(reordered, key)
		}
	}
	for _, key := range m.order {
		if !inStandard[key] {
			reordered = append(reordered, key)
		}
	}
	m.order = reordered
}

// MarshalJSON renders the map as an ordered JSON object with the integrity
// metadata last, matching the shape persisted as a run artifact.
func (m *SectionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(name string, value interface{}) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		nameJSON, err := json.Marshal(name)
		if err != nil {
			return err
		}
		valueJSON, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(nameJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
		return nil
	}

	for _, key := range m.order {
		if err := writeField(string(key), m.sections[key]); err != nil {
			return nil, err
		}
	}
	if len(m.Integrity) > 0 {
		if err := writeField("integrity_check", m.Integrity); err != nil {
			return nil, err
		}
	}
	if len(m.Warnings) > 0 {
		if err := writeField("integrity_warning", m.Warnings); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

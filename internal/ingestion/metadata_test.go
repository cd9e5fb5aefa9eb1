package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONRoundTrip(t *testing.T) {
	metadata := &Metadata{
		SourceFile: "resume.pdf",
		Format:     "pdf",
		Timestamp:  "2024-01-01T00:00:00Z",
		Hash:       "abcd1234",
		CharCount:  42,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
}

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("some resume text", "resume.docx", FormatDOCX)

	assert.Equal(t, "resume.docx", metadata.SourceFile)
	assert.Equal(t, "docx", metadata.Format)
	assert.Len(t, metadata.Hash, 64)
	assert.Equal(t, len("some resume text"), metadata.CharCount)

	parsed, err := time.Parse(time.RFC3339, metadata.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestNewMetadata_HashDependsOnContent(t *testing.T) {
	m1 := NewMetadata("content one", "a.txt", FormatText)
	m2 := NewMetadata("content two", "a.txt", FormatText)
	assert.NotEqual(t, m1.Hash, m2.Hash)
}

package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes an ingested resume document.
type Metadata struct {
	SourceFile string `json:"source_file,omitempty"`
	Format     string `json:"format,omitempty"`
	Timestamp  string `json:"timestamp"` // RFC3339
	Hash       string `json:"hash"`      // SHA256 hex digest of the extracted text
	CharCount  int    `json:"char_count"`
}

// NewMetadata creates a Metadata instance for extracted resume text.
func NewMetadata(content string, sourceFile string, format Format) *Metadata {
	return &Metadata{
		SourceFile: sourceFile,
		Format:     string(format),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		CharCount:  len(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

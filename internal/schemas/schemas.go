// Package schemas embeds the per-agent JSON Schemas and provides
// validation of extracted JSON against them. The schemas serve double
// duty: their text is injected into agent prompts as extraction guidance,
// and the same document is used for post-hoc validation of the model's
// output.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed agents/*.json
var agentSchemas embed.FS

// ForAgent returns the JSON Schema document for an agent name
// (header, summary, experience, education, skills, certifications).
func ForAgent(name string) (string, error) {
	data, err := agentSchemas.ReadFile("agents/" + name + ".json")
	if err != nil {
		return "", fmt.Errorf("no schema for agent %q: %w", name, err)
	}
	return string(data), nil
}

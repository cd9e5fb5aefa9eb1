// Package prompts serves the extraction-agent prompt templates. The
// templates live in agents.json, embedded at compile time and parsed once:
// a base system prompt, one focus instruction per agent, and the
// user-message scaffolding around the resume text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed agents.json
var promptFile embed.FS

var (
	loadOnce  sync.Once
	templates map[string]string
	loadErr   error
)

func load() {
	data, err := promptFile.ReadFile("agents.json")
	if err != nil {
		loadErr = fmt.Errorf("failed to read prompt file agents.json: %w", err)
		return
	}
	if err := json.Unmarshal(data, &templates); err != nil {
		loadErr = fmt.Errorf("failed to parse prompt file agents.json: %w", err)
	}
}

// Get retrieves a prompt template by key, e.g. "base-system" or
// "focus-experience".
func Get(key string) (string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", loadErr
	}

	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in agents.json", key)
	}
	return template, nil
}

// MustGet retrieves a prompt template by key, panicking if it is missing.
// Agent construction depends on these templates existing; a missing key is
// a build defect, not a runtime condition.
func MustGet(key string) string {
	template, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}

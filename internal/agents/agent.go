package agents

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/prompts"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/schemas"
)

// Agent is one extraction task bound to a single section and schema.
type Agent struct {
	agentType AgentType
	extractor Extractor
	schema    string
}

// New builds an agent for the given section. Fails only if no schema is
// embedded for the agent type.
func New(agentType AgentType, extractor Extractor) (*Agent, error) {
	schema, err := schemas.ForAgent(string(agentType))
	if err != nil {
		return nil, err
	}
	return &Agent{
		agentType: agentType,
		extractor: extractor,
		schema:    schema,
	}, nil
}

// Type returns the agent's section type.
func (a *Agent) Type() AgentType {
	return a.agentType
}

// Process extracts this agent's section from inputText. All failures are
// converted into a failed AgentResult; Process never returns an error.
func (a *Agent) Process(ctx context.Context, inputText string) AgentResult {
	start := time.Now()
	log.Printf("%s agent: starting extraction (input: %d chars)", a.agentType, len(inputText))

	raw, err := a.extractor.ExtractJSON(ctx, a.systemPrompt(), a.userPrompt(inputText), a.agentType.Tier())
	if err != nil {
		log.Printf("%s agent: extraction call failed: %v", a.agentType, err)
		return a.errorResult(start, err.Error())
	}

	// Schema violations are logged, not fatal: the cleaning step re-asserts
	// the format invariants deterministically.
	if verr := schemas.ValidateAgentOutput(string(a.agentType), raw); verr != nil {
		log.Printf("%s agent: output deviates from schema: %v", a.agentType, verr)
	}

	data, err := cleanAgentData(a.agentType, raw, inputText)
	if err != nil {
		log.Printf("%s agent: JSON parsing error: %v", a.agentType, err)
		return a.errorResult(start, fmt.Sprintf("JSON parsing failed: %v", err))
	}

	elapsed := time.Since(start).Seconds()
	log.Printf("%s agent: extraction successful (%.2fs)", a.agentType, elapsed)
	return AgentResult{
		AgentType:             a.agentType,
		Data:                  data,
		Success:               true,
		ProcessingTimeSeconds: elapsed,
	}
}

func (a *Agent) systemPrompt() string {
	base := prompts.MustGet("base-system")
	focus := prompts.MustGet("focus-"+string(a.agentType))
	return prompts.Format(base, map[string]string{
		"Focus":  focus,
		"Schema": a.schema,
	})
}

// userPrompt prefixes the instruction with a uniqueness-injecting preamble
// so repeated runs over the same text are never served from a response
// cache.
func (a *Agent) userPrompt(inputText string) string {
	instruction := prompts.Format(prompts.MustGet("user-instruction"), map[string]string{
		"Section":   string(a.agentType),
		"InputText": inputText,
	})
	session := fmt.Sprintf("AGENT_%s_%d_%s",
		strings.ToUpper(string(a.agentType)), time.Now().UnixMilli(), uuid.NewString()[:8])
	preamble := prompts.Format(prompts.MustGet("cache-preamble"), map[string]string{
		"Session":   session,
		"Agent":     string(a.agentType),
		"Timestamp": time.Now().Format(time.RFC3339),
	})
	return preamble + instruction
}

func (a *Agent) errorResult(start time.Time, message string) AgentResult {
	return AgentResult{
		AgentType:             a.agentType,
		Data:                  nil,
		Success:               false,
		ErrorMessage:          message,
		ProcessingTimeSeconds: time.Since(start).Seconds(),
	}
}

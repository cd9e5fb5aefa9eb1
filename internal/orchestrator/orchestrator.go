// Package orchestrator fans the extraction agents out over a chunked
// resume, gathers their results tolerating partial failure, and merges the
// cleaned section data into one canonical ResumeRecord.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/agents"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/chunker"
	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// Input strategy labels reported per agent.
const (
	StrategyChunkedSection     = "chunked_section"
	StrategyChunkedWithContext = "chunked_with_context"
	StrategyFullResumeAlways   = "full_resume_always"
	StrategyFullResumeFallback = "full_resume_fallback"
)

// headerContextChars is how much of the document head the header agent
// receives alongside its chunked section.
const headerContextChars = 1000

// ProgressEvent is one streaming update during a pipeline run. A run emits
// intermediate events and terminates with exactly one final_data or one
// error event.
type ProgressEvent struct {
	Type              string              `json:"type"`
	Message           string              `json:"message"`
	Progress          int                 `json:"progress,omitempty"`
	Sections          []string            `json:"sections,omitempty"`
	Agents            []string            `json:"agents,omitempty"`
	InputStrategy     map[string]string   `json:"input_strategy,omitempty"`
	FailedAgents      []string            `json:"failed_agents,omitempty"`
	Data              *types.ResumeRecord `json:"data,omitempty"`
	ProcessingSummary *ProcessingSummary  `json:"processing_summary,omitempty"`
	Timestamp         string              `json:"timestamp"`
}

// ProcessingSummary counts agent outcomes for the terminal event.
type ProcessingSummary struct {
	SuccessfulAgents int `json:"successful_agents"`
	FailedAgents     int `json:"failed_agents"`
}

// ProgressCallback is called for each progress event during a run.
type ProgressCallback func(event ProgressEvent)

// Orchestrator runs the multi-agent extraction pipeline.
type Orchestrator struct {
	extractor  agents.Extractor
	chunker    *chunker.Chunker
	OnProgress ProgressCallback
}

// New builds an orchestrator around the given extraction capability.
func New(extractor agents.Extractor) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		chunker:   chunker.New(nil, nil),
	}
}

func (o *Orchestrator) emit(event ProgressEvent) {
	if o.OnProgress != nil {
		event.Timestamp = time.Now().Format(time.RFC3339)
		o.OnProgress(event)
	}
}

// ProcessResume runs the full pipeline over raw resume text. It returns
// the merged record, or an error only when something outside the agent
// boundaries fails; per-agent failures leave their sections empty and do
// not fail the run.
func (o *Orchestrator) ProcessResume(ctx context.Context, rawText string) (*types.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		o.emitError(fmt.Sprintf("Multi-agent processing failed: %v", err))
		return nil, err
	}

	log.Printf("multi-agent resume processing: starting parallel extraction")

	o.emit(ProgressEvent{
		Type:     "agent_processing_start",
		Message:  "Initializing specialized AI agents...",
		Progress: 15,
	})

	o.emit(ProgressEvent{
		Type:     "chunking_start",
		Message:  "Chunking resume into sections...",
		Progress: 18,
	})

	sections := o.safeChunk(rawText)
	sections.Reorder()
	sectionKeys := sections.Keys()
	log.Printf("chunked sections available: %v", sectionKeys)

	o.emit(ProgressEvent{
		Type:     "chunking_complete",
		Message:  fmt.Sprintf("Resume chunked into %d sections. Preparing agent inputs...", sections.Len()),
		Progress: 22,
		Sections: sectionKeyStrings(sectionKeys),
	})

	agentSet := make([]*agents.Agent, 0, len(agents.AllAgentTypes))
	agentNames := make([]string, 0, len(agents.AllAgentTypes))
	for _, agentType := range agents.AllAgentTypes {
		agent, err := agents.New(agentType, o.extractor)
		if err != nil {
			o.emitError(fmt.Sprintf("Multi-agent processing failed: %v", err))
			return nil, fmt.Errorf("creating %s agent: %w", agentType, err)
		}
		agentSet = append(agentSet, agent)
		agentNames = append(agentNames, string(agentType))
	}

	o.emit(ProgressEvent{
		Type:     "agents_created",
		Message:  fmt.Sprintf("Created %d specialized agents. Preparing intelligent inputs...", len(agentSet)),
		Progress: 25,
		Agents:   agentNames,
	})

	inputs, strategy := buildAgentInputs(sections, rawText)

	o.emit(ProgressEvent{
		Type:          "inputs_prepared",
		Message:       "Agent inputs prepared with intelligent chunking. Starting parallel processing...",
		Progress:      28,
		InputStrategy: strategy,
	})

	// Fan out. Agents convert their own failures into failed results, so
	// no goroutine returns an error and no sibling is ever cancelled.
	results := make([]agents.AgentResult, len(agentSet))
	g, gCtx := errgroup.WithContext(ctx)
	for i, agent := range agentSet {
		g.Go(func() error {
			results[i] = agent.Process(gCtx, inputs[agent.Type()])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.emitError(fmt.Sprintf("Multi-agent processing failed: %v", err))
		return nil, err
	}

	o.emit(ProgressEvent{
		Type:     "agents_completed",
		Message:  "All agents completed processing. Combining results...",
		Progress: 75,
	})

	var succeeded []agents.AgentResult
	var failed []string
	for _, result := range results {
		if result.Success {
			succeeded = append(succeeded, result)
		} else {
			failed = append(failed, fmt.Sprintf("%s: %s", result.AgentType, result.ErrorMessage))
		}
	}

	record := mergeResults(succeeded)

	if len(failed) > 0 {
		log.Printf("some agents failed: %v", failed)
		o.emit(ProgressEvent{
			Type:         "partial_failure",
			Message:      fmt.Sprintf("Warning: %d agents failed, but processing continued", len(failed)),
			FailedAgents: failed,
		})
	}

	o.emit(ProgressEvent{
		Type:     "final_data",
		Message:  "Multi-agent processing completed successfully!",
		Progress: 95,
		Data:     record,
		ProcessingSummary: &ProcessingSummary{
			SuccessfulAgents: len(succeeded),
			FailedAgents:     len(failed),
		},
	})

	return record, nil
}

// safeChunk never lets a chunking panic escape: a failure degrades to an
// empty section map, which sends every agent down its full-text fallback.
func (o *Orchestrator) safeChunk(rawText string) (result *types.SectionMap) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("chunking failed: %v - using full resume for all agents", r)
			result = types.NewSectionMap()
		}
	}()
	return o.chunker.Chunk(rawText)
}

func (o *Orchestrator) emitError(message string) {
	o.emit(ProgressEvent{
		Type:    "error",
		Message: message,
	})
}

// buildAgentInputs assigns each agent its input text and records the
// strategy used. The certifications agent always gets the full text since
// certification tables can appear anywhere; the header agent gets the
// document head as context alongside its section.
func buildAgentInputs(sections *types.SectionMap, rawText string) (map[agents.AgentType]string, map[string]string) {
	inputs := make(map[agents.AgentType]string, len(agents.AllAgentTypes))
	strategy := make(map[string]string, len(agents.AllAgentTypes))

	for _, agentType := range agents.AllAgentTypes {
		if agentType == agents.AgentCertifications {
			inputs[agentType] = rawText
			strategy[string(agentType)] = StrategyFullResumeAlways
			continue
		}

		content, ok := sections.Get(agentType.SectionKey())
		content = strings.TrimSpace(content)
		if !ok || content == "" {
			inputs[agentType] = rawText
			strategy[string(agentType)] = StrategyFullResumeFallback
			log.Printf("%s agent: section missing/empty, using full resume", agentType)
			continue
		}

		if agentType == agents.AgentHeader {
			contextText := rawText
			if len(contextText) > headerContextChars {
				contextText = contextText[:headerContextChars]
			}
			inputs[agentType] = contextText + "\n\n--- HEADER SECTION ---\n" + content
			strategy[string(agentType)] = StrategyChunkedWithContext
		} else {
			inputs[agentType] = content
			strategy[string(agentType)] = StrategyChunkedSection
		}
		log.Printf("%s agent: using chunked section (%d chars)", agentType, len(content))
	}

	return inputs, strategy
}

func sectionKeyStrings(keys []types.SectionKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

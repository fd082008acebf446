package llm

import (
	"context"
)

// Provider defines the interface for LLM providers.
// A request with an OutputSchema MUST come back as JSON matching it; without one
// the provider returns plain text.
type Provider interface {
	// Generate runs a single non-streaming completion
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model         string
	InputArray    []map[string]any
	ReasoningMode string
	SystemPrompt  string
	// Structured output schema; nil requests free text
	OutputSchema *OutputSchema
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
}

// TokenUsage is the provider-neutral token accounting for one call
type TokenUsage struct {
	InputTokens     int `json:"input_tokens"`
	OutputTokens    int `json:"output_tokens"`
	ReasoningTokens int `json:"reasoning_tokens"`
	TotalTokens     int `json:"total_tokens"`
}

// AsMap returns the usage in the shape the logger and tracing helpers expect
func (u TokenUsage) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"input_tokens":     u.InputTokens,
		"output_tokens":    u.OutputTokens,
		"reasoning_tokens": u.ReasoningTokens,
		"total_tokens":     u.TotalTokens,
	}
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	RawOutput string     `json:"-"` // JSON text when a schema was requested, plain text otherwise
	Usage     TokenUsage `json:"usage"`
	Model     string     `json:"model"`
	Provider  string     `json:"provider"`
}

// UserMessage builds a single user turn for InputArray
func UserMessage(content string) map[string]any {
	return map[string]any{"role": userRole, "content": content}
}

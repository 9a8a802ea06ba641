package completion

import (
	"context"
	"time"
)

// Client issues a single prompt to a language model.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete sends a request and returns the full response.
	// The context controls cancellation and timeouts.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request configures one completion call. Built fresh per call; not reused.
type Request struct {
	// Prompt is the rendered user prompt text.
	Prompt string `json:"prompt"`

	// SystemPrompt overrides the client's default system message.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// MaxTokens limits the response length.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls response randomness (0.0 = deterministic).
	// Nil uses the client's configured default.
	Temperature *float64 `json:"temperature,omitempty"`
}

// Response is the output of a completion call.
type Response struct {
	// Content is the text response from the model.
	Content string `json:"content"`

	// Model is the actual model used (may differ from requested).
	Model string `json:"model"`

	// Usage tracks token consumption for this request.
	Usage TokenUsage `json:"usage"`

	// FinishReason indicates why the model stopped generating.
	// Common values: "stop", "length".
	FinishReason string `json:"finish_reason"`

	// Duration is the time taken for the completion.
	Duration time.Duration `json:"duration"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add combines token usage from another TokenUsage.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}

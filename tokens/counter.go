package tokens

import (
	"unicode/utf8"
)

// DefaultCharsPerToken is the default character-to-token ratio.
// Approximately 4 characters equals 1 token for English text.
const DefaultCharsPerToken = 4.0

// Counter estimates token counts for text.
type Counter interface {
	// Count returns the number of tokens in the given text.
	Count(text string) int

	// FitsInLimit returns true if the text fits within the token limit.
	FitsInLimit(text string, limit int) bool
}

// Codec counts tokens and cuts text at token boundaries.
type Codec interface {
	Counter

	// Truncate returns the longest prefix of text whose token count does
	// not exceed maxTokens.
	Truncate(text string, maxTokens int) string

	// TruncateTail returns the longest suffix of text whose token count
	// does not exceed maxTokens.
	TruncateTail(text string, maxTokens int) string
}

// EstimatingCounter uses a character-to-token ratio for estimation.
// Default ratio is ~4 chars per token.
type EstimatingCounter struct {
	// CharsPerToken is the average characters per token.
	// Default is 4, which works well for English text.
	CharsPerToken float64
}

// NewEstimatingCounter creates a token counter with default settings.
func NewEstimatingCounter() *EstimatingCounter {
	return &EstimatingCounter{
		CharsPerToken: DefaultCharsPerToken,
	}
}

// NewEstimatingCounterWithRatio creates a token counter with a custom ratio.
// If charsPerToken is <= 0, the default ratio (4.0) is used.
func NewEstimatingCounterWithRatio(charsPerToken float64) *EstimatingCounter {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &EstimatingCounter{
		CharsPerToken: charsPerToken,
	}
}

// Count estimates the number of tokens in the given text.
// Actual token counts may vary based on the specific encoding used.
func (c *EstimatingCounter) Count(text string) int {
	// Count runes (Unicode code points) rather than bytes for better accuracy
	runeCount := utf8.RuneCountInString(text)
	tokens := float64(runeCount) / c.CharsPerToken

	// Round to nearest integer
	return int(tokens + 0.5)
}

// FitsInLimit returns true if the text fits within the token limit.
func (c *EstimatingCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// Truncate returns the longest prefix of text estimated to fit in maxTokens.
// Cuts at rune boundaries, the closest approximation of a token boundary
// available without a real encoding.
func (c *EstimatingCounter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if c.FitsInLimit(text, maxTokens) {
		return text
	}

	// Binary search for the longest fitting prefix
	runes := []rune(text)
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high + 1) / 2
		if c.FitsInLimit(string(runes[:mid]), maxTokens) {
			low = mid
		} else {
			high = mid - 1
		}
	}
	return string(runes[:low])
}

// TruncateTail returns the longest suffix of text estimated to fit in maxTokens.
func (c *EstimatingCounter) TruncateTail(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if c.FitsInLimit(text, maxTokens) {
		return text
	}

	runes := []rune(text)
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high) / 2
		if c.FitsInLimit(string(runes[mid:]), maxTokens) {
			high = mid
		} else {
			low = mid + 1
		}
	}
	return string(runes[low:])
}

// EstimateTokens is a convenience function using the default estimator.
func EstimateTokens(text string) int {
	return NewEstimatingCounter().Count(text)
}

// ModelLimits contains context window sizes for common models.
var ModelLimits = map[string]int{
	// OpenAI chat models
	"gpt-4":         8192,
	"gpt-4-32k":     32768,
	"gpt-4o":        128000,
	"gpt-4o-mini":   128000,
	"gpt-3.5-turbo": 16385,

	// Claude models
	"claude-opus-4":     200000,
	"claude-sonnet-4":   200000,
	"claude-3.5-sonnet": 200000,
	"claude-3.5-haiku":  200000,

	// Default fallback
	"default": 8192,
}

// GetModelLimit returns the context window for a model, or a default if not found.
func GetModelLimit(model string) int {
	if limit, ok := ModelLimits[model]; ok {
		return limit
	}
	return ModelLimits["default"]
}

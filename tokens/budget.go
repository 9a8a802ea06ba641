package tokens

// Budget splits a model's context window between prompt and response.
// The invariant Prompt() + Response <= ContextWindow always holds.
type Budget struct {
	// ContextWindow is the maximum combined prompt+response token count
	// a single completion call may use.
	ContextWindow int

	// Response is the default token budget reserved for the response.
	Response int
}

// NewBudget creates a budget for the given context window, reserving
// response tokens for generation. The reservation is clamped so it never
// exceeds the window.
func NewBudget(contextWindow, response int) Budget {
	if contextWindow < 0 {
		contextWindow = 0
	}
	if response < 0 {
		response = 0
	}
	if response > contextWindow {
		response = contextWindow
	}
	return Budget{ContextWindow: contextWindow, Response: response}
}

// Prompt returns the token budget available for prompt text.
func (b Budget) Prompt() int {
	return b.ContextWindow - b.Response
}

// ResponseFor returns the response budget for a prompt of the given size.
// When the prompt leaves less room than the default reservation, the
// response budget shrinks to what remains of the context window.
func (b Budget) ResponseFor(promptTokens int) int {
	remaining := b.ContextWindow - promptTokens
	if remaining < 0 {
		return 0
	}
	if remaining < b.Response {
		return remaining
	}
	return b.Response
}

// FitsPrompt returns true if the token count fits within the prompt budget.
func (b Budget) FitsPrompt(promptTokens int) bool {
	return promptTokens <= b.Prompt()
}

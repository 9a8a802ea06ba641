// Package tokens provides token counting, token-boundary truncation, and
// budget management for LLM prompts.
//
// # Counting
//
// Two codecs are available. Encoder wraps a real BPE encoding by name and is
// exact:
//
//	enc, err := tokens.NewEncoder("cl100k_base")
//	count := enc.Count("Hello, world!")
//
// EstimatingCounter uses the ~4 characters per token rule of thumb when the
// overhead of a real encoding is unacceptable:
//
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Hello, world!")
//
// Both implement Codec, so truncation strategies and summarizers accept
// either interchangeably.
//
// # Truncation
//
// Codec.Truncate returns the longest prefix of a text whose token count does
// not exceed the limit, cutting only at token boundaries:
//
//	short := enc.Truncate(fileContents, 3500)
//
// # Budgets
//
// Budget splits a model's context window between prompt and response:
//
//	budget := tokens.NewBudget(4000, 650)
//	budget.Prompt()           // tokens available for prompt text
//	budget.ResponseFor(3900)  // response budget after a long prompt
package tokens

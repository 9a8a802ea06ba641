package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the encoding used when none is configured.
// cl100k_base covers GPT-3.5/4 and is a close approximation for Claude.
const DefaultEncoding = "cl100k_base"

// EncodingError indicates the named encoding scheme is not recognized.
type EncodingError struct {
	Scheme string
	Err    error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("unknown encoding %q: %v", e.Scheme, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Encoder counts and cuts text using a real BPE encoding.
// Counts are exact and truncation never splits a token.
// Encoder is safe for concurrent use.
type Encoder struct {
	scheme string
	tk     *tiktoken.Tiktoken
}

// NewEncoder creates an encoder for the named encoding scheme
// (e.g. "cl100k_base", "o200k_base", "p50k_base").
// Returns an *EncodingError if the scheme is not recognized.
func NewEncoder(scheme string) (*Encoder, error) {
	if scheme == "" {
		scheme = DefaultEncoding
	}
	tk, err := tiktoken.GetEncoding(scheme)
	if err != nil {
		return nil, &EncodingError{Scheme: scheme, Err: err}
	}
	return &Encoder{scheme: scheme, tk: tk}, nil
}

// NewEncoderForModel creates an encoder using the encoding registered for
// the given model name. Returns an *EncodingError if the model is unknown.
func NewEncoderForModel(model string) (*Encoder, error) {
	tk, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, &EncodingError{Scheme: model, Err: err}
	}
	return &Encoder{scheme: model, tk: tk}, nil
}

// Scheme returns the encoding scheme name.
func (e *Encoder) Scheme() string {
	return e.scheme
}

// Count returns the exact number of tokens in the given text.
func (e *Encoder) Count(text string) int {
	return len(e.tk.Encode(text, nil, nil))
}

// FitsInLimit returns true if the text fits within the token limit.
func (e *Encoder) FitsInLimit(text string, limit int) bool {
	return e.Count(text) <= limit
}

// Truncate returns the longest prefix of text whose token count does not
// exceed maxTokens. The cut always falls on a token boundary.
func (e *Encoder) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	ids := e.tk.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return e.tk.Decode(ids[:maxTokens])
}

// TruncateTail returns the longest suffix of text whose token count does
// not exceed maxTokens. The cut always falls on a token boundary.
func (e *Encoder) TruncateTail(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	ids := e.tk.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return e.tk.Decode(ids[len(ids)-maxTokens:])
}

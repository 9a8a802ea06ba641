package truncate

import "github.com/randalmurphal/readmegen/tokens"

// Strategy defines how text is truncated.
type Strategy int

const (
	// FromEnd removes content from the end (default).
	FromEnd Strategy = iota

	// FromMiddle removes content from the middle, keeping start and end.
	FromMiddle

	// FromStart removes content from the start.
	FromStart
)

// DefaultEndMarker is the default marker for end truncation.
const DefaultEndMarker = "..."

// DefaultMiddleMarker is the default marker for middle truncation.
const DefaultMiddleMarker = "\n...[content truncated]...\n"

// DefaultStartMarker is the default marker for start truncation.
const DefaultStartMarker = "..."

// Truncator truncates text to fit within token limits.
// Cuts fall on the codec's token boundaries.
type Truncator struct {
	codec    tokens.Codec
	strategy Strategy
	marker   string
}

// New creates a truncator with the given codec and strategy.
func New(codec tokens.Codec, strategy Strategy) *Truncator {
	marker := DefaultEndMarker
	if strategy == FromMiddle {
		marker = DefaultMiddleMarker
	}
	return &Truncator{
		codec:    codec,
		strategy: strategy,
		marker:   marker,
	}
}

// NewFromEnd creates a truncator that removes content from the end.
func NewFromEnd(codec tokens.Codec) *Truncator {
	return New(codec, FromEnd)
}

// NewFromMiddle creates a truncator that removes content from the middle.
func NewFromMiddle(codec tokens.Codec) *Truncator {
	return New(codec, FromMiddle)
}

// NewFromStart creates a truncator that removes content from the start.
func NewFromStart(codec tokens.Codec) *Truncator {
	return New(codec, FromStart)
}

// WithMarker sets a custom marker inserted where content was removed.
func (t *Truncator) WithMarker(marker string) *Truncator {
	t.marker = marker
	return t
}

// Truncate reduces the text to fit within the token limit.
// Returns the truncated text and whether truncation occurred.
func (t *Truncator) Truncate(text string, maxTokens int) (string, bool) {
	if t.codec.FitsInLimit(text, maxTokens) {
		return text, false
	}

	switch t.strategy {
	case FromMiddle:
		return t.truncateMiddle(text, maxTokens), true
	case FromStart:
		return t.truncateStart(text, maxTokens), true
	default:
		return t.truncateEnd(text, maxTokens), true
	}
}

// Strategy returns the truncator's strategy.
func (t *Truncator) Strategy() Strategy {
	return t.strategy
}

// Marker returns the truncator's marker.
func (t *Truncator) Marker() string {
	return t.marker
}

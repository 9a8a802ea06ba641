package summarize

import "fmt"

// SummarizationError reports that a single file's summarization failed.
// The pipeline recovers from it by skipping the file.
type SummarizationError struct {
	// Path is the file whose summarization failed.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarize %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SummarizationError) Unwrap() error {
	return e.Err
}

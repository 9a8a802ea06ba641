package pipeline

import "fmt"

// Reason classifies a run-level failure.
type Reason string

// Run-level failure reasons.
const (
	// ReasonNoSummaries: every file failed to summarize.
	ReasonNoSummaries Reason = "no_summaries"

	// ReasonCancelled: the run's context was cancelled.
	ReasonCancelled Reason = "cancelled"

	// ReasonAggregation: a project-wide artifact could not be produced.
	ReasonAggregation Reason = "aggregation_failed"
)

// PipelineError is a run-level failure. No partial artifact set accompanies
// it.
type PipelineError struct {
	Reason Reason
	Err    error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pipeline %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pipeline %s", e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

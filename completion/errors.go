package completion

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for completion operations.
var (
	// ErrUnavailable indicates the API is unavailable (5xx or transport failure).
	ErrUnavailable = errors.New("completion service unavailable")

	// ErrRateLimited indicates the request was rejected by the remote rate limit.
	ErrRateLimited = errors.New("rate limited")

	// ErrContextTooLong indicates the prompt exceeds the model's context window.
	ErrContextTooLong = errors.New("context exceeds maximum length")

	// ErrEmptyResponse indicates the API returned no usable content.
	ErrEmptyResponse = errors.New("empty response")

	// ErrInvalidRequest indicates the request was rejected as malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTimeout indicates the request timed out.
	ErrTimeout = errors.New("request timed out")
)

// Error wraps completion failures with context.
type Error struct {
	Op        string // Operation that failed ("complete", "decode")
	Status    int    // HTTP status code, if any
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient

	// RetryAfter is the server-suggested wait before retrying,
	// taken from the Retry-After header. Zero if absent.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new completion error.
func NewError(op string, status int, err error, retryable bool) *Error {
	return &Error{Op: op, Status: status, Err: err, Retryable: retryable}
}

// IsRetryable checks if an error is likely transient and worth retrying.
func IsRetryable(err error) bool {
	var compErr *Error
	if errors.As(err, &compErr) {
		return compErr.Retryable
	}

	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrTimeout)
}

// retryAfterHint extracts the server-suggested retry delay, if any.
func retryAfterHint(err error) time.Duration {
	var compErr *Error
	if errors.As(err, &compErr) {
		return compErr.RetryAfter
	}
	return 0
}

package prompt

import "errors"

// Sentinel errors for template operations.
var (
	// ErrEmpty is returned when a template string is empty.
	ErrEmpty = errors.New("template is empty")

	// ErrParse is returned when a template fails to parse.
	ErrParse = errors.New("template parse error")

	// ErrExecute is returned when template execution fails.
	ErrExecute = errors.New("template execution error")

	// ErrMissingSlot is returned when a template lacks a required placeholder,
	// or a render call omits a required variable.
	ErrMissingSlot = errors.New("required slot missing")

	// ErrUnknownTemplate is returned for an unrecognized template identifier.
	ErrUnknownTemplate = errors.New("unknown template")
)

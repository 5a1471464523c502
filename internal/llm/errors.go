package llm

import "fmt"

// BackendError represents a transport-level or non-2xx failure from the
// generation backend. It is surfaced to the caller and not retried here.
type BackendError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s backend error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s backend error: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s backend error: %s", e.Provider, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// ParseError reports that generated text failed to yield a valid JSON object
// between its outermost braces. It carries the raw model output so a caller
// can inspect it, re-prompt, or route it for review. It is returned as a
// value, never raised via panic.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

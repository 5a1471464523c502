package render

import "fmt"

// ValidationError reports resume data that cannot be rendered. It is fatal
// for the render attempt but carries no transient cause, so callers should
// not retry.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume validation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

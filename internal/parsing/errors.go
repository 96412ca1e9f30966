package parsing

import "fmt"

// ParseError represents a failure to extract structure from AI text.
// Callers treat it as "unusable output" and switch to a fallback, never
// surfacing it to the user.
type ParseError struct {
	Message string
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

package assistant

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError indicates a missing or malformed request field.
type ValidationError struct {
	Field    string
	Message  string
	Required []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ExtractionError indicates document or audio text extraction failed upstream.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// CompletionError indicates the completion service call failed.
type CompletionError struct {
	Message string
	Cause   error
}

func (e *CompletionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}

// NotFoundError indicates a session, or the requested part of it, does not exist.
type NotFoundError struct {
	What      string
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for session %s", e.What, e.SessionID)
}

// fromValidator converts validator errors into a ValidationError listing the
// offending JSON fields.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "request", Message: err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}

	first := verrs[0]
	message := fmt.Sprintf("%s is required", first.Field())
	if first.Tag() != "required" && first.Tag() != "required_without" {
		message = fmt.Sprintf("%s is invalid", first.Field())
	}
	return &ValidationError{Field: first.Field(), Message: message, Required: fields}
}

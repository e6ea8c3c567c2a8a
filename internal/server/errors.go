package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/interview-assistant/internal/assistant"
)

// errorBody is the envelope for every error response.
type errorBody struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Required []string `json:"required,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *assistant.ValidationError
		notFound   *assistant.NotFoundError
		tooLarge   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the error envelope for err. failure labels server-side
// failures, e.g. "Failed to generate answer".
func (s *Server) handleError(w http.ResponseWriter, err error, failure string) {
	status := HTTPStatus(err)
	body := errorBody{Error: failure, Message: err.Error()}

	var (
		validation *assistant.ValidationError
		notFound   *assistant.NotFoundError
		extraction *assistant.ExtractionError
		completion *assistant.CompletionError
	)
	switch {
	case errors.As(err, &validation):
		body = errorBody{Error: validation.Message, Required: validation.Required}
	case errors.As(err, &notFound):
		body = errorBody{Error: notFoundMessage(notFound.What)}
	case status == http.StatusRequestEntityTooLarge:
		body = errorBody{Error: "File too large", Message: err.Error()}
	case errors.As(err, &extraction) && extraction.Cause != nil:
		body.Message = extraction.Cause.Error()
	case errors.As(err, &completion) && completion.Cause != nil:
		body.Message = completion.Cause.Error()
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[error] %s: %v", failure, err)
	}
	s.jsonResponse(w, status, body)
}

func notFoundMessage(what string) string {
	switch what {
	case "job":
		return "Session or job description not found"
	case "resume":
		return "Session or resume not found"
	default:
		return "Session not found"
	}
}

package speech

import (
	"errors"
	"fmt"
)

// ErrEmptyAudio is returned when no audio bytes were supplied.
var ErrEmptyAudio = errors.New("audio is empty")

// TranscriptionError wraps a failed call to the transcription backend.
type TranscriptionError struct {
	Message string
	Cause   error
}

func (e *TranscriptionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transcription failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transcription failed: %s", e.Message)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

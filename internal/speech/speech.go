// Package speech turns recorded interview questions into text.
package speech

import (
	"context"
	"log"
	"mime"
	"strings"

	"github.com/jonathan/interview-assistant/internal/llm"
	"github.com/jonathan/interview-assistant/internal/prompts"
	"github.com/jonathan/interview-assistant/internal/types"
)

// DefaultMIMEType is what browsers' MediaRecorder produces.
const DefaultMIMEType = "audio/webm"

var questionMarkers = []string{"?", "how", "what", "why", "when", "where", "who", "tell me", "describe", "explain"}

// Transcriber converts audio to text through an llm.Client.
type Transcriber struct {
	client llm.Client
}

// NewTranscriber creates a Transcriber.
func NewTranscriber(client llm.Client) *Transcriber {
	return &Transcriber{client: client}
}

// Transcribe returns the spoken text and whether it looks like a complete question.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (*types.Transcription, error) {
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}

	instruction, err := prompts.Get("speech.json", "transcribe-audio")
	if err != nil {
		return nil, &TranscriptionError{Message: "failed to load transcription prompt", Cause: err}
	}

	mimeType = normalizeMIMEType(mimeType)
	log.Printf("[speech] transcribing %d bytes (%s)", len(audio), mimeType)

	text, err := t.client.Transcribe(ctx, audio, mimeType, instruction)
	if err != nil {
		return nil, &TranscriptionError{Message: "backend call failed", Cause: err}
	}

	return &types.Transcription{
		Text:       text,
		IsQuestion: DetectQuestionEnd(text),
	}, nil
}

// DetectQuestionEnd reports whether text contains a question marker. It is a
// loose substring check, so "whole" matches "who".
func DetectQuestionEnd(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range questionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// normalizeMIMEType drops parameters such as codecs=opus.
func normalizeMIMEType(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil || mediaType == "" || mediaType == "application/octet-stream" {
		return DefaultMIMEType
	}
	return mediaType
}

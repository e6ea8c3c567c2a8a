package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/interview-assistant/internal/llm"
)

// newLLMClient builds the guarded completion client. Tests replace it.
var newLLMClient = func(ctx context.Context, apiKey string) (llm.Client, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, err
	}
	return llm.WithGuard(client, llm.DefaultGuardConfig()), nil
}

// resolveAPIKey prefers the flag value over GEMINI_API_KEY.
func resolveAPIKey(flagValue string) (string, error) {
	apiKey := flagValue
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	return apiKey, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, DefaultTemperature, config.Temperature)
	assert.Equal(t, DefaultMaxOutputTokens, config.MaxOutputTokens)
}

func TestGetModel_FallsBackToStandard(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierStandard: "fallback-model"}}
	assert.Equal(t, "fallback-model", config.GetModel(TierLite))
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", config.GetModel(TierLite))
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestExtractTextFromResponse(t *testing.T) {
	tests := []struct {
		name      string
		resp      *genai.GenerateContentResponse
		expected  string
		wantError bool
	}{
		{
			name:      "nil response",
			resp:      nil,
			wantError: true,
		},
		{
			name:      "no candidates",
			resp:      &genai.GenerateContentResponse{},
			wantError: true,
		},
		{
			name: "no content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			wantError: true,
		},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
				}},
			},
			expected: "Hello, world",
		},
		{
			name: "non-text parts only",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "audio/webm"}}},
				}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractTextFromResponse(tt.resp)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

// Package llm provides the completion and transcription client used to answer interview questions.
package llm

// ModelTier picks a Gemini model by workload.
type ModelTier string

const (
	TierLite     ModelTier = "lite"     // transcription
	TierStandard ModelTier = "standard" // answer generation
)

// Generation settings for spoken answers.
const (
	DefaultTemperature     float32 = 0.7
	DefaultMaxOutputTokens int32   = 1024
)

// Config maps tiers to Gemini model names.
type Config struct {
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32
}

func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// GetModel returns the model for tier, or the standard model when the tier
// has none. It returns "" when neither is set.
func (c *Config) GetModel(tier ModelTier) string {
	if model := c.Models[tier]; model != "" {
		return model
	}
	return c.Models[TierStandard]
}

package classify

import (
	"testing"

	"github.com/jonathan/interview-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		expected types.QuestionType
	}{
		{"Tell me about yourself", types.QuestionIntroduction},
		{"Could you INTRODUCE YOURSELF briefly?", types.QuestionIntroduction},
		{"What is your biggest weakness?", types.QuestionSelfAssessment},
		{"What are your strengths?", types.QuestionSelfAssessment},
		{"Why do you want to work at this company?", types.QuestionMotivation},
		{"Why this role?", types.QuestionMotivation},
		{"Describe a time you failed.", types.QuestionBehavioral},
		{"Tell me about a time you led a project", types.QuestionBehavioral},
		{"How would you design a cache?", types.QuestionTechnical},
		{"Walk me through a technical challenge", types.QuestionTechnical},
		{"What's your favorite color?", types.QuestionGeneral},
		{"", types.QuestionGeneral},
		{"Why?", types.QuestionGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.question))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected types.QuestionType
	}{
		{"introduction beats self-assessment", "Tell me about yourself and your strengths", types.QuestionIntroduction},
		{"self-assessment beats motivation", "Why is that weakness relevant to the role?", types.QuestionSelfAssessment},
		{"motivation beats behavioral", "Describe a time that shows why you fit this company", types.QuestionMotivation},
		{"behavioral beats technical", "Describe a time you solved a technical problem", types.QuestionBehavioral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.question))
		})
	}
}

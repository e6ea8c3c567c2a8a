// Package classify labels interview questions by type using fixed keyword rules.
package classify

import (
	"strings"

	"github.com/jonathan/interview-assistant/internal/types"
)

// Classify returns the type of question. Rules are checked in order and the first match wins.
func Classify(question string) types.QuestionType {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "tell me about yourself", "introduce yourself"):
		return types.QuestionIntroduction
	case containsAny(q, "weakness", "strengths"):
		return types.QuestionSelfAssessment
	case strings.Contains(q, "why") && containsAny(q, "company", "role"):
		return types.QuestionMotivation
	case containsAny(q, "describe a time", "tell me about a time"):
		return types.QuestionBehavioral
	case containsAny(q, "technical", "how would you"):
		return types.QuestionTechnical
	default:
		return types.QuestionGeneral
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

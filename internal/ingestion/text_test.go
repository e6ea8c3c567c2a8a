package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc\nd", NormalizeLineEndings("a\r\nb\rc\nd"))
	assert.Equal(t, "  spaced   line  ", NormalizeLineEndings("  spaced   line  "))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "collapses inline whitespace", input: "Line    with \t multiple   spaces", expected: "Line with multiple spaces"},
		{name: "trims lines", input: "   leading\ntrailing   ", expected: "leading\ntrailing"},
		{name: "caps blank lines", input: "Line 1\n\n\n\n\nLine 2", expected: "Line 1\n\nLine 2"},
		{name: "normalizes line endings", input: "Line 1\r\nLine 2\rLine 3", expected: "Line 1\nLine 2\nLine 3"},
		{name: "keeps bullets", input: "- Item 1\n* Item 2\n• Item 3", expected: "- Item 1\n* Item 2\n• Item 3"},
		{name: "keeps nested bullet indent", input: "- Parent\n  - Child", expected: "- Parent\n  - Child"},
		{name: "whitespace only", input: " \n\t\n ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("interview.json", "answer-preamble")
	require.NoError(t, err)
	assert.Contains(t, prompt, "interview preparation assistant")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("interview.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestSpeechPrompt(t *testing.T) {
	prompt := MustGet("speech.json", "transcribe-audio")
	assert.Contains(t, prompt, "Transcribe")
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_ValuesAreNotRescanned(t *testing.T) {
	template := "Q: {{.Question}} / C: {{.Company}}"
	data := map[string]string{
		"Question": "what is {{.Company}}?",
		"Company":  "Acme",
	}

	assert.Equal(t, "Q: what is {{.Company}}? / C: Acme", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestRender(t *testing.T) {
	out := Render("interview.json", "answer-job-block", map[string]string{"JobDescription": "Build APIs"})
	assert.Equal(t, "JOB DESCRIPTION:\nBuild APIs\n\n", out)
}

func TestInterviewTemplatesPresent(t *testing.T) {
	for _, key := range []string{"answer-preamble", "answer-resume-block", "answer-job-block", "answer-question"} {
		_, err := Get("interview.json", key)
		assert.NoError(t, err, key)
	}
}

func TestCaching(t *testing.T) {
	prompt1, err := Get("interview.json", "answer-question")
	require.NoError(t, err)
	prompt2, err := Get("interview.json", "answer-question")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

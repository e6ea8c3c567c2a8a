package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-assistant/internal/llm"
)

const sampleResume = `Jane Doe
Skills
Go, Kubernetes, PostgreSQL

Experience
Senior Software Engineer at Acme
Built payment APIs

Education
Master of Science in Computer Science
State University`

type fakeLLM struct {
	mu         sync.Mutex
	answer     string
	transcript string
	err        error
	prompts    []string
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

func (f *fakeLLM) Transcribe(context.Context, []byte, string, string) (string, error) {
	return f.transcript, f.err
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeLLM) Close() error                  { return nil }

// useFakeLLM swaps the client constructor for the duration of the test.
func useFakeLLM(t *testing.T, fake *fakeLLM) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	orig := newLLMClient
	newLLMClient = func(context.Context, string) (llm.Client, error) { return fake, nil }
	t.Cleanup(func() { newLLMClient = orig })
}

// execute runs the root command with args after resetting every flag to its default.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "Tell", "me", "about", "yourself")
	require.NoError(t, err)
	assert.Equal(t, "introduction\n", out)

	_, err = execute(t, "classify")
	assert.Error(t, err)
}

func TestExtractCommand(t *testing.T) {
	path := writeFile(t, "resume.txt", sampleResume)

	out, err := execute(t, "extract", "--resume", path, "--validate")
	require.NoError(t, err)

	var profile map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, []any{"Go", "Kubernetes", "PostgreSQL"}, profile["skills"])
	assert.Contains(t, profile["rawText"], "Jane Doe")
}

func TestExtractCommand_Verbose(t *testing.T) {
	path := writeFile(t, "resume.txt", sampleResume)

	out, err := execute(t, "extract", "--resume", path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Kubernetes")
}

func TestExtractCommand_Errors(t *testing.T) {
	_, err := execute(t, "extract")
	assert.ErrorContains(t, err, "required")

	_, err = execute(t, "extract", "--resume", filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorContains(t, err, "file not found")
}

func TestAnswerCommand(t *testing.T) {
	fake := &fakeLLM{answer: " I shipped payment APIs at Acme. "}
	useFakeLLM(t, fake)

	resumePath := writeFile(t, "resume.txt", sampleResume)
	jobPath := writeFile(t, "job.txt", "Backend engineer building payment systems in Go")

	out, err := execute(t, "answer",
		"--question", "Tell me about a time you improved reliability",
		"--resume", resumePath,
		"--job", jobPath,
		"--company", "Globex",
	)
	require.NoError(t, err)

	var answer map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &answer))
	assert.Equal(t, "I shipped payment APIs at Acme.", answer["answer"])
	assert.Equal(t, "behavioral", answer["questionType"])
	assert.Equal(t, map[string]any{"hasResume": true, "hasJobDescription": true}, answer["usedContext"])

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "payment systems in Go")
	assert.Contains(t, fake.prompts[0], "Kubernetes")
}

func TestAnswerCommand_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		_, err := execute(t, "answer", "--question", "Why?")
		assert.ErrorContains(t, err, "API key is required")
	})

	t.Run("job and job-url", func(t *testing.T) {
		useFakeLLM(t, &fakeLLM{})
		_, err := execute(t, "answer", "--question", "Why?", "--job", "a.txt", "--job-url", "https://example.com")
		assert.ErrorContains(t, err, "mutually exclusive")
	})

	t.Run("completion failure", func(t *testing.T) {
		useFakeLLM(t, &fakeLLM{err: errors.New("quota")})
		_, err := execute(t, "answer", "--question", "Why?")
		assert.ErrorContains(t, err, "Failed to generate answer")
	})
}

func TestPracticeCommand(t *testing.T) {
	useFakeLLM(t, &fakeLLM{answer: "ok"})

	questions := writeFile(t, "questions.txt", strings.Join([]string{
		"# warm-up",
		"Tell me about yourself",
		"",
		"What is your greatest weakness?",
		"Why do you want this role?",
		"How would you design a rate limiter?",
	}, "\n"))

	out, err := execute(t, "practice", "--questions", questions, "--concurrency", "2")
	require.NoError(t, err)

	var answers []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &answers))
	require.Len(t, answers, 4)

	var types []any
	for _, a := range answers {
		types = append(types, a["questionType"])
	}
	assert.Equal(t, []any{"introduction", "self-assessment", "motivation", "technical"}, types)
	assert.Equal(t, "Tell me about yourself", answers[0]["question"])
}

func TestPracticeCommand_Errors(t *testing.T) {
	useFakeLLM(t, &fakeLLM{answer: "ok"})

	empty := writeFile(t, "empty.txt", "# nothing\n\n")
	_, err := execute(t, "practice", "--questions", empty)
	assert.ErrorContains(t, err, "no questions")

	questions := writeFile(t, "q.txt", "Why?\n")
	_, err = execute(t, "practice", "--questions", questions, "--concurrency", "0")
	assert.ErrorContains(t, err, "--concurrency")
}

func TestTranscribeCommand(t *testing.T) {
	useFakeLLM(t, &fakeLLM{transcript: "Describe your last project"})

	audio := writeFile(t, "clip.webm", "fake-audio")
	out, err := execute(t, "transcribe", "--audio", audio)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Describe your last project", result["transcription"])
	assert.Equal(t, true, result["isQuestion"])
}

func TestReadQuestions(t *testing.T) {
	path := writeFile(t, "q.txt", "  first?  \r\n#skip\n\nsecond\n")

	questions, err := readQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first?", "second"}, questions)

	_, err = readQuestions(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

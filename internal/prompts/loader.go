// Package prompts holds the LLM prompt templates embedded in the binary.
// Each JSON file maps a template key to its text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// parsed caches one decoded template map per file name.
var parsed sync.Map

// Get returns the template stored under key in filename (e.g. "interview.json").
func Get(filename, key string) (string, error) {
	templates, err := templatesIn(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for templates the binary cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders with values from data.
// Substituted values are not rescanned for placeholders.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Render is MustGet followed by Format.
func Render(filename, key string, data map[string]string) string {
	return Format(MustGet(filename, key), data)
}

func templatesIn(filename string) (map[string]string, error) {
	if cached, ok := parsed.Load(filename); ok {
		return cached.(map[string]string), nil
	}

	raw, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var templates map[string]string
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := parsed.LoadOrStore(filename, templates)
	return actual.(map[string]string), nil
}

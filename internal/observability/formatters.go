// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeProfile outputs the extracted skills, experience and education.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Characters: %d\n\n", len([]rune(profile.RawText))))

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
		writeList(&sb, profile.Skills, maxItemsToShow)
		sb.WriteString("\n")
	}

	if len(profile.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience snippets (%d):\n", len(profile.Experience)))
		firstLines := make([]string, len(profile.Experience))
		for i, snippet := range profile.Experience {
			firstLines[i] = firstLine(snippet)
		}
		writeList(&sb, firstLines, 3)
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education snippets (%d):\n", len(profile.Education)))
		firstLines := make([]string, len(profile.Education))
		for i, snippet := range profile.Education {
			firstLines[i] = firstLine(snippet)
		}
		writeList(&sb, firstLines, 2)
	}

	p.printBox("EXTRACTED RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobContext outputs the job attached to a session.
func (p *Printer) PrintJobContext(job *types.JobContext) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", job.Source))
	sb.WriteString(fmt.Sprintf("Length:   %d chars", len([]rune(job.Description))))

	p.printBox("JOB CONTEXT", sb.String())
}

// PrintAnswer outputs a generated answer with its classification.
func (p *Printer) PrintAnswer(answer *types.Answer) {
	if answer == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Q: %s\n", answer.Question))
	sb.WriteString(fmt.Sprintf("Type: %s\n", answer.QuestionType))
	sb.WriteString(fmt.Sprintf("Context: resume=%s job=%s\n\n",
		checkMark(answer.UsedContext.HasResume), checkMark(answer.UsedContext.HasJobDescription)))
	sb.WriteString(wrap(answer.AnswerText, boxWidth-4))

	p.printBox("GENERATED ANSWER", sb.String())
}

// PrintTranscription outputs recognized speech.
func (p *Printer) PrintTranscription(t *types.Transcription) {
	if t == nil {
		return
	}

	content := wrap(t.Text, boxWidth-4) + fmt.Sprintf("\n\nLooks like a question: %s", checkMark(t.IsQuestion))
	p.printBox("TRANSCRIPTION", content)
}

func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

func checkMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// wrap breaks text into lines no wider than width, on word boundaries.
func wrap(text string, width int) string {
	var (
		lines []string
		line  string
	)
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

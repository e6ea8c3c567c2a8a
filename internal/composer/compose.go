// Package composer builds the completion prompt for an interview question from the
// candidate's résumé profile and the target job description.
package composer

import (
	"strings"

	"github.com/jonathan/interview-assistant/internal/prompts"
	"github.com/jonathan/interview-assistant/internal/types"
)

const templateFile = "interview.json"

// Limits on how much of each profile section reaches the prompt.
const (
	MaxSkills     = 20
	MaxExperience = 3
	MaxEducation  = 2
)

// Compose returns the prompt for answering question. resume and job are optional.
// It only reads its inputs, and the same inputs always give the same output.
// The caller must reject empty questions before calling.
func Compose(question string, resume *types.ResumeProfile, job *types.JobContext) string {
	var sb strings.Builder

	sb.WriteString(prompts.MustGet(templateFile, "answer-preamble"))

	if resume != nil {
		sb.WriteString(prompts.Render(templateFile, "answer-resume-block", map[string]string{
			"Resume": FormatResume(resume),
		}))
	}

	if job != nil {
		sb.WriteString(prompts.Render(templateFile, "answer-job-block", map[string]string{
			"JobDescription": job.Description,
		}))
	}

	sb.WriteString(prompts.Render(templateFile, "answer-question", map[string]string{
		"Question": question,
	}))

	return sb.String()
}

// FormatResume renders the profile sections that have content, in the order
// summary, skills, experience, education.
func FormatResume(resume *types.ResumeProfile) string {
	var sb strings.Builder

	if resume.Summary != "" {
		sb.WriteString("Summary: ")
		sb.WriteString(resume.Summary)
		sb.WriteString("\n\n")
	}

	if len(resume.Skills) > 0 {
		sb.WriteString("Skills: ")
		sb.WriteString(strings.Join(head(resume.Skills, MaxSkills), ", "))
		sb.WriteString("\n\n")
	}

	if len(resume.Experience) > 0 {
		sb.WriteString("Experience:\n")
		sb.WriteString(strings.Join(head(resume.Experience, MaxExperience), "\n"))
		sb.WriteString("\n\n")
	}

	// education is last and carries no trailing blank line
	if len(resume.Education) > 0 {
		sb.WriteString("Education:\n")
		sb.WriteString(strings.Join(head(resume.Education, MaxEducation), "\n"))
	}

	return sb.String()
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Package resume turns extracted résumé text into a structured profile using line-oriented heuristics.
package resume

import (
	"regexp"
	"strings"

	"github.com/jonathan/interview-assistant/internal/types"
)

// SummaryLength is the number of characters kept in a profile summary.
const SummaryLength = 500

// skillKeywords open a skills section when found anywhere in a line
var skillKeywords = []string{
	"skills",
	"technical skills",
	"technologies",
	"proficient in",
	"programming languages",
	"tools",
	"frameworks",
}

var (
	sectionEndPattern = regexp.MustCompile(`(?i)^(experience|education|projects|certifications)`)
	skillDelimiters   = regexp.MustCompile(`[,;|•·]`)
	experiencePattern = regexp.MustCompile(`(?i)\b(software engineer|developer|engineer|intern|analyst|manager|lead|senior|junior)\b`)
	degreePattern     = regexp.MustCompile(`(?i)\b(bachelor|master|phd|b\.s\.|m\.s\.|b\.e\.|m\.e\.|b\.tech|m\.tech|diploma|associate)\b`)

	// Zs spaces, ASCII controls, line/paragraph separators and U+FEFF.
	// Unlike unicode.IsSpace, U+0085 is not whitespace here.
	whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)
)

// Extract builds a ResumeProfile from raw document text.
// It never fails; text without recognizable sections yields empty sequences.
func Extract(rawText string) *types.ResumeProfile {
	lines := strings.Split(rawText, "\n")

	return &types.ResumeProfile{
		RawText:    rawText,
		Summary:    Summarize(rawText),
		Skills:     extractSkills(lines),
		Experience: extractExperience(lines),
		Education:  extractEducation(lines),
	}
}

// extractSkills collects delimited entries from the first skills section.
// Scanning stops for good at the first section heading after the skills block.
func extractSkills(lines []string) []string {
	skills := []string{}
	inSection := false

	for _, raw := range lines {
		line := strings.ToLower(strings.TrimSpace(raw))

		if containsAny(line, skillKeywords) {
			inSection = true
			continue
		}

		if !inSection {
			continue
		}
		if sectionEndPattern.MatchString(line) {
			break
		}
		if line == "" {
			continue
		}

		for _, token := range skillDelimiters.Split(raw, -1) {
			if token = strings.TrimSpace(token); token != "" {
				skills = append(skills, token)
			}
		}
	}

	return skills
}

// extractExperience captures lines [i-1, i+5) around every role line.
// Overlapping windows are kept as-is.
func extractExperience(lines []string) []string {
	snippets := []string{}
	for i, line := range lines {
		if experiencePattern.MatchString(line) {
			snippets = append(snippets, window(lines, i-1, i+5))
		}
	}
	return snippets
}

// extractEducation captures lines [i, i+3) starting at every degree line.
func extractEducation(lines []string) []string {
	snippets := []string{}
	for i, line := range lines {
		if degreePattern.MatchString(line) {
			snippets = append(snippets, window(lines, i, i+3))
		}
	}
	return snippets
}

// Summarize collapses whitespace runs and keeps the first SummaryLength characters,
// appending "..." when the collapsed text is longer.
func Summarize(text string) string {
	clean := []rune(strings.Trim(whitespaceRun.ReplaceAllString(text, " "), " "))
	if len(clean) <= SummaryLength {
		return string(clean)
	}
	return string(clean[:SummaryLength]) + "..."
}

// window joins lines[from:to] with single spaces, clamped to the slice bounds.
func window(lines []string, from, to int) string {
	from = max(from, 0)
	to = min(to, len(lines))
	return strings.Join(lines[from:to], " ")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

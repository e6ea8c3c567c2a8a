package ingestion

import (
	"regexp"
	"strings"
)

var (
	inlineSpace = regexp.MustCompile(`[ \t\f\v]+`)
	blankRun    = regexp.MustCompile(`\n{3,}`)
)

// NormalizeLineEndings converts CRLF and lone CR to LF. Résumé text goes
// through this only, so the line structure the extractor relies on is kept.
func NormalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// CleanText normalizes job posting text: LF line endings, single spaces
// within lines, bullets kept, and at most one blank line between blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(NormalizeLineEndings(content), "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	if isBulletLine(trimmed) {
		// Keep nested bullet indentation.
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		return strings.Repeat(" ", indent) + inlineSpace.ReplaceAllString(trimmed, " ")
	}
	return inlineSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	for _, prefix := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Recognized job boards.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// board describes where a platform puts the description and what to strip.
type board struct {
	hosts   []string
	content []string
	noise   []string
}

// commonNoise removes application forms, EEO text and share widgets.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

var boards = map[Platform]board{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"workday.com", "myworkdayjobs.com"},
		content: []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']"},
	},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Host)

	for platform, b := range boards {
		for _, h := range b.hosts {
			if strings.Contains(host, h) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

func boardFor(platform Platform) board {
	b, ok := boards[platform]
	if !ok {
		b = board{content: JobPostingSelectors()}
	}
	b.noise = append(append([]string{}, commonNoise...), b.noise...)
	return b
}

package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/interview-assistant/internal/fetch"
)

// JobPosting is job description text retrieved from a URL.
type JobPosting struct {
	URL       string
	Platform  fetch.Platform
	Text      string
	Hash      string
	FetchedAt time.Time
}

// IngestJobURL fetches a job posting page and returns its cleaned description text.
func IngestJobURL(ctx context.Context, urlStr string, opts *fetch.Options) (*JobPosting, error) {
	result, err := fetch.JobPosting(ctx, urlStr, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest job posting: %w", err)
	}

	text := CleanText(result.Text)
	log.Printf("[ingest] fetched %s (platform=%s, %d chars)", urlStr, result.Platform, len(text))

	return &JobPosting{
		URL:       urlStr,
		Platform:  result.Platform,
		Text:      text,
		Hash:      contentHash(text),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

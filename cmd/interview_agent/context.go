package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/interview-assistant/internal/fetch"
	"github.com/jonathan/interview-assistant/internal/ingestion"
	"github.com/jonathan/interview-assistant/internal/resume"
	"github.com/jonathan/interview-assistant/internal/types"
)

// contextFlags are the optional résumé and job inputs shared by answer and practice.
type contextFlags struct {
	resumeFile string
	jobFile    string
	jobURL     string
	jobTitle   string
	company    string
}

func (f *contextFlags) validate() error {
	if f.jobFile != "" && f.jobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	return nil
}

// load builds the résumé profile and job context. Either may be nil.
func (f *contextFlags) load(ctx context.Context) (*types.ResumeProfile, *types.JobContext, error) {
	if err := f.validate(); err != nil {
		return nil, nil, err
	}

	var profile *types.ResumeProfile
	if f.resumeFile != "" {
		doc, err := ingestion.ReadFile(f.resumeFile)
		if err != nil {
			return nil, nil, err
		}
		text, err := ingestion.ExtractText(doc)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to extract résumé text: %w", err)
		}
		profile = resume.Extract(text)
	}

	var description string
	switch {
	case f.jobFile != "":
		data, err := os.ReadFile(f.jobFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read job file: %w", err)
		}
		description = ingestion.CleanText(string(data))
	case f.jobURL != "":
		// Run locally by the operator; internal hosts are allowed.
		opts := fetch.DefaultOptions()
		opts.AllowPrivateNetworks = true
		posting, err := ingestion.IngestJobURL(ctx, f.jobURL, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch job posting: %w", err)
		}
		description = posting.Text
	default:
		return profile, nil, nil
	}

	var in types.JobInput = types.RawJobText(description)
	if f.jobTitle != "" || f.company != "" {
		in = types.StructuredJob{Description: description, Title: f.jobTitle, Company: f.company}
	}
	job, err := types.NewJobContext(in, time.Now())
	if err != nil {
		return nil, nil, err
	}
	return profile, job, nil
}

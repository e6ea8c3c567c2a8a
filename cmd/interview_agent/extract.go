package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-assistant/internal/ingestion"
	"github.com/jonathan/interview-assistant/internal/observability"
	"github.com/jonathan/interview-assistant/internal/resume"
	"github.com/jonathan/interview-assistant/internal/schemas"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured profile from a résumé file",
	Long:  "Extract summary, skills, experience and education from a PDF, DOCX or text résumé and print the profile as JSON.",
	RunE:  runExtract,
}

var (
	extractResumeFile string
	extractValidate   bool
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractResumeFile, "resume", "r", "", "Path to résumé file (PDF, DOCX or text)")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "Validate the profile against the resume_profile schema")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a formatted summary instead of JSON")

	_ = extractCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	doc, err := ingestion.ReadFile(extractResumeFile)
	if err != nil {
		return err
	}

	text, err := ingestion.ExtractText(doc)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	profile := resume.Extract(text)

	if extractValidate {
		if err := schemas.Validate(schemas.ResumeProfile, profile); err != nil {
			return fmt.Errorf("profile failed schema validation: %w", err)
		}
	}

	if extractVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResumeProfile(profile)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), profile)
}

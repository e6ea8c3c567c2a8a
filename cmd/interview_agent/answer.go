package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-assistant/internal/assistant"
	"github.com/jonathan/interview-assistant/internal/observability"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Generate an answer to one interview question",
	Long:  "Generate a spoken-style answer to an interview question, grounded in an optional résumé and job description.",
	RunE:  runAnswer,
}

var (
	answerQuestion string
	answerContext  contextFlags
	answerAPIKey   string
	answerVerbose  bool
)

func init() {
	answerCmd.Flags().StringVarP(&answerQuestion, "question", "q", "", "Interview question to answer")
	answerCmd.Flags().StringVarP(&answerContext.resumeFile, "resume", "r", "", "Path to résumé file (PDF, DOCX or text)")
	answerCmd.Flags().StringVarP(&answerContext.jobFile, "job", "j", "", "Path to job description text file")
	answerCmd.Flags().StringVar(&answerContext.jobURL, "job-url", "", "URL of a job posting to fetch")
	answerCmd.Flags().StringVar(&answerContext.jobTitle, "job-title", "", "Job title")
	answerCmd.Flags().StringVar(&answerContext.company, "company", "", "Company name")
	answerCmd.Flags().StringVar(&answerAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	answerCmd.Flags().BoolVarP(&answerVerbose, "verbose", "v", false, "Print a formatted answer instead of JSON")

	_ = answerCmd.MarkFlagRequired("question")

	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, _ []string) error {
	if err := answerContext.validate(); err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(answerAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()

	profile, job, err := answerContext.load(ctx)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	svc := assistant.New(assistant.Options{Client: client})
	answer, err := svc.Answer(ctx, answerQuestion, profile, job)
	if err != nil {
		return err
	}

	if answerVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintAnswer(answer)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), answer)
}

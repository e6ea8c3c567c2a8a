package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-assistant/internal/assistant"
	"github.com/jonathan/interview-assistant/internal/observability"
	"github.com/jonathan/interview-assistant/internal/types"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer a list of interview questions",
	Long: "Answer every question in a file (one per line; blank lines and lines starting with # are skipped), " +
		"grounded in an optional résumé and job description. Answers print in file order.",
	RunE: runPractice,
}

var (
	practiceQuestionsFile string
	practiceConcurrency   int
	practiceContext       contextFlags
	practiceAPIKey        string
	practiceVerbose       bool
)

func init() {
	practiceCmd.Flags().StringVar(&practiceQuestionsFile, "questions", "", "Path to questions file")
	practiceCmd.Flags().IntVarP(&practiceConcurrency, "concurrency", "c", 3, "Maximum concurrent answer requests")
	practiceCmd.Flags().StringVarP(&practiceContext.resumeFile, "resume", "r", "", "Path to résumé file (PDF, DOCX or text)")
	practiceCmd.Flags().StringVarP(&practiceContext.jobFile, "job", "j", "", "Path to job description text file")
	practiceCmd.Flags().StringVar(&practiceContext.jobURL, "job-url", "", "URL of a job posting to fetch")
	practiceCmd.Flags().StringVar(&practiceContext.jobTitle, "job-title", "", "Job title")
	practiceCmd.Flags().StringVar(&practiceContext.company, "company", "", "Company name")
	practiceCmd.Flags().StringVar(&practiceAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	practiceCmd.Flags().BoolVarP(&practiceVerbose, "verbose", "v", false, "Print formatted answers instead of JSON")

	_ = practiceCmd.MarkFlagRequired("questions")

	rootCmd.AddCommand(practiceCmd)
}

func runPractice(cmd *cobra.Command, _ []string) error {
	if practiceConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	if err := practiceContext.validate(); err != nil {
		return err
	}

	questions, err := readQuestions(practiceQuestionsFile)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions found in %s", practiceQuestionsFile)
	}

	apiKey, err := resolveAPIKey(practiceAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()

	profile, job, err := practiceContext.load(ctx)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	svc := assistant.New(assistant.Options{Client: client})
	answers, err := answerAll(ctx, svc, questions, profile, job, practiceConcurrency)
	if err != nil {
		return err
	}

	if practiceVerbose {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		for _, a := range answers {
			printer.PrintAnswer(a)
		}
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), answers)
}

// answerAll answers questions with at most limit calls in flight. Results keep input order.
func answerAll(ctx context.Context, svc *assistant.Service, questions []string, profile *types.ResumeProfile, job *types.JobContext, limit int) ([]*types.Answer, error) {
	answers := make([]*types.Answer, len(questions))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, q := range questions {
		g.Go(func() error {
			a, err := svc.Answer(gCtx, q, profile, job)
			if err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
			answers[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return answers, nil
}

func readQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open questions file: %w", err)
	}
	defer f.Close()

	var questions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions file: %w", err)
	}
	return questions, nil
}

package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-assistant/internal/assistant"
	"github.com/jonathan/interview-assistant/internal/observability"
	"github.com/jonathan/interview-assistant/internal/speech"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe a recorded interview question",
	RunE:  runTranscribe,
}

var (
	transcribeAudioFile string
	transcribeMIMEType  string
	transcribeAPIKey    string
	transcribeVerbose   bool
)

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeAudioFile, "audio", "a", "", "Path to audio file")
	transcribeCmd.Flags().StringVar(&transcribeMIMEType, "mime-type", "", "Audio MIME type (default: from file extension, else "+speech.DefaultMIMEType+")")
	transcribeCmd.Flags().StringVar(&transcribeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	transcribeCmd.Flags().BoolVarP(&transcribeVerbose, "verbose", "v", false, "Print formatted output instead of JSON")

	_ = transcribeCmd.MarkFlagRequired("audio")

	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, _ []string) error {
	audio, err := os.ReadFile(transcribeAudioFile)
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}

	mimeType := transcribeMIMEType
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(transcribeAudioFile))
	}

	apiKey, err := resolveAPIKey(transcribeAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	svc := assistant.New(assistant.Options{Client: client})
	result, err := svc.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return err
	}

	if transcribeVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintTranscription(result)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-assistant/internal/assistant"
	"github.com/jonathan/interview-assistant/internal/config"
	"github.com/jonathan/interview-assistant/internal/llm"
	"github.com/jonathan/interview-assistant/internal/server"
	"github.com/jonathan/interview-assistant/internal/session"
	"github.com/jonathan/interview-assistant/internal/telemetry"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing résumé upload, job context, transcription and answer generation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT and the config file)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()

	store, err := session.Open(ctx, cfg.SessionConfig())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	log.Printf("[session] Using %s session store", cfg.SessionBackend)

	var client llm.Client
	if cfg.APIKey != "" {
		client, err = newLLMClient(ctx, cfg.APIKey)
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
	} else {
		log.Printf("[answer] GEMINI_API_KEY not set; transcription and answer generation will fail")
	}

	metrics := telemetry.New()
	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORSOrigins:    cfg.CORSOrigins,
		Metrics:        metrics,
		Assistant: assistant.New(assistant.Options{
			Store:   store,
			Client:  client,
			Metrics: metrics,
		}),
	})
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

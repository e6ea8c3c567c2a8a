// Package main provides the entry point for the Interview Assistant API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_agent",
	Short: "Interview Assistant API server and CLI",
	Long: "Interview Assistant extracts a structured profile from a résumé, keeps job context per session, " +
		"and drafts spoken-style answers to interview questions grounded in both.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

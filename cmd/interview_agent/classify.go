package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-assistant/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify QUESTION",
	Short: "Label an interview question by type",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	_, err := fmt.Fprintln(cmd.OutOrStdout(), classify.Classify(question))
	return err
}

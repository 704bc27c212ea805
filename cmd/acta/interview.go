package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Generate experience interview questions for a title",
	Long:  "Runs the interview-generation phase once and prints the open-ended questions the backend would ask before writing the article.",
	RunE:  runInterview,
}

var interviewTitle string

func init() {
	interviewCmd.Flags().StringVar(&interviewTitle, "title", "", "Article title to interview against (required)")
	addClientFlags(interviewCmd)

	if err := interviewCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}

	rootCmd.AddCommand(interviewCmd)
}

func runInterview(_ *cobra.Command, _ []string) error {
	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	resp, err := client.GenerateInterview(context.Background(), types.InterviewRequest{Title: interviewTitle})
	if err != nil {
		return fmt.Errorf("interview generation failed: %w", err)
	}

	if len(resp.Questions) == 0 {
		fmt.Println("No interview questions generated.")
		return nil
	}

	items := make([]types.InterviewItem, len(resp.Questions))
	for i, q := range resp.Questions {
		items[i] = types.InterviewItem{Question: q}
	}
	renderInterview(os.Stdout, items)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Generate five title candidates for a topic",
	Long:  "Runs the title-generation phase once and prints the five candidate titles with their style labels. Useful for probing a template without starting a full run.",
	RunE:  runTitles,
}

var titlesTopic string

func init() {
	titlesCmd.Flags().StringVar(&titlesTopic, "topic", "", "Free-text topic to generate titles for (required)")
	addClientFlags(titlesCmd)

	if err := titlesCmd.MarkFlagRequired("topic"); err != nil {
		panic(fmt.Sprintf("failed to mark topic flag as required: %v", err))
	}

	rootCmd.AddCommand(titlesCmd)
}

func runTitles(_ *cobra.Command, _ []string) error {
	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	resp, err := client.GenerateTitles(context.Background(), types.TitleRequest{Topic: titlesTopic})
	if err != nil {
		return fmt.Errorf("title generation failed: %w", err)
	}

	candidates := make([]types.TitleCandidate, len(resp.Titles))
	for i, text := range resp.Titles {
		candidates[i] = types.TitleCandidate{Index: i, Text: text, StyleLabel: types.StyleLabelFor(i)}
	}
	renderTitles(os.Stdout, candidates, -1)

	if cfg.Verbose {
		fmt.Printf("\nSystem prompt used:\n%s\n\nTopic prompt used:\n%s\n", resp.TitleSystemPromptUsed, resp.TopicPromptUsed)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/megbroc7/acta-ai-sub002/internal/config"
	"github.com/megbroc7/acta-ai-sub002/internal/observability"
	"github.com/megbroc7/acta-ai-sub002/internal/pipeline"
	"github.com/megbroc7/acta-ai-sub002/internal/preview"
	"github.com/megbroc7/acta-ai-sub002/internal/progress"
	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full generation pipeline for a topic",
	Long: `Run the three-phase pipeline end to end: generate five title candidates,
optionally collect experience interview answers, then stream the article
while rendering progress live.`,
	RunE: runRun,
}

var (
	runTopic         string
	runSelect        int
	runTitleOverride string
	runInterviewFlag    bool
	runAnswers       []string
	runOut           string
	runExcerptLen    int
)

func init() {
	runCmd.Flags().StringVar(&runTopic, "topic", "", "Free-text topic to write about (required)")
	runCmd.Flags().IntVar(&runSelect, "select", 0, "Candidate index to select as the title")
	runCmd.Flags().StringVar(&runTitleOverride, "title", "", "Replace the selected title with this text")
	runCmd.Flags().BoolVar(&runInterviewFlag, "interview", false, "Run the experience interview phase")
	runCmd.Flags().StringArrayVar(&runAnswers, "answer", nil, "Answer to an interview question, in question order (repeatable; blank skips one)")
	runCmd.Flags().StringVar(&runOut, "out", "", "Write the generated markdown to this file")
	runCmd.Flags().IntVar(&runExcerptLen, "excerpt-len", 200, "Max length of the printed excerpt")
	addClientFlags(runCmd)

	if err := runCmd.MarkFlagRequired("topic"); err != nil {
		panic(fmt.Sprintf("failed to mark topic flag as required: %v", err))
	}

	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	// Phase 1: titles.
	candidates, err := session.GenerateTitles(ctx, runTopic)
	if err != nil {
		return err
	}
	if runSelect != 0 {
		if err := session.SelectTitle(runSelect); err != nil {
			return err
		}
	}
	if runTitleOverride != "" {
		if err := session.SetTitle(runTitleOverride); err != nil {
			return err
		}
	}
	renderTitles(os.Stdout, candidates, session.SelectedIndex())
	fmt.Printf("\nTitle: %s\n\n", session.Title())

	// Phase 2: optional interview.
	if runInterviewFlag {
		items, err := session.GenerateInterview(ctx)
		if err != nil {
			return err
		}
		for i := range runAnswers {
			if i >= len(items) {
				break
			}
			if err := session.SetAnswer(i, runAnswers[i]); err != nil {
				return err
			}
		}
		renderInterview(os.Stdout, session.Interview())
		fmt.Println()
	}

	// Phase 3: streamed content, with progress rendered as it arrives.
	result, err := streamContent(ctx, session)
	if err != nil {
		if msg := session.Failure(); msg != "" {
			fmt.Fprintf(os.Stderr, "Generation failed: %s\n", msg)
		}
		return err
	}

	return printResult(cfg, session, result)
}

// streamContent pumps the content phase while a second goroutine renders
// progress events in arrival order.
func streamContent(ctx context.Context, session *pipeline.Session) (*types.GenerationResult, error) {
	events := make(chan types.ProgressEvent, 16)

	var result *types.GenerationResult
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		res, err := session.GenerateContent(ctx, func(ev types.ProgressEvent) {
			events <- ev
		})
		if err != nil {
			return err
		}
		result = res
		return nil
	})

	g.Go(func() error {
		for ev := range events {
			total := ev.Total
			if total <= 0 {
				total = len(progress.Stages)
			}
			fmt.Printf("  [%d/%d] %-8s %s\n", ev.Step, total, ev.Stage, ev.Message)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func printResult(cfg *config.Config, session *pipeline.Session, result *types.GenerationResult) error {
	excerpt := result.Excerpt
	if excerpt == "" {
		html := result.ContentHTML
		if html == "" {
			if rendered, err := preview.RenderHTML(result.ContentMarkdown); err == nil {
				html = rendered
			}
		}
		if fallback, err := preview.Excerpt(html, runExcerptLen); err == nil {
			excerpt = fallback
		}
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintResult(result, excerpt)
	if cfg.Verbose {
		printer.PrintPipelineStages(session.Progress())
		printer.PrintPromptAudit(session.Audit())
	}

	if runOut != "" {
		if err := os.WriteFile(runOut, []byte(result.ContentMarkdown), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", runOut, err)
		}
		fmt.Printf("Wrote markdown to %s\n", runOut)
	}
	return nil
}

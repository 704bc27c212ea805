// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/megbroc7/acta-ai-sub002/internal/progress"
	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// promptPreviewLines caps how much of each prompt is shown
	promptPreviewLines = 6
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPromptAudit outputs the prompts and outline the backend reported
// having used, one box per populated field.
func (p *Printer) PrintPromptAudit(a types.PromptAudit) {
	sections := []struct {
		title string
		text  string
	}{
		{"TITLE SYSTEM PROMPT", a.TitleSystemPrompt},
		{"TOPIC PROMPT", a.TopicPrompt},
		{"CONTENT SYSTEM PROMPT", a.ContentSystemPrompt},
		{"CONTENT PROMPT", a.ContentPrompt},
		{"OUTLINE USED", a.OutlineUsed},
	}

	for _, section := range sections {
		if section.text == "" {
			continue
		}
		p.printBox(section.title, previewLines(section.text, promptPreviewLines))
	}
}

// PrintPipelineStages outputs the three-stage progress view with one marker
// per stage.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPipelineStages(t progress.Tracker) {
	var sb strings.Builder
	for _, stage := range progress.Stages {
		marker := "[ ]"
		switch t.StateOf(stage) {
		case progress.StageDone:
			marker = "[x]"
		case progress.StageActive:
			marker = "[>]"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, stage))
	}
	if ev, ok := t.Current(); ok {
		sb.WriteString(fmt.Sprintf("\n%3.0f%%  %s", t.Fraction()*100, ev.Message))
	}
	p.printBox("GENERATION PROGRESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResult outputs a summary of the generated article.
func (p *Printer) PrintResult(res *types.GenerationResult, excerpt string) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("HTML:     %d bytes\n", len(res.ContentHTML)))
	sb.WriteString(fmt.Sprintf("Markdown: %d bytes\n", len(res.ContentMarkdown)))
	if excerpt != "" {
		sb.WriteString("\n")
		sb.WriteString(excerpt)
	}

	p.printBox("GENERATED ARTICLE", sb.String())
}

// previewLines returns at most n lines of text, noting how much was elided.
func previewLines(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	shown := strings.Join(lines[:n], "\n")
	return fmt.Sprintf("%s\n... and %d more lines", shown, len(lines)-n)
}

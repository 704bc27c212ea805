package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

// renderTitles prints the candidate titles as a table, marking the selected
// index.
func renderTitles(out io.Writer, candidates []types.TitleCandidate, selected int) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"", "#", "Style", "Title"})

	for _, c := range candidates {
		marker := ""
		if c.Index == selected {
			marker = "*"
		}
		tw.AppendRow(table.Row{marker, c.Index, c.StyleLabel, c.Text})
	}

	tw.Render()
}

// renderInterview prints the interview questions with their current answers.
func renderInterview(out io.Writer, items []types.InterviewItem) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Question", "Answer"})

	for i, item := range items {
		answer := item.Answer
		if answer == "" {
			answer = "(unanswered)"
		}
		tw.AppendRow(table.Row{i, item.Question, answer})
	}

	tw.Render()
}

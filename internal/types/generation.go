// Package types provides type definitions for structured data exchanged with
// the Acta AI generation service.
package types

import "fmt"

// TitleStyles labels the five title candidates by position; the backend
// generates one title per style, in this order.
var TitleStyles = [...]string{"How-To", "Listicle", "Question", "Statement", "Story"}

// StyleLabelFor returns the style label for a candidate index.
func StyleLabelFor(index int) string {
	if index >= 0 && index < len(TitleStyles) {
		return TitleStyles[index]
	}
	return fmt.Sprintf("Variant %d", index+1)
}

// TitleCandidate is one of the five titles produced by the title-generation
// phase. Candidates are immutable once generated; the user's working title is
// held separately and merely seeded from one of them.
type TitleCandidate struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	StyleLabel string `json:"style_label"`
}

// InterviewItem pairs an open-ended experience question with the user's
// answer. Answers start empty and are user-editable; unanswered items are
// excluded from the content request.
type InterviewItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ProgressEvent mirrors the `progress` stream payload. Each event fully
// replaces the previous one; there is no merging.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// GenerationResult holds the final article produced by a successful run.
type GenerationResult struct {
	ContentHTML     string `json:"content_html"`
	ContentMarkdown string `json:"content_markdown"`
	Excerpt         string `json:"excerpt"`
}

// PromptAudit collects the exact prompts and outline the backend reports
// having used, surfaced for user transparency. Fields fill in as the
// corresponding phase completes and are never overwritten within a run.
type PromptAudit struct {
	TitleSystemPrompt   string `json:"title_system_prompt,omitempty"`
	TopicPrompt         string `json:"topic_prompt,omitempty"`
	ContentSystemPrompt string `json:"content_system_prompt,omitempty"`
	ContentPrompt       string `json:"content_prompt,omitempty"`
	OutlineUsed         string `json:"outline_used,omitempty"`
}

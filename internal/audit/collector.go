// Package audit accumulates the prompts and outline the backend reports
// having used during a generation run, for later inspection.
package audit

import (
	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

// Collector is append-only by field: each prompt is set at most once per run,
// by whichever phase response carries it, and is cleared only by Reset.
type Collector struct {
	a types.PromptAudit
}

// RecordTitlePhase stores the prompts reported by the title-generation
// response.
func (c *Collector) RecordTitlePhase(systemPrompt, topicPrompt string) {
	setOnce(&c.a.TitleSystemPrompt, systemPrompt)
	setOnce(&c.a.TopicPrompt, topicPrompt)
}

// RecordContentPhase stores the prompts and outline reported by the terminal
// `complete` event.
func (c *Collector) RecordContentPhase(systemPrompt, contentPrompt, outline string) {
	setOnce(&c.a.ContentSystemPrompt, systemPrompt)
	setOnce(&c.a.ContentPrompt, contentPrompt)
	setOnce(&c.a.OutlineUsed, outline)
}

// Snapshot returns a read-only copy of the collected audit.
func (c *Collector) Snapshot() types.PromptAudit {
	return c.a
}

// Reset clears every field.
func (c *Collector) Reset() {
	c.a = types.PromptAudit{}
}

func setOnce(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

// Package progress reduces the most recent progress event into the state of
// the three-stage generation pipeline shown while an article streams in.
package progress

import (
	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

// Stages lists the pipeline stages in order. Each stage's step number is its
// 1-based position in this list.
var Stages = []string{"outline", "draft", "review"}

// StageState classifies one stage relative to the latest progress event.
type StageState int

const (
	StagePending StageState = iota
	StageActive
	StageDone
)

func (s StageState) String() string {
	switch s {
	case StageActive:
		return "active"
	case StageDone:
		return "done"
	default:
		return "pending"
	}
}

// Tracker retains only the most recent progress event; it keeps no history.
// The zero value reports every stage pending and a zero fraction.
type Tracker struct {
	last types.ProgressEvent
	seen bool
}

// Observe replaces the current event. Last write wins; events are never
// merged.
func (t *Tracker) Observe(ev types.ProgressEvent) {
	t.last = ev
	t.seen = true
}

// Current returns the latest event and whether one has been observed.
func (t *Tracker) Current() (types.ProgressEvent, bool) {
	return t.last, t.seen
}

// StateOf classifies a stage: done once the latest step has moved strictly
// past it, active while it is the reported stage, pending otherwise.
func (t *Tracker) StateOf(stage string) StageState {
	if !t.seen {
		return StagePending
	}
	if step := stepOf(stage); step > 0 && t.last.Step > step {
		return StageDone
	}
	if t.last.Stage == stage {
		return StageActive
	}
	return StagePending
}

// Fraction computes the completion fraction for a determinate indicator:
// max(0, (step-1)/total). It is non-decreasing as long as steps are.
func (t *Tracker) Fraction() float64 {
	if !t.seen {
		return 0
	}
	total := t.last.Total
	if total <= 0 {
		total = len(Stages)
	}
	f := float64(t.last.Step-1) / float64(total)
	if f < 0 {
		return 0
	}
	return f
}

// Reset discards the retained event.
func (t *Tracker) Reset() {
	*t = Tracker{}
}

func stepOf(stage string) int {
	for i, name := range Stages {
		if name == stage {
			return i + 1
		}
	}
	return 0
}

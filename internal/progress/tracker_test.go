package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

func TestTracker_ZeroValueAllPending(t *testing.T) {
	var tr Tracker

	for _, stage := range Stages {
		assert.Equal(t, StagePending, tr.StateOf(stage))
	}
	assert.Zero(t, tr.Fraction())
	_, seen := tr.Current()
	assert.False(t, seen)
}

func TestTracker_StageClassification(t *testing.T) {
	tests := []struct {
		name    string
		event   types.ProgressEvent
		outline StageState
		draft   StageState
		review  StageState
	}{
		{
			name:    "outline active",
			event:   types.ProgressEvent{Stage: "outline", Step: 1, Total: 3},
			outline: StageActive,
			draft:   StagePending,
			review:  StagePending,
		},
		{
			name:    "draft active",
			event:   types.ProgressEvent{Stage: "draft", Step: 2, Total: 3},
			outline: StageDone,
			draft:   StageActive,
			review:  StagePending,
		},
		{
			name:    "review active",
			event:   types.ProgressEvent{Stage: "review", Step: 3, Total: 3},
			outline: StageDone,
			draft:   StageDone,
			review:  StageActive,
		},
		{
			name:    "no stage named",
			event:   types.ProgressEvent{Step: 2, Total: 3},
			outline: StageDone,
			draft:   StagePending,
			review:  StagePending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Tracker
			tr.Observe(tt.event)
			assert.Equal(t, tt.outline, tr.StateOf("outline"), "outline")
			assert.Equal(t, tt.draft, tr.StateOf("draft"), "draft")
			assert.Equal(t, tt.review, tr.StateOf("review"), "review")
		})
	}
}

func TestTracker_FractionMonotonicNonDecreasing(t *testing.T) {
	var tr Tracker
	prev := tr.Fraction()

	steps := []int{1, 1, 2, 2, 3, 3}
	for _, step := range steps {
		tr.Observe(types.ProgressEvent{Step: step, Total: 3})
		f := tr.Fraction()
		assert.GreaterOrEqual(t, f, prev, "step %d", step)
		prev = f
	}
	assert.InDelta(t, 2.0/3.0, prev, 1e-9)
}

func TestTracker_FractionClampedAtZero(t *testing.T) {
	var tr Tracker
	tr.Observe(types.ProgressEvent{Step: 0, Total: 3})
	assert.Zero(t, tr.Fraction())
}

func TestTracker_FractionDefaultsTotal(t *testing.T) {
	var tr Tracker
	tr.Observe(types.ProgressEvent{Step: 2})
	assert.InDelta(t, 1.0/3.0, tr.Fraction(), 1e-9)
}

func TestTracker_LastWriteWins(t *testing.T) {
	var tr Tracker
	tr.Observe(types.ProgressEvent{Stage: "outline", Step: 1, Total: 3, Message: "outlining"})
	tr.Observe(types.ProgressEvent{Stage: "draft", Step: 2, Total: 3, Message: "drafting"})

	ev, seen := tr.Current()
	assert.True(t, seen)
	assert.Equal(t, "drafting", ev.Message)
	assert.Equal(t, StageDone, tr.StateOf("outline"))
}

func TestTracker_Reset(t *testing.T) {
	var tr Tracker
	tr.Observe(types.ProgressEvent{Stage: "review", Step: 3, Total: 3})
	tr.Reset()

	_, seen := tr.Current()
	assert.False(t, seen)
	assert.Zero(t, tr.Fraction())
	assert.Equal(t, StagePending, tr.StateOf("review"))
}

// Package pipeline orchestrates the three-phase generation flow: title
// generation, optional experience interview, and streamed article generation.
package pipeline

// Phase is the explicit state of a generation session. Exactly one phase is
// current at a time, which keeps illegal combinations (content streaming
// while titles load, for example) unrepresentable.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseTitlesRequested    Phase = "titles_requested"
	PhaseTitlesReady        Phase = "titles_ready"
	PhaseInterviewRequested Phase = "interview_requested"
	PhaseInterviewReady     Phase = "interview_ready"
	PhaseContentRequested   Phase = "content_requested"
	PhaseContentStreaming   Phase = "content_streaming"
	PhaseContentComplete    Phase = "content_complete"
	PhaseContentFailed      Phase = "content_failed"
)

// InFlight reports whether a request or stream is outstanding. Trigger
// actions are rejected while any phase is in flight.
func (p Phase) InFlight() bool {
	switch p {
	case PhaseTitlesRequested, PhaseInterviewRequested, PhaseContentRequested, PhaseContentStreaming:
		return true
	}
	return false
}

// Terminal reports whether the content run has finished, successfully or not.
// Terminal phases are sticky: stray frames from a finished stream never
// revert them.
func (p Phase) Terminal() bool {
	return p == PhaseContentComplete || p == PhaseContentFailed
}

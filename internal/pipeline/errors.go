package pipeline

import (
	"errors"
	"fmt"
)

// ErrStaleRun reports that the session was reset (or a newer run started)
// while a request was in flight; the late result was discarded instead of
// being applied to the fresh session.
var ErrStaleRun = errors.New("pipeline: run superseded by reset")

// corruptedMessage is the user-facing failure message for malformed or
// truncated streams, distinct from a server-reported error event.
const corruptedMessage = "stream corrupted"

// PhaseError reports an operation invoked from a phase that does not allow
// it.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s while session is %s", e.Op, e.Phase)
}

// GenerationError carries the detail message of a server-sent `error` event.
type GenerationError struct {
	Detail string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %s", e.Detail)
}

// StreamError wraps a framing or decoding failure that corrupted the content
// stream.
type StreamError struct {
	Cause error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s: %v", corruptedMessage, e.Cause)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

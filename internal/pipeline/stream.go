package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/megbroc7/acta-ai-sub002/internal/sse"
	"github.com/megbroc7/acta-ai-sub002/internal/types"
	"github.com/megbroc7/acta-ai-sub002/schemas"
)

// Stream event types the controller understands. Anything else is ignored
// for forward compatibility.
const (
	eventProgress = "progress"
	eventComplete = "complete"
	eventError    = "error"
)

// GenerateContent runs the streamed content phase. It sends the current
// title plus the non-empty trimmed interview answers, then reduces incoming
// frames until the stream ends. onProgress, when non-nil, observes each
// progress event in arrival order.
//
// Failures of any kind — transport, server error event, malformed or
// truncated frames — land the session in ContentFailed with a surfaced
// message; no partial result is kept.
func (s *Session) GenerateContent(ctx context.Context, onProgress func(types.ProgressEvent)) (*types.GenerationResult, error) {
	s.mu.Lock()
	if s.phase != PhaseTitlesReady && s.phase != PhaseInterviewReady {
		defer s.mu.Unlock()
		return nil, &PhaseError{Op: "generate content", Phase: s.phase}
	}
	prev := s.phase
	s.run++
	run := s.run
	s.phase = PhaseContentRequested
	s.tracker.Reset()
	req := types.ContentRequest{
		Title:             s.title,
		ExperienceAnswers: AnswersForContent(s.interview),
	}
	s.mu.Unlock()

	s.logent("opening content stream for title %q (%d answers)", req.Title, len(req.ExperienceAnswers))
	stream, err := s.backend.OpenContentStream(ctx, req)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.run != run {
			return nil, ErrStaleRun
		}
		s.phase = prev
		return nil, fmt.Errorf("content generation: %w", err)
	}
	defer func() { _ = stream.Close() }()

	s.mu.Lock()
	if s.run != run {
		s.mu.Unlock()
		return nil, ErrStaleRun
	}
	s.phase = PhaseContentStreaming
	s.mu.Unlock()

	return s.pump(run, stream, onProgress)
}

// pump reads the stream to EOF, decoding frames and applying them to the
// session. Once a terminal event has been seen the remaining stream is
// drained and ignored rather than aborted mid-read, so the connection is not
// left in an undefined state.
func (s *Session) pump(run uint64, r io.Reader, onProgress func(types.ProgressEvent)) (*types.GenerationResult, error) {
	dec := sse.NewDecoder()
	buf := make([]byte, 4096)

	var (
		result     *types.GenerationResult
		failDetail string
		terminal   bool
	)

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			for _, rec := range dec.Push(buf[:n]) {
				if terminal {
					s.logent("ignoring %s frame after terminal event", rec.Event)
					continue
				}
				switch rec.Event {
				case eventProgress:
					ev, err := s.decodeProgress(rec.Data)
					if err != nil {
						return nil, s.corrupt(run, err)
					}
					if err := s.applyProgress(run, ev); err != nil {
						return nil, err
					}
					if onProgress != nil {
						onProgress(ev)
					}
				case eventComplete:
					res, a, err := s.decodeComplete(rec.Data)
					if err != nil {
						return nil, s.corrupt(run, err)
					}
					if err := s.applyComplete(run, res, a); err != nil {
						return nil, err
					}
					result = res
					terminal = true
				case eventError:
					detail, err := decodeErrorDetail(rec.Data)
					if err != nil {
						return nil, s.corrupt(run, err)
					}
					if err := s.applyFailure(run, detail); err != nil {
						return nil, err
					}
					failDetail = detail
					terminal = true
				default:
					// Unknown event types are ignored for forward compatibility.
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			if terminal {
				break
			}
			return nil, s.corrupt(run, fmt.Errorf("read stream: %w", readErr))
		}
	}

	if !terminal {
		if err := dec.Finish(); err != nil {
			return nil, s.corrupt(run, err)
		}
		return nil, s.corrupt(run, fmt.Errorf("stream ended without a terminal event"))
	}

	if failDetail != "" {
		return nil, &GenerationError{Detail: failDetail}
	}
	res := *result
	return &res, nil
}

func (s *Session) decodeProgress(data string) (types.ProgressEvent, error) {
	if s.strict {
		if err := schemas.Validate(schemas.ProgressPayload, []byte(data)); err != nil {
			return types.ProgressEvent{}, err
		}
	}
	var ev types.ProgressEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		return types.ProgressEvent{}, fmt.Errorf("decode progress payload: %w", err)
	}
	return ev, nil
}

func (s *Session) decodeComplete(data string) (*types.GenerationResult, *types.CompletePayload, error) {
	if s.strict {
		if err := schemas.Validate(schemas.CompletePayload, []byte(data)); err != nil {
			return nil, nil, err
		}
	}
	var payload types.CompletePayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, nil, fmt.Errorf("decode complete payload: %w", err)
	}
	return &types.GenerationResult{
		ContentHTML:     payload.ContentHTML,
		ContentMarkdown: payload.ContentMarkdown,
		Excerpt:         payload.Excerpt,
	}, &payload, nil
}

func decodeErrorDetail(data string) (string, error) {
	var payload types.ErrorPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return "", fmt.Errorf("decode error payload: %w", err)
	}
	return payload.Detail, nil
}

// applyProgress replaces the current progress state; last write wins.
func (s *Session) applyProgress(run uint64, ev types.ProgressEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != run {
		return ErrStaleRun
	}
	s.tracker.Observe(ev)
	return nil
}

func (s *Session) applyComplete(run uint64, res *types.GenerationResult, payload *types.CompletePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != run {
		return ErrStaleRun
	}
	r := *res
	s.result = &r
	s.audit.RecordContentPhase(payload.SystemPromptUsed, payload.ContentPromptUsed, payload.OutlineUsed)
	s.phase = PhaseContentComplete
	return nil
}

func (s *Session) applyFailure(run uint64, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != run {
		return ErrStaleRun
	}
	s.failure = detail
	s.phase = PhaseContentFailed
	return nil
}

// corrupt routes a framing or decoding failure through ContentFailed with a
// generic surfaced message, unless the run has been superseded.
func (s *Session) corrupt(run uint64, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != run {
		return ErrStaleRun
	}
	s.failure = corruptedMessage
	s.phase = PhaseContentFailed
	s.result = nil
	return &StreamError{Cause: cause}
}

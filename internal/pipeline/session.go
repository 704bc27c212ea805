package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/megbroc7/acta-ai-sub002/internal/audit"
	"github.com/megbroc7/acta-ai-sub002/internal/progress"
	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

// TitleCount is the number of candidates the title phase must return.
const TitleCount = 5

// Backend is the narrow surface the session needs from the generation API.
// transport.Client satisfies it; tests substitute synthetic backends.
type Backend interface {
	GenerateTitles(ctx context.Context, req types.TitleRequest) (*types.TitleResponse, error)
	GenerateInterview(ctx context.Context, req types.InterviewRequest) (*types.InterviewResponse, error)
	OpenContentStream(ctx context.Context, req types.ContentRequest) (io.ReadCloser, error)
}

// Session owns all mutable state for one generation flow: the phase machine,
// title selection, interview answers, progress, audit, and the final result.
// At most one phase is in flight at a time; a run counter (bumped on Reset
// and on every content start) keeps late responses from a superseded run off
// the fresh state.
type Session struct {
	id      uuid.UUID
	backend Backend
	strict  bool
	logf    func(format string, args ...any)

	mu        sync.Mutex
	phase     Phase
	run       uint64
	titles    []types.TitleCandidate
	selected  int
	title     string
	interview []types.InterviewItem
	tracker   progress.Tracker
	audit     audit.Collector
	result    *types.GenerationResult
	failure   string
}

// Option configures a Session.
type Option func(*Session)

// WithStrictFrames enables JSON Schema validation of stream payloads before
// decoding; violations fail the run like any other corrupted frame.
func WithStrictFrames() Option {
	return func(s *Session) { s.strict = true }
}

// WithLogf routes verbose session logging to f.
func WithLogf(f func(format string, args ...any)) Option {
	return func(s *Session) { s.logf = f }
}

// NewSession creates an idle session over the given backend.
func NewSession(backend Backend, opts ...Option) *Session {
	s := &Session{
		id:      uuid.New(),
		backend: backend,
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// GenerateTitles runs the title phase for a free-text topic. On success the
// session holds five candidates with index 0 pre-selected and the editable
// title seeded from it.
func (s *Session) GenerateTitles(ctx context.Context, topic string) ([]types.TitleCandidate, error) {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		defer s.mu.Unlock()
		return nil, &PhaseError{Op: "generate titles", Phase: s.phase}
	}
	run := s.run
	s.phase = PhaseTitlesRequested
	s.mu.Unlock()

	s.logent("generating titles for topic %q", topic)
	resp, err := s.backend.GenerateTitles(ctx, types.TitleRequest{Topic: topic})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != run {
		return nil, ErrStaleRun
	}
	if err != nil {
		s.phase = PhaseIdle
		return nil, fmt.Errorf("title generation: %w", err)
	}
	if len(resp.Titles) != TitleCount {
		s.phase = PhaseIdle
		return nil, fmt.Errorf("title generation: expected %d titles, got %d", TitleCount, len(resp.Titles))
	}

	s.titles = make([]types.TitleCandidate, TitleCount)
	for i, text := range resp.Titles {
		s.titles[i] = types.TitleCandidate{
			Index:      i,
			Text:       text,
			StyleLabel: types.StyleLabelFor(i),
		}
	}
	s.selected = 0
	s.title = resp.Titles[0]
	s.audit.RecordTitlePhase(resp.TitleSystemPromptUsed, resp.TopicPromptUsed)
	s.phase = PhaseTitlesReady
	return s.titlesCopy(), nil
}

// SelectTitle marks a candidate as selected and seeds the editable title with
// its text.
func (s *Session) SelectTitle(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseTitlesReady && s.phase != PhaseInterviewReady {
		return &PhaseError{Op: "select title", Phase: s.phase}
	}
	if index < 0 || index >= len(s.titles) {
		return fmt.Errorf("title index %d out of range", index)
	}
	s.selected = index
	s.title = s.titles[index].Text
	return nil
}

// SetTitle replaces the editable title. The selected candidate index is kept
// for display, but the edited text is what every later phase sends.
func (s *Session) SetTitle(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseTitlesReady && s.phase != PhaseInterviewReady {
		return &PhaseError{Op: "edit title", Phase: s.phase}
	}
	s.title = text
	return nil
}

// GenerateInterview runs the optional interview phase for the current title.
// Questions come back with empty answers; any subset may stay unanswered.
func (s *Session) GenerateInterview(ctx context.Context) ([]types.InterviewItem, error) {
	s.mu.Lock()
	if s.phase != PhaseTitlesReady {
		defer s.mu.Unlock()
		return nil, &PhaseError{Op: "generate interview", Phase: s.phase}
	}
	run := s.run
	title := s.title
	s.phase = PhaseInterviewRequested
	s.mu.Unlock()

	s.logent("generating interview questions for title %q", title)
	resp, err := s.backend.GenerateInterview(ctx, types.InterviewRequest{Title: title})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != run {
		return nil, ErrStaleRun
	}
	if err != nil {
		s.phase = PhaseTitlesReady
		return nil, fmt.Errorf("interview generation: %w", err)
	}

	s.interview = make([]types.InterviewItem, len(resp.Questions))
	for i, q := range resp.Questions {
		s.interview[i] = types.InterviewItem{Question: q}
	}
	s.phase = PhaseInterviewReady
	return s.interviewCopy(), nil
}

// SetAnswer records the user's answer to an interview question.
func (s *Session) SetAnswer(index int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInterviewReady {
		return &PhaseError{Op: "answer interview question", Phase: s.phase}
	}
	if index < 0 || index >= len(s.interview) {
		return fmt.Errorf("interview question index %d out of range", index)
	}
	s.interview[index].Answer = answer
	return nil
}

// Reset returns the session to Idle, discarding all session data. It does
// not cancel in-flight I/O; the bumped run counter makes any late response
// land as a discarded stale run.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run++
	s.phase = PhaseIdle
	s.titles = nil
	s.selected = 0
	s.title = ""
	s.interview = nil
	s.tracker.Reset()
	s.audit.Reset()
	s.result = nil
	s.failure = ""
}

// Titles returns a copy of the current candidates.
func (s *Session) Titles() []types.TitleCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.titlesCopy()
}

// SelectedIndex returns the index of the candidate marked selected.
func (s *Session) SelectedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Title returns the editable title as it currently stands.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// Interview returns a copy of the interview items.
func (s *Session) Interview() []types.InterviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interviewCopy()
}

// Progress returns a snapshot of the progress tracker.
func (s *Session) Progress() progress.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker
}

// Audit returns the prompt audit collected so far.
func (s *Session) Audit() types.PromptAudit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audit.Snapshot()
}

// Result returns the generation result, or nil before a successful run.
func (s *Session) Result() *types.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	res := *s.result
	return &res
}

// Failure returns the surfaced failure message for a ContentFailed run.
func (s *Session) Failure() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// AnswersForContent filters interview items down to the answers whose
// trimmed text is non-empty, preserving question order.
func AnswersForContent(items []types.InterviewItem) []string {
	answers := make([]string, 0, len(items))
	for _, item := range items {
		if a := strings.TrimSpace(item.Answer); a != "" {
			answers = append(answers, a)
		}
	}
	return answers
}

func (s *Session) titlesCopy() []types.TitleCandidate {
	out := make([]types.TitleCandidate, len(s.titles))
	copy(out, s.titles)
	return out
}

func (s *Session) interviewCopy() []types.InterviewItem {
	out := make([]types.InterviewItem, len(s.interview))
	copy(out, s.interview)
	return out
}

func (s *Session) logent(format string, args ...any) {
	if s.logf != nil {
		s.logf("[SESSION %s] "+format, append([]any{shortID(s.id)}, args...)...)
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

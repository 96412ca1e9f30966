package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acsaprep/preptool/internal/gateway"
	"github.com/acsaprep/preptool/internal/notify"
	"github.com/acsaprep/preptool/internal/parsing"
	"github.com/acsaprep/preptool/internal/prompts"
	"github.com/acsaprep/preptool/internal/store"
)

var (
	// ErrNoSession indicates no active session exists for the profile.
	ErrNoSession = errors.New("no active interview session")
	// ErrEmptyAnswer blocks submission of a blank answer.
	ErrEmptyAnswer = errors.New("answer must not be empty")
	// ErrMissingRoleOrLevel blocks starting without both selections.
	ErrMissingRoleOrLevel = errors.New("role and level are required")
	// ErrNotComplete indicates the session has unanswered questions.
	ErrNotComplete = errors.New("interview session is not complete")
	// ErrInvalidTransition rejects an operation the current phase does not
	// allow, such as advancing before any feedback exists.
	ErrInvalidTransition = errors.New("operation not valid in current phase")
)

// Service orchestrates interview sessions: AI question generation and
// grading through the gateway, persistence through the store, and the
// pure Session transitions in between. Completed sessions stay cached in
// memory so summaries and retries remain available after the persisted
// state is cleared.
type Service struct {
	gw       gateway.Asker
	store    store.Store
	notifier notify.Notifier

	mu        sync.Mutex
	sessions  map[uuid.UUID]*Session
	summaries map[uuid.UUID]*Summary
}

// NewService wires a Service over its dependencies.
func NewService(gw gateway.Asker, st store.Store, notifier notify.Notifier) *Service {
	return &Service{
		gw:        gw,
		store:     st,
		notifier:  notifier,
		sessions:  make(map[uuid.UUID]*Session),
		summaries: make(map[uuid.UUID]*Summary),
	}
}

// Start begins a new session for the profile, generating questions for
// the role and level. Unusable AI output falls back to the curated
// question set without erroring.
func (s *Service) Start(ctx context.Context, profileID uuid.UUID, role, level string) (*Session, error) {
	if role == "" || level == "" {
		return nil, ErrMissingRoleOrLevel
	}

	questions := s.generateQuestions(ctx, role, level)

	session := &Session{
		Role:      role,
		Level:     level,
		Questions: questions,
	}
	s.cache(profileID, session)
	if err := s.persist(ctx, profileID, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) generateQuestions(ctx context.Context, role, level string) []string {
	prompt, err := prompts.Render("interview.json", "generate-questions", map[string]string{
		"Role":  role,
		"Level": level,
	})
	if err != nil {
		return parsing.FallbackQuestions(role)
	}

	raw := s.gw.Ask(ctx, prompt)
	questions, err := parsing.ParseQuestions(raw)
	if err != nil {
		s.notify(notify.LevelInfo, "Using curated questions")
		return parsing.FallbackQuestions(role)
	}

	s.notify(notify.LevelInfo, "AI-generated questions ready!")
	return questions
}

// Resume returns the profile's in-progress session, reloading persisted
// state when the in-memory copy is gone.
func (s *Service) Resume(ctx context.Context, profileID uuid.UUID) (*Session, error) {
	return s.load(ctx, profileID)
}

// Submit grades the answer to the active question (or open follow-up)
// and records it. The index does not advance; grading a follow-up answer
// never consumes a question slot.
func (s *Service) Submit(ctx context.Context, profileID uuid.UUID, answer string) (*Session, parsing.Feedback, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, parsing.Feedback{}, ErrEmptyAnswer
	}

	session, err := s.load(ctx, profileID)
	if err != nil {
		return nil, parsing.Feedback{}, err
	}
	if session.Completed() {
		return nil, parsing.Feedback{}, fmt.Errorf("session already complete: %w", ErrNoSession)
	}

	fb := s.grade(ctx, session.Role, session.ActiveQuestion(), answer)
	session.RecordAnswer(answer, fb.Text, fb.Score, fb.Followup)

	if err := s.persist(ctx, profileID, session); err != nil {
		return nil, parsing.Feedback{}, err
	}
	return session, fb, nil
}

func (s *Service) grade(ctx context.Context, role, question, answer string) parsing.Feedback {
	prompt, err := prompts.Render("interview.json", "grade-answer", map[string]string{
		"Role":     role,
		"Question": question,
		"Answer":   answer,
	})
	if err != nil {
		return parsing.HeuristicFeedback(answer)
	}

	raw := s.gw.Ask(ctx, prompt)
	fb, err := parsing.ParseFeedback(raw)
	if err != nil {
		return parsing.HeuristicFeedback(answer)
	}
	return fb
}

// Skip records the sentinel answer for the active question and advances.
// No grading call is made. Skipping is only valid while a question is
// awaiting its answer; once feedback is shown the question is already
// recorded, and moving on is Next's job.
func (s *Service) Skip(ctx context.Context, profileID uuid.UUID) (*Session, *Summary, error) {
	session, err := s.load(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	if session.Completed() {
		return nil, nil, fmt.Errorf("session already complete: %w", ErrNoSession)
	}
	if session.Phase() != PhaseQuestion {
		return nil, nil, fmt.Errorf("cannot skip after answering: %w", ErrInvalidTransition)
	}

	session.Skip()
	summary, err := s.afterAdvance(ctx, profileID, session)
	return session, summary, err
}

// AcceptFollowup re-enters the question phase with the open follow-up as
// the active prompt.
func (s *Service) AcceptFollowup(ctx context.Context, profileID uuid.UUID) (*Session, error) {
	session, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !session.AcceptFollowup() {
		return nil, fmt.Errorf("no follow-up to answer: %w", ErrNoSession)
	}
	if err := s.persist(ctx, profileID, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Next advances past the current question, discarding any open
// follow-up. On completion it returns the summary and clears persisted
// session state. Advancing is only valid from the feedback phase, so a
// question can never be passed over without an answer on record.
func (s *Service) Next(ctx context.Context, profileID uuid.UUID) (*Session, *Summary, error) {
	session, err := s.load(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	if session.Completed() {
		return nil, nil, fmt.Errorf("session already complete: %w", ErrNoSession)
	}
	if session.Phase() != PhaseFeedback {
		return nil, nil, fmt.Errorf("no feedback to advance from: %w", ErrInvalidTransition)
	}

	session.Advance()
	summary, err := s.afterAdvance(ctx, profileID, session)
	return session, summary, err
}

// afterAdvance persists the moved session, or on completion builds the
// summary and clears the stored state.
func (s *Service) afterAdvance(ctx context.Context, profileID uuid.UUID, session *Session) (*Summary, error) {
	if !session.Completed() {
		return nil, s.persist(ctx, profileID, session)
	}

	summary := NewSummary(session, time.Now())
	s.mu.Lock()
	s.summaries[profileID] = summary
	s.mu.Unlock()

	if err := s.store.Delete(ctx, profileID, store.KeyInterviewSession); err != nil {
		return summary, fmt.Errorf("failed to clear completed session: %w", err)
	}
	return summary, nil
}

// Summary returns the report for the profile's most recently completed
// session.
func (s *Service) Summary(profileID uuid.UUID) (*Summary, error) {
	s.mu.Lock()
	summary := s.summaries[profileID]
	s.mu.Unlock()

	if summary == nil {
		return nil, ErrNotComplete
	}
	return summary, nil
}

// RetryWeak restarts the completed session with only the questions
// scored below 7. When no such questions exist it is a no-op.
func (s *Service) RetryWeak(ctx context.Context, profileID uuid.UUID) (*Session, error) {
	session, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if !session.RetryWeak() {
		s.notify(notify.LevelInfo, "No questions with low scores to retry!")
		return session, nil
	}
	if err := s.persist(ctx, profileID, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) load(ctx context.Context, profileID uuid.UUID) (*Session, error) {
	s.mu.Lock()
	session := s.sessions[profileID]
	s.mu.Unlock()
	if session != nil {
		return session, nil
	}

	var loaded Session
	err := store.GetJSON(ctx, s.store, profileID, store.KeyInterviewSession, &loaded)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if len(loaded.Questions) == 0 {
		return nil, ErrNoSession
	}

	s.cache(profileID, &loaded)
	return &loaded, nil
}

func (s *Service) cache(profileID uuid.UUID, session *Session) {
	s.mu.Lock()
	s.sessions[profileID] = session
	s.mu.Unlock()
}

func (s *Service) persist(ctx context.Context, profileID uuid.UUID, session *Session) error {
	if err := store.SetJSON(ctx, s.store, profileID, store.KeyInterviewSession, session); err != nil {
		return fmt.Errorf("failed to save interview session: %w", err)
	}
	return nil
}

func (s *Service) notify(level notify.Level, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}

// Package interview implements the interview-practice flow: question
// generation, answer grading, follow-ups, skips, completion summaries,
// and weak-question retries. Session holds pure state with pure
// transitions; Service owns the AI gateway and storage side effects.
package interview

import (
	"math"
)

// SkippedAnswer is the sentinel recorded when a question is skipped.
const SkippedAnswer = "[Skipped]"

// weakScoreThreshold marks answers eligible for retry.
const weakScoreThreshold = 7

// Phase is the current step of the interview flow.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseQuestion Phase = "question"
	PhaseFeedback Phase = "feedback"
	PhaseComplete Phase = "complete"
)

// Answer is one graded response. Immutable once appended; score 0 is
// reserved for skipped questions.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
	Score    int    `json:"score"`
	Followup string `json:"followup,omitempty"`
}

// Session is the complete interview state for one profile. All methods
// that mutate it are synchronous transitions with no side effects;
// persistence and AI calls live in Service.
type Session struct {
	Role                 string   `json:"role"`
	Level                string   `json:"level"`
	Questions            []string `json:"questions"`
	CurrentQuestionIndex int      `json:"currentQuestionIndex"`
	Answers              []Answer `json:"answers"`
	// PendingFollowup holds the follow-up prompt the user has not yet
	// answered or skipped. Answering it does not advance the index.
	PendingFollowup string `json:"pendingFollowup,omitempty"`
	// AwaitingNext is set between grading and the user's next-question
	// action.
	AwaitingNext bool `json:"awaitingNext,omitempty"`
}

// Phase derives the current step from state.
func (s *Session) Phase() Phase {
	switch {
	case len(s.Questions) == 0:
		return PhaseSetup
	case s.Completed():
		return PhaseComplete
	case s.AwaitingNext || s.PendingFollowup != "":
		return PhaseFeedback
	default:
		return PhaseQuestion
	}
}

// Completed reports whether every question has been answered or skipped.
func (s *Session) Completed() bool {
	return len(s.Questions) > 0 && s.CurrentQuestionIndex >= len(s.Questions)
}

// ActiveQuestion is the prompt the user is currently answering: the
// pending follow-up when one is open, otherwise the indexed question.
// Empty once the session is complete.
func (s *Session) ActiveQuestion() string {
	if s.PendingFollowup != "" {
		return s.PendingFollowup
	}
	if s.Completed() {
		return ""
	}
	return s.Questions[s.CurrentQuestionIndex]
}

// RecordAnswer appends a graded answer for the active question and opens
// the follow-up when the grader posed one. The index does not advance
// until Advance.
func (s *Session) RecordAnswer(answer, feedback string, score int, followup string) {
	s.Answers = append(s.Answers, Answer{
		Question: s.ActiveQuestion(),
		Answer:   answer,
		Feedback: feedback,
		Score:    score,
		Followup: followup,
	})
	s.PendingFollowup = followup
	s.AwaitingNext = true
}

// Skip records the sentinel answer with score 0 and advances immediately.
func (s *Session) Skip() {
	s.Answers = append(s.Answers, Answer{
		Question: s.ActiveQuestion(),
		Answer:   SkippedAnswer,
		Feedback: "Question skipped",
		Score:    0,
	})
	s.PendingFollowup = ""
	s.AwaitingNext = false
	s.CurrentQuestionIndex++
}

// AcceptFollowup re-enters the question phase with the follow-up text as
// the active prompt, without advancing the index.
func (s *Session) AcceptFollowup() bool {
	if s.PendingFollowup == "" {
		return false
	}
	s.AwaitingNext = false
	return true
}

// Advance moves to the next question, discarding any open follow-up.
func (s *Session) Advance() {
	s.PendingFollowup = ""
	s.AwaitingNext = false
	s.CurrentQuestionIndex++
}

// MeanScore is the arithmetic mean across recorded answers, rounded to
// one decimal. Zero when nothing has been answered.
func (s *Session) MeanScore() float64 {
	if len(s.Answers) == 0 {
		return 0
	}
	total := 0
	for _, a := range s.Answers {
		total += a.Score
	}
	mean := float64(total) / float64(len(s.Answers))
	return math.Round(mean*10) / 10
}

// WeakAnswers returns the answers scored below the retry threshold, in
// recorded order.
func (s *Session) WeakAnswers() []Answer {
	var weak []Answer
	for _, a := range s.Answers {
		if a.Score < weakScoreThreshold {
			weak = append(weak, a)
		}
	}
	return weak
}

// RetryWeak restarts the session with only the questions whose score was
// below the retry threshold, discarding prior answers. Returns false and
// leaves state untouched when no weak answers exist.
func (s *Session) RetryWeak() bool {
	weak := s.WeakAnswers()
	if len(weak) == 0 {
		return false
	}

	questions := make([]string, len(weak))
	for i, a := range weak {
		questions[i] = a.Question
	}
	s.Questions = questions
	s.CurrentQuestionIndex = 0
	s.Answers = nil
	s.PendingFollowup = ""
	s.AwaitingNext = false
	return true
}

package server

import (
	"fmt"
	"net/http"

	"github.com/acsaprep/preptool/internal/interview"
	"github.com/acsaprep/preptool/internal/parsing"
)

// sessionPayload is the wire shape of a session: the stored state plus the
// derived phase and the question currently awaiting an answer.
type sessionPayload struct {
	*interview.Session
	Phase          interview.Phase `json:"phase"`
	ActiveQuestion string          `json:"activeQuestion,omitempty"`
}

func newSessionPayload(sess *interview.Session) sessionPayload {
	return sessionPayload{
		Session:        sess,
		Phase:          sess.Phase(),
		ActiveQuestion: sess.ActiveQuestion(),
	}
}

// feedbackPayload is the wire shape of graded feedback.
type feedbackPayload struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Suggestions string `json:"suggestions,omitempty"`
	Followup    string `json:"followup,omitempty"`
}

func newFeedbackPayload(fb parsing.Feedback) feedbackPayload {
	return feedbackPayload{
		Score:       fb.Score,
		Feedback:    fb.Text,
		Suggestions: fb.Suggestions,
		Followup:    fb.Followup,
	}
}

// advancePayload carries the session after a skip or next action, with the
// summary attached once the session completes.
type advancePayload struct {
	Session sessionPayload     `json:"session"`
	Summary *interview.Summary `json:"summary,omitempty"`
}

type startInterviewRequest struct {
	Role  string `json:"role" validate:"required"`
	Level string `json:"level" validate:"required"`
}

// handleInterviewStart creates a new practice session for the profile.
func (s *Server) handleInterviewStart(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req startInterviewRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.interviews.Start(r.Context(), profileID, req.Role, req.Level)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, newSessionPayload(sess))
}

// handleInterviewSession returns the in-progress session, if any. The client
// calls this on page load to offer resumption.
func (s *Server) handleInterviewSession(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.interviews.Resume(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionPayload(sess))
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// handleInterviewAnswer grades the submitted answer against the active
// question (main or follow-up) and returns the feedback.
func (s *Server) handleInterviewAnswer(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req answerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, fb, err := s.interviews.Submit(r.Context(), profileID, req.Answer)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session":  newSessionPayload(sess),
		"feedback": newFeedbackPayload(fb),
	})
}

// handleInterviewSkip records a skip for the current question and advances.
func (s *Server) handleInterviewSkip(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, summary, err := s.interviews.Skip(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, advancePayload{
		Session: newSessionPayload(sess),
		Summary: summary,
	})
}

// handleInterviewFollowup accepts the pending follow-up question, making it
// the active question without advancing the index.
func (s *Server) handleInterviewFollowup(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.interviews.AcceptFollowup(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionPayload(sess))
}

// handleInterviewNext advances past the feedback screen to the next
// question, completing the session after the last one.
func (s *Server) handleInterviewNext(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, summary, err := s.interviews.Next(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, advancePayload{
		Session: newSessionPayload(sess),
		Summary: summary,
	})
}

// handleInterviewRetryWeak starts a focused session over the questions the
// profile scored below 7 on in the just-completed session.
func (s *Server) handleInterviewRetryWeak(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.interviews.RetryWeak(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionPayload(sess))
}

// handleInterviewSummary returns the completed session's summary report.
func (s *Server) handleInterviewSummary(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.interviews.Summary(profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleInterviewSummaryDownload returns the summary as a plain-text
// attachment.
func (s *Server) handleInterviewSummaryDownload(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.interviews.Summary(profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", summary.Filename()))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, summary.Text())
}

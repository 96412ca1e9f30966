package server

import (
	"net/http"

	"github.com/acsaprep/preptool/internal/chat"
)

// panel resolves the {panel} path segment to a configured chat panel.
func (s *Server) panel(w http.ResponseWriter, r *http.Request) (*chat.Panel, bool) {
	name := r.PathValue("panel")
	p, ok := s.panels[name]
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "unknown panel: "+name)
		return nil, false
	}
	return p, true
}

type panelMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// handlePanelSend submits a user message to the panel and returns the
// assistant reply.
func (s *Server) handlePanelSend(w http.ResponseWriter, r *http.Request) {
	p, ok := s.panel(w, r)
	if !ok {
		return
	}
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req panelMessageRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := p.Send(r.Context(), profileID, req.Message)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"reply": reply})
}

// handlePanelRecent returns the replay window shown when the panel loads.
func (s *Server) handlePanelRecent(w http.ResponseWriter, r *http.Request) {
	p, ok := s.panel(w, r)
	if !ok {
		return
	}
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	messages, err := p.Recent(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"messages": messages})
}

// handlePanelHistory returns the full stored conversation.
func (s *Server) handlePanelHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.panel(w, r)
	if !ok {
		return
	}
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	messages, err := p.History(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"messages": messages})
}

// handlePanelClear deletes the stored conversation.
func (s *Server) handlePanelClear(w http.ResponseWriter, r *http.Request) {
	p, ok := s.panel(w, r)
	if !ok {
		return
	}
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := p.Clear(r.Context(), profileID); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type panelFeedbackRequest struct {
	Type string `json:"type" validate:"required"`
}

// handlePanelFeedback records a thumbs-up/down on the latest reply.
func (s *Server) handlePanelFeedback(w http.ResponseWriter, r *http.Request) {
	p, ok := s.panel(w, r)
	if !ok {
		return
	}
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req panelFeedbackRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := p.Feedback(r.Context(), profileID, req.Type); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/acsaprep/preptool/internal/export"
	"github.com/acsaprep/preptool/internal/resume"
)

// handleResumeLoad returns the profile's resume document, empty if none has
// been saved yet. Progress rides along for the completion meter.
func (s *Server) handleResumeLoad(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.Load(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

// handleResumeSave validates and persists a full document.
func (s *Server) handleResumeSave(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var doc resume.Document
	if err := s.decodeJSON(r, &doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.resumes.Save(r.Context(), profileID, &doc); err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, &doc)
}

// handleResumeClear deletes the stored document.
func (s *Server) handleResumeClear(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.resumes.Clear(r.Context(), profileID); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type applyTemplateRequest struct {
	Template  string `json:"template" validate:"required"`
	Confirmed bool   `json:"confirmed"`
}

// handleResumeTemplate loads a role template into the document. When the
// document already has data the request must carry confirmed=true; a 409
// with confirmationRequired signals the client to prompt the user.
func (s *Server) handleResumeTemplate(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req applyTemplateRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.ApplyTemplate(r.Context(), profileID, req.Template, req.Confirmed)
	if err != nil {
		if errors.Is(err, resume.ErrConfirmationRequired) {
			s.jsonResponse(w, http.StatusConflict, map[string]any{
				"error":                "This will replace your current resume data. Confirm to continue.",
				"confirmationRequired": true,
			})
			return
		}
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

type personalRequest struct {
	Personal resume.Personal `json:"personal"`
	Summary  string          `json:"summary"`
}

// handleResumePersonal updates the contact header and summary.
func (s *Server) handleResumePersonal(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req personalRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.UpdatePersonal(r.Context(), profileID, req.Personal, req.Summary)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleExperienceCreate(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var exp resume.Experience
	if err := s.decodeJSON(r, &exp); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.AddExperience(r.Context(), profileID, exp)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleExperienceUpdate(w http.ResponseWriter, r *http.Request) {
	profileID, entryID, ok := s.entryRequest(w, r)
	if !ok {
		return
	}

	var exp resume.Experience
	if err := s.decodeJSON(r, &exp); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	exp.ID = entryID

	doc, err := s.resumes.UpdateExperience(r.Context(), profileID, exp)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleExperienceDelete(w http.ResponseWriter, r *http.Request) {
	profileID, entryID, ok := s.entryRequest(w, r)
	if !ok {
		return
	}

	doc, err := s.resumes.RemoveExperience(r.Context(), profileID, entryID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleEducationCreate(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var edu resume.Education
	if err := s.decodeJSON(r, &edu); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.AddEducation(r.Context(), profileID, edu)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleEducationUpdate(w http.ResponseWriter, r *http.Request) {
	profileID, entryID, ok := s.entryRequest(w, r)
	if !ok {
		return
	}

	var edu resume.Education
	if err := s.decodeJSON(r, &edu); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	edu.ID = entryID

	doc, err := s.resumes.UpdateEducation(r.Context(), profileID, edu)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleEducationDelete(w http.ResponseWriter, r *http.Request) {
	profileID, entryID, ok := s.entryRequest(w, r)
	if !ok {
		return
	}

	doc, err := s.resumes.RemoveEducation(r.Context(), profileID, entryID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleCertificationCreate(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var cert resume.Certification
	if err := s.decodeJSON(r, &cert); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.AddCertification(r.Context(), profileID, cert)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleCertificationUpdate(w http.ResponseWriter, r *http.Request) {
	profileID, entryID, ok := s.entryRequest(w, r)
	if !ok {
		return
	}

	var cert resume.Certification
	if err := s.decodeJSON(r, &cert); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	cert.ID = entryID

	doc, err := s.resumes.UpdateCertification(r.Context(), profileID, cert)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleCertificationDelete(w http.ResponseWriter, r *http.Request) {
	profileID, entryID, ok := s.entryRequest(w, r)
	if !ok {
		return
	}

	doc, err := s.resumes.RemoveCertification(r.Context(), profileID, entryID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

type skillRequest struct {
	Skill string `json:"skill" validate:"required"`
}

func (s *Server) handleSkillAdd(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req skillRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.AddSkill(r.Context(), profileID, req.Skill)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

func (s *Server) handleSkillRemove(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.RemoveSkill(r.Context(), profileID, r.PathValue("skill"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

type moveRequest struct {
	Section resume.Section `json:"section" validate:"required"`
	From    int            `json:"from"`
	To      int            `json:"to"`
}

// handleResumeMove reorders an entry within a section, mirroring a
// drag-and-drop on the client.
func (s *Server) handleResumeMove(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req moveRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.Move(r.Context(), profileID, req.Section, req.From, req.To)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

// handleSuggestSummary generates a role-tailored professional summary and
// applies it to the document.
func (s *Server) handleSuggestSummary(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.SuggestSummary(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

// handleSuggestSkills returns suggested skills without applying them; the
// client presents them as choices.
func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	skills, err := s.resumes.SuggestSkills(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"skills": skills})
}

// handleSuggestBullets generates achievement bullets for one experience
// entry and applies them.
func (s *Server) handleSuggestBullets(w http.ResponseWriter, r *http.Request) {
	profileID, entryID, ok := s.entryRequest(w, r)
	if !ok {
		return
	}

	doc, err := s.resumes.SuggestBullets(r.Context(), profileID, entryID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.resumeResponse(w, doc)
}

// handleResumePreview returns the live preview HTML fragment.
func (s *Server) handleResumePreview(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	html, err := s.resumes.Preview(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, html)
}

// handleResumeExport prints the document to a letter-size PDF.
func (s *Server) handleResumeExport(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.resumes.Load(r.Context(), profileID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	html, err := resume.RenderExportHTML(doc)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	pdf, err := export.PDF(r.Context(), html)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="Resume.pdf"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		return
	}
}

// entryRequest resolves the profile and the entry ID path segment shared by
// the per-entry handlers.
func (s *Server) entryRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	profileID, err := s.profileID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, uuid.Nil, false
	}
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid entry ID")
		return uuid.Nil, uuid.Nil, false
	}
	return profileID, entryID, true
}

// resumeResponse writes a document with its completion progress.
func (s *Server) resumeResponse(w http.ResponseWriter, doc *resume.Document) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume":   doc,
		"progress": doc.Progress(),
	})
}

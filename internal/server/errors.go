// Package server provides the HTTP REST API for the career prep tool.
package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/acsaprep/preptool/internal/chat"
	"github.com/acsaprep/preptool/internal/interview"
	"github.com/acsaprep/preptool/internal/resume"
	"github.com/acsaprep/preptool/internal/schemas"
	"github.com/acsaprep/preptool/internal/store"
	"github.com/acsaprep/preptool/internal/tts"
)

// HTTPStatus maps a service error to the status code the API returns.
func HTTPStatus(err error) int {
	var (
		apiErr        *tts.APIError
		validationErr validator.ValidationErrors
		schemaErr     *schemas.ValidationError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Status
	case errors.As(err, &validationErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.Is(err, interview.ErrEmptyAnswer),
		errors.Is(err, interview.ErrMissingRoleOrLevel),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrInvalidFeedback),
		errors.Is(err, resume.ErrTitleRequired):
		return http.StatusBadRequest
	case errors.Is(err, interview.ErrNoSession),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, resume.ErrEntryNotFound),
		errors.Is(err, resume.ErrUnknownTemplate):
		return http.StatusNotFound
	case errors.Is(err, resume.ErrConfirmationRequired),
		errors.Is(err, interview.ErrNotComplete),
		errors.Is(err, interview.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, resume.ErrNoSuggestions):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

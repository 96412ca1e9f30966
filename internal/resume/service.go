package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acsaprep/preptool/internal/gateway"
	"github.com/acsaprep/preptool/internal/notify"
	"github.com/acsaprep/preptool/internal/schemas"
	"github.com/acsaprep/preptool/internal/store"
)

// ErrConfirmationRequired indicates applying the template would replace
// existing content and the caller has not confirmed.
var ErrConfirmationRequired = errors.New("document has data; confirmation required")

// Service owns resume persistence and orchestration: every operation
// loads the profile's document, applies one mutation, and persists the
// result. Validation failures leave stored state untouched.
type Service struct {
	store    store.Store
	suggest  *Suggester
	notifier notify.Notifier
	validate *validator.Validate
}

// NewService wires a Service over its dependencies.
func NewService(gw gateway.Asker, st store.Store, notifier notify.Notifier) *Service {
	return &Service{
		store:    st,
		suggest:  NewSuggester(gw),
		notifier: notifier,
		validate: validator.New(),
	}
}

// Load returns the profile's document, or a fresh empty one when
// nothing is stored yet.
func (s *Service) Load(ctx context.Context, profileID uuid.UUID) (*Document, error) {
	doc := NewDocument()
	err := store.GetJSON(ctx, s.store, profileID, store.KeyResumeData, doc)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewDocument(), nil
		}
		return nil, err
	}
	return doc, nil
}

// Save validates and persists the document wholesale.
func (s *Service) Save(ctx context.Context, profileID uuid.UUID, doc *Document) error {
	if err := s.validate.Struct(doc); err != nil {
		return fmt.Errorf("invalid resume document: %w", err)
	}
	if err := schemas.ValidateResumeDocument(doc); err != nil {
		return err
	}
	if err := store.SetJSON(ctx, s.store, profileID, store.KeyResumeData, doc); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// Clear deletes the profile's resume data.
func (s *Service) Clear(ctx context.Context, profileID uuid.UUID) error {
	return s.store.Delete(ctx, profileID, store.KeyResumeData)
}

// ApplyTemplate loads the named template into the document. When the
// document already has data the caller must pass confirmed=true, as the
// template replaces summary, experience, education, skills, and
// certifications wholesale.
func (s *Service) ApplyTemplate(ctx context.Context, profileID uuid.UUID, name string, confirmed bool) (*Document, error) {
	doc, err := s.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if doc.HasData() && !confirmed {
		return nil, ErrConfirmationRequired
	}
	if err := doc.ApplyTemplate(name); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, profileID, doc); err != nil {
		return nil, err
	}
	s.notify(fmt.Sprintf("%s template loaded!", doc.Personal.Title))
	return doc, nil
}

func (s *Service) notify(message string) {
	if s.notifier != nil {
		s.notifier.Notify(notify.LevelInfo, message)
	}
}

// mutate runs fn against the loaded document and persists on success.
func (s *Service) mutate(ctx context.Context, profileID uuid.UUID, fn func(*Document) error) (*Document, error) {
	doc, err := s.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	return doc, s.Save(ctx, profileID, doc)
}

// UpdatePersonal replaces the contact header and summary fields.
func (s *Service) UpdatePersonal(ctx context.Context, profileID uuid.UUID, personal Personal, summary string) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		d.Personal = personal
		d.Summary = summary
		return nil
	})
}

// AddExperience appends an experience entry.
func (s *Service) AddExperience(ctx context.Context, profileID uuid.UUID, exp Experience) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		d.AddExperience(exp)
		return nil
	})
}

// UpdateExperience replaces an experience entry by ID.
func (s *Service) UpdateExperience(ctx context.Context, profileID uuid.UUID, exp Experience) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		return d.UpdateExperience(exp)
	})
}

// RemoveExperience deletes an experience entry by ID.
func (s *Service) RemoveExperience(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		return d.RemoveExperience(id)
	})
}

// AddEducation appends an education entry.
func (s *Service) AddEducation(ctx context.Context, profileID uuid.UUID, edu Education) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		d.AddEducation(edu)
		return nil
	})
}

// UpdateEducation replaces an education entry by ID.
func (s *Service) UpdateEducation(ctx context.Context, profileID uuid.UUID, edu Education) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		return d.UpdateEducation(edu)
	})
}

// RemoveEducation deletes an education entry by ID.
func (s *Service) RemoveEducation(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		return d.RemoveEducation(id)
	})
}

// AddCertification appends a certification entry.
func (s *Service) AddCertification(ctx context.Context, profileID uuid.UUID, cert Certification) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		d.AddCertification(cert)
		return nil
	})
}

// UpdateCertification replaces a certification entry by ID.
func (s *Service) UpdateCertification(ctx context.Context, profileID uuid.UUID, cert Certification) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		return d.UpdateCertification(cert)
	})
}

// RemoveCertification deletes a certification entry by ID.
func (s *Service) RemoveCertification(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		return d.RemoveCertification(id)
	})
}

// AddSkill inserts a skill, ignoring exact duplicates.
func (s *Service) AddSkill(ctx context.Context, profileID uuid.UUID, skill string) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		d.AddSkill(skill)
		return nil
	})
}

// RemoveSkill deletes a skill.
func (s *Service) RemoveSkill(ctx context.Context, profileID uuid.UUID, skill string) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		d.RemoveSkill(skill)
		return nil
	})
}

// Move reorders an entry within a section by explicit indexes.
func (s *Service) Move(ctx context.Context, profileID uuid.UUID, section Section, from, to int) (*Document, error) {
	return s.mutate(ctx, profileID, func(d *Document) error {
		return d.Move(section, from, to)
	})
}

// SuggestSummary generates and applies an AI summary.
func (s *Service) SuggestSummary(ctx context.Context, profileID uuid.UUID) (*Document, error) {
	doc, err := s.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	summary, err := s.suggest.Summary(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.Summary = summary
	return doc, s.Save(ctx, profileID, doc)
}

// SuggestSkills returns AI skill suggestions without applying them; the
// user picks which to add.
func (s *Service) SuggestSkills(ctx context.Context, profileID uuid.UUID) ([]string, error) {
	doc, err := s.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.suggest.Skills(ctx, doc)
}

// SuggestBullets generates and applies AI bullets to one experience
// entry.
func (s *Service) SuggestBullets(ctx context.Context, profileID uuid.UUID, expID uuid.UUID) (*Document, error) {
	doc, err := s.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var target *Experience
	for i := range doc.Experience {
		if doc.Experience[i].ID == expID {
			target = &doc.Experience[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("experience %s: %w", expID, ErrEntryNotFound)
	}

	bullets, err := s.suggest.Bullets(ctx, *target)
	if err != nil {
		return nil, err
	}
	target.Bullets = bullets
	return doc, s.Save(ctx, profileID, doc)
}

// Preview renders the current document's on-screen preview.
func (s *Service) Preview(ctx context.Context, profileID uuid.UUID) (string, error) {
	doc, err := s.Load(ctx, profileID)
	if err != nil {
		return "", err
	}
	return RenderPreview(doc)
}

// Package resume implements the resume builder: the document model with
// entry CRUD and reordering, role templates, AI suggestions, HTML
// preview rendering, and persistence through the state store.
package resume

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrEntryNotFound indicates no entry with the given ID exists in the
// section.
var ErrEntryNotFound = errors.New("entry not found")

// Section identifies a reorderable entry list.
type Section string

const (
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
)

// Personal holds the contact header fields.
type Personal struct {
	FullName string `json:"fullName,omitempty"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Experience is one professional-experience entry.
type Experience struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	Location     string    `json:"location,omitempty"`
	StartDate    string    `json:"startDate,omitempty"`
	EndDate      string    `json:"endDate,omitempty"`
	Bullets      []string  `json:"bullets,omitempty"`
}

// Education is one education entry.
type Education struct {
	ID          uuid.UUID `json:"id"`
	Degree      string    `json:"degree"`
	Institution string    `json:"institution"`
	Location    string    `json:"location,omitempty"`
	Year        string    `json:"year,omitempty"`
}

// Certification is one credential entry.
type Certification struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Issuer string    `json:"issuer,omitempty"`
	Year   string    `json:"year,omitempty"`
}

// Document is the full resume state for one profile.
type Document struct {
	Template       string          `json:"template,omitempty"`
	Personal       Personal        `json:"personal"`
	Summary        string          `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications"`
}

// NewDocument returns an empty document with non-nil sections.
func NewDocument() *Document {
	return &Document{
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         []string{},
		Certifications: []Certification{},
	}
}

// HasData reports whether the document carries any user content: a name,
// summary, or at least one experience, education, or skill entry.
func (d *Document) HasData() bool {
	return d.Personal.FullName != "" ||
		d.Summary != "" ||
		len(d.Experience) > 0 ||
		len(d.Education) > 0 ||
		len(d.Skills) > 0
}

// AddSkill appends a skill unless an exact (case-sensitive) duplicate
// already exists. Returns false for blanks and duplicates.
func (d *Document) AddSkill(skill string) bool {
	if skill == "" {
		return false
	}
	for _, existing := range d.Skills {
		if existing == skill {
			return false
		}
	}
	d.Skills = append(d.Skills, skill)
	return true
}

// RemoveSkill deletes every exact match of skill.
func (d *Document) RemoveSkill(skill string) {
	kept := d.Skills[:0]
	for _, existing := range d.Skills {
		if existing != skill {
			kept = append(kept, existing)
		}
	}
	d.Skills = kept
}

// AddExperience appends a new entry and returns its assigned ID. An entry
// always carries at least one bullet, blank until edited.
func (d *Document) AddExperience(exp Experience) uuid.UUID {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}
	if len(exp.Bullets) == 0 {
		exp.Bullets = []string{""}
	}
	d.Experience = append(d.Experience, exp)
	return exp.ID
}

// UpdateExperience replaces the entry with the same ID.
func (d *Document) UpdateExperience(exp Experience) error {
	if len(exp.Bullets) == 0 {
		exp.Bullets = []string{""}
	}
	for i := range d.Experience {
		if d.Experience[i].ID == exp.ID {
			d.Experience[i] = exp
			return nil
		}
	}
	return fmt.Errorf("experience %s: %w", exp.ID, ErrEntryNotFound)
}

// RemoveExperience deletes the entry with the given ID.
func (d *Document) RemoveExperience(id uuid.UUID) error {
	for i := range d.Experience {
		if d.Experience[i].ID == id {
			d.Experience = append(d.Experience[:i], d.Experience[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("experience %s: %w", id, ErrEntryNotFound)
}

// AddEducation appends a new entry and returns its assigned ID.
func (d *Document) AddEducation(edu Education) uuid.UUID {
	if edu.ID == uuid.Nil {
		edu.ID = uuid.New()
	}
	d.Education = append(d.Education, edu)
	return edu.ID
}

// UpdateEducation replaces the entry with the same ID.
func (d *Document) UpdateEducation(edu Education) error {
	for i := range d.Education {
		if d.Education[i].ID == edu.ID {
			d.Education[i] = edu
			return nil
		}
	}
	return fmt.Errorf("education %s: %w", edu.ID, ErrEntryNotFound)
}

// RemoveEducation deletes the entry with the given ID.
func (d *Document) RemoveEducation(id uuid.UUID) error {
	for i := range d.Education {
		if d.Education[i].ID == id {
			d.Education = append(d.Education[:i], d.Education[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("education %s: %w", id, ErrEntryNotFound)
}

// AddCertification appends a new entry and returns its assigned ID.
func (d *Document) AddCertification(cert Certification) uuid.UUID {
	if cert.ID == uuid.Nil {
		cert.ID = uuid.New()
	}
	d.Certifications = append(d.Certifications, cert)
	return cert.ID
}

// UpdateCertification replaces the entry with the same ID.
func (d *Document) UpdateCertification(cert Certification) error {
	for i := range d.Certifications {
		if d.Certifications[i].ID == cert.ID {
			d.Certifications[i] = cert
			return nil
		}
	}
	return fmt.Errorf("certification %s: %w", cert.ID, ErrEntryNotFound)
}

// RemoveCertification deletes the entry with the given ID.
func (d *Document) RemoveCertification(id uuid.UUID) error {
	for i := range d.Certifications {
		if d.Certifications[i].ID == id {
			d.Certifications = append(d.Certifications[:i], d.Certifications[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("certification %s: %w", id, ErrEntryNotFound)
}

// Move relocates the entry at index from to index to within a section.
// Both indexes address the section's current order.
func (d *Document) Move(section Section, from, to int) error {
	switch section {
	case SectionExperience:
		return moveEntry(d.Experience, from, to)
	case SectionEducation:
		return moveEntry(d.Education, from, to)
	case SectionCertifications:
		return moveEntry(d.Certifications, from, to)
	default:
		return fmt.Errorf("unknown section %q", section)
	}
}

func moveEntry[T any](entries []T, from, to int) error {
	if from < 0 || from >= len(entries) || to < 0 || to >= len(entries) {
		return fmt.Errorf("move %d -> %d out of range for %d entries", from, to, len(entries))
	}
	if from == to {
		return nil
	}
	entry := entries[from]
	if from < to {
		copy(entries[from:], entries[from+1:to+1])
	} else {
		copy(entries[to+1:], entries[to:from])
	}
	entries[to] = entry
	return nil
}

// progressFields is the number of sections counted toward completion.
const progressFields = 7

// Progress is the completion percentage shown on the builder: one point
// each for name, email, summary, and non-empty experience, education,
// skills, and certifications.
func (d *Document) Progress() int {
	completed := 0
	if d.Personal.FullName != "" {
		completed++
	}
	if d.Personal.Email != "" {
		completed++
	}
	if d.Summary != "" {
		completed++
	}
	if len(d.Experience) > 0 {
		completed++
	}
	if len(d.Education) > 0 {
		completed++
	}
	if len(d.Skills) > 0 {
		completed++
	}
	if len(d.Certifications) > 0 {
		completed++
	}
	return int(math.Round(float64(completed) / progressFields * 100))
}

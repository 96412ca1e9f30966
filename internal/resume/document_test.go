package resume

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasData(t *testing.T) {
	assert.False(t, NewDocument().HasData())

	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"full name", func(d *Document) { d.Personal.FullName = "Dana" }},
		{"summary", func(d *Document) { d.Summary = "Leader." }},
		{"experience", func(d *Document) { d.AddExperience(Experience{Title: "Principal"}) }},
		{"education", func(d *Document) { d.AddEducation(Education{Degree: "Ed.D."}) }},
		{"skills", func(d *Document) { d.AddSkill("Leadership") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument()
			tt.mutate(d)
			assert.True(t, d.HasData())
		})
	}

	t.Run("certifications alone do not count", func(t *testing.T) {
		d := NewDocument()
		d.AddCertification(Certification{Name: "ASC"})
		assert.False(t, d.HasData())
	})
}

func TestAddSkillDeduplicates(t *testing.T) {
	d := NewDocument()

	assert.True(t, d.AddSkill("Data Analysis"))
	assert.False(t, d.AddSkill("Data Analysis"), "exact duplicate rejected")
	assert.True(t, d.AddSkill("data analysis"), "dedupe is case-sensitive")
	assert.False(t, d.AddSkill(""))
	assert.Equal(t, []string{"Data Analysis", "data analysis"}, d.Skills)

	d.RemoveSkill("Data Analysis")
	assert.Equal(t, []string{"data analysis"}, d.Skills)
}

func TestExperienceCRUD(t *testing.T) {
	d := NewDocument()

	id := d.AddExperience(Experience{Title: "Principal", Organization: "Lincoln High"})
	require.NotEqual(t, uuid.Nil, id)

	require.NoError(t, d.UpdateExperience(Experience{ID: id, Title: "Executive Principal", Organization: "Lincoln High"}))
	assert.Equal(t, "Executive Principal", d.Experience[0].Title)

	err := d.UpdateExperience(Experience{ID: uuid.New(), Title: "Ghost"})
	assert.ErrorIs(t, err, ErrEntryNotFound)

	require.NoError(t, d.RemoveExperience(id))
	assert.Empty(t, d.Experience)
	assert.ErrorIs(t, d.RemoveExperience(id), ErrEntryNotFound)
}

func TestEducationAndCertificationCRUD(t *testing.T) {
	d := NewDocument()

	eduID := d.AddEducation(Education{Degree: "Ed.D.", Institution: "UCLA"})
	require.NoError(t, d.UpdateEducation(Education{ID: eduID, Degree: "Ed.D. in Leadership", Institution: "UCLA"}))
	assert.Equal(t, "Ed.D. in Leadership", d.Education[0].Degree)
	require.NoError(t, d.RemoveEducation(eduID))
	assert.ErrorIs(t, d.RemoveEducation(eduID), ErrEntryNotFound)

	certID := d.AddCertification(Certification{Name: "ASC"})
	require.NoError(t, d.UpdateCertification(Certification{ID: certID, Name: "Clear ASC"}))
	assert.Equal(t, "Clear ASC", d.Certifications[0].Name)
	require.NoError(t, d.RemoveCertification(certID))
	assert.ErrorIs(t, d.RemoveCertification(certID), ErrEntryNotFound)
}

func TestMove(t *testing.T) {
	build := func() *Document {
		d := NewDocument()
		d.AddExperience(Experience{Title: "A"})
		d.AddExperience(Experience{Title: "B"})
		d.AddExperience(Experience{Title: "C"})
		return d
	}
	titles := func(d *Document) []string {
		out := make([]string, len(d.Experience))
		for i, e := range d.Experience {
			out[i] = e.Title
		}
		return out
	}

	t.Run("forward", func(t *testing.T) {
		d := build()
		require.NoError(t, d.Move(SectionExperience, 0, 2))
		assert.Equal(t, []string{"B", "C", "A"}, titles(d))
	})

	t.Run("backward", func(t *testing.T) {
		d := build()
		require.NoError(t, d.Move(SectionExperience, 2, 0))
		assert.Equal(t, []string{"C", "A", "B"}, titles(d))
	})

	t.Run("same index is a no-op", func(t *testing.T) {
		d := build()
		require.NoError(t, d.Move(SectionExperience, 1, 1))
		assert.Equal(t, []string{"A", "B", "C"}, titles(d))
	})

	t.Run("out of range", func(t *testing.T) {
		d := build()
		assert.Error(t, d.Move(SectionExperience, 0, 3))
		assert.Error(t, d.Move(SectionExperience, -1, 0))
	})

	t.Run("unknown section", func(t *testing.T) {
		assert.Error(t, build().Move("skills", 0, 1))
	})

	t.Run("education and certifications", func(t *testing.T) {
		d := NewDocument()
		d.AddEducation(Education{Degree: "MA"})
		d.AddEducation(Education{Degree: "EdD"})
		require.NoError(t, d.Move(SectionEducation, 1, 0))
		assert.Equal(t, "EdD", d.Education[0].Degree)

		d.AddCertification(Certification{Name: "ASC"})
		d.AddCertification(Certification{Name: "Clear"})
		require.NoError(t, d.Move(SectionCertifications, 0, 1))
		assert.Equal(t, "Clear", d.Certifications[0].Name)
	})
}

func TestProgress(t *testing.T) {
	d := NewDocument()
	assert.Equal(t, 0, d.Progress())

	d.Personal.FullName = "Dana"
	d.Personal.Email = "dana@example.org"
	d.Summary = "Leader."
	assert.Equal(t, 43, d.Progress(), "3 of 7 rounds to 43")

	d.AddExperience(Experience{Title: "Principal"})
	d.AddEducation(Education{Degree: "Ed.D."})
	d.AddSkill("Leadership")
	d.AddCertification(Certification{Name: "ASC"})
	assert.Equal(t, 100, d.Progress())
}

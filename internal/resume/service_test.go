package resume

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acsaprep/preptool/internal/notify"
	"github.com/acsaprep/preptool/internal/store"
)

func newTestService(askText string) (*Service, *store.MemoryStore) {
	st := store.NewMemory()
	return NewService(askerText(askText), st, &notify.Recorder{}), st
}

func TestServiceLoadEmptyProfile(t *testing.T) {
	svc, _ := newTestService("")
	doc, err := svc.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, doc.HasData())
	assert.NotNil(t, doc.Skills)
}

func TestServiceSaveAndReload(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService("")
	profile := uuid.New()

	doc := NewDocument()
	doc.Personal.FullName = "Dana Reyes"
	doc.AddSkill("Leadership")
	require.NoError(t, svc.Save(ctx, profile, doc))

	loaded, err := svc.Load(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", loaded.Personal.FullName)
	assert.Equal(t, []string{"Leadership"}, loaded.Skills)
}

func TestServiceSaveRejectsInvalidEmail(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService("")
	profile := uuid.New()

	doc := NewDocument()
	doc.Personal.Email = "not-an-email"
	assert.Error(t, svc.Save(ctx, profile, doc))

	_, err := st.Get(ctx, profile, store.KeyResumeData)
	assert.ErrorIs(t, err, store.ErrNotFound, "invalid document is not persisted")
}

func TestServiceApplyTemplateConfirmation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService("")
	profile := uuid.New()

	// Empty document applies without confirmation.
	doc, err := svc.ApplyTemplate(ctx, profile, "principal", false)
	require.NoError(t, err)
	assert.Equal(t, "Principal", doc.Personal.Title)

	// Now the document has data: unconfirmed apply is rejected.
	_, err = svc.ApplyTemplate(ctx, profile, "superintendent", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	doc, err = svc.ApplyTemplate(ctx, profile, "superintendent", true)
	require.NoError(t, err)
	assert.Equal(t, "Superintendent", doc.Personal.Title)
}

func TestServiceEntryOperationsPersist(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService("")
	profile := uuid.New()

	doc, err := svc.AddExperience(ctx, profile, Experience{Title: "Principal", Organization: "Lincoln High"})
	require.NoError(t, err)
	expID := doc.Experience[0].ID

	doc, err = svc.AddSkill(ctx, profile, "Budgeting")
	require.NoError(t, err)
	assert.Equal(t, []string{"Budgeting"}, doc.Skills)

	doc, err = svc.UpdateExperience(ctx, profile, Experience{ID: expID, Title: "Executive Principal", Organization: "Lincoln High"})
	require.NoError(t, err)

	// Fresh load reflects all mutations.
	loaded, err := svc.Load(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "Executive Principal", loaded.Experience[0].Title)
	assert.Equal(t, []string{"Budgeting"}, loaded.Skills)

	_, err = svc.RemoveExperience(ctx, profile, uuid.New())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestServiceMovePersistsNewOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService("")
	profile := uuid.New()

	_, err := svc.AddEducation(ctx, profile, Education{Degree: "MA"})
	require.NoError(t, err)
	_, err = svc.AddEducation(ctx, profile, Education{Degree: "EdD"})
	require.NoError(t, err)

	_, err = svc.Move(ctx, profile, SectionEducation, 1, 0)
	require.NoError(t, err)

	loaded, err := svc.Load(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "EdD", loaded.Education[0].Degree)
}

func TestServiceClear(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService("")
	profile := uuid.New()

	_, err := svc.AddSkill(ctx, profile, "Leadership")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, profile))

	_, err = st.Get(ctx, profile, store.KeyResumeData)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceSuggestSummaryApplies(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService("An achievement-focused professional summary.")
	profile := uuid.New()

	doc, err := svc.SuggestSummary(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "An achievement-focused professional summary.", doc.Summary)

	loaded, err := svc.Load(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, doc.Summary, loaded.Summary)
}

func TestServiceSuggestBulletsApplies(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService("1. Led district-wide literacy push\n2. Raised attendance by 6%")
	profile := uuid.New()

	doc, err := svc.AddExperience(ctx, profile, Experience{Title: "Principal"})
	require.NoError(t, err)
	expID := doc.Experience[0].ID

	doc, err = svc.SuggestBullets(ctx, profile, expID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Led district-wide literacy push", "Raised attendance by 6%"}, doc.Experience[0].Bullets)

	_, err = svc.SuggestBullets(ctx, profile, uuid.New())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestServicePreview(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService("")
	profile := uuid.New()

	html, err := svc.Preview(ctx, profile)
	require.NoError(t, err)
	assert.Contains(t, html, "preview-empty")

	_, err = svc.ApplyTemplate(ctx, profile, "principal", false)
	require.NoError(t, err)

	html, err = svc.Preview(ctx, profile)
	require.NoError(t, err)
	assert.Contains(t, html, "PROFESSIONAL SUMMARY")
}

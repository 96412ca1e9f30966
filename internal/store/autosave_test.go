package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acsaprep/preptool/internal/notify"
)

// failingStore rejects every write.
type failingStore struct {
	MemoryStore
}

func (f *failingStore) Set(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	return errors.New("disk full")
}

func (f *failingStore) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	return errors.New("disk full")
}

func TestAutosaverReadsSeeQueuedWrites(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	a := NewAutosaver(backing, nil, time.Hour)
	defer a.Stop(ctx)
	profile := uuid.New()

	require.NoError(t, a.Set(ctx, profile, KeyInterviewSession, []byte(`{"role":"Principal"}`)))

	// Queued but not yet flushed: visible through the autosaver only.
	got, err := a.Get(ctx, profile, KeyInterviewSession)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"Principal"}`, string(got))

	_, err = backing.Get(ctx, profile, KeyInterviewSession)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAutosaverFlushWritesThrough(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	a := NewAutosaver(backing, nil, time.Hour)
	defer a.Stop(ctx)
	profile := uuid.New()

	require.NoError(t, a.Set(ctx, profile, KeyResumeData, []byte(`{"fullName":"Dana"}`)))
	a.Flush(ctx)

	got, err := backing.Get(ctx, profile, KeyResumeData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fullName":"Dana"}`, string(got))
}

func TestAutosaverQueuedDelete(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	profile := uuid.New()
	require.NoError(t, backing.Set(ctx, profile, KeyInterviewSession, []byte(`{}`)))

	a := NewAutosaver(backing, nil, time.Hour)
	defer a.Stop(ctx)

	require.NoError(t, a.Delete(ctx, profile, KeyInterviewSession))

	_, err := a.Get(ctx, profile, KeyInterviewSession)
	assert.ErrorIs(t, err, ErrNotFound, "delete is visible before flush")

	a.Flush(ctx)
	_, err = backing.Get(ctx, profile, KeyInterviewSession)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAutosaverStopFlushesPending(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	a := NewAutosaver(backing, nil, time.Hour)
	profile := uuid.New()

	require.NoError(t, a.Set(ctx, profile, KeyCareerChatHistory, []byte(`[]`)))
	a.Stop(ctx)

	got, err := backing.Get(ctx, profile, KeyCareerChatHistory)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestAutosaverIntervalFlush(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	a := NewAutosaver(backing, nil, 10*time.Millisecond)
	defer a.Stop(ctx)
	profile := uuid.New()

	require.NoError(t, a.Set(ctx, profile, KeyResumeData, []byte(`{}`)))

	assert.Eventually(t, func() bool {
		_, err := backing.Get(ctx, profile, KeyResumeData)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestAutosaverFailedFlushNotifiesOnceAndDrops(t *testing.T) {
	ctx := context.Background()
	recorder := &notify.Recorder{}
	a := NewAutosaver(&failingStore{}, notify.NewOnce(recorder), time.Hour)
	defer a.Stop(ctx)
	profile := uuid.New()

	require.NoError(t, a.Set(ctx, profile, KeyResumeData, []byte(`{}`)))
	a.Flush(ctx)
	require.NoError(t, a.Set(ctx, profile, KeyResumeData, []byte(`{"v":2}`)))
	a.Flush(ctx)

	entries := recorder.Entries()
	require.Len(t, entries, 1, "repeat failures collapse to one notice")
	assert.Equal(t, notify.LevelWarning, entries[0].Level)
	assert.Equal(t, "Unable to save your progress", entries[0].Message)

	// Dropped writes are not retried on later flushes.
	a.Flush(ctx)
	assert.Len(t, recorder.Entries(), 1)
}

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	profile := uuid.New()

	_, err := s.Get(ctx, profile, KeyResumeData)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, profile, KeyResumeData, []byte(`{"fullName":"Dana"}`)))

	got, err := s.Get(ctx, profile, KeyResumeData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fullName":"Dana"}`, string(got))

	require.NoError(t, s.Delete(ctx, profile, KeyResumeData))
	_, err = s.Get(ctx, profile, KeyResumeData)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreLastWriterWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	profile := uuid.New()

	require.NoError(t, s.Set(ctx, profile, KeyHomeChatHistory, []byte(`["first"]`)))
	require.NoError(t, s.Set(ctx, profile, KeyHomeChatHistory, []byte(`["second"]`)))

	got, err := s.Get(ctx, profile, KeyHomeChatHistory)
	require.NoError(t, err)
	assert.JSONEq(t, `["second"]`, string(got))
}

func TestMemoryStoreIsolatesProfiles(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, s.Set(ctx, alice, KeyResumeData, []byte(`{"fullName":"Alice"}`)))

	_, err := s.Get(ctx, bob, KeyResumeData)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	profile := uuid.New()

	value := []byte(`{"n":1}`)
	require.NoError(t, s.Set(ctx, profile, KeyResumeData, value))
	value[0] = 'X'

	got, err := s.Get(ctx, profile, KeyResumeData)
	require.NoError(t, err)
	assert.Equal(t, `{"n":1}`, string(got))
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	profile := uuid.New()

	type doc struct {
		FullName string `json:"fullName"`
		Skills   []string
	}

	in := doc{FullName: "Dana Reyes", Skills: []string{"Instructional Leadership"}}
	require.NoError(t, SetJSON(ctx, s, profile, KeyResumeData, in))

	var out doc
	require.NoError(t, GetJSON(ctx, s, profile, KeyResumeData, &out))
	assert.Equal(t, in, out)

	var missing doc
	err := GetJSON(ctx, s, profile, "no_such_key", &missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

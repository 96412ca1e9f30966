// Package store persists per-profile application state as JSON blobs
// under well-known keys. Writes are last-writer-wins with no schema
// versioning. The PostgresStore backend serves production; MemoryStore
// backs tests; Autosaver wraps either with interval flushing.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Well-known state keys, one JSON blob each per profile.
const (
	KeyInterviewSession  = "interview_session"
	KeyResumeData        = "resume_data"
	KeyHomeChatHistory   = "home_chat_history"
	KeyCareerChatHistory = "career_chat_history"
	KeyChatFeedback      = "chat_feedback"
)

// ErrNotFound indicates no value is stored under the given profile/key.
var ErrNotFound = errors.New("state not found")

// Store is per-profile keyed blob storage.
type Store interface {
	Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, error)
	Set(ctx context.Context, profileID uuid.UUID, key string, value []byte) error
	Delete(ctx context.Context, profileID uuid.UUID, key string) error
}

// GetJSON loads and unmarshals the blob under profileID/key into v.
func GetJSON(ctx context.Context, s Store, profileID uuid.UUID, key string, v any) error {
	raw, err := s.Get(ctx, profileID, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode state %s: %w", key, err)
	}
	return nil
}

// SetJSON marshals v and stores it under profileID/key.
func SetJSON(ctx context.Context, s Store, profileID uuid.UUID, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state %s: %w", key, err)
	}
	return s.Set(ctx, profileID, key, raw)
}

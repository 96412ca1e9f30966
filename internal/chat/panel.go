// Package chat implements the two conversational assistants: the home
// helper and the career advisor. Both share the same panel mechanics and
// differ only in system prompt, storage key, and history windows.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acsaprep/preptool/internal/gateway"
	"github.com/acsaprep/preptool/internal/notify"
	"github.com/acsaprep/preptool/internal/prompts"
	"github.com/acsaprep/preptool/internal/store"
)

var (
	// ErrEmptyMessage blocks sending a blank message.
	ErrEmptyMessage = errors.New("message must not be empty")
	// ErrInvalidFeedback rejects unknown feedback types.
	ErrInvalidFeedback = errors.New("feedback must be positive or negative")
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FeedbackEntry records a thumbs-up/down on the latest assistant reply.
type FeedbackEntry struct {
	Panel       string    `json:"panel"`
	Type        string    `json:"type"`
	LastMessage *Message  `json:"lastMessage,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Config selects a panel's prompt, storage, and history windows.
type Config struct {
	Name            string
	StorageKey      string
	SystemPromptKey string
	// ContextWindow is how many stored messages precede a new prompt.
	ContextWindow int
	// ReplayWindow is how many stored messages re-display on load.
	ReplayWindow int
}

// HomeConfig is the brief on-page assistant: 3 exchanges of context,
// 5 messages replayed.
func HomeConfig() Config {
	return Config{
		Name:            "home",
		StorageKey:      store.KeyHomeChatHistory,
		SystemPromptKey: "home-system",
		ContextWindow:   6,
		ReplayWindow:    5,
	}
}

// CareerConfig is the long-form career advisor: 8 exchanges of context,
// 10 messages replayed.
func CareerConfig() Config {
	return Config{
		Name:            "career",
		StorageKey:      store.KeyCareerChatHistory,
		SystemPromptKey: "career-system",
		ContextWindow:   16,
		ReplayWindow:    10,
	}
}

// Panel is one chat assistant over the gateway and store.
type Panel struct {
	cfg      Config
	gw       gateway.Asker
	store    store.Store
	notifier notify.Notifier
}

// NewPanel wires a Panel for the given configuration.
func NewPanel(cfg Config, gw gateway.Asker, st store.Store, notifier notify.Notifier) *Panel {
	return &Panel{cfg: cfg, gw: gw, store: st, notifier: notifier}
}

// Name identifies the panel in logs and feedback records.
func (p *Panel) Name() string { return p.cfg.Name }

// Send submits a user message and returns the assistant reply. The
// prompt folds in the panel's system preamble and the most recent stored
// context window; both turns are appended to the persisted history.
func (p *Panel) Send(ctx context.Context, profileID uuid.UUID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	history, err := p.History(ctx, profileID)
	if err != nil {
		return "", err
	}

	prompt, err := p.buildPrompt(history, message)
	if err != nil {
		return "", err
	}
	response := p.gw.Ask(ctx, prompt)

	history = append(history,
		Message{Role: "user", Content: message},
		Message{Role: "assistant", Content: response},
	)
	if err := store.SetJSON(ctx, p.store, profileID, p.cfg.StorageKey, history); err != nil {
		return "", fmt.Errorf("failed to save chat history: %w", err)
	}
	return response, nil
}

// buildPrompt assembles system preamble, recent context, and the new
// user turn into a single prompt.
func (p *Panel) buildPrompt(history []Message, message string) (string, error) {
	system, err := prompts.Get("chat.json", p.cfg.SystemPromptKey)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\nConversation history:\n")
	for _, msg := range lastN(history, p.cfg.ContextWindow) {
		role := "Assistant"
		if msg.Role == "user" {
			role = "User"
		}
		fmt.Fprintf(&sb, "%s: %s\n", role, msg.Content)
	}
	fmt.Fprintf(&sb, "User: %s\nAssistant:", message)
	return sb.String(), nil
}

// History returns the full stored conversation.
func (p *Panel) History(ctx context.Context, profileID uuid.UUID) ([]Message, error) {
	var history []Message
	err := store.GetJSON(ctx, p.store, profileID, p.cfg.StorageKey, &history)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return history, nil
}

// Recent returns the replay window: the stored messages re-displayed
// when the panel loads, system turns excluded.
func (p *Panel) Recent(ctx context.Context, profileID uuid.UUID) ([]Message, error) {
	history, err := p.History(ctx, profileID)
	if err != nil {
		return nil, err
	}

	recent := lastN(history, p.cfg.ReplayWindow)
	out := make([]Message, 0, len(recent))
	for _, msg := range recent {
		if msg.Role != "system" {
			out = append(out, msg)
		}
	}
	return out, nil
}

// Clear deletes the stored conversation.
func (p *Panel) Clear(ctx context.Context, profileID uuid.UUID) error {
	if err := p.store.Delete(ctx, profileID, p.cfg.StorageKey); err != nil {
		return err
	}
	p.notify("Chat history cleared")
	return nil
}

// Feedback appends a thumbs-up/down record for the latest assistant
// reply to the shared feedback log.
func (p *Panel) Feedback(ctx context.Context, profileID uuid.UUID, feedbackType string) error {
	if feedbackType != "positive" && feedbackType != "negative" {
		return ErrInvalidFeedback
	}

	history, err := p.History(ctx, profileID)
	if err != nil {
		return err
	}
	entry := FeedbackEntry{
		Panel:     p.cfg.Name,
		Type:      feedbackType,
		Timestamp: time.Now().UTC(),
	}
	if len(history) > 0 {
		last := history[len(history)-1]
		entry.LastMessage = &last
	}

	var log []FeedbackEntry
	err = store.GetJSON(ctx, p.store, profileID, store.KeyChatFeedback, &log)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	log = append(log, entry)
	if err := store.SetJSON(ctx, p.store, profileID, store.KeyChatFeedback, log); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	p.notify("Thank you for your feedback!")
	return nil
}

func (p *Panel) notify(message string) {
	if p.notifier != nil {
		p.notifier.Notify(notify.LevelInfo, message)
	}
}

func lastN(msgs []Message, n int) []Message {
	if len(msgs) <= n {
		return msgs
	}
	return msgs[len(msgs)-n:]
}

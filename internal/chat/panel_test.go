package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acsaprep/preptool/internal/notify"
	"github.com/acsaprep/preptool/internal/store"
)

// recordingAsker captures prompts and returns a fixed reply.
type recordingAsker struct {
	reply   string
	prompts []string
}

func (a *recordingAsker) Ask(ctx context.Context, prompt string) string {
	a.prompts = append(a.prompts, prompt)
	return a.reply
}

func TestSendAppendsBothTurns(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	asker := &recordingAsker{reply: "Start with the STAR method."}
	panel := NewPanel(HomeConfig(), asker, st, nil)
	profile := uuid.New()

	reply, err := panel.Send(ctx, profile, "How do I prepare for interviews?")
	require.NoError(t, err)
	assert.Equal(t, "Start with the STAR method.", reply)

	history, err := panel.History(ctx, profile)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, Message{Role: "user", Content: "How do I prepare for interviews?"}, history[0])
	assert.Equal(t, Message{Role: "assistant", Content: "Start with the STAR method."}, history[1])
}

func TestSendEmptyMessageBlocked(t *testing.T) {
	panel := NewPanel(HomeConfig(), &recordingAsker{}, store.NewMemory(), nil)
	_, err := panel.Send(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendPromptIncludesSystemAndContext(t *testing.T) {
	ctx := context.Background()
	asker := &recordingAsker{reply: "ok"}
	panel := NewPanel(CareerConfig(), asker, store.NewMemory(), nil)
	profile := uuid.New()

	_, err := panel.Send(ctx, profile, "What credential do I need?")
	require.NoError(t, err)
	_, err = panel.Send(ctx, profile, "How long does it take?")
	require.NoError(t, err)

	require.Len(t, asker.prompts, 2)
	first, second := asker.prompts[0], asker.prompts[1]

	assert.Contains(t, first, "expert career advisor specializing in K-12 education leadership")
	assert.Contains(t, first, "Conversation history:")
	assert.True(t, strings.HasSuffix(first, "User: What credential do I need?\nAssistant:"))

	assert.Contains(t, second, "User: What credential do I need?")
	assert.Contains(t, second, "Assistant: ok")
	assert.True(t, strings.HasSuffix(second, "User: How long does it take?\nAssistant:"))
}

func TestSendContextWindowTruncates(t *testing.T) {
	ctx := context.Background()
	asker := &recordingAsker{reply: "ok"}
	panel := NewPanel(HomeConfig(), asker, store.NewMemory(), nil)
	profile := uuid.New()

	// 5 exchanges = 10 stored messages; home context window is 6.
	for i := 1; i <= 5; i++ {
		_, err := panel.Send(ctx, profile, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}
	_, err := panel.Send(ctx, profile, "final question")
	require.NoError(t, err)

	last := asker.prompts[len(asker.prompts)-1]
	assert.NotContains(t, last, "question 1")
	assert.NotContains(t, last, "question 2")
	assert.Contains(t, last, "question 3")
	assert.Contains(t, last, "question 5")
}

func TestRecentReplayWindow(t *testing.T) {
	ctx := context.Background()
	panel := NewPanel(HomeConfig(), &recordingAsker{reply: "ok"}, store.NewMemory(), nil)
	profile := uuid.New()

	for i := 1; i <= 4; i++ {
		_, err := panel.Send(ctx, profile, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	recent, err := panel.Recent(ctx, profile)
	require.NoError(t, err)
	require.Len(t, recent, 5, "home replay window is 5 messages")
	assert.Equal(t, "ok", recent[0].Content, "oldest replayed message")
	assert.Equal(t, "question 3", recent[1].Content)
	assert.Equal(t, "ok", recent[4].Content)
}

func TestRecentEmptyHistory(t *testing.T) {
	panel := NewPanel(CareerConfig(), &recordingAsker{}, store.NewMemory(), nil)
	recent, err := panel.Recent(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	recorder := &notify.Recorder{}
	panel := NewPanel(CareerConfig(), &recordingAsker{reply: "ok"}, st, recorder)
	profile := uuid.New()

	_, err := panel.Send(ctx, profile, "hello")
	require.NoError(t, err)
	require.NoError(t, panel.Clear(ctx, profile))

	history, err := panel.History(ctx, profile)
	require.NoError(t, err)
	assert.Empty(t, history)

	entries := recorder.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Chat history cleared", entries[0].Message)
}

func TestFeedback(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	panel := NewPanel(HomeConfig(), &recordingAsker{reply: "Try our Resume Builder."}, st, nil)
	profile := uuid.New()

	_, err := panel.Send(ctx, profile, "What can you do?")
	require.NoError(t, err)

	require.NoError(t, panel.Feedback(ctx, profile, "positive"))
	require.NoError(t, panel.Feedback(ctx, profile, "negative"))
	assert.ErrorIs(t, panel.Feedback(ctx, profile, "meh"), ErrInvalidFeedback)

	var log []FeedbackEntry
	require.NoError(t, store.GetJSON(ctx, st, profile, store.KeyChatFeedback, &log))
	require.Len(t, log, 2)
	assert.Equal(t, "home", log[0].Panel)
	assert.Equal(t, "positive", log[0].Type)
	require.NotNil(t, log[0].LastMessage)
	assert.Equal(t, "Try our Resume Builder.", log[0].LastMessage.Content)
	assert.False(t, log[0].Timestamp.IsZero())
}

func TestFeedbackWithNoHistory(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	panel := NewPanel(HomeConfig(), &recordingAsker{}, st, nil)
	profile := uuid.New()

	require.NoError(t, panel.Feedback(ctx, profile, "positive"))

	var log []FeedbackEntry
	require.NoError(t, store.GetJSON(ctx, st, profile, store.KeyChatFeedback, &log))
	require.Len(t, log, 1)
	assert.Nil(t, log[0].LastMessage)
}

func TestPanelsUseSeparateStorageKeys(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	home := NewPanel(HomeConfig(), &recordingAsker{reply: "ok"}, st, nil)
	career := NewPanel(CareerConfig(), &recordingAsker{reply: "ok"}, st, nil)
	profile := uuid.New()

	_, err := home.Send(ctx, profile, "home question")
	require.NoError(t, err)

	careerHistory, err := career.History(ctx, profile)
	require.NoError(t, err)
	assert.Empty(t, careerHistory)
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/acsaprep/preptool/internal/llm"
	"github.com/acsaprep/preptool/internal/tts"
)

func TestChatProxyWithPrompt(t *testing.T) {
	var gotSystem string
	var gotMessages []llm.Message
	s := newTestServer(t, &stubLLM{
		chat: func(system string, messages []llm.Message) (string, error) {
			gotSystem = system
			gotMessages = messages
			return "Consider the ACSA leadership standards.", nil
		},
	})

	rec := doJSON(t, s.handler(), http.MethodPost, "/api/chat", uuid.Nil,
		map[string]string{"prompt": "What should a new principal study?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Consider the ACSA leadership standards.", body["response"])

	assert.Contains(t, gotSystem, "education leadership coach")
	require.Len(t, gotMessages, 1)
	assert.Equal(t, "user", gotMessages[0].Role)
}

func TestChatProxyWithMessages(t *testing.T) {
	s := newTestServer(t, &stubLLM{
		chat: func(_ string, messages []llm.Message) (string, error) {
			return fmt.Sprintf("history length %d", len(messages)), nil
		},
	})

	rec := doJSON(t, s.handler(), http.MethodPost, "/api/chat", uuid.Nil, map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": "Hi"},
			{"role": "assistant", "content": "Hello!"},
			{"role": "user", "content": "Tell me about credentials."},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "history length 3", body["response"])
}

func TestChatProxyPromptWithConversationHistory(t *testing.T) {
	var gotMessages []llm.Message
	s := newTestServer(t, &stubLLM{
		chat: func(_ string, messages []llm.Message) (string, error) {
			gotMessages = messages
			return "ok", nil
		},
	})

	rec := doJSON(t, s.handler(), http.MethodPost, "/api/chat", uuid.Nil, map[string]any{
		"prompt": "And the salary range?",
		"conversationHistory": []map[string]string{
			{"role": "user", "content": "Tell me about the principal role."},
			{"role": "assistant", "content": "It leads a school site."},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, gotMessages, 3)
	assert.Equal(t, "And the salary range?", gotMessages[2].Content)
	assert.Equal(t, "assistant", gotMessages[1].Role)
}

func TestChatProxyRequiresInput(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	rec := doJSON(t, s.handler(), http.MethodPost, "/api/chat", uuid.Nil, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Prompt or messages required", body["error"])
}

func TestChatProxyMissingKey(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	s.geminiKey = ""
	rec := doJSON(t, s.handler(), http.MethodPost, "/api/chat", uuid.Nil,
		map[string]string{"prompt": "hello"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatProxyUpstreamStatusPassthrough(t *testing.T) {
	s := newTestServer(t, &stubLLM{
		chat: func(string, []llm.Message) (string, error) {
			return "", fmt.Errorf("chat failed: %w", &googleapi.Error{Code: http.StatusTooManyRequests})
		},
	})
	rec := doJSON(t, s.handler(), http.MethodPost, "/api/chat", uuid.Nil,
		map[string]string{"prompt": "hello"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestChatProxyUpstreamFailure(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	rec := doJSON(t, s.handler(), http.MethodPost, "/api/chat", uuid.Nil,
		map[string]string{"prompt": "hello"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "AI service error", body["error"])
}

func TestTTSProxy(t *testing.T) {
	var upstreamBody map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&upstreamBody))
		w.Write([]byte("mp3-bytes"))
	}))
	defer upstream.Close()

	s := newTestServer(t, &stubLLM{})
	s.tts = tts.NewClient("test-key").WithBaseURL(upstream.URL)

	// The page scripts send text; the upstream API expects input.
	rec := doJSON(t, s.handler(), http.MethodPost, "/api/tts", uuid.Nil,
		map[string]string{"text": "Your score is 8 out of 10."})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "mp3-bytes", rec.Body.String())
	assert.Equal(t, "Your score is 8 out of 10.", upstreamBody["input"])
}

func TestTTSProxyRequiresText(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	s.tts = tts.NewClient("test-key")

	rec := doJSON(t, s.handler(), http.MethodPost, "/api/tts", uuid.Nil, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Text is required", body["error"])
}

func TestTTSProxyMissingKey(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	rec := doJSON(t, s.handler(), http.MethodPost, "/api/tts", uuid.Nil,
		map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTTSProxyUpstreamStatusPassthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Rate limit exceeded"}}`))
	}))
	defer upstream.Close()

	s := newTestServer(t, &stubLLM{})
	s.tts = tts.NewClient("test-key").WithBaseURL(upstream.URL)

	rec := doJSON(t, s.handler(), http.MethodPost, "/api/tts", uuid.Nil,
		map[string]string{"text": "hello"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Rate limit exceeded", body["error"])
}

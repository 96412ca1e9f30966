package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acsaprep/preptool/internal/chat"
	"github.com/acsaprep/preptool/internal/gateway"
	"github.com/acsaprep/preptool/internal/interview"
	"github.com/acsaprep/preptool/internal/llm"
	"github.com/acsaprep/preptool/internal/notify"
	"github.com/acsaprep/preptool/internal/resume"
	"github.com/acsaprep/preptool/internal/server/ratelimit"
	"github.com/acsaprep/preptool/internal/store"
)

// stubLLM scripts the upstream. Nil hooks simulate an unavailable
// upstream, which drives the gateway onto canned responses.
type stubLLM struct {
	generate func(prompt string) (string, error)
	chat     func(system string, messages []llm.Message) (string, error)
}

func (s *stubLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if s.generate != nil {
		return s.generate(prompt)
	}
	return "", fmt.Errorf("upstream unavailable")
}

func (s *stubLLM) Chat(_ context.Context, system string, messages []llm.Message, _ llm.ChatOptions) (string, error) {
	if s.chat != nil {
		return s.chat(system, messages)
	}
	return "", fmt.Errorf("upstream unavailable")
}

func (s *stubLLM) Close() error { return nil }

// newTestServer wires a server over an in-memory store with rate limiting
// disabled.
func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()

	notifier := notify.LogNotifier{}
	mem := store.NewMemory()
	gw := gateway.New(client, nil, gateway.WithTimeout(time.Second))

	s := &Server{
		llmClient:  client,
		interviews: interview.NewService(gw, mem, notifier),
		resumes:    resume.NewService(gw, mem, notifier),
		panels: map[string]*chat.Panel{
			"home":   chat.NewPanel(chat.HomeConfig(), gw, mem, nil),
			"career": chat.NewPanel(chat.CareerConfig(), gw, mem, nil),
		},
		geminiKey:   "test-key",
		validate:    validator.New(),
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
	}
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

// doJSON performs a request with an optional JSON body and profile header.
func doJSON(t *testing.T, h http.Handler, method, target string, profileID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if profileID != uuid.Nil {
		req.Header.Set("X-Profile-ID", profileID.String())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	rec := doJSON(t, s.handler(), http.MethodGet, "/health", uuid.Nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	rec := doJSON(t, s.handler(), http.MethodGet, "/health", uuid.Nil, nil)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET,OPTIONS,PATCH,DELETE,POST,PUT", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-CSRF-Token")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	rec := doJSON(t, s.handler(), http.MethodOptions, "/api/chat", uuid.Nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	rec := doJSON(t, s.handler(), http.MethodGet, "/api/chat", uuid.Nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProfileIDRequired(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	rec := doJSON(t, s.handler(), http.MethodGet, "/api/resume", uuid.Nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileIDFromQuery(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	target := "/api/resume?profile=" + uuid.New().String()
	rec := doJSON(t, s.handler(), http.MethodGet, target, uuid.Nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileIDInvalid(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	req := httptest.NewRequest(http.MethodGet, "/api/resume", nil)
	req.Header.Set("X-Profile-ID", "not-a-uuid")
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimitExceeded(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	s.rateLimiter.Stop()
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Minute,
	})
	t.Cleanup(s.rateLimiter.Stop)
	h := s.handler()

	profile := uuid.New()
	for i := 0; i < 2; i++ {
		rec := doJSON(t, h, http.MethodGet, "/api/resume", profile, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := doJSON(t, h, http.MethodGet, "/api/resume", profile, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "rate_limit_exceeded", body["error"])
}

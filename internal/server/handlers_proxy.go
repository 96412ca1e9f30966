package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/acsaprep/preptool/internal/llm"
	"github.com/acsaprep/preptool/internal/prompts"
	"github.com/acsaprep/preptool/internal/tts"
)

// chatProxyRequest accepts either a bare prompt (optionally with prior
// turns in conversationHistory) or a full message history. The shapes match
// what the page scripts send. Model, temperature, and maxTokens are
// optional upstream overrides.
type chatProxyRequest struct {
	Prompt              string        `json:"prompt"`
	ConversationHistory []llm.Message `json:"conversationHistory"`
	Messages            []llm.Message `json:"messages"`
	Model               string        `json:"model"`
	Temperature         *float32      `json:"temperature"`
	MaxTokens           int32         `json:"maxTokens"`
}

// handleChatProxy forwards a prompt or conversation to the LLM with the
// education-leadership coaching preamble. Unlike the gateway, the proxy
// reports upstream failures to the caller rather than substituting canned
// text; the upstream status code is passed through when available.
func (s *Server) handleChatProxy(w http.ResponseWriter, r *http.Request) {
	if s.geminiKey == "" {
		log.Printf("[proxy] GEMINI_API_KEY not configured")
		s.errorResponse(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	var req chatProxyRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	messages := req.Messages
	if len(messages) == 0 {
		if strings.TrimSpace(req.Prompt) == "" {
			s.errorResponse(w, http.StatusBadRequest, "Prompt or messages required")
			return
		}
		messages = append(messages, req.ConversationHistory...)
		messages = append(messages, llm.Message{Role: "user", Content: req.Prompt})
	}

	system, err := prompts.Get("chat.json", "proxy-system")
	if err != nil {
		s.serviceError(w, err)
		return
	}

	opts := llm.ChatOptions{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	reply, err := s.llmClient.Chat(r.Context(), system, messages, opts)
	if err != nil {
		log.Printf("[proxy] chat upstream error: %v", err)
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code >= 400 {
			s.errorResponse(w, apiErr.Code, "AI service error")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "AI service error")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"response": reply})
}

// ttsRequest is the browser-facing synthesis body. The page scripts send
// text; the upstream API calls the same field input, and the tts client
// handles that translation.
type ttsRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Model string  `json:"model"`
	Speed float64 `json:"speed"`
}

// handleTTS proxies a synthesis request to the OpenAI audio API and streams
// the MP3 bytes back. Upstream error statuses pass through.
func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	if s.tts == nil {
		log.Printf("[tts] OPENAI_API_KEY not configured")
		s.errorResponse(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	var req ttsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}

	audio, err := s.tts.Synthesize(r.Context(), tts.Request{
		Text:  req.Text,
		Voice: req.Voice,
		Model: req.Model,
		Speed: req.Speed,
	})
	if err != nil {
		log.Printf("[tts] synthesis failed: %v", err)
		var apiErr *tts.APIError
		if errors.As(err, &apiErr) {
			s.errorResponse(w, apiErr.Status, apiErr.Message)
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "TTS service error")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(audio)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Printf("[tts] failed to write audio response: %v", err)
	}
}

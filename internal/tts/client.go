// Package tts synthesizes speech through the OpenAI audio API. The
// server proxies the returned MP3 bytes straight to the browser.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiURL = "https://api.openai.com/v1/audio/speech"

// Synthesis defaults applied when the caller leaves fields empty.
const (
	DefaultVoice = "nova"
	DefaultModel = "tts-1"
	DefaultSpeed = 1.0
)

// APIError is a non-success response from the upstream API. The proxy
// passes Status through to the browser.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tts api error %d: %s", e.Status, e.Message)
}

// Client calls the OpenAI text-to-speech endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient returns a Client authenticated with apiKey.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: apiURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// WithBaseURL overrides the upstream endpoint. Used in tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// Request is one synthesis call. Empty fields take the defaults.
type Request struct {
	Text  string  `json:"input"`
	Voice string  `json:"voice"`
	Model string  `json:"model"`
	Speed float64 `json:"speed"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Synthesize converts text to MP3 audio bytes.
func (c *Client) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("text is required")
	}
	if req.Voice == "" {
		req.Voice = DefaultVoice
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}
	if req.Speed == 0 {
		req.Speed = DefaultSpeed
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return nil, &APIError{Status: resp.StatusCode, Message: errResp.Error.Message}
		}
		return nil, &APIError{Status: resp.StatusCode, Message: "OpenAI TTS API error"}
	}

	return respBody, nil
}

// Package gateway provides the AI gateway client used by the interview,
// resume, and chat features. A gateway call is a single upstream request
// with a fixed deadline; every failure mode resolves to a usable canned
// response, so callers never see an error.
package gateway

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/acsaprep/preptool/internal/llm"
	"github.com/acsaprep/preptool/internal/notify"
)

// DefaultTimeout is the cancellation deadline for one upstream call.
const DefaultTimeout = 30 * time.Second

// Asker is the consumer-facing contract: one prompt in, usable text out.
type Asker interface {
	Ask(ctx context.Context, prompt string) string
}

// Gateway sends prompts upstream and substitutes keyword-matched canned
// responses when the upstream is unavailable.
type Gateway struct {
	client   llm.Client
	tier     llm.ModelTier
	timeout  time.Duration
	notifier notify.Notifier
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout overrides the upstream deadline.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithTier overrides the model tier used for gateway calls.
func WithTier(tier llm.ModelTier) Option {
	return func(g *Gateway) { g.tier = tier }
}

// New creates a Gateway over the given client.
func New(client llm.Client, notifier notify.Notifier, opts ...Option) *Gateway {
	g := &Gateway{
		client:   client,
		tier:     llm.TierStandard,
		timeout:  DefaultTimeout,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ask sends prompt upstream with the configured deadline. On any failure
// (upstream error, network failure, deadline expiry, empty output) it
// substitutes a canned response and emits a non-blocking notification.
// Ask never fails from the caller's perspective.
func (g *Gateway) Ask(ctx context.Context, prompt string) string {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.client.GenerateContent(callCtx, prompt, g.tier)
	if err == nil && strings.TrimSpace(response) != "" {
		return response
	}

	if err != nil {
		log.Printf("[gateway] upstream call failed, using canned response: %v", err)
	} else {
		log.Printf("[gateway] upstream returned empty output, using canned response")
	}
	if g.notifier != nil {
		g.notifier.Notify(notify.LevelInfo, "Using instant response (AI unavailable)")
	}

	return CannedResponse(prompt)
}

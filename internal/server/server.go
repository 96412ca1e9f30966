package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acsaprep/preptool/internal/chat"
	"github.com/acsaprep/preptool/internal/config"
	"github.com/acsaprep/preptool/internal/gateway"
	"github.com/acsaprep/preptool/internal/interview"
	"github.com/acsaprep/preptool/internal/llm"
	"github.com/acsaprep/preptool/internal/notify"
	"github.com/acsaprep/preptool/internal/resume"
	"github.com/acsaprep/preptool/internal/server/ratelimit"
	"github.com/acsaprep/preptool/internal/store"
	"github.com/acsaprep/preptool/internal/tts"
)

// Server represents the HTTP server and its wired services.
type Server struct {
	httpServer  *http.Server
	rateLimiter *ratelimit.Limiter

	db    *store.PostgresStore
	saver *store.Autosaver

	llmClient  llm.Client
	interviews *interview.Service
	resumes    *resume.Service
	panels     map[string]*chat.Panel
	tts        *tts.Client

	geminiKey string
	openAIKey string
	validate  *validator.Validate
}

// New creates a server instance: database, autosaver, AI gateway, and the
// feature services, all behind one HTTP handler.
func New(cfg config.Config) (*Server, error) {
	ctx := context.Background()

	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	autosaveInterval := config.DefaultAutosaveInterval
	if cfg.AutosaveIntervalSeconds > 0 {
		autosaveInterval = time.Duration(cfg.AutosaveIntervalSeconds) * time.Second
	}
	gatewayTimeout := config.DefaultGatewayTimeout
	if cfg.GatewayTimeoutSeconds > 0 {
		gatewayTimeout = time.Duration(cfg.GatewayTimeoutSeconds) * time.Second
	}

	notifier := notify.LogNotifier{}
	saver := store.NewAutosaver(db, notify.NewOnce(notifier), autosaveInterval)

	llmClient, err := llm.NewClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	gw := gateway.New(llmClient, notifier, gateway.WithTimeout(gatewayTimeout))

	s := &Server{
		db:         db,
		saver:      saver,
		llmClient:  llmClient,
		interviews: interview.NewService(gw, saver, notifier),
		resumes:    resume.NewService(gw, saver, notifier),
		panels: map[string]*chat.Panel{
			"home":   chat.NewPanel(chat.HomeConfig(), gw, saver, notifier),
			"career": chat.NewPanel(chat.CareerConfig(), gw, saver, notifier),
		},
		geminiKey: cfg.GeminiAPIKey,
		openAIKey: cfg.OpenAIAPIKey,
		validate:  validator.New(),
	}
	if cfg.OpenAIAPIKey != "" {
		s.tts = tts.NewClient(cfg.OpenAIAPIKey)
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// handler builds the route table and wraps it in the middleware chain.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Serverless-style proxy endpoints
	mux.HandleFunc("POST /api/chat", s.handleChatProxy)
	mux.HandleFunc("POST /api/tts", s.handleTTS)

	// Interview practice
	mux.HandleFunc("POST /api/interview/start", s.handleInterviewStart)
	mux.HandleFunc("GET /api/interview/session", s.handleInterviewSession)
	mux.HandleFunc("POST /api/interview/answer", s.handleInterviewAnswer)
	mux.HandleFunc("POST /api/interview/skip", s.handleInterviewSkip)
	mux.HandleFunc("POST /api/interview/followup", s.handleInterviewFollowup)
	mux.HandleFunc("POST /api/interview/next", s.handleInterviewNext)
	mux.HandleFunc("POST /api/interview/retry-weak", s.handleInterviewRetryWeak)
	mux.HandleFunc("GET /api/interview/summary", s.handleInterviewSummary)
	mux.HandleFunc("GET /api/interview/summary/download", s.handleInterviewSummaryDownload)

	// Resume builder
	mux.HandleFunc("GET /api/resume", s.handleResumeLoad)
	mux.HandleFunc("PUT /api/resume", s.handleResumeSave)
	mux.HandleFunc("DELETE /api/resume", s.handleResumeClear)
	mux.HandleFunc("POST /api/resume/template", s.handleResumeTemplate)
	mux.HandleFunc("PUT /api/resume/personal", s.handleResumePersonal)
	mux.HandleFunc("POST /api/resume/experience", s.handleExperienceCreate)
	mux.HandleFunc("PUT /api/resume/experience/{id}", s.handleExperienceUpdate)
	mux.HandleFunc("DELETE /api/resume/experience/{id}", s.handleExperienceDelete)
	mux.HandleFunc("POST /api/resume/experience/{id}/bullets", s.handleSuggestBullets)
	mux.HandleFunc("POST /api/resume/education", s.handleEducationCreate)
	mux.HandleFunc("PUT /api/resume/education/{id}", s.handleEducationUpdate)
	mux.HandleFunc("DELETE /api/resume/education/{id}", s.handleEducationDelete)
	mux.HandleFunc("POST /api/resume/certifications", s.handleCertificationCreate)
	mux.HandleFunc("PUT /api/resume/certifications/{id}", s.handleCertificationUpdate)
	mux.HandleFunc("DELETE /api/resume/certifications/{id}", s.handleCertificationDelete)
	mux.HandleFunc("POST /api/resume/skills", s.handleSkillAdd)
	mux.HandleFunc("DELETE /api/resume/skills/{skill}", s.handleSkillRemove)
	mux.HandleFunc("POST /api/resume/move", s.handleResumeMove)
	mux.HandleFunc("POST /api/resume/suggest/summary", s.handleSuggestSummary)
	mux.HandleFunc("GET /api/resume/suggest/skills", s.handleSuggestSkills)
	mux.HandleFunc("GET /api/resume/preview", s.handleResumePreview)
	mux.HandleFunc("GET /api/resume/export", s.handleResumeExport)

	// Chat panels (home assistant, career advisor)
	mux.HandleFunc("POST /api/panels/{panel}/messages", s.handlePanelSend)
	mux.HandleFunc("GET /api/panels/{panel}/messages", s.handlePanelRecent)
	mux.HandleFunc("DELETE /api/panels/{panel}/messages", s.handlePanelClear)
	mux.HandleFunc("GET /api/panels/{panel}/history", s.handlePanelHistory)
	mux.HandleFunc("POST /api/panels/{panel}/feedback", s.handlePanelFeedback)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening and blocks until an interrupt or SIGTERM, then
// shuts down gracefully: in-flight requests drain, the autosaver flushes,
// and the database pool closes.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.saver != nil {
		s.saver.Stop(ctx)
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	if s.db != nil {
		s.db.Close()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds the permissive CORS headers the browser clients expect and
// short-circuits preflight requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS,PATCH,DELETE,POST,PUT")
		w.Header().Set("Access-Control-Allow-Headers", "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// profileID resolves the acting profile from the X-Profile-ID header or the
// profile query parameter. All stored state is keyed by this ID.
func (s *Server) profileID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-Profile-ID")
	if raw == "" {
		raw = r.URL.Query().Get("profile")
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("profile ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid profile ID: %w", err)
	}
	return id, nil
}

// decodeJSON decodes the request body into dst and runs struct validation.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return s.validate.Struct(dst)
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError writes the response for an error surfaced by a service call.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request. This uses
// the IP address from RemoteAddr; X-Forwarded-For is ignored because the
// server does not sit behind a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrE-Fog/webteam-hubot/internal/bot"
	"github.com/MrE-Fog/webteam-hubot/internal/config"
	"github.com/MrE-Fog/webteam-hubot/internal/explain"
	"github.com/MrE-Fog/webteam-hubot/internal/instrumentation"
	"github.com/MrE-Fog/webteam-hubot/internal/logging"
	"github.com/MrE-Fog/webteam-hubot/internal/meet"
)

// Webhook paths registered with Mattermost.
const (
	MeetPath    = "/hubot/meet"
	ExplainPath = "/hubot/explain"
)

// Mattermost slash-command response types.
const (
	responseInChannel = "in_channel"
	responseEphemeral = "ephemeral"
)

// meetIconURL decorates in-channel /meet responses.
const meetIconURL = "https://ssl.gstatic.com/images/branding/product/2x/meet_2020q4_48dp.png"

// backendDownText is the user-visible message for spreadsheet outages.
const backendDownText = "Sorry, I couldn't reach the glossary spreadsheet. Please try again in a moment."

// Default HTTP server timeouts.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// commandResponse is the Mattermost slash-command response payload.
type commandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
	IconURL      string `json:"icon_url,omitempty"`
}

// Server handles the slash-command webhooks. It holds only read-only
// configuration and stateless collaborators, so handlers can run
// concurrently without coordination.
type Server struct {
	cfg        *config.Config
	explainer  *explain.Service
	dispatcher *bot.Dispatcher
	health     *HealthChecker
	logger     *slog.Logger
	metrics    *instrumentation.Metrics

	httpServer *http.Server
	addr       string
}

// New creates a webhook server. The same command functions are registered
// both as webhook handlers and as chat-pattern responders on the returned
// server's dispatcher.
func New(cfg *config.Config, explainer *explain.Service, logger *slog.Logger, metrics *instrumentation.Metrics) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	s := &Server{
		cfg:        cfg,
		explainer:  explainer,
		dispatcher: bot.NewDispatcher(logger),
		health:     NewHealthChecker(),
		logger:     logging.WithService(logger, "server"),
		metrics:    metrics,
		addr:       DefaultAddr,
	}

	s.dispatcher.HearCommand("meet", s.meetCommand)
	s.dispatcher.HearCommand("explain", s.explainCommand)

	return s
}

// Dispatcher returns the chat-pattern dispatcher with the meet and explain
// responders registered.
func (s *Server) Dispatcher() *bot.Dispatcher {
	return s.dispatcher
}

// Health returns the server's health checker.
func (s *Server) Health() *HealthChecker {
	return s.health
}

// SetAddr overrides the listen address before Start is called.
func (s *Server) SetAddr(addr string) {
	s.addr = addr
}

// Handler returns the webhook mux with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(MeetPath, s.instrumented(MeetPath, s.handleMeet))
	mux.Handle(ExplainPath, s.instrumented(ExplainPath, s.handleExplain))
	s.health.RegisterHealthEndpoints(mux)
	return mux
}

// Start runs the webhook server until the listener fails or Shutdown is
// called. Call it in a goroutine for non-blocking operation.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	s.logger.Info("starting webhook server", slog.String("addr", s.addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the webhook server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	if s.httpServer != nil {
		s.logger.Info("shutting down webhook server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// meetCommand is the /meet implementation shared by the webhook handler and
// the chat dispatcher.
func (s *Server) meetCommand(ctx context.Context, text string) string {
	start := time.Now()
	defer func() {
		s.metrics.RecordCommand(ctx, "meet", instrumentation.StatusSuccess, time.Since(start))
	}()

	if isHelpQuery(text) {
		return meet.HelpText
	}
	return meet.GenerateLink(text)
}

// explainCommand is the /explain implementation shared by the webhook
// handler and the chat dispatcher. Backend failures become a user-visible
// message here so both routes behave identically.
func (s *Server) explainCommand(ctx context.Context, text string) string {
	start := time.Now()
	logger := logging.WithCommand(s.logger, "explain")

	if isHelpQuery(text) {
		s.metrics.RecordCommand(ctx, "explain", instrumentation.StatusSuccess, time.Since(start))
		return explain.UsageText
	}

	result, err := s.explainer.Lookup(ctx, text)
	if err != nil {
		s.metrics.RecordCommand(ctx, "explain", instrumentation.StatusError, time.Since(start))
		if errors.Is(err, explain.ErrBackendUnavailable) {
			logger.Error("glossary backend unavailable", logging.Err(err))
		} else {
			logger.Error("lookup failed", logging.Err(err))
		}
		return backendDownText
	}

	s.metrics.RecordCommand(ctx, "explain", instrumentation.StatusSuccess, time.Since(start))
	return result
}

func (s *Server) handleMeet(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r, s.cfg.MeetToken) {
		return
	}

	text := r.PostFormValue("text")
	writeJSON(w, http.StatusOK, commandResponse{
		ResponseType: responseInChannel,
		IconURL:      meetIconURL,
		Text:         s.meetCommand(r.Context(), text),
	})
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r, s.cfg.ExplainToken) {
		return
	}

	text := r.PostFormValue("text")
	writeJSON(w, http.StatusOK, commandResponse{
		ResponseType: responseEphemeral,
		Text:         s.explainCommand(r.Context(), text),
	})
}

// authorize validates the webhook method and shared-secret token. It writes
// the error response itself and reports whether the request may proceed.
// The token check runs before any backend work.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, want string) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commandResponse{
			ResponseType: responseEphemeral,
			Text:         "method not allowed",
		})
		return false
	}

	got := r.PostFormValue("token")
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		s.logger.Warn("webhook token mismatch",
			slog.String("path", r.URL.Path),
			logging.Token(got))
		writeJSON(w, http.StatusUnauthorized, commandResponse{
			ResponseType: responseEphemeral,
			Text:         "invalid token",
		})
		return false
	}

	return true
}

// instrumented wraps a handler with request logging and metrics.
func (s *Server) instrumented(path string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		duration := time.Since(start)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, rec.status, duration)
		s.logger.Info("webhook request",
			slog.String("method", r.Method),
			slog.String("path", path),
			slog.Int("status", rec.status),
			slog.Duration("duration", duration))
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// isHelpQuery reports whether the command text asks for usage help.
func isHelpQuery(text string) bool {
	switch explain.Normalize(text) {
	case "", "help", "-h", "--help":
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, body commandResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

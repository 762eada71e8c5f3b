// Package server exposes the interview-practice chat service over HTTP. It
// normalizes inbound conversation history, submits it to the model gateway,
// and relays the classified outcome to the caller.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/vivaprep/vivaprep/pkg/gemini"
	"github.com/vivaprep/vivaprep/pkg/record"
	"github.com/vivaprep/vivaprep/pkg/transcript"
)

const previewLen = 120

// Gateway is the remote generation capability the server depends on. The
// production implementation is *gemini.Client; tests substitute stubs.
type Gateway interface {
	Generate(ctx context.Context, ts transcript.Transcript, instruction string) gemini.Result
	Configured() bool
	Model() string
	EndpointMode() string
}

// Server holds everything one process needs to answer chat requests. It is
// stateless between requests: conversation history arrives with each call
// and nothing is shared across them except the append-only exchange log.
type Server struct {
	config      Config
	instruction string
	gateway     Gateway
	store       record.Store
	logger      *zap.Logger
	app         *fiber.App
}

// chatRequest is the inbound payload. History carries prior turns; Message
// optionally carries the newest user utterance and is appended after the
// history normalizes.
type chatRequest struct {
	Message string               `json:"message"`
	History []transcript.RawItem `json:"history"`
}

// chatResponse is the success payload.
type chatResponse struct {
	Response string `json:"response"`
}

// errorResponse is the failure payload for every handler.
type errorResponse struct {
	Error string `json:"error"`
}

// New creates a Server from a resolved Config.
func New(config Config, logger *zap.Logger) (*Server, error) {
	var store record.Store
	var err error

	if config.DBPath != "" {
		store, err = record.NewSQLiteStore(config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite exchange log: %w", err)
		}
		logger.Info("using SQLite exchange log", zap.String("path", config.DBPath))
	} else {
		store = record.NewMemoryStore()
		logger.Info("using in-memory exchange log")
	}

	instruction, err := config.ResolveInstruction()
	if err != nil {
		store.Close()
		return nil, err
	}

	gateway := gemini.NewClient(gemini.Config{
		Model:       config.Model,
		APIKey:      config.APIKey,
		AccessToken: config.AccessToken,
		Project:     config.Project,
		Location:    config.Location,
		Endpoint:    config.Endpoint,
	}, logger)

	if !gateway.Configured() {
		logger.Warn("no model credentials configured; /chat will refuse requests")
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	// The browser front end is served from a different origin
	app.Use(cors.New())

	s := &Server{
		config:      config,
		instruction: instruction,
		gateway:     gateway,
		store:       store,
		logger:      logger,
		app:         app,
	}
	s.registerRoutes(app)

	return s, nil
}

func (s *Server) registerRoutes(app *fiber.App) {
	app.Post("/chat", s.handleChat)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	// Inspection endpoints
	app.Get("/debug", s.handleDebug)
	app.Get("/sessions", s.handleListSessions)
	app.Get("/sessions/:id", s.handleGetSession)
}

// Run starts the server on the configured listening address.
func (s *Server) Run() error {
	s.logger.Info("starting server",
		zap.String("listen", s.config.ListenAddr),
		zap.String("model", s.gateway.Model()),
		zap.String("mode", s.gateway.EndpointMode()),
	)

	return s.app.Listen(s.config.ListenAddr)
}

// Close shuts down the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// handleChat is the single semantic operation of the service: history in,
// model reply out. Input failures are classified before the gateway is
// invoked; gateway failures are classified after. Nothing propagates raw.
func (s *Server) handleChat(c *fiber.Ctx) error {
	startTime := time.Now()

	if !s.gateway.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(errorResponse{Error: "service not configured"})
	}

	var req chatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	message := strings.TrimSpace(req.Message)

	ts, skipped, err := transcript.Normalize(req.History)
	if err != nil && message == "" {
		s.recordExchange(c.Context(), 0, skipped, inputOutcome(err), "")
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: inputErrorMessage(err)})
	}

	// A fresh message makes an otherwise-invalid history workable: the
	// first turn of a conversation has no history at all.
	if message != "" {
		ts = append(ts, transcript.Turn{Role: transcript.RoleUser, Text: message})
	}

	s.logger.Debug("received chat request",
		zap.Int("history_items", len(req.History)),
		zap.Int("turns", len(ts)),
		zap.Int("skipped", skipped),
		zap.Bool("has_message", message != ""),
	)
	if skipped > 0 {
		s.logger.Warn("dropped malformed history items", zap.Int("skipped", skipped))
	}

	result := s.gateway.Generate(c.Context(), ts, s.instruction)

	outcome := "ok"
	if !result.OK() {
		outcome = string(result.Reason)
	}
	s.recordExchange(c.Context(), len(ts), skipped, outcome, truncate(result.Text, previewLen))

	if result.OK() {
		s.logger.Debug("reply generated",
			zap.String("reply_preview", truncate(result.Text, 100)),
			zap.Duration("duration", time.Since(startTime)),
		)
		return c.JSON(chatResponse{Response: result.Text})
	}

	s.logger.Error("generation failed",
		zap.String("reason", string(result.Reason)),
		zap.String("detail", result.Detail),
		zap.Duration("duration", time.Since(startTime)),
	)

	status := fiber.StatusInternalServerError
	if result.Reason == gemini.ReasonTransport {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(errorResponse{Error: failureMessage(result)})
}

// recordExchange appends to the exchange log. A failed append never fails
// the request.
func (s *Server) recordExchange(ctx context.Context, turns, skipped int, outcome, preview string) {
	e := record.NewExchange(turns, skipped, outcome, preview)
	if err := s.store.Append(ctx, e); err != nil {
		s.logger.Error("failed to record exchange", zap.Error(err))
		return
	}
	s.logger.Debug("exchange recorded", zap.String("id", truncate(e.ID, 16)))
}

// handleDebug reports the running configuration without echoing secrets.
func (s *Server) handleDebug(c *fiber.Ctx) error {
	storage := "memory"
	if s.config.DBPath != "" {
		storage = "sqlite"
	}

	return c.JSON(map[string]any{
		"model":             s.gateway.Model(),
		"endpoint_mode":     s.gateway.EndpointMode(),
		"configured":        s.gateway.Configured(),
		"instruction_chars": len(s.instruction),
		"storage":           storage,
	})
}

// handleListSessions returns all recorded exchanges, oldest first.
func (s *Server) handleListSessions(c *fiber.Ctx) error {
	exchanges, err := s.store.List(c.Context())
	if err != nil {
		s.logger.Error("failed to list exchanges", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).
			JSON(errorResponse{Error: "failed to list sessions"})
	}

	count, err := s.store.Len(c.Context())
	if err != nil {
		s.logger.Error("failed to count exchanges", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).
			JSON(errorResponse{Error: "failed to list sessions"})
	}

	return c.JSON(map[string]any{
		"count":    count,
		"sessions": exchanges,
	})
}

// handleGetSession returns one recorded exchange by ID.
func (s *Server) handleGetSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "id parameter required"})
	}

	e, err := s.store.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "session not found"})
	}

	return c.JSON(e)
}

// inputOutcome names a normalization failure for the exchange log.
func inputOutcome(err error) string {
	switch err {
	case transcript.ErrMissingHistory:
		return "missing-history"
	case transcript.ErrEmptyHistory:
		return "empty-history"
	default:
		return "no-valid-content"
	}
}

// inputErrorMessage maps a normalization failure to the client-facing text.
func inputErrorMessage(err error) string {
	switch err {
	case transcript.ErrMissingHistory:
		return "history is required"
	case transcript.ErrEmptyHistory:
		return "history is empty"
	default:
		return "history contains no usable messages"
	}
}

// failureMessage maps a generation failure to the client-facing text.
// Transport detail stays in the logs; content-policy reasons are specific
// so the front end can explain why no reply was produced.
func failureMessage(r gemini.Result) string {
	switch r.Reason {
	case gemini.ReasonTransport:
		return "upstream request failed"
	case gemini.ReasonSafetyBlocked:
		return "reply blocked by safety filters"
	case gemini.ReasonEmptyOutput:
		return "model returned no text"
	case gemini.ReasonOtherStop:
		return "generation stopped: " + r.Detail
	default:
		return "unexpected upstream response"
	}
}

// truncate shortens s to maxLen runes for previews. Cutting on rune
// boundaries matters here: instruction-domain text is full of macrons.
func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}

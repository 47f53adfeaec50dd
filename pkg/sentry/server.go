// Package sentry is the duck's on-device server: it speaks text sent
// by the laptop, serves empathy on demand, drives the avatar face,
// and reports the frustration monitor's state.
package sentry

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/debug-duck/go-duck/pkg/duck"
	"github.com/debug-duck/go-duck/pkg/fer"
	"github.com/debug-duck/go-duck/pkg/hub"
	"github.com/debug-duck/go-duck/pkg/tts"
)

// empathyHold is how long the concerned expression stays up after an
// empathy response before the face reverts to neutral.
const empathyHold = time.Second

// PhraseGenerator produces a short comforting sentence. It must not
// fail; implementations fall back to canned phrases.
type PhraseGenerator interface {
	ComfortingPhrase(ctx context.Context) string
}

// Config holds the server dependencies.
type Config struct {
	Addr    string
	Speaker tts.Provider
	Comfort PhraseGenerator
	Face    *duck.Face
	Monitor *fer.Monitor // optional; nil when the camera is unavailable
	Logger  *slog.Logger
}

// Server is the duck's HTTP and websocket surface.
type Server struct {
	app     *fiber.App
	addr    string
	speaker tts.Provider
	comfort PhraseGenerator
	face    *duck.Face
	monitor *fer.Monitor
	faceHub *hub.Hub
	logger  *slog.Logger
	started time.Time
}

// NewServer wires the routes and the face broadcast hub.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		addr:    cfg.Addr,
		speaker: cfg.Speaker,
		comfort: cfg.Comfort,
		face:    cfg.Face,
		monitor: cfg.Monitor,
		faceHub: hub.New("face"),
		logger:  cfg.Logger.With("component", "sentry"),
		started: time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Debug Duck",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())
	app.Use(s.requestID)

	// Avatar page assets, when deployed alongside the binary.
	app.Static("/", "./web")

	app.Post("/speak", s.handleSpeak)
	app.Get("/trigger-empathy", s.handleTriggerEmpathy)
	app.Post("/emotion", s.handleEmotion)
	app.Get("/status", s.handleStatus)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/face", websocket.New(s.handleFaceWS))

	// Every face change goes out to the avatar clients.
	s.face.OnChange(func(e duck.Expression) {
		s.faceHub.BroadcastJSON(fiber.Map{"expression": e.String()})
	})

	s.app = app
	return s
}

// Listen starts the face hub and serves until the listener fails.
func (s *Server) Listen() error {
	go s.faceHub.Run()
	s.logger.Info("sentry listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// requestID tags every request for log correlation.
func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("request_id", id)
	c.Set("X-Request-ID", id)
	return c.Next()
}

func (s *Server) reqLogger(c *fiber.Ctx) *slog.Logger {
	if id, ok := c.Locals("request_id").(string); ok {
		return s.logger.With("request_id", id)
	}
	return s.logger
}

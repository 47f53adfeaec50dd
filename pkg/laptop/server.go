// Package laptop is the desk-side half of the duck: it reads code off
// the user's screen, asks a language model about it, and sends the
// answer to the Pi to be spoken.
package laptop

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
)

// Reader extracts the text currently on screen.
type Reader interface {
	ReadScreen() (string, error)
}

// Helper answers questions about code.
type Helper interface {
	CodingHelp(ctx context.Context, code string) (string, error)
	ContextualHelp(ctx context.Context, code, question string) (string, error)
}

// Config holds the server dependencies.
type Config struct {
	Addr   string
	Screen Reader
	Helper Helper
	Duck   Duck
	Logger *slog.Logger
}

// Server is the laptop's HTTP surface.
type Server struct {
	app     *fiber.App
	addr    string
	screen  Reader
	helper  Helper
	duck    Duck
	logger  *slog.Logger
	started time.Time
}

// NewServer wires the routes.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		addr:    cfg.Addr,
		screen:  cfg.Screen,
		helper:  cfg.Helper,
		duck:    cfg.Duck,
		logger:  cfg.Logger.With("component", "laptop"),
		started: time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Debug Duck Laptop",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())
	app.Use(s.requestID)

	app.Get("/get-help", s.handleGetHelp)
	app.Post("/get-help", s.handleGetHelp)
	app.Post("/get-contextual-help", s.handleContextualHelp)
	app.Get("/status", s.handleStatus)

	s.app = app
	return s
}

// Listen serves until the listener fails.
func (s *Server) Listen() error {
	s.logger.Info("laptop listening", "addr", s.addr)
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

package sentry

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/debug-duck/go-duck/pkg/duck"
	"github.com/debug-duck/go-duck/pkg/hub"
	"github.com/debug-duck/go-duck/pkg/llm"
)

// SpeakRequest is the body of POST /speak.
type SpeakRequest struct {
	Text string `json:"text"`
}

// EmotionRequest is the body of POST /emotion.
type EmotionRequest struct {
	Emotion string `json:"emotion"`
}

// handleSpeak voices the given text. The face shows listening while
// the duck speaks and returns to neutral afterwards.
func (s *Server) handleSpeak(c *fiber.Ctx) error {
	log := s.reqLogger(c)

	var req SpeakRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error", "message": "invalid request body",
		})
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error", "message": "No text provided",
		})
	}

	s.face.Set(duck.ExpressionListening)
	err := s.speaker.Speak(c.Context(), text)
	s.face.Set(duck.ExpressionNeutral)

	if err != nil {
		log.Error("speak failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error", "message": "TTS failed",
		})
	}

	log.Info("spoke text", "chars", len(text))
	return c.JSON(fiber.Map{"status": "success", "text": text})
}

// handleTriggerEmpathy generates a comfort phrase and speaks it. The
// concerned expression lingers briefly after the phrase.
func (s *Server) handleTriggerEmpathy(c *fiber.Ctx) error {
	log := s.reqLogger(c)

	phrase := s.comfort.ComfortingPhrase(c.Context())

	s.face.Set(duck.ExpressionConcerned)
	err := s.speaker.Speak(c.Context(), phrase)
	s.face.SetFor(duck.ExpressionConcerned, empathyHold, duck.ExpressionNeutral)

	if err != nil {
		log.Error("empathy speech failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error", "message": "TTS failed", "phrase": phrase,
		})
	}

	log.Info("delivered empathy", "phrase", phrase)
	return c.JSON(fiber.Map{"status": "success", "phrase": phrase})
}

// handleEmotion sets the avatar expression directly.
func (s *Server) handleEmotion(c *fiber.Ctx) error {
	var req EmotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error", "message": "invalid request body",
		})
	}

	e := duck.Expression(req.Emotion)
	if !e.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error", "message": "unknown emotion: " + req.Emotion,
		})
	}

	s.face.Set(e)
	return c.JSON(fiber.Map{"status": "success", "emotion": e.String()})
}

// handleStatus reports the sentry's health and the frustration state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":     "running",
		"service":    "Debug Duck Pi-Sentry",
		"uptime_s":   int(time.Since(s.started).Seconds()),
		"expression": s.face.Current().String(),
		"clients":    s.faceHub.ClientCount(),
	}

	if s.monitor != nil {
		count, threshold, fired, running := s.monitor.Status()
		status["monitor"] = fiber.Map{
			"running":   running,
			"emotion":   s.monitor.Last().String(),
			"count":     count,
			"threshold": threshold,
			"fired":     fired,
		}
	} else {
		status["monitor"] = fiber.Map{"running": false}
	}

	if err := s.speaker.Health(c.Context()); err != nil {
		status["tts"] = "unavailable"
	} else {
		status["tts"] = "ok"
	}

	status["llm"] = s.llmStatus(c)

	return c.JSON(status)
}

// llmStatus probes the comfort generator's backing model. Generators
// without a health check run on canned phrases only.
func (s *Server) llmStatus(c *fiber.Ctx) string {
	hc, ok := s.comfort.(interface {
		Health(ctx context.Context) error
	})
	if !ok {
		return "fallback-only"
	}
	switch err := hc.Health(c.Context()); {
	case err == nil:
		return "ok"
	case errors.Is(err, llm.ErrNoAPIKey):
		return "fallback-only"
	default:
		return "unavailable"
	}
}

// handleFaceWS streams face expression changes to avatar clients.
func (s *Server) handleFaceWS(conn *websocket.Conn) {
	client := hub.NewClient(s.faceHub, conn)

	// Send the current expression so a fresh client renders
	// immediately.
	if frame, err := json.Marshal(fiber.Map{"expression": s.face.Current().String()}); err == nil {
		client.Send(frame)
	}

	client.Run()
}

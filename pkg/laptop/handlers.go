package laptop

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/debug-duck/go-duck/pkg/ocr"
)

// Spoken error lines. The duck voices these so the user hears what
// went wrong without looking at a terminal.
const (
	spokenNoCode     = "I don't see any code on your screen. Can you make sure your code editor is visible?"
	spokenNoCapture  = "I couldn't capture your screen. Something went wrong."
	spokenLLMFailed  = "My AI brain isn't working. Check the API key."
	spokenNoQuestion = "I didn't hear a question. Try again?"
)

// ContextualHelpRequest is the body of POST /get-contextual-help.
type ContextualHelpRequest struct {
	Question string `json:"question"`
}

// handleGetHelp reads the screen, asks the model what is wrong with
// the code, and has the duck speak the answer.
func (s *Server) handleGetHelp(c *fiber.Ctx) error {
	log := s.reqLogger(c)

	code, err := s.screen.ReadScreen()
	if err != nil {
		return s.screenError(c, log, err)
	}
	log.Info("screen read", "chars", len(code))

	answer, err := s.helper.CodingHelp(c.Context(), code)
	if err != nil {
		log.Error("coding help failed", "error", err)
		s.speakBestEffort(c, spokenLLMFailed)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":   "error",
			"message":  err.Error(),
			"response": spokenLLMFailed,
		})
	}

	delivered := s.speak(c, log, answer)
	status := "success"
	piStatus := "sent"
	if !delivered {
		status = "partial_success"
		piStatus = "failed"
	}
	return c.JSON(fiber.Map{
		"status":     status,
		"ocr_length": len(code),
		"response":   answer,
		"pi_status":  piStatus,
	})
}

// handleContextualHelp answers a specific question about the code on
// screen.
func (s *Server) handleContextualHelp(c *fiber.Ctx) error {
	log := s.reqLogger(c)

	var req ContextualHelpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "invalid request body",
		})
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		s.speakBestEffort(c, spokenNoQuestion)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "No question provided",
		})
	}

	code, err := s.screen.ReadScreen()
	if err != nil {
		return s.screenError(c, log, err)
	}

	answer, err := s.helper.ContextualHelp(c.Context(), code, question)
	if err != nil {
		log.Error("contextual help failed", "error", err)
		s.speakBestEffort(c, spokenLLMFailed)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	s.speak(c, log, answer)
	return c.JSON(fiber.Map{
		"status":   "success",
		"question": question,
		"response": answer,
	})
}

// handleStatus reports laptop health and whether the duck answers.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	duckStatus := "ok"
	if err := s.duck.Health(c.Context()); err != nil {
		duckStatus = "unreachable"
	}
	return c.JSON(fiber.Map{
		"status":  "running",
		"service": "Debug Duck Laptop Client",
		"duck":    duckStatus,
	})
}

// screenError maps a capture/OCR failure to a response. The failure
// is also voiced on the duck, best effort, so the user hears it.
func (s *Server) screenError(c *fiber.Ctx, log *slog.Logger, err error) error {
	if errors.Is(err, ocr.ErrNoText) {
		log.Warn("no text on screen")
		s.speakBestEffort(c, spokenNoCode)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":   "error",
			"message":  "No text found on screen",
			"response": spokenNoCode,
		})
	}

	log.Error("screen capture failed", "error", err)
	s.speakBestEffort(c, spokenNoCapture)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":   "error",
		"message":  err.Error(),
		"response": spokenNoCapture,
	})
}

// speak sends the answer to the duck, reporting delivery. A failure
// does not fail the request: the caller still gets the answer.
func (s *Server) speak(c *fiber.Ctx, log *slog.Logger, answer string) bool {
	if err := s.duck.Speak(c.Context(), answer); err != nil {
		log.Warn("duck delivery failed", "error", err)
		return false
	}
	log.Info("answer delivered to duck", "chars", len(answer))
	return true
}

func (s *Server) speakBestEffort(c *fiber.Ctx, text string) {
	if err := s.duck.Speak(c.Context(), text); err != nil {
		s.logger.Debug("could not voice error on duck", "error", err)
	}
}

// Package ocr reads code off the laptop screen. It captures the
// display and runs Tesseract over the capture to recover the text
// the user is currently looking at.
package ocr

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer extracts text from an image.
type Recognizer interface {
	Recognize(img []byte) (string, error)
	Close() error
}

// Service captures the screen and recognizes its text content.
type Service struct {
	mu         sync.Mutex
	recognizer Recognizer
	capture    func() ([]byte, error)
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRegion restricts capture to a rectangle of the primary display
// instead of the full screen. Useful when only the editor window
// should be read.
func WithRegion(x, y, width, height int) Option {
	return func(s *Service) {
		s.capture = func() ([]byte, error) {
			return CaptureRegion(x, y, width, height)
		}
	}
}

// NewService creates a Service backed by a Tesseract recognizer and
// the primary-display capture.
func NewService(logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		recognizer: NewTesseract(),
		capture:    CaptureScreen,
		logger:     logger.With("component", "ocr"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceWith creates a Service with an explicit recognizer and
// capture function. Used in tests.
func NewServiceWith(r Recognizer, capture func() ([]byte, error), logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{recognizer: r, capture: capture, logger: logger.With("component", "ocr")}
}

// ReadScreen captures the display and returns the recognized text.
// Returns ErrNoText when the screen holds nothing readable.
func (s *Service) ReadScreen() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.capture()
	if err != nil {
		return "", err
	}

	text, err := s.recognizer.Recognize(img)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}

	s.logger.Debug("screen text recognized", "chars", len(text))
	return text, nil
}

// Close releases the recognizer.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recognizer.Close()
}

// Tesseract is a Recognizer backed by gosseract.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates a Tesseract recognizer configured for English.
func NewTesseract() *Tesseract {
	client := gosseract.NewClient()
	client.SetLanguage("eng")
	return &Tesseract{client: client}
}

func (t *Tesseract) Recognize(img []byte) (string, error) {
	if err := t.client.SetImageFromBytes(img); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognize: %w", err)
	}
	return text, nil
}

func (t *Tesseract) Close() error {
	return t.client.Close()
}

var _ Recognizer = (*Tesseract)(nil)

package ocr_test

import (
	"errors"
	"testing"

	"github.com/debug-duck/go-duck/pkg/ocr"
)

type stubRecognizer struct {
	text string
	err  error
}

func (s *stubRecognizer) Recognize(img []byte) (string, error) { return s.text, s.err }
func (s *stubRecognizer) Close() error                         { return nil }

func goodCapture() ([]byte, error) { return []byte("png-bytes"), nil }

func TestReadScreen(t *testing.T) {
	svc := ocr.NewServiceWith(&stubRecognizer{text: "  func main() {}\n"}, goodCapture, nil)

	text, err := svc.ReadScreen()
	if err != nil {
		t.Fatalf("ReadScreen() error = %v", err)
	}
	if text != "func main() {}" {
		t.Errorf("ReadScreen() = %q, want trimmed text", text)
	}
}

func TestReadScreen_NoText(t *testing.T) {
	svc := ocr.NewServiceWith(&stubRecognizer{text: "   \n\t"}, goodCapture, nil)

	_, err := svc.ReadScreen()
	if !errors.Is(err, ocr.ErrNoText) {
		t.Fatalf("ReadScreen() error = %v, want ErrNoText", err)
	}
}

func TestReadScreen_CaptureFails(t *testing.T) {
	capture := func() ([]byte, error) { return nil, ocr.ErrCaptureFailed }
	svc := ocr.NewServiceWith(&stubRecognizer{text: "ignored"}, capture, nil)

	_, err := svc.ReadScreen()
	if !errors.Is(err, ocr.ErrCaptureFailed) {
		t.Fatalf("ReadScreen() error = %v, want ErrCaptureFailed", err)
	}
}

func TestReadScreen_RecognizerFails(t *testing.T) {
	wantErr := errors.New("tesseract exploded")
	svc := ocr.NewServiceWith(&stubRecognizer{err: wantErr}, goodCapture, nil)

	_, err := svc.ReadScreen()
	if !errors.Is(err, wantErr) {
		t.Fatalf("ReadScreen() error = %v, want %v", err, wantErr)
	}
}

package ocr

import "errors"

var (
	// ErrNoMonitor is returned when no display is available to capture.
	ErrNoMonitor = errors.New("ocr: no active monitor found")

	// ErrCaptureFailed is returned when the screen grab itself fails.
	ErrCaptureFailed = errors.New("ocr: could not capture screen")

	// ErrNoText is returned when recognition produces no usable text.
	ErrNoText = errors.New("ocr: no text detected on screen")
)

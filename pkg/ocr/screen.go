package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/kbinani/screenshot"
)

// CaptureScreen grabs the primary display and returns it PNG-encoded.
func CaptureScreen() ([]byte, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, ErrNoMonitor
	}

	bounds := screenshot.GetDisplayBounds(0)
	return captureBounds(bounds)
}

// CaptureRegion grabs a rectangular region of the primary display.
func CaptureRegion(x, y, width, height int) ([]byte, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, ErrNoMonitor
	}

	return captureBounds(image.Rect(x, y, x+width, y+height))
}

// ParseRegion parses a capture region spec of the form
// "x,y,width,height".
func ParseRegion(spec string) (x, y, width, height int, err error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("ocr: region %q: want x,y,width,height", spec)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("ocr: region %q: %w", spec, err)
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("ocr: region %q: width and height must be positive", spec)
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func captureBounds(bounds image.Rectangle) ([]byte, error) {
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("ocr: encode capture: %w", err)
	}
	return buf.Bytes(), nil
}

package ocr_test

import (
	"testing"

	"github.com/debug-duck/go-duck/pkg/ocr"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		spec       string
		x, y, w, h int
		wantErr    bool
	}{
		{spec: "0,0,1920,1080", x: 0, y: 0, w: 1920, h: 1080},
		{spec: " 100, 50, 800, 600 ", x: 100, y: 50, w: 800, h: 600},
		{spec: "-10,20,640,480", x: -10, y: 20, w: 640, h: 480},
		{spec: "0,0,1920", wantErr: true},
		{spec: "0,0,1920,1080,0", wantErr: true},
		{spec: "a,b,c,d", wantErr: true},
		{spec: "0,0,0,1080", wantErr: true},
		{spec: "0,0,1920,-1", wantErr: true},
		{spec: "", wantErr: true},
	}

	for _, tt := range tests {
		x, y, w, h, err := ocr.ParseRegion(tt.spec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRegion(%q) expected error, got %d,%d,%d,%d", tt.spec, x, y, w, h)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRegion(%q) error = %v", tt.spec, err)
			continue
		}
		if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
			t.Errorf("ParseRegion(%q) = %d,%d,%d,%d, want %d,%d,%d,%d",
				tt.spec, x, y, w, h, tt.x, tt.y, tt.w, tt.h)
		}
	}
}

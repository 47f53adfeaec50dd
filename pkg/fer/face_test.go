package fer

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNormalizeCrop_ColorChannels(t *testing.T) {
	// B=51, G=102, R=204 everywhere.
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(51, 102, 204, 0), inputSize, inputSize, gocv.MatTypeCV8UC3)
	defer m.Close()

	pixels := normalizeCrop(m)
	if len(pixels) != inputLen {
		t.Fatalf("crop length = %d, want %d", len(pixels), inputLen)
	}
	want := [inputChannels]float32{51.0 / 255.0, 102.0 / 255.0, 204.0 / 255.0}
	for ch, w := range want {
		if pixels[ch] != w {
			t.Errorf("channel %d = %v, want %v", ch, pixels[ch], w)
		}
	}
}

func TestNormalizeCrop_PixelOrder(t *testing.T) {
	m := gocv.NewMatWithSize(inputSize, inputSize, gocv.MatTypeCV8UC3)
	defer m.Close()

	// Mark one pixel and verify it lands at the row-major HWC offset.
	const y, x = 7, 11
	m.SetUCharAt(y, x*inputChannels+0, 255)
	m.SetUCharAt(y, x*inputChannels+2, 255)

	pixels := normalizeCrop(m)
	base := (y*inputSize + x) * inputChannels
	if pixels[base] != 1.0 || pixels[base+1] != 0.0 || pixels[base+2] != 1.0 {
		t.Errorf("pixel at (%d,%d) = %v %v %v, want 1 0 1",
			y, x, pixels[base], pixels[base+1], pixels[base+2])
	}
}

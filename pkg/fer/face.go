package fer

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

// FaceDetector finds the face in a camera frame and produces the
// normalized color crop the classifier consumes.
type FaceDetector struct {
	cascade gocv.CascadeClassifier
}

// NewFaceDetector loads a Haar cascade from the given XML file.
func NewFaceDetector(cascadePath string) (*FaceDetector, error) {
	if _, err := os.Stat(cascadePath); err != nil {
		return nil, fmt.Errorf("fer: cascade file: %w", err)
	}

	cascade := gocv.NewCascadeClassifier()
	if !cascade.Load(cascadePath) {
		cascade.Close()
		return nil, fmt.Errorf("fer: failed to load cascade %s", cascadePath)
	}

	return &FaceDetector{cascade: cascade}, nil
}

// ExtractFace locates the first face in the frame and returns it as a
// normalized inputSize×inputSize BGR crop in row-major HWC order. The
// second return is false when no face is visible. Detection runs on a
// grayscale copy; the crop itself keeps the frame's color channels.
func (d *FaceDetector) ExtractFace(frame gocv.Mat) ([]float32, bool, error) {
	if frame.Empty() {
		return nil, false, fmt.Errorf("fer: empty frame")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	rects := d.cascade.DetectMultiScaleWithParams(
		gray, 1.1, 5, 0,
		image.Pt(30, 30), image.Pt(0, 0),
	)
	if len(rects) == 0 {
		return nil, false, nil
	}

	face := frame.Region(rects[0])
	defer face.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(face, &resized, image.Pt(inputSize, inputSize), 0, 0, gocv.InterpolationArea)

	return normalizeCrop(resized), true, nil
}

// normalizeCrop flattens an inputSize×inputSize BGR Mat into the
// row-major HWC float32 slice the network consumes, scaled to [0, 1].
func normalizeCrop(m gocv.Mat) []float32 {
	pixels := make([]float32, inputLen)
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			v := m.GetVecbAt(y, x)
			base := (y*inputSize + x) * inputChannels
			for ch := 0; ch < inputChannels; ch++ {
				pixels[base+ch] = float32(v[ch]) / 255.0
			}
		}
	}
	return pixels
}

// Close releases the cascade.
func (d *FaceDetector) Close() error {
	return d.cascade.Close()
}

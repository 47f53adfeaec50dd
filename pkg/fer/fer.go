// Package fer runs facial expression recognition on camera frames:
// a Haar cascade finds the user's face, a small ONNX network labels
// its expression, and a Monitor feeds the labels into the frustration
// detector on a fixed cadence.
package fer

import "github.com/debug-duck/go-duck/pkg/emotion"

// Dimensions of the face crop the expression network expects: a
// square BGR image, pixel values normalized to [0, 1].
const (
	inputSize     = 48
	inputChannels = 3
	inputLen      = inputSize * inputSize * inputChannels
)

// Classifier labels a preprocessed face crop. The input is a
// row-major inputSize×inputSize×inputChannels BGR image normalized
// to [0, 1]. A classification below the confidence threshold returns
// emotion.LabelNone.
type Classifier interface {
	Classify(face []float32) (emotion.Label, float32, error)
	Close() error
}

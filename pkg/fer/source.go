package fer

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/debug-duck/go-duck/pkg/emotion"
)

// Sampler produces one emotion label per observation. The gocv
// pipeline implements it; tests substitute scripted samplers.
type Sampler interface {
	Sample() (emotion.Label, error)
	Close() error
}

// Camera captures frames from a local video device.
type Camera struct {
	cap *gocv.VideoCapture
}

// OpenCamera opens the video device with the given index.
func OpenCamera(device int) (*Camera, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("fer: open camera %d: %w", device, err)
	}
	return &Camera{cap: cap}, nil
}

// Read fills frame with the next capture. Returns false when the
// device produced nothing.
func (c *Camera) Read(frame *gocv.Mat) bool {
	return c.cap.Read(frame)
}

// Close releases the device.
func (c *Camera) Close() error {
	return c.cap.Close()
}

// FrameReader abstracts the camera for the pipeline.
type FrameReader interface {
	Read(frame *gocv.Mat) bool
	Close() error
}

// Pipeline is the camera-backed Sampler: read a frame, find the face,
// classify its expression. A frame with no visible face samples as
// emotion.LabelNone.
type Pipeline struct {
	source     FrameReader
	faces      *FaceDetector
	classifier Classifier
	frame      gocv.Mat
}

// NewPipeline assembles the camera sampler.
func NewPipeline(source FrameReader, faces *FaceDetector, classifier Classifier) *Pipeline {
	return &Pipeline{
		source:     source,
		faces:      faces,
		classifier: classifier,
		frame:      gocv.NewMat(),
	}
}

func (p *Pipeline) Sample() (emotion.Label, error) {
	if !p.source.Read(&p.frame) {
		return emotion.LabelNone, fmt.Errorf("fer: camera read failed")
	}
	if p.frame.Empty() {
		return emotion.LabelNone, nil
	}

	face, found, err := p.faces.ExtractFace(p.frame)
	if err != nil {
		return emotion.LabelNone, err
	}
	if !found {
		return emotion.LabelNone, nil
	}

	label, _, err := p.classifier.Classify(face)
	if err != nil {
		return emotion.LabelNone, err
	}
	return label, nil
}

// Close releases the frame buffer, the detector, the classifier and
// the camera.
func (p *Pipeline) Close() error {
	p.frame.Close()
	p.faces.Close()
	p.classifier.Close()
	return p.source.Close()
}

var _ Sampler = (*Pipeline)(nil)

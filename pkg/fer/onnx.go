package fer

import (
	"fmt"
	"math"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/debug-duck/go-duck/pkg/emotion"
)

// ortInitOnce ensures the ONNX Runtime environment is initialized
// exactly once. The error is kept at package scope so later
// constructor calls surface the failure.
var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// ONNXClassifier runs the expression network via ONNX Runtime. Input
// and output tensors are allocated once and reused between calls.
// Not safe for concurrent use; the Monitor owns it from one goroutine.
type ONNXClassifier struct {
	session *ort.AdvancedSession

	inputTensor  *ort.Tensor[float32] // [1, 48, 48, 3]
	outputTensor *ort.Tensor[float32] // [1, 7]

	confidence float32
}

// NewONNXClassifier loads the expression model and allocates the
// session. libPath may be empty when the ONNX Runtime shared library
// is on the default search path. Classifications whose softmax
// probability falls below confidence yield emotion.LabelNone.
func NewONNXClassifier(modelPath, libPath string, confidence float32) (*ONNXClassifier, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("fer: model file: %w", err)
	}

	ortInitOnce.Do(func() {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	if ortInitErr != nil {
		return nil, fmt.Errorf("fer: init onnxruntime: %w", ortInitErr)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, inputSize, inputSize, inputChannels))
	if err != nil {
		return nil, fmt.Errorf("fer: create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(emotion.Labels))))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("fer: create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input"},
		[]string{"output"},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		nil,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("fer: create session: %w", err)
	}

	return &ONNXClassifier{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		confidence:   confidence,
	}, nil
}

// Classify labels one face crop. Returns LabelNone with the top
// probability when the network is not confident enough.
func (c *ONNXClassifier) Classify(face []float32) (emotion.Label, float32, error) {
	if len(face) != inputLen {
		return emotion.LabelNone, 0, fmt.Errorf("fer: face crop has %d values, want %d", len(face), inputLen)
	}

	copy(c.inputTensor.GetData(), face)

	if err := c.session.Run(); err != nil {
		return emotion.LabelNone, 0, fmt.Errorf("fer: inference: %w", err)
	}

	probs := softmax(c.outputTensor.GetData())
	best, bestProb := 0, probs[0]
	for i, p := range probs {
		if p > bestProb {
			best, bestProb = i, p
		}
	}

	if bestProb < c.confidence {
		return emotion.LabelNone, bestProb, nil
	}
	return emotion.Labels[best], bestProb, nil
}

// Close releases the session and tensors. Safe to call multiple times.
func (c *ONNXClassifier) Close() error {
	if c.session != nil {
		c.session.Destroy()
		c.session = nil
	}
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
		c.inputTensor = nil
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
		c.outputTensor = nil
	}
	return nil
}

func softmax(logits []float32) []float32 {
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}
	var sum float64
	out := make([]float32, len(logits))
	for i, v := range logits {
		e := math.Exp(float64(v - max))
		out[i] = float32(e)
		sum += e
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out
}

var _ Classifier = (*ONNXClassifier)(nil)

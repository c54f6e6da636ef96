package vision

import (
	"fmt"
	"slices"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"cofflyze-api/internal/disease"
)

// Classifier runs the coffee leaf ONNX model. The session is bound to a
// single input and output tensor, so Predict calls are serialized.
type Classifier struct {
	mu sync.Mutex

	modelPath string

	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// NewClassifier loads the ONNX runtime and the model at modelPath. An
// empty onnxLibPath keeps the runtime's default library lookup.
func NewClassifier(modelPath, onnxLibPath string) (*Classifier, error) {
	if onnxLibPath != "" {
		ort.SetSharedLibraryPath(onnxLibPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("onnx init environment: %w", err)
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx get input/output info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("onnx model must have one input and one output, got %d/%d", len(inputs), len(outputs))
	}

	inputShape := fixBatch(inputs[0].Dimensions)
	if !slices.Equal([]int64(inputShape), InputShape) {
		return nil, fmt.Errorf("onnx model input shape %v, expected %v", inputShape, InputShape)
	}
	outputShape := fixBatch(outputs[0].Dimensions)
	if outputShape.FlattenedSize() != int64(disease.NumClasses) {
		return nil, fmt.Errorf("onnx model output shape %v, expected %d classes", outputShape, disease.NumClasses)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("onnx new input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("onnx new output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name},
		[]ort.Value{inputTensor}, []ort.Value{outputTensor}, nil)
	if err != nil {
		outputTensor.Destroy()
		inputTensor.Destroy()
		return nil, fmt.Errorf("onnx new session: %w", err)
	}

	return &Classifier{
		modelPath: modelPath,
		session:   session,
		input:     inputTensor,
		output:    outputTensor,
	}, nil
}

// fixBatch replaces dynamic (negative) dimensions with 1.
func fixBatch(shape ort.Shape) ort.Shape {
	fixed := shape.Clone()
	for i, d := range fixed {
		if d < 0 {
			fixed[i] = 1
		}
	}
	return fixed
}

// Predict runs one forward pass over a preprocessed (1,150,150,3) tensor
// and returns the class probabilities in disease.ClassOrder.
func (c *Classifier) Predict(input []float32) ([]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inData := c.input.GetData()
	if len(input) != len(inData) {
		return nil, fmt.Errorf("input tensor size %d, preprocessed %d", len(inData), len(input))
	}
	copy(inData, input)

	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}

	probs := make([]float32, len(c.output.GetData()))
	copy(probs, c.output.GetData())
	return probs, nil
}

// ModelPath is reported by the health check.
func (c *Classifier) ModelPath() string {
	return c.modelPath
}

func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var closeErr error
	if c.session != nil {
		closeErr = c.session.Destroy()
		c.session = nil
	}
	if c.input != nil {
		c.input.Destroy()
		c.input = nil
	}
	if c.output != nil {
		c.output.Destroy()
		c.output = nil
	}
	if err := ort.DestroyEnvironment(); err != nil && closeErr == nil {
		closeErr = err
	}
	return closeErr
}

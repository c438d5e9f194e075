package classifier

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortOnce sync.Once
	ortErr  error
)

// ONNXBackend runs a ResNet50 checkpoint exported to ONNX. The model file is loaded for every
// call so concurrent requests never share a session.
type ONNXBackend struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	NumClasses  int
}

// NewONNXBackend checks that the model file exists and returns a backend for it.
func NewONNXBackend(modelPath, libraryPath, inputName, outputName string) (*ONNXBackend, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}
	return &ONNXBackend{
		ModelPath:   modelPath,
		LibraryPath: libraryPath,
		InputName:   inputName,
		OutputName:  outputName,
		NumClasses:  len(Labels),
	}, nil
}

func (b *ONNXBackend) initRuntime() error {
	ortOnce.Do(func() {
		if b.LibraryPath != "" {
			ort.SetSharedLibraryPath(b.LibraryPath)
		}
		ortErr = ort.InitializeEnvironment()
	})
	return ortErr
}

// Infer implements Backend.
func (b *ONNXBackend) Infer(ctx context.Context, input []float32) ([]float32, error) {
	if err := b.initRuntime(); err != nil {
		return nil, fmt.Errorf("onnx runtime init: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inTensor, err := ort.NewTensor(ort.NewShape(1, channels, InputSize, InputSize), input)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer inTensor.Destroy()

	outTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(b.NumClasses)))
	if err != nil {
		return nil, fmt.Errorf("output tensor: %w", err)
	}
	defer outTensor.Destroy()

	session, err := ort.NewAdvancedSession(b.ModelPath,
		[]string{b.InputName}, []string{b.OutputName},
		[]ort.Value{inTensor}, []ort.Value{outTensor}, nil)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", b.ModelPath, err)
	}
	defer session.Destroy()

	if err := session.Run(); err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}
	return append([]float32(nil), outTensor.GetData()...), nil
}

package classifier

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
)

var (
	ErrLabelMismatch = errors.New("model output does not match label table")
	ErrInvalidOutput = errors.New("model output is not finite")
)

// Backend runs one forward pass over a preprocessed 1x3x224x224 tensor and returns the logits.
type Backend interface {
	Infer(ctx context.Context, input []float32) ([]float32, error)
}

// Result is one graded image.
type Result struct {
	Class      string  `json:"class"`
	Details    Details `json:"details"`
	Confidence float64 `json:"confidence"`
}

// Classifier maps images to embryo grades through a Backend.
type Classifier struct {
	backend Backend
	labels  []string
}

// New returns a Classifier over the default label table.
func New(backend Backend) *Classifier {
	return &Classifier{backend: backend, labels: Labels}
}

// Classify decodes a base64 (optionally data-URL) image and grades it.
func (c *Classifier) Classify(ctx context.Context, payload string) (Result, error) {
	img, err := DecodeImage(payload)
	if err != nil {
		return Result{}, err
	}
	return c.ClassifyImage(ctx, img)
}

// ClassifyImage grades an already decoded image.
func (c *Classifier) ClassifyImage(ctx context.Context, img image.Image) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logits, err := c.backend.Infer(ctx, Preprocess(img))
	if err != nil {
		return Result{}, fmt.Errorf("inference: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(logits) != len(c.labels) {
		return Result{}, fmt.Errorf("%w: got %d logits for %d labels", ErrLabelMismatch, len(logits), len(c.labels))
	}
	for i, l := range logits {
		if math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
			return Result{}, fmt.Errorf("%w: logit %d is %v", ErrInvalidOutput, i, l)
		}
	}

	idx := Argmax(logits)
	probs := Softmax(logits)
	label := c.labels[idx]
	return Result{
		Class:      label,
		Details:    LookupDetails(label),
		Confidence: math.Round(probs[idx]*10000) / 100,
	}, nil
}

package classifier

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	InputSize = 224
	channels  = 3
	normMean  = 0.5
	normStd   = 0.5
)

var ErrDecode = errors.New("image decode failed")

// DecodePayload returns the raw bytes of a base64 image, with or without a
// "data:image/...;base64," prefix.
func DecodePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}
	if i := strings.Index(payload, ","); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// browsers occasionally drop the padding
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}
	return raw, nil
}

// DecodeImage decodes a base64 image payload.
func DecodeImage(payload string) (image.Image, error) {
	raw, err := DecodePayload(payload)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(raw)
}

// DecodeBytes decodes a png, jpeg, bmp or webp image.
func DecodeBytes(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Preprocess resizes img to 224x224 with bilinear sampling and returns a 1x3x224x224
// CHW tensor, each channel scaled to [0,1] then normalized with mean 0.5 and std 0.5.
func Preprocess(img image.Image) []float32 {
	dst := image.NewRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	plane := InputSize * InputSize
	out := make([]float32, channels*plane)
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			off := dst.PixOffset(x, y)
			i := y*InputSize + x
			for ch := 0; ch < channels; ch++ {
				v := float32(dst.Pix[off+ch]) / 255
				out[ch*plane+i] = (v - normMean) / normStd
			}
		}
	}
	return out
}

// Softmax converts logits to probabilities.
func Softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := math.Inf(-1)
	for _, l := range logits {
		maxLogit = math.Max(maxLogit, float64(l))
	}
	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(float64(l) - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Argmax returns the index of the largest value, the first one on ties, or -1 for an empty slice.
func Argmax(values []float32) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}

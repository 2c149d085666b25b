package recognizer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRejectsMissingModel(t *testing.T) {
	cfg := DefaultConfig("/no/such/model.onnx", "/no/such/dict.txt")
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestRecognizeEmptyInput(t *testing.T) {
	r := &Recognizer{}
	results, err := r.Recognize(nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestRecognizeRejectsClosedSession(t *testing.T) {
	r := &Recognizer{}
	_, err := r.Recognize([]image.Image{image.NewRGBA(image.Rect(0, 0, 10, 10))})
	assert.Error(t, err)
}

func TestDefaultConfigConstants(t *testing.T) {
	cfg := DefaultConfig("det.onnx", "dict.txt")
	assert.Equal(t, 48, cfg.Height)
	assert.Equal(t, 6, cfg.BatchSize)
	assert.InDelta(t, 320.0/48.0, cfg.MinWhRatio, 1e-9)
	assert.InDelta(t, 1e-3, cfg.MinSpanRatio, 1e-12)
}

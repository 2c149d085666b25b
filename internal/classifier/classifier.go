// Package classifier implements the binary 180° rotation classifier
// used to correct upside-down text line crops before recognition.
package classifier

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/MeKo-Christian/pogo/internal/common"
	"github.com/MeKo-Christian/pogo/internal/imageops"
	"github.com/MeKo-Christian/pogo/internal/onnx"
)

// Classifier predicts whether a text line crop is rotated 180°.
type Classifier struct {
	cfg     Config
	session *onnx.Session
	mu      sync.RWMutex
}

// New creates a classifier. The classification model is optional
// system-wide: callers decide whether to construct one at all based on
// cls.onnx's presence.
func New(cfg Config) (*Classifier, error) {
	slog.Debug("initializing classifier", "model_path", cfg.ModelPath, "gpu", cfg.UseGPU)

	session, err := onnx.NewSession(cfg.ModelPath, cfg.NumThreads, onnx.GPUConfig{UseGPU: cfg.UseGPU})
	if err != nil {
		return nil, common.NewConfigError("classifier.New", err)
	}
	return &Classifier{cfg: cfg, session: session}, nil
}

// Close releases the underlying ONNX session.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

// Result is one crop's rotation prediction.
type Result struct {
	Rotated    bool
	Confidence float64 // p180, the probability backing the rotation decision
}

// Classify predicts rotation for a single crop.
func (c *Classifier) Classify(img image.Image) (Result, error) {
	results, err := c.ClassifyBatch([]image.Image{img})
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

// ClassifyBatch predicts rotation for every crop, internally splitting
// into groups of at most cfg.BatchSize.
func (c *Classifier) ClassifyBatch(imgs []image.Image) ([]Result, error) {
	if len(imgs) == 0 {
		return nil, nil
	}

	c.mu.RLock()
	session := c.session
	cfg := c.cfg
	c.mu.RUnlock()
	if session == nil {
		return nil, errors.New("classifier session is closed")
	}

	results := make([]Result, len(imgs))
	for start := 0; start < len(imgs); start += cfg.BatchSize {
		end := min(start+cfg.BatchSize, len(imgs))
		group := imgs[start:end]

		planes := make([][]float32, len(group))
		for i, img := range group {
			planes[i] = preprocess(img, cfg.Height, cfg.MaxWidth)
		}
		tensor, err := onnx.NewBatchImageTensor(planes, 3, cfg.Height, cfg.MaxWidth)
		if err != nil {
			return nil, fmt.Errorf("pack classifier batch: %w", err)
		}

		data, shape, err := session.Run(tensor)
		if err != nil {
			return nil, common.NewInferenceError("classifier.ClassifyBatch", err)
		}
		if len(shape) != 2 || shape[1] != 2 {
			return nil, common.NewInferenceError("classifier.ClassifyBatch",
				fmt.Errorf("expected [N,2] output, got shape %v", shape))
		}

		for i := range group {
			p0 := float64(data[i*2])
			p180 := float64(data[i*2+1])
			rotated := p180 > p0 && p180 > cfg.RotationThreshold
			results[start+i] = Result{Rotated: rotated, Confidence: p180}
		}
	}

	return results, nil
}

// Rotate180 returns a logical 180° flip of img.
func Rotate180(img image.Image) image.Image {
	return imageops.Rotate180(img)
}

package detector

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/MeKo-Christian/pogo/internal/common"
	"github.com/MeKo-Christian/pogo/internal/onnx"
)

// lineTolerance is the reading-order grouping threshold, in pixels.
const lineTolerance = 10

// Detector runs the DB-style text detection model and post-processes
// its probability map into oriented text boxes.
type Detector struct {
	cfg     Config
	session *onnx.Session
	mu      sync.RWMutex
}

// New creates a detector with the given fixed configuration.
func New(cfg Config) (*Detector, error) {
	slog.Debug("initializing detector", "model_path", cfg.ModelPath, "gpu", cfg.UseGPU)

	session, err := newSession(cfg)
	if err != nil {
		return nil, common.NewConfigError("detector.New", err)
	}

	return &Detector{cfg: cfg, session: session}, nil
}

// Close releases the underlying ONNX session.
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return nil
	}
	err := d.session.Close()
	d.session = nil
	return err
}

// Config returns a copy of the detector's fixed configuration.
func (d *Detector) Config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// Detect runs detection on img and returns every accepted box in
// reading order.
func (d *Detector) Detect(img image.Image) ([]Box, error) {
	var boxes []Box
	err := d.DetectStream(img, func(box Box, _ float64) bool {
		boxes = append(boxes, box)
		return false
	})
	if err != nil {
		return nil, err
	}
	return sortReadingOrder(boxes, lineTolerance), nil
}

// DetectStream runs detection and streams each accepted box through
// handler in raw (unsorted) post-processing order, stopping early if
// handler returns true. This lets a quick "does this image contain
// text" check and a full detect share one inference pass.
func (d *Detector) DetectStream(img image.Image, handler Handler) error {
	if img == nil {
		return errors.New("input image is nil")
	}

	d.mu.RLock()
	session := d.session
	cfg := d.cfg
	d.mu.RUnlock()
	if session == nil {
		return errors.New("detector session is closed")
	}

	start := time.Now()
	pre := preprocess(img, cfg.LimitSideLen)

	data, shape, err := session.Run(pre.tensor)
	if err != nil {
		return common.NewInferenceError("detector.DetectStream", err)
	}
	if len(shape) != 4 {
		return common.NewInferenceError("detector.DetectStream",
			fmt.Errorf("expected 4D probability map, got %dD", len(shape)))
	}

	opts := postprocessOptions{
		thresh:        cfg.Thresh,
		boxThresh:     cfg.BoxThresh,
		unclipRatio:   cfg.UnclipRatio,
		minSize:       cfg.MinSize,
		maxCandidates: cfg.MaxCandidates,
	}

	width, height := int(shape[3]), int(shape[2])
	postprocess(data, width, height, pre.origW, pre.origH, opts, handler)

	slog.Debug("detection complete", "elapsed", time.Since(start))
	return nil
}

// GetModelInfo reports basic introspection about the loaded model.
func (d *Detector) GetModelInfo() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	info := map[string]any{
		"model_path":     d.cfg.ModelPath,
		"thresh":         d.cfg.Thresh,
		"box_thresh":     d.cfg.BoxThresh,
		"unclip_ratio":   d.cfg.UnclipRatio,
		"limit_side_len": d.cfg.LimitSideLen,
	}
	if d.session != nil {
		info["input_name"] = d.session.InputName
		info["output_name"] = d.session.OutputName
	}
	return info
}

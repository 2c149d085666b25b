// Package pipeline wires the detector, classifier, and recognizer into
// the end-to-end OCR pipeline: detect text regions, classify and
// correct rotation, recognize text, and back-project character boxes.
package pipeline

import (
	"fmt"

	"github.com/MeKo-Christian/pogo/internal/classifier"
	"github.com/MeKo-Christian/pogo/internal/detector"
	"github.com/MeKo-Christian/pogo/internal/models"
	"github.com/MeKo-Christian/pogo/internal/recognizer"
)

// Pipeline wires together the detector, the optional rotation
// classifier, and the recognizer.
type Pipeline struct {
	cfg        Config
	Detector   *detector.Detector
	Classifier *classifier.Classifier // nil if cls.onnx is absent
	Recognizer *recognizer.Recognizer
}

// Builder constructs a Pipeline with fluent configuration, mirroring
// the component Config structs' own defaults.
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder seeded with DefaultConfig for modelsDir.
func NewBuilder(modelsDir string) *Builder {
	return &Builder{cfg: DefaultConfig(modelsDir)}
}

// WithThreads sets intra-op thread counts for every component.
func (b *Builder) WithThreads(n int) *Builder {
	b.cfg = b.cfg.WithThreads(n)
	return b
}

// WithGPU enables GPU execution on every component.
func (b *Builder) WithGPU(enabled bool) *Builder {
	b.cfg = b.cfg.WithGPU(enabled)
	return b
}

// Config returns a copy of the builder's current configuration.
func (b *Builder) Config() Config { return b.cfg }

// Build initializes the detector and recognizer (required) and the
// classifier (optional: skipped when cls.onnx is missing).
func (b *Builder) Build() (*Pipeline, error) {
	status := models.Prepare(b.cfg.ModelsDir)
	if missing := status.MissingRequired(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required model files: %v", missing)
	}

	det, err := detector.New(b.cfg.Detector)
	if err != nil {
		return nil, fmt.Errorf("init detector: %w", err)
	}
	rec, err := recognizer.New(b.cfg.Recognizer)
	if err != nil {
		_ = det.Close()
		return nil, fmt.Errorf("init recognizer: %w", err)
	}

	p := &Pipeline{cfg: b.cfg, Detector: det, Recognizer: rec}

	if status.ClassificationExists {
		cls, err := classifier.New(b.cfg.Classifier)
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("init classifier: %w", err)
		}
		p.Classifier = cls
	}

	return p, nil
}

// Close releases every component's resources.
func (p *Pipeline) Close() error {
	var firstErr error
	if p.Classifier != nil {
		if err := p.Classifier.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.Classifier = nil
	}
	if p.Recognizer != nil {
		if err := p.Recognizer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.Recognizer = nil
	}
	if p.Detector != nil {
		if err := p.Detector.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.Detector = nil
	}
	return firstErr
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Info reports introspection about the pipeline's loaded models.
func (p *Pipeline) Info() map[string]any {
	info := map[string]any{
		"models_dir":           p.cfg.ModelsDir,
		"classifier_available": p.Classifier != nil,
	}
	if p.Detector != nil {
		info["detector"] = p.Detector.GetModelInfo()
	}
	return info
}

package pipeline

import (
	"github.com/MeKo-Christian/pogo/internal/classifier"
	"github.com/MeKo-Christian/pogo/internal/detector"
	"github.com/MeKo-Christian/pogo/internal/models"
	"github.com/MeKo-Christian/pogo/internal/recognizer"
)

// Config holds the fixed thresholds and component configs for the OCR
// pipeline. None of these are exposed as runtime knobs beyond the
// model directory and thread/GPU switches.
type Config struct {
	ModelsDir string

	Detector   detector.Config
	Classifier classifier.Config
	Recognizer recognizer.Config

	// MinRecognitionScore is the confidence a line must clear to be
	// reported without qualification.
	MinRecognitionScore float64
	// FallbackMinRecognitionScore is the floor below which a line is
	// dropped outright, even if it survived a pass-2 retry.
	FallbackMinRecognitionScore float64
	// AngleAspectRatioThreshold selects crops narrow enough (width /
	// height below this) to run through the rotation classifier.
	AngleAspectRatioThreshold float64
	// LowConfidenceThreshold selects recognized lines eligible for the
	// pass-2 rotation-retry.
	LowConfidenceThreshold float64
	// QuickCheckMaxCandidates bounds how many detections hasHighConfidenceText
	// examines before giving up.
	QuickCheckMaxCandidates int

	NumThreads int
	UseGPU     bool
}

// DefaultConfig returns the fixed pipeline configuration, resolving
// component model paths from modelsDir.
func DefaultConfig(modelsDir string) Config {
	paths := models.Resolve(modelsDir)
	cfg := Config{
		ModelsDir:                   paths.Dir,
		Detector:                    detector.DefaultConfig(paths.Detection),
		Classifier:                  classifier.DefaultConfig(paths.Classification),
		Recognizer:                  recognizer.DefaultConfig(paths.Recognition, paths.Dictionary),
		MinRecognitionScore:         0.80,
		FallbackMinRecognitionScore: 0.50,
		AngleAspectRatioThreshold:   0.50,
		LowConfidenceThreshold:      0.65,
		QuickCheckMaxCandidates:     3,
	}
	return cfg
}

// WithThreads applies n to every component's NumThreads, if positive.
func (c Config) WithThreads(n int) Config {
	if n > 0 {
		c.Detector.NumThreads = n
		c.Classifier.NumThreads = n
		c.Recognizer.NumThreads = n
		c.NumThreads = n
	}
	return c
}

// WithGPU toggles GPU execution on every component.
func (c Config) WithGPU(enabled bool) Config {
	c.Detector.UseGPU = enabled
	c.Classifier.UseGPU = enabled
	c.Recognizer.UseGPU = enabled
	c.UseGPU = enabled
	return c
}

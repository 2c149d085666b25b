package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Christian/pogo/internal/pipeline"
)

const (
	debugLevel = "debug"
	infoLevel  = "info"
	warnLevel  = "warn"
	errorLevel = "error"
)

// DefaultConfig returns a configuration with sensible defaults, with
// model paths resolved under models.DefaultModelsDir.
func DefaultConfig() Config {
	pcfg := pipeline.DefaultConfig("")
	return Config{
		ModelsDir: pcfg.ModelsDir,
		LogLevel:  infoLevel,
		Verbose:   false,
		Pipeline: PipelineConfig{
			Detector:                    DetectorConfig{ModelPath: pcfg.Detector.ModelPath},
			Classifier:                  ClassifierConfig{ModelPath: pcfg.Classifier.ModelPath},
			Recognizer:                  RecognizerConfig{ModelPath: pcfg.Recognizer.ModelPath, DictionaryPath: pcfg.Recognizer.DictionaryPath},
			MinRecognitionScore:         pcfg.MinRecognitionScore,
			FallbackMinRecognitionScore: pcfg.FallbackMinRecognitionScore,
			AngleAspectRatioThreshold:   pcfg.AngleAspectRatioThreshold,
			LowConfidenceThreshold:      pcfg.LowConfidenceThreshold,
			QuickCheckMaxCandidates:     pcfg.QuickCheckMaxCandidates,
		},
		Output: OutputConfig{
			Format:              "text",
			ConfidencePrecision: 2,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			MetricsEnabled:  true,
		},
		GPU: GPUConfig{Enabled: false, Device: 0},
	}
}

// Validate checks that the configuration's values are well-formed. It
// does not check that model files exist on disk; callers that need
// that should use models.Prepare.
func (c *Config) Validate() error {
	validLogLevels := []string{debugLevel, infoLevel, warnLevel, errorLevel}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "csv"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	if err := validateThreshold(c.Pipeline.MinRecognitionScore, "pipeline.min_recognition_score"); err != nil {
		return err
	}
	if err := validateThreshold(c.Pipeline.FallbackMinRecognitionScore, "pipeline.fallback_min_recognition_score"); err != nil {
		return err
	}
	if err := validateThreshold(c.Pipeline.AngleAspectRatioThreshold, "pipeline.angle_aspect_ratio_threshold"); err != nil {
		return err
	}
	if err := validateThreshold(c.Pipeline.LowConfidenceThreshold, "pipeline.low_confidence_threshold"); err != nil {
		return err
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}

	return nil
}

// ToPipelineConfig converts c into the pipeline's own configuration
// format, resolving model paths under ModelsDir before applying any
// explicit overrides.
func (c *Config) ToPipelineConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig(c.ModelsDir)

	if c.Pipeline.Detector.ModelPath != "" {
		cfg.Detector.ModelPath = c.Pipeline.Detector.ModelPath
	}
	cfg.Detector.NumThreads = c.Pipeline.Detector.NumThreads
	cfg.Detector.UseGPU = c.Pipeline.Detector.UseGPU || c.GPU.Enabled

	if c.Pipeline.Classifier.ModelPath != "" {
		cfg.Classifier.ModelPath = c.Pipeline.Classifier.ModelPath
	}
	cfg.Classifier.NumThreads = c.Pipeline.Classifier.NumThreads
	cfg.Classifier.UseGPU = c.Pipeline.Classifier.UseGPU || c.GPU.Enabled

	if c.Pipeline.Recognizer.ModelPath != "" {
		cfg.Recognizer.ModelPath = c.Pipeline.Recognizer.ModelPath
	}
	if c.Pipeline.Recognizer.DictionaryPath != "" {
		cfg.Recognizer.DictionaryPath = c.Pipeline.Recognizer.DictionaryPath
	}
	cfg.Recognizer.NumThreads = c.Pipeline.Recognizer.NumThreads
	cfg.Recognizer.UseGPU = c.Pipeline.Recognizer.UseGPU || c.GPU.Enabled

	if c.Pipeline.MinRecognitionScore > 0 {
		cfg.MinRecognitionScore = c.Pipeline.MinRecognitionScore
	}
	if c.Pipeline.FallbackMinRecognitionScore > 0 {
		cfg.FallbackMinRecognitionScore = c.Pipeline.FallbackMinRecognitionScore
	}
	if c.Pipeline.AngleAspectRatioThreshold > 0 {
		cfg.AngleAspectRatioThreshold = c.Pipeline.AngleAspectRatioThreshold
	}
	if c.Pipeline.LowConfidenceThreshold > 0 {
		cfg.LowConfidenceThreshold = c.Pipeline.LowConfidenceThreshold
	}
	if c.Pipeline.QuickCheckMaxCandidates > 0 {
		cfg.QuickCheckMaxCandidates = c.Pipeline.QuickCheckMaxCandidates
	}

	return cfg
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func validateThreshold(value float64, name string) error {
	if value < 0.0 || value > 1.0 {
		return fmt.Errorf("invalid %s: %.2f (must be between 0.0 and 1.0)", name, value)
	}
	return nil
}

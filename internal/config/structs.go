// Package config loads the application's configuration from environment
// variables, a YAML file, and defaults, in that precedence order via
// viper.
package config

// Config is the complete configuration for the pogo OCR application:
// global settings plus the pipeline, output, server, and GPU sections.
type Config struct {
	ModelsDir string `mapstructure:"models_dir" yaml:"models_dir" json:"models_dir"`
	LogLevel  string `mapstructure:"log_level"  yaml:"log_level"  json:"log_level"`
	Verbose   bool   `mapstructure:"verbose"    yaml:"verbose"    json:"verbose"`

	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
	Output   OutputConfig   `mapstructure:"output"   yaml:"output"   json:"output"`
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"   json:"server"`
	GPU      GPUConfig      `mapstructure:"gpu"      yaml:"gpu"      json:"gpu"`
}

// PipelineConfig holds the OCR pipeline's fixed-algorithm thresholds
// and its three component model paths.
type PipelineConfig struct {
	Detector   DetectorConfig   `mapstructure:"detector"   yaml:"detector"   json:"detector"`
	Classifier ClassifierConfig `mapstructure:"classifier" yaml:"classifier" json:"classifier"`
	Recognizer RecognizerConfig `mapstructure:"recognizer" yaml:"recognizer" json:"recognizer"`

	MinRecognitionScore         float64 `mapstructure:"min_recognition_score"          yaml:"min_recognition_score"          json:"min_recognition_score"`
	FallbackMinRecognitionScore float64 `mapstructure:"fallback_min_recognition_score" yaml:"fallback_min_recognition_score" json:"fallback_min_recognition_score"`
	AngleAspectRatioThreshold   float64 `mapstructure:"angle_aspect_ratio_threshold"   yaml:"angle_aspect_ratio_threshold"   json:"angle_aspect_ratio_threshold"`
	LowConfidenceThreshold      float64 `mapstructure:"low_confidence_threshold"       yaml:"low_confidence_threshold"       json:"low_confidence_threshold"`
	QuickCheckMaxCandidates     int     `mapstructure:"quick_check_max_candidates"     yaml:"quick_check_max_candidates"     json:"quick_check_max_candidates"`
}

// DetectorConfig overrides the detector's model path and thread/GPU
// execution switches. Its DB algorithm thresholds are fixed (see
// detector.DefaultConfig) and not exposed here.
type DetectorConfig struct {
	ModelPath  string `mapstructure:"model_path"  yaml:"model_path"  json:"model_path"`
	NumThreads int    `mapstructure:"num_threads" yaml:"num_threads" json:"num_threads"`
	UseGPU     bool   `mapstructure:"use_gpu"     yaml:"use_gpu"     json:"use_gpu"`
}

// ClassifierConfig overrides the rotation classifier's model path and
// execution switches.
type ClassifierConfig struct {
	ModelPath  string `mapstructure:"model_path"  yaml:"model_path"  json:"model_path"`
	NumThreads int    `mapstructure:"num_threads" yaml:"num_threads" json:"num_threads"`
	UseGPU     bool   `mapstructure:"use_gpu"     yaml:"use_gpu"     json:"use_gpu"`
}

// RecognizerConfig overrides the recognizer's model/dictionary paths
// and execution switches.
type RecognizerConfig struct {
	ModelPath      string `mapstructure:"model_path"      yaml:"model_path"      json:"model_path"`
	DictionaryPath string `mapstructure:"dictionary_path" yaml:"dictionary_path" json:"dictionary_path"`
	NumThreads     int    `mapstructure:"num_threads"     yaml:"num_threads"     json:"num_threads"`
	UseGPU         bool   `mapstructure:"use_gpu"         yaml:"use_gpu"         json:"use_gpu"`
}

// OutputConfig controls how CLI commands render OCR results.
type OutputConfig struct {
	Format              string `mapstructure:"format"               yaml:"format"               json:"format"`
	File                string `mapstructure:"file"                 yaml:"file"                 json:"file"`
	ConfidencePrecision int    `mapstructure:"confidence_precision" yaml:"confidence_precision" json:"confidence_precision"`
}

// ServerConfig holds the HTTP server's listen address and request
// handling limits.
type ServerConfig struct {
	Host            string `mapstructure:"host"             yaml:"host"             json:"host"`
	Port            int    `mapstructure:"port"             yaml:"port"             json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin"      yaml:"cors_origin"      json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb"    yaml:"max_upload_mb"    json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec"      yaml:"timeout_sec"      json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MetricsEnabled  bool   `mapstructure:"metrics_enabled"  yaml:"metrics_enabled"  json:"metrics_enabled"`
}

// GPUConfig is the global GPU acceleration switch and device selector.
type GPUConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Device  int  `mapstructure:"device"  yaml:"device"  json:"device"`
}

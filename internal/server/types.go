// Package server binds the OCR pipeline's detect and has-text operations
// to a JSON-over-HTTP surface, with CORS, rate limiting, and Prometheus
// metrics middleware.
package server

import (
	"fmt"
	"image"
	"net/http"

	"github.com/MeKo-Christian/pogo/internal/pipeline"
)

// ocrPipeline is the subset of *pipeline.Pipeline the server depends
// on, so tests can substitute a mock without spinning up ONNX
// sessions.
type ocrPipeline interface {
	ProcessImage(img image.Image) (pipeline.Result, error)
	HasHighConfidenceText(img image.Image) (bool, error)
	Close() error
}

// Server holds the HTTP server state and its OCR pipeline.
type Server struct {
	pipeline    ocrPipeline
	modelsDir   string
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// RateLimitConfig configures the server's per-client rate limiter.
// Zero values disable rate limiting entirely.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	RequestsPerHour   int
	MaxRequestsPerDay int
	MaxDataPerDay     int64
}

// Config holds server configuration.
type Config struct {
	Host           string
	Port           int
	CORSOrigin     string
	MaxUploadMB    int64
	TimeoutSec     int
	PipelineConfig pipeline.Config
	RateLimit      RateLimitConfig
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type ModelInfo struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

type ModelsResponse struct {
	Ready   bool        `json:"ready"`
	Version string      `json:"version"`
	Models  []ModelInfo `json:"models"`
}

// Point is a JSON-serialized 2-D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is the axis-aligned bounding box of a recognized region.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// CharacterBoxResponse is one recognized character with its bounding
// quad.
type CharacterBoxResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Points     [4]Point `json:"points"`
}

// RegionResponse is one recognized text region: text, confidence,
// corner points, bounding box, and per-character boxes.
type RegionResponse struct {
	Text          string                 `json:"text"`
	Confidence    float64                `json:"confidence"`
	Points        [4]Point               `json:"points"`
	BoundingBox   BoundingBox            `json:"boundingBox"`
	CharacterBoxes []CharacterBoxResponse `json:"characterBoxes"`
}

// DetectResponse is the detectText response body.
type DetectResponse struct {
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Regions []RegionResponse `json:"regions"`
}

// HasTextResponse is the hasText response body.
type HasTextResponse struct {
	HasText bool `json:"hasText"`
}

// ErrorResponse is the JSON body written for request failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer builds a Pipeline from config.PipelineConfig and wraps it
// in a Server ready to have its routes registered.
func NewServer(cfg Config) (*Server, error) {
	b := pipeline.NewBuilder(cfg.PipelineConfig.ModelsDir).
		WithThreads(cfg.PipelineConfig.NumThreads).
		WithGPU(cfg.PipelineConfig.UseGPU)
	pl, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build OCR pipeline: %w", err)
	}

	var limiter *RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.RequestsPerHour,
			cfg.RateLimit.MaxRequestsPerDay,
			cfg.RateLimit.MaxDataPerDay,
		)
	}

	return &Server{
		pipeline:    pl,
		modelsDir:   cfg.PipelineConfig.ModelsDir,
		corsOrigin:  cfg.CORSOrigin,
		maxUploadMB: cfg.MaxUploadMB,
		timeoutSec:  cfg.TimeoutSec,
		rateLimiter: limiter,
	}, nil
}

// Close releases the server's pipeline resources.
func (s *Server) Close() error {
	if s.pipeline != nil {
		return s.pipeline.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/models", s.corsMiddleware(s.modelsHandler))
	mux.HandleFunc("/ocr/detect", s.corsMiddleware(s.rateLimitMiddleware(s.ocrDetectHandler)))
	mux.HandleFunc("/ocr/has-text", s.corsMiddleware(s.rateLimitMiddleware(s.ocrHasTextHandler)))
	mux.HandleFunc("/ws/detect", s.corsMiddleware(s.ocrWebSocketHandler))
	mux.Handle("/metrics", metricsHandler())
}

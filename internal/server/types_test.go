package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MeKo-Christian/pogo/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Default(t *testing.T) {
	config := Config{
		Host:        "localhost",
		Port:        8080,
		CORSOrigin:  "*",
		MaxUploadMB: 10,
		TimeoutSec:  30,
	}

	assert.Equal(t, "localhost", config.Host)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "*", config.CORSOrigin)
	assert.Equal(t, int64(10), config.MaxUploadMB)
	assert.Equal(t, 30, config.TimeoutSec)
}

func TestHealthResponse_Serialization(t *testing.T) {
	response := HealthResponse{
		Status:  "healthy",
		Version: "1.0.0",
		Time:    "2023-12-01T12:00:00Z",
	}

	data, err := json.Marshal(response)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"status":"healthy"`)
	assert.Contains(t, string(data), `"version":"1.0.0"`)
	assert.Contains(t, string(data), `"time":"2023-12-01T12:00:00Z"`)

	var unmarshaled HealthResponse
	err = json.Unmarshal(data, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, response.Status, unmarshaled.Status)
	assert.Equal(t, response.Version, unmarshaled.Version)
	assert.Equal(t, response.Time, unmarshaled.Time)
}

func TestModelInfo_Serialization(t *testing.T) {
	modelInfo := ModelInfo{
		Name:   "detection",
		Path:   "/path/to/model",
		Exists: true,
	}

	data, err := json.Marshal(modelInfo)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"name":"detection"`)
	assert.Contains(t, string(data), `"exists":true`)

	var unmarshaled ModelInfo
	err = json.Unmarshal(data, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, modelInfo.Name, unmarshaled.Name)
	assert.Equal(t, modelInfo.Path, unmarshaled.Path)
	assert.Equal(t, modelInfo.Exists, unmarshaled.Exists)
}

func TestModelsResponse_Serialization(t *testing.T) {
	models := []ModelInfo{
		{Name: "detection", Path: "/models/det.onnx", Exists: true},
		{Name: "recognition", Path: "/models/rec.onnx", Exists: false},
	}

	response := ModelsResponse{
		Ready:   false,
		Version: "pp-ocrv5-202410",
		Models:  models,
	}

	data, err := json.Marshal(response)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"ready":false`)
	assert.Contains(t, string(data), `"models":[`)

	var unmarshaled ModelsResponse
	err = json.Unmarshal(data, &unmarshaled)
	require.NoError(t, err)

	assert.Len(t, unmarshaled.Models, 2)
	assert.Equal(t, "detection", unmarshaled.Models[0].Name)
	assert.Equal(t, "recognition", unmarshaled.Models[1].Name)
}

func TestDetectResponse_Serialization(t *testing.T) {
	resp := DetectResponse{
		Width:  800,
		Height: 600,
		Regions: []RegionResponse{
			{
				Text:       "Sample text",
				Confidence: 0.92,
				Points:     [4]Point{{X: 10, Y: 20}, {X: 100, Y: 20}, {X: 100, Y: 50}, {X: 10, Y: 50}},
				BoundingBox: BoundingBox{
					Left: 10, Top: 20, Right: 100, Bottom: 50,
				},
				CharacterBoxes: []CharacterBoxResponse{
					{Text: "S", Confidence: 0.9},
				},
			},
		},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"text":"Sample text"`)
	assert.Contains(t, string(data), `"boundingBox"`)
	assert.Contains(t, string(data), `"characterBoxes"`)

	var unmarshaled DetectResponse
	err = json.Unmarshal(data, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, resp.Width, unmarshaled.Width)
	assert.Len(t, unmarshaled.Regions, 1)
	assert.InDelta(t, resp.Regions[0].Confidence, unmarshaled.Regions[0].Confidence, 0.0001)
	assert.Len(t, unmarshaled.Regions[0].CharacterBoxes, 1)
}

func TestHasTextResponse_Serialization(t *testing.T) {
	resp := HasTextResponse{HasText: true}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hasText":true`)
}

func TestErrorResponse_Serialization(t *testing.T) {
	resp := ErrorResponse{Error: "something failed"}
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var unmarshaled ErrorResponse
	require.NoError(t, json.Unmarshal(data, &unmarshaled))
	assert.Equal(t, resp.Error, unmarshaled.Error)
}

func TestNewServer_ErrorCases(t *testing.T) {
	t.Run("invalid pipeline config", func(t *testing.T) {
		config := Config{
			Host:        "localhost",
			Port:        8080,
			CORSOrigin:  "*",
			MaxUploadMB: 10,
			TimeoutSec:  30,
			PipelineConfig: pipeline.Config{
				ModelsDir: "/non/existent/path",
			},
		}

		server, err := NewServer(config)
		require.Error(t, err)
		assert.Nil(t, server)
	})
}

func TestServer_SetupRoutes(t *testing.T) {
	server := &Server{
		corsOrigin:  "*",
		maxUploadMB: 10,
	}

	mux := http.NewServeMux()
	server.SetupRoutes(mux)

	assert.NotNil(t, mux)
}

func TestServer_Close(t *testing.T) {
	tests := []struct {
		name     string
		server   *Server
		hasError bool
	}{
		{
			name:     "server with nil pipeline",
			server:   &Server{pipeline: nil},
			hasError: false,
		},
		{
			name: "server with mock pipeline",
			server: &Server{
				corsOrigin:  "*",
				maxUploadMB: 10,
				pipeline:    &mockPipeline{},
			},
			hasError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.server.Close()
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Test JSON field names match the documented API format.
func TestJSON_FieldNames(t *testing.T) {
	t.Run("HealthResponse field names", func(t *testing.T) {
		response := HealthResponse{Status: "ok", Version: "1.0", Time: "now"}
		data, _ := json.Marshal(response)
		jsonStr := string(data)

		assert.Contains(t, jsonStr, `"status"`)
		assert.Contains(t, jsonStr, `"version"`)
		assert.Contains(t, jsonStr, `"time"`)
	})

	t.Run("ErrorResponse field names", func(t *testing.T) {
		response := ErrorResponse{Error: "test"}
		data, _ := json.Marshal(response)
		jsonStr := string(data)

		assert.Contains(t, jsonStr, `"error"`)
	})
}

// Benchmark tests.
func BenchmarkHealthResponse_Marshal(b *testing.B) {
	response := HealthResponse{
		Status:  "healthy",
		Version: "1.0.0",
		Time:    "2023-12-01T12:00:00Z",
	}

	b.ResetTimer()
	for range b.N {
		_, _ = json.Marshal(response)
	}
}

func BenchmarkDetectResponse_Marshal(b *testing.B) {
	response := DetectResponse{
		Width:   1024,
		Height:  768,
		Regions: make([]RegionResponse, 100),
	}

	b.ResetTimer()
	for range b.N {
		_, _ = json.Marshal(response)
	}
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MeKo-Christian/pogo/internal/models"
	"github.com/MeKo-Christian/pogo/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// modelsHandler implements the prepareModels public operation
// It reports readiness of the on-disk model and dictionary artifacts
// without provisioning anything.
func (s *Server) modelsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := models.Prepare(s.modelsDir)
	response := ModelsResponse{
		Ready:   status.Ready(),
		Version: models.Version,
		Models: []ModelInfo{
			{Name: "detection", Path: status.Paths.Detection, Exists: status.DetectionExists},
			{Name: "recognition", Path: status.Paths.Recognition, Exists: status.RecognitionExists},
			{Name: "classification", Path: status.Paths.Classification, Exists: status.ClassificationExists},
			{Name: "dictionary", Path: status.Paths.Dictionary, Exists: status.DictionaryExists},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding models response: %v\n", err)
	}
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}

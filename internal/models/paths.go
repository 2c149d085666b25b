// Package models resolves the on-disk location of the three ONNX model
// files and the character dictionary the OCR pipeline needs at
// initialization, and reports whether they are present.
package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Fixed model and dictionary filenames. The pipeline looks for exactly
// these names inside the resolved models directory.
const (
	DetectionModel      = "det.onnx"
	RecognitionModel    = "rec.onnx"
	ClassificationModel = "cls.onnx"
	DictionaryFile      = "ppocrv5_dict.txt"
)

// Version is the fixed tag prepareModels surfaces for this model set.
const Version = "pp-ocrv5-202410"

// DefaultModelsDir is used when neither an explicit directory nor the
// environment variable is set.
const DefaultModelsDir = "models"

// EnvModelsDir overrides the models directory when set.
const EnvModelsDir = "POGO_MODELS_DIR"

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("could not find project root (go.mod not found)")
		}
		dir = parent
	}
}

// GetModelsDir resolves the models directory. Priority: explicit
// modelsDir argument, then EnvModelsDir, then project root + "models",
// falling back to a bare relative "models" if no project root is found.
func GetModelsDir(modelsDir string) string {
	if modelsDir != "" {
		return modelsDir
	}
	if envDir := os.Getenv(EnvModelsDir); envDir != "" {
		return envDir
	}
	if root, err := findProjectRoot(); err == nil {
		return filepath.Join(root, DefaultModelsDir)
	}
	return DefaultModelsDir
}

// Paths is the resolved set of artifact paths for one models directory.
type Paths struct {
	Dir            string
	Detection      string
	Recognition    string
	Classification string
	Dictionary     string
}

// Resolve computes every artifact path under the resolved models
// directory.
func Resolve(modelsDir string) Paths {
	dir := GetModelsDir(modelsDir)
	return Paths{
		Dir:            dir,
		Detection:      filepath.Join(dir, DetectionModel),
		Recognition:    filepath.Join(dir, RecognitionModel),
		Classification: filepath.Join(dir, ClassificationModel),
		Dictionary:     filepath.Join(dir, DictionaryFile),
	}
}

// Status reports whether each expected artifact exists. Classification
// is optional: its absence disables angle classification rather than
// failing initialization.
type Status struct {
	Paths                Paths
	DetectionExists      bool
	RecognitionExists    bool
	ClassificationExists bool
	DictionaryExists     bool
}

// Ready reports whether every required artifact (everything except the
// optional classification model) is present.
func (s Status) Ready() bool {
	return s.DetectionExists && s.RecognitionExists && s.DictionaryExists
}

// MissingRequired lists the required artifact paths that are absent.
func (s Status) MissingRequired() []string {
	var missing []string
	if !s.DetectionExists {
		missing = append(missing, s.Paths.Detection)
	}
	if !s.RecognitionExists {
		missing = append(missing, s.Paths.Recognition)
	}
	if !s.DictionaryExists {
		missing = append(missing, s.Paths.Dictionary)
	}
	return missing
}

// Prepare resolves paths under modelsDir and checks which artifacts
// exist, without downloading or extracting anything (on-disk
// provisioning is an external collaborator's responsibility).
func Prepare(modelsDir string) Status {
	paths := Resolve(modelsDir)
	return Status{
		Paths:                paths,
		DetectionExists:      exists(paths.Detection),
		RecognitionExists:    exists(paths.Recognition),
		ClassificationExists: exists(paths.Classification),
		DictionaryExists:     exists(paths.Dictionary),
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ValidateModelExists checks if a model file exists at the given path.
func ValidateModelExists(modelPath string) error {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", modelPath)
	}
	return nil
}

package detector

import (
	"fmt"
	"os"

	"github.com/MeKo-Christian/pogo/internal/onnx"
)

func validateModelFile(modelPath string) error {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", modelPath)
	}
	return nil
}

func newSession(cfg Config) (*onnx.Session, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("detector model path cannot be empty")
	}
	if err := validateModelFile(cfg.ModelPath); err != nil {
		return nil, err
	}
	return onnx.NewSession(cfg.ModelPath, cfg.NumThreads, onnx.GPUConfig{UseGPU: cfg.UseGPU})
}
